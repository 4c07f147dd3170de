package report

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/middleware"
	"hotelpms/internal/pkg/request"
	"hotelpms/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// BookingsXLSX
// @Summary Export bookings as XLSX
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param hotel_id query int false "hotel (superadmin only)"
// @Param from query string false "check-in from, YYYY-MM-DD"
// @Param to query string false "check-in to, YYYY-MM-DD"
// @Router /reports/bookings.xlsx [get]
func (h *Handler) BookingsXLSX(c *gin.Context) {
	hotelID, ok := request.QueryInt64(c, "hotel_id")
	if !ok {
		return
	}
	from, ok := request.QueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := request.QueryDate(c, "to")
	if !ok {
		return
	}

	p := Period{HotelID: middleware.CurrentActor(c).HotelFilter(hotelID), From: from, To: to}
	f, err := h.service.Bookings(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings-%s.xlsx"`, h.service.now().UTC().Format("20060102")))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/reports/bookings.xlsx", handler.BookingsXLSX)
}
