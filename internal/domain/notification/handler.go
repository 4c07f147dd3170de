package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/middleware"
	"hotelpms/internal/pkg/request"
	"hotelpms/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// BookingEmails
// @Summary Email log of a booking
// @Tags Bookings
// @Produce json
// @Param id path int true "booking id"
// @Router /bookings/{id}/emails [get]
func (h *Handler) BookingEmails(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	b, err := h.repo.LoadBooking(c.Request.Context(), id)
	if errors.Is(err, errBookingGone) {
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "booking not found")
		return
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	actor := middleware.CurrentActor(c)
	allowed := actor.IsSuperadmin() || (b.HotelID != nil && actor.CanAccessHotel(*b.HotelID))
	if !allowed {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this booking")
		return
	}

	logs, err := h.repo.ListByBooking(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/bookings/:id/emails", handler.BookingEmails)
}
