package dashboard

import (
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

// GetDashboard
// @Summary Occupancy and booking KPIs
// @Tags Dashboard
// @Param scope query string false "global or hotel"
// @Param hotel_id query int false "hotel for hotel scope"
// @Param from query string false "YYYY-MM-DD, default to - 30 days"
// @Param to query string false "YYYY-MM-DD, default today"
// @Router /dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
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

	q := Query{Scope: Scope(c.DefaultQuery("scope", string(ScopeGlobal))), HotelID: hotelID, From: from, To: to}
	if hotelID != nil && c.Query("scope") == "" {
		q.Scope = ScopeHotel
	}

	// Hotel admins only ever see their own hotel.
	actor := middleware.CurrentActor(c)
	if !actor.IsSuperadmin() {
		if actor.HotelID == nil || (hotelID != nil && *hotelID != *actor.HotelID) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this hotel")
			return
		}
		q.Scope = ScopeHotel
		q.HotelID = actor.HotelID
	}

	d, err := h.service.Get(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/dashboard", handler.GetDashboard)
}
