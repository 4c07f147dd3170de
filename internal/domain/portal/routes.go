package portal

import (
	"github.com/gin-gonic/gin"

	"hotelpms/internal/domain/room"
)

// RegisterRoutes mounts the guest endpoints. Room search and calendar are the
// staff handlers without hotel scoping.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rooms *room.Handler) {
	room.RegisterPublicRoutes(r, rooms)

	bookings := r.Group("/bookings")
	{
		bookings.POST("", handler.CreateBooking)
		bookings.GET("/:id", handler.GetBooking)
		bookings.POST("/:id/payments", handler.Pay)
		bookings.POST("/:id/cancel", handler.Cancel)
	}
}
