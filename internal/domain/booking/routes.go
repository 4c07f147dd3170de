package booking

import "github.com/gin-gonic/gin"

// RegisterRoutes registers staff booking routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/rooms/:id/availability", handler.RoomAvailability)

	bookings := r.Group("/bookings")
	{
		bookings.GET("", handler.ListBookings)
		bookings.POST("", handler.CreateBooking)
		bookings.GET("/:id", handler.GetBooking)
		bookings.PUT("/:id", handler.UpdateBooking)
		bookings.DELETE("/:id", handler.DeleteBooking)
		bookings.PATCH("/:id/confirm", handler.Confirm)
		bookings.PATCH("/:id/cancel", handler.Cancel)
		bookings.PATCH("/:id/complete", handler.Complete)
		bookings.PATCH("/:id/no-show", handler.MarkNoShow)
		bookings.POST("/:id/payments", handler.RecordPayment)
		bookings.POST("/:id/resend-confirmation", handler.ResendConfirmation)
	}
}
