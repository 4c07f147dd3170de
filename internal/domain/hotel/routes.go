package hotel

import (
	"github.com/gin-gonic/gin"

	"hotelpms/internal/middleware"
)

// RegisterRoutes registers hotel routes on an authenticated staff group
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	hotels := r.Group("/hotels")
	{
		hotels.GET("", handler.ListHotels)
		hotels.POST("", middleware.SuperadminOnly(), handler.CreateHotel)
		hotels.GET("/:id", handler.GetHotel)
		hotels.PUT("/:id", handler.UpdateHotel)
		hotels.PATCH("/:id/block", middleware.SuperadminOnly(), handler.BlockHotel)
		hotels.PATCH("/:id/unblock", middleware.SuperadminOnly(), handler.UnblockHotel)
	}
}
