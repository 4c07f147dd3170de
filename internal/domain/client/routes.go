package client

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	clients := r.Group("/clients")
	{
		clients.GET("", handler.ListClients)
		clients.POST("", handler.CreateClient)
		clients.GET("/:id", handler.GetClient)
		clients.PUT("/:id", handler.UpdateClient)
		clients.GET("/:id/bookings", handler.ClientBookings)
	}
}
