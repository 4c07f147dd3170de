package room

import "github.com/gin-gonic/gin"

// RegisterRoutes registers staff room routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/hotels/:id/rooms", handler.ListHotelRooms)
	r.POST("/hotels/:id/rooms", handler.CreateRoom)
	r.GET("/rooms/search", handler.SearchAvailable)

	rooms := r.Group("/rooms")
	{
		rooms.GET("/:id", handler.GetRoom)
		rooms.PUT("/:id", handler.UpdateRoom)
		rooms.DELETE("/:id", handler.DeleteRoom)
		rooms.PATCH("/:id/status", handler.ChangeStatus)
		rooms.GET("/:id/calendar", handler.Calendar)
	}
}

// RegisterPublicRoutes registers the read-only routes used by the portal
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/rooms/search", handler.SearchAvailable)
	r.GET("/rooms/:id/calendar", handler.PublicCalendar)
}
