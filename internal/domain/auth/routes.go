package auth

import (
	"github.com/gin-gonic/gin"

	"hotelpms/internal/middleware"
)

func RegisterPublicRoutes(v1 *gin.RouterGroup, handler *Handler) {
	v1.POST("/auth/login", handler.Login)
}

func RegisterProtectedRoutes(protected *gin.RouterGroup, handler *Handler) {
	protected.GET("/auth/me", handler.GetMe)

	users := protected.Group("/users", middleware.SuperadminOnly())
	{
		users.GET("", handler.ListUsers)
		users.POST("", handler.CreateUser)
	}
}
