package live

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/jwt"
	"hotelpms/internal/pkg/response"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler builds the board endpoint. allowOrigin decides which browser
// origins may open the socket; nil accepts all.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowOrigin func(origin string) bool) *Handler {
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowOrigin == nil || origin == "" || allowOrigin(origin)
			},
		},
	}
}

// Board
// @Summary Live booking board
// @Description Websocket stream of booking events. Browsers cannot set headers
// @Description on the handshake, so the JWT travels as ?token=.
// @Tags Live
// @Router /ws/board [get]
func (h *Handler) Board(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	var hotelID *int64
	if domain.UserRole(claims.Role) != domain.RoleSuperadmin {
		if claims.HotelID == nil {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "user is not assigned to a hotel")
			return
		}
		hotelID = claims.HotelID
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.hub.log.WithError(err).Warn("live: websocket upgrade failed")
		return
	}
	h.hub.serve(conn, claims.UserID, hotelID)
}

func RegisterRoutes(r gin.IRoutes, handler *Handler) {
	r.GET("/ws/board", handler.Board)
}
