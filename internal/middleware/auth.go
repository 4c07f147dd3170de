package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/jwt"
	"hotelpms/internal/pkg/response"
)

const (
	ctxUserID  = "user_id"
	ctxRole    = "role"
	ctxHotelID = "hotel_id"
)

// JWTAuth validates the bearer token and stores the staff identity on the
// gin context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		SetActor(c, Actor{UserID: claims.UserID, Role: domain.UserRole(claims.Role), HotelID: claims.HotelID})
		c.Next()
	}
}

// Actor is the authenticated staff user behind a request.
type Actor struct {
	UserID  int64
	Role    domain.UserRole
	HotelID *int64
}

func (a Actor) IsSuperadmin() bool {
	return a.Role == domain.RoleSuperadmin
}

// CanAccessHotel reports whether the actor may read or change data of the
// given hotel. Superadmins see every hotel.
func (a Actor) CanAccessHotel(hotelID int64) bool {
	if a.IsSuperadmin() {
		return true
	}
	return a.HotelID != nil && *a.HotelID == hotelID
}

// HotelFilter returns the hotel a listing must be restricted to. Hotel admins
// are always pinned to their own hotel; superadmins get the requested one.
func (a Actor) HotelFilter(requested *int64) *int64 {
	if a.IsSuperadmin() {
		return requested
	}
	return a.HotelID
}

func SetActor(c *gin.Context, a Actor) {
	c.Set(ctxUserID, a.UserID)
	c.Set(ctxRole, string(a.Role))
	if a.HotelID != nil {
		c.Set(ctxHotelID, *a.HotelID)
	}
}

func CurrentActor(c *gin.Context) Actor {
	a := Actor{
		UserID: c.GetInt64(ctxUserID),
		Role:   domain.UserRole(c.GetString(ctxRole)),
	}
	if v, ok := c.Get(ctxHotelID); ok {
		if id, ok := v.(int64); ok {
			a.HotelID = &id
		}
	}
	return a
}

// RequireHotelAccess aborts with 403 unless the actor may access hotelID.
// Returns false when the request was aborted.
func RequireHotelAccess(c *gin.Context, hotelID int64) bool {
	if CurrentActor(c).CanAccessHotel(hotelID) {
		return true
	}
	response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this hotel")
	c.Abort()
	return false
}
