package auth

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

// Login
// @Summary Staff login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetMe returns the authenticated staff user
func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), middleware.CurrentActor(c).UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !request.BindJSON(c, &req) {
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) ListUsers(c *gin.Context) {
	hotelID, ok := request.QueryInt64(c, "hotel_id")
	if !ok {
		return
	}
	users, err := h.service.ListUsers(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}
