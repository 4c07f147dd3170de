package hotel

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

// ListHotels returns every hotel for superadmins and the own hotel otherwise.
// @Summary List hotels
// @Tags Hotels
// @Param blocked query bool false "filter by blocked flag"
// @Router /hotels [get]
func (h *Handler) ListHotels(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if !actor.IsSuperadmin() {
		if actor.HotelID == nil {
			response.Success(c, http.StatusOK, []any{})
			return
		}
		hotel, err := h.service.Get(c.Request.Context(), *actor.HotelID)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, []any{hotel})
		return
	}

	hotels, err := h.service.List(c.Request.Context(), Filter{
		Blocked: request.QueryBool(c, "blocked"),
		Search:  c.Query("q"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotels)
}

// CreateHotel
// @Summary Create hotel (superadmin)
// @Tags Hotels
// @Router /hotels [post]
func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if !request.BindJSON(c, &req) {
		return
	}

	hotel, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, hotel)
}

func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok || !middleware.RequireHotelAccess(c, id) {
		return
	}

	hotel, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok || !middleware.RequireHotelAccess(c, id) {
		return
	}

	var req UpdateHotelRequest
	if !request.BindJSON(c, &req) {
		return
	}

	hotel, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) BlockHotel(c *gin.Context)   { h.setBlocked(c, true) }
func (h *Handler) UnblockHotel(c *gin.Context) { h.setBlocked(c, false) }

func (h *Handler) setBlocked(c *gin.Context, blocked bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	hotel, err := h.service.SetBlocked(c.Request.Context(), id, blocked)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}
