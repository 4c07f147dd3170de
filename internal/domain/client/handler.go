package client

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/domain"
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

// ListClients returns a page of clients, restricted to the actor's hotel for
// hotel admins.
func (h *Handler) ListClients(c *gin.Context) {
	hotelID, ok := request.QueryInt64(c, "hotel_id")
	if !ok {
		return
	}
	page, perPage := request.Page(c)

	clients, total, err := h.service.List(c.Request.Context(), Filter{
		HotelID: middleware.CurrentActor(c).HotelFilter(hotelID),
		Search:  c.Query("q"),
		VIP:     request.QueryBool(c, "vip"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, clients, total, page, perPage)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !request.BindJSON(c, &req) {
		return
	}
	if actor := middleware.CurrentActor(c); !actor.IsSuperadmin() {
		req.HotelID = actor.HotelID
	}

	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, client)
}

func (h *Handler) GetClient(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, client)
}

func (h *Handler) UpdateClient(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if !request.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), client.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// ClientBookings lists the booking history; ?active=true keeps only pending
// and confirmed bookings.
func (h *Handler) ClientBookings(c *gin.Context) {
	client, ok := h.loadClient(c)
	if !ok {
		return
	}

	activeOnly := false
	if v := request.QueryBool(c, "active"); v != nil {
		activeOnly = *v
	}

	bookings, err := h.service.Bookings(c.Request.Context(), client.ID, middleware.CurrentActor(c).HotelFilter(nil), activeOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) loadClient(c *gin.Context) (*domain.Client, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return nil, false
	}

	client, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}

	actor := middleware.CurrentActor(c)
	if actor.IsSuperadmin() {
		return client, true
	}
	visible := false
	if actor.HotelID != nil {
		visible, err = h.service.VisibleToHotel(c.Request.Context(), client.ID, *actor.HotelID)
		if err != nil {
			response.FromError(c, err)
			return nil, false
		}
	}
	if !visible {
		response.FromError(c, ErrNotFound)
		return nil, false
	}
	return client, true
}
