package room

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

// ListHotelRooms
// @Summary List rooms of a hotel
// @Tags Rooms
// @Param status query string false "room status"
// @Param room_type query string false "room type"
// @Router /hotels/{id}/rooms [get]
func (h *Handler) ListHotelRooms(c *gin.Context) {
	hotelID, ok := request.ParamID(c, "id")
	if !ok || !middleware.RequireHotelAccess(c, hotelID) {
		return
	}

	f := Filter{HotelID: &hotelID, Active: request.QueryBool(c, "active")}
	if v := c.Query("status"); v != "" {
		st := domain.RoomStatus(v)
		f.Status = &st
	}
	if v := c.Query("room_type"); v != "" {
		rt := domain.RoomType(v)
		f.RoomType = &rt
	}

	rooms, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// CreateRoom
// @Summary Create room in a hotel
// @Tags Rooms
// @Router /hotels/{id}/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	hotelID, ok := request.ParamID(c, "id")
	if !ok || !middleware.RequireHotelAccess(c, hotelID) {
		return
	}

	var req CreateRoomRequest
	if !request.BindJSON(c, &req) {
		return
	}

	room, err := h.service.Create(c.Request.Context(), hotelID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, ok := h.loadRoom(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	room, ok := h.loadRoom(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if !request.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), room.ID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// ChangeStatus sets the housekeeping status of a room
func (h *Handler) ChangeStatus(c *gin.Context) {
	room, ok := h.loadRoom(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !request.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.ChangeStatus(c.Request.Context(), room.ID, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	room, ok := h.loadRoom(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), room.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Calendar
// @Summary Day-by-day availability of a room
// @Tags Rooms
// @Param start_date query string false "YYYY-MM-DD, default today"
// @Param end_date query string false "YYYY-MM-DD, default start + 60 days"
// @Router /rooms/{id}/calendar [get]
func (h *Handler) Calendar(c *gin.Context) {
	room, ok := h.loadRoom(c)
	if !ok {
		return
	}
	h.calendar(c, room.ID)
}

// PublicCalendar serves the same calendar without staff scoping.
func (h *Handler) PublicCalendar(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	h.calendar(c, id)
}

func (h *Handler) calendar(c *gin.Context, roomID int64) {
	from, ok := request.QueryDate(c, "start_date")
	if !ok {
		return
	}
	to, ok := request.QueryDate(c, "end_date")
	if !ok {
		return
	}

	cal, err := h.service.Calendar(c.Request.Context(), roomID, from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cal)
}

// SearchAvailable lists rooms free for a stay; shared by staff and portal.
func (h *Handler) SearchAvailable(c *gin.Context) {
	checkIn, ok := request.RequireDate(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := request.RequireDate(c, "check_out")
	if !ok {
		return
	}
	hotelID, ok := request.QueryInt64(c, "hotel_id")
	if !ok {
		return
	}
	guests, ok := request.QueryInt64(c, "guests")
	if !ok {
		return
	}

	q := SearchQuery{HotelID: hotelID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1}
	if guests != nil {
		q.Guests = int(*guests)
	}

	rooms, err := h.service.SearchAvailable(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

func (h *Handler) loadRoom(c *gin.Context) (*domain.Room, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return nil, false
	}
	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	if !middleware.RequireHotelAccess(c, room.HotelID) {
		return nil, false
	}
	return room, true
}
