package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/domain"
	"hotelpms/internal/middleware"
	"hotelpms/internal/pkg/dates"
	"hotelpms/internal/pkg/request"
	"hotelpms/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking
// @Summary Create booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Booking"
// @Router /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !request.BindJSON(c, &req) {
		return
	}

	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid check_in, expected YYYY-MM-DD")
		return
	}
	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid check_out, expected YYYY-MM-DD")
		return
	}

	// Hotel admins book only into their own hotel.
	actor := middleware.CurrentActor(c)
	hotelID := req.HotelID
	if !actor.IsSuperadmin() {
		if hotelID == nil {
			hotelID = actor.HotelID
		}
		if hotelID == nil || !actor.CanAccessHotel(*hotelID) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this hotel")
			return
		}
	}

	b, err := h.service.Create(c.Request.Context(), CreateInput{
		HotelID:         hotelID,
		ClientID:        req.ClientID,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestsCount:     req.GuestsCount,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewView(b))
}

// ListBookings
// @Summary List bookings
// @Tags Bookings
// @Param hotel_id query int false "hotel (superadmin only)"
// @Param status query string false "booking status"
// @Param from query string false "check-in from, YYYY-MM-DD"
// @Param to query string false "check-in to, YYYY-MM-DD"
// @Router /bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	hotelID, ok := request.QueryInt64(c, "hotel_id")
	if !ok {
		return
	}
	clientID, ok := request.QueryInt64(c, "client_id")
	if !ok {
		return
	}
	roomID, ok := request.QueryInt64(c, "room_id")
	if !ok {
		return
	}
	from, ok := request.QueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := request.QueryDate(c, "to")
	if !ok {
		return
	}

	page, perPage := request.Page(c)
	f := Filter{
		HotelID:  middleware.CurrentActor(c).HotelFilter(hotelID),
		ClientID: clientID,
		RoomID:   roomID,
		From:     from,
		To:       to,
		Page:     page,
		PerPage:  perPage,
	}
	if v := c.Query("status"); v != "" {
		st := domain.BookingStatus(v)
		if !st.Valid() {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status")
			return
		}
		f.Status = &st
	}

	items, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, NewViews(items), total, page, perPage)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, NewView(b))
}

// Confirm
// @Summary Confirm pending booking
// @Tags Bookings
// @Router /bookings/{id}/confirm [patch]
func (h *Handler) Confirm(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}
	h.respond(c, h.service.Confirm)(b.ID)
}

// Cancel
// @Summary Cancel booking
// @Tags Bookings
// @Param request body CancelRequest false "Reason"
// @Router /bookings/{id}/cancel [patch]
func (h *Handler) Cancel(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}

	var req CancelRequest
	if c.Request.ContentLength > 0 && !request.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Cancel(c.Request.Context(), b.ID, req.Reason)
	h.render(c, updated, err)
}

func (h *Handler) Complete(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}
	h.respond(c, h.service.Complete)(b.ID)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}
	h.respond(c, h.service.MarkNoShow)(b.ID)
}

// RecordPayment
// @Summary Record payment; without amount the booking is settled in full
// @Tags Bookings
// @Param request body PaymentRequest false "Amount"
// @Router /bookings/{id}/payments [post]
func (h *Handler) RecordPayment(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if c.Request.ContentLength > 0 && !request.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.RecordPayment(c.Request.Context(), b.ID, req.Amount)
	h.render(c, updated, err)
}

// UpdateBooking
// @Summary Change dates, guests or requests of a pending or confirmed booking
// @Tags Bookings
// @Accept json
// @Param request body UpdateBookingRequest true "Changes"
// @Router /bookings/{id} [put]
func (h *Handler) UpdateBooking(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !request.BindJSON(c, &req) {
		return
	}

	in := UpdateInput{GuestsCount: req.GuestsCount, SpecialRequests: req.SpecialRequests}
	if req.CheckIn != nil {
		d, err := dates.Parse(*req.CheckIn)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid check_in, expected YYYY-MM-DD")
			return
		}
		in.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, err := dates.Parse(*req.CheckOut)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid check_out, expected YYYY-MM-DD")
			return
		}
		in.CheckOut = &d
	}

	updated, err := h.service.Update(c.Request.Context(), b.ID, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewView(updated))
}

// ResendConfirmation
// @Summary Send the confirmation email of a confirmed booking again
// @Tags Bookings
// @Router /bookings/{id}/resend-confirmation [post]
func (h *Handler) ResendConfirmation(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}
	h.respond(c, h.service.ResendConfirmation)(b.ID)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	b, ok := h.loadBooking(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), b.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// RoomAvailability
// @Summary Check whether a room is free for a stay
// @Tags Bookings
// @Param check_in query string true "YYYY-MM-DD"
// @Param check_out query string true "YYYY-MM-DD"
// @Param exclude_booking_id query int false "booking to ignore"
// @Router /rooms/{id}/availability [get]
func (h *Handler) RoomAvailability(c *gin.Context) {
	roomID, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	checkIn, ok := request.RequireDate(c, "check_in")
	if !ok {
		return
	}
	checkOut, ok := request.RequireDate(c, "check_out")
	if !ok {
		return
	}
	exclude, ok := request.QueryInt64(c, "exclude_booking_id")
	if !ok {
		return
	}

	res, err := h.service.RoomAvailability(c.Request.Context(), roomID, checkIn, checkOut, exclude)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !middleware.RequireHotelAccess(c, res.HotelID) {
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) respond(c *gin.Context, op func(ctx context.Context, id int64) (*domain.Booking, error)) func(id int64) {
	return func(id int64) {
		b, err := op(c.Request.Context(), id)
		h.render(c, b, err)
	}
}

// render writes a lifecycle result. Rejected transitions still carry the
// booking as it stands.
func (h *Handler) render(c *gin.Context, b *domain.Booking, err error) {
	if err != nil {
		if b != nil {
			response.WithData(c, err, NewView(b))
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewView(b))
}

func (h *Handler) loadBooking(c *gin.Context) (*domain.Booking, bool) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return nil, false
	}
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}

	actor := middleware.CurrentActor(c)
	if b.HotelID == nil {
		if actor.IsSuperadmin() {
			return b, true
		}
	} else if actor.CanAccessHotel(*b.HotelID) {
		return b, true
	}
	response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have access to this booking")
	return nil, false
}
