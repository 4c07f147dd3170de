package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelpms/internal/domain"
	"hotelpms/internal/domain/booking"
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
// @Summary Book a room as a guest
// @Tags Portal
// @Accept json
// @Produce json
// @Router /portal/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking.NewView(b))
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	email := c.Query("email")
	if email == "" {
		response.Error(c, http.StatusBadRequest, "EMAIL_REQUIRED", "email query parameter is required")
		return
	}

	b, err := h.service.Lookup(c.Request.Context(), id, email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking.NewView(b))
}

func (h *Handler) Pay(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Pay(c.Request.Context(), id, req.Email, req.Amount)
	render(c, b, err)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req CancelRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, req.Email, req.Reason)
	render(c, b, err)
}

func render(c *gin.Context, b *domain.Booking, err error) {
	if err != nil {
		if b != nil && isRejected(err) {
			response.WithData(c, err, booking.NewView(b))
			return
		}
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking.NewView(b))
}
