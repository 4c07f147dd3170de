package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"hotelpms/internal/domain"
)

// CreateInput describes a new booking. Status defaults to pending; only
// back-office callers pass confirmed.
type CreateInput struct {
	HotelID         *int64
	ClientID        int64
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	GuestsCount     int
	SpecialRequests string
	Status          domain.BookingStatus
}

// UpdateInput changes an existing booking. Nil fields keep their value.
type UpdateInput struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	GuestsCount     *int
	SpecialRequests *string
}

type CreateBookingRequest struct {
	HotelID         *int64               `json:"hotel_id"`
	ClientID        int64                `json:"client_id" validate:"required,gt=0"`
	RoomID          int64                `json:"room_id" validate:"required,gt=0"`
	CheckIn         string               `json:"check_in" validate:"required"`
	CheckOut        string               `json:"check_out" validate:"required"`
	GuestsCount     int                  `json:"guests_count" validate:"required"`
	SpecialRequests string               `json:"special_requests" validate:"max=2000"`
	Status          domain.BookingStatus `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

type UpdateBookingRequest struct {
	CheckIn         *string `json:"check_in"`
	CheckOut        *string `json:"check_out"`
	GuestsCount     *int    `json:"guests_count" validate:"omitempty,gt=0"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=2000"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// PaymentRequest records a payment; a missing amount settles the balance.
type PaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// View is a booking with its derived amounts, as returned by the API.
type View struct {
	*domain.Booking
	Nights    int             `json:"nights"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Taxes     decimal.Decimal `json:"taxes"`
	AmountDue decimal.Decimal `json:"amount_due"`
}

func NewView(b *domain.Booking) View {
	return View{
		Booking:   b,
		Nights:    b.Nights(),
		Subtotal:  b.Subtotal(),
		Taxes:     b.Taxes(),
		AmountDue: b.AmountDue(),
	}
}

func NewViews(bs []domain.Booking) []View {
	out := make([]View, 0, len(bs))
	for i := range bs {
		out = append(out, NewView(&bs[i]))
	}
	return out
}

// Availability answers a room availability query.
type Availability struct {
	RoomID    int64           `json:"room_id"`
	HotelID   int64           `json:"hotel_id"`
	CheckIn   string          `json:"check_in"`
	CheckOut  string          `json:"check_out"`
	Available bool            `json:"available"`
	Nights    int             `json:"nights"`
	Total     decimal.Decimal `json:"total"`
}
