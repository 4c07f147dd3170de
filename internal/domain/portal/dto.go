package portal

import (
	"github.com/shopspring/decimal"

	"hotelpms/internal/domain/client"
)

type CreateBookingRequest struct {
	Guest           client.GuestDetails `json:"guest" validate:"required"`
	RoomID          int64               `json:"room_id" validate:"required,gt=0"`
	CheckIn         string              `json:"check_in" validate:"required"`
	CheckOut        string              `json:"check_out" validate:"required"`
	GuestsCount     int                 `json:"guests_count" validate:"required"`
	SpecialRequests string              `json:"special_requests" validate:"max=2000"`
}

// OwnerRequest proves the caller is the guest of the booking.
type OwnerRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PaymentRequest struct {
	Email  string           `json:"email" validate:"required,email"`
	Amount *decimal.Decimal `json:"amount"`
}

type CancelRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Reason string `json:"reason" validate:"max=500"`
}
