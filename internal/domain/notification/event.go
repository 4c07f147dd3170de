// Package notification turns booking lifecycle changes into events. The API
// process publishes them to RabbitMQ and the live board; the notifier worker
// consumes the queue and emails the guest.
package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/dates"
)

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventPaymentRecorded  EventType = "payment.recorded"
)

// BookingEvent is the message body on the queue and on the board socket.
type BookingEvent struct {
	EventID       string               `json:"event_id"`
	Type          EventType            `json:"type"`
	BookingID     int64                `json:"booking_id"`
	HotelID       *int64               `json:"hotel_id,omitempty"`
	RoomID        int64                `json:"room_id"`
	ClientID      int64                `json:"client_id"`
	Status        domain.BookingStatus `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	CheckIn       string               `json:"check_in"`
	CheckOut      string               `json:"check_out"`
	TotalPrice    decimal.Decimal      `json:"total_price"`
	PaidAmount    decimal.Decimal      `json:"paid_amount"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

func NewBookingEvent(t EventType, b *domain.Booking, now time.Time) BookingEvent {
	return BookingEvent{
		EventID:       uuid.NewString(),
		Type:          t,
		BookingID:     b.ID,
		HotelID:       b.HotelID,
		RoomID:        b.RoomID,
		ClientID:      b.ClientID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		CheckIn:       dates.Format(b.CheckIn),
		CheckOut:      dates.Format(b.CheckOut),
		TotalPrice:    b.TotalPrice,
		PaidAmount:    b.PaidAmount,
		OccurredAt:    now.UTC(),
	}
}

func (t EventType) Valid() bool {
	switch t {
	case EventBookingConfirmed, EventBookingCancelled, EventPaymentRecorded:
		return true
	}
	return false
}
