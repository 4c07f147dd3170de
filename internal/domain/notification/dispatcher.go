package notification

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/domain"
	"hotelpms/internal/domain/booking"
)

// Broadcaster pushes an event to live subscribers of a hotel.
type Broadcaster interface {
	Broadcast(hotelID *int64, v any)
}

// Dispatcher is the booking.Notifier of the API process. Delivery is
// best-effort: failures are logged and never returned to the lifecycle.
type Dispatcher struct {
	publisher Publisher
	board     Broadcaster
	log       *logrus.Logger
	now       func() time.Time
}

var _ booking.Notifier = (*Dispatcher)(nil)

// NewDispatcher wires the queue publisher and the board. board may be nil.
func NewDispatcher(publisher Publisher, board Broadcaster, log *logrus.Logger) *Dispatcher {
	if publisher == nil {
		publisher = NoBroker()
	}
	return &Dispatcher{publisher: publisher, board: board, log: log, now: time.Now}
}

func (d *Dispatcher) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return d.dispatch(ctx, EventBookingConfirmed, b)
}

func (d *Dispatcher) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	return d.dispatch(ctx, EventBookingCancelled, b)
}

func (d *Dispatcher) PaymentRecorded(ctx context.Context, b *domain.Booking) error {
	return d.dispatch(ctx, EventPaymentRecorded, b)
}

func (d *Dispatcher) dispatch(ctx context.Context, t EventType, b *domain.Booking) error {
	ev := NewBookingEvent(t, b, d.now())

	if d.board != nil {
		d.board.Broadcast(ev.HotelID, ev)
	}

	entry := d.log.WithFields(logrus.Fields{
		"event_id":   ev.EventID,
		"event":      ev.Type,
		"booking_id": ev.BookingID,
	})
	if err := d.publisher.Publish(ctx, ev); err != nil {
		if errors.Is(err, ErrNoBroker) {
			entry.Debug("event not queued, no broker configured")
			return nil
		}
		entry.WithError(err).Warn("event publish failed")
		return nil
	}
	entry.Debug("event queued")
	return nil
}
