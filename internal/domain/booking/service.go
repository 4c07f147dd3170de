package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotelpms/internal/database"
	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/apperror"
	"hotelpms/internal/pkg/dates"
)

type Service struct {
	repo   Repository
	notifs Notifier
	log    *logrus.Logger
	now    func() time.Time
}

func NewService(repo Repository, notifs Notifier, log *logrus.Logger) *Service {
	if notifs == nil {
		notifs = nopNotifier{}
	}
	return &Service{repo: repo, notifs: notifs, log: log, now: time.Now}
}

// CheckAvailability reports whether no pending or confirmed booking of the
// room overlaps [checkIn, checkOut). excludeID skips one booking, for
// re-validating a booking that is being edited. Read only.
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (bool, error) {
	stay := domain.DateRange{CheckIn: dates.Normalize(checkIn), CheckOut: dates.Normalize(checkOut)}
	if !stay.Valid() {
		return false, ErrInvalidDateRange
	}
	overlap, err := s.repo.HasOverlap(ctx, roomID, stay, excludeID)
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	return !overlap, nil
}

// RoomAvailability is CheckAvailability for callers that still need the room
// resolved, quoting the stay as well.
func (s *Service) RoomAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID *int64) (*Availability, error) {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	ok, err := s.CheckAvailability(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, err
	}

	nights := dates.Nights(checkIn, checkOut)
	return &Availability{
		RoomID:    room.ID,
		HotelID:   room.HotelID,
		CheckIn:   dates.Format(checkIn),
		CheckOut:  dates.Format(checkOut),
		Available: ok && room.Bookable(),
		Nights:    nights,
		Total:     room.Quote(nights),
	}, nil
}

// Create validates and stores a booking. The room row stays locked from the
// first check to the insert, so two requests for the same room cannot both
// pass the overlap test.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	status := in.Status
	if status == "" {
		status = domain.BookingPending
	}
	if status != domain.BookingPending && status != domain.BookingConfirmed {
		return nil, ErrInvalidStatus
	}
	if in.GuestsCount < 1 {
		return nil, ErrInvalidGuests
	}

	stay := domain.DateRange{CheckIn: dates.Normalize(in.CheckIn), CheckOut: dates.Normalize(in.CheckOut)}
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}
	now := s.now()
	if stay.CheckIn.Before(dates.Today(now)) {
		return nil, ErrPastDate
	}

	var bookingID int64
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		room, err := tx.LockRoom(ctx, in.RoomID)
		if err != nil {
			return err
		}
		ok, err := tx.ClientExists(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrClientNotFound
		}

		if !room.Bookable() {
			return ErrRoomUnavailable
		}
		overlap, err := tx.HasOverlap(ctx, room.ID, stay, nil)
		if err != nil {
			return err
		}
		if overlap {
			return ErrDateRangeConflict
		}
		if in.HotelID != nil && *in.HotelID != room.HotelID {
			return ErrHotelMismatch
		}
		hotel, err := tx.GetHotel(ctx, room.HotelID)
		if err != nil {
			return err
		}
		if hotel.IsBlocked {
			return ErrHotelBlocked
		}
		if in.GuestsCount > room.Capacity {
			return ErrCapacityExceeded
		}

		hotelID := room.HotelID
		b := &domain.Booking{
			HotelID:         &hotelID,
			ClientID:        in.ClientID,
			RoomID:          room.ID,
			CheckIn:         stay.CheckIn,
			CheckOut:        stay.CheckOut,
			Status:          status,
			PaymentStatus:   domain.PaymentPending,
			PaidAmount:      decimal.Zero,
			TotalPrice:      room.Quote(stay.Nights()),
			GuestsCount:     in.GuestsCount,
			SpecialRequests: strings.TrimSpace(in.SpecialRequests),
		}
		if status == domain.BookingConfirmed {
			confirmedAt := now.UTC()
			b.ConfirmedAt = &confirmedAt
		}
		if err := tx.Create(ctx, b); err != nil {
			return err
		}
		if status == domain.BookingConfirmed {
			if err := tx.UpdateRoomStatus(ctx, room.ID, domain.RoomReserved); err != nil {
				return err
			}
		}
		bookingID = b.ID
		return nil
	})
	if err != nil {
		if database.IsExclusionViolation(err) {
			return nil, ErrDateRangeConflict
		}
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"room_id":    b.RoomID,
		"status":     b.Status,
		"check_in":   dates.Format(b.CheckIn),
		"check_out":  dates.Format(b.CheckOut),
	}).Info("booking created")

	if b.Status == domain.BookingConfirmed {
		s.notify(ctx, "booking.confirmed", s.notifs.BookingConfirmed, b)
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Booking, int64, error) {
	return s.repo.List(ctx, f)
}

// Confirm moves a pending booking to confirmed and reserves the room.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, id, domain.BookingConfirmed, func(tx Repository, b *domain.Booking, now time.Time) error {
		b.ConfirmedAt = &now
		return tx.UpdateRoomStatus(ctx, b.RoomID, domain.RoomReserved)
	})
	if err != nil {
		return b, err
	}
	s.notify(ctx, "booking.confirmed", s.notifs.BookingConfirmed, b)
	return b, nil
}

// Cancel ends a pending or confirmed booking and frees the room.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	b, err := s.transition(ctx, id, domain.BookingCancelled, func(tx Repository, b *domain.Booking, now time.Time) error {
		b.CancelledAt = &now
		b.CancellationReason = strings.TrimSpace(reason)
		return releaseRoom(ctx, tx, b, now)
	})
	if err != nil {
		return b, err
	}
	s.notify(ctx, "booking.cancelled", s.notifs.BookingCancelled, b)
	return b, nil
}

// Complete closes a confirmed stay; the room goes to cleaning.
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingCompleted, func(tx Repository, b *domain.Booking, _ time.Time) error {
		return tx.UpdateRoomStatus(ctx, b.RoomID, domain.RoomCleaning)
	})
}

// MarkNoShow closes a confirmed booking whose guest never arrived.
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.BookingNoShow, func(tx Repository, b *domain.Booking, now time.Time) error {
		return releaseRoom(ctx, tx, b, now)
	})
}

// releaseRoom puts the room back to available unless another confirmed
// booking that has not checked out yet still holds it.
func releaseRoom(ctx context.Context, tx Repository, b *domain.Booking, now time.Time) error {
	held, err := tx.RoomHeldByOther(ctx, b.RoomID, b.ID, dates.Today(now))
	if err != nil {
		return err
	}
	if held {
		return nil
	}
	return tx.UpdateRoomStatus(ctx, b.RoomID, domain.RoomAvailable)
}

// transition applies one status change under a row lock. An illegal change
// commits nothing and returns the current booking along with
// ErrInvalidTransition.
func (s *Service) transition(
	ctx context.Context,
	id int64,
	to domain.BookingStatus,
	apply func(tx Repository, b *domain.Booking, now time.Time) error,
) (*domain.Booking, error) {
	var rejected error
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !b.Status.CanTransitionTo(to) {
			rejected = fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, to)
			return nil
		}

		from := b.Status
		b.Status = to
		if err := apply(tx, b, s.now().UTC()); err != nil {
			return err
		}
		if err := tx.Save(ctx, b); err != nil {
			return err
		}
		s.log.WithFields(logrus.Fields{"booking_id": id, "from": from, "to": to}).Info("booking status changed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return b, rejected
}

// RecordPayment adds a payment to a pending or confirmed booking. A nil
// amount settles it in full. The paid amount never exceeds the total.
func (s *Service) RecordPayment(ctx context.Context, id int64, amount *decimal.Decimal) (*domain.Booking, error) {
	if amount != nil {
		rounded := amount.Round(2)
		if !rounded.IsPositive() {
			return nil, ErrInvalidAmount
		}
		amount = &rounded
	}

	var rejected error
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !b.Status.IsActive() {
			rejected = ErrPaymentNotAllowed
			return nil
		}
		if b.PaymentStatus == domain.PaymentPaid {
			rejected = ErrAlreadyPaid
			return nil
		}

		b.ApplyPayment(amount)
		return tx.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return b, rejected
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":     id,
		"paid_amount":    b.PaidAmount.StringFixed(2),
		"payment_status": b.PaymentStatus,
	}).Info("payment recorded")
	s.notify(ctx, "payment.recorded", s.notifs.PaymentRecorded, b)
	return b, nil
}

// Update changes the stay, party size or requests of a pending or confirmed
// booking. The new dates are checked against the room's other bookings under
// the room lock and the total is quoted again at the room's current price.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Booking, error) {
	if in.GuestsCount != nil && *in.GuestsCount < 1 {
		return nil, ErrInvalidGuests
	}
	// booking before room, the same order transitions take their locks in
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !b.Status.IsActive() {
			return ErrNotEditable
		}
		room, err := tx.LockRoom(ctx, b.RoomID)
		if err != nil {
			return err
		}

		stay := domain.DateRange{CheckIn: dates.Normalize(b.CheckIn), CheckOut: dates.Normalize(b.CheckOut)}
		originalCheckIn := stay.CheckIn
		if in.CheckIn != nil {
			stay.CheckIn = dates.Normalize(*in.CheckIn)
		}
		if in.CheckOut != nil {
			stay.CheckOut = dates.Normalize(*in.CheckOut)
		}
		if !stay.Valid() {
			return ErrInvalidDateRange
		}
		if !stay.CheckIn.Equal(originalCheckIn) && stay.CheckIn.Before(dates.Today(s.now())) {
			return ErrPastDate
		}

		overlap, err := tx.HasOverlap(ctx, room.ID, stay, &b.ID)
		if err != nil {
			return err
		}
		if overlap {
			return ErrDateRangeConflict
		}

		guests := b.GuestsCount
		if in.GuestsCount != nil {
			guests = *in.GuestsCount
		}
		if guests > room.Capacity {
			return ErrCapacityExceeded
		}

		total := room.Quote(stay.Nights())
		if b.PaidAmount.GreaterThan(total) {
			return ErrTotalBelowPaid
		}

		b.CheckIn, b.CheckOut = stay.CheckIn, stay.CheckOut
		b.GuestsCount = guests
		if in.SpecialRequests != nil {
			b.SpecialRequests = strings.TrimSpace(*in.SpecialRequests)
		}
		b.Reprice(total)
		return tx.Save(ctx, b)
	})
	if err != nil {
		if database.IsExclusionViolation(err) {
			return nil, ErrDateRangeConflict
		}
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"booking_id":  b.ID,
		"check_in":    dates.Format(b.CheckIn),
		"check_out":   dates.Format(b.CheckOut),
		"total_price": b.TotalPrice.StringFixed(2),
	}).Info("booking updated")
	return b, nil
}

// ResendConfirmation emits the confirmation event of a confirmed booking
// again. Each emission carries a new event id, so the guest gets a new mail.
func (s *Service) ResendConfirmation(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed {
		return b, ErrResendNotAllowed
	}
	s.notify(ctx, "booking.confirmed", s.notifs.BookingConfirmed, b)
	s.log.WithField("booking_id", id).Info("booking confirmation resent")
	return b, nil
}

// Delete removes a booking that never committed the room, or was closed
// without a stay.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		if !b.Status.Deletable() {
			return ErrNotDeletable
		}
		return tx.Delete(ctx, id)
	})
}

// MarkNoShows sweeps confirmed bookings whose check-in is more than graceDays
// behind today, one transaction per booking. Bookings that changed status in
// the meantime are skipped.
func (s *Service) MarkNoShows(ctx context.Context, graceDays int) (int, error) {
	cutoff := dates.Today(s.now()).AddDate(0, 0, -graceDays)
	ids, err := s.repo.NoShowCandidates(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list no-show candidates: %w", err)
	}

	marked := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return marked, err
		}
		_, err := s.MarkNoShow(ctx, id)
		switch {
		case err == nil:
			marked++
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotFound):
			s.log.WithField("booking_id", id).Debug("no-show skipped, booking changed meanwhile")
		default:
			s.log.WithError(err).WithField("booking_id", id).Error("no-show sweep failed for booking")
		}
	}
	return marked, nil
}

func (s *Service) notify(ctx context.Context, event string, send func(context.Context, *domain.Booking) error, b *domain.Booking) {
	if err := send(ctx, b); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"booking_id": b.ID,
			"event":      event,
		}).Warn("booking notification failed")
	}
}
