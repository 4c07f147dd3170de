// Package portal is the public face of the booking engine: guests search,
// book, pay and cancel without a staff account. A booking is only revealed to
// a caller who knows the guest's email.
package portal

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelpms/internal/domain"
	"hotelpms/internal/domain/booking"
	"hotelpms/internal/domain/client"
	"hotelpms/internal/pkg/apperror"
	"hotelpms/internal/pkg/dates"
)

var ErrInvalidDate = apperror.New(apperror.KindValidation, "INVALID_DATE", "dates must be YYYY-MM-DD")

type Service struct {
	db       *gorm.DB
	clients  *client.Service
	bookings *booking.Service
	log      *logrus.Logger
}

func NewService(db *gorm.DB, clients *client.Service, bookings *booking.Service, log *logrus.Logger) *Service {
	return &Service{db: db, clients: clients, bookings: bookings, log: log}
}

// Book resolves the guest to a client and places a pending booking in one
// transaction: a rejected booking leaves no new client and no changes to an
// existing one behind.
func (s *Service) Book(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	checkIn, err := dates.Parse(req.CheckIn)
	if err != nil {
		return nil, ErrInvalidDate
	}
	checkOut, err := dates.Parse(req.CheckOut)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var (
		b       *domain.Booking
		c       *domain.Client
		created bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// pending bookings send nothing, so no notifier is needed here
		clients := client.NewService(client.NewRepository(tx), s.log)
		bookings := booking.NewService(booking.NewRepository(tx), nil, s.log)

		var err error
		c, created, err = clients.FindOrCreate(ctx, req.Guest, nil)
		if err != nil {
			return err
		}
		b, err = bookings.Create(ctx, booking.CreateInput{
			ClientID:        c.ID,
			RoomID:          req.RoomID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			GuestsCount:     req.GuestsCount,
			SpecialRequests: req.SpecialRequests,
			Status:          domain.BookingPending,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"client_id":  c.ID,
		"new_client": created,
	}).Info("portal booking placed")
	return b, nil
}

// Lookup returns the booking only when email matches its guest. A mismatch
// looks exactly like a missing booking.
func (s *Service) Lookup(ctx context.Context, id int64, email string) (*domain.Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Client == nil || !strings.EqualFold(strings.TrimSpace(email), b.Client.Email) {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (s *Service) Pay(ctx context.Context, id int64, email string, amount *decimal.Decimal) (*domain.Booking, error) {
	if _, err := s.Lookup(ctx, id, email); err != nil {
		return nil, err
	}
	return s.bookings.RecordPayment(ctx, id, amount)
}

func (s *Service) Cancel(ctx context.Context, id int64, email, reason string) (*domain.Booking, error) {
	if _, err := s.Lookup(ctx, id, email); err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "cancelled by guest"
	}
	return s.bookings.Cancel(ctx, id, reason)
}

func isRejected(err error) bool {
	return errors.Is(err, booking.ErrInvalidTransition) ||
		errors.Is(err, booking.ErrPaymentNotAllowed) ||
		errors.Is(err, booking.ErrAlreadyPaid)
}
