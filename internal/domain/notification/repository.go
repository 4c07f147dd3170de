package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hotelpms/internal/database"
	"hotelpms/internal/domain"
)

// ErrDuplicateEvent means the event was already handled; redeliveries are
// acknowledged without sending the email twice.
var ErrDuplicateEvent = errors.New("event already processed")

var errBookingGone = errors.New("booking not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LoadBooking fetches the booking with the relations the email needs.
func (r *Repository) LoadBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Room").
		Preload("Hotel").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBookingGone
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Begin stores a pending log row, claiming the event id.
func (r *Repository) Begin(ctx context.Context, entry *domain.EmailLog) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if database.IsUniqueViolation(err) {
		return ErrDuplicateEvent
	}
	return err
}

func (r *Repository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.EmailLog{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": domain.EmailSent, "sent_at": at, "error": ""}).Error
}

func (r *Repository) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.db.WithContext(ctx).
		Model(&domain.EmailLog{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": domain.EmailFailed, "error": reason}).Error
}

func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.EmailLog, error) {
	logs := make([]domain.EmailLog, 0)
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("id").
		Find(&logs).Error
	return logs, err
}

// DeleteOlderThan removes log rows created before now-age.
func (r *Repository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", time.Now().Add(-age)).
		Delete(&domain.EmailLog{})
	return res.RowsAffected, res.Error
}
