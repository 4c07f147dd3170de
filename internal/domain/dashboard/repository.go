package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotelpms/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) bookings(ctx context.Context, hotelID *int64) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}
	return q
}

func (r *Repository) inPeriod(ctx context.Context, hotelID *int64, from, to time.Time) *gorm.DB {
	return r.bookings(ctx, hotelID).Where("check_in >= ? AND check_in <= ?", from, to)
}

func (r *Repository) CountRooms(ctx context.Context, hotelID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// OccupiedRooms counts distinct rooms with a confirmed booking covering day.
func (r *Repository) OccupiedRooms(ctx context.Context, hotelID *int64, day time.Time) (int64, error) {
	var n int64
	err := r.bookings(ctx, hotelID).
		Where("status = ?", domain.BookingConfirmed).
		Where("check_in <= ? AND check_out > ?", day, day).
		Distinct("room_id").
		Count(&n).Error
	return n, err
}

func (r *Repository) CheckinsOn(ctx context.Context, hotelID *int64, day time.Time) (int64, error) {
	var n int64
	err := r.bookings(ctx, hotelID).Where("check_in = ?", day).Count(&n).Error
	return n, err
}

func (r *Repository) CountInPeriod(ctx context.Context, hotelID *int64, from, to time.Time) (int64, error) {
	var n int64
	err := r.inPeriod(ctx, hotelID, from, to).Count(&n).Error
	return n, err
}

// Revenue sums the totals of confirmed and completed bookings.
func (r *Repository) Revenue(ctx context.Context, hotelID *int64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.inPeriod(ctx, hotelID, from, to).
		Where("status IN ?", []domain.BookingStatus{domain.BookingConfirmed, domain.BookingCompleted}).
		Select("SUM(total_price)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

type dailyRow struct {
	CheckIn time.Time
	Status  domain.BookingStatus
	N       int64
}

func (r *Repository) DailyByStatus(ctx context.Context, hotelID *int64, from, to time.Time) ([]dailyRow, error) {
	var rows []dailyRow
	err := r.inPeriod(ctx, hotelID, from, to).
		Select("check_in, status, COUNT(*) AS n").
		Group("check_in, status").
		Order("check_in").
		Scan(&rows).Error
	return rows, err
}

type statusRow struct {
	Status string
	N      int64
}

func (r *Repository) StatusCounts(ctx context.Context, hotelID *int64, from, to time.Time) ([]statusRow, error) {
	var rows []statusRow
	err := r.inPeriod(ctx, hotelID, from, to).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) RoomStatusCounts(ctx context.Context, hotelID *int64) ([]statusRow, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}
	var rows []statusRow
	err := q.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error
	return rows, err
}

func (r *Repository) HotelExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
