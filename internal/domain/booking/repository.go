package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelpms/internal/domain"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &bookingRepository{db: db}
}

type Filter struct {
	HotelID  *int64
	ClientID *int64
	RoomID   *int64
	Status   *domain.BookingStatus
	// From and To bound the check-in date, both inclusive.
	From    *time.Time
	To      *time.Time
	Page    int
	PerPage int
}

func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&bookingRepository{db: tx})
	})
}

func (r *bookingRepository) LockRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *bookingRepository) LockBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *bookingRepository) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *bookingRepository) ClientExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// HasOverlap runs the half-open overlap test against the room's pending and
// confirmed bookings.
func (r *bookingRepository) HasOverlap(ctx context.Context, roomID int64, stay domain.DateRange, excludeID *int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", domain.ActiveBookingStatuses).
		Where("check_in < ? AND check_out > ?", stay.CheckOut, stay.CheckIn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookingRepository) RoomHeldByOther(ctx context.Context, roomID, excludeID int64, today time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ? AND id <> ?", roomID, excludeID).
		Where("status = ? AND check_out > ?", domain.BookingConfirmed, today).
		Count(&n).Error
	return n > 0, err
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Client").
		Preload("Hotel").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *bookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Booking{}, id).Error
}

func (r *bookingRepository) UpdateRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", roomID).
		Update("status", status).Error
}

func (r *bookingRepository) List(ctx context.Context, f Filter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.HotelID != nil {
		q = q.Where("hotel_id = ?", *f.HotelID)
	}
	if f.ClientID != nil {
		q = q.Where("client_id = ?", *f.ClientID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.From != nil {
		q = q.Where("check_in >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("check_in <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = 20
	}

	var bookings []domain.Booking
	err := q.Preload("Room").Preload("Client").Preload("Hotel").
		Order("check_in DESC, id DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *bookingRepository) NoShowCandidates(ctx context.Context, checkInBefore time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("status = ? AND check_in < ?", domain.BookingConfirmed, checkInBefore).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}
