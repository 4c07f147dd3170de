package room

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hotelpms/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type Filter struct {
	HotelID  *int64
	Status   *domain.RoomStatus
	RoomType *domain.RoomType
	Active   *bool
}

// SearchQuery selects bookable rooms free for a whole stay.
type SearchQuery struct {
	HotelID  *int64
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// Span is an active booking's occupied range, used to paint calendars.
type Span struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (r *Repository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Omit("Hotel").Create(room).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).Preload("Hotel").First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Repository) HotelExists(ctx context.Context, hotelID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("id = ?", hotelID).Count(&n).Error
	return n > 0, err
}

func (r *Repository) NumberExists(ctx context.Context, hotelID int64, number string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Room{}).
		Where("hotel_id = ? AND number = ? AND id <> ?", hotelID, number, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) List(ctx context.Context, f Filter) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})
	if f.HotelID != nil {
		q = q.Where("hotel_id = ?", *f.HotelID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.RoomType != nil {
		q = q.Where("room_type = ?", *f.RoomType)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}

	var rooms []domain.Room
	err := q.Order("hotel_id, number").Find(&rooms).Error
	return rooms, err
}

func (r *Repository) Save(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Omit("Hotel").Save(room).Error
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Room{}, id).Error
}

func (r *Repository) CountActiveBookings(ctx context.Context, roomID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, domain.ActiveBookingStatuses).
		Count(&n).Error
	return n, err
}

// SearchAvailable returns active, available rooms of unblocked hotels that fit
// the party and have no active booking overlapping the stay.
func (r *Repository) SearchAvailable(ctx context.Context, q SearchQuery) ([]domain.Room, error) {
	overlapping := r.db.Model(&domain.Booking{}).
		Select("1").
		Where("bookings.room_id = rooms.id").
		Where("bookings.status IN ?", domain.ActiveBookingStatuses).
		Where("bookings.check_in < ? AND bookings.check_out > ?", q.CheckOut, q.CheckIn)

	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Select("rooms.*").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.is_active = ? AND rooms.status = ?", true, domain.RoomAvailable).
		Where("rooms.capacity >= ?", q.Guests).
		Where("hotels.is_blocked = ?", false).
		Where("NOT EXISTS (?)", overlapping)
	if q.HotelID != nil {
		tx = tx.Where("rooms.hotel_id = ?", *q.HotelID)
	}

	var rooms []domain.Room
	err := tx.Preload("Hotel").Order("rooms.price, rooms.hotel_id, rooms.number").Find(&rooms).Error
	return rooms, err
}

// ActiveSpans lists active bookings of the room that intersect [from, to).
func (r *Repository) ActiveSpans(ctx context.Context, roomID int64, from, to time.Time) ([]Span, error) {
	var spans []Span
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("check_in, check_out").
		Where("room_id = ? AND status IN ?", roomID, domain.ActiveBookingStatuses).
		Where("check_in < ? AND check_out > ?", to, from).
		Order("check_in").
		Scan(&spans).Error
	return spans, err
}
