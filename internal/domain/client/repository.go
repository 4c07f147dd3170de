package client

import (
	"context"
	"errors"
	"strings"

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
	HotelID *int64
	Search  string
	VIP     *bool
	Page    int
	PerPage int
}

func (r *Repository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) Save(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail returns nil, nil when nobody uses the email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	c, err := r.first(ctx, "email = ?", email)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// GetByDocument returns nil, nil when nobody uses the document.
func (r *Repository) GetByDocument(ctx context.Context, document string) (*domain.Client, error) {
	c, err := r.first(ctx, "document = ?", document)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return c, err
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Client, error) {
	var c domain.Client
	err := r.db.WithContext(ctx).Where(query, arg).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Taken reports whether another client already uses the email or document.
func (r *Repository) Taken(ctx context.Context, column, value string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).
		Where(column+" = ? AND id <> ?", value, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) hotelScope(q *gorm.DB, hotelID int64) *gorm.DB {
	return q.Where(
		"clients.hotel_id = ? OR clients.id IN (?)",
		hotelID,
		r.db.Model(&domain.Booking{}).Select("client_id").Where("hotel_id = ?", hotelID),
	)
}

// VisibleToHotel reports whether the client is registered at, or has booked
// at, the given hotel.
func (r *Repository) VisibleToHotel(ctx context.Context, clientID, hotelID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&domain.Client{}).Where("clients.id = ?", clientID)
	err := r.hotelScope(q, hotelID).Count(&n).Error
	return n > 0, err
}

func (r *Repository) List(ctx context.Context, f Filter) ([]domain.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Client{})
	if f.HotelID != nil {
		q = r.hotelScope(q, *f.HotelID)
	}
	if f.VIP != nil {
		q = q.Where("is_vip = ?", *f.VIP)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR document LIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []domain.Client
	err := q.Order("last_name, first_name").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&clients).Error
	return clients, total, err
}

// Bookings returns the client's booking history, newest stay first. With
// activeOnly only pending and confirmed bookings are returned.
func (r *Repository) Bookings(ctx context.Context, clientID int64, hotelID *int64, activeOnly bool) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Hotel").
		Where("client_id = ?", clientID)
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}
	if activeOnly {
		q = q.Where("status IN ?", domain.ActiveBookingStatuses)
	}

	var bookings []domain.Booking
	err := q.Order("check_in DESC").Find(&bookings).Error
	return bookings, err
}
