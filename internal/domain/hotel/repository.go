package hotel

import (
	"context"
	"errors"

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
	Blocked *bool
	Search  string
}

func (r *Repository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.WithContext(ctx).First(&h, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *Repository) SlugExists(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Hotel{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) List(ctx context.Context, f Filter) ([]domain.Hotel, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{})
	if f.Blocked != nil {
		q = q.Where("is_blocked = ?", *f.Blocked)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+toLower(f.Search)+"%")
	}

	var hotels []domain.Hotel
	err := q.Order("name").Find(&hotels).Error
	return hotels, err
}

func (r *Repository) Save(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *Repository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("id = ?", id).Update("is_blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
