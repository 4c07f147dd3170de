package hotel

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/domain"
)

type Service struct {
	repo *Repository
	log  *logrus.Logger
}

func NewService(repo *Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create stores a new hotel. Without an explicit slug one is derived from the
// name and suffixed until it is unique.
func (s *Service) Create(ctx context.Context, req CreateHotelRequest) (*domain.Hotel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalid
	}

	slug, err := s.resolveSlug(ctx, req.Slug, name, 0)
	if err != nil {
		return nil, err
	}

	h := &domain.Hotel{
		Name:    name,
		Slug:    slug,
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	s.log.WithFields(logrus.Fields{"hotel_id": h.ID, "slug": h.Slug}).Info("hotel created")
	return h, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Hotel, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateHotelRequest) (*domain.Hotel, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalid
		}
		h.Name = name
	}
	if req.Slug != nil && *req.Slug != h.Slug {
		slug, err := s.resolveSlug(ctx, *req.Slug, h.Name, h.ID)
		if err != nil {
			return nil, err
		}
		h.Slug = slug
	}
	if req.Email != nil {
		h.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		h.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		h.Address = strings.TrimSpace(*req.Address)
	}

	if err := s.repo.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("update hotel: %w", err)
	}
	return h, nil
}

// SetBlocked blocks or unblocks a hotel. Blocked hotels reject new bookings;
// existing ones are left alone.
func (s *Service) SetBlocked(ctx context.Context, id int64, blocked bool) (*domain.Hotel, error) {
	if err := s.repo.SetBlocked(ctx, id, blocked); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"hotel_id": id, "blocked": blocked}).Info("hotel block flag changed")
	return s.repo.GetByID(ctx, id)
}

func (s *Service) resolveSlug(ctx context.Context, requested, name string, exceptID int64) (string, error) {
	if requested != "" {
		slug := Slugify(requested)
		if slug == "" {
			return "", ErrInvalid
		}
		taken, err := s.repo.SlugExists(ctx, slug, exceptID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrSlugTaken
		}
		return slug, nil
	}

	base := Slugify(name)
	if base == "" {
		base = "hotel"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugExists(ctx, slug, exceptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
