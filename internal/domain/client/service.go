package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/database"
	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/apperror"
	"hotelpms/internal/pkg/dates"
	"hotelpms/internal/pkg/validator"
)

var errInvalidBirthDate = apperror.New(apperror.KindValidation, "INVALID_DATE", "birth_date must be YYYY-MM-DD")

type Service struct {
	repo *Repository
	log  *logrus.Logger
}

func NewService(repo *Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create registers a guest. Email and document must be free system-wide.
func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	c := &domain.Client{
		HotelID:     req.HotelID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       normalizeEmail(req.Email),
		Document:    strings.TrimSpace(req.Document),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		Nationality: strings.TrimSpace(req.Nationality),
		IsActive:    true,
		IsVIP:       req.IsVIP,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		d, err := dates.Parse(*req.BirthDate)
		if err != nil {
			return nil, errInvalidBirthDate
		}
		c.BirthDate = &d
	}

	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Client, int64, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) VisibleToHotel(ctx context.Context, clientID, hotelID int64) (bool, error) {
	return s.repo.VisibleToHotel(ctx, clientID, hotelID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		c.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		c.Email = normalizeEmail(*req.Email)
	}
	if req.Document != nil {
		c.Document = strings.TrimSpace(*req.Document)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	if req.Nationality != nil {
		c.Nationality = strings.TrimSpace(*req.Nationality)
	}
	if req.IsVIP != nil {
		c.IsVIP = *req.IsVIP
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			c.BirthDate = nil
		} else {
			d, err := dates.Parse(*req.BirthDate)
			if err != nil {
				return nil, errInvalidBirthDate
			}
			c.BirthDate = &d
		}
	}

	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, s.uniqueConflict(ctx, c)
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

func (s *Service) Bookings(ctx context.Context, clientID int64, hotelID *int64, activeOnly bool) ([]domain.Booking, error) {
	if _, err := s.repo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.Bookings(ctx, clientID, hotelID, activeOnly)
}

// FindOrCreate resolves a portal guest to a client: by email first, then by
// document, else a new client is created. A found client takes over the
// submitted email and document unless another client already owns them, and
// gets its empty phone and name filled in.
func (s *Service) FindOrCreate(ctx context.Context, g GuestDetails, hotelID *int64) (*domain.Client, bool, error) {
	email := normalizeEmail(g.Email)
	document := strings.TrimSpace(g.Document)
	first, last := domain.SplitName(g.FullName)

	byEmail, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	byDocument, err := s.repo.GetByDocument(ctx, document)
	if err != nil {
		return nil, false, err
	}

	existing := byEmail
	if existing == nil {
		existing = byDocument
	}

	if existing == nil {
		c := &domain.Client{
			HotelID:   hotelID,
			FirstName: first,
			LastName:  last,
			Email:     email,
			Document:  document,
			Phone:     strings.TrimSpace(g.Phone),
			IsActive:  true,
		}
		if err := s.validate(ctx, c); err != nil {
			return nil, false, err
		}
		if err := s.insert(ctx, c); err != nil {
			return nil, false, err
		}
		s.log.WithField("client_id", c.ID).Info("client created from portal")
		return c, true, nil
	}

	changed := false
	if existing.Email != email {
		if byEmail != nil {
			return nil, false, ErrEmailTaken
		}
		existing.Email = email
		changed = true
	}
	if existing.Document != document {
		if byDocument != nil && byDocument.ID != existing.ID {
			return nil, false, ErrDocumentTaken
		}
		existing.Document = document
		changed = true
	}
	if existing.Phone == "" && g.Phone != "" {
		existing.Phone = strings.TrimSpace(g.Phone)
		changed = true
	}
	if existing.FirstName == "" && first != "" {
		existing.FirstName = first
		changed = true
	}
	if existing.LastName == "" && last != "" {
		existing.LastName = last
		changed = true
	}
	if changed {
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update client: %w", err)
		}
	}
	return existing, false, nil
}

func (s *Service) insert(ctx context.Context, c *domain.Client) error {
	if err := s.repo.Create(ctx, c); err != nil {
		if database.IsUniqueViolation(err) {
			return s.uniqueConflict(ctx, c)
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, c *domain.Client) error {
	if c.FirstName == "" {
		return ErrNameRequired
	}
	if !validator.ValidDNI(c.Document) {
		return ErrInvalidDocument
	}
	if c.Phone != "" && !validator.ValidPhone(c.Phone) {
		return ErrInvalidPhone
	}

	taken, err := s.repo.Taken(ctx, "email", c.Email, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	taken, err = s.repo.Taken(ctx, "document", c.Document, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDocumentTaken
	}
	return nil
}

// uniqueConflict works out which unique column a racing insert hit.
func (s *Service) uniqueConflict(ctx context.Context, c *domain.Client) error {
	if taken, _ := s.repo.Taken(ctx, "email", c.Email, c.ID); taken {
		return ErrEmailTaken
	}
	return ErrDocumentTaken
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
