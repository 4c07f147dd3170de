package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/jwt"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

type Service struct {
	users *UserRepository
	jwt   *jwt.Service
	log   *logrus.Logger
	now   func() time.Time
}

func NewService(users *UserRepository, jwtService *jwt.Service, log *logrus.Logger) *Service {
	return &Service{users: users, jwt: jwtService, log: log, now: time.Now}
}

// Login checks the password and issues an access token. Five wrong passwords
// in a row lock the account for 15 minutes.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if user.Locked(now) {
		return nil, ErrAccountLocked
	}

	if err := CheckPassword(req.Password, user.PasswordHash); err != nil {
		failed := user.FailedLoginAttempts + 1
		updates := map[string]any{"failed_login_attempts": failed}
		if failed >= maxFailedLoginAttempts {
			updates["locked_until"] = now.Add(lockoutDuration)
		}
		if err := s.users.Updates(ctx, user.ID, updates); err != nil {
			return nil, err
		}
		if failed >= maxFailedLoginAttempts {
			s.log.WithField("user_id", user.ID).Warn("account locked after failed logins")
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.users.Updates(ctx, user.ID, map[string]any{
		"failed_login_attempts": 0,
		"locked_until":          nil,
		"last_login_at":         now.UTC(),
	}); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.HotelID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("staff login")
	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwt.TTL().Seconds()),
	}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CreateUser registers a staff account. Hotel admins need an existing hotel;
// superadmins are never bound to one.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hotelID := req.HotelID
	switch req.Role {
	case domain.RoleSuperadmin:
		hotelID = nil
	case domain.RoleHotelAdmin:
		if hotelID == nil {
			return nil, ErrHotelRequired
		}
		ok, err := s.users.HotelExists(ctx, *hotelID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrHotelNotFound
		}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		HotelID:      hotelID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, hotelID *int64) ([]domain.User, error) {
	return s.users.List(ctx, hotelID)
}
