package auth

import "hotelpms/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Email    string          `json:"email" validate:"required,email,max=254"`
	Password string          `json:"password" validate:"required"`
	Name     string          `json:"name" validate:"max=150"`
	Role     domain.UserRole `json:"role" validate:"required"`
	HotelID  *int64          `json:"hotel_id"`
}

type LoginResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}
