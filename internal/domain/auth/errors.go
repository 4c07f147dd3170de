package auth

import "hotelpms/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "INVALID_CREDENTIALS", "email or password is incorrect")
	ErrAccountLocked      = apperror.New(apperror.KindForbidden, "ACCOUNT_LOCKED", "account is temporarily locked")
	ErrAccountDisabled    = apperror.New(apperror.KindForbidden, "ACCOUNT_DISABLED", "account is disabled")
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailTaken         = apperror.New(apperror.KindConflict, "EMAIL_TAKEN", "email already registered")
	ErrInvalidRole        = apperror.New(apperror.KindValidation, "INVALID_ROLE", "role must be superadmin or hotel_admin")
	ErrHotelRequired      = apperror.New(apperror.KindValidation, "HOTEL_REQUIRED", "hotel admins must be assigned to a hotel")
	ErrHotelNotFound      = apperror.New(apperror.KindNotFound, "HOTEL_NOT_FOUND", "hotel not found")
	ErrWeakPassword       = apperror.New(apperror.KindValidation, "WEAK_PASSWORD", "password must be at least 8 characters")
)
