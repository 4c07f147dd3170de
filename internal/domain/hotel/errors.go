package hotel

import "hotelpms/internal/pkg/apperror"

var (
	ErrNotFound  = apperror.New(apperror.KindNotFound, "HOTEL_NOT_FOUND", "hotel not found")
	ErrSlugTaken = apperror.New(apperror.KindConflict, "SLUG_TAKEN", "a hotel with this slug already exists")
	ErrInvalid   = apperror.New(apperror.KindValidation, "VALIDATION_ERROR", "hotel name is required")
)
