package room

import "hotelpms/internal/pkg/apperror"

var (
	ErrNotFound         = apperror.New(apperror.KindNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrHotelNotFound    = apperror.New(apperror.KindNotFound, "HOTEL_NOT_FOUND", "hotel not found")
	ErrNumberTaken      = apperror.New(apperror.KindConflict, "ROOM_NUMBER_TAKEN", "this hotel already has a room with that number")
	ErrHasBookings      = apperror.New(apperror.KindConflict, "ROOM_HAS_BOOKINGS", "room has active bookings and cannot be deleted")
	ErrInvalidType      = apperror.New(apperror.KindValidation, "INVALID_ROOM_TYPE", "room type must be one of single, double, triple, suite, family")
	ErrInvalidStatus    = apperror.New(apperror.KindValidation, "INVALID_ROOM_STATUS", "room status must be one of available, occupied, cleaning, maintenance, reserved")
	ErrInvalidCapacity  = apperror.New(apperror.KindValidation, "INVALID_CAPACITY", "capacity must be greater than zero")
	ErrInvalidPrice     = apperror.New(apperror.KindValidation, "INVALID_PRICE", "price must not be negative")
	ErrInvalidDateRange = apperror.New(apperror.KindValidation, "INVALID_DATE_RANGE", "check-out must be after check-in")
	ErrInvalidGuests    = apperror.New(apperror.KindValidation, "INVALID_GUESTS", "guests must be at least 1")
	ErrWindowTooLarge   = apperror.New(apperror.KindValidation, "WINDOW_TOO_LARGE", "calendar window is limited to 366 days")
)
