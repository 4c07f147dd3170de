package booking

import "hotelpms/internal/pkg/apperror"

// Creation rules, in the order they are checked.
var (
	ErrInvalidDateRange  = apperror.New(apperror.KindValidation, "INVALID_DATE_RANGE", "check-out must be after check-in")
	ErrPastDate          = apperror.New(apperror.KindValidation, "PAST_DATE_NOT_ALLOWED", "check-in cannot be in the past")
	ErrRoomUnavailable   = apperror.New(apperror.KindConflict, "ROOM_UNAVAILABLE", "room is not available for booking")
	ErrDateRangeConflict = apperror.New(apperror.KindConflict, "DATE_RANGE_CONFLICT", "room is already booked for some of these dates")
	ErrHotelMismatch     = apperror.New(apperror.KindConflict, "HOTEL_MISMATCH", "room does not belong to the selected hotel")
	ErrHotelBlocked      = apperror.New(apperror.KindConflict, "HOTEL_BLOCKED", "hotel is blocked and does not accept bookings")
	ErrCapacityExceeded  = apperror.New(apperror.KindConflict, "CAPACITY_EXCEEDED", "guest count exceeds room capacity")
)

var (
	ErrInvalidGuests  = apperror.New(apperror.KindValidation, "INVALID_GUESTS", "guests count must be at least 1")
	ErrInvalidStatus  = apperror.New(apperror.KindValidation, "INVALID_STATUS", "a new booking must be pending or confirmed")
	ErrInvalidAmount  = apperror.New(apperror.KindValidation, "INVALID_AMOUNT", "payment amount must be greater than zero")
	ErrNotFound       = apperror.New(apperror.KindNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrRoomNotFound   = apperror.New(apperror.KindNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrClientNotFound = apperror.New(apperror.KindNotFound, "CLIENT_NOT_FOUND", "client not found")
	ErrHotelNotFound  = apperror.New(apperror.KindNotFound, "HOTEL_NOT_FOUND", "hotel not found")

	ErrInvalidTransition = apperror.New(apperror.KindConflict, "INVALID_TRANSITION", "booking cannot move from its current status")
	ErrPaymentNotAllowed = apperror.New(apperror.KindConflict, "PAYMENT_NOT_ALLOWED", "payments are only accepted for pending or confirmed bookings")
	ErrAlreadyPaid       = apperror.New(apperror.KindConflict, "ALREADY_PAID", "booking is already fully paid")
	ErrNotDeletable      = apperror.New(apperror.KindConflict, "BOOKING_NOT_DELETABLE", "only pending, cancelled or no-show bookings can be deleted")
	ErrNotEditable       = apperror.New(apperror.KindConflict, "BOOKING_NOT_EDITABLE", "only pending or confirmed bookings can be changed")
	ErrTotalBelowPaid    = apperror.New(apperror.KindConflict, "TOTAL_BELOW_PAID", "the new total would be less than the amount already paid")
	ErrResendNotAllowed  = apperror.New(apperror.KindConflict, "RESEND_NOT_ALLOWED", "confirmation can only be resent for confirmed bookings")
)
