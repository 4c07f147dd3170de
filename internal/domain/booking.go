package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingNoShow    BookingStatus = "no_show"
)

// bookingTransitions is the only place that decides which status changes are
// legal. Statuses with no entry are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled, BookingCompleted, BookingNoShow},
}

// ActiveBookingStatuses are the statuses that hold a room for their dates.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingNoShow:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

// IsActive reports whether a booking in this status blocks its room.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Deletable lists the statuses whose bookings may be removed outright.
func (s BookingStatus) Deletable() bool {
	return s == BookingPending || s == BookingCancelled || s == BookingNoShow
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentRefunded PaymentStatus = "refunded"
)

// TaxRate applied on top of the room subtotal.
var TaxRate = decimal.New(10, -2)

// DateRange is a half-open stay [CheckIn, CheckOut). Both ends are calendar
// dates at midnight UTC.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func (r DateRange) Valid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps applies the half-open interval test. Ranges that only touch (one
// checks out the day the other checks in) do not overlap.
func Overlaps(a, b DateRange) bool {
	return a.CheckIn.Before(b.CheckOut) && a.CheckOut.After(b.CheckIn)
}

type Booking struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	HotelID            *int64          `json:"hotel_id,omitempty" gorm:"index"`
	ClientID           int64           `json:"client_id" gorm:"not null;index"`
	RoomID             int64           `json:"room_id" gorm:"not null;index:idx_bookings_room_dates"`
	CheckIn            time.Time       `json:"check_in" gorm:"type:date;not null;index:idx_bookings_room_dates"`
	CheckOut           time.Time       `json:"check_out" gorm:"type:date;not null;index:idx_bookings_room_dates"`
	Status             BookingStatus   `json:"status" gorm:"size:20;not null;index"`
	PaymentStatus      PaymentStatus   `json:"payment_status" gorm:"size:20;not null"`
	PaidAmount         decimal.Decimal `json:"paid_amount" gorm:"type:decimal(10,2);not null"`
	TotalPrice         decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	GuestsCount        int             `json:"guests_count" gorm:"not null"`
	SpecialRequests    string          `json:"special_requests,omitempty" gorm:"type:text"`
	CancellationReason string          `json:"cancellation_reason,omitempty" gorm:"type:text"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Hotel  *Hotel  `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Room   *Room   `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (b *Booking) Range() DateRange {
	return DateRange{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

func (b *Booking) Nights() int {
	return b.Range().Nights()
}

// Subtotal is nightly price times nights. Without the room loaded it falls
// back to the stored total, which was computed the same way.
func (b *Booking) Subtotal() decimal.Decimal {
	if b.Room == nil {
		return b.TotalPrice
	}
	return b.Room.Quote(b.Nights())
}

func (b *Booking) Taxes() decimal.Decimal {
	return b.Subtotal().Mul(TaxRate).Round(2)
}

func (b *Booking) AmountDue() decimal.Decimal {
	due := b.TotalPrice.Sub(b.PaidAmount)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// ApplyPayment adds amount to the paid total, never past TotalPrice. A nil
// amount settles the booking in full.
func (b *Booking) ApplyPayment(amount *decimal.Decimal) {
	if amount == nil {
		b.PaidAmount = b.TotalPrice
		b.PaymentStatus = PaymentPaid
		return
	}

	paid := b.PaidAmount.Add(*amount)
	if paid.GreaterThan(b.TotalPrice) {
		paid = b.TotalPrice
	}
	b.PaidAmount = paid

	if paid.GreaterThanOrEqual(b.TotalPrice) {
		b.PaymentStatus = PaymentPaid
	} else {
		b.PaymentStatus = PaymentPartial
	}
}

// Reprice sets a new total and derives the payment status from what has
// already been paid. Refunded bookings keep their status.
func (b *Booking) Reprice(total decimal.Decimal) {
	b.TotalPrice = total
	if b.PaymentStatus == PaymentRefunded {
		return
	}
	switch {
	case b.PaidAmount.IsZero():
		b.PaymentStatus = PaymentPending
	case b.PaidAmount.GreaterThanOrEqual(total):
		b.PaymentStatus = PaymentPaid
	default:
		b.PaymentStatus = PaymentPartial
	}
}
