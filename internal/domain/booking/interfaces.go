package booking

import (
	"context"
	"time"

	"hotelpms/internal/domain"
)

// Repository is the persistence the lifecycle needs. Methods called on the
// Repository handed to a Transaction callback run inside that transaction.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// LockRoom and LockBooking take a row lock (SELECT ... FOR UPDATE) that is
	// held until the surrounding transaction ends.
	LockRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	LockBooking(ctx context.Context, id int64) (*domain.Booking, error)

	GetRoom(ctx context.Context, roomID int64) (*domain.Room, error)
	GetHotel(ctx context.Context, id int64) (*domain.Hotel, error)
	ClientExists(ctx context.Context, id int64) (bool, error)
	HasOverlap(ctx context.Context, roomID int64, stay domain.DateRange, excludeID *int64) (bool, error)
	// RoomHeldByOther reports whether a confirmed booking other than
	// excludeID still holds the room, i.e. checks out after today.
	RoomHeldByOther(ctx context.Context, roomID, excludeID int64, today time.Time) (bool, error)

	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, b *domain.Booking) error
	Save(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	UpdateRoomStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error

	List(ctx context.Context, f Filter) ([]domain.Booking, int64, error)
	NoShowCandidates(ctx context.Context, checkInBefore time.Time) ([]int64, error)
}

// Notifier receives lifecycle events after the transaction has committed.
// Errors are logged by the service and never undo the operation.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *domain.Booking) error
	BookingCancelled(ctx context.Context, b *domain.Booking) error
	PaymentRecorded(ctx context.Context, b *domain.Booking) error
}

type nopNotifier struct{}

func (nopNotifier) BookingConfirmed(context.Context, *domain.Booking) error { return nil }
func (nopNotifier) BookingCancelled(context.Context, *domain.Booking) error { return nil }
func (nopNotifier) PaymentRecorded(context.Context, *domain.Booking) error  { return nil }
