package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/logger"
	"hotelpms/internal/testutil"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockNotifier) PaymentRecorded(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

type fixture struct {
	svc    *Service
	db     *gorm.DB
	notifs *mockNotifier
	hotel  *domain.Hotel
	room   *domain.Room
	client *domain.Client
}

func setup(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	notifs := &mockNotifier{}
	svc := NewService(NewRepository(db), notifs, logger.Discard())
	svc.now = func() time.Time { return time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC) }

	h := testutil.Hotel(t, db, "Hotel Sol")
	return &fixture{
		svc:    svc,
		db:     db,
		notifs: notifs,
		hotel:  h,
		room:   testutil.Room(t, db, h.ID, "101", 100, 2),
		client: testutil.Client(t, db, "ana@example.com", "30111222"),
	}
}

func (f *fixture) input(in, out time.Time) CreateInput {
	return CreateInput{
		ClientID:    f.client.ID,
		RoomID:      f.room.ID,
		CheckIn:     in,
		CheckOut:    out,
		GuestsCount: 2,
	}
}

func (f *fixture) roomStatus(t *testing.T) domain.RoomStatus {
	var r domain.Room
	require.NoError(t, f.db.First(&r, f.room.ID).Error)
	return r.Status
}

func TestCreateConfirmedBooking(t *testing.T) {
	f := setup(t)
	f.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil).Once()

	in := f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))
	in.Status = domain.BookingConfirmed
	b, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(200)))
	assert.True(t, b.PaidAmount.IsZero())
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	require.NotNil(t, b.HotelID)
	assert.Equal(t, f.hotel.ID, *b.HotelID)
	assert.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, domain.RoomReserved, f.roomStatus(t))
	f.notifs.AssertExpectations(t)
}

func TestCreateDefaultsToPending(t *testing.T) {
	f := setup(t)

	b, err := f.svc.Create(context.Background(), f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Nil(t, b.ConfirmedAt)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))
	f.notifs.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestCreateOverlapAndBoundary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 2), testutil.Date(2024, 6, 4)))
	assert.ErrorIs(t, err, ErrDateRangeConflict)

	b, err := f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 3), testutil.Date(2024, 6, 5)))
	require.NoError(t, err, "a stay starting on another's check-out day does not overlap")
	assert.True(t, b.TotalPrice.Equal(decimal.NewFromInt(200)))
}

func TestCreateIgnoresClosedBookings(t *testing.T) {
	f := setup(t)
	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 5), domain.BookingCancelled)
	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 5), domain.BookingNoShow)

	_, err := f.svc.Create(context.Background(), f.input(testutil.Date(2024, 6, 2), testutil.Date(2024, 6, 4)))
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 3), testutil.Date(2024, 6, 3)))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 4), testutil.Date(2024, 6, 3)))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.svc.Create(ctx, f.input(testutil.Date(2024, 5, 29), testutil.Date(2024, 6, 2)))
	assert.ErrorIs(t, err, ErrPastDate)

	_, err = f.svc.Create(ctx, f.input(testutil.Date(2024, 5, 30), testutil.Date(2024, 5, 31)))
	assert.NoError(t, err, "check-in today is allowed")

	in := f.input(testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2))
	in.GuestsCount = 3
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	in.GuestsCount = 0
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidGuests)

	in = f.input(testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2))
	in.Status = domain.BookingCompleted
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	in = f.input(testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2))
	in.RoomID = 999
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	in = f.input(testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2))
	in.ClientID = 999
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateRejectsBlockedHotel(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Model(f.hotel).Update("is_blocked", true).Error)

	_, err := f.svc.Create(context.Background(), f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
	assert.ErrorIs(t, err, ErrHotelBlocked)
}

func TestCreateHotelMismatch(t *testing.T) {
	f := setup(t)
	other := testutil.Hotel(t, f.db, "Hotel Luna")

	in := f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))
	in.HotelID = &other.ID
	_, err := f.svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrHotelMismatch)
}

func TestCreateRejectsUnbookableRoom(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(f.room).Update("status", domain.RoomMaintenance).Error)
	_, err := f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	require.NoError(t, f.db.Model(f.room).Updates(map[string]any{"status": domain.RoomAvailable, "is_active": false}).Error)
	_, err = f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

// Checks run in a fixed order; the first failing one wins.
func TestCreateReportsFirstFailingRule(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 5), domain.BookingPending)
	require.NoError(t, f.db.Model(f.hotel).Update("is_blocked", true).Error)

	in := f.input(testutil.Date(2024, 6, 2), testutil.Date(2024, 6, 3))
	in.GuestsCount = 5
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrDateRangeConflict, "overlap is checked before hotel and capacity")

	in = f.input(testutil.Date(2024, 7, 2), testutil.Date(2024, 7, 3))
	in.GuestsCount = 5
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrHotelBlocked, "blocked hotel is checked before capacity")
}

func TestCreateConcurrentRequestsForSameRoom(t *testing.T) {
	f := setup(t)
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Create(context.Background(), f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrDateRangeConflict)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, f.db.Model(&domain.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordPaymentConcurrentPartials(t *testing.T) {
	f := setup(t)
	f.notifs.On("PaymentRecorded", mock.Anything, mock.Anything).Return(nil)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ten := decimal.NewFromInt(10)
			_, errs[i] = f.svc.RecordPayment(context.Background(), b.ID, &ten)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	got, err := f.svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(10*n)), "paid %s", got.PaidAmount)
	assert.Equal(t, domain.PaymentPartial, got.PaymentStatus)
}

func TestCheckAvailability(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)

	ok, err := f.svc.CheckAvailability(ctx, f.room.ID, testutil.Date(2024, 6, 2), testutil.Date(2024, 6, 4), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.CheckAvailability(ctx, f.room.ID, testutil.Date(2024, 6, 3), testutil.Date(2024, 6, 4), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.CheckAvailability(ctx, f.room.ID, testutil.Date(2024, 5, 28), testutil.Date(2024, 6, 1), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.CheckAvailability(ctx, f.room.ID, testutil.Date(2024, 6, 2), testutil.Date(2024, 6, 4), &b.ID)
	require.NoError(t, err)
	assert.True(t, ok, "the excluded booking does not block itself")

	_, err = f.svc.CheckAvailability(ctx, f.room.ID, testutil.Date(2024, 6, 4), testutil.Date(2024, 6, 4), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestRoomAvailabilityQuotesStay(t *testing.T) {
	f := setup(t)

	res, err := f.svc.RoomAvailability(context.Background(), f.room.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 4), nil)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 3, res.Nights)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, f.hotel.ID, res.HotelID)

	_, err = f.svc.RoomAvailability(context.Background(), 999, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 4), nil)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCancelFreesRoomAndIsNotRepeatable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	f.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return(nil).Once()

	in := f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))
	in.Status = domain.BookingConfirmed
	b, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, domain.RoomReserved, f.roomStatus(t))

	cancelled, err := f.svc.Cancel(ctx, b.ID, "  change of plans ")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.Equal(t, "change of plans", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))

	again, err := f.svc.Cancel(ctx, b.ID, "twice")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	require.NotNil(t, again, "a rejected transition returns the current booking")
	assert.Equal(t, domain.BookingCancelled, again.Status)
	assert.Equal(t, "change of plans", again.CancellationReason)
	f.notifs.AssertNumberOfCalls(t, "BookingCancelled", 1)
}

func TestCancelKeepsRoomHeldByAnotherConfirmedBooking(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return(nil)

	held := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)
	require.NoError(t, f.db.Model(f.room).Update("status", domain.RoomReserved).Error)
	pending := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 5), testutil.Date(2024, 6, 7), domain.BookingPending)

	_, err := f.svc.Cancel(ctx, pending.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomReserved, f.roomStatus(t))

	_, err = f.svc.Cancel(ctx, held.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))
}

func TestCancelIgnoresFinishedConfirmedBookings(t *testing.T) {
	f := setup(t)
	f.notifs.On("BookingCancelled", mock.Anything, mock.Anything).Return(nil)

	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 5, 20), testutil.Date(2024, 5, 22), domain.BookingConfirmed)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)
	require.NoError(t, f.db.Model(f.room).Update("status", domain.RoomReserved).Error)

	_, err := f.svc.Cancel(context.Background(), b.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t), "a stay that already ended does not hold the room")
}

func TestLifecycleTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)

	b, err := f.svc.Create(ctx, f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3)))
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "pending cannot complete")
	_, err = f.svc.MarkNoShow(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "pending cannot be a no-show")

	confirmed, err := f.svc.Confirm(ctx, b.ID)
	require.NoError(t, err)
	assert.NotNil(t, confirmed.ConfirmedAt)
	assert.Equal(t, domain.RoomReserved, f.roomStatus(t))

	_, err = f.svc.Confirm(ctx, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := f.svc.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, completed.Status)
	assert.Equal(t, domain.RoomCleaning, f.roomStatus(t))

	for _, op := range []func(context.Context, int64) (*domain.Booking, error){f.svc.Confirm, f.svc.Complete, f.svc.MarkNoShow} {
		_, err = op(ctx, b.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition, "completed is terminal")
	}
	_, err = f.svc.Cancel(ctx, b.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Confirm(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkNoShowFreesRoom(t *testing.T) {
	f := setup(t)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)
	require.NoError(t, f.db.Model(f.room).Update("status", domain.RoomReserved).Error)

	got, err := f.svc.MarkNoShow(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingNoShow, got.Status)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t))
}

func TestRecordPayment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.notifs.On("PaymentRecorded", mock.Anything, mock.Anything).Return(nil)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)

	eighty := decimal.NewFromInt(80)
	got, err := f.svc.RecordPayment(ctx, b.ID, &eighty)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, got.PaymentStatus)
	assert.True(t, got.PaidAmount.Equal(eighty))
	assert.True(t, got.AmountDue().Equal(decimal.NewFromInt(120)))

	rest := decimal.NewFromInt(120)
	got, err = f.svc.RecordPayment(ctx, b.ID, &rest)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.True(t, got.AmountDue().IsZero())

	_, err = f.svc.RecordPayment(ctx, b.ID, &rest)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	f.notifs.AssertNumberOfCalls(t, "PaymentRecorded", 2)
}

func TestRecordPaymentNeverExceedsTotal(t *testing.T) {
	f := setup(t)
	f.notifs.On("PaymentRecorded", mock.Anything, mock.Anything).Return(nil)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingPending)

	big := decimal.NewFromInt(500)
	got, err := f.svc.RecordPayment(context.Background(), b.ID, &big)
	require.NoError(t, err)
	assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
}

func TestRecordPaymentWithoutAmountSettlesInFull(t *testing.T) {
	f := setup(t)
	f.notifs.On("PaymentRecorded", mock.Anything, mock.Anything).Return(nil)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingPending)

	got, err := f.svc.RecordPayment(context.Background(), b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.True(t, got.PaidAmount.Equal(got.TotalPrice))
}

func TestRecordPaymentRejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	zero := decimal.Zero
	_, err := f.svc.RecordPayment(ctx, 1, &zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	tiny := decimal.RequireFromString("0.001")
	_, err = f.svc.RecordPayment(ctx, 1, &tiny)
	assert.ErrorIs(t, err, ErrInvalidAmount, "rounds to zero cents")

	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingCancelled)
	ten := decimal.NewFromInt(10)
	got, err := f.svc.RecordPayment(ctx, b.ID, &ten)
	assert.ErrorIs(t, err, ErrPaymentNotAllowed)
	require.NotNil(t, got)
	assert.True(t, got.PaidAmount.IsZero())

	_, err = f.svc.RecordPayment(ctx, 999, &ten)
	assert.ErrorIs(t, err, ErrNotFound)
	f.notifs.AssertNotCalled(t, "PaymentRecorded", mock.Anything, mock.Anything)
}

func TestNotifierFailureDoesNotUndoOperation(t *testing.T) {
	f := setup(t)
	f.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	in := f.input(testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3))
	in.Status = domain.BookingConfirmed
	b, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	f.notifs.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := []struct {
		status domain.BookingStatus
		err    error
	}{
		{domain.BookingPending, nil},
		{domain.BookingCancelled, nil},
		{domain.BookingNoShow, nil},
		{domain.BookingConfirmed, ErrNotDeletable},
		{domain.BookingCompleted, ErrNotDeletable},
	}
	for i, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			in := testutil.Date(2024, 6, 1).AddDate(0, 0, i*3)
			b := testutil.Booking(t, f.db, f.room, f.client.ID, in, in.AddDate(0, 0, 2), tc.status)

			err := f.svc.Delete(ctx, b.ID)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			_, err = f.svc.Get(ctx, b.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMarkNoShows(t *testing.T) {
	f := setup(t)
	// today is 2024-05-30
	stale := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 5, 27), testutil.Date(2024, 5, 28), domain.BookingConfirmed)
	grace := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 5, 29), testutil.Date(2024, 5, 30), domain.BookingConfirmed)
	pending := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 5, 20), testutil.Date(2024, 5, 21), domain.BookingPending)

	n, err := f.svc.MarkNoShows(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for id, want := range map[int64]domain.BookingStatus{
		stale.ID:   domain.BookingNoShow,
		grace.ID:   domain.BookingConfirmed,
		pending.ID: domain.BookingPending,
	} {
		b, err := f.svc.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, b.Status, "booking %d", id)
	}
}

func TestList(t *testing.T) {
	f := setup(t)
	other := testutil.Hotel(t, f.db, "Hotel Luna")
	otherRoom := testutil.Room(t, f.db, other.ID, "1", 80, 2)
	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingPending)
	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 10), testutil.Date(2024, 6, 12), domain.BookingConfirmed)
	testutil.Booking(t, f.db, otherRoom, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)

	items, total, err := f.svc.List(context.Background(), Filter{HotelID: &f.hotel.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, testutil.Date(2024, 6, 10), items[0].CheckIn.UTC(), "newest check-in first")
	assert.NotNil(t, items[0].Room)

	confirmed := domain.BookingConfirmed
	_, total, err = f.svc.List(context.Background(), Filter{Status: &confirmed})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	from := testutil.Date(2024, 6, 5)
	_, total, err = f.svc.List(context.Background(), Filter{From: &from})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpdateReschedulesAndReprices(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingPending)
	testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 6), testutil.Date(2024, 6, 8), domain.BookingConfirmed)

	out := testutil.Date(2024, 6, 5)
	guests := 2
	notes := "  late arrival "
	got, err := f.svc.Update(ctx, b.ID, UpdateInput{CheckOut: &out, GuestsCount: &guests, SpecialRequests: &notes})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Nights())
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 2, got.GuestsCount)
	assert.Equal(t, "late arrival", got.SpecialRequests)

	in, out := testutil.Date(2024, 6, 2), testutil.Date(2024, 6, 6)
	got, err = f.svc.Update(ctx, b.ID, UpdateInput{CheckIn: &in, CheckOut: &out})
	require.NoError(t, err, "the booking's own dates never conflict with themselves")
	assert.Equal(t, "2024-06-02", got.CheckIn.Format("2006-01-02"))

	out = testutil.Date(2024, 6, 7)
	_, err = f.svc.Update(ctx, b.ID, UpdateInput{CheckOut: &out})
	assert.ErrorIs(t, err, ErrDateRangeConflict)
}

func TestUpdateValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.notifs.On("PaymentRecorded", mock.Anything, mock.Anything).Return(nil)
	b := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 4), domain.BookingConfirmed)

	three := 3
	_, err := f.svc.Update(ctx, b.ID, UpdateInput{GuestsCount: &three})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	zero := 0
	_, err = f.svc.Update(ctx, b.ID, UpdateInput{GuestsCount: &zero})
	assert.ErrorIs(t, err, ErrInvalidGuests)

	past := testutil.Date(2024, 5, 29)
	_, err = f.svc.Update(ctx, b.ID, UpdateInput{CheckIn: &past})
	assert.ErrorIs(t, err, ErrPastDate)

	inverted := testutil.Date(2024, 6, 1)
	_, err = f.svc.Update(ctx, b.ID, UpdateInput{CheckOut: &inverted})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	paid := decimal.NewFromInt(250)
	_, err = f.svc.RecordPayment(ctx, b.ID, &paid)
	require.NoError(t, err)
	shorter := testutil.Date(2024, 6, 2)
	_, err = f.svc.Update(ctx, b.ID, UpdateInput{CheckOut: &shorter})
	assert.ErrorIs(t, err, ErrTotalBelowPaid)

	cancelled := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 2), domain.BookingCancelled)
	_, err = f.svc.Update(ctx, cancelled.ID, UpdateInput{GuestsCount: &three})
	assert.ErrorIs(t, err, ErrNotEditable)

	_, err = f.svc.Update(ctx, 999, UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResendConfirmation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.notifs.On("BookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	confirmed := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)
	pending := testutil.Booking(t, f.db, f.room, f.client.ID, testutil.Date(2024, 6, 5), testutil.Date(2024, 6, 7), domain.BookingPending)

	got, err := f.svc.ResendConfirmation(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmed.ID, got.ID)
	f.notifs.AssertNumberOfCalls(t, "BookingConfirmed", 1)

	got, err = f.svc.ResendConfirmation(ctx, pending.ID)
	assert.ErrorIs(t, err, ErrResendNotAllowed)
	require.NotNil(t, got)
	f.notifs.AssertNumberOfCalls(t, "BookingConfirmed", 1)
}
