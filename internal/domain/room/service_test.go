package room

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/logger"
	"hotelpms/internal/testutil"
)

func setup(t *testing.T) (*Service, *gorm.DB) {
	db := testutil.NewDB(t)
	svc := NewService(NewRepository(db), logger.Discard())
	svc.now = func() time.Time { return time.Date(2024, 5, 30, 15, 0, 0, 0, time.UTC) }
	return svc, db
}

func TestCreateRoom(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")

	r, err := svc.Create(ctx, h.ID, CreateRoomRequest{
		Number: "101", RoomType: domain.RoomDouble, Capacity: 2, Price: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, r.Status)
	assert.True(t, r.IsActive)

	_, err = svc.Create(ctx, h.ID, CreateRoomRequest{
		Number: "101", RoomType: domain.RoomSingle, Capacity: 1, Price: decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, ErrNumberTaken)

	other := testutil.Hotel(t, db, "Hotel Luna")
	_, err = svc.Create(ctx, other.ID, CreateRoomRequest{
		Number: "101", RoomType: domain.RoomSingle, Capacity: 1, Price: decimal.NewFromInt(50),
	})
	assert.NoError(t, err, "room numbers are unique per hotel only")
}

func TestCreateRoomValidation(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")

	_, err := svc.Create(ctx, h.ID, CreateRoomRequest{Number: "1", RoomType: "penthouse", Capacity: 2})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.Create(ctx, h.ID, CreateRoomRequest{Number: "1", RoomType: domain.RoomSuite, Capacity: 2, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.Create(ctx, 999, CreateRoomRequest{Number: "1", RoomType: domain.RoomSuite, Capacity: 2})
	assert.ErrorIs(t, err, ErrHotelNotFound)
}

func TestChangeStatus(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")
	r := testutil.Room(t, db, h.ID, "101", 100, 2)

	updated, err := svc.ChangeStatus(ctx, r.ID, domain.RoomMaintenance)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, updated.Status)

	_, err = svc.ChangeStatus(ctx, r.ID, "flooded")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteRefusedWithActiveBookings(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")
	r := testutil.Room(t, db, h.ID, "101", 100, 2)
	c := testutil.Client(t, db, "ana@example.com", "12345678")
	b := testutil.Booking(t, db, r, c.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)

	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrHasBookings)

	require.NoError(t, db.Model(b).Update("status", domain.BookingCancelled).Error)
	require.NoError(t, svc.Delete(ctx, r.ID))

	_, err := svc.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchAvailable(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")
	busy := testutil.Room(t, db, h.ID, "101", 100, 2)
	free := testutil.Room(t, db, h.ID, "102", 120, 2)
	small := testutil.Room(t, db, h.ID, "103", 80, 1)
	c := testutil.Client(t, db, "ana@example.com", "12345678")
	testutil.Booking(t, db, busy, c.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingPending)

	blocked := testutil.Hotel(t, db, "Hotel Cerrado")
	require.NoError(t, db.Model(blocked).Update("is_blocked", true).Error)
	testutil.Room(t, db, blocked.ID, "1", 10, 4)

	got, err := svc.SearchAvailable(ctx, SearchQuery{
		CheckIn: testutil.Date(2024, 6, 2), CheckOut: testutil.Date(2024, 6, 4), Guests: 2,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, free.ID, got[0].ID)
	assert.Equal(t, 2, got[0].Nights)
	assert.True(t, got[0].Total.Equal(decimal.NewFromInt(240)))

	// touching ranges do not conflict
	got, err = svc.SearchAvailable(ctx, SearchQuery{
		HotelID: &h.ID, CheckIn: testutil.Date(2024, 6, 3), CheckOut: testutil.Date(2024, 6, 4), Guests: 1,
	})
	require.NoError(t, err)
	ids := []int64{}
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int64{busy.ID, free.ID, small.ID}, ids)

	_, err = svc.SearchAvailable(ctx, SearchQuery{CheckIn: testutil.Date(2024, 6, 4), CheckOut: testutil.Date(2024, 6, 4), Guests: 1})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCalendar(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()
	h := testutil.Hotel(t, db, "Hotel Sol")
	r := testutil.Room(t, db, h.ID, "101", 100, 2)
	c := testutil.Client(t, db, "ana@example.com", "12345678")
	testutil.Booking(t, db, r, c.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 3), domain.BookingConfirmed)
	testutil.Booking(t, db, r, c.ID, testutil.Date(2024, 6, 3), testutil.Date(2024, 6, 4), domain.BookingCancelled)

	from, to := testutil.Date(2024, 5, 31), testutil.Date(2024, 6, 3)
	cal, err := svc.Calendar(ctx, r.ID, &from, &to)
	require.NoError(t, err)

	require.Len(t, cal.Days, 4)
	avail := map[string]bool{}
	for _, d := range cal.Days {
		avail[d.Date] = d.Available
	}
	assert.True(t, avail["2024-05-31"])
	assert.False(t, avail["2024-06-01"])
	assert.False(t, avail["2024-06-02"])
	assert.True(t, avail["2024-06-03"], "check-out day is free again")
}

func TestCalendarDefaultWindow(t *testing.T) {
	svc, db := setup(t)
	h := testutil.Hotel(t, db, "Hotel Sol")
	r := testutil.Room(t, db, h.ID, "101", 100, 2)

	cal, err := svc.Calendar(context.Background(), r.ID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-30", cal.StartDate)
	assert.Equal(t, "2024-07-29", cal.EndDate)
	assert.Len(t, cal.Days, 61)
}
