package dashboard

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

type memCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = value
	return nil
}

type seeded struct {
	db     *gorm.DB
	sol    *domain.Hotel
	luna   *domain.Hotel
	rooms  []*domain.Room
	client *domain.Client
}

// today is 2024-06-10
func seed(t *testing.T) *seeded {
	db := testutil.NewDB(t)
	s := &seeded{db: db}
	s.sol = testutil.Hotel(t, db, "Hotel Sol")
	s.luna = testutil.Hotel(t, db, "Hotel Luna")
	s.client = testutil.Client(t, db, "ana@example.com", "30111222")

	r1 := testutil.Room(t, db, s.sol.ID, "101", 100, 2)
	r2 := testutil.Room(t, db, s.sol.ID, "102", 150, 2)
	r3 := testutil.Room(t, db, s.sol.ID, "103", 80, 1)
	r4 := testutil.Room(t, db, s.sol.ID, "104", 80, 1)
	l1 := testutil.Room(t, db, s.luna.ID, "1", 60, 2)
	require.NoError(t, db.Model(r4).Update("status", domain.RoomMaintenance).Error)
	s.rooms = []*domain.Room{r1, r2, r3, r4, l1}

	// in house today
	testutil.Booking(t, db, r1, s.client.ID, testutil.Date(2024, 6, 9), testutil.Date(2024, 6, 12), domain.BookingConfirmed)
	// arrives today
	testutil.Booking(t, db, r2, s.client.ID, testutil.Date(2024, 6, 10), testutil.Date(2024, 6, 11), domain.BookingConfirmed)
	// checks out today, not occupying
	testutil.Booking(t, db, r3, s.client.ID, testutil.Date(2024, 6, 8), testutil.Date(2024, 6, 10), domain.BookingCompleted)
	testutil.Booking(t, db, r3, s.client.ID, testutil.Date(2024, 6, 10), testutil.Date(2024, 6, 12), domain.BookingPending)
	testutil.Booking(t, db, r3, s.client.ID, testutil.Date(2024, 6, 20), testutil.Date(2024, 6, 22), domain.BookingCancelled)
	testutil.Booking(t, db, l1, s.client.ID, testutil.Date(2024, 6, 9), testutil.Date(2024, 6, 11), domain.BookingConfirmed)
	return s
}

func newService(s *seeded, cache Cache) *Service {
	svc := NewService(NewRepository(s.db), cache, time.Minute, logger.Discard())
	svc.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func ptr(t time.Time) *time.Time { return &t }

func TestHotelDashboard(t *testing.T) {
	s := seed(t)
	svc := newService(s, nil)

	d, err := svc.Get(context.Background(), Query{
		Scope: ScopeHotel, HotelID: &s.sol.ID,
		From: ptr(testutil.Date(2024, 6, 1)), To: ptr(testutil.Date(2024, 6, 30)),
	})
	require.NoError(t, err)

	assert.EqualValues(t, 4, d.KPIs.TotalRooms)
	assert.EqualValues(t, 2, d.KPIs.OccupiedRoomsToday)
	require.NotNil(t, d.KPIs.OccupancyToday)
	assert.InDelta(t, 0.5, *d.KPIs.OccupancyToday, 1e-9)
	assert.EqualValues(t, 2, d.KPIs.CheckinsToday)
	assert.EqualValues(t, 5, d.KPIs.ReservationsInPeriod)
	// 300 + 150 confirmed, 160 completed
	assert.True(t, d.KPIs.RevenueInPeriod.Equal(decimal.NewFromInt(610)), d.KPIs.RevenueInPeriod.String())

	assert.EqualValues(t, 2, d.Status[domain.BookingConfirmed])
	assert.EqualValues(t, 1, d.Status[domain.BookingCancelled])
	assert.EqualValues(t, 0, d.Status[domain.BookingNoShow])
	assert.EqualValues(t, 3, d.RoomStatus[domain.RoomAvailable])
	assert.EqualValues(t, 1, d.RoomStatus[domain.RoomMaintenance])

	require.Len(t, d.Daily, 4)
	assert.Equal(t, "2024-06-08", d.Daily[0].Date)
	assert.Equal(t, "2024-06-10", d.Daily[2].Date)
	assert.EqualValues(t, 1, d.Daily[2].Counts[domain.BookingConfirmed])
	assert.EqualValues(t, 1, d.Daily[2].Counts[domain.BookingPending])
}

func TestGlobalDashboard(t *testing.T) {
	s := seed(t)
	svc := newService(s, nil)

	d, err := svc.Get(context.Background(), Query{HotelID: &s.sol.ID})
	require.NoError(t, err)

	assert.Equal(t, ScopeGlobal, d.Scope)
	assert.Nil(t, d.HotelID, "global scope ignores hotel_id")
	assert.EqualValues(t, 5, d.KPIs.TotalRooms)
	assert.EqualValues(t, 3, d.KPIs.OccupiedRoomsToday)
	assert.Equal(t, "2024-05-11", d.From)
	assert.Equal(t, "2024-06-10", d.To)
}

func TestDashboardWithoutRooms(t *testing.T) {
	db := testutil.NewDB(t)
	h := testutil.Hotel(t, db, "Empty Inn")
	svc := newService(&seeded{db: db}, nil)

	d, err := svc.Get(context.Background(), Query{Scope: ScopeHotel, HotelID: &h.ID})
	require.NoError(t, err)
	assert.Nil(t, d.KPIs.OccupancyToday)
	assert.True(t, d.KPIs.RevenueInPeriod.IsZero())
	assert.Empty(t, d.Daily)
}

func TestDashboardValidation(t *testing.T) {
	s := seed(t)
	svc := newService(s, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, Query{Scope: "planet"})
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, err = svc.Get(ctx, Query{Scope: ScopeHotel})
	assert.ErrorIs(t, err, ErrHotelRequired)

	missing := int64(999)
	_, err = svc.Get(ctx, Query{Scope: ScopeHotel, HotelID: &missing})
	assert.ErrorIs(t, err, ErrHotelNotFound)

	_, err = svc.Get(ctx, Query{From: ptr(testutil.Date(2024, 6, 5)), To: ptr(testutil.Date(2024, 6, 1))})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Get(ctx, Query{From: ptr(testutil.Date(2023, 1, 1)), To: ptr(testutil.Date(2024, 6, 1))})
	assert.ErrorIs(t, err, ErrPeriodTooLong)
}

func TestDashboardIsCached(t *testing.T) {
	s := seed(t)
	cache := newMemCache()
	svc := newService(s, cache)
	ctx := context.Background()
	q := Query{Scope: ScopeHotel, HotelID: &s.sol.ID}

	first, err := svc.Get(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// a new booking is not visible until the entry expires
	testutil.Booking(t, s.db, s.rooms[0], s.client.ID, testutil.Date(2024, 6, 1), testutil.Date(2024, 6, 2), domain.BookingPending)

	second, err := svc.Get(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, first.KPIs.ReservationsInPeriod, second.KPIs.ReservationsInPeriod)
	assert.True(t, first.KPIs.RevenueInPeriod.Equal(second.KPIs.RevenueInPeriod))
}

func TestRedisCacheDisabledWithoutClient(t *testing.T) {
	assert.Nil(t, NewRedisCache(nil))
}
