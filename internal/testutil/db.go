// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelpms/internal/database"
	"hotelpms/internal/domain"
)

// NewDB returns a migrated in-memory SQLite database private to the test.
// A single connection serialises transactions the way row locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Hotel(t *testing.T, db *gorm.DB, name string) *domain.Hotel {
	t.Helper()
	h := &domain.Hotel{Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-"))}
	require.NoError(t, db.Create(h).Error)
	return h
}

func Room(t *testing.T, db *gorm.DB, hotelID int64, number string, price int64, capacity int) *domain.Room {
	t.Helper()
	r := &domain.Room{
		HotelID:  hotelID,
		Number:   number,
		RoomType: domain.RoomDouble,
		Capacity: capacity,
		Price:    decimal.NewFromInt(price),
		IsActive: true,
		Status:   domain.RoomAvailable,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func Client(t *testing.T, db *gorm.DB, email, document string) *domain.Client {
	t.Helper()
	c := &domain.Client{FirstName: "Guest", LastName: document, Email: email, Document: document, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Booking inserts a booking row directly, bypassing the lifecycle rules.
func Booking(t *testing.T, db *gorm.DB, room *domain.Room, clientID int64, in, out time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	hotelID := room.HotelID
	b := &domain.Booking{
		HotelID:       &hotelID,
		ClientID:      clientID,
		RoomID:        room.ID,
		CheckIn:       in,
		CheckOut:      out,
		Status:        status,
		PaymentStatus: domain.PaymentPending,
		TotalPrice:    room.Quote(domain.DateRange{CheckIn: in, CheckOut: out}.Nights()),
		GuestsCount:   1,
	}
	require.NoError(t, db.Omit("Hotel", "Client", "Room").Create(b).Error)
	return b
}
