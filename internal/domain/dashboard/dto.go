package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"hotelpms/internal/domain"
)

type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeHotel  Scope = "hotel"
)

// Query selects what the dashboard aggregates. From and To bound the
// check-in date, both inclusive.
type Query struct {
	Scope   Scope
	HotelID *int64
	From    *time.Time
	To      *time.Time
}

type KPIs struct {
	// nil when the scope has no rooms
	OccupancyToday       *float64        `json:"occupancy_today"`
	CheckinsToday        int64           `json:"bookings_checkin_today_total"`
	ReservationsInPeriod int64           `json:"reservations_period_count"`
	RevenueInPeriod      decimal.Decimal `json:"revenue_period"`
	TotalRooms           int64           `json:"total_rooms"`
	OccupiedRoomsToday   int64           `json:"occupied_rooms_today"`
}

// DailyBookings counts bookings per status for one check-in date.
type DailyBookings struct {
	Date   string                         `json:"date"`
	Counts map[domain.BookingStatus]int64 `json:"counts"`
}

type Dashboard struct {
	Scope       Scope                          `json:"scope"`
	HotelID     *int64                         `json:"hotel_id,omitempty"`
	From        string                         `json:"from"`
	To          string                         `json:"to"`
	KPIs        KPIs                           `json:"kpis"`
	Daily       []DailyBookings                `json:"daily_bookings"`
	Status      map[domain.BookingStatus]int64 `json:"status_distribution"`
	RoomStatus  map[domain.RoomStatus]int64    `json:"room_status"`
	GeneratedAt time.Time                      `json:"generated_at"`
}
