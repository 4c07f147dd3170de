package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/apperror"
	"hotelpms/internal/pkg/dates"
)

const (
	defaultPeriodDays = 30
	maxPeriodDays     = 366
)

var (
	ErrInvalidScope  = apperror.New(apperror.KindValidation, "INVALID_SCOPE", "scope must be global or hotel")
	ErrHotelRequired = apperror.New(apperror.KindValidation, "HOTEL_REQUIRED", "hotel_id is required for hotel scope")
	ErrInvalidPeriod = apperror.New(apperror.KindValidation, "INVALID_PERIOD", "from must not be after to")
	ErrPeriodTooLong = apperror.New(apperror.KindValidation, "PERIOD_TOO_LONG", "period cannot exceed 366 days")
	ErrHotelNotFound = apperror.New(apperror.KindNotFound, "HOTEL_NOT_FOUND", "hotel not found")
)

type Service struct {
	repo  *Repository
	cache Cache
	ttl   time.Duration
	log   *logrus.Logger
	now   func() time.Time
}

// NewService builds the dashboard service. A nil cache or a zero ttl
// computes every request.
func NewService(repo *Repository, cache Cache, ttl time.Duration, log *logrus.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func (s *Service) Get(ctx context.Context, q Query) (*Dashboard, error) {
	if q.Scope == "" {
		q.Scope = ScopeGlobal
	}
	switch q.Scope {
	case ScopeGlobal:
		q.HotelID = nil
	case ScopeHotel:
		if q.HotelID == nil {
			return nil, ErrHotelRequired
		}
	default:
		return nil, ErrInvalidScope
	}

	today := dates.Today(s.now())
	to := today
	if q.To != nil {
		to = dates.Normalize(*q.To)
	}
	from := to.AddDate(0, 0, -defaultPeriodDays)
	if q.From != nil {
		from = dates.Normalize(*q.From)
	}
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}
	if dates.Nights(from, to) > maxPeriodDays {
		return nil, ErrPeriodTooLong
	}

	if q.HotelID != nil {
		ok, err := s.repo.HotelExists(ctx, *q.HotelID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrHotelNotFound
		}
	}

	key := cacheKey(q.Scope, q.HotelID, from, to, today)
	if d, ok := s.cached(ctx, key); ok {
		return d, nil
	}

	d, err := s.compute(ctx, q.Scope, q.HotelID, from, to, today)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, d)
	return d, nil
}

func (s *Service) compute(ctx context.Context, scope Scope, hotelID *int64, from, to, today time.Time) (*Dashboard, error) {
	d := &Dashboard{
		Scope:       scope,
		HotelID:     hotelID,
		From:        dates.Format(from),
		To:          dates.Format(to),
		Daily:       []DailyBookings{},
		Status:      emptyStatusCounts(),
		RoomStatus:  map[domain.RoomStatus]int64{},
		GeneratedAt: s.now().UTC(),
	}
	for _, st := range domain.RoomStatuses {
		d.RoomStatus[st] = 0
	}

	var err error
	if d.KPIs.TotalRooms, err = s.repo.CountRooms(ctx, hotelID); err != nil {
		return nil, fmt.Errorf("count rooms: %w", err)
	}
	if d.KPIs.OccupiedRoomsToday, err = s.repo.OccupiedRooms(ctx, hotelID, today); err != nil {
		return nil, fmt.Errorf("occupied rooms: %w", err)
	}
	if d.KPIs.TotalRooms > 0 {
		occ := float64(d.KPIs.OccupiedRoomsToday) / float64(d.KPIs.TotalRooms)
		d.KPIs.OccupancyToday = &occ
	}
	if d.KPIs.CheckinsToday, err = s.repo.CheckinsOn(ctx, hotelID, today); err != nil {
		return nil, fmt.Errorf("checkins today: %w", err)
	}
	if d.KPIs.ReservationsInPeriod, err = s.repo.CountInPeriod(ctx, hotelID, from, to); err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	if d.KPIs.RevenueInPeriod, err = s.repo.Revenue(ctx, hotelID, from, to); err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}

	daily, err := s.repo.DailyByStatus(ctx, hotelID, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily bookings: %w", err)
	}
	d.Daily = foldDaily(daily)

	statuses, err := s.repo.StatusCounts(ctx, hotelID, from, to)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	for _, row := range statuses {
		d.Status[domain.BookingStatus(row.Status)] = row.N
	}

	rooms, err := s.repo.RoomStatusCounts(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("room status counts: %w", err)
	}
	for _, row := range rooms {
		d.RoomStatus[domain.RoomStatus(row.Status)] = row.N
	}
	return d, nil
}

func foldDaily(rows []dailyRow) []DailyBookings {
	byDay := map[string]map[domain.BookingStatus]int64{}
	for _, row := range rows {
		day := dates.Format(dates.Normalize(row.CheckIn))
		counts, ok := byDay[day]
		if !ok {
			counts = emptyStatusCounts()
			byDay[day] = counts
		}
		counts[row.Status] += row.N
	}

	out := make([]DailyBookings, 0, len(byDay))
	for day, counts := range byDay {
		out = append(out, DailyBookings{Date: day, Counts: counts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func emptyStatusCounts() map[domain.BookingStatus]int64 {
	return map[domain.BookingStatus]int64{
		domain.BookingPending:   0,
		domain.BookingConfirmed: 0,
		domain.BookingCancelled: 0,
		domain.BookingCompleted: 0,
		domain.BookingNoShow:    0,
	}
}

// today is part of the key because the KPIs depend on it.
func cacheKey(scope Scope, hotelID *int64, from, to, today time.Time) string {
	hotel := "all"
	if hotelID != nil {
		hotel = fmt.Sprint(*hotelID)
	}
	return fmt.Sprintf("dashboard:%s:%s:%s:%s:%s", scope, hotel, dates.Format(from), dates.Format(to), dates.Format(today))
}

func (s *Service) cached(ctx context.Context, key string) (*Dashboard, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("dashboard cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var d Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("dashboard cache entry unreadable")
		return nil, false
	}
	return &d, true
}

func (s *Service) store(ctx context.Context, key string, d *Dashboard) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("dashboard cache write failed")
	}
}
