package room

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/database"
	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/dates"
)

const (
	defaultCalendarDays = 60
	maxCalendarDays     = 366
)

type Service struct {
	repo *Repository
	log  *logrus.Logger
	now  func() time.Time
}

func NewService(repo *Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create adds a room to a hotel. New rooms start available.
func (s *Service) Create(ctx context.Context, hotelID int64, req CreateRoomRequest) (*domain.Room, error) {
	ok, err := s.repo.HotelExists(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHotelNotFound
	}

	room := &domain.Room{
		HotelID:     hotelID,
		Number:      strings.TrimSpace(req.Number),
		RoomType:    req.RoomType,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Floor:       req.Floor,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
		Status:      domain.RoomAvailable,
	}
	if err := validate(room); err != nil {
		return nil, err
	}

	taken, err := s.repo.NumberExists(ctx, hotelID, room.Number, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNumberTaken
	}

	if err := s.repo.Create(ctx, room); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrNumberTaken
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Room, error) {
	return s.repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Number != nil {
		room.Number = strings.TrimSpace(*req.Number)
	}
	if req.RoomType != nil {
		room.RoomType = *req.RoomType
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	if err := validate(room); err != nil {
		return nil, err
	}

	taken, err := s.repo.NumberExists(ctx, room.HotelID, room.Number, room.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNumberTaken
	}

	if err := s.repo.Save(ctx, room); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrNumberTaken
		}
		return nil, fmt.Errorf("update room: %w", err)
	}
	return room, nil
}

// ChangeStatus is the housekeeping/maintenance entry point. Booking
// transitions change the status through their own transaction.
func (s *Service) ChangeStatus(ctx context.Context, id int64, status domain.RoomStatus) (*domain.Room, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"room_id": id, "status": status}).Info("room status changed")
	return s.repo.GetByID(ctx, id)
}

// Delete removes a room that no pending or confirmed booking depends on.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountActiveBookings(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasBookings
	}
	return s.repo.Delete(ctx, id)
}

// SearchAvailable finds rooms that can take the whole stay, each quoted at
// nightly price times nights.
func (s *Service) SearchAvailable(ctx context.Context, q SearchQuery) ([]AvailableRoom, error) {
	q.CheckIn, q.CheckOut = dates.Normalize(q.CheckIn), dates.Normalize(q.CheckOut)
	stay := domain.DateRange{CheckIn: q.CheckIn, CheckOut: q.CheckOut}
	if !stay.Valid() {
		return nil, ErrInvalidDateRange
	}
	if q.Guests < 1 {
		return nil, ErrInvalidGuests
	}

	rooms, err := s.repo.SearchAvailable(ctx, q)
	if err != nil {
		return nil, err
	}

	nights := stay.Nights()
	out := make([]AvailableRoom, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, AvailableRoom{Room: r, Nights: nights, Total: r.Quote(nights)})
	}
	return out, nil
}

// Calendar lists each day of [from, to] with whether an active booking holds
// the room that night. The window defaults to today plus 60 days.
func (s *Service) Calendar(ctx context.Context, roomID int64, from, to *time.Time) (*Calendar, error) {
	room, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	start := dates.Today(s.now())
	if from != nil {
		start = dates.Normalize(*from)
	}
	end := start.AddDate(0, 0, defaultCalendarDays)
	if to != nil {
		end = dates.Normalize(*to)
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	if dates.Nights(start, end) > maxCalendarDays {
		return nil, ErrWindowTooLarge
	}

	spans, err := s.repo.ActiveSpans(ctx, roomID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	cal := &Calendar{RoomID: roomID, StartDate: dates.Format(start), EndDate: dates.Format(end)}
	dates.Each(start, end, func(day time.Time) {
		cal.Days = append(cal.Days, CalendarDay{
			Date:      dates.Format(day),
			Available: !occupied(spans, day),
			Price:     room.Price,
		})
	})
	return cal, nil
}

func occupied(spans []Span, day time.Time) bool {
	for _, sp := range spans {
		in, out := dates.Normalize(sp.CheckIn), dates.Normalize(sp.CheckOut)
		if !day.Before(in) && day.Before(out) {
			return true
		}
	}
	return false
}

func validate(r *domain.Room) error {
	if !r.RoomType.Valid() {
		return ErrInvalidType
	}
	if r.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if r.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
