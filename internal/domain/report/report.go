// Package report exports bookings as XLSX workbooks.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/apperror"
	"hotelpms/internal/pkg/dates"
)

const (
	bookingsSheet    = "Bookings"
	summarySheet     = "Summary"
	defaultRangeDays = 30
	maxRangeDays     = 366
)

var (
	ErrInvalidPeriod = apperror.New(apperror.KindValidation, "INVALID_PERIOD", "from must not be after to")
	ErrPeriodTooLong = apperror.New(apperror.KindValidation, "PERIOD_TOO_LONG", "period cannot exceed 366 days")
)

var bookingColumns = []string{
	"ID", "Hotel", "Room", "Client", "Document", "Check-in", "Check-out",
	"Nights", "Status", "Payment", "Total", "Paid", "Due",
}

// Period bounds the check-in date, both inclusive.
type Period struct {
	HotelID *int64
	From    *time.Time
	To      *time.Time
}

type Service struct {
	db  *gorm.DB
	log *logrus.Logger
	now func() time.Time
}

func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log, now: time.Now}
}

// resolve fills the default window: the 30 days up to today.
func (s *Service) resolve(p Period) (from, to time.Time, err error) {
	to = dates.Today(s.now())
	if p.To != nil {
		to = dates.Normalize(*p.To)
	}
	from = to.AddDate(0, 0, -defaultRangeDays)
	if p.From != nil {
		from = dates.Normalize(*p.From)
	}
	if from.After(to) {
		return from, to, ErrInvalidPeriod
	}
	if dates.Nights(from, to) > maxRangeDays {
		return from, to, ErrPeriodTooLong
	}
	return from, to, nil
}

func (s *Service) bookings(ctx context.Context, hotelID *int64, from, to time.Time) ([]domain.Booking, error) {
	q := s.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Room").
		Preload("Client").
		Where("check_in >= ? AND check_in <= ?", from, to)
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}
	var out []domain.Booking
	err := q.Order("check_in, id").Find(&out).Error
	return out, err
}

// Bookings builds the workbook for p. The caller closes the returned file.
func (s *Service) Bookings(ctx context.Context, p Period) (*excelize.File, error) {
	from, to, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	rows, err := s.bookings(ctx, p.HotelID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeBookings(f, rows); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummary(f, rows, from, to); err != nil {
		_ = f.Close()
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"from":     dates.Format(from),
		"to":       dates.Format(to),
		"bookings": len(rows),
	}).Info("bookings report generated")
	return f, nil
}

// WriteBookings streams the workbook to w.
func (s *Service) WriteBookings(ctx context.Context, p Period, w io.Writer) error {
	f, err := s.Bookings(ctx, p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Write(w)
}

func writeBookings(f *excelize.File, rows []domain.Booking) error {
	header := make([]any, len(bookingColumns))
	for i, c := range bookingColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(bookingsSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(bookingColumns))
	if err := f.SetCellStyle(bookingsSheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i := range rows {
		b := &rows[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			b.ID,
			hotelName(b),
			roomNumber(b),
			clientName(b),
			clientDocument(b),
			dates.Format(b.CheckIn),
			dates.Format(b.CheckOut),
			b.Nights(),
			string(b.Status),
			string(b.PaymentStatus),
			money(b.TotalPrice),
			money(b.PaidAmount),
			money(b.AmountDue()),
		}
		if err := f.SetSheetRow(bookingsSheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SetPanes(bookingsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummary(f *excelize.File, rows []domain.Booking, from, to time.Time) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	counts := map[domain.BookingStatus]int{}
	revenue := decimal.Zero
	paid := decimal.Zero
	for i := range rows {
		b := &rows[i]
		counts[b.Status]++
		paid = paid.Add(b.PaidAmount)
		if b.Status == domain.BookingConfirmed || b.Status == domain.BookingCompleted {
			revenue = revenue.Add(b.TotalPrice)
		}
	}

	lines := [][]any{
		{"From", dates.Format(from)},
		{"To", dates.Format(to)},
		{"Bookings", len(rows)},
		{"Pending", counts[domain.BookingPending]},
		{"Confirmed", counts[domain.BookingConfirmed]},
		{"Completed", counts[domain.BookingCompleted]},
		{"Cancelled", counts[domain.BookingCancelled]},
		{"No-show", counts[domain.BookingNoShow]},
		{"Revenue", money(revenue)},
		{"Collected", money(paid)},
	}
	for i, line := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return err
		}
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}

func hotelName(b *domain.Booking) string {
	if b.Hotel == nil {
		return ""
	}
	return b.Hotel.Name
}

func roomNumber(b *domain.Booking) string {
	if b.Room == nil {
		return ""
	}
	return b.Room.Number
}

func clientName(b *domain.Booking) string {
	if b.Client == nil {
		return ""
	}
	return b.Client.FullName()
}

func clientDocument(b *domain.Booking) string {
	if b.Client == nil {
		return ""
	}
	return b.Client.Document
}
