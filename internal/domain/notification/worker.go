package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"hotelpms/internal/domain"
)

// Worker handles one queued event: it emails the guest and records the
// attempt in the email log.
type Worker struct {
	repo   *Repository
	mailer Mailer
	log    *logrus.Logger
	now    func() time.Time
}

func NewWorker(repo *Repository, mailer Mailer, log *logrus.Logger) *Worker {
	return &Worker{repo: repo, mailer: mailer, log: log, now: time.Now}
}

// Handle returns an error only for messages that cannot be processed at all.
// A failed send is recorded on the log row and acknowledged.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}
	if ev.EventID == "" || !ev.Type.Valid() {
		return fmt.Errorf("unsupported event %q (%s)", ev.EventID, ev.Type)
	}

	entry := w.log.WithFields(logrus.Fields{
		"event_id":   ev.EventID,
		"event":      ev.Type,
		"booking_id": ev.BookingID,
	})

	b, err := w.repo.LoadBooking(ctx, ev.BookingID)
	if errors.Is(err, errBookingGone) {
		entry.Info("booking deleted before notification, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load booking %d: %w", ev.BookingID, err)
	}
	if b.Client == nil || b.Client.Email == "" {
		entry.Info("client has no email, skipping")
		return nil
	}

	subject, text := render(ev.Type, b)
	bookingID := b.ID
	logRow := &domain.EmailLog{
		EventID:   ev.EventID,
		EventType: string(ev.Type),
		BookingID: &bookingID,
		Recipient: b.Client.Email,
		Subject:   subject,
		Status:    domain.EmailPending,
		Payload:   datatypes.JSON(body),
	}
	if err := w.repo.Begin(ctx, logRow); err != nil {
		if errors.Is(err, ErrDuplicateEvent) {
			entry.Info("duplicate delivery, already handled")
			return nil
		}
		return fmt.Errorf("store email log: %w", err)
	}

	if err := w.mailer.Send(ctx, logRow.Recipient, subject, text); err != nil {
		entry.WithError(err).Warn("email send failed")
		if mErr := w.repo.MarkFailed(ctx, logRow.ID, err.Error()); mErr != nil {
			return fmt.Errorf("mark email failed: %w", mErr)
		}
		return nil
	}

	if err := w.repo.MarkSent(ctx, logRow.ID, w.now().UTC()); err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	entry.WithField("to", logRow.Recipient).Info("email sent")
	return nil
}
