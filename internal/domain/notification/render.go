package notification

import (
	"fmt"
	"strings"

	"hotelpms/internal/domain"
	"hotelpms/internal/pkg/dates"
)

// render builds the guest email for an event.
func render(t EventType, b *domain.Booking) (subject, body string) {
	hotel := "our hotel"
	if b.Hotel != nil {
		hotel = b.Hotel.Name
	}
	room := ""
	if b.Room != nil {
		room = b.Room.Number
	}
	name := ""
	if b.Client != nil {
		name = b.Client.FullName()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", strings.TrimSpace(name))

	switch t {
	case EventBookingConfirmed:
		subject = fmt.Sprintf("Booking #%d confirmed at %s", b.ID, hotel)
		fmt.Fprintf(&sb, "Your booking #%d is confirmed.\n\n", b.ID)
	case EventBookingCancelled:
		subject = fmt.Sprintf("Booking #%d cancelled", b.ID)
		fmt.Fprintf(&sb, "Your booking #%d has been cancelled.\n", b.ID)
		if b.CancellationReason != "" {
			fmt.Fprintf(&sb, "Reason: %s\n", b.CancellationReason)
		}
		sb.WriteString("\n")
	case EventPaymentRecorded:
		subject = fmt.Sprintf("Payment received for booking #%d", b.ID)
		fmt.Fprintf(&sb, "We received your payment for booking #%d.\n\n", b.ID)
	}

	fmt.Fprintf(&sb, "Hotel:     %s\n", hotel)
	if room != "" {
		fmt.Fprintf(&sb, "Room:      %s\n", room)
	}
	fmt.Fprintf(&sb, "Check-in:  %s\n", dates.Format(b.CheckIn))
	fmt.Fprintf(&sb, "Check-out: %s (%d nights)\n", dates.Format(b.CheckOut), b.Nights())
	fmt.Fprintf(&sb, "Total:     %s\n", b.TotalPrice.StringFixed(2))
	fmt.Fprintf(&sb, "Paid:      %s\n", b.PaidAmount.StringFixed(2))
	fmt.Fprintf(&sb, "Due:       %s\n", b.AmountDue().StringFixed(2))
	sb.WriteString("\nThank you for choosing us.\n")
	return subject, sb.String()
}
