package domain

import (
	"time"

	"gorm.io/datatypes"
)

type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// EmailLog records every outbound guest email and its delivery outcome.
type EmailLog struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	EventID   string         `json:"event_id" gorm:"size:36;uniqueIndex;not null"`
	EventType string         `json:"event_type" gorm:"size:40;not null"`
	BookingID *int64         `json:"booking_id,omitempty" gorm:"index"`
	Recipient string         `json:"recipient" gorm:"size:254;not null"`
	Subject   string         `json:"subject" gorm:"size:200"`
	Status    EmailStatus    `json:"status" gorm:"size:10;not null;index"`
	Error     string         `json:"error,omitempty" gorm:"type:text"`
	Payload   datatypes.JSON `json:"payload,omitempty"`
	SentAt    *time.Time     `json:"sent_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
