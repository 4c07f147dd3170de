package domain

import (
	"strings"
	"time"
)

// Client is a guest profile. Email and Document are unique across all hotels.
type Client struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	HotelID     *int64     `json:"hotel_id,omitempty" gorm:"index"`
	UserID      *int64     `json:"user_id,omitempty" gorm:"index"`
	FirstName   string     `json:"first_name" gorm:"size:100;not null"`
	LastName    string     `json:"last_name" gorm:"size:100"`
	Email       string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Document    string     `json:"document" gorm:"size:20;uniqueIndex;not null"`
	Phone       string     `json:"phone,omitempty" gorm:"size:30"`
	Address     string     `json:"address,omitempty" gorm:"type:text"`
	BirthDate   *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	Nationality string     `json:"nationality,omitempty" gorm:"size:60"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	IsVIP       bool       `json:"is_vip" gorm:"column:is_vip;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// SplitName turns "Ana María López" into ("Ana", "María López").
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
