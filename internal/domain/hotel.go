package domain

import "time"

type Hotel struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;not null"`
	Slug      string    `json:"slug" gorm:"size:160;uniqueIndex;not null"`
	Email     string    `json:"email,omitempty" gorm:"size:254"`
	Phone     string    `json:"phone,omitempty" gorm:"size:30"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`
	IsBlocked bool      `json:"is_blocked" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
