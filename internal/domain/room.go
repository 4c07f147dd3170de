package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
	RoomSuite  RoomType = "suite"
	RoomFamily RoomType = "family"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomTriple, RoomSuite, RoomFamily:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
	RoomReserved    RoomStatus = "reserved"
)

var RoomStatuses = []RoomStatus{RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance, RoomReserved}

func (s RoomStatus) Valid() bool {
	for _, v := range RoomStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Room struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	HotelID     int64           `json:"hotel_id" gorm:"not null;uniqueIndex:idx_rooms_hotel_number"`
	Number      string          `json:"number" gorm:"size:10;not null;uniqueIndex:idx_rooms_hotel_number"`
	RoomType    RoomType        `json:"room_type" gorm:"size:20;not null"`
	Capacity    int             `json:"capacity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Floor       int             `json:"floor"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool            `json:"is_active" gorm:"not null"`
	Status      RoomStatus      `json:"status" gorm:"size:20;not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
}

// Bookable is the coarse room flag checked before the overlap scan.
func (r *Room) Bookable() bool {
	return r.IsActive && r.Status == RoomAvailable
}

// Quote prices a stay of the given number of nights.
func (r *Room) Quote(nights int) decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(nights)))
}
