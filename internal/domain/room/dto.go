package room

import (
	"github.com/shopspring/decimal"

	"hotelpms/internal/domain"
)

type CreateRoomRequest struct {
	Number      string          `json:"number" validate:"required,max=10"`
	RoomType    domain.RoomType `json:"room_type" validate:"required"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Floor       int             `json:"floor"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

type UpdateRoomRequest struct {
	Number      *string          `json:"number" validate:"omitempty,max=10"`
	RoomType    *domain.RoomType `json:"room_type"`
	Capacity    *int             `json:"capacity" validate:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price"`
	Floor       *int             `json:"floor"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

type ChangeStatusRequest struct {
	Status domain.RoomStatus `json:"status" validate:"required"`
}

// AvailableRoom is a search hit with the quote for the requested stay.
type AvailableRoom struct {
	domain.Room
	Nights int             `json:"nights"`
	Total  decimal.Decimal `json:"total"`
}

type CalendarDay struct {
	Date      string          `json:"date"`
	Available bool            `json:"available"`
	Price     decimal.Decimal `json:"price"`
}

type Calendar struct {
	RoomID    int64         `json:"room_id"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Days      []CalendarDay `json:"days"`
}
