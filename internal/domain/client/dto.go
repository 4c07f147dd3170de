package client

type CreateClientRequest struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Document    string  `json:"document" validate:"required"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	BirthDate   *string `json:"birth_date"`
	Nationality string  `json:"nationality" validate:"max=60"`
	IsVIP       bool    `json:"is_vip"`
	HotelID     *int64  `json:"hotel_id"`
}

type UpdateClientRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Document    *string `json:"document"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	BirthDate   *string `json:"birth_date"`
	Nationality *string `json:"nationality" validate:"omitempty,max=60"`
	IsVIP       *bool   `json:"is_vip"`
	IsActive    *bool   `json:"is_active"`
}

// GuestDetails is what the public portal collects about a guest.
type GuestDetails struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Document string `json:"document" validate:"required,dni"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
}
