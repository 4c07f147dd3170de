package hotel

type CreateHotelRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	Slug    string `json:"slug" validate:"omitempty,max=160"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Address string `json:"address"`
}

type UpdateHotelRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=150"`
	Slug    *string `json:"slug" validate:"omitempty,max=160"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,phone"`
	Address *string `json:"address"`
}
