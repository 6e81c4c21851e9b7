package models

import "time"

// Vendor представляет модель поставщика.
type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// VendorRequest представляет структуру запроса для создания или обновления поставщика.
type VendorRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
}
