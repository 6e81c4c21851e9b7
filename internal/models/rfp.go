package models

import "time"

type RFPStatus string // Статус запроса предложений

const (
	DraftRFP     RFPStatus = "draft"     // Черновик, можно редактировать
	SentRFP      RFPStatus = "sent"      // Отправлен поставщикам
	CompletedRFP RFPStatus = "completed" // Сбор предложений завершён
)

// Valid проверяет, что статус входит в допустимый набор.
func (s RFPStatus) Valid() bool {
	switch s {
	case DraftRFP, SentRFP, CompletedRFP:
		return true
	}
	return false
}

// RFPItem - позиция в запросе предложений.
type RFPItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0,lte=2147483647"`
	Specs    string `json:"specs"`
}

// RFP представляет модель запроса предложений.
type RFP struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Budget       int        `json:"budget"`
	DeliveryDays int        `json:"deliveryDays"`
	Items        []RFPItem  `json:"items"`
	PaymentTerms string     `json:"paymentTerms"`
	Warranty     string     `json:"warranty"`
	Status       RFPStatus  `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	SentTo       []string   `json:"sentTo"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
}

// RFPCreateRequest - текст, из которого извлекается черновик.
type RFPCreateRequest struct {
	Text string `json:"text"`
}

// RFPUpdateRequest описывает частичное редактирование черновика.
type RFPUpdateRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string    `json:"description"`
	Budget       *int       `json:"budget" validate:"omitempty,gte=0,lte=2147483647"`
	DeliveryDays *int       `json:"deliveryDays" validate:"omitempty,gt=0,lte=2147483647"`
	Items        *[]RFPItem `json:"items" validate:"omitempty,min=1,dive"`
	PaymentTerms *string    `json:"paymentTerms"`
	Warranty     *string    `json:"warranty"`
}

// Apply переносит заданные поля в rfp.
func (u RFPUpdateRequest) Apply(rfp *RFP) {
	if u.Title != nil {
		rfp.Title = *u.Title
	}
	if u.Description != nil {
		rfp.Description = *u.Description
	}
	if u.Budget != nil {
		rfp.Budget = *u.Budget
	}
	if u.DeliveryDays != nil {
		rfp.DeliveryDays = *u.DeliveryDays
	}
	if u.Items != nil {
		rfp.Items = append([]RFPItem(nil), (*u.Items)...)
	}
	if u.PaymentTerms != nil {
		rfp.PaymentTerms = *u.PaymentTerms
	}
	if u.Warranty != nil {
		rfp.Warranty = *u.Warranty
	}
}

// Empty сообщает, что в запросе нет ни одного поля.
func (u RFPUpdateRequest) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Budget == nil && u.DeliveryDays == nil &&
		u.Items == nil && u.PaymentTerms == nil && u.Warranty == nil
}

// RFPSendRequest - список поставщиков для рассылки.
type RFPSendRequest struct {
	VendorIDs []string `json:"vendorIds" validate:"required,min=1,dive,required"`
}

// RFPFilter - параметры выборки списка.
type RFPFilter struct {
	Status RFPStatus
	Search string
	Limit  int
	Offset int
}

// DashboardStats - сводка для главной страницы.
type DashboardStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Vendors   int `json:"vendors"`
}
