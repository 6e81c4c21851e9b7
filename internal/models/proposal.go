package models

import "time"

// ProposalLineItem - цена по одной позиции предложения.
type ProposalLineItem struct {
	Item  string `json:"item" validate:"required"`
	Price int    `json:"price" validate:"gte=0,lte=2147483647"`
}

// Proposal представляет модель предложения поставщика. После получения не меняется.
type Proposal struct {
	ID           string             `json:"id"`
	RFPID        string             `json:"rfpId"`
	VendorID     string             `json:"vendorId"`
	VendorName   string             `json:"vendorName"`
	TotalPrice   int                `json:"totalPrice"`
	DeliveryDays int                `json:"deliveryDays"`
	Terms        string             `json:"terms"`
	Warranty     string             `json:"warranty"`
	LineItems    []ProposalLineItem `json:"lineItems"`
	Notes        string             `json:"notes"`
	ReceivedAt   time.Time          `json:"receivedAt"`
	AIScore      int                `json:"aiScore"`
}

// ProposalRequest представляет структуру запроса для регистрации полученного предложения.
type ProposalRequest struct {
	VendorID     string             `json:"vendorId" validate:"required"`
	TotalPrice   int                `json:"totalPrice" validate:"gte=0,lte=2147483647"`
	DeliveryDays int                `json:"deliveryDays" validate:"gt=0,lte=2147483647"`
	Terms        string             `json:"terms"`
	Warranty     string             `json:"warranty"`
	LineItems    []ProposalLineItem `json:"lineItems" validate:"dive"`
	Notes        string             `json:"notes"`
	AIScore      int                `json:"aiScore" validate:"gte=0,lte=100"`
}
