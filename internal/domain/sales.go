package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusConfirmed = "confirmed"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// SalesInvoice is a customer invoice with its line items stored separately.
type SalesInvoice struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	InvoiceNumber   string          `json:"invoice_number" db:"invoice_number"`
	CustomerName    string          `json:"customer_name" db:"customer_name"`
	CustomerAddress string          `json:"customer_address,omitempty" db:"customer_address"`
	CustomerPhone   string          `json:"customer_phone,omitempty" db:"customer_phone"`
	Date            time.Time       `json:"date" db:"date"`
	SubTotal        decimal.Decimal `json:"sub_total" db:"sub_total"`
	Tax             decimal.Decimal `json:"tax" db:"tax"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Status          string          `json:"status" db:"status"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// SalesItem is one invoice line.
type SalesItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	ItemID    uuid.UUID       `json:"item_id" db:"item_id"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total" db:"line_total"`
}

type CreateInvoiceRequest struct {
	CustomerName    string               `json:"customer_name" validate:"required"`
	CustomerAddress string               `json:"customer_address"`
	CustomerPhone   string               `json:"customer_phone"`
	TaxPercent      decimal.Decimal      `json:"tax_percent"`
	Notes           string               `json:"notes"`
	Items           []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type InvoiceItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

type InvoiceResponse struct {
	Invoice *SalesInvoice `json:"invoice"`
	Items   []*SalesItem  `json:"items"`
}
