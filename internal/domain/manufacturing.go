package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPlanned    = "planned"
	OrderStatusInProgress = "in-progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ManufacturingOrder is a production run of a finished good.
type ManufacturingOrder struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderNumber string          `json:"order_number" db:"order_number"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name,omitempty" db:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	Status      string          `json:"status" db:"status"`
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date"`
	Notes       string          `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateOrderRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	StartDate string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes     string          `json:"notes"`
}

// UpdateOrderRequest only touches the fields the caller sent. Nil means keep
// the stored value, so quantity can be set to zero and notes cleared.
type UpdateOrderRequest struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	Status    *string          `json:"status" validate:"omitempty,oneof=planned in-progress completed cancelled"`
	StartDate *string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string          `json:"notes"`
}
