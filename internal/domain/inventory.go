package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ProductTypeRawMaterial = "raw_material"
	ProductTypeFinished    = "finished_good"
)

const (
	MovementTypeIn  = "in"
	MovementTypeOut = "out"
)

// InventoryItem is a stocked product, either raw material or finished good.
type InventoryItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	ProductName string          `json:"product_name" db:"product_name"`
	ProductType string          `json:"product_type" db:"product_type"`
	Quantity    decimal.Decimal `json:"quantity" db:"quantity"`
	Unit        string          `json:"unit" db:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// StockMovement records a quantity entering or leaving an inventory item.
type StockMovement struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ItemID    uuid.UUID       `json:"item_id" db:"item_id"`
	Type      string          `json:"type" db:"type"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	Reference string          `json:"reference,omitempty" db:"reference"`
	Notes     string          `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type CreateItemRequest struct {
	ProductName string          `json:"product_name" validate:"required"`
	ProductType string          `json:"product_type" validate:"required,oneof=raw_material finished_good"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type StockMovementRequest struct {
	Type      string          `json:"type" validate:"required,oneof=in out"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}
