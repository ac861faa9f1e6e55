package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AssetStatusActive      = "active"
	AssetStatusMaintenance = "maintenance"
	AssetStatusRetired     = "retired"
)

const (
	AssetTypeEquipment = "equipment"
	AssetTypeVehicle   = "vehicle"
	AssetTypeTool      = "tool"
)

// Asset represents a piece of plantation equipment, a vehicle or a tool.
type Asset struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	AssetNumber      string          `json:"asset_number" db:"asset_number"`
	Name             string          `json:"name" db:"name"`
	CategoryID       uuid.UUID       `json:"category_id" db:"category_id"`
	CategoryName     string          `json:"category_name,omitempty" db:"category_name"`
	Type             string          `json:"type" db:"type"`
	PurchaseDate     time.Time       `json:"purchase_date" db:"purchase_date"`
	PurchasePrice    decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	CurrentValue     decimal.Decimal `json:"current_value" db:"current_value"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate,omitempty" db:"depreciation_rate"` // percent per year, from category
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// AssetCategory groups assets and carries their depreciation rate.
type AssetCategory struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate" db:"depreciation_rate"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type CreateAssetRequest struct {
	Name          string          `json:"name" validate:"required"`
	CategoryID    uuid.UUID       `json:"category_id" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=equipment vehicle tool"`
	PurchaseDate  string          `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"required"`
}

// DepreciationReportRow is one asset's line in the depreciation report.
type DepreciationReportRow struct {
	Name             string          `json:"name"`
	AssetNumber      string          `json:"asset_number"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	PurchaseDate     time.Time       `json:"purchase_date"`
	CurrentValue     decimal.Decimal `json:"current_value"`
	Depreciation     decimal.Decimal `json:"depreciation"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
}
