package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LandStatusActive   = "active"
	LandStatusInactive = "inactive"
)

const (
	AssignmentStatusActive    = "active"
	AssignmentStatusCompleted = "completed"
	AssignmentStatusCancelled = "cancelled"
)

// Land is one plantation plot.
type Land struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	LandNumber   string          `json:"land_number" db:"land_number"`
	Name         string          `json:"name" db:"name"`
	Location     string          `json:"location,omitempty" db:"location"`
	AreaHectares decimal.Decimal `json:"area_hectares" db:"area_hectares"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// LandAssignment gives a contractor a cutting assignment on a land for a
// date range.
type LandAssignment struct {
	ID           uuid.UUID `json:"id" db:"id"`
	LandID       uuid.UUID `json:"land_id" db:"land_id"`
	ContractorID uuid.UUID `json:"contractor_id" db:"contractor_id"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateLandRequest struct {
	LandNumber   string          `json:"land_number" validate:"required"`
	Name         string          `json:"name" validate:"required"`
	Location     string          `json:"location"`
	AreaHectares decimal.Decimal `json:"area_hectares" validate:"required"`
}

type AssignLandRequest struct {
	ContractorID uuid.UUID `json:"contractor_id" validate:"required"`
	StartDate    string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string    `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// LandWithAssignment is a land row joined with its active assignment, if any.
type LandWithAssignment struct {
	Land
	ContractorID     *uuid.UUID `json:"contractor_id,omitempty" db:"contractor_id"`
	AssignmentStart  *time.Time `json:"assignment_start,omitempty" db:"assignment_start"`
	AssignmentEnd    *time.Time `json:"assignment_end,omitempty" db:"assignment_end"`
	AssignmentStatus *string    `json:"assignment_status,omitempty" db:"assignment_status"`
}
