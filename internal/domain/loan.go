package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive    = "active"
	LoanStatusCompleted = "completed"
	LoanStatusDefaulted = "defaulted"
	LoanStatusOverdue   = "overdue"
)

const (
	BorrowerTypeEmployee   = "employee"
	BorrowerTypeContractor = "contractor"
	BorrowerTypeOther      = "other"
)

// Loan represents a loan entity
type Loan struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	LoanNumber       string          `json:"loan_number" db:"loan_number"`
	BorrowerType     string          `json:"borrower_type" db:"borrower_type"`
	BorrowerID       uuid.UUID       `json:"borrower_id" db:"borrower_id"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	InterestRate     decimal.Decimal `json:"interest_rate" db:"interest_rate"` // percent per year
	TermMonths       int             `json:"term_months" db:"term_months"`
	PaymentFrequency string          `json:"payment_frequency" db:"payment_frequency"`
	StartDate        time.Time       `json:"start_date" db:"start_date"`
	EndDate          time.Time       `json:"end_date" db:"end_date"`
	Purpose          string          `json:"purpose,omitempty" db:"purpose"`
	Collateral       string          `json:"collateral,omitempty" db:"collateral"`
	Status           string          `json:"status" db:"status"`
	Notes            string          `json:"notes,omitempty" db:"notes"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" db:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	BorrowerType     string          `json:"borrower_type" validate:"required,oneof=employee contractor other"`
	BorrowerID       uuid.UUID       `json:"borrower_id" validate:"required"`
	Amount           decimal.Decimal `json:"amount" validate:"required"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TermMonths       int             `json:"term_months" validate:"required"`
	PaymentFrequency string          `json:"payment_frequency" validate:"required,oneof=weekly monthly quarterly annually"`
	StartDate        string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	Purpose          string          `json:"purpose"`
	Collateral       string          `json:"collateral"`
	Notes            string          `json:"notes"`
}

type CreateLoanResponse struct {
	Loan     *Loan            `json:"loan"`
	Schedule []*ScheduleEntry `json:"schedule"`
}

type OutstandingResponse struct {
	LoanNumber  string          `json:"loan_number"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type MakePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Notes  string          `json:"notes"`
}
