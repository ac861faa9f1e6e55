package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ScheduleStatusPending = "pending"
	ScheduleStatusPaid    = "paid"
	ScheduleStatusOverdue = "overdue"
)

// ScheduleEntry represents one period of a loan's amortization schedule.
// Entries are written once at origination; only the status is mutated
// afterwards, by payment recording and the overdue sweep.
type ScheduleEntry struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	LoanID           uuid.UUID       `json:"loan_id" db:"loan_id"`
	PeriodNumber     int             `json:"period_number" db:"period_number"`
	DueDate          time.Time       `json:"due_date" db:"due_date"`
	PaymentAmount    decimal.Decimal `json:"payment_amount" db:"payment_amount"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" db:"remaining_balance"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type ScheduleResponse struct {
	LoanNumber string           `json:"loan_number"`
	Schedule   []*ScheduleEntry `json:"schedule"`
}
