package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPayment is one recorded installment payment against a loan.
type LoanPayment struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	LoanID       uuid.UUID       `json:"loan_id" db:"loan_id"`
	PeriodNumber int             `json:"period_number" db:"period_number"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate  time.Time       `json:"payment_date" db:"payment_date"`
	Notes        string          `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type PaymentHistoryResponse struct {
	LoanNumber string          `json:"loan_number"`
	Payments   []*LoanPayment  `json:"payments"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}
