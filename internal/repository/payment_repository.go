package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/weeraman/plantation-erp/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.LoanPayment) error {
	query := `
		INSERT INTO loan_payments (id, loan_id, period_number, amount, payment_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.LoanID,
		payment.PeriodNumber,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPayment, error) {
	query := `
		SELECT id, loan_id, period_number, amount, payment_date, notes, created_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY payment_date DESC
	`

	var payments []*domain.LoanPayment
	if err := r.db.SelectContext(ctx, &payments, query, loanID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetTotalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM loan_payments
		WHERE loan_id = $1
	`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, loanID); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
