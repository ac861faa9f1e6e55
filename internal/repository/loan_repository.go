package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/weeraman/plantation-erp/internal/domain"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateWithSchedule(ctx context.Context, loan *domain.Loan, schedule []*domain.ScheduleEntry, number func(year, sequence int) string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The count query and the insert share the transaction, so two loans
	// created at the same time cannot end up with the same number.
	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM loans WHERE date_part('year', created_at) = date_part('year', CURRENT_DATE)`)
	if err != nil {
		return err
	}
	loan.LoanNumber = number(time.Now().Year(), count+1)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loans (id, loan_number, borrower_type, borrower_id, amount, interest_rate,
			term_months, payment_frequency, start_date, end_date, purpose, collateral,
			status, notes, remaining_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		loan.ID,
		loan.LoanNumber,
		loan.BorrowerType,
		loan.BorrowerID,
		loan.Amount,
		loan.InterestRate,
		loan.TermMonths,
		loan.PaymentFrequency,
		loan.StartDate,
		loan.EndDate,
		loan.Purpose,
		loan.Collateral,
		loan.Status,
		loan.Notes,
		loan.RemainingBalance,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	entryQuery := `
		INSERT INTO loan_schedule (id, loan_id, period_number, due_date, payment_amount,
			principal_amount, interest_amount, remaining_balance, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, entry := range schedule {
		_, err = tx.ExecContext(ctx, entryQuery,
			entry.ID,
			entry.LoanID,
			entry.PeriodNumber,
			entry.DueDate,
			entry.PaymentAmount,
			entry.PrincipalAmount,
			entry.InterestAmount,
			entry.RemainingBalance,
			entry.Status,
			entry.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, loan_number, borrower_type, borrower_id, amount, interest_rate,
		       term_months, payment_frequency, start_date, end_date, purpose, collateral,
		       status, notes, remaining_balance, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	query := `
		SELECT id, loan_number, borrower_type, borrower_id, amount, interest_rate,
		       term_months, payment_frequency, start_date, end_date, purpose, collateral,
		       status, notes, remaining_balance, created_at, updated_at
		FROM loans
		WHERE loan_number = $1
	`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, loanNumber); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	query := `
		SELECT id, loan_number, borrower_type, borrower_id, amount, interest_rate,
		       term_months, payment_frequency, start_date, end_date, purpose, collateral,
		       status, notes, remaining_balance, created_at, updated_at
		FROM loans
		ORDER BY created_at DESC
	`

	var loans []*domain.Loan
	if err := r.db.SelectContext(ctx, &loans, query); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) GetSchedule(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduleEntry, error) {
	query := `
		SELECT id, loan_id, period_number, due_date, payment_amount,
		       principal_amount, interest_amount, remaining_balance, status, created_at
		FROM loan_schedule
		WHERE loan_id = $1
		ORDER BY period_number
	`

	var schedule []*domain.ScheduleEntry
	if err := r.db.SelectContext(ctx, &schedule, query, loanID); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *loanRepository) RecordPayment(ctx context.Context, payment *domain.LoanPayment, principal decimal.Decimal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Locking the loan row serializes concurrent payments against the same
	// loan, so the balance read below cannot go stale before the update.
	var balance decimal.Decimal
	err = tx.GetContext(ctx, &balance,
		`SELECT remaining_balance FROM loans WHERE id = $1 FOR UPDATE`, payment.LoanID)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE loan_schedule
		SET status = 'paid'
		WHERE loan_id = $1 AND period_number = $2 AND status <> 'paid'
	`, payment.LoanID, payment.PeriodNumber)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return customError.WrapEntryAlreadyPaid(payment.LoanID.String(), payment.PeriodNumber)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO loan_payments (id, loan_id, period_number, amount, payment_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		payment.ID,
		payment.LoanID,
		payment.PeriodNumber,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
		payment.CreatedAt,
	)
	if err != nil {
		return err
	}

	var unpaid int
	err = tx.GetContext(ctx, &unpaid,
		`SELECT COUNT(*) FROM loan_schedule WHERE loan_id = $1 AND status <> 'paid'`, payment.LoanID)
	if err != nil {
		return err
	}

	balance = balance.Sub(principal)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	status := domain.LoanStatusActive
	if unpaid == 0 {
		status = domain.LoanStatusCompleted
		balance = decimal.Zero
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE loans
		SET remaining_balance = $2, status = $3, updated_at = $4
		WHERE id = $1
	`, payment.LoanID, balance, status, time.Now())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *loanRepository) MarkOverdueEntries(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE loan_schedule
		SET status = 'overdue'
		WHERE status = 'pending' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *loanRepository) MarkOverdueLoans(ctx context.Context) (int64, error) {
	query := `
		UPDATE loans
		SET status = 'overdue', updated_at = NOW()
		WHERE status = 'active'
		  AND id IN (SELECT DISTINCT loan_id FROM loan_schedule WHERE status = 'overdue')
	`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
