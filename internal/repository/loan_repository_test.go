package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weeraman/plantation-erp/internal/domain"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
	"github.com/weeraman/plantation-erp/pkg/utils"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestCreateWithSchedule_NumbersInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	now := time.Now()
	loan := &domain.Loan{
		ID:               uuid.New(),
		BorrowerType:     "employee",
		BorrowerID:       uuid.New(),
		Amount:           decimal.NewFromInt(100000),
		InterestRate:     decimal.NewFromInt(12),
		TermMonths:       12,
		PaymentFrequency: "monthly",
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:           domain.LoanStatusActive,
		RemainingBalance: decimal.NewFromInt(100000),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	schedule := []*domain.ScheduleEntry{
		{
			ID:            uuid.New(),
			LoanID:        loan.ID,
			PeriodNumber:  1,
			DueDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			PaymentAmount: decimal.NewFromInt(8885),
			Status:        domain.ScheduleStatusPending,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New(),
			LoanID:        loan.ID,
			PeriodNumber:  2,
			DueDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			PaymentAmount: decimal.NewFromInt(8885),
			Status:        domain.ScheduleStatusPending,
			CreatedAt:     now,
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM loans`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectExec(`INSERT INTO loans`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO loan_schedule`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO loan_schedule`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithSchedule(context.Background(), loan, schedule, func(year, sequence int) string {
		return utils.FormatSequenceNumber("LN", year, sequence)
	})

	require.NoError(t, err)
	expected := fmt.Sprintf("LN%02d0042", time.Now().Year()%100)
	assert.Equal(t, expected, loan.LoanNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithSchedule_RollsBackOnEntryFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	loan := &domain.Loan{ID: uuid.New(), BorrowerID: uuid.New()}
	schedule := []*domain.ScheduleEntry{
		{ID: uuid.New(), LoanID: loan.ID, PeriodNumber: 1},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM loans`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO loans`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO loan_schedule`).
		WillReturnError(fmt.Errorf("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateWithSchedule(context.Background(), loan, schedule, func(year, sequence int) string {
		return utils.FormatSequenceNumber("LN", year, sequence)
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOverdueEntries_ReportsAffectedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	asOf := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE loan_schedule`).
		WithArgs(asOf).
		WillReturnResult(sqlmock.NewResult(0, 7))

	affected, err := repo.MarkOverdueEntries(context.Background(), asOf)

	require.NoError(t, err)
	assert.Equal(t, int64(7), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_MidLoanKeepsActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	now := time.Now()
	payment := &domain.LoanPayment{
		ID:           uuid.New(),
		LoanID:       uuid.New(),
		PeriodNumber: 2,
		Amount:       decimal.NewFromInt(8885),
		PaymentDate:  now,
		CreatedAt:    now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT remaining_balance FROM loans (.+) FOR UPDATE`).
		WithArgs(payment.LoanID).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_balance"}).AddRow("92115.12"))
	mock.ExpectExec(`UPDATE loan_schedule`).
		WithArgs(payment.LoanID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO loan_payments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM loan_schedule`).
		WithArgs(payment.LoanID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectExec(`UPDATE loans`).
		WithArgs(payment.LoanID,
			decimal.RequireFromString("92115.12").Sub(decimal.NewFromInt(7963)),
			domain.LoanStatusActive, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordPayment(context.Background(), payment, decimal.NewFromInt(7963))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_LastPeriodCompletesLoan(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	payment := &domain.LoanPayment{
		ID:           uuid.New(),
		LoanID:       uuid.New(),
		PeriodNumber: 12,
		Amount:       decimal.NewFromInt(8885),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT remaining_balance FROM loans (.+) FOR UPDATE`).
		WithArgs(payment.LoanID).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_balance"}).AddRow("8796.91"))
	mock.ExpectExec(`UPDATE loan_schedule`).
		WithArgs(payment.LoanID, 12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO loan_payments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM loan_schedule`).
		WithArgs(payment.LoanID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE loans`).
		WithArgs(payment.LoanID, decimal.Zero, domain.LoanStatusCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordPayment(context.Background(), payment, decimal.RequireFromString("8796.91"))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_AlreadyPaidRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	payment := &domain.LoanPayment{
		ID:           uuid.New(),
		LoanID:       uuid.New(),
		PeriodNumber: 3,
		Amount:       decimal.NewFromInt(8885),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT remaining_balance FROM loans (.+) FOR UPDATE`).
		WithArgs(payment.LoanID).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_balance"}).AddRow("50000"))
	mock.ExpectExec(`UPDATE loan_schedule`).
		WithArgs(payment.LoanID, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.RecordPayment(context.Background(), payment, decimal.NewFromInt(7000))

	assert.ErrorIs(t, err, customError.ErrEntryAlreadyPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPayment_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	payment := &domain.LoanPayment{
		ID:           uuid.New(),
		LoanID:       uuid.New(),
		PeriodNumber: 1,
		Amount:       decimal.NewFromInt(8885),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT remaining_balance FROM loans (.+) FOR UPDATE`).
		WithArgs(payment.LoanID).
		WillReturnRows(sqlmock.NewRows([]string{"remaining_balance"}).AddRow("100000"))
	mock.ExpectExec(`UPDATE loan_schedule`).
		WithArgs(payment.LoanID, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO loan_payments`).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	err := repo.RecordPayment(context.Background(), payment, decimal.NewFromInt(7884))

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSchedule_OrdersByPeriod(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	loanID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "loan_id", "period_number", "due_date", "payment_amount",
		"principal_amount", "interest_amount", "remaining_balance", "status", "created_at",
	}).
		AddRow(uuid.New(), loanID, 1, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			"8884.88", "7884.88", "1000", "92115.12", "pending", time.Now()).
		AddRow(uuid.New(), loanID, 2, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			"8884.88", "7963.73", "921.15", "84151.39", "pending", time.Now())

	mock.ExpectQuery(`SELECT (.+) FROM loan_schedule`).
		WithArgs(loanID).
		WillReturnRows(rows)

	schedule, err := repo.GetSchedule(context.Background(), loanID)

	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, 1, schedule[0].PeriodNumber)
	assert.True(t, schedule[0].InterestAmount.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
