package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/amortization"
	"github.com/weeraman/plantation-erp/internal/config"
	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/repository/mocks"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Business.CacheTTL = "15m"
	cfg.Scheduler.OverdueWindow = "24h"
	return cfg
}

func newTestLoanService(loanRepo *mocks.MockLoanRepository, paymentRepo *mocks.MockPaymentRepository, redisClient *redis.Client) *LoanService {
	return NewLoanService(loanRepo, paymentRepo, redisClient, testConfig(), zap.NewNop())
}

func TestCreateLoan_Success(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	mockLoanRepo.On("CreateWithSchedule", mock.Anything,
		mock.MatchedBy(func(loan *domain.Loan) bool {
			return loan.Status == domain.LoanStatusActive &&
				loan.RemainingBalance.Equal(decimal.NewFromInt(100000))
		}),
		mock.MatchedBy(func(schedule []*domain.ScheduleEntry) bool {
			return len(schedule) == 12
		}),
		mock.Anything,
	).Return(nil)

	loan, schedule, err := service.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		BorrowerType:     "employee",
		BorrowerID:       uuid.New(),
		Amount:           decimal.NewFromInt(100000),
		InterestRate:     decimal.NewFromInt(12),
		TermMonths:       12,
		PaymentFrequency: "monthly",
		StartDate:        "2024-01-01",
	})

	require.NoError(t, err)
	assert.Len(t, schedule, 12)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), loan.EndDate)
	assert.True(t, loan.RemainingBalance.Equal(decimal.NewFromInt(100000)))

	mockLoanRepo.AssertExpectations(t)
}

func TestCreateLoan_InvalidTerms(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	_, _, err := service.CreateLoan(context.Background(), &domain.CreateLoanRequest{
		BorrowerType:     "employee",
		BorrowerID:       uuid.New(),
		Amount:           decimal.NewFromInt(100000),
		InterestRate:     decimal.NewFromInt(12),
		TermMonths:       5,
		PaymentFrequency: "quarterly",
		StartDate:        "2024-01-01",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, amortization.ErrTermFrequencyMismatch)

	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeInvalidLoanTerms, businessErr.Code)

	mockLoanRepo.AssertNotCalled(t, "CreateWithSchedule")
}

func TestGetSchedule_CachesResult(t *testing.T) {
	server := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})

	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, redisClient)

	loanID := uuid.New()
	schedule := []*domain.ScheduleEntry{
		{
			ID:            uuid.New(),
			LoanID:        loanID,
			PeriodNumber:  1,
			DueDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			PaymentAmount: decimal.NewFromInt(100),
			Status:        domain.ScheduleStatusPending,
		},
	}

	mockLoanRepo.On("GetSchedule", mock.Anything, loanID).Return(schedule, nil).Once()

	first, err := service.GetSchedule(context.Background(), loanID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second read must come from the cache; the mock only allows one call.
	second, err := service.GetSchedule(context.Background(), loanID)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].PeriodNumber, second[0].PeriodNumber)
	assert.True(t, first[0].PaymentAmount.Equal(second[0].PaymentAmount))

	mockLoanRepo.AssertExpectations(t)
}

func TestGetSchedule_EmptyIsNotFound(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	loanID := uuid.New()
	mockLoanRepo.On("GetSchedule", mock.Anything, loanID).Return([]*domain.ScheduleEntry{}, nil)

	_, err := service.GetSchedule(context.Background(), loanID)
	assert.ErrorIs(t, err, customError.ErrLoanNotFound)
}

func TestMakePayment_TargetsEarliestUnpaidEntry(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	loanID := uuid.New()
	loan := &domain.Loan{
		ID:               loanID,
		LoanNumber:       "LN250001",
		Status:           domain.LoanStatusActive,
		RemainingBalance: decimal.NewFromInt(1000),
	}
	schedule := []*domain.ScheduleEntry{
		{LoanID: loanID, PeriodNumber: 1, PrincipalAmount: decimal.NewFromInt(500), Status: domain.ScheduleStatusPaid},
		{LoanID: loanID, PeriodNumber: 2, PrincipalAmount: decimal.NewFromInt(500), Status: domain.ScheduleStatusPending},
		{LoanID: loanID, PeriodNumber: 3, PrincipalAmount: decimal.NewFromInt(500), Status: domain.ScheduleStatusPending},
	}

	mockLoanRepo.On("GetByID", mock.Anything, loanID).Return(loan, nil)
	mockLoanRepo.On("GetSchedule", mock.Anything, loanID).Return(schedule, nil)
	mockLoanRepo.On("RecordPayment", mock.Anything,
		mock.MatchedBy(func(payment *domain.LoanPayment) bool {
			return payment.LoanID == loanID && payment.PeriodNumber == 2
		}),
		mock.MatchedBy(func(principal decimal.Decimal) bool {
			return principal.Equal(decimal.NewFromInt(500))
		}),
	).Return(nil)

	payment, err := service.MakePayment(context.Background(), loanID, &domain.MakePaymentRequest{
		Amount: decimal.NewFromInt(520),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, payment.PeriodNumber)

	mockLoanRepo.AssertExpectations(t)
}

func TestMakePayment_OverdueEntryAccepted(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	loanID := uuid.New()
	loan := &domain.Loan{
		ID:               loanID,
		LoanNumber:       "LN250002",
		Status:           domain.LoanStatusOverdue,
		RemainingBalance: decimal.NewFromInt(500),
	}
	schedule := []*domain.ScheduleEntry{
		{LoanID: loanID, PeriodNumber: 1, PrincipalAmount: decimal.NewFromInt(500), Status: domain.ScheduleStatusPaid},
		{LoanID: loanID, PeriodNumber: 2, PrincipalAmount: decimal.NewFromInt(500), Status: domain.ScheduleStatusOverdue},
	}

	mockLoanRepo.On("GetByID", mock.Anything, loanID).Return(loan, nil)
	mockLoanRepo.On("GetSchedule", mock.Anything, loanID).Return(schedule, nil)
	mockLoanRepo.On("RecordPayment", mock.Anything,
		mock.MatchedBy(func(payment *domain.LoanPayment) bool {
			return payment.PeriodNumber == 2
		}),
		mock.MatchedBy(func(principal decimal.Decimal) bool {
			return principal.Equal(decimal.NewFromInt(500))
		}),
	).Return(nil)

	_, err := service.MakePayment(context.Background(), loanID, &domain.MakePaymentRequest{
		Amount: decimal.NewFromInt(500),
	})

	require.NoError(t, err)
	mockLoanRepo.AssertExpectations(t)
}

func TestMakePayment_AlreadyPaidPassesThrough(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	loanID := uuid.New()
	loan := &domain.Loan{
		ID:               loanID,
		LoanNumber:       "LN250004",
		Status:           domain.LoanStatusActive,
		RemainingBalance: decimal.NewFromInt(1000),
	}
	schedule := []*domain.ScheduleEntry{
		{LoanID: loanID, PeriodNumber: 1, PrincipalAmount: decimal.NewFromInt(500), Status: domain.ScheduleStatusPending},
	}

	mockLoanRepo.On("GetByID", mock.Anything, loanID).Return(loan, nil)
	mockLoanRepo.On("GetSchedule", mock.Anything, loanID).Return(schedule, nil)
	mockLoanRepo.On("RecordPayment", mock.Anything, mock.Anything, mock.Anything).
		Return(customError.WrapEntryAlreadyPaid(loanID.String(), 1))

	_, err := service.MakePayment(context.Background(), loanID, &domain.MakePaymentRequest{
		Amount: decimal.NewFromInt(500),
	})

	assert.ErrorIs(t, err, customError.ErrEntryAlreadyPaid)

	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeEntryAlreadyPaid, businessErr.Code)
}

func TestMakePayment_CompletedLoanRejected(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	loanID := uuid.New()
	mockLoanRepo.On("GetByID", mock.Anything, loanID).Return(&domain.Loan{
		ID:         loanID,
		LoanNumber: "LN250003",
		Status:     domain.LoanStatusCompleted,
	}, nil)

	_, err := service.MakePayment(context.Background(), loanID, &domain.MakePaymentRequest{
		Amount: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, customError.ErrLoanNotActive)
	mockLoanRepo.AssertNotCalled(t, "RecordPayment")
}

func TestMarkOverdue(t *testing.T) {
	mockLoanRepo := &mocks.MockLoanRepository{}
	mockPaymentRepo := &mocks.MockPaymentRepository{}

	service := newTestLoanService(mockLoanRepo, mockPaymentRepo, nil)

	now := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	asOf := now.Add(-24 * time.Hour)

	mockLoanRepo.On("MarkOverdueEntries", mock.Anything, asOf).Return(int64(3), nil)
	mockLoanRepo.On("MarkOverdueLoans", mock.Anything).Return(int64(2), nil)

	err := service.MarkOverdue(context.Background(), now)

	require.NoError(t, err)
	mockLoanRepo.AssertExpectations(t)
}
