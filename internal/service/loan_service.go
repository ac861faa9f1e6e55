package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/weeraman/plantation-erp/internal/amortization"
	"github.com/weeraman/plantation-erp/internal/config"
	"github.com/weeraman/plantation-erp/internal/domain"
	"github.com/weeraman/plantation-erp/internal/repository"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
	"github.com/weeraman/plantation-erp/pkg/utils"
)

const loanNumberPrefix = "LN"

type LoanService struct {
	LoanRepo    repository.LoanRepository
	PaymentRepo repository.PaymentRepository
	redis       *redis.Client
	config      *config.Config
	logger      *zap.Logger
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		LoanRepo:    loanRepo,
		PaymentRepo: paymentRepo,
		redis:       redisClient,
		config:      cfg,
		logger:      logger,
	}
}

// CreateLoan originates a loan: it runs the amortization engine over the
// requested terms and persists the loan together with its full schedule in
// one transaction. The loan number is assigned inside that transaction.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, []*domain.ScheduleEntry, error) {
	startDate, err := time.Parse("2006-01-02", request.StartDate)
	if err != nil {
		return nil, nil, customError.WrapInvalidLoanTerms(err)
	}

	entries, err := amortization.Generate(amortization.Terms{
		Principal:         request.Amount,
		AnnualRatePercent: request.InterestRate,
		TermMonths:        request.TermMonths,
		Frequency:         amortization.Frequency(request.PaymentFrequency),
		StartDate:         startDate,
	})
	if err != nil {
		return nil, nil, customError.WrapInvalidLoanTerms(err)
	}

	now := time.Now()
	loan := &domain.Loan{
		ID:               uuid.New(),
		BorrowerType:     request.BorrowerType,
		BorrowerID:       request.BorrowerID,
		Amount:           request.Amount,
		InterestRate:     request.InterestRate,
		TermMonths:       request.TermMonths,
		PaymentFrequency: request.PaymentFrequency,
		StartDate:        startDate,
		EndDate:          entries[len(entries)-1].DueDate,
		Purpose:          request.Purpose,
		Collateral:       request.Collateral,
		Status:           domain.LoanStatusActive,
		Notes:            request.Notes,
		RemainingBalance: request.Amount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	schedule := make([]*domain.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		schedule = append(schedule, &domain.ScheduleEntry{
			ID:               uuid.New(),
			LoanID:           loan.ID,
			PeriodNumber:     entry.PeriodNumber,
			DueDate:          entry.DueDate,
			PaymentAmount:    entry.PaymentAmount,
			PrincipalAmount:  entry.PrincipalAmount,
			InterestAmount:   entry.InterestAmount,
			RemainingBalance: entry.RemainingBalance,
			Status:           entry.Status,
			CreatedAt:        now,
		})
	}

	err = s.LoanRepo.CreateWithSchedule(ctx, loan, schedule, func(year, sequence int) string {
		return utils.FormatSequenceNumber(loanNumberPrefix, year, sequence)
	})
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("loan created",
		zap.String("loan_number", loan.LoanNumber),
		zap.String("amount", loan.Amount.String()),
		zap.Int("periods", len(schedule)),
	)

	s.cacheSchedule(ctx, loan.ID, schedule)

	return loan, schedule, nil
}

func (s *LoanService) GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

func (s *LoanService) GetLoanByNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	loan, err := s.LoanRepo.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanNumber)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

func (s *LoanService) ListLoans(ctx context.Context) ([]*domain.Loan, error) {
	loans, err := s.LoanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// GetSchedule returns the payment schedule for a loan, serving from the
// cache when possible.
func (s *LoanService) GetSchedule(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduleEntry, error) {
	if cached, ok := s.cachedSchedule(ctx, loanID); ok {
		return cached, nil
	}

	schedule, err := s.LoanRepo.GetSchedule(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(schedule) == 0 {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}

	s.cacheSchedule(ctx, loanID, schedule)

	return schedule, nil
}

// GetOutstanding returns the principal still owed on a loan.
func (s *LoanService) GetOutstanding(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	return loan.RemainingBalance, nil
}

// MakePayment records an installment against the earliest unpaid schedule
// entry, reduces the remaining balance by that entry's principal portion and
// completes the loan once nothing is left unpaid.
func (s *LoanService) MakePayment(ctx context.Context, loanID uuid.UUID, request *domain.MakePaymentRequest) (*domain.LoanPayment, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusActive && loan.Status != domain.LoanStatusOverdue {
		return nil, customError.WrapLoanNotActive(loan.LoanNumber)
	}

	schedule, err := s.LoanRepo.GetSchedule(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	var target *domain.ScheduleEntry
	for _, entry := range schedule {
		if entry.Status != domain.ScheduleStatusPaid {
			target = entry
			break
		}
	}
	if target == nil {
		return nil, customError.WrapNoPendingEntries(loan.LoanNumber)
	}

	now := time.Now()
	payment := &domain.LoanPayment{
		ID:           uuid.New(),
		LoanID:       loanID,
		PeriodNumber: target.PeriodNumber,
		Amount:       request.Amount,
		PaymentDate:  now,
		Notes:        request.Notes,
		CreatedAt:    now,
	}

	if err := s.LoanRepo.RecordPayment(ctx, payment, target.PrincipalAmount); err != nil {
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return nil, businessErr
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSchedule(ctx, loanID)

	s.logger.Info("payment recorded",
		zap.String("loan_number", loan.LoanNumber),
		zap.Int("period", target.PeriodNumber),
		zap.String("amount", request.Amount.String()),
	)

	return payment, nil
}

// PaymentHistory returns every recorded payment for a loan and the running
// total paid.
func (s *LoanService) PaymentHistory(ctx context.Context, loanID uuid.UUID) (*domain.PaymentHistoryResponse, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := s.PaymentRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	totalPaid, err := s.PaymentRepo.GetTotalPaid(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.PaymentHistoryResponse{
		LoanNumber: loan.LoanNumber,
		Payments:   payments,
		TotalPaid:  totalPaid,
	}, nil
}

// MarkOverdue is run by the scheduler: pending entries past the overdue
// window become overdue, and active loans carrying overdue entries follow.
func (s *LoanService) MarkOverdue(ctx context.Context, now time.Time) error {
	asOf := now.Add(-s.config.GetOverdueWindow())

	entries, err := s.LoanRepo.MarkOverdueEntries(ctx, asOf)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	loans, err := s.LoanRepo.MarkOverdueLoans(ctx)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.logger.Info("overdue sweep finished",
		zap.Int64("entries", entries),
		zap.Int64("loans", loans),
	)

	return nil
}

func scheduleCacheKey(loanID uuid.UUID) string {
	return fmt.Sprintf("loan:%s:schedule", loanID)
}

func (s *LoanService) cachedSchedule(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduleEntry, bool) {
	if s.redis == nil {
		return nil, false
	}

	raw, err := s.redis.Get(ctx, scheduleCacheKey(loanID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("schedule cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var schedule []*domain.ScheduleEntry
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		return nil, false
	}
	return schedule, true
}

func (s *LoanService) cacheSchedule(ctx context.Context, loanID uuid.UUID, schedule []*domain.ScheduleEntry) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(schedule)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, scheduleCacheKey(loanID), raw, s.config.GetCacheTTL()).Err(); err != nil {
		s.logger.Warn("schedule cache write failed", zap.Error(err))
	}
}

func (s *LoanService) invalidateSchedule(ctx context.Context, loanID uuid.UUID) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, scheduleCacheKey(loanID)).Err(); err != nil {
		s.logger.Warn("schedule cache invalidate failed", zap.Error(err))
	}
}
