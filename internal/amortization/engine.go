package amortization

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors returned by Generate. Each input defect maps to its own
// sentinel so callers can translate them individually.
var (
	ErrInvalidPrincipal     = errors.New("principal must be greater than zero")
	ErrInvalidTerm          = errors.New("term months must be greater than zero")
	ErrInvalidRate          = errors.New("interest rate must not be negative")
	ErrUnsupportedFrequency = errors.New("unsupported payment frequency")
	// ErrTermFrequencyMismatch is returned when the term does not divide into
	// a whole number of payment periods, e.g. 5 months paid quarterly.
	ErrTermFrequencyMismatch = errors.New("term does not divide into whole payment periods")
)

const (
	EntryStatusPending = "pending"
	EntryStatusPaid    = "paid"
	EntryStatusOverdue = "overdue"
)

// Terms are the immutable inputs of a schedule calculation.
type Terms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal // 12.5 means 12.5% per year
	TermMonths        int
	Frequency         Frequency
	StartDate         time.Time
}

// Entry is one period of an amortization schedule.
type Entry struct {
	PeriodNumber     int
	DueDate          time.Time
	PaymentAmount    decimal.Decimal
	PrincipalAmount  decimal.Decimal
	InterestAmount   decimal.Decimal
	RemainingBalance decimal.Decimal
	Status           string
}

var one = decimal.NewFromInt(1)

// Generate computes a level-payment amortization schedule for the given
// terms. All monetary arithmetic is done in decimal, so the terminal balance
// converges to zero and the principal portions sum back to the principal
// without binary floating point drift.
//
// The start date is the date of first accrual: the first entry falls due one
// payment period after it, and each later entry advances one more period per
// NextDueDate.
func Generate(terms Terms) ([]Entry, error) {
	if terms.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrincipal
	}
	if terms.TermMonths <= 0 {
		return nil, ErrInvalidTerm
	}
	if terms.AnnualRatePercent.IsNegative() {
		return nil, ErrInvalidRate
	}

	periodsPerYear, err := PeriodsPerYear(terms.Frequency)
	if err != nil {
		return nil, err
	}

	// totalPeriods = termMonths/12 * periodsPerYear, rejected rather than
	// truncated when fractional: truncation would silently shorten the loan.
	if (terms.TermMonths*periodsPerYear)%12 != 0 {
		return nil, ErrTermFrequencyMismatch
	}
	totalPeriods := terms.TermMonths * periodsPerYear / 12

	periodicRate := terms.AnnualRatePercent.
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(periodsPerYear)))

	payment := levelPayment(terms.Principal, periodicRate, totalPeriods)

	// PeriodsPerYear already rejected unknown frequencies, so the step
	// function is never nil here.
	step := terms.Frequency.advance()

	entries := make([]Entry, 0, totalPeriods)
	balance := terms.Principal
	dueDate := step(terms.StartDate)

	for period := 1; period <= totalPeriods; period++ {
		interest := balance.Mul(periodicRate)
		principal := payment.Sub(interest)

		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		entries = append(entries, Entry{
			PeriodNumber:     period,
			DueDate:          dueDate,
			PaymentAmount:    payment,
			PrincipalAmount:  principal,
			InterestAmount:   interest,
			RemainingBalance: balance,
			Status:           EntryStatusPending,
		})

		dueDate = step(dueDate)
	}

	return entries, nil
}

// levelPayment computes the fixed per-period installment.
//
//	P * r * (1+r)^n / ((1+r)^n - 1)
//
// At a zero rate the annuity formula degenerates to 0/0, so the principal is
// split evenly instead.
func levelPayment(principal, periodicRate decimal.Decimal, totalPeriods int) decimal.Decimal {
	if periodicRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(totalPeriods)))
	}

	compound := one.Add(periodicRate).Pow(decimal.NewFromInt(int64(totalPeriods)))
	return principal.Mul(periodicRate).Mul(compound).Div(compound.Sub(one))
}
