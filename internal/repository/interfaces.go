package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/weeraman/plantation-erp/internal/domain"
)

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// CreateWithSchedule persists a loan and its full schedule in one
	// transaction. The loan number is assigned inside the transaction from
	// the count of loans already created this calendar year, formatted by
	// the supplied pure function, so concurrent creations never share a
	// number.
	CreateWithSchedule(ctx context.Context, loan *domain.Loan, schedule []*domain.ScheduleEntry, number func(year, sequence int) string) error

	// GetByID retrieves a loan by its row id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// GetByLoanNumber retrieves a loan by its human-readable number
	GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error)

	// List retrieves all loans, newest first
	List(ctx context.Context) ([]*domain.Loan, error)

	// GetSchedule retrieves a loan's schedule ordered by period number
	GetSchedule(ctx context.Context, loanID uuid.UUID) ([]*domain.ScheduleEntry, error)

	// RecordPayment persists a payment and its side effects in one
	// transaction: the schedule entry flips to paid, the loan balance
	// drops by the entry's principal portion, and the loan completes once
	// nothing is left unpaid. The loan row is locked for the duration, so
	// concurrent payments serialize, and settling an already-paid period
	// fails instead of double-charging.
	RecordPayment(ctx context.Context, payment *domain.LoanPayment, principal decimal.Decimal) error

	// MarkOverdueEntries flips pending entries past asOf to overdue,
	// returning how many were updated
	MarkOverdueEntries(ctx context.Context, asOf time.Time) (int64, error)

	// MarkOverdueLoans flips active loans that have overdue entries to overdue
	MarkOverdueLoans(ctx context.Context) (int64, error)
}

// PaymentRepository defines the interface for loan payment records
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.LoanPayment) error
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanPayment, error)
	GetTotalPaid(ctx context.Context, loanID uuid.UUID) (decimal.Decimal, error)
}

// AssetRepository defines the interface for asset data operations
type AssetRepository interface {
	// Create persists an asset, assigning its number inside a transaction
	// the same way loans are numbered.
	Create(ctx context.Context, asset *domain.Asset, number func(year, sequence int) string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	List(ctx context.Context) ([]*domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListActiveWithRates joins active assets with their category
	// depreciation rates for the depreciation report.
	ListActiveWithRates(ctx context.Context) ([]*domain.Asset, error)
	UpdateCurrentValue(ctx context.Context, id uuid.UUID, value decimal.Decimal) error

	CreateCategory(ctx context.Context, category *domain.AssetCategory) error
	ListCategories(ctx context.Context) ([]*domain.AssetCategory, error)
}

// InventoryRepository defines the interface for inventory data operations
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	GetByProductName(ctx context.Context, name string) (*domain.InventoryItem, error)
	List(ctx context.Context, productType string) ([]*domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyMovement records a stock movement and adjusts the item quantity
	// in one transaction. Outbound movements that would overdraw stock fail.
	ApplyMovement(ctx context.Context, movement *domain.StockMovement) error
	ListMovements(ctx context.Context, itemID uuid.UUID) ([]*domain.StockMovement, error)
}

// SalesRepository defines the interface for sales invoice operations
type SalesRepository interface {
	// CreateWithItems persists an invoice and its lines in one transaction,
	// decrementing inventory per line and assigning the invoice number.
	CreateWithItems(ctx context.Context, invoice *domain.SalesInvoice, items []*domain.SalesItem, number func(year, sequence int) string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesInvoice, []*domain.SalesItem, error)
	List(ctx context.Context) ([]*domain.SalesInvoice, error)
}

// ManufacturingRepository defines the interface for manufacturing orders
type ManufacturingRepository interface {
	Create(ctx context.Context, order *domain.ManufacturingOrder, number func(year, sequence int) string) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ManufacturingOrder, error)
	List(ctx context.Context) ([]*domain.ManufacturingOrder, error)
	Update(ctx context.Context, order *domain.ManufacturingOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LandRepository defines the interface for land data operations
type LandRepository interface {
	Create(ctx context.Context, land *domain.Land) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Land, error)
	GetByLandNumber(ctx context.Context, landNumber string) (*domain.Land, error)
	ListActiveWithAssignments(ctx context.Context) ([]*domain.LandWithAssignment, error)
	Update(ctx context.Context, land *domain.Land) error

	Assign(ctx context.Context, assignment *domain.LandAssignment) error
}

// ReportRepository aggregates dashboard figures
type ReportRepository interface {
	ActiveLandsCount(ctx context.Context) (int, error)
	ActiveLoansCount(ctx context.Context) (int, error)
	PendingOrdersCount(ctx context.Context) (int, error)
	MonthlyRevenue(ctx context.Context, now time.Time) (decimal.Decimal, error)
	RevenueSeries(ctx context.Context, months int) ([]*domain.MonthRevenue, error)
}
