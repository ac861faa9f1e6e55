package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanNotActive     = errors.New("loan is not active")
	ErrNoPendingEntries  = errors.New("loan has no pending schedule entries")
	ErrEntryAlreadyPaid  = errors.New("schedule entry already paid")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrItemAlreadyExists = errors.New("inventory item already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("manufacturing order not found")
	ErrOrderNotDeletable = errors.New("cannot delete orders that are in progress or completed")
	ErrLandNotFound      = errors.New("land not found")
	ErrInvoiceNotFound   = errors.New("sales invoice not found")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound      = "LOAN_NOT_FOUND"
	ErrCodeLoanNotActive     = "LOAN_NOT_ACTIVE"
	ErrCodeInvalidLoanTerms  = "INVALID_LOAN_TERMS"
	ErrCodeNoPendingEntries  = "NO_PENDING_ENTRIES"
	ErrCodeEntryAlreadyPaid  = "ENTRY_ALREADY_PAID"
	ErrCodeAssetNotFound     = "ASSET_NOT_FOUND"
	ErrCodeItemNotFound      = "ITEM_NOT_FOUND"
	ErrCodeItemAlreadyExists = "ITEM_ALREADY_EXISTS"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeOrderNotDeletable = "ORDER_NOT_DELETABLE"
	ErrCodeLandNotFound      = "LAND_NOT_FOUND"
	ErrCodeInvoiceNotFound   = "INVOICE_NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapLoanNotFound(loanNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan %s not found", loanNumber),
		ErrLoanNotFound,
	)
}

func WrapLoanNotActive(loanNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotActive,
		fmt.Sprintf("Loan %s is not active", loanNumber),
		ErrLoanNotActive,
	)
}

// WrapInvalidLoanTerms carries one of the schedule generator's validation
// sentinels so callers can still match on the specific defect.
func WrapInvalidLoanTerms(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanTerms,
		"loan terms failed validation",
		err,
	)
}

func WrapNoPendingEntries(loanNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoPendingEntries,
		fmt.Sprintf("Loan %s has no pending schedule entries", loanNumber),
		ErrNoPendingEntries,
	)
}

func WrapEntryAlreadyPaid(loanID string, periodNumber int) *BusinessError {
	return NewBusinessError(
		ErrCodeEntryAlreadyPaid,
		fmt.Sprintf("Period %d of loan %s is already paid", periodNumber, loanID),
		ErrEntryAlreadyPaid,
	)
}

func WrapAssetNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeAssetNotFound,
		fmt.Sprintf("Asset %s not found", id),
		ErrAssetNotFound,
	)
}

func WrapItemNotFound(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeItemNotFound,
		fmt.Sprintf("Inventory item %s not found", name),
		ErrItemNotFound,
	)
}

func WrapItemAlreadyExists(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeItemAlreadyExists,
		fmt.Sprintf("Inventory item %s already exists", name),
		ErrItemAlreadyExists,
	)
}

func WrapInsufficientStock(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s", name),
		ErrInsufficientStock,
	)
}

func WrapOrderNotFound(orderNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeOrderNotFound,
		fmt.Sprintf("Manufacturing order %s not found", orderNumber),
		ErrOrderNotFound,
	)
}

func WrapOrderNotDeletable(orderNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeOrderNotDeletable,
		fmt.Sprintf("Manufacturing order %s is in progress or completed", orderNumber),
		ErrOrderNotDeletable,
	)
}

func WrapLandNotFound(landNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeLandNotFound,
		fmt.Sprintf("Land %s not found", landNumber),
		ErrLandNotFound,
	)
}

func WrapInvoiceNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvoiceNotFound,
		fmt.Sprintf("Sales invoice %s not found", id),
		ErrInvoiceNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
