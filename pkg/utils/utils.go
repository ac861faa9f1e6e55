package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// FormatSequenceNumber builds a human-readable reference such as LN250001:
// prefix, two-digit year, then the sequence zero-padded to four digits.
// The caller owns the sequence counter; loan numbering derives it from the
// count of records already created in the calendar year.
func FormatSequenceNumber(prefix string, year int, sequence int) string {
	return fmt.Sprintf("%s%02d%04d", prefix, year%100, sequence)
}

// DecliningBalanceValue computes the current book value of an asset under
// declining-balance depreciation:
//
//	value = purchasePrice * (1 - rate/100)^ageYears
//
// with age measured in fractional years. The result never goes below zero.
func DecliningBalanceValue(purchasePrice decimal.Decimal, ratePercent decimal.Decimal, ageYears float64) decimal.Decimal {
	if ageYears <= 0 {
		return purchasePrice
	}

	retention := 1 - ratePercent.InexactFloat64()/100
	if retention <= 0 {
		return decimal.Zero
	}

	factor := math.Pow(retention, ageYears)
	value := purchasePrice.Mul(decimal.NewFromFloat(factor)).Round(2)
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// AgeInYears returns the fractional number of years between two dates.
func AgeInYears(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / 365
}

// IsDateOverdue checks if a due date has passed relative to now.
func IsDateOverdue(dueDate time.Time, now time.Time) bool {
	return now.After(dueDate)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
