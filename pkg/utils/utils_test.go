package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatSequenceNumber(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		year     int
		sequence int
		expected string
	}{
		{
			name:     "first loan of the year",
			prefix:   "LN",
			year:     2025,
			sequence: 1,
			expected: "LN250001",
		},
		{
			name:     "manufacturing order",
			prefix:   "MO",
			year:     2024,
			sequence: 42,
			expected: "MO240042",
		},
		{
			name:     "four digit sequence",
			prefix:   "INV",
			year:     2025,
			sequence: 9999,
			expected: "INV259999",
		},
		{
			name:     "turn of the decade",
			prefix:   "AS",
			year:     2030,
			sequence: 7,
			expected: "AS300007",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSequenceNumber(tt.prefix, tt.year, tt.sequence))
		})
	}
}

func TestDecliningBalanceValue(t *testing.T) {
	purchase := decimal.NewFromInt(100000)

	tests := []struct {
		name     string
		rate     decimal.Decimal
		ageYears float64
		expected decimal.Decimal
	}{
		{
			name:     "brand new asset keeps full value",
			rate:     decimal.NewFromInt(20),
			ageYears: 0,
			expected: decimal.NewFromInt(100000),
		},
		{
			name:     "one year at twenty percent",
			rate:     decimal.NewFromInt(20),
			ageYears: 1,
			expected: decimal.NewFromInt(80000),
		},
		{
			name:     "two years at twenty percent",
			rate:     decimal.NewFromInt(20),
			ageYears: 2,
			expected: decimal.NewFromInt(64000),
		},
		{
			name:     "full writeoff rate",
			rate:     decimal.NewFromInt(100),
			ageYears: 1,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecliningBalanceValue(purchase, tt.rate, tt.ageYears)
			assert.True(t, got.Equal(tt.expected),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestIsDateOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsDateOverdue(now.AddDate(0, 0, -1), now))
	assert.False(t, IsDateOverdue(now.AddDate(0, 0, 1), now))
	assert.False(t, IsDateOverdue(now, now))
}
