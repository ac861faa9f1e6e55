package amortization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodsPerYear(t *testing.T) {
	tests := []struct {
		frequency Frequency
		want      int
	}{
		{FrequencyWeekly, 52},
		{FrequencyMonthly, 12},
		{FrequencyQuarterly, 4},
		{FrequencyAnnually, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			got, err := PeriodsPerYear(tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := PeriodsPerYear(Frequency("daily"))
		assert.ErrorIs(t, err, ErrUnsupportedFrequency)
	})
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		from      time.Time
		want      time.Time
	}{
		{"weekly plain", FrequencyWeekly, date(2024, 1, 1), date(2024, 1, 8)},
		{"weekly across month end", FrequencyWeekly, date(2024, 1, 29), date(2024, 2, 5)},
		{"monthly plain", FrequencyMonthly, date(2024, 1, 1), date(2024, 2, 1)},
		{"monthly clamps to leap february", FrequencyMonthly, date(2024, 1, 31), date(2024, 2, 29)},
		{"monthly clamps to february", FrequencyMonthly, date(2025, 1, 31), date(2025, 2, 28)},
		{"monthly clamps to thirty days", FrequencyMonthly, date(2024, 3, 31), date(2024, 4, 30)},
		{"monthly across year end", FrequencyMonthly, date(2024, 12, 15), date(2025, 1, 15)},
		{"quarterly plain", FrequencyQuarterly, date(2024, 1, 15), date(2024, 4, 15)},
		{"quarterly clamps", FrequencyQuarterly, date(2024, 11, 30), date(2025, 2, 28)},
		{"annually plain", FrequencyAnnually, date(2024, 5, 10), date(2025, 5, 10)},
		{"annually clamps leap day", FrequencyAnnually, date(2024, 2, 29), date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(tt.from, tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := NextDueDate(date(2024, 1, 1), Frequency("biweekly"))
		assert.ErrorIs(t, err, ErrUnsupportedFrequency)
	})
}
