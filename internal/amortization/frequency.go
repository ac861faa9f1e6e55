package amortization

import "time"

// Frequency is the payment cadence of a loan.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// PeriodsPerYear returns how many payment periods a year holds for the
// given frequency.
func PeriodsPerYear(f Frequency) (int, error) {
	switch f {
	case FrequencyWeekly:
		return 52, nil
	case FrequencyMonthly:
		return 12, nil
	case FrequencyQuarterly:
		return 4, nil
	case FrequencyAnnually:
		return 1, nil
	default:
		return 0, ErrUnsupportedFrequency
	}
}

// NextDueDate advances a due date by one payment period. Month and year
// steps clamp to the last day of the target month, so a schedule started
// on Jan 31 falls due on Feb 28 (or 29), not Mar 2.
func NextDueDate(t time.Time, f Frequency) (time.Time, error) {
	step := f.advance()
	if step == nil {
		return time.Time{}, ErrUnsupportedFrequency
	}
	return step(t), nil
}

// advance returns the one-period step function for the frequency, or nil
// when the frequency is unknown. Callers that have already validated the
// frequency, e.g. through PeriodsPerYear, can step without an error path.
func (f Frequency) advance() func(time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case FrequencyMonthly:
		return func(t time.Time) time.Time { return addMonthsClamped(t, 1) }
	case FrequencyQuarterly:
		return func(t time.Time) time.Time { return addMonthsClamped(t, 3) }
	case FrequencyAnnually:
		return func(t time.Time) time.Time { return addMonthsClamped(t, 12) }
	default:
		return nil
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(t time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
