package report

import (
	"fmt"
	"time"

	"github.com/platebooks/backend/internal/domain/shared"
)

// PeriodType labels the reporting period on a generated report
type PeriodType string

const (
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodAnnual    PeriodType = "ANNUAL"
	PeriodCustom    PeriodType = "CUSTOM"
)

// IsValid checks if the period type is valid
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodAnnual, PeriodCustom:
		return true
	}
	return false
}

// MonthRange returns the inclusive bounds of a calendar month. The end bound
// is the last instant of the month so timestamped records on the final day
// are included by a <= comparison.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// QuarterRange returns the inclusive bounds of a calendar quarter. Quarter n
// spans months 3n-2 through 3n.
func QuarterRange(year, quarter int) (time.Time, time.Time, error) {
	if quarter < 1 || quarter > 4 {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_QUARTER",
			fmt.Sprintf("quarter must be 1 to 4, got %d", quarter))
	}
	start := time.Date(year, time.Month(3*quarter-2), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// YearRange returns the inclusive bounds of a calendar year
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return start, end
}
