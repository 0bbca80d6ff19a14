package progress

import (
	"alcyxob/workout-tracker/internal/domain"
	"strconv"
	"time"
)

// Trailing periods the UI offers, in days.
const (
	PeriodWeek    = 7
	PeriodMonth   = 30
	PeriodQuarter = 90
	PeriodYear    = 365

	// DefaultPeriod is the fail-safe for malformed period input.
	DefaultPeriod = PeriodMonth
)

// GroupAll is the muscle-group filter sentinel matching every group.
const GroupAll = "all"

// ParsePeriod converts a period selector string into a day count.
// Anything outside the known set fails safe to DefaultPeriod.
func ParsePeriod(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultPeriod
	}
	switch n {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return n
	}
	return DefaultPeriod
}

// Cutoff computes the window start: now minus periodDays days.
func Cutoff(now time.Time, periodDays int) time.Time {
	return now.AddDate(0, 0, -periodDays)
}

// InWindow reports whether a workout started at or after the cutoff.
func InWindow(w domain.Workout, cutoff time.Time) bool {
	return !w.StartedAt.Before(cutoff)
}
