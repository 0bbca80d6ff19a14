package progress

import (
	"alcyxob/workout-tracker/internal/domain"
	"math"
	"time"
)

// OverviewStats is the headline summary for a trailing period.
type OverviewStats struct {
	TotalWorkouts      int     `json:"totalWorkouts"` // completed only
	TotalExercises     int     `json:"totalExercises"`
	TotalSets          int     `json:"totalSets"`
	AvgWorkoutsPerWeek float64 `json:"avgWorkoutsPerWeek"`
}

// Overview computes period-wide statistics over in-window workouts.
// Exercise and set counts include active workouts; the workout count and
// the per-week average count completed ones only. A workout exercise whose
// sets were never materialized contributes its planned set count.
func Overview(workouts []domain.Workout, now time.Time, periodDays int) OverviewStats {
	cutoff := Cutoff(now, periodDays)

	var stats OverviewStats
	for _, w := range workouts {
		if !InWindow(w, cutoff) {
			continue
		}
		if w.Status == domain.WorkoutCompleted {
			stats.TotalWorkouts++
		}
		stats.TotalExercises += len(w.Exercises)
		for _, we := range w.Exercises {
			if len(we.Sets) > 0 {
				stats.TotalSets += len(we.Sets)
			} else {
				stats.TotalSets += we.SetsPlanned
			}
		}
	}

	if periodDays > 0 {
		perWeek := float64(stats.TotalWorkouts) / float64(periodDays) * 7
		stats.AvgWorkoutsPerWeek = math.Round(perWeek*10) / 10
	}
	return stats
}
