// Package progress turns raw workout history into per-exercise performance
// summaries and trend labels. Everything here is a pure transformation over
// an in-memory snapshot: no I/O, no shared state, safe to re-run in full on
// every period or filter change.
package progress

import (
	"alcyxob/workout-tracker/internal/domain"
	"sort"
	"time"
)

// Session is one per-exercise observation from a single workout.
type Session struct {
	Date          time.Time `json:"date"`
	MaxWeight     float64   `json:"maxWeight"`
	TotalVolume   float64   `json:"totalVolume"`
	SetsCompleted int       `json:"setsCompleted"`
	WeightTaken   bool      `json:"weightTaken"`
}

// ExerciseProgress is the aggregated summary for one exercise over the
// analysis window. It is recomputed on every pass and never persisted.
type ExerciseProgress struct {
	ExerciseID    string    `json:"exerciseId"`
	ExerciseName  string    `json:"exerciseName"`
	MuscleGroup   string    `json:"muscleGroup"`
	Sessions      []Session `json:"sessions"` // ascending by date
	BestWeight    float64   `json:"bestWeight"`
	TotalVolume   float64   `json:"totalVolume"`
	SessionsCount int       `json:"sessionsCount"`
	LastPerformed time.Time `json:"lastPerformed"`
	Trend         Trend     `json:"trend"`
}

// Analyze runs the full pipeline: window filter, per-session extraction,
// per-exercise aggregation and trend classification. Workouts referencing
// exercises absent from the catalog are dropped silently (stale data, not
// an error). The result is ordered by first occurrence of each exercise in
// the chronological fold; callers re-rank as needed.
func Analyze(workouts []domain.Workout, catalog []domain.Exercise, now time.Time, periodDays int) []ExerciseProgress {
	cutoff := Cutoff(now, periodDays)

	inWindow := make([]domain.Workout, 0, len(workouts))
	for _, w := range workouts {
		if InWindow(w, cutoff) {
			inWindow = append(inWindow, w)
		}
	}

	// Fold in chronological order so lastPerformed lands on the latest date.
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].StartedAt.Before(inWindow[j].StartedAt)
	})

	summaries := aggregate(inWindow, catalog)
	for i := range summaries {
		summaries[i].Trend = Classify(summaries[i].Sessions)
	}
	return summaries
}

// FilterByMuscleGroup keeps only summaries whose muscle group matches the
// filter. GroupAll passes everything through unchanged.
func FilterByMuscleGroup(list []ExerciseProgress, group string) []ExerciseProgress {
	if group == GroupAll || group == "" {
		return list
	}
	filtered := make([]ExerciseProgress, 0, len(list))
	for _, p := range list {
		if p.MuscleGroup == group {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Rank orders summaries for "best progress" views: upward trends first,
// then best weight descending. The sort is stable, so ties keep their
// relative order.
func Rank(list []ExerciseProgress) []ExerciseProgress {
	ranked := make([]ExerciseProgress, len(list))
	copy(ranked, list)
	sort.SliceStable(ranked, func(i, j int) bool {
		if (ranked[i].Trend == TrendUp) != (ranked[j].Trend == TrendUp) {
			return ranked[i].Trend == TrendUp
		}
		return ranked[i].BestWeight > ranked[j].BestWeight
	})
	return ranked
}
