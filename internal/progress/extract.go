package progress

import (
	"alcyxob/workout-tracker/internal/domain"
	"time"
)

// extractSession produces the single observation for one workout exercise
// within one workout. An exercise whose sets were never materialized (only
// a planned count) contributes a zero-valued observation: no sets observed
// means no weight and no volume.
//
// A set with weight 0 contributes 0 to volume regardless of its completed
// flag; volume is weight times target reps summed across all sets.
func extractSession(we domain.WorkoutExercise, date time.Time) Session {
	s := Session{
		Date:        date,
		WeightTaken: we.WeightAchieved,
	}
	for _, set := range we.Sets {
		if set.Weight > s.MaxWeight {
			s.MaxWeight = set.Weight
		}
		s.TotalVolume += set.Weight * float64(set.Reps)
		if set.Completed {
			s.SetsCompleted++
		}
	}
	return s
}
