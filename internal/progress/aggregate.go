package progress

import (
	"alcyxob/workout-tracker/internal/domain"
	"sort"
)

// aggregate folds in-window workouts into per-exercise summaries.
//
// Static name and muscle group come from the catalog lookup, not the
// embedded snapshot; an observation whose exercise is missing from the
// catalog is dropped (the exercise was deleted, its history is stale).
// lastPerformed tracks fold order, so the caller must pass workouts in
// chronological order for it to equal the latest session date.
func aggregate(workouts []domain.Workout, catalog []domain.Exercise) []ExerciseProgress {
	byID := make(map[string]*domain.Exercise, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID.Hex()] = &catalog[i]
	}

	summaries := make(map[string]*ExerciseProgress)
	var order []string

	for _, w := range workouts {
		for _, we := range w.Exercises {
			exerciseID := we.ExerciseID.Hex()
			exercise, ok := byID[exerciseID]
			if !ok {
				continue
			}

			summary, ok := summaries[exerciseID]
			if !ok {
				summary = &ExerciseProgress{
					ExerciseID:   exerciseID,
					ExerciseName: exercise.Name,
					MuscleGroup:  exercise.MuscleGroup,
					Sessions:     []Session{},
				}
				summaries[exerciseID] = summary
				order = append(order, exerciseID)
			}

			obs := extractSession(we, w.StartedAt)
			summary.Sessions = append(summary.Sessions, obs)
			if obs.MaxWeight > summary.BestWeight {
				summary.BestWeight = obs.MaxWeight
			}
			summary.TotalVolume += obs.TotalVolume
			summary.SessionsCount++
			summary.LastPerformed = w.StartedAt
		}
	}

	result := make([]ExerciseProgress, 0, len(order))
	for _, id := range order {
		summary := summaries[id]
		sort.SliceStable(summary.Sessions, func(i, j int) bool {
			return summary.Sessions[i].Date.Before(summary.Sessions[j].Date)
		})
		result = append(result, *summary)
	}
	return result
}
