// Package generator builds randomized workout plans from a user's exercise
// library. Selection is per muscle group: filter the library by group and
// allowed exercise types, shuffle, take the requested count.
package generator

import (
	"alcyxob/workout-tracker/internal/domain"
	"errors"
	"math/rand"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoAlternatives is returned by Replace when every exercise of the same
// muscle group and type is either the one being replaced or already in the
// plan.
var ErrNoAlternatives = errors.New("no alternative exercises available")

// GroupSelection describes what to pick for one muscle group.
type GroupSelection struct {
	MuscleGroup string
	// Types restricts selection to these exercise types. Empty means main
	// exercises only, mirroring the generator form's default.
	Types []domain.ExerciseType
	// Count is how many exercises to pick; values below 1 are raised to 1.
	Count int
}

// Generator picks exercises using its own rand source so tests can seed it.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator with the given source.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate assembles a workout plan from the catalog. Groups are processed
// in selection order; within a group the picks are random. Each pick
// snapshots the exercise and copies its default sets and reps. Order
// indexes are 1-based across the whole plan. A group with fewer matching
// exercises than requested contributes what it has.
func (g *Generator) Generate(catalog []domain.Exercise, selections []GroupSelection) []domain.WorkoutExercise {
	var plan []domain.WorkoutExercise

	for _, sel := range selections {
		types := sel.Types
		if len(types) == 0 {
			types = []domain.ExerciseType{domain.ExerciseMain}
		}
		count := sel.Count
		if count < 1 {
			count = 1
		}

		available := filterCatalog(catalog, sel.MuscleGroup, types)
		g.rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		if len(available) > count {
			available = available[:count]
		}

		for _, ex := range available {
			plan = append(plan, newWorkoutExercise(ex, len(plan)+1))
		}
	}
	return plan
}

// Replace swaps the plan entry at idx for a random alternative of the same
// muscle group and exercise type. Exercises already in the plan are
// excluded. The returned entry keeps the original's order index.
func (g *Generator) Replace(plan []domain.WorkoutExercise, idx int, catalog []domain.Exercise) (domain.WorkoutExercise, error) {
	if idx < 0 || idx >= len(plan) {
		return domain.WorkoutExercise{}, errors.New("plan index out of range")
	}
	current := plan[idx]

	used := make(map[primitive.ObjectID]bool, len(plan))
	for _, we := range plan {
		used[we.ExerciseID] = true
	}

	var alternatives []domain.Exercise
	for _, ex := range catalog {
		if ex.MuscleGroup != current.Exercise.MuscleGroup || ex.Type != current.Exercise.Type {
			continue
		}
		if used[ex.ID] {
			continue
		}
		alternatives = append(alternatives, ex)
	}
	if len(alternatives) == 0 {
		return domain.WorkoutExercise{}, ErrNoAlternatives
	}

	picked := alternatives[g.rng.Intn(len(alternatives))]
	replacement := newWorkoutExercise(picked, current.OrderIndex)
	return replacement, nil
}

func filterCatalog(catalog []domain.Exercise, muscleGroup string, types []domain.ExerciseType) []domain.Exercise {
	var matched []domain.Exercise
	for _, ex := range catalog {
		if ex.MuscleGroup != muscleGroup {
			continue
		}
		for _, t := range types {
			if ex.Type == t {
				matched = append(matched, ex)
				break
			}
		}
	}
	return matched
}

func newWorkoutExercise(ex domain.Exercise, orderIndex int) domain.WorkoutExercise {
	return domain.WorkoutExercise{
		ID:          primitive.NewObjectID(),
		ExerciseID:  ex.ID,
		Exercise:    ex,
		SetsPlanned: ex.Sets,
		Reps:        ex.Reps,
		RestSeconds: domain.DefaultRestSeconds,
		OrderIndex:  orderIndex,
	}
}
