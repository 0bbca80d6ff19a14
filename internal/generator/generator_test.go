package generator

import (
	"math/rand"
	"testing"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func libraryExercise(name, muscleGroup string, exType domain.ExerciseType) domain.Exercise {
	return domain.Exercise{
		ID:          primitive.NewObjectID(),
		Name:        name,
		MuscleGroup: muscleGroup,
		Type:        exType,
		WeightType:  domain.WeightAdditional,
		Sets:        4,
		Reps:        8,
	}
}

func testCatalog() []domain.Exercise {
	return []domain.Exercise{
		libraryExercise("Жим лёжа", "Грудь", domain.ExerciseMain),
		libraryExercise("Жим гантелей", "Грудь", domain.ExerciseMain),
		libraryExercise("Разводка", "Грудь", domain.ExerciseIsolation),
		libraryExercise("Становая тяга", "Спина", domain.ExerciseMain),
		libraryExercise("Тяга блока", "Спина", domain.ExerciseAuxiliary),
		libraryExercise("Присед", "Ноги", domain.ExerciseMain),
	}
}

func TestGeneratePicksPerGroup(t *testing.T) {
	g := New(rand.NewSource(1))
	catalog := testCatalog()

	plan := g.Generate(catalog, []GroupSelection{
		{MuscleGroup: "Грудь", Types: []domain.ExerciseType{domain.ExerciseMain}, Count: 2},
		{MuscleGroup: "Спина", Count: 1}, // defaults to main only
	})

	require.Len(t, plan, 3)
	assert.Equal(t, "Грудь", plan[0].Exercise.MuscleGroup)
	assert.Equal(t, "Грудь", plan[1].Exercise.MuscleGroup)
	assert.Equal(t, "Становая тяга", plan[2].Exercise.Name)

	for i, we := range plan {
		assert.Equal(t, i+1, we.OrderIndex)
		assert.Equal(t, 4, we.SetsPlanned)
		assert.Equal(t, 8, we.Reps)
		assert.Equal(t, domain.DefaultRestSeconds, we.RestSeconds)
		assert.Equal(t, we.Exercise.ID, we.ExerciseID)
		assert.False(t, we.Completed)
		assert.False(t, we.WeightAchieved)
		assert.Empty(t, we.Sets, "sets materialize on execution, not generation")
	}
}

func TestGenerateRespectsTypeFilter(t *testing.T) {
	g := New(rand.NewSource(7))

	plan := g.Generate(testCatalog(), []GroupSelection{
		{MuscleGroup: "Грудь", Types: []domain.ExerciseType{domain.ExerciseIsolation}, Count: 5},
	})

	require.Len(t, plan, 1, "only one isolation chest exercise exists")
	assert.Equal(t, "Разводка", plan[0].Exercise.Name)
}

func TestGenerateShortGroup(t *testing.T) {
	g := New(rand.NewSource(3))

	// Asking for more than the library holds yields what is available.
	plan := g.Generate(testCatalog(), []GroupSelection{
		{MuscleGroup: "Ноги", Types: []domain.ExerciseType{domain.ExerciseMain}, Count: 10},
	})
	assert.Len(t, plan, 1)

	// Unknown group yields nothing.
	plan = g.Generate(testCatalog(), []GroupSelection{
		{MuscleGroup: "Шея", Count: 2},
	})
	assert.Empty(t, plan)
}

func TestGenerateCountFloor(t *testing.T) {
	g := New(rand.NewSource(5))
	plan := g.Generate(testCatalog(), []GroupSelection{
		{MuscleGroup: "Спина", Types: []domain.ExerciseType{domain.ExerciseAuxiliary}, Count: 0},
	})
	assert.Len(t, plan, 1, "count below 1 is raised to 1")
}

func TestReplaceExcludesPlanMembers(t *testing.T) {
	g := New(rand.NewSource(2))
	catalog := testCatalog()

	plan := []domain.WorkoutExercise{
		newWorkoutExercise(catalog[0], 1), // Жим лёжа (chest, main)
	}

	replacement, err := g.Replace(plan, 0, catalog)
	require.NoError(t, err)
	assert.Equal(t, "Жим гантелей", replacement.Exercise.Name,
		"the only other chest main exercise")
	assert.Equal(t, 1, replacement.OrderIndex)
	assert.NotEqual(t, plan[0].ID, replacement.ID)
}

func TestReplaceNoAlternatives(t *testing.T) {
	g := New(rand.NewSource(2))
	catalog := testCatalog()

	// Both chest main exercises already in the plan: nothing left to swap in.
	plan := []domain.WorkoutExercise{
		newWorkoutExercise(catalog[0], 1),
		newWorkoutExercise(catalog[1], 2),
	}

	_, err := g.Replace(plan, 0, catalog)
	assert.ErrorIs(t, err, ErrNoAlternatives)

	_, err = g.Replace(plan, 5, catalog)
	assert.Error(t, err, "index out of range")
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	catalog := testCatalog()
	sel := []GroupSelection{{MuscleGroup: "Грудь", Types: []domain.ExerciseType{domain.ExerciseMain, domain.ExerciseIsolation}, Count: 2}}

	a := New(rand.NewSource(42)).Generate(catalog, sel)
	b := New(rand.NewSource(42)).Generate(catalog, sel)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ExerciseID, b[i].ExerciseID)
	}
}
