package service

import (
	"context"
	"math/rand"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/generator"
	"alcyxob/workout-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- in-memory fakes ---

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	// Mirror the partial unique index: one active workout per user.
	for _, w := range r.workouts {
		if w.UserID == workout.UserID && w.Status == domain.WorkoutActive {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	clone := *workout
	clone.ID = id
	r.workouts[id] = &clone
	return id, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *fakeWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Workout, error) {
	for _, w := range r.workouts {
		if w.UserID == userID && w.Status == domain.WorkoutActive {
			clone := *w
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *workout
	r.workouts[workout.ID] = &clone
	return nil
}

type fakeExerciseRepo struct {
	exercises []domain.Exercise
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	exercise.ID = id
	r.exercises = append(r.exercises, *exercise)
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			clone := r.exercises[i]
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, ex := range r.exercises {
		if ex.UserID == userID {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	for i := range r.exercises {
		if r.exercises[i].ID == exercise.ID {
			r.exercises[i] = *exercise
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range r.exercises {
		if r.exercises[i].ID == id && r.exercises[i].UserID == userID {
			r.exercises = append(r.exercises[:i], r.exercises[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- helpers ---

func serviceUnderTest() (WorkoutService, *fakeWorkoutRepo, *fakeExerciseRepo, primitive.ObjectID) {
	workoutRepo := newFakeWorkoutRepo()
	exerciseRepo := &fakeExerciseRepo{}
	userID := primitive.NewObjectID()

	names := []string{"Жим лёжа", "Тяга блока", "Присед"}
	groups := []string{"Грудь", "Спина", "Ноги"}
	for i, name := range names {
		exerciseRepo.exercises = append(exerciseRepo.exercises, domain.Exercise{
			ID:          primitive.NewObjectID(),
			UserID:      userID,
			Name:        name,
			MuscleGroup: groups[i],
			Type:        domain.ExerciseMain,
			WeightType:  domain.WeightAdditional,
			Sets:        3,
			Reps:        10,
		})
	}

	svc := NewWorkoutService(workoutRepo, exerciseRepo, generator.New(rand.NewSource(1)))
	return svc, workoutRepo, exerciseRepo, userID
}

func startedWorkout(t *testing.T, svc WorkoutService, userID primitive.ObjectID) *domain.Workout {
	t.Helper()
	ctx := context.Background()

	plan, err := svc.GeneratePlan(ctx, userID, []generator.GroupSelection{
		{MuscleGroup: "Грудь", Count: 1},
		{MuscleGroup: "Спина", Count: 1},
	})
	require.NoError(t, err)
	require.Len(t, plan, 2)

	workout, err := svc.StartWorkout(ctx, userID, "", plan)
	require.NoError(t, err)
	return workout
}

// --- tests ---

func TestStartWorkoutDefaults(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	workout := startedWorkout(t, svc, userID)

	assert.Equal(t, domain.WorkoutActive, workout.Status)
	assert.NotEqual(t, primitive.NilObjectID, workout.ID)
	assert.Contains(t, workout.Name, "Тренировка")
	assert.False(t, workout.StartedAt.IsZero())
	assert.Nil(t, workout.CompletedAt)
}

func TestStartWorkoutRejectsSecondActive(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	startedWorkout(t, svc, userID)

	plan, err := svc.GeneratePlan(context.Background(), userID, []generator.GroupSelection{
		{MuscleGroup: "Ноги", Count: 1},
	})
	require.NoError(t, err)

	_, err = svc.StartWorkout(context.Background(), userID, "Вторая", plan)
	assert.ErrorIs(t, err, ErrActiveWorkoutExists)
}

func TestStartWorkoutRejectsEmptyPlan(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	_, err := svc.StartWorkout(context.Background(), userID, "", nil)
	assert.ErrorIs(t, err, ErrEmptyWorkout)
}

func TestGetActiveWorkoutMaterializesSets(t *testing.T) {
	svc, repo, _, userID := serviceUnderTest()
	started := startedWorkout(t, svc, userID)
	require.Empty(t, started.Exercises[0].Sets)

	active, err := svc.GetActiveWorkout(context.Background(), userID)
	require.NoError(t, err)

	for _, we := range active.Exercises {
		require.Len(t, we.Sets, we.SetsPlanned)
		for n, set := range we.Sets {
			assert.Equal(t, n+1, set.SetNumber)
			assert.Equal(t, we.Reps, set.Reps)
			assert.Equal(t, domain.DefaultRestSeconds, set.RestSeconds)
			assert.NotEmpty(t, set.ID)
			assert.Zero(t, set.Weight)
			assert.False(t, set.Completed)
		}
	}

	// Materialization is persisted, and repeat loads keep the same set IDs.
	stored, err := repo.GetByID(context.Background(), started.ID)
	require.NoError(t, err)
	require.Len(t, stored.Exercises[0].Sets, stored.Exercises[0].SetsPlanned)

	again, err := svc.GetActiveWorkout(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, active.Exercises[0].Sets[0].ID, again.Exercises[0].Sets[0].ID)
}

func TestGetActiveWorkoutNone(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	_, err := svc.GetActiveWorkout(context.Background(), userID)
	assert.ErrorIs(t, err, ErrNoActiveWorkout)
}

func TestCompleteSetRecordsWeight(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	startedWorkout(t, svc, userID)
	ctx := context.Background()

	active, err := svc.GetActiveWorkout(ctx, userID)
	require.NoError(t, err)

	updated, err := svc.CompleteSet(ctx, userID, active.ID, 1, 2, 72.5, true)
	require.NoError(t, err)

	we := updated.Exercises[0]
	assert.Equal(t, 72.5, we.Sets[1].Weight)
	assert.True(t, we.Sets[1].Completed)
	assert.False(t, we.Sets[0].Completed, "other sets untouched")
}

func TestCompleteSetUnknownTargets(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	startedWorkout(t, svc, userID)
	ctx := context.Background()

	active, err := svc.GetActiveWorkout(ctx, userID)
	require.NoError(t, err)

	_, err = svc.CompleteSet(ctx, userID, active.ID, 99, 1, 50, true)
	assert.ErrorIs(t, err, ErrWorkoutExerciseNotFound)

	_, err = svc.CompleteSet(ctx, userID, active.ID, 1, 99, 50, true)
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestCompleteExerciseWeightAchieved(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	startedWorkout(t, svc, userID)
	ctx := context.Background()

	active, err := svc.GetActiveWorkout(ctx, userID)
	require.NoError(t, err)
	planned := active.Exercises[0].SetsPlanned

	// Complete all but the last set: weight not achieved.
	for n := 1; n < planned; n++ {
		_, err = svc.CompleteSet(ctx, userID, active.ID, 1, n, 60, true)
		require.NoError(t, err)
	}
	updated, err := svc.CompleteExercise(ctx, userID, active.ID, 1)
	require.NoError(t, err)
	assert.True(t, updated.Exercises[0].Completed)
	assert.False(t, updated.Exercises[0].WeightAchieved)

	// Completing the remaining set flips the verdict.
	_, err = svc.CompleteSet(ctx, userID, active.ID, 1, planned, 60, true)
	require.NoError(t, err)
	updated, err = svc.CompleteExercise(ctx, userID, active.ID, 1)
	require.NoError(t, err)
	assert.True(t, updated.Exercises[0].WeightAchieved)
}

func TestFinishWorkoutOnce(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	started := startedWorkout(t, svc, userID)
	ctx := context.Background()

	finished, err := svc.FinishWorkout(ctx, userID, started.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutCompleted, finished.Status)
	require.NotNil(t, finished.CompletedAt)

	_, err = svc.FinishWorkout(ctx, userID, started.ID)
	assert.ErrorIs(t, err, ErrWorkoutAlreadyCompleted)

	// Finishing frees the active slot for a new workout.
	_, err = svc.GetActiveWorkout(ctx, userID)
	assert.ErrorIs(t, err, ErrNoActiveWorkout)
	startedWorkout(t, svc, userID)
}

func TestWorkoutOwnership(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	started := startedWorkout(t, svc, userID)
	stranger := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.GetWorkoutByID(ctx, stranger, started.ID)
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	_, err = svc.FinishWorkout(ctx, stranger, started.ID)
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	_, err = svc.GetWorkoutByID(ctx, userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestCompleteSetOnFinishedWorkout(t *testing.T) {
	svc, _, _, userID := serviceUnderTest()
	started := startedWorkout(t, svc, userID)
	ctx := context.Background()

	_, err := svc.GetActiveWorkout(ctx, userID)
	require.NoError(t, err)
	_, err = svc.FinishWorkout(ctx, userID, started.ID)
	require.NoError(t, err)

	_, err = svc.CompleteSet(ctx, userID, started.ID, 1, 1, 50, true)
	assert.ErrorIs(t, err, ErrWorkoutAlreadyCompleted)
}
