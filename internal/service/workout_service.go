package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/generator"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutAccessDenied     = errors.New("access denied to this workout")
	ErrNoActiveWorkout         = errors.New("no active workout")
	ErrActiveWorkoutExists     = errors.New("an active workout already exists")
	ErrWorkoutAlreadyCompleted = errors.New("workout is already completed")
	ErrEmptyWorkout            = errors.New("workout must contain at least one exercise")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")
	ErrSetNotFound             = errors.New("set not found")
)

// WorkoutService manages workout generation, execution and completion.
type WorkoutService interface {
	// GeneratePlan builds a randomized plan preview; nothing is persisted.
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, selections []generator.GroupSelection) ([]domain.WorkoutExercise, error)
	// ReplacePlanExercise swaps one entry of an unpersisted plan for a
	// random alternative of the same muscle group and type.
	ReplacePlanExercise(ctx context.Context, userID primitive.ObjectID, plan []domain.WorkoutExercise, idx int) (domain.WorkoutExercise, error)
	// StartWorkout persists a plan as the user's active workout.
	StartWorkout(ctx context.Context, userID primitive.ObjectID, name string, exercises []domain.WorkoutExercise) (*domain.Workout, error)
	GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	// GetActiveWorkout returns the active workout with sets materialized.
	GetActiveWorkout(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error)
	CompleteSet(ctx context.Context, userID, workoutID primitive.ObjectID, orderIndex, setNumber int, weight float64, completed bool) (*domain.Workout, error)
	CompleteExercise(ctx context.Context, userID, workoutID primitive.ObjectID, orderIndex int) (*domain.Workout, error)
	FinishWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	gen          *generator.Generator
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, gen *generator.Generator) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		gen:          gen,
	}
}

// GeneratePlan assembles a randomized workout from the user's library.
func (s *workoutService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, selections []generator.GroupSelection) ([]domain.WorkoutExercise, error) {
	if len(selections) == 0 {
		return nil, errors.New("at least one muscle group must be selected")
	}
	catalog, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.gen.Generate(catalog, selections), nil
}

// ReplacePlanExercise swaps plan[idx] for an unused alternative.
func (s *workoutService) ReplacePlanExercise(ctx context.Context, userID primitive.ObjectID, plan []domain.WorkoutExercise, idx int) (domain.WorkoutExercise, error) {
	catalog, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.WorkoutExercise{}, err
	}
	return s.gen.Replace(plan, idx, catalog)
}

// StartWorkout persists the plan as a new active workout. The partial
// unique index rejects a second active workout, which surfaces here as
// ErrActiveWorkoutExists.
func (s *workoutService) StartWorkout(ctx context.Context, userID primitive.ObjectID, name string, exercises []domain.WorkoutExercise) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if len(exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	now := time.Now().UTC()
	if name == "" {
		name = fmt.Sprintf("Тренировка %s", now.Format("02.01.2006"))
	}

	workout := &domain.Workout{
		UserID:    userID,
		Name:      name,
		Exercises: exercises,
		StartedAt: now,
		Status:    domain.WorkoutActive,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrActiveWorkoutExists
		}
		return nil, err
	}
	workout.ID = workoutID
	return workout, nil
}

// GetWorkouts returns the user's workout history, newest first.
func (s *workoutService) GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// GetWorkoutByID retrieves a single workout, enforcing ownership.
func (s *workoutService) GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

// GetActiveWorkout fetches the active workout and materializes any set
// lists still held as a bare planned count. Materialization is persisted
// immediately so set completion updates have stable targets.
func (s *workoutService) GetActiveWorkout(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveWorkout
		}
		return nil, err
	}

	if materializeSets(workout) {
		if err := s.workoutRepo.Update(ctx, workout); err != nil {
			return nil, err
		}
	}
	return workout, nil
}

// materializeSets expands planned set counts into concrete sets.
// Returns true if anything changed.
func materializeSets(workout *domain.Workout) bool {
	changed := false
	for i := range workout.Exercises {
		we := &workout.Exercises[i]
		if len(we.Sets) > 0 || we.SetsPlanned <= 0 {
			continue
		}
		rest := we.RestSeconds
		if rest <= 0 {
			rest = domain.DefaultRestSeconds
		}
		we.Sets = make([]domain.WorkoutSet, we.SetsPlanned)
		for n := 0; n < we.SetsPlanned; n++ {
			we.Sets[n] = domain.WorkoutSet{
				ID:          uuid.NewString(),
				SetNumber:   n + 1,
				Reps:        we.Reps,
				Weight:      0,
				Completed:   false,
				RestSeconds: rest,
			}
		}
		changed = true
	}
	return changed
}

// CompleteSet records the weight and completion flag for one set of an
// active workout, identified by the exercise's order index and the
// 1-based set number.
func (s *workoutService) CompleteSet(ctx context.Context, userID, workoutID primitive.ObjectID, orderIndex, setNumber int, weight float64, completed bool) (*domain.Workout, error) {
	workout, err := s.getMutableWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	we := findExercise(workout, orderIndex)
	if we == nil {
		return nil, ErrWorkoutExerciseNotFound
	}

	var set *domain.WorkoutSet
	for i := range we.Sets {
		if we.Sets[i].SetNumber == setNumber {
			set = &we.Sets[i]
			break
		}
	}
	if set == nil {
		return nil, ErrSetNotFound
	}

	set.Weight = weight
	set.Completed = completed

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// CompleteExercise marks a workout exercise as done. The weight counts as
// achieved only when every set was completed.
func (s *workoutService) CompleteExercise(ctx context.Context, userID, workoutID primitive.ObjectID, orderIndex int) (*domain.Workout, error) {
	workout, err := s.getMutableWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	we := findExercise(workout, orderIndex)
	if we == nil {
		return nil, ErrWorkoutExerciseNotFound
	}

	we.Completed = true
	we.WeightAchieved = we.AllSetsCompleted()

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// FinishWorkout transitions the workout active -> completed. The
// transition happens exactly once; finishing again is an error.
func (s *workoutService) FinishWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.getMutableWorkout(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workout.CompletedAt = &now
	workout.Status = domain.WorkoutCompleted

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// getMutableWorkout loads a workout for mutation: owned by the user and
// still active.
func (s *workoutService) getMutableWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.GetWorkoutByID(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if workout.Status == domain.WorkoutCompleted {
		return nil, ErrWorkoutAlreadyCompleted
	}
	return workout, nil
}

func findExercise(workout *domain.Workout, orderIndex int) *domain.WorkoutExercise {
	for i := range workout.Exercises {
		if workout.Exercises[i].OrderIndex == orderIndex {
			return &workout.Exercises[i]
		}
	}
	return nil
}
