package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrValidationFailed     = errors.New("exercise validation failed")
)

// ExerciseInput carries the user-editable fields of an exercise.
type ExerciseInput struct {
	Name              string
	MuscleGroup       string
	WeightType        domain.WeightType
	Technique         string
	Sets              int
	Reps              int
	Type              domain.ExerciseType
	EquipmentName     string
	EquipmentSettings string
	EquipmentPhotoKey string
}

// ExerciseService manages the per-user exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// validateInput enforces the mandatory fields and positive set/rep counts.
func validateInput(input ExerciseInput) error {
	if input.Name == "" || input.Technique == "" {
		return ErrValidationFailed
	}
	if !domain.ValidMuscleGroup(input.MuscleGroup) {
		return ErrValidationFailed
	}
	if !domain.ValidWeightType(input.WeightType) || !domain.ValidExerciseType(input.Type) {
		return ErrValidationFailed
	}
	if input.Sets <= 0 || input.Reps <= 0 {
		return ErrValidationFailed
	}
	return nil
}

func applyInput(ex *domain.Exercise, input ExerciseInput) {
	ex.Name = input.Name
	ex.MuscleGroup = input.MuscleGroup
	ex.WeightType = input.WeightType
	ex.Technique = input.Technique
	ex.Sets = input.Sets
	ex.Reps = input.Reps
	ex.Type = input.Type
	ex.EquipmentName = input.EquipmentName
	ex.EquipmentSettings = input.EquipmentSettings
	ex.EquipmentPhotoKey = input.EquipmentPhotoKey
}

// CreateExercise adds a new exercise to the user's library.
func (s *exerciseService) CreateExercise(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{UserID: userID}
	applyInput(exercise, input)

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise, enforcing ownership.
func (s *exerciseService) GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.UserID != userID {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}

// GetExercises retrieves the user's whole library.
func (s *exerciseService) GetExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.exerciseRepo.GetByUserID(ctx, userID)
}

// UpdateExercise modifies an existing exercise, enforcing ownership.
// Past workouts keep their snapshot, so history display is unaffected.
func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrExerciseAccessDenied
	}

	applyInput(existing, input)

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes an exercise from the library. History referencing
// it survives via snapshots but drops out of progress aggregation.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return errors.New("user ID and exercise ID are required")
	}

	// The repository filter combines id and owner, so this cannot delete
	// another user's exercise.
	err := s.exerciseRepo.Delete(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
