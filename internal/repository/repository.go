package repository

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError distinguishes repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines access to user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines access to the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	// Delete removes an exercise only if it belongs to the given user.
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// WorkoutRepository defines access to workout sessions.
type WorkoutRepository interface {
	// Create inserts a workout. Inserting a second active workout for the
	// same user fails with ErrDuplicate (partial unique index).
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByUserID returns the user's workouts ordered by start time descending.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	// GetActiveByUserID returns the single active workout, or ErrNotFound.
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error)
	// Update persists the exercises array, status and completion timestamp.
	Update(ctx context.Context, workout *domain.Workout) error
}
