package service

import (
	"alcyxob/workout-tracker/internal/progress"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressService produces per-exercise summaries and period statistics
// from stored history. The heavy lifting happens in the pure progress
// package; this service only fetches the snapshot and applies the
// caller's period and muscle-group parameters.
type ProgressService interface {
	// GetProgress returns ranked summaries for the trailing period,
	// optionally restricted to one muscle group ("all" or empty means no
	// restriction). Malformed periods fall back to the default.
	GetProgress(ctx context.Context, userID primitive.ObjectID, period, muscleGroup string) ([]progress.ExerciseProgress, error)
	// GetStats returns headline statistics for the trailing period.
	GetStats(ctx context.Context, userID primitive.ObjectID, period string) (progress.OverviewStats, error)
}

type progressService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	now          func() time.Time
}

// NewProgressService creates a new ProgressService.
func NewProgressService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) ProgressService {
	return &progressService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		now:          time.Now,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID primitive.ObjectID, period, muscleGroup string) ([]progress.ExerciseProgress, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.exerciseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	periodDays := progress.ParsePeriod(period)
	summaries := progress.Analyze(workouts, catalog, s.now(), periodDays)
	summaries = progress.FilterByMuscleGroup(summaries, muscleGroup)
	return progress.Rank(summaries), nil
}

func (s *progressService) GetStats(ctx context.Context, userID primitive.ObjectID, period string) (progress.OverviewStats, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return progress.OverviewStats{}, err
	}
	return progress.Overview(workouts, s.now(), progress.ParsePeriod(period)), nil
}
