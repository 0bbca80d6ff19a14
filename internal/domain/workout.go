package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus is the lifecycle state of a workout session.
type WorkoutStatus string

const (
	WorkoutActive    WorkoutStatus = "active"
	WorkoutCompleted WorkoutStatus = "completed"
)

// DefaultRestSeconds is the rest period applied after a set unless the
// workout exercise overrides it.
const DefaultRestSeconds = 60

// Workout is one training session. At most one workout per user may be
// active at a time; the mongo repository enforces this with a partial
// unique index on (userId, status=active). A workout transitions
// active -> completed exactly once.
//
// Exercises is a first-class bson array of embedded documents, so no
// serialization round-trip can corrupt it.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	StartedAt   time.Time          `bson:"startedAt" json:"startedAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Status      WorkoutStatus      `bson:"status" json:"status"`
}

// IsActive reports whether the workout is still in progress.
func (w *Workout) IsActive() bool {
	return w.Status == WorkoutActive
}

// WorkoutExercise is one exercise instance inside a workout.
//
// Exercise holds a full snapshot taken at generation time, so later edits
// to the library entry never change what history displays. Before execution
// begins only SetsPlanned is filled; Sets is materialized lazily the first
// time the workout is loaded for execution.
type WorkoutExercise struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Exercise    Exercise           `bson:"exercise" json:"exercise"`
	SetsPlanned int                `bson:"setsPlanned" json:"setsPlanned"`
	Sets        []WorkoutSet       `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps        int                `bson:"reps" json:"reps"`
	RestSeconds int                `bson:"restSeconds" json:"restSeconds"`
	Completed   bool               `bson:"completed" json:"completed"`
	// WeightAchieved is true only if every set was marked completed.
	WeightAchieved bool `bson:"weightAchieved" json:"weightAchieved"`
	OrderIndex     int  `bson:"orderIndex" json:"orderIndex"` // 1-based position
}

// AllSetsCompleted reports whether every materialized set is done.
// False when no sets have been materialized yet.
func (we *WorkoutExercise) AllSetsCompleted() bool {
	if len(we.Sets) == 0 {
		return false
	}
	for _, s := range we.Sets {
		if !s.Completed {
			return false
		}
	}
	return true
}

// WorkoutSet is one performed block of repetitions within a workout
// exercise. Weight stays 0 until the user enters it. Sets are mutated in
// place as the user works through them and are never deleted individually.
type WorkoutSet struct {
	ID          string  `bson:"id" json:"id"`
	SetNumber   int     `bson:"setNumber" json:"setNumber"` // 1-based, sequential
	Reps        int     `bson:"reps" json:"reps"`           // target reps
	Weight      float64 `bson:"weight" json:"weight"`
	Completed   bool    `bson:"completed" json:"completed"`
	RestSeconds int     `bson:"restSeconds" json:"restSeconds"`
}
