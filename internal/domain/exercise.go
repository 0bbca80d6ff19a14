package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightType describes how external load is applied during an exercise.
type WeightType string

const (
	WeightBodyweight WeightType = "bodyweight" // own body weight only
	WeightAssisted   WeightType = "assisted"   // counterweight reduces the load
	WeightAdditional WeightType = "additional" // extra weight on top
)

// ExerciseType is the training-role classification, independent of muscle group.
type ExerciseType string

const (
	ExerciseMain      ExerciseType = "main"
	ExerciseAuxiliary ExerciseType = "auxiliary"
	ExerciseIsolation ExerciseType = "isolation"
)

// MuscleGroups is the fixed set of muscle group labels an exercise can target.
// Labels are user-facing and kept in Russian to match the app UI.
var MuscleGroups = []string{
	"Грудь",
	"Спина",
	"Плечи",
	"Бицепс",
	"Трицепс",
	"Ноги",
	"Ягодицы",
	"Пресс",
	"Предплечья",
	"Икры",
}

// ValidMuscleGroup reports whether g is one of MuscleGroups.
func ValidMuscleGroup(g string) bool {
	for _, m := range MuscleGroups {
		if m == g {
			return true
		}
	}
	return false
}

// ValidWeightType reports whether t is a known weight type.
func ValidWeightType(t WeightType) bool {
	switch t {
	case WeightBodyweight, WeightAssisted, WeightAdditional:
		return true
	}
	return false
}

// ValidExerciseType reports whether t is a known exercise type.
func ValidExerciseType(t ExerciseType) bool {
	switch t {
	case ExerciseMain, ExerciseAuxiliary, ExerciseIsolation:
		return true
	}
	return false
}

// Exercise is a user-defined movement template in the exercise library.
// Sets and Reps are defaults copied into a workout when the exercise is
// picked for one; editing an exercise never rewrites past workouts, which
// carry their own snapshot.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	MuscleGroup string             `bson:"muscleGroup" json:"muscleGroup"`
	WeightType  WeightType         `bson:"weightType" json:"weightType"`
	Technique   string             `bson:"technique" json:"technique"`
	Sets        int                `bson:"sets" json:"sets"` // default set count, > 0
	Reps        int                `bson:"reps" json:"reps"` // default rep count, > 0
	Type        ExerciseType       `bson:"exerciseType" json:"exerciseType"`

	// Optional equipment metadata. EquipmentPhotoKey is an object storage key,
	// not a URL; handlers exchange it for a presigned download URL.
	EquipmentName     string `bson:"equipmentName,omitempty" json:"equipmentName,omitempty"`
	EquipmentSettings string `bson:"equipmentSettings,omitempty" json:"equipmentSettings,omitempty"`
	EquipmentPhotoKey string `bson:"equipmentPhotoKey,omitempty" json:"equipmentPhotoKey,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
