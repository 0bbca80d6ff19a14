package service

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validInput() ExerciseInput {
	return ExerciseInput{
		Name:        "Жим лёжа",
		MuscleGroup: "Грудь",
		WeightType:  domain.WeightAdditional,
		Technique:   "Лопатки сведены, ступни на полу",
		Sets:        4,
		Reps:        8,
		Type:        domain.ExerciseMain,
	}
}

func TestCreateExercise(t *testing.T) {
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo)
	userID := primitive.NewObjectID()

	created, err := svc.CreateExercise(context.Background(), userID, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "Жим лёжа", created.Name)
}

func TestCreateExerciseValidation(t *testing.T) {
	svc := NewExerciseService(&fakeExerciseRepo{})
	userID := primitive.NewObjectID()

	cases := map[string]func(*ExerciseInput){
		"empty name":           func(in *ExerciseInput) { in.Name = "" },
		"empty technique":      func(in *ExerciseInput) { in.Technique = "" },
		"unknown muscle group": func(in *ExerciseInput) { in.MuscleGroup = "Chest" },
		"bad weight type":      func(in *ExerciseInput) { in.WeightType = "heavy" },
		"bad exercise type":    func(in *ExerciseInput) { in.Type = "cardio" },
		"zero sets":            func(in *ExerciseInput) { in.Sets = 0 },
		"negative reps":        func(in *ExerciseInput) { in.Reps = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			mutate(&input)
			_, err := svc.CreateExercise(context.Background(), userID, input)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestExerciseOwnership(t *testing.T) {
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateExercise(ctx, owner, validInput())
	require.NoError(t, err)

	_, err = svc.GetExerciseByID(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	_, err = svc.UpdateExercise(ctx, stranger, created.ID, validInput())
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	err = svc.DeleteExercise(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound, "delete filters by owner, so it looks absent")

	// The owner still sees it.
	got, err := svc.GetExerciseByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateExercise(t *testing.T) {
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateExercise(ctx, userID, validInput())
	require.NoError(t, err)

	input := validInput()
	input.Name = "Жим гантелей"
	input.EquipmentName = "Гантели 2x24кг"
	updated, err := svc.UpdateExercise(ctx, userID, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Жим гантелей", updated.Name)
	assert.Equal(t, "Гантели 2x24кг", updated.EquipmentName)

	_, err = svc.UpdateExercise(ctx, userID, primitive.NewObjectID(), input)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestDeleteExercise(t *testing.T) {
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo)
	userID := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.CreateExercise(ctx, userID, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExercise(ctx, userID, created.ID))

	_, err = svc.GetExerciseByID(ctx, userID, created.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	err = svc.DeleteExercise(ctx, userID, created.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
