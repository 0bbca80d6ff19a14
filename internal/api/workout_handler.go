package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/generator"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

// GroupSelectionRequest is one muscle group line in a generation request.
type GroupSelectionRequest struct {
	MuscleGroup   string   `json:"muscleGroup" binding:"required"`
	ExerciseTypes []string `json:"exerciseTypes" binding:"omitempty,dive,oneof=main auxiliary isolation"`
	Count         int      `json:"count" binding:"omitempty,min=1"`
}

type GenerateWorkoutRequest struct {
	Selections []GroupSelectionRequest `json:"selections" binding:"required,min=1,dive"`
}

// WorkoutExerciseDTO is the wire shape of one plan entry. The same shape is
// returned by generation and accepted back when starting a workout or
// requesting a replacement, so clients can hold an unpersisted plan.
type WorkoutExerciseDTO struct {
	ID             string              `json:"id"`
	ExerciseID     string              `json:"exerciseId" binding:"required"`
	Exercise       ExerciseResponse    `json:"exercise"`
	SetsPlanned    int                 `json:"setsPlanned"`
	Sets           []domain.WorkoutSet `json:"sets,omitempty"`
	Reps           int                 `json:"reps"`
	RestSeconds    int                 `json:"restSeconds"`
	Completed      bool                `json:"completed"`
	WeightAchieved bool                `json:"weightAchieved"`
	OrderIndex     int                 `json:"orderIndex"`
}

type StartWorkoutRequest struct {
	Name      string               `json:"name"`
	Exercises []WorkoutExerciseDTO `json:"exercises" binding:"required,min=1,dive"`
}

type ReplaceExerciseRequest struct {
	Plan  []WorkoutExerciseDTO `json:"plan" binding:"required,min=1,dive"`
	Index int                  `json:"index" binding:"min=0"`
}

type CompleteSetRequest struct {
	OrderIndex int     `json:"orderIndex" binding:"required,min=1"`
	SetNumber  int     `json:"setNumber" binding:"required,min=1"`
	Weight     float64 `json:"weight" binding:"min=0"`
	Completed  bool    `json:"completed"`
}

// WorkoutResponse is the DTO for returning a workout session.
type WorkoutResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Exercises   []WorkoutExerciseDTO `json:"exercises"`
	StartedAt   time.Time            `json:"startedAt"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
	Status      string               `json:"status"`
}

// --- Mappers ---

// MapWorkoutExerciseToDTO converts a domain.WorkoutExercise to its wire shape.
func MapWorkoutExerciseToDTO(we *domain.WorkoutExercise) WorkoutExerciseDTO {
	if we == nil {
		return WorkoutExerciseDTO{}
	}
	return WorkoutExerciseDTO{
		ID:             we.ID.Hex(),
		ExerciseID:     we.ExerciseID.Hex(),
		Exercise:       MapExerciseToResponse(&we.Exercise),
		SetsPlanned:    we.SetsPlanned,
		Sets:           we.Sets,
		Reps:           we.Reps,
		RestSeconds:    we.RestSeconds,
		Completed:      we.Completed,
		WeightAchieved: we.WeightAchieved,
		OrderIndex:     we.OrderIndex,
	}
}

// MapPlanToDTO converts a generated plan to its wire shape.
func MapPlanToDTO(plan []domain.WorkoutExercise) []WorkoutExerciseDTO {
	out := make([]WorkoutExerciseDTO, len(plan))
	for i := range plan {
		out[i] = MapWorkoutExerciseToDTO(&plan[i])
	}
	return out
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	return WorkoutResponse{
		ID:          w.ID.Hex(),
		Name:        w.Name,
		Exercises:   MapPlanToDTO(w.Exercises),
		StartedAt:   w.StartedAt,
		CompletedAt: w.CompletedAt,
		Status:      string(w.Status),
	}
}

// MapWorkoutsToResponse converts a slice of workouts to DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

func exerciseFromResponse(resp ExerciseResponse) domain.Exercise {
	id, _ := primitive.ObjectIDFromHex(resp.ID)
	return domain.Exercise{
		ID:                id,
		Name:              resp.Name,
		MuscleGroup:       resp.MuscleGroup,
		WeightType:        domain.WeightType(resp.WeightType),
		Technique:         resp.Technique,
		Sets:              resp.Sets,
		Reps:              resp.Reps,
		Type:              domain.ExerciseType(resp.ExerciseType),
		EquipmentName:     resp.EquipmentName,
		EquipmentSettings: resp.EquipmentSettings,
		EquipmentPhotoKey: resp.EquipmentPhotoKey,
		CreatedAt:         resp.CreatedAt,
		UpdatedAt:         resp.UpdatedAt,
	}
}

// planFromDTO converts wire-shape plan entries back to domain values.
func planFromDTO(dtos []WorkoutExerciseDTO) ([]domain.WorkoutExercise, error) {
	plan := make([]domain.WorkoutExercise, len(dtos))
	for i, dto := range dtos {
		exerciseID, err := primitive.ObjectIDFromHex(dto.ExerciseID)
		if err != nil {
			return nil, errors.New("invalid exercise ID in plan: " + dto.ExerciseID)
		}
		id, err := primitive.ObjectIDFromHex(dto.ID)
		if err != nil {
			id = primitive.NewObjectID()
		}
		plan[i] = domain.WorkoutExercise{
			ID:             id,
			ExerciseID:     exerciseID,
			Exercise:       exerciseFromResponse(dto.Exercise),
			SetsPlanned:    dto.SetsPlanned,
			Sets:           dto.Sets,
			Reps:           dto.Reps,
			RestSeconds:    dto.RestSeconds,
			Completed:      dto.Completed,
			WeightAchieved: dto.WeightAchieved,
			OrderIndex:     dto.OrderIndex,
		}
	}
	return plan, nil
}

func selectionsFromRequest(reqs []GroupSelectionRequest) []generator.GroupSelection {
	selections := make([]generator.GroupSelection, len(reqs))
	for i, r := range reqs {
		types := make([]domain.ExerciseType, len(r.ExerciseTypes))
		for j, t := range r.ExerciseTypes {
			types[j] = domain.ExerciseType(t)
		}
		selections[i] = generator.GroupSelection{
			MuscleGroup: r.MuscleGroup,
			Types:       types,
			Count:       r.Count,
		}
	}
	return selections
}

// --- Handler Methods ---

// GenerateWorkout builds a randomized plan preview. Nothing is persisted;
// the client starts the workout with a separate call.
func (h *WorkoutHandler) GenerateWorkout(c *gin.Context) {
	var req GenerateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := h.workoutService.GeneratePlan(c.Request.Context(), userID, selectionsFromRequest(req.Selections))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate workout.")
		return
	}

	c.JSON(http.StatusOK, MapPlanToDTO(plan))
}

// ReplaceExercise swaps one entry of an unpersisted plan for a random
// alternative of the same muscle group and type.
func (h *WorkoutHandler) ReplaceExercise(c *gin.Context) {
	var req ReplaceExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := planFromDTO(req.Plan)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	replacement, err := h.workoutService.ReplacePlanExercise(c.Request.Context(), userID, plan, req.Index)
	if err != nil {
		if errors.Is(err, generator.ErrNoAlternatives) {
			abortWithError(c, http.StatusNotFound, "No alternative exercise available.")
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutExerciseToDTO(&replacement))
}

// StartWorkout persists a generated plan as the user's active workout.
func (h *WorkoutHandler) StartWorkout(c *gin.Context) {
	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan, err := planFromDTO(req.Exercises)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.StartWorkout(c.Request.Context(), userID, req.Name, plan)
	if err != nil {
		if errors.Is(err, service.ErrActiveWorkoutExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrEmptyWorkout) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to start workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkouts returns the user's workout history, newest first.
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workouts, err := h.workoutService.GetWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	if workouts == nil {
		c.JSON(http.StatusOK, []WorkoutResponse{})
		return
	}

	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// GetActiveWorkout returns the active workout with sets materialized, or
// 404 when there is none.
func (h *WorkoutHandler) GetActiveWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workout, err := h.workoutService.GetActiveWorkout(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveWorkout) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve active workout.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// GetWorkoutByID returns one workout owned by the authenticated user.
func (h *WorkoutHandler) GetWorkoutByID(c *gin.Context) {
	userID, workoutID, ok := h.identify(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(c.Request.Context(), userID, workoutID)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// CompleteSet records the weight and completion flag for one set.
func (h *WorkoutHandler) CompleteSet(c *gin.Context) {
	userID, workoutID, ok := h.identify(c)
	if !ok {
		return
	}

	var req CompleteSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.CompleteSet(c.Request.Context(), userID, workoutID, req.OrderIndex, req.SetNumber, req.Weight, req.Completed)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// CompleteExercise marks a workout exercise as done.
func (h *WorkoutHandler) CompleteExercise(c *gin.Context) {
	userID, workoutID, ok := h.identify(c)
	if !ok {
		return
	}

	orderIndex, err := strconv.Atoi(c.Param("orderIndex"))
	if err != nil || orderIndex < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise order index.")
		return
	}

	workout, err := h.workoutService.CompleteExercise(c.Request.Context(), userID, workoutID, orderIndex)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// FinishWorkout completes the workout session.
func (h *WorkoutHandler) FinishWorkout(c *gin.Context) {
	userID, workoutID, ok := h.identify(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.FinishWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// --- helpers ---

func (h *WorkoutHandler) identify(c *gin.Context) (userID, workoutID primitive.ObjectID, ok bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	workoutID, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return userID, workoutID, true
}

func (h *WorkoutHandler) mapWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrWorkoutExerciseNotFound),
		errors.Is(err, service.ErrSetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrWorkoutAlreadyCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
