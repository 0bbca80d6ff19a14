package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service and file storage dependencies.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	fileStorage     storage.FileStorage
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, fileStorage storage.FileStorage) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		fileStorage:     fileStorage,
	}
}

// --- DTOs ---

// ExerciseRequest defines the expected JSON for creating or updating an
// exercise.
type ExerciseRequest struct {
	Name              string `json:"name" binding:"required"`
	MuscleGroup       string `json:"muscleGroup" binding:"required"`
	WeightType        string `json:"weightType" binding:"required,oneof=bodyweight assisted additional"`
	Technique         string `json:"technique" binding:"required"`
	Sets              int    `json:"sets" binding:"required,min=1"`
	Reps              int    `json:"reps" binding:"required,min=1"`
	ExerciseType      string `json:"exerciseType" binding:"required,oneof=main auxiliary isolation"`
	EquipmentName     string `json:"equipmentName" binding:"omitempty"`
	EquipmentSettings string `json:"equipmentSettings" binding:"omitempty"`
	EquipmentPhotoKey string `json:"equipmentPhotoKey" binding:"omitempty"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	MuscleGroup       string    `json:"muscleGroup"`
	WeightType        string    `json:"weightType"`
	Technique         string    `json:"technique"`
	Sets              int       `json:"sets"`
	Reps              int       `json:"reps"`
	ExerciseType      string    `json:"exerciseType"`
	EquipmentName     string    `json:"equipmentName,omitempty"`
	EquipmentSettings string    `json:"equipmentSettings,omitempty"`
	EquipmentPhotoKey string    `json:"equipmentPhotoKey,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                ex.ID.Hex(),
		Name:              ex.Name,
		MuscleGroup:       ex.MuscleGroup,
		WeightType:        string(ex.WeightType),
		Technique:         ex.Technique,
		Sets:              ex.Sets,
		Reps:              ex.Reps,
		ExerciseType:      string(ex.Type),
		EquipmentName:     ex.EquipmentName,
		EquipmentSettings: ex.EquipmentSettings,
		EquipmentPhotoKey: ex.EquipmentPhotoKey,
		CreatedAt:         ex.CreatedAt,
		UpdatedAt:         ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

func exerciseInputFromRequest(req ExerciseRequest) service.ExerciseInput {
	return service.ExerciseInput{
		Name:              req.Name,
		MuscleGroup:       req.MuscleGroup,
		WeightType:        domain.WeightType(req.WeightType),
		Technique:         req.Technique,
		Sets:              req.Sets,
		Reps:              req.Reps,
		Type:              domain.ExerciseType(req.ExerciseType),
		EquipmentName:     req.EquipmentName,
		EquipmentSettings: req.EquipmentSettings,
		EquipmentPhotoKey: req.EquipmentPhotoKey,
	}
}

// --- Handler Methods ---

// CreateExercise adds a new exercise to the authenticated user's library.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, exerciseInputFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetExercises returns the authenticated user's whole library.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	exercises, err := h.exerciseService.GetExercises(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExerciseByID returns one exercise owned by the authenticated user.
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	userID, exerciseID, ok := h.identify(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), userID, exerciseID)
	if err != nil {
		h.mapExerciseError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise modifies an exercise in the user's library.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, exerciseID, ok := h.identify(c)
	if !ok {
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, exerciseID, exerciseInputFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.mapExerciseError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise removes an exercise from the user's library.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, exerciseID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, exerciseID); err != nil {
		h.mapExerciseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Equipment photo presign ---

type EquipmentPhotoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type EquipmentPhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type EquipmentPhotoDownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// RequestEquipmentPhotoUpload issues a presigned PUT URL for an equipment
// photo. The client uploads directly to storage, then saves the returned
// object key on the exercise via UpdateExercise.
func (h *ExerciseHandler) RequestEquipmentPhotoUpload(c *gin.Context) {
	userID, exerciseID, ok := h.identify(c)
	if !ok {
		return
	}

	var req EquipmentPhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		abortWithError(c, http.StatusBadRequest, "Content type must be an image type.")
		return
	}

	// Ownership check before handing out an upload slot.
	if _, err := h.exerciseService.GetExerciseByID(c.Request.Context(), userID, exerciseID); err != nil {
		h.mapExerciseError(c, err)
		return
	}

	objectKey := fmt.Sprintf("equipment/%s/%s/%s", userID.Hex(), exerciseID.Hex(), uuid.NewString())
	uploadURL, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, EquipmentPhotoUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	})
}

// GetEquipmentPhotoURL issues a presigned GET URL for the exercise's stored
// equipment photo.
func (h *ExerciseHandler) GetEquipmentPhotoURL(c *gin.Context) {
	userID, exerciseID, ok := h.identify(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), userID, exerciseID)
	if err != nil {
		h.mapExerciseError(c, err)
		return
	}
	if exercise.EquipmentPhotoKey == "" {
		abortWithError(c, http.StatusNotFound, "Exercise has no equipment photo.")
		return
	}

	downloadURL, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), exercise.EquipmentPhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		return
	}

	c.JSON(http.StatusOK, EquipmentPhotoDownloadResponse{DownloadURL: downloadURL})
}

// --- helpers ---

// identify extracts the user ID from the token and the exercise ID from the
// path. Writes the error response itself and reports success via ok.
func (h *ExerciseHandler) identify(c *gin.Context) (userID, exerciseID primitive.ObjectID, ok bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	exerciseID, err = primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return userID, exerciseID, true
}

func (h *ExerciseHandler) mapExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
