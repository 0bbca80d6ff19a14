package api

import (
	"alcyxob/workout-tracker/internal/progress"
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress returns ranked per-exercise summaries for the trailing
// period. Query parameters: period (days, default 30) and muscleGroup
// ("all" or a specific group). A malformed period falls back to the
// default rather than erroring.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	period := c.DefaultQuery("period", "")
	muscleGroup := c.DefaultQuery("muscleGroup", progress.GroupAll)

	summaries, err := h.progressService.GetProgress(c.Request.Context(), userID, period, muscleGroup)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute progress.")
		return
	}
	if summaries == nil {
		c.JSON(http.StatusOK, []progress.ExerciseProgress{})
		return
	}

	// Engine output types carry json tags, so they go out as-is.
	c.JSON(http.StatusOK, summaries)
}

// GetStats returns headline statistics for the trailing period.
func (h *ProgressHandler) GetStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	stats, err := h.progressService.GetStats(c.Request.Context(), userID, c.DefaultQuery("period", ""))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute statistics.")
		return
	}

	c.JSON(http.StatusOK, stats)
}
