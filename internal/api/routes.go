package api

import (
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	progressService service.ProgressService,
	fileStorage storage.FileStorage,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService, fileStorage)
	workoutHandler := NewWorkoutHandler(workoutService)
	progressHandler := NewProgressHandler(progressService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExerciseByID)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)

			exerciseGroup.POST("/:id/equipment-photo", exerciseHandler.RequestEquipmentPhotoUpload)
			exerciseGroup.GET("/:id/equipment-photo", exerciseHandler.GetEquipmentPhotoURL)
		}

		workoutGroup := protected.Group("/workouts")
		{
			// Plan preview endpoints; nothing persisted until POST /workouts.
			workoutGroup.POST("/generate", workoutHandler.GenerateWorkout)
			workoutGroup.POST("/generate/replace", workoutHandler.ReplaceExercise)

			workoutGroup.POST("", workoutHandler.StartWorkout)
			workoutGroup.GET("", workoutHandler.GetWorkouts)
			workoutGroup.GET("/active", workoutHandler.GetActiveWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkoutByID)
			workoutGroup.POST("/:id/sets", workoutHandler.CompleteSet)
			workoutGroup.POST("/:id/exercises/:orderIndex/complete", workoutHandler.CompleteExercise)
			workoutGroup.POST("/:id/finish", workoutHandler.FinishWorkout)
		}

		progressGroup := protected.Group("/progress")
		{
			progressGroup.GET("", progressHandler.GetProgress)
			progressGroup.GET("/stats", progressHandler.GetStats)
		}
	}
}
