package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	participationHandler *ParticipationHandler
	exerciseHandler      *ExerciseHandler
	conversationHandler  *ConversationHandler
	examHandler          *ExamHandler
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		participationHandler: NewParticipationHandler(serviceManager.Participation, serviceManager.Export, validator, logger),
		exerciseHandler:      NewExerciseHandler(serviceManager.Hint, logger),
		conversationHandler:  NewConversationHandler(serviceManager.Conversation, validator, logger),
		examHandler:          NewExamHandler(serviceManager.Exam, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1", RequireUser())
	{
		participations := v1.Group("/participations")
		{
			participations.GET("/:id/code-editor", hm.participationHandler.GetCodeEditor)
			participations.DELETE("/:id/code-editor", hm.participationHandler.CloseCodeEditor)
			participations.POST("/:id/task-status", hm.participationHandler.GetTaskStatus)
			participations.GET("/:id/tasks/export", hm.participationHandler.ExportTasks)
		}

		exercises := v1.Group("/exercises")
		{
			exercises.GET("/:id/hints", hm.exerciseHandler.GetHints)
		}

		courses := v1.Group("/courses/:course_id")
		{
			// Direct-message sidebar
			courses.GET("/conversations", hm.conversationHandler.GetSidebar)
			courses.POST("/conversations", hm.conversationHandler.StartConversation)
			courses.GET("/users/search", hm.conversationHandler.SearchUsers)

			// Exams
			courses.GET("/exams", hm.examHandler.GetOverview)
			courses.POST("/exams/:exam_id/assess-unsubmitted", hm.examHandler.AssessUnsubmitted)
			courses.POST("/exams/:exam_id/evaluate-quizzes", hm.examHandler.EvaluateQuizzes)
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "participation-service",
	})
}
