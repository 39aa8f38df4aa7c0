package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ExamHandler struct {
	BaseHandler
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		examService: examService,
	}
}

// GetOverview lists the visible exams of a course with the user's student exams
func (h *ExamHandler) GetOverview(c *gin.Context) {
	courseID := parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	overview, err := h.examService.Overview(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *ExamHandler) AssessUnsubmitted(c *gin.Context) {
	h.runTrigger(c, "Assessing unsubmitted exams", h.examService.AssessUnsubmittedParticipations)
}

func (h *ExamHandler) EvaluateQuizzes(c *gin.Context) {
	h.runTrigger(c, "Evaluating quiz exercises", h.examService.EvaluateQuizExercises)
}

// runTrigger answers 200 with the outcome alert; a failed trigger is not an HTTP error
func (h *ExamHandler) runTrigger(c *gin.Context, message string, trigger func(ctx context.Context, courseID, examID, userID uint) services.TriggerOutcome) {
	courseID := parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	examID := parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.LogRequest(c, message, "course_id", courseID, "exam_id", examID)

	c.JSON(http.StatusOK, trigger(c.Request.Context(), courseID, examID, userID))
}
