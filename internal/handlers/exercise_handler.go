package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ExerciseHandler struct {
	BaseHandler
	hintService services.HintService
}

func NewExerciseHandler(hintService services.HintService, logger utils.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		BaseHandler: NewBaseHandler(logger),
		hintService: hintService,
	}
}

// GetHints returns the exercise hints with their solution entries
func (h *ExerciseHandler) GetHints(c *gin.Context) {
	exerciseID := parseIDParam(c, "id")
	if exerciseID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	hints, err := h.hintService.GroupedHints(c.Request.Context(), exerciseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exercise_id": exerciseID,
		"hints":       hints,
	})
}
