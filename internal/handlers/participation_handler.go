package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/internal/validator"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ParticipationHandler struct {
	BaseHandler
	participationService services.ParticipationService
	exportService        services.ExportService
	validator            *validator.Validator
}

// TaskStatusRequest lists the test names of one task
type TaskStatusRequest struct {
	Tests []string `json:"tests" validate:"required,min=1,dive,test_name"`
}

func NewParticipationHandler(
	participationService services.ParticipationService,
	exportService services.ExportService,
	validator *validator.Validator,
	logger utils.Logger,
) *ParticipationHandler {
	return &ParticipationHandler{
		BaseHandler:          NewBaseHandler(logger),
		participationService: participationService,
		exportService:        exportService,
		validator:            validator,
	}
}

// GetCodeEditor returns the code editor view of a participation.
// A participation that could not be fetched still answers 200 with the flag set.
func (h *ParticipationHandler) GetCodeEditor(c *gin.Context) {
	participationID := parseIDParam(c, "id")
	if participationID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Loading code editor", "participation_id", participationID)

	view, err := h.participationService.LoadCodeEditor(c.Request.Context(), participationID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// CloseCodeEditor drops any in-flight load of the participation
func (h *ParticipationHandler) CloseCodeEditor(c *gin.Context) {
	participationID := parseIDParam(c, "id")
	if participationID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	h.participationService.Dispose(participationID, userID)
	c.Status(http.StatusNoContent)
}

// GetTaskStatus partitions the latest result's feedback by the requested tests
func (h *ParticipationHandler) GetTaskStatus(c *gin.Context) {
	participationID := parseIDParam(c, "id")
	if participationID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.LogError(c, err, "Invalid request body for task status")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	status, err := h.participationService.TestStatus(c.Request.Context(), participationID, userID, req.Tests)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ExportTasks sends the task status report of a participation as xlsx
func (h *ParticipationHandler) ExportTasks(c *gin.Context) {
	participationID := parseIDParam(c, "id")
	if participationID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Exporting task status", "participation_id", participationID)

	file, err := h.exportService.ExportTaskStatusReport(c.Request.Context(), participationID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, xlsxContentType, file.Content)
}
