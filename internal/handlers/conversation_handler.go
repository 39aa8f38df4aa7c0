package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	BaseHandler
	conversationService services.ConversationService
	validator           *validator.Validator
}

type StartConversationRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

func NewConversationHandler(conversationService services.ConversationService, validator *validator.Validator, logger utils.Logger) *ConversationHandler {
	return &ConversationHandler{
		BaseHandler:         NewBaseHandler(logger),
		conversationService: conversationService,
		validator:           validator,
	}
}

// GetSidebar loads the conversations of the current user in a course
func (h *ConversationHandler) GetSidebar(c *gin.Context) {
	courseID := parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sidebar, err := h.conversationService.OpenSidebar(c.Request.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sidebar.View())
}

// SearchUsers looks up course members by login or name
func (h *ConversationHandler) SearchUsers(c *gin.Context) {
	courseID := parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	outcome, err := h.conversationService.SearchUsers(c.Request.Context(), courseID, userID, c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// StartConversation opens the conversation with another user, creating it if needed
func (h *ConversationHandler) StartConversation(c *gin.Context) {
	courseID := parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.LogError(c, err, "Invalid request body for conversation")
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

	result, err := h.conversationService.StartConversation(c.Request.Context(), courseID, userID, req.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.IsNew {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"conversation": result.Conversation,
		"is_new":       result.IsNew,
		"sidebar":      result.Sidebar,
	})
}
