package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/events"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

const searchResultLimit = 25

type ConversationService interface {
	// OpenSidebar loads the sidebar of a course member. Fetch failures leave
	// the sidebar in SidebarFetchFailed instead of returning an error.
	OpenSidebar(ctx context.Context, courseID, userID uint) (*ConversationSidebar, error)
	SearchUsers(ctx context.Context, courseID, userID uint, text string) (*SearchOutcome, error)
	StartConversation(ctx context.Context, courseID, userID, otherUserID uint) (*StartConversationResult, error)
}

type StartConversationResult struct {
	Conversation *models.Conversation `json:"conversation"`
	IsNew        bool                 `json:"is_new"`
	Sidebar      SidebarView          `json:"sidebar"`
}

type conversationService struct {
	repo            *repositories.Repository
	publisher       events.EventPublisher
	logger          *slog.Logger
	searchMinLength int
	now             func() time.Time
}

func NewConversationService(repo *repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, searchMinLength int, now func() time.Time) ConversationService {
	if searchMinLength <= 0 {
		searchMinLength = reconcile.DefaultSearchMinLength
	}
	if now == nil {
		now = time.Now
	}
	return &conversationService{
		repo:            repo,
		publisher:       publisher,
		logger:          logger,
		searchMinLength: searchMinLength,
		now:             now,
	}
}

func (s *conversationService) OpenSidebar(ctx context.Context, courseID, userID uint) (*ConversationSidebar, error) {
	if err := s.requireMember(ctx, courseID, userID); err != nil {
		return nil, err
	}

	sidebar := s.newSidebar(courseID, userID)
	if err := sidebar.Load(ctx); err != nil {
		return nil, err
	}
	return sidebar, nil
}

func (s *conversationService) SearchUsers(ctx context.Context, courseID, userID uint, text string) (*SearchOutcome, error) {
	if err := s.requireMember(ctx, courseID, userID); err != nil {
		return nil, err
	}
	outcome := s.searchUsers(ctx, courseID, userID, text)
	return &outcome, nil
}

func (s *conversationService) StartConversation(ctx context.Context, courseID, userID, otherUserID uint) (*StartConversationResult, error) {
	if userID == otherUserID {
		return nil, ErrSelfConversation
	}

	sidebar, err := s.OpenSidebar(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	other, err := s.repo.Users.GetByID(ctx, otherUserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, otherUserID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.requireMember(ctx, courseID, otherUserID); err != nil {
		return nil, err
	}

	conversation, isNew, err := sidebar.Select(ctx, *other)
	if err != nil {
		return nil, err
	}
	return &StartConversationResult{
		Conversation: conversation,
		IsNew:        isNew,
		Sidebar:      sidebar.View(),
	}, nil
}

func (s *conversationService) requireMember(ctx context.Context, courseID, userID uint) error {
	return requireCourseMember(ctx, s.repo.Courses, courseID, userID)
}

// searchUsers runs a user search. Text shorter than the minimum length never
// reaches the repository.
func (s *conversationService) searchUsers(ctx context.Context, courseID, selfID uint, text string) SearchOutcome {
	text = strings.TrimSpace(text)
	if reconcile.SearchTooShort(text, s.searchMinLength) {
		return SearchOutcome{State: SidebarReady, Query: text, Users: make([]models.UserSummary, 0)}
	}

	found, err := s.repo.Users.SearchInCourse(ctx, courseID, text, searchResultLimit)
	if err != nil {
		s.logger.Error("User search failed", "course_id", courseID, "error", err)
		return SearchOutcome{
			State:        SidebarSearchFailed,
			Query:        text,
			Users:        make([]models.UserSummary, 0),
			SearchFailed: true,
		}
	}

	users := make([]models.UserSummary, 0, len(found))
	for _, user := range found {
		if user.ID != selfID {
			users = append(users, models.UserSummary{ID: user.ID, Login: user.Login})
		}
	}
	if len(users) == 0 {
		return SearchOutcome{State: SidebarNoResults, Query: text, Users: users, NoResults: true}
	}
	return SearchOutcome{State: SidebarResults, Query: text, Users: users}
}

func (s *conversationService) newSidebar(courseID, userID uint) *ConversationSidebar {
	return &ConversationSidebar{
		service:  s,
		state:    SidebarUninitialized,
		courseID: courseID,
		userID:   userID,
	}
}

func (s *conversationService) publishCreated(ctx context.Context, conversation *models.Conversation, creatorID uint) {
	if s.publisher == nil {
		return
	}
	participantIDs := make([]uint, 0, len(conversation.Participants))
	for _, participant := range conversation.Participants {
		participantIDs = append(participantIDs, participant.UserID)
	}
	event := events.NewConversationCreatedEvent(events.ConversationCreatedEvent{
		ConversationID: conversation.ID,
		CourseID:       conversation.CourseID,
		CreatorID:      creatorID,
		ParticipantIDs: participantIDs,
	}, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish conversation event", "conversation_id", conversation.ID, "error", err)
	}
}
