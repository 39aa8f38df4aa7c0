package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
)

type SidebarState string

const (
	SidebarUninitialized SidebarState = "UNINITIALIZED"
	SidebarLoading       SidebarState = "LOADING"
	SidebarReady         SidebarState = "READY"
	SidebarFetchFailed   SidebarState = "FETCH_FAILED"
	SidebarSearching     SidebarState = "SEARCHING"
	SidebarResults       SidebarState = "RESULTS"
	SidebarNoResults     SidebarState = "NO_RESULTS"
	SidebarSearchFailed  SidebarState = "SEARCH_FAILED"
)

// SearchOutcome is the result of one user search. State is the state the
// search ended in before the sidebar returned to READY; a short-circuited
// search reports READY.
type SearchOutcome struct {
	State        SidebarState         `json:"state"`
	Query        string               `json:"query"`
	Users        []models.UserSummary `json:"users"`
	NoResults    bool                 `json:"no_results"`
	SearchFailed bool                 `json:"search_failed"`
}

type SidebarView struct {
	State         SidebarState           `json:"state"`
	CourseID      uint                   `json:"course_id"`
	Conversations []*models.Conversation `json:"conversations"`
	Active        *models.Conversation   `json:"active_conversation"`
	LastSearch    *SearchOutcome         `json:"last_search,omitempty"`
	Alerts        []Alert                `json:"alerts,omitempty"`
}

// ConversationSidebar is the direct-message sidebar of one user in one course.
// Searches and selections require the READY state.
type ConversationSidebar struct {
	mu      sync.Mutex
	service *conversationService

	state      SidebarState
	courseID   uint
	userID     uint
	list       *reconcile.ConversationList
	active     *models.Conversation
	lastSearch *SearchOutcome
	alerts     []Alert
}

func (sb *ConversationSidebar) State() SidebarState {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.state
}

// Load runs UNINITIALIZED -> LOADING -> READY | FETCH_FAILED
func (sb *ConversationSidebar) Load(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.state != SidebarUninitialized {
		return fmt.Errorf("%w: cannot load from %s", ErrSidebarNotReady, sb.state)
	}
	sb.state = SidebarLoading

	list, err := sb.fetch(ctx)
	if err != nil {
		sb.service.logger.Error("Failed to load conversations",
			"course_id", sb.courseID,
			"user_id", sb.userID,
			"error", err)
		sb.state = SidebarFetchFailed
		sb.alerts = append(sb.alerts, newAlert(AlertDanger,
			"conversation.couldNotBeFetched",
			"The conversations could not be fetched."))
		return nil
	}

	sb.list = list
	sb.active = list.First()
	sb.state = SidebarReady
	return nil
}

func (sb *ConversationSidebar) fetch(ctx context.Context) (*reconcile.ConversationList, error) {
	repo := sb.service.repo

	course, err := repo.Courses.GetByID(ctx, sb.courseID)
	if err != nil {
		return nil, err
	}
	self, err := repo.Users.GetByID(ctx, sb.userID)
	if err != nil {
		return nil, err
	}
	conversations, err := repo.Conversations.ListForUser(ctx, sb.courseID, sb.userID)
	if err != nil {
		return nil, err
	}
	return reconcile.NewConversationList(*self, course, conversations), nil
}

// Search runs READY -> SEARCHING -> RESULTS | NO_RESULTS | SEARCH_FAILED -> READY
func (sb *ConversationSidebar) Search(ctx context.Context, text string) (SearchOutcome, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.state != SidebarReady {
		return SearchOutcome{}, fmt.Errorf("%w: cannot search from %s", ErrSidebarNotReady, sb.state)
	}

	sb.state = SidebarSearching
	outcome := sb.service.searchUsers(ctx, sb.courseID, sb.userID, text)
	sb.lastSearch = &outcome
	sb.state = SidebarReady
	return outcome, nil
}

// Select makes the conversation with user active, creating it when there is
// none. A new conversation is persisted before it replaces the candidate; if
// persisting fails the candidate is removed again.
func (sb *ConversationSidebar) Select(ctx context.Context, user models.User) (*models.Conversation, bool, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.state != SidebarReady {
		return nil, false, fmt.Errorf("%w: cannot select from %s", ErrSidebarNotReady, sb.state)
	}
	if user.ID == sb.userID {
		return nil, false, ErrSelfConversation
	}

	candidate, isNew := sb.list.FindOrCreate(user)
	if !isNew {
		sb.active = candidate
		return candidate, false, nil
	}

	confirmed := &models.Conversation{
		CourseID:     candidate.CourseID,
		CreationDate: sb.service.now().UTC(),
		Participants: make([]models.ConversationParticipant, len(candidate.Participants)),
	}
	for i, participant := range candidate.Participants {
		confirmed.Participants[i] = models.ConversationParticipant{UserID: participant.UserID}
	}

	if err := sb.service.repo.Conversations.Create(ctx, confirmed); err != nil {
		sb.list.Remove(candidate)
		sb.alerts = append(sb.alerts, newAlert(AlertDanger,
			"conversation.couldNotBeCreated",
			"The conversation could not be created."))
		return nil, false, fmt.Errorf("failed to create conversation: %w", err)
	}

	// Keep the loaded users and course for rendering.
	confirmed.Course = candidate.Course
	for i := range confirmed.Participants {
		if i < len(candidate.Participants) {
			confirmed.Participants[i].User = candidate.Participants[i].User
		}
	}
	sb.list.Replace(candidate, confirmed)
	sb.active = confirmed

	sb.service.publishCreated(ctx, confirmed, sb.userID)
	return confirmed, true, nil
}

func (sb *ConversationSidebar) View() SidebarView {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	view := SidebarView{
		State:         sb.state,
		CourseID:      sb.courseID,
		Conversations: make([]*models.Conversation, 0),
		Active:        sb.active,
		LastSearch:    sb.lastSearch,
		Alerts:        append([]Alert(nil), sb.alerts...),
	}
	if sb.list != nil {
		view.Conversations = sb.list.Conversations()
	}
	return view
}
