package reconcile

import (
	"strings"

	"github.com/SAP-F-2025/participation-service/internal/models"
)

// DefaultSearchMinLength is the shortest user search text that reaches the data store.
const DefaultSearchMinLength = 3

// SearchTooShort reports whether a user search must short-circuit to an empty result.
func SearchTooShort(text string, minLength int) bool {
	return len([]rune(strings.TrimSpace(text))) < minLength
}

// ConversationList holds the direct-message conversations of one session
// user within a course, most recently active first. It is not safe for
// concurrent use; one list belongs to one view.
type ConversationList struct {
	self          models.User
	course        *models.Course
	conversations []*models.Conversation
}

// NewConversationList wraps conversations, which the caller delivers in
// most-recent-first order.
func NewConversationList(self models.User, course *models.Course, conversations []*models.Conversation) *ConversationList {
	list := make([]*models.Conversation, len(conversations))
	copy(list, conversations)
	return &ConversationList{
		self:          self,
		course:        course,
		conversations: list,
	}
}

// Conversations returns the current order. The slice is a copy.
func (l *ConversationList) Conversations() []*models.Conversation {
	out := make([]*models.Conversation, len(l.conversations))
	copy(out, l.conversations)
	return out
}

func (l *ConversationList) Len() int {
	return len(l.conversations)
}

// First returns the most recently active conversation, or nil.
func (l *ConversationList) First() *models.Conversation {
	if len(l.conversations) == 0 {
		return nil
	}
	return l.conversations[0]
}

// Find returns the first conversation whose participants, apart from the
// session user, are exactly user.
func (l *ConversationList) Find(user models.User) *models.Conversation {
	for _, conversation := range l.conversations {
		if l.isDirectConversationWith(conversation, user.ID) {
			return conversation
		}
	}
	return nil
}

// FindOrCreate returns the conversation with user. When there is none, an
// unsaved conversation with both users is prepended and isNew is true.
func (l *ConversationList) FindOrCreate(user models.User) (*models.Conversation, bool) {
	if conversation := l.Find(user); conversation != nil {
		return conversation, false
	}

	conversation := l.newConversationWith(user)
	l.conversations = append([]*models.Conversation{conversation}, l.conversations...)
	return conversation, true
}

// Replace swaps candidate for the confirmed record, keeping its position.
func (l *ConversationList) Replace(candidate, confirmed *models.Conversation) bool {
	for i, conversation := range l.conversations {
		if conversation == candidate {
			l.conversations[i] = confirmed
			return true
		}
	}
	return false
}

// Remove drops candidate, e.g. after the data store rejected it.
func (l *ConversationList) Remove(candidate *models.Conversation) bool {
	for i, conversation := range l.conversations {
		if conversation == candidate {
			l.conversations = append(l.conversations[:i], l.conversations[i+1:]...)
			return true
		}
	}
	return false
}

func (l *ConversationList) newConversationWith(user models.User) *models.Conversation {
	other := user
	self := l.self
	conversation := &models.Conversation{
		Course: l.course,
		Participants: []models.ConversationParticipant{
			{UserID: other.ID, User: &other},
			{UserID: self.ID, User: &self},
		},
	}
	if l.course != nil {
		conversation.CourseID = l.course.ID
	}
	return conversation
}

func (l *ConversationList) isDirectConversationWith(conversation *models.Conversation, userID uint) bool {
	if conversation == nil {
		return false
	}
	matched := false
	for _, participant := range conversation.Participants {
		id := participantUserID(participant)
		if id == l.self.ID {
			continue
		}
		if id != userID || matched {
			return false
		}
		matched = true
	}
	return matched
}

func participantUserID(participant models.ConversationParticipant) uint {
	if participant.UserID == 0 && participant.User != nil {
		return participant.User.ID
	}
	return participant.UserID
}
