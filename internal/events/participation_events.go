package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of events this service emits
type EventType string

const (
	// Conversation events
	EventConversationCreated EventType = "conversation.created"

	// Exam assessment events
	EventUnsubmittedAssessed EventType = "exam.unsubmitted_assessed"
	EventQuizzesEvaluated    EventType = "exam.quizzes_evaluated"

	// Report events
	EventTaskStatusExported EventType = "participation.task_status_exported"
)

const (
	eventSource  = "participation-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ConversationCreatedEvent struct {
	ConversationID uint   `json:"conversation_id"`
	CourseID       uint   `json:"course_id"`
	CreatorID      uint   `json:"creator_id"`
	ParticipantIDs []uint `json:"participant_ids"`
}

type ExamAssessmentEvent struct {
	CourseID    uint `json:"course_id"`
	ExamID      uint `json:"exam_id"`
	TriggeredBy uint `json:"triggered_by"`
	Count       int  `json:"count"`
}

type TaskStatusExportedEvent struct {
	ParticipationID uint `json:"participation_id"`
	ExerciseID      uint `json:"exercise_id"`
	TaskCount       int  `json:"task_count"`
	RequestedBy     uint `json:"requested_by"`
}

func NewEvent(eventType EventType, data interface{}, now time.Time) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: now.UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewConversationCreatedEvent(data ConversationCreatedEvent, now time.Time) *Event {
	return NewEvent(EventConversationCreated, data, now)
}

func NewUnsubmittedAssessedEvent(data ExamAssessmentEvent, now time.Time) *Event {
	return NewEvent(EventUnsubmittedAssessed, data, now)
}

func NewQuizzesEvaluatedEvent(data ExamAssessmentEvent, now time.Time) *Event {
	return NewEvent(EventQuizzesEvaluated, data, now)
}

func NewTaskStatusExportedEvent(data TaskStatusExportedEvent, now time.Time) *Event {
	return NewEvent(EventTaskStatusExported, data, now)
}
