package models

import "time"

// Conversation is a direct-message thread. ID is zero until the data store
// has confirmed a newly created conversation.
type Conversation struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	CourseID        uint       `json:"course_id" gorm:"not null;index"`
	CreationDate    time.Time  `json:"creation_date"`
	LastMessageDate *time.Time `json:"last_message_date" gorm:"index"`

	// Relations
	Course       *Course                   `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Participants []ConversationParticipant `json:"conversation_participants" gorm:"foreignKey:ConversationID"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationParticipant struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ConversationID uint       `json:"conversation_id" gorm:"not null;index"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	LastRead       *time.Time `json:"last_read"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}
