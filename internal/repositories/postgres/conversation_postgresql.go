package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"gorm.io/gorm"
)

type ConversationPostgreSQL struct {
	db *gorm.DB
}

func NewConversationPostgreSQL(db *gorm.DB) repositories.ConversationRepository {
	return &ConversationPostgreSQL{db: db}
}

// conversationRecencyOrder puts conversations without messages at their creation time
const conversationRecencyOrder = "COALESCE(last_message_date, creation_date) DESC, id DESC"

// conversationsOfUser selects the user's conversations in a course, most recent first
func conversationsOfUser(db *gorm.DB, courseID, userID uint) *gorm.DB {
	return db.
		Where("course_id = ?", courseID).
		Where("id IN (?)", db.Session(&gorm.Session{NewDB: true}).
			Model(&models.ConversationParticipant{}).
			Select("conversation_id").
			Where("user_id = ?", userID)).
		Order(conversationRecencyOrder)
}

func (c ConversationPostgreSQL) ListForUser(ctx context.Context, courseID, userID uint) ([]*models.Conversation, error) {
	conversations := make([]*models.Conversation, 0)
	if err := conversationsOfUser(c.db.WithContext(ctx), courseID, userID).
		Preload("Course").
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Participants.User").
		Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversations for user %d: %w", userID, err)
	}
	return conversations, nil
}

func (c ConversationPostgreSQL) Create(ctx context.Context, conversation *models.Conversation) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participants := conversation.Participants
		conversation.Participants = nil

		if err := tx.Omit("Course").Create(conversation).Error; err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}

		for i := range participants {
			participants[i].ConversationID = conversation.ID
			if err := tx.Omit("User").Create(&participants[i]).Error; err != nil {
				return fmt.Errorf("failed to add participant %d: %w", participants[i].UserID, err)
			}
		}
		conversation.Participants = participants
		return nil
	})
}
