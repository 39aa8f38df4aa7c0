package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"gorm.io/gorm"
)

type ParticipationPostgreSQL struct {
	db *gorm.DB
}

func NewParticipationPostgreSQL(db *gorm.DB) repositories.ParticipationRepository {
	return &ParticipationPostgreSQL{db: db}
}

func (p ParticipationPostgreSQL) GetWithLatestResult(ctx context.Context, id uint) (*models.Participation, error) {
	var participation models.Participation
	if err := p.db.WithContext(ctx).
		Preload("Exercise").
		Preload("Results", func(db *gorm.DB) *gorm.DB {
			return db.Order("completion_date DESC NULLS LAST").Order("id DESC")
		}).
		Preload("Results.Submission").
		Preload("Results.Feedbacks", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&participation, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get participation %d: %w", id, err)
	}
	return &participation, nil
}

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r ResultPostgreSQL) GetFeedbackDetails(ctx context.Context, resultID uint) ([]models.Feedback, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).Select("id").First(&result, resultID).Error; err != nil {
		return nil, fmt.Errorf("failed to get result %d: %w", resultID, err)
	}

	feedbacks := make([]models.Feedback, 0)
	if err := r.db.WithContext(ctx).
		Where("result_id = ?", resultID).
		Order("id ASC").
		Find(&feedbacks).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback for result %d: %w", resultID, err)
	}
	return feedbacks, nil
}
