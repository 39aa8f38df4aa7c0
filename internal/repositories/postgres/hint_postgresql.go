package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"gorm.io/gorm"
)

type ExercisePostgreSQL struct {
	db *gorm.DB
}

func NewExercisePostgreSQL(db *gorm.DB) repositories.ExerciseRepository {
	return &ExercisePostgreSQL{db: db}
}

func (e ExercisePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := e.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get exercise %d: %w", id, err)
	}
	return &exercise, nil
}

type ExerciseHintPostgreSQL struct {
	db *gorm.DB
}

func NewExerciseHintPostgreSQL(db *gorm.DB) repositories.ExerciseHintRepository {
	return &ExerciseHintPostgreSQL{db: db}
}

// GetByExercise keeps the stored entry order; sorting belongs to the caller
func (h ExerciseHintPostgreSQL) GetByExercise(ctx context.Context, exerciseID uint) ([]models.ExerciseHint, error) {
	hints := make([]models.ExerciseHint, 0)
	if err := h.db.WithContext(ctx).
		Where("exercise_id = ?", exerciseID).
		Preload("SolutionEntries").
		Order("id ASC").
		Find(&hints).Error; err != nil {
		return nil, fmt.Errorf("failed to get hints for exercise %d: %w", exerciseID, err)
	}
	return hints, nil
}
