package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

type HintService interface {
	// GroupedHints requires the user to be a member of the exercise's course
	GroupedHints(ctx context.Context, exerciseID, userID uint) ([]reconcile.HintSolutionEntries, error)
	// InvalidateExercise drops every cached entry derived from the exercise
	InvalidateExercise(ctx context.Context, exerciseID uint) error
}

type hintService struct {
	exercises repositories.ExerciseRepository
	courses   repositories.CourseRepository
	reader    *cachedReader
	cache     cache.CacheService
	logger    *slog.Logger
}

func NewHintService(repo *repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger) HintService {
	return &hintService{
		exercises: repo.Exercises,
		courses:   repo.Courses,
		reader: &cachedReader{
			results: repo.Results,
			hints:   repo.Hints,
			cache:   cacheService,
			ttl:     cacheTTL,
			logger:  logger,
		},
		cache:  cacheService,
		logger: logger,
	}
}

func (s *hintService) GroupedHints(ctx context.Context, exerciseID, userID uint) ([]reconcile.HintSolutionEntries, error) {
	exercise, err := s.exercises.GetByID(ctx, exerciseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrExerciseNotFound, exerciseID)
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	if exercise.CourseID != nil {
		if err := requireCourseMember(ctx, s.courses, *exercise.CourseID, userID); err != nil {
			return nil, err
		}
	}

	hints, err := s.reader.ExerciseHints(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get hints for exercise %d: %w", exerciseID, err)
	}
	return reconcile.GroupByHint(hints), nil
}

func (s *hintService) InvalidateExercise(ctx context.Context, exerciseID uint) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeletePattern(ctx, cache.ExercisePattern(exerciseID)); err != nil {
		return fmt.Errorf("failed to invalidate exercise %d: %w", exerciseID, err)
	}
	s.logger.Info("Invalidated exercise cache", "exercise_id", exerciseID)
	return nil
}
