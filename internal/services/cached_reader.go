package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

// cachedReader reads feedback details and exercise hints through the cache.
// Cache failures are logged and fall through to the repository.
type cachedReader struct {
	results repositories.ResultRepository
	hints   repositories.ExerciseHintRepository
	cache   cache.CacheService
	ttl     time.Duration
	logger  *slog.Logger
}

func (r *cachedReader) FeedbackDetails(ctx context.Context, exerciseID, resultID uint) ([]models.Feedback, error) {
	key := cache.ResultFeedbackKey(exerciseID, resultID)

	var cached []models.Feedback
	if r.lookup(ctx, key, &cached) {
		return cached, nil
	}

	feedbacks, err := r.results.GetFeedbackDetails(ctx, resultID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrResultNotFound, resultID)
		}
		return nil, err
	}

	r.store(ctx, key, feedbacks)
	return feedbacks, nil
}

func (r *cachedReader) ExerciseHints(ctx context.Context, exerciseID uint) ([]models.ExerciseHint, error) {
	key := cache.ExerciseHintsKey(exerciseID)

	var cached []models.ExerciseHint
	if r.lookup(ctx, key, &cached) {
		return cached, nil
	}

	hints, err := r.hints.GetByExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	r.store(ctx, key, hints)
	return hints, nil
}

func (r *cachedReader) lookup(ctx context.Context, key string, dest interface{}) bool {
	if r.cache == nil {
		return false
	}
	err := r.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Cache read failed", "key", key, "error", err)
	}
	return false
}

func (r *cachedReader) store(ctx context.Context, key string, value interface{}) {
	if r.cache == nil || r.ttl <= 0 {
		return
	}
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.logger.Warn("Cache write failed", "key", key, "error", err)
	}
}
