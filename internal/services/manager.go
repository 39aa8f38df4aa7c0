package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/events"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

// ServiceManager builds and holds every service of the application
type ServiceManager struct {
	Participation ParticipationService
	Hint          HintService
	Conversation  ConversationService
	Exam          ExamService
	Export        ExportService
}

type ManagerConfig struct {
	CacheTTL        time.Duration
	SearchMinLength int
	// Now defaults to time.Now
	Now func() time.Time
}

func NewServiceManager(repo *repositories.Repository, cacheService cache.CacheService, publisher events.EventPublisher, logger *slog.Logger, cfg ManagerConfig) *ServiceManager {
	return &ServiceManager{
		Participation: NewParticipationService(repo, cacheService, cfg.CacheTTL, logger, cfg.Now),
		Hint:          NewHintService(repo, cacheService, cfg.CacheTTL, logger),
		Conversation:  NewConversationService(repo, publisher, logger, cfg.SearchMinLength, cfg.Now),
		Exam:          NewExamService(repo, publisher, logger, cfg.Now),
		Export:        NewExportService(repo, cacheService, cfg.CacheTTL, publisher, logger, cfg.Now),
	}
}
