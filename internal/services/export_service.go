package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/events"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	taskSheetName    = "Tasks"
	summarySheetName = "Summary"
	dateLayout       = "2006-01-02 15:04:05"
)

// ExportService renders participation reports as spreadsheets
type ExportService interface {
	ExportTaskStatusReport(ctx context.Context, participationID, userID uint) (*ExportFile, error)
}

type ExportFile struct {
	Filename string
	Content  []byte
}

type exportService struct {
	participations repositories.ParticipationRepository
	access         participationAccess
	reader         *cachedReader
	publisher      events.EventPublisher
	logger         *slog.Logger
	now            func() time.Time
}

func NewExportService(repo *repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, publisher events.EventPublisher, logger *slog.Logger, now func() time.Time) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{
		participations: repo.Participations,
		access:         participationAccess{courses: repo.Courses},
		reader: &cachedReader{
			results: repo.Results,
			hints:   repo.Hints,
			cache:   cacheService,
			ttl:     cacheTTL,
			logger:  logger,
		},
		publisher: publisher,
		logger:    logger,
		now:       now,
	}
}

func (s *exportService) ExportTaskStatusReport(ctx context.Context, participationID, userID uint) (*ExportFile, error) {
	participation, err := s.participations.GetWithLatestResult(ctx, participationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrParticipationNotFound, participationID)
		}
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	if participation.Exercise == nil {
		return nil, fmt.Errorf("%w: participation %d", ErrExerciseNotFound, participationID)
	}

	if err := s.access.check(ctx, participation, userID, "export"); err != nil {
		return nil, err
	}

	result := participation.LatestResult()
	if result != nil {
		if feedbacks, err := s.reader.FeedbackDetails(ctx, participation.ExerciseID, result.ID); err == nil {
			result.Feedbacks = feedbacks
		} else {
			s.logger.Warn("Exporting with embedded feedback", "result_id", result.ID, "error", err)
		}
	}

	now := s.now()
	if !reconcile.ManualAssessmentVisible(result, reconcile.DueDatePassed(participation.Exercise, now)) {
		withholdManualFeedback(result)
	}

	statuses := reconcile.TaskStatuses(reconcile.ParseTasks(participation.Exercise.ProblemStatement), result)
	content, err := renderTaskStatusWorkbook(participation, result, statuses, now)
	if err != nil {
		return nil, err
	}

	s.publishExported(ctx, participation, len(statuses), userID, now)

	return &ExportFile{
		Filename: fmt.Sprintf("participation-%d-tasks.xlsx", participation.ID),
		Content:  content,
	}, nil
}

func (s *exportService) publishExported(ctx context.Context, participation *models.Participation, taskCount int, userID uint, now time.Time) {
	if s.publisher == nil {
		return
	}
	event := events.NewTaskStatusExportedEvent(events.TaskStatusExportedEvent{
		ParticipationID: participation.ID,
		ExerciseID:      participation.ExerciseID,
		TaskCount:       taskCount,
		RequestedBy:     userID,
	}, now)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish export event", "participation_id", participation.ID, "error", err)
	}
}

func renderTaskStatusWorkbook(participation *models.Participation, result *models.Result, statuses []reconcile.TaskStatus, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(taskSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []interface{}{"Task", "Tests", "State", "Successful", "Failed", "Not Executed", "Has Message"}
	if err := f.SetSheetRow(taskSheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	for i, status := range statuses {
		row := []interface{}{
			status.Name,
			strings.Join(status.Tests, ", "),
			string(status.Status.State),
			strings.Join(status.Status.Successful, ", "),
			strings.Join(status.Status.Failed, ", "),
			strings.Join(status.Status.NotExecuted, ", "),
			status.Status.HasMessage,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(taskSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write task row: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	for i, row := range summaryRows(participation, result, now) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryRows(participation *models.Participation, result *models.Result, now time.Time) [][]interface{} {
	exercise := participation.Exercise

	dueDate := ""
	if exercise.DueDate != nil {
		dueDate = exercise.DueDate.Format(dateLayout)
	}
	completed := ""
	score := ""
	if result != nil {
		score = fmt.Sprintf("%.2f", result.Score)
		if result.CompletionDate != nil {
			completed = result.CompletionDate.Format(dateLayout)
		}
	}

	return [][]interface{}{
		{"Participation", participation.ID},
		{"Exercise", exercise.Title},
		{"Categories", strings.Join(exercise.CategoryNames(), ", ")},
		{"Due Date", dueDate},
		{"Repository Locked", reconcile.IsLocked(exercise, now)},
		{"Latest Result", completed},
		{"Score", score},
		{"Generated At", now.UTC().Format(dateLayout)},
	}
}
