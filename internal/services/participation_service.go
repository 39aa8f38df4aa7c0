package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

// ParticipationService derives the code editor view of a participation
type ParticipationService interface {
	// LoadCodeEditor never fails on fetch errors; they surface as view flags
	// and alerts. It fails when the user may not read the participation or
	// when a newer load by the same user superseded this one.
	LoadCodeEditor(ctx context.Context, participationID, userID uint) (*CodeEditorView, error)
	TestStatus(ctx context.Context, participationID, userID uint, testNames []string) (*reconcile.TestStatus, error)
	// Dispose cancels the user's in-flight load of the participation
	Dispose(participationID, userID uint)
}

type CodeEditorView struct {
	Participation                  *models.Participation           `json:"participation"`
	ParticipationCouldNotBeFetched bool                            `json:"participation_could_not_be_fetched"`
	RepositoryLocked               bool                            `json:"repository_locked"`
	IsIllegalSubmission            bool                            `json:"is_illegal_submission"`
	HasTutorAssessment             bool                            `json:"has_tutor_assessment"`
	Tasks                          []reconcile.TaskStatus          `json:"tasks"`
	Hints                          []reconcile.HintSolutionEntries `json:"hints"`
	UnreferencedFeedback           []models.Feedback               `json:"unreferenced_feedback"`
	Alerts                         []Alert                         `json:"alerts,omitempty"`
}

type participationService struct {
	participations repositories.ParticipationRepository
	access         participationAccess
	reader         *cachedReader
	tracker        *RequestTracker
	logger         *slog.Logger
	opLogger       *ServiceLogger
	now            func() time.Time
}

func NewParticipationService(repo *repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *slog.Logger, now func() time.Time) ParticipationService {
	if now == nil {
		now = time.Now
	}
	return &participationService{
		participations: repo.Participations,
		access:         participationAccess{courses: repo.Courses},
		reader: &cachedReader{
			results: repo.Results,
			hints:   repo.Hints,
			cache:   cacheService,
			ttl:     cacheTTL,
			logger:  logger,
		},
		tracker:  NewRequestTracker(),
		logger:   logger,
		opLogger: NewServiceLogger(logger, LogConfig{Service: "participation-service", Component: "participation"}),
		now:      now,
	}
}

// participationKey scopes in-flight loads to one user's view of a participation
func participationKey(participationID, userID uint) string {
	return fmt.Sprintf("participation:%d:user:%d", participationID, userID)
}

func (s *participationService) LoadCodeEditor(ctx context.Context, participationID, userID uint) (*CodeEditorView, error) {
	op := s.opLogger.WithOperation(ctx, "load_code_editor", userID)

	ctx, ticket := s.tracker.Begin(ctx, participationKey(participationID, userID))
	view, err := s.buildCodeEditorView(ctx, participationID, userID)

	if finishErr := ticket.Finish(); finishErr != nil {
		op.LogResult(participationID, "participation", finishErr)
		return nil, finishErr
	}
	op.LogResult(participationID, "participation", err)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *participationService) buildCodeEditorView(ctx context.Context, participationID, userID uint) (*CodeEditorView, error) {
	view := &CodeEditorView{
		Tasks:                make([]reconcile.TaskStatus, 0),
		Hints:                make([]reconcile.HintSolutionEntries, 0),
		UnreferencedFeedback: make([]models.Feedback, 0),
	}

	participation, err := s.participations.GetWithLatestResult(ctx, participationID)
	if err != nil {
		s.logger.Error("Failed to fetch participation", "participation_id", participationID, "error", err)
		view.ParticipationCouldNotBeFetched = true
		view.Alerts = append(view.Alerts, newAlert(AlertDanger,
			"participation.couldNotBeFetched",
			"The participation could not be fetched.").withParam("participation_id", participationID))
		return view, nil
	}
	if err := s.access.check(ctx, participation, userID, "read"); err != nil {
		return nil, err
	}
	view.Participation = participation

	result := participation.LatestResult()
	if result != nil {
		// Without details the embedded feedback of the result is kept.
		if feedbacks, err := s.reader.FeedbackDetails(ctx, participation.ExerciseID, result.ID); err != nil {
			s.logger.Warn("Failed to fetch feedback details, using embedded feedback",
				"participation_id", participationID,
				"result_id", result.ID,
				"error", err)
		} else {
			result.Feedbacks = feedbacks
		}
	}

	exercise := participation.Exercise
	if exercise != nil && exercise.ExerciseHints == nil {
		hints, err := s.reader.ExerciseHints(ctx, exercise.ID)
		if err != nil {
			s.logger.Warn("Failed to fetch exercise hints", "exercise_id", exercise.ID, "error", err)
			view.Alerts = append(view.Alerts, newAlert(AlertWarning,
				"exerciseHint.couldNotBeFetched",
				"The hints of this exercise could not be fetched."))
			hints = make([]models.ExerciseHint, 0)
		}
		exercise.ExerciseHints = hints
	}

	now := s.now()
	view.RepositoryLocked = reconcile.IsLocked(exercise, now)
	view.IsIllegalSubmission = reconcile.IsIllegalSubmission(result)
	view.HasTutorAssessment = reconcile.ManualAssessmentVisible(result, reconcile.DueDatePassed(exercise, now))
	if !view.HasTutorAssessment {
		withholdManualFeedback(result)
	}

	if exercise != nil {
		view.Tasks = reconcile.TaskStatuses(reconcile.ParseTasks(exercise.ProblemStatement), result)
		view.Hints = reconcile.GroupByHint(exercise.ExerciseHints)
	}
	view.UnreferencedFeedback = reconcile.UnreferencedFeedback(result)

	if view.IsIllegalSubmission {
		view.Alerts = append(view.Alerts, newAlert(AlertWarning,
			"submission.illegal",
			"The latest submission was flagged as illegal."))
	}
	return view, nil
}

// withholdManualFeedback drops tutor feedback that may not be shown yet
func withholdManualFeedback(result *models.Result) {
	if result == nil {
		return
	}
	kept := make([]models.Feedback, 0, len(result.Feedbacks))
	for _, feedback := range result.Feedbacks {
		if feedback.Type == models.FeedbackManual || feedback.Type == models.FeedbackManualUnreferenced {
			continue
		}
		kept = append(kept, feedback)
	}
	result.Feedbacks = kept
}

func (s *participationService) TestStatus(ctx context.Context, participationID, userID uint, testNames []string) (*reconcile.TestStatus, error) {
	participation, err := s.participations.GetWithLatestResult(ctx, participationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %d", ErrParticipationNotFound, participationID)
		}
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	if err := s.access.check(ctx, participation, userID, "read"); err != nil {
		return nil, err
	}

	result := participation.LatestResult()
	if result != nil {
		if feedbacks, err := s.reader.FeedbackDetails(ctx, participation.ExerciseID, result.ID); err == nil {
			result.Feedbacks = feedbacks
		}
	}
	if !reconcile.ManualAssessmentVisible(result, reconcile.DueDatePassed(participation.Exercise, s.now())) {
		withholdManualFeedback(result)
	}

	status := reconcile.Partition(testNames, result)
	return &status, nil
}

func (s *participationService) Dispose(participationID, userID uint) {
	if s.tracker.Cancel(participationKey(participationID, userID)) {
		s.logger.Debug("Disposed in-flight participation load", "participation_id", participationID, "user_id", userID)
	}
}
