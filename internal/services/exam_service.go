package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/events"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

type ExamService interface {
	// Overview lists the visible exams of a course for a member
	Overview(ctx context.Context, courseID, userID uint) (*ExamOverview, error)

	// Assessment triggers never return errors; failures become alerts
	AssessUnsubmittedParticipations(ctx context.Context, courseID, examID, userID uint) TriggerOutcome
	EvaluateQuizExercises(ctx context.Context, courseID, examID, userID uint) TriggerOutcome
}

type ExamSummary struct {
	Exam         models.Exam          `json:"exam"`
	Over         bool                 `json:"over"`
	StudentExams []models.StudentExam `json:"student_exams"`
}

type ExamOverview struct {
	CourseID          uint          `json:"course_id"`
	Exams             []ExamSummary `json:"exams"`
	TestExams         []ExamSummary `json:"test_exams"`
	CouldNotBeFetched bool          `json:"could_not_be_fetched"`
	Alerts            []Alert       `json:"alerts,omitempty"`
}

type TriggerOutcome struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Alert   Alert `json:"alert"`
}

type examService struct {
	courses   repositories.CourseRepository
	exams     repositories.ExamRepository
	publisher events.EventPublisher
	logger    *slog.Logger
	opLogger  *ServiceLogger
	now       func() time.Time
}

func NewExamService(repo *repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, now func() time.Time) ExamService {
	if now == nil {
		now = time.Now
	}
	return &examService{
		courses:   repo.Courses,
		exams:     repo.Exams,
		publisher: publisher,
		logger:    logger,
		opLogger:  NewServiceLogger(logger, LogConfig{Service: "participation-service", Component: "exam"}),
		now:       now,
	}
}

func (s *examService) Overview(ctx context.Context, courseID, userID uint) (*ExamOverview, error) {
	if _, err := s.courses.GetMemberRole(ctx, courseID, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: user %d, course %d", ErrNotCourseMember, userID, courseID)
		}
		return nil, fmt.Errorf("failed to check course membership: %w", err)
	}

	overview := &ExamOverview{
		CourseID:  courseID,
		Exams:     make([]ExamSummary, 0),
		TestExams: make([]ExamSummary, 0),
	}

	exams, studentExams, err := s.fetchExams(ctx, courseID, userID)
	if err != nil {
		s.logger.Error("Failed to fetch exams", "course_id", courseID, "error", err)
		overview.CouldNotBeFetched = true
		overview.Alerts = append(overview.Alerts, newAlert(AlertDanger,
			"exam.couldNotBeFetched",
			"The exams of this course could not be fetched."))
		return overview, nil
	}

	s.fillOverview(overview, exams, studentExams)
	return overview, nil
}

func (s *examService) fetchExams(ctx context.Context, courseID, userID uint) ([]models.Exam, []models.StudentExam, error) {
	exams, err := s.exams.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	studentExams, err := s.exams.GetStudentExams(ctx, courseID, userID)
	if err != nil {
		return nil, nil, err
	}
	return exams, studentExams, nil
}

func (s *examService) fillOverview(overview *ExamOverview, exams []models.Exam, studentExams []models.StudentExam) {
	now := s.now()
	for i := range exams {
		exam := exams[i]
		if !reconcile.ExamVisible(&exam, now) {
			continue
		}
		summary := ExamSummary{
			Exam:         exam,
			Over:         examOver(&exam, now),
			StudentExams: reconcile.StudentExamsForExam(studentExams, exam.ID),
		}
		if reconcile.IsTestExam(&exam) {
			overview.TestExams = append(overview.TestExams, summary)
		} else {
			overview.Exams = append(overview.Exams, summary)
		}
	}
}

func examOver(exam *models.Exam, now time.Time) bool {
	return exam.EndDate != nil && exam.EndDate.Before(now)
}

type examTrigger struct {
	operation  string
	successKey string
	failureKey string
	eventType  events.EventType
	run        func(ctx context.Context, examID uint, now time.Time) (int, error)
}

func (s *examService) AssessUnsubmittedParticipations(ctx context.Context, courseID, examID, userID uint) TriggerOutcome {
	return s.trigger(ctx, courseID, examID, userID, examTrigger{
		operation:  "assess_unsubmitted",
		successKey: "exam.assessUnsubmittedSuccess",
		failureKey: "exam.assessUnsubmittedFailed",
		eventType:  events.EventUnsubmittedAssessed,
		run:        s.exams.AssessUnsubmitted,
	})
}

func (s *examService) EvaluateQuizExercises(ctx context.Context, courseID, examID, userID uint) TriggerOutcome {
	return s.trigger(ctx, courseID, examID, userID, examTrigger{
		operation:  "evaluate_quizzes",
		successKey: "exam.evaluateQuizExercisesSuccess",
		failureKey: "exam.evaluateQuizExercisesFailed",
		eventType:  events.EventQuizzesEvaluated,
		run:        s.exams.EvaluateQuizExercises,
	})
}

func (s *examService) trigger(ctx context.Context, courseID, examID, userID uint, t examTrigger) TriggerOutcome {
	op := s.opLogger.WithOperation(ctx, t.operation, userID)

	count, err := s.runTrigger(ctx, courseID, examID, userID, t)
	op.LogResult(examID, "exam", err)
	if err != nil {
		alertType := AlertDanger
		if IsConflict(err) {
			alertType = AlertWarning
		}
		return TriggerOutcome{
			Alert: newAlert(alertType, t.failureKey, err.Error()).withParam("exam_id", examID),
		}
	}

	s.publish(ctx, t.eventType, events.ExamAssessmentEvent{
		CourseID:    courseID,
		ExamID:      examID,
		TriggeredBy: userID,
		Count:       count,
	})

	return TriggerOutcome{
		Success: true,
		Count:   count,
		Alert: newAlert(AlertSuccess, t.successKey,
			fmt.Sprintf("%d processed.", count)).withParam("count", count),
	}
}

func (s *examService) runTrigger(ctx context.Context, courseID, examID, userID uint, t examTrigger) (int, error) {
	role, err := s.courses.GetMemberRole(ctx, courseID, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, fmt.Errorf("%w: user %d, course %d", ErrNotCourseMember, userID, courseID)
		}
		return 0, fmt.Errorf("failed to check course membership: %w", err)
	}
	if role != models.RoleInstructor {
		return 0, NewPermissionError(userID, examID, "exam", t.operation, "instructor role required")
	}

	exam, err := s.exams.GetByID(ctx, courseID, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return 0, fmt.Errorf("%w: %d", ErrExamNotFound, examID)
		}
		return 0, fmt.Errorf("failed to get exam: %w", err)
	}

	now := s.now()
	if !examOver(exam, now) {
		return 0, fmt.Errorf("%w: %d", ErrExamNotOver, examID)
	}

	count, err := t.run(ctx, examID, now)
	if err != nil {
		return 0, fmt.Errorf("%s failed: %w", t.operation, err)
	}
	return count, nil
}

func (s *examService) publish(ctx context.Context, eventType events.EventType, data events.ExamAssessmentEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data, s.now())); err != nil {
		s.logger.Warn("Failed to publish exam event", "event_type", eventType, "exam_id", data.ExamID, "error", err)
	}
}
