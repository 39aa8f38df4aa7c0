package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"gorm.io/gorm"
)

// ParticipationRepository reads participations together with their results
type ParticipationRepository interface {
	// GetWithLatestResult loads the exercise and results newest first, each
	// result with its submission and embedded feedback
	GetWithLatestResult(ctx context.Context, id uint) (*models.Participation, error)
}

type ResultRepository interface {
	GetFeedbackDetails(ctx context.Context, resultID uint) ([]models.Feedback, error)
}

type ExerciseRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Exercise, error)
}

type ExerciseHintRepository interface {
	GetByExercise(ctx context.Context, exerciseID uint) ([]models.ExerciseHint, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// SearchInCourse matches login or name of course members, case-insensitive
	SearchInCourse(ctx context.Context, courseID uint, query string, limit int) ([]models.UserSummary, error)
}

type CourseRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	// GetMemberRole returns gorm.ErrRecordNotFound (wrapped) for non-members
	GetMemberRole(ctx context.Context, courseID, userID uint) (models.CourseRole, error)
}

type ConversationRepository interface {
	// ListForUser returns the conversations the user takes part in, most recent first
	ListForUser(ctx context.Context, courseID, userID uint) ([]*models.Conversation, error)
	// Create persists the conversation with its participants and fills in the IDs
	Create(ctx context.Context, conversation *models.Conversation) error
}

type ExamRepository interface {
	ListByCourse(ctx context.Context, courseID uint) ([]models.Exam, error)
	GetByID(ctx context.Context, courseID, examID uint) (*models.Exam, error)
	GetStudentExams(ctx context.Context, courseID, userID uint) ([]models.StudentExam, error)

	// AssessUnsubmitted closes every started but unsubmitted student exam and
	// returns how many were affected
	AssessUnsubmitted(ctx context.Context, examID uint, now time.Time) (int, error)
	// EvaluateQuizExercises completes the pending results of the exam's quiz
	// exercises and returns the number of quiz exercises evaluated
	EvaluateQuizExercises(ctx context.Context, examID uint, now time.Time) (int, error)
}

// Repository aggregates every repository the services depend on
type Repository struct {
	Participations ParticipationRepository
	Results        ResultRepository
	Exercises      ExerciseRepository
	Hints          ExerciseHintRepository
	Users          UserRepository
	Courses        CourseRepository
	Conversations  ConversationRepository
	Exams          ExamRepository
}

// IsNotFoundError reports whether err means the queried record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
