package services

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type mockParticipationRepo struct{ mock.Mock }

func (m *mockParticipationRepo) GetWithLatestResult(ctx context.Context, id uint) (*models.Participation, error) {
	args := m.Called(ctx, id)
	participation, _ := args.Get(0).(*models.Participation)
	return participation, args.Error(1)
}

type mockResultRepo struct{ mock.Mock }

func (m *mockResultRepo) GetFeedbackDetails(ctx context.Context, resultID uint) ([]models.Feedback, error) {
	args := m.Called(ctx, resultID)
	feedbacks, _ := args.Get(0).([]models.Feedback)
	return feedbacks, args.Error(1)
}

type mockExerciseRepo struct{ mock.Mock }

func (m *mockExerciseRepo) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	args := m.Called(ctx, id)
	exercise, _ := args.Get(0).(*models.Exercise)
	return exercise, args.Error(1)
}

type mockHintRepo struct{ mock.Mock }

func (m *mockHintRepo) GetByExercise(ctx context.Context, exerciseID uint) ([]models.ExerciseHint, error) {
	args := m.Called(ctx, exerciseID)
	hints, _ := args.Get(0).([]models.ExerciseHint)
	return hints, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) SearchInCourse(ctx context.Context, courseID uint, query string, limit int) ([]models.UserSummary, error) {
	args := m.Called(ctx, courseID, query, limit)
	users, _ := args.Get(0).([]models.UserSummary)
	return users, args.Error(1)
}

type mockCourseRepo struct{ mock.Mock }

func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockCourseRepo) GetMemberRole(ctx context.Context, courseID, userID uint) (models.CourseRole, error) {
	args := m.Called(ctx, courseID, userID)
	return args.Get(0).(models.CourseRole), args.Error(1)
}

type mockConversationRepo struct{ mock.Mock }

func (m *mockConversationRepo) ListForUser(ctx context.Context, courseID, userID uint) ([]*models.Conversation, error) {
	args := m.Called(ctx, courseID, userID)
	conversations, _ := args.Get(0).([]*models.Conversation)
	return conversations, args.Error(1)
}

func (m *mockConversationRepo) Create(ctx context.Context, conversation *models.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

type mockExamRepo struct{ mock.Mock }

func (m *mockExamRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.Exam, error) {
	args := m.Called(ctx, courseID)
	exams, _ := args.Get(0).([]models.Exam)
	return exams, args.Error(1)
}

func (m *mockExamRepo) GetByID(ctx context.Context, courseID, examID uint) (*models.Exam, error) {
	args := m.Called(ctx, courseID, examID)
	exam, _ := args.Get(0).(*models.Exam)
	return exam, args.Error(1)
}

func (m *mockExamRepo) GetStudentExams(ctx context.Context, courseID, userID uint) ([]models.StudentExam, error) {
	args := m.Called(ctx, courseID, userID)
	studentExams, _ := args.Get(0).([]models.StudentExam)
	return studentExams, args.Error(1)
}

func (m *mockExamRepo) AssessUnsubmitted(ctx context.Context, examID uint, now time.Time) (int, error) {
	args := m.Called(ctx, examID, now)
	return args.Int(0), args.Error(1)
}

func (m *mockExamRepo) EvaluateQuizExercises(ctx context.Context, examID uint, now time.Time) (int, error) {
	args := m.Called(ctx, examID, now)
	return args.Int(0), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) DeletePattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}

type testRepos struct {
	participations *mockParticipationRepo
	results        *mockResultRepo
	exercises      *mockExerciseRepo
	hints          *mockHintRepo
	users          *mockUserRepo
	courses        *mockCourseRepo
	conversations  *mockConversationRepo
	exams          *mockExamRepo
}

func newTestRepos() (*testRepos, *repositories.Repository) {
	r := &testRepos{
		participations: &mockParticipationRepo{},
		results:        &mockResultRepo{},
		exercises:      &mockExerciseRepo{},
		hints:          &mockHintRepo{},
		users:          &mockUserRepo{},
		courses:        &mockCourseRepo{},
		conversations:  &mockConversationRepo{},
		exams:          &mockExamRepo{},
	}
	return r, &repositories.Repository{
		Participations: r.participations,
		Results:        r.results,
		Exercises:      r.exercises,
		Hints:          r.hints,
		Users:          r.users,
		Courses:        r.courses,
		Conversations:  r.conversations,
		Exams:          r.exams,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func boolPtr(b bool) *bool {
	return &b
}

func uintPtr(u uint) *uint {
	return &u
}

func stringPtr(s string) *string {
	return &s
}
