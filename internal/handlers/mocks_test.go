package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"

	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/SAP-F-2025/participation-service/internal/services"
	"github.com/SAP-F-2025/participation-service/internal/utils"
	"github.com/SAP-F-2025/participation-service/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type mockParticipationService struct{ mock.Mock }

func (m *mockParticipationService) LoadCodeEditor(ctx context.Context, participationID, userID uint) (*services.CodeEditorView, error) {
	args := m.Called(ctx, participationID, userID)
	view, _ := args.Get(0).(*services.CodeEditorView)
	return view, args.Error(1)
}

func (m *mockParticipationService) TestStatus(ctx context.Context, participationID, userID uint, testNames []string) (*reconcile.TestStatus, error) {
	args := m.Called(ctx, participationID, userID, testNames)
	status, _ := args.Get(0).(*reconcile.TestStatus)
	return status, args.Error(1)
}

func (m *mockParticipationService) Dispose(participationID, userID uint) {
	m.Called(participationID, userID)
}

type mockHintService struct{ mock.Mock }

func (m *mockHintService) GroupedHints(ctx context.Context, exerciseID, userID uint) ([]reconcile.HintSolutionEntries, error) {
	args := m.Called(ctx, exerciseID, userID)
	hints, _ := args.Get(0).([]reconcile.HintSolutionEntries)
	return hints, args.Error(1)
}

func (m *mockHintService) InvalidateExercise(ctx context.Context, exerciseID uint) error {
	return m.Called(ctx, exerciseID).Error(0)
}

type mockConversationService struct{ mock.Mock }

func (m *mockConversationService) OpenSidebar(ctx context.Context, courseID, userID uint) (*services.ConversationSidebar, error) {
	args := m.Called(ctx, courseID, userID)
	sidebar, _ := args.Get(0).(*services.ConversationSidebar)
	return sidebar, args.Error(1)
}

func (m *mockConversationService) SearchUsers(ctx context.Context, courseID, userID uint, text string) (*services.SearchOutcome, error) {
	args := m.Called(ctx, courseID, userID, text)
	outcome, _ := args.Get(0).(*services.SearchOutcome)
	return outcome, args.Error(1)
}

func (m *mockConversationService) StartConversation(ctx context.Context, courseID, userID, otherUserID uint) (*services.StartConversationResult, error) {
	args := m.Called(ctx, courseID, userID, otherUserID)
	result, _ := args.Get(0).(*services.StartConversationResult)
	return result, args.Error(1)
}

type mockExamService struct{ mock.Mock }

func (m *mockExamService) Overview(ctx context.Context, courseID, userID uint) (*services.ExamOverview, error) {
	args := m.Called(ctx, courseID, userID)
	overview, _ := args.Get(0).(*services.ExamOverview)
	return overview, args.Error(1)
}

func (m *mockExamService) AssessUnsubmittedParticipations(ctx context.Context, courseID, examID, userID uint) services.TriggerOutcome {
	return m.Called(ctx, courseID, examID, userID).Get(0).(services.TriggerOutcome)
}

func (m *mockExamService) EvaluateQuizExercises(ctx context.Context, courseID, examID, userID uint) services.TriggerOutcome {
	return m.Called(ctx, courseID, examID, userID).Get(0).(services.TriggerOutcome)
}

type mockExportService struct{ mock.Mock }

func (m *mockExportService) ExportTaskStatusReport(ctx context.Context, participationID, userID uint) (*services.ExportFile, error) {
	args := m.Called(ctx, participationID, userID)
	file, _ := args.Get(0).(*services.ExportFile)
	return file, args.Error(1)
}

type testServices struct {
	participation *mockParticipationService
	hint          *mockHintService
	conversation  *mockConversationService
	exam          *mockExamService
	export        *mockExportService
}

func (s *testServices) assertExpectations(t mock.TestingT) {
	s.participation.AssertExpectations(t)
	s.hint.AssertExpectations(t)
	s.conversation.AssertExpectations(t)
	s.exam.AssertExpectations(t)
	s.export.AssertExpectations(t)
}

// newTestRouter wires the real routes against mocked services
func newTestRouter() (*gin.Engine, *testServices) {
	gin.SetMode(gin.TestMode)

	mocks := &testServices{
		participation: &mockParticipationService{},
		hint:          &mockHintService{},
		conversation:  &mockConversationService{},
		exam:          &mockExamService{},
		export:        &mockExportService{},
	}
	manager := &services.ServiceManager{
		Participation: mocks.participation,
		Hint:          mocks.hint,
		Conversation:  mocks.conversation,
		Exam:          mocks.exam,
		Export:        mocks.export,
	}

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := gin.New()
	router.Use(utils.ContextLogger(logger))
	NewHandlerManager(manager, validator.New(), logger).SetupRoutes(router)
	return router, mocks
}

func doRequest(router *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

