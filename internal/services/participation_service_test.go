package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/cache"
	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

// ownerID is the student of codeEditorParticipation
const ownerID uint = 7

func codeEditorParticipation(dueDate time.Time, assessmentType models.AssessmentType) *models.Participation {
	return &models.Participation{
		ID:         1,
		ExerciseID: 10,
		StudentID:  uintPtr(ownerID),
		Exercise: &models.Exercise{
			ID:                       10,
			Title:                    "Sorting",
			Type:                     models.ExerciseProgramming,
			CourseID:                 uintPtr(3),
			AssessmentType:           assessmentType,
			DueDate:                  timePtr(dueDate),
			BuildAndTestAfterDueDate: true,
			ProblemStatement:         "1. [task][Sort](testSort, testEmpty)\n2. [task][Merge](testMerge)",
		},
		Results: []models.Result{{
			ID:             100,
			AssessmentType: assessmentType,
			Feedbacks: []models.Feedback{
				{Text: "testSort", Positive: boolPtr(true), Type: models.FeedbackAutomatic},
			},
		}},
	}
}

func TestParticipationService_LoadCodeEditor(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(-time.Hour), models.AssessmentSemiAutomatic)

	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return([]models.Feedback{
		{Text: "testSort", Positive: boolPtr(true), Type: models.FeedbackAutomatic},
		{Text: "testEmpty", Positive: boolPtr(false), DetailText: stringPtr("expected []"), Type: models.FeedbackAutomatic},
		{Text: "style", Type: models.FeedbackManual, Credits: 1},
		{Text: "general", Type: models.FeedbackManualUnreferenced},
	}, nil)
	repos.hints.On("GetByExercise", mock.Anything, uint(10)).Return([]models.ExerciseHint{
		{ID: 1, Type: models.HintText},
		{ID: 2, Type: models.HintCode, SolutionEntries: []models.SolutionEntry{
			{FilePath: "b.py", Line: 5},
			{FilePath: "a.py", Line: 9},
			{FilePath: "a.py", Line: 2},
		}},
	}, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.False(t, view.ParticipationCouldNotBeFetched)
	assert.True(t, view.RepositoryLocked)
	assert.True(t, view.HasTutorAssessment)
	assert.False(t, view.IsIllegalSubmission)
	assert.Empty(t, view.Alerts)

	require.Len(t, view.Tasks, 2)
	assert.Equal(t, "Sort", view.Tasks[0].Name)
	assert.Equal(t, reconcile.TestCaseFail, view.Tasks[0].Status.State)
	assert.Equal(t, []string{"testSort"}, view.Tasks[0].Status.Successful)
	assert.Equal(t, []string{"testEmpty"}, view.Tasks[0].Status.Failed)
	assert.True(t, view.Tasks[0].Status.HasMessage)
	assert.Equal(t, reconcile.TestCaseNotExecuted, view.Tasks[1].Status.State)

	require.Len(t, view.Hints, 2)
	assert.Empty(t, view.Hints[0].SolutionEntries)
	require.Len(t, view.Hints[1].SolutionEntries, 3)
	assert.Equal(t, "a.py", view.Hints[1].SolutionEntries[0].FilePath)
	assert.Equal(t, 2, view.Hints[1].SolutionEntries[0].Line)
	assert.Equal(t, "b.py", view.Hints[1].SolutionEntries[2].FilePath)

	require.Len(t, view.UnreferencedFeedback, 1)
	assert.Equal(t, "general", view.UnreferencedFeedback[0].Text)
}

func TestParticipationService_LoadCodeEditor_FetchFailure(t *testing.T) {
	repos, repo := newTestRepos()
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(nil, errors.New("connection reset"))

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.True(t, view.ParticipationCouldNotBeFetched)
	assert.Nil(t, view.Participation)
	assert.NotNil(t, view.Tasks)
	assert.NotNil(t, view.Hints)
	require.Len(t, view.Alerts, 1)
	assert.Equal(t, AlertDanger, view.Alerts[0].Type)
	repos.results.AssertNotCalled(t, "GetFeedbackDetails", mock.Anything, mock.Anything)
}

func TestParticipationService_LoadCodeEditor_FeedbackFailureKeepsEmbedded(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	participation.Exercise.ExerciseHints = []models.ExerciseHint{}

	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return(nil, errors.New("timeout"))

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.False(t, view.RepositoryLocked)
	assert.Equal(t, []string{"testSort"}, view.Tasks[0].Status.Successful)
	assert.Equal(t, []string{"testEmpty"}, view.Tasks[0].Status.NotExecuted)
	repos.hints.AssertNotCalled(t, "GetByExercise", mock.Anything, mock.Anything)
}

func TestParticipationService_LoadCodeEditor_WithholdsManualFeedbackBeforeDueDate(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentManual)
	participation.Exercise.ExerciseHints = []models.ExerciseHint{}
	participation.Results[0].Feedbacks = append(participation.Results[0].Feedbacks,
		models.Feedback{Text: "well done", Type: models.FeedbackManual},
		models.Feedback{Text: "overall", Type: models.FeedbackManualUnreferenced})

	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return(nil, errors.New("timeout"))

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.False(t, view.HasTutorAssessment)
	assert.Empty(t, view.UnreferencedFeedback)
	for _, feedback := range view.Participation.Results[0].Feedbacks {
		assert.Equal(t, models.FeedbackAutomatic, feedback.Type)
	}
}

func TestParticipationService_LoadCodeEditor_IllegalSubmission(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	participation.Exercise.ExerciseHints = []models.ExerciseHint{}
	participation.Results[0].Submission = &models.Submission{Type: models.SubmissionIllegal}

	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return([]models.Feedback{}, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
	require.NoError(t, err)

	assert.True(t, view.IsIllegalSubmission)
	require.Len(t, view.Alerts, 1)
	assert.Equal(t, AlertWarning, view.Alerts[0].Type)
}

func TestParticipationService_LoadCodeEditor_SupersededLoadIsDiscarded(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	participation.Exercise.ExerciseHints = []models.ExerciseHint{}

	started := make(chan struct{})
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled).Once()
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil).Once()
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return([]models.Feedback{}, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))

	type loadResult struct {
		view *CodeEditorView
		err  error
	}
	first := make(chan loadResult, 1)
	go func() {
		view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
		first <- loadResult{view, err}
	}()

	<-started
	view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.Participation.ID)

	stale := <-first
	assert.ErrorIs(t, stale.err, ErrSupersededRequest)
	assert.Nil(t, stale.view)
}

func TestParticipationService_Dispose(t *testing.T) {
	repos, repo := newTestRepos()

	started := make(chan struct{})
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.Canceled)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	done := make(chan error, 1)
	go func() {
		_, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
		done <- err
	}()

	<-started
	service.Dispose(1, ownerID)
	assert.ErrorIs(t, <-done, ErrSupersededRequest)
}

func TestParticipationService_UsesCachedFeedback(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	participation.Exercise.ExerciseHints = []models.ExerciseHint{}
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)

	cacheService := &mockCache{}
	cacheService.On("Get", mock.Anything, cache.ResultFeedbackKey(10, 100), mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]models.Feedback)
			*dest = []models.Feedback{
				{Text: "testSort", Positive: boolPtr(true)},
				{Text: "testEmpty", Positive: boolPtr(true)},
			}
		}).
		Return(nil)

	service := NewParticipationService(repo, cacheService, time.Minute, testLogger(), fixedClock(testNow))
	status, err := service.TestStatus(context.Background(), 1, ownerID, []string{"testSort", "testEmpty"})
	require.NoError(t, err)

	assert.Equal(t, reconcile.TestCaseSuccess, status.State)
	repos.results.AssertNotCalled(t, "GetFeedbackDetails", mock.Anything, mock.Anything)
}

func TestParticipationService_StoresFeedbackOnCacheMiss(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	feedbacks := []models.Feedback{{Text: "testSort", Positive: boolPtr(false)}}
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return(feedbacks, nil)

	cacheService := &mockCache{}
	cacheService.On("Get", mock.Anything, cache.ResultFeedbackKey(10, 100), mock.Anything).Return(cache.ErrCacheMiss)
	cacheService.On("Set", mock.Anything, cache.ResultFeedbackKey(10, 100), feedbacks, time.Minute).Return(nil)

	service := NewParticipationService(repo, cacheService, time.Minute, testLogger(), fixedClock(testNow))
	status, err := service.TestStatus(context.Background(), 1, ownerID, []string{"testSort"})
	require.NoError(t, err)

	assert.Equal(t, reconcile.TestCaseFail, status.State)
	cacheService.AssertExpectations(t)
}

func TestParticipationService_TestStatus_NotFound(t *testing.T) {
	repos, repo := newTestRepos()
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	_, err := service.TestStatus(context.Background(), 9, ownerID, []string{"testSort"})

	assert.ErrorIs(t, err, ErrParticipationNotFound)
	assert.True(t, IsNotFound(err))
}

func TestParticipationService_TestStatus_NoResult(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow, models.AssessmentAutomatic)
	participation.Results = nil
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	status, err := service.TestStatus(context.Background(), 1, ownerID, []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, reconcile.TestCaseNotExecuted, status.State)
	assert.Equal(t, []string{"a", "b"}, status.NotExecuted)
}

func TestParticipationService_RejectsOtherStudents(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(-time.Hour), models.AssessmentSemiAutomatic)
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.courses.On("GetMemberRole", mock.Anything, uint(3), uint(21)).Return(models.RoleStudent, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))

	view, err := service.LoadCodeEditor(context.Background(), 1, 21)
	assert.Nil(t, view)
	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, "read", permErr.Action)

	_, err = service.TestStatus(context.Background(), 1, 21, []string{"testSort"})
	assert.True(t, IsUnauthorized(err))
	repos.results.AssertNotCalled(t, "GetFeedbackDetails", mock.Anything, mock.Anything)
}

func TestParticipationService_RejectsNonMembers(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(-time.Hour), models.AssessmentAutomatic)
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.courses.On("GetMemberRole", mock.Anything, uint(3), uint(999)).Return(models.CourseRole(""), gorm.ErrRecordNotFound)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	_, err := service.LoadCodeEditor(context.Background(), 1, 999)

	assert.True(t, IsUnauthorized(err))
}

func TestParticipationService_AllowsCourseStaff(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(-time.Hour), models.AssessmentAutomatic)
	participation.Exercise.ExerciseHints = []models.ExerciseHint{}
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return([]models.Feedback{}, nil)
	repos.courses.On("GetMemberRole", mock.Anything, uint(3), uint(20)).Return(models.RoleTutor, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	view, err := service.LoadCodeEditor(context.Background(), 1, 20)
	require.NoError(t, err)

	assert.Equal(t, uint(1), view.Participation.ID)
}

func TestParticipationService_ConcurrentLoadsByDifferentUsers(t *testing.T) {
	repos, repo := newTestRepos()
	ownerView := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	ownerView.Exercise.ExerciseHints = []models.ExerciseHint{}
	tutorView := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentAutomatic)
	tutorView.Exercise.ExerciseHints = []models.ExerciseHint{}

	started := make(chan struct{})
	release := make(chan struct{})
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(ownerView, nil).Once()
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(tutorView, nil).Once()
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return([]models.Feedback{}, nil)
	repos.courses.On("GetMemberRole", mock.Anything, uint(3), uint(20)).Return(models.RoleTutor, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))

	type loadResult struct {
		view *CodeEditorView
		err  error
	}
	first := make(chan loadResult, 1)
	go func() {
		view, err := service.LoadCodeEditor(context.Background(), 1, ownerID)
		first <- loadResult{view, err}
	}()

	<-started
	view, err := service.LoadCodeEditor(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, view.Participation)

	// Another user's dispose leaves the owner's load alone
	service.Dispose(1, 20)
	close(release)

	owner := <-first
	require.NoError(t, owner.err)
	assert.NotNil(t, owner.view.Participation)
}

func TestParticipationService_TestStatus_WithholdsManualFeedbackBeforeDueDate(t *testing.T) {
	repos, repo := newTestRepos()
	participation := codeEditorParticipation(testNow.Add(time.Hour), models.AssessmentSemiAutomatic)
	repos.participations.On("GetWithLatestResult", mock.Anything, uint(1)).Return(participation, nil)
	repos.results.On("GetFeedbackDetails", mock.Anything, uint(100)).Return([]models.Feedback{
		{Text: "testSort", Positive: boolPtr(false), DetailText: stringPtr("tutor remark"), Type: models.FeedbackManual},
		{Text: "testSort", Positive: boolPtr(true), Type: models.FeedbackAutomatic},
	}, nil)

	service := NewParticipationService(repo, nil, 0, testLogger(), fixedClock(testNow))
	status, err := service.TestStatus(context.Background(), 1, ownerID, []string{"testSort"})
	require.NoError(t, err)

	assert.Equal(t, reconcile.TestCaseSuccess, status.State)
	assert.Equal(t, []string{"testSort"}, status.Successful)
	assert.False(t, status.HasMessage)
}
