package reconcile

import (
	"github.com/SAP-F-2025/participation-service/internal/models"
)

// FeedbackOutcome is the closed set of states a single feedback entry can be in.
type FeedbackOutcome int

const (
	OutcomeNotExecuted FeedbackOutcome = iota
	OutcomePositive
	OutcomeNegative
)

func (o FeedbackOutcome) String() string {
	switch o {
	case OutcomePositive:
		return "positive"
	case OutcomeNegative:
		return "negative"
	default:
		return "not_executed"
	}
}

// OutcomeOf maps the tri-state positive flag onto a FeedbackOutcome.
// A nil feedback or an unset flag is NotExecuted, never Negative.
func OutcomeOf(feedback *models.Feedback) FeedbackOutcome {
	if feedback == nil || feedback.Positive == nil {
		return OutcomeNotExecuted
	}
	if *feedback.Positive {
		return OutcomePositive
	}
	return OutcomeNegative
}

type TestCaseState string

const (
	TestCaseSuccess     TestCaseState = "SUCCESS"
	TestCaseFail        TestCaseState = "FAIL"
	TestCaseNotExecuted TestCaseState = "NOT_EXECUTED"
)

// TestStatus is the aggregate status of a named group of tests.
// Successful, Failed and NotExecuted partition the input names.
type TestStatus struct {
	State       TestCaseState `json:"test_case_state"`
	Successful  []string      `json:"successful_tests"`
	Failed      []string      `json:"failed_tests"`
	NotExecuted []string      `json:"not_executed_tests"`
	HasMessage  bool          `json:"has_message"`
}

// Partition classifies every test name against the result's feedback.
// Lists keep the order of testNames. A missing result means nothing ran.
func Partition(testNames []string, result *models.Result) TestStatus {
	status := TestStatus{
		Successful:  make([]string, 0),
		Failed:      make([]string, 0),
		NotExecuted: make([]string, 0),
	}

	if result == nil {
		status.State = TestCaseNotExecuted
		status.NotExecuted = append(status.NotExecuted, testNames...)
		return status
	}

	for _, name := range testNames {
		feedback := findFeedback(result.Feedbacks, name)
		if hasDetailText(result.Feedbacks, name) {
			status.HasMessage = true
		}

		switch OutcomeOf(feedback) {
		case OutcomePositive:
			status.Successful = append(status.Successful, name)
		case OutcomeNegative:
			status.Failed = append(status.Failed, name)
		case OutcomeNotExecuted:
			status.NotExecuted = append(status.NotExecuted, name)
		}
	}

	switch {
	case len(status.Failed) > 0:
		status.State = TestCaseFail
	case len(status.NotExecuted) > 0:
		status.State = TestCaseNotExecuted
	default:
		status.State = TestCaseSuccess
	}
	return status
}

// findFeedback returns the first feedback whose text equals name.
func findFeedback(feedbacks []models.Feedback, name string) *models.Feedback {
	for i := range feedbacks {
		if feedbacks[i].Text == name {
			return &feedbacks[i]
		}
	}
	return nil
}

// hasDetailText reports whether any feedback for name carries a message,
// not only the one that decides the outcome.
func hasDetailText(feedbacks []models.Feedback, name string) bool {
	for i := range feedbacks {
		if feedbacks[i].Text == name && feedbacks[i].DetailText != nil && *feedbacks[i].DetailText != "" {
			return true
		}
	}
	return false
}
