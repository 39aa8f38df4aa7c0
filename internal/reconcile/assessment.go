package reconcile

import (
	"github.com/SAP-F-2025/participation-service/internal/models"
)

// IsManualResult reports whether a human took part in assessing the result.
func IsManualResult(result *models.Result) bool {
	if result == nil {
		return false
	}
	return result.AssessmentType == models.AssessmentSemiAutomatic || result.AssessmentType == models.AssessmentManual
}

// ManualAssessmentVisible decides whether tutor feedback may be surfaced.
// Manual feedback is never shown before the due date has passed, even when it
// is already present in the result.
func ManualAssessmentVisible(result *models.Result, duePassed bool) bool {
	isManual := IsManualResult(result)
	hasManualFeedback := false
	if isManual {
		for _, feedback := range result.Feedbacks {
			if feedback.Type == models.FeedbackManual {
				hasManualFeedback = true
				break
			}
		}
	}
	return duePassed && isManual && hasManualFeedback
}

// IsIllegalSubmission reports whether the result belongs to a disallowed resubmission.
func IsIllegalSubmission(result *models.Result) bool {
	return result != nil && result.Submission != nil && result.Submission.Type == models.SubmissionIllegal
}

// UnreferencedFeedback returns the general tutor comments of a result, i.e.
// manual feedback that is not attached to a file location.
func UnreferencedFeedback(result *models.Result) []models.Feedback {
	feedbacks := make([]models.Feedback, 0)
	if result == nil {
		return feedbacks
	}
	for _, feedback := range result.Feedbacks {
		if feedback.Type == models.FeedbackManualUnreferenced && feedback.Reference == nil {
			feedbacks = append(feedbacks, feedback)
		}
	}
	return feedbacks
}
