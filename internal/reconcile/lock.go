package reconcile

import (
	"time"

	"github.com/SAP-F-2025/participation-service/internal/models"
)

// DueDatePassed reports whether the exercise's due date lies before now.
// An exercise without a due date counts as passed.
func DueDatePassed(exercise *models.Exercise, now time.Time) bool {
	if exercise == nil || exercise.DueDate == nil {
		return true
	}
	return exercise.DueDate.Before(now)
}

// IsLocked decides whether the participation repository of a programming
// exercise is read-only at now. Editing stays allowed after the due date only
// for automatically assessed exercises that do not build and test after the
// due date. Exercises without a due date are never locked.
//
// This must match the data store's own lock rule for participations.
func IsLocked(exercise *models.Exercise, now time.Time) bool {
	if exercise == nil {
		return false
	}
	editingAfterDueAllowed := !exercise.BuildAndTestAfterDueDate && exercise.AssessmentType == models.AssessmentAutomatic
	return !editingAfterDueAllowed && exercise.DueDate != nil && DueDatePassed(exercise, now)
}
