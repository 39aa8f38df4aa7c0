package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExerciseType string

const (
	ExerciseProgramming ExerciseType = "PROGRAMMING"
	ExerciseQuiz        ExerciseType = "QUIZ"
	ExerciseModeling    ExerciseType = "MODELING"
	ExerciseText        ExerciseType = "TEXT"
	ExerciseFileUpload  ExerciseType = "FILE_UPLOAD"
)

type AssessmentType string

const (
	AssessmentAutomatic     AssessmentType = "AUTOMATIC"
	AssessmentSemiAutomatic AssessmentType = "SEMI_AUTOMATIC"
	AssessmentManual        AssessmentType = "MANUAL"
)

type Exercise struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"not null;size:255"`
	Type           ExerciseType   `json:"type" gorm:"not null;size:20;index" validate:"required,exercise_type"`
	CourseID       *uint          `json:"course_id" gorm:"index"`
	ExamID         *uint          `json:"exam_id" gorm:"index"` // set for exam exercises
	AssessmentType AssessmentType `json:"assessment_type" gorm:"size:20;default:AUTOMATIC" validate:"omitempty,assessment_type"`

	// Deadlines
	DueDate                  *time.Time `json:"due_date"`
	AssessmentDueDate        *time.Time `json:"assessment_due_date"`
	BuildAndTestAfterDueDate bool       `json:"build_and_test_after_due_date" gorm:"column:build_and_test_after_due_date;default:false"`

	// Content
	ProblemStatement string         `json:"problem_statement" gorm:"type:text"`
	Categories       datatypes.JSON `json:"categories" gorm:"type:jsonb"` // ["algorithms", "recursion"]

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations. A nil ExerciseHints slice means the hints were not loaded.
	ExerciseHints []ExerciseHint `json:"exercise_hints,omitempty" gorm:"foreignKey:ExerciseID"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// CategoryNames decodes the categories column. Malformed or empty values yield nil.
func (e *Exercise) CategoryNames() []string {
	if len(e.Categories) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(e.Categories, &names); err != nil {
		return nil
	}
	return names
}
