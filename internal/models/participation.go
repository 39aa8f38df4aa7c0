package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionType string

const (
	SubmissionManual     SubmissionType = "MANUAL"
	SubmissionTimeout    SubmissionType = "TIMEOUT"
	SubmissionInstructor SubmissionType = "INSTRUCTOR"
	SubmissionExternal   SubmissionType = "EXTERNAL"
	SubmissionTest       SubmissionType = "TEST"
	SubmissionIllegal    SubmissionType = "ILLEGAL"
)

type FeedbackType string

const (
	FeedbackAutomatic          FeedbackType = "AUTOMATIC"
	FeedbackAutomaticAdapted   FeedbackType = "AUTOMATIC_ADAPTED"
	FeedbackManual             FeedbackType = "MANUAL"
	FeedbackManualUnreferenced FeedbackType = "MANUAL_UNREFERENCED"
)

// Participation is a student's attempt at an exercise. Results are kept
// newest first; Results[0] is the latest result.
type Participation struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	ExerciseID         uint       `json:"exercise_id" gorm:"not null;index"`
	StudentID          *uint      `json:"student_id" gorm:"index"`
	RepositoryURL      string     `json:"repository_url" gorm:"size:500"`
	InitializationDate *time.Time `json:"initialization_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Exercise *Exercise `json:"exercise,omitempty" gorm:"foreignKey:ExerciseID"`
	Student  *User     `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Results  []Result  `json:"results,omitempty" gorm:"foreignKey:ParticipationID"`
}

func (Participation) TableName() string {
	return "participations"
}

// LatestResult returns Results[0] or nil. It never re-sorts.
func (p *Participation) LatestResult() *Result {
	if p == nil || len(p.Results) == 0 {
		return nil
	}
	return &p.Results[0]
}

type Result struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ParticipationID uint           `json:"participation_id" gorm:"not null;index"`
	SubmissionID    *uint          `json:"submission_id" gorm:"index"`
	CompletionDate  *time.Time     `json:"completion_date" gorm:"index"`
	AssessmentType  AssessmentType `json:"assessment_type" gorm:"size:20"`
	Score           float64        `json:"score"`
	Successful      *bool          `json:"successful"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Submission *Submission `json:"submission,omitempty" gorm:"foreignKey:SubmissionID"`
	Feedbacks  []Feedback  `json:"feedbacks,omitempty" gorm:"foreignKey:ResultID"`
}

func (Result) TableName() string {
	return "results"
}

type Submission struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ParticipationID uint           `json:"participation_id" gorm:"not null;index"`
	Type            SubmissionType `json:"type" gorm:"size:20"`
	Submitted       bool           `json:"submitted" gorm:"default:false"`
	SubmissionDate  *time.Time     `json:"submission_date"`
	CommitHash      *string        `json:"commit_hash" gorm:"size:64"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Feedback is the outcome of one named check. Text holds the test name for
// automatic feedback; Positive is nil when the test was not executed.
type Feedback struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	ResultID   uint         `json:"result_id" gorm:"not null;index"`
	Text       string       `json:"text" gorm:"size:500"`
	DetailText *string      `json:"detail_text" gorm:"type:text"`
	Reference  *string      `json:"reference" gorm:"size:2000"`
	Type       FeedbackType `json:"type" gorm:"size:30"`
	Positive   *bool        `json:"positive"`
	Credits    float64      `json:"credits"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
