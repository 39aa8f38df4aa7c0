package models

import "time"

type Exam struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CourseID    uint       `json:"course_id" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	VisibleDate *time.Time `json:"visible_date"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	TestExam    bool       `json:"test_exam" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Exam) TableName() string {
	return "exams"
}

type StudentExam struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ExamID      uint       `json:"exam_id" gorm:"not null;index"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	StartedDate *time.Time `json:"started_date"`
	Submitted   bool       `json:"submitted" gorm:"default:false"`
	WorkingTime int        `json:"working_time"` // seconds

	Exam *Exam `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
}

func (StudentExam) TableName() string {
	return "student_exams"
}
