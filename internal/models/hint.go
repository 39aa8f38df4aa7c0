package models

import "time"

type HintType string

const (
	HintText HintType = "TEXT"
	HintCode HintType = "CODE"
)

type ExerciseHint struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExerciseID uint      `json:"exercise_id" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"size:255"`
	Content    string    `json:"content" gorm:"type:text"`
	Type       HintType  `json:"type" gorm:"size:10;default:TEXT"`
	CreatedAt  time.Time `json:"created_at"`

	// Only CODE hints carry solution entries.
	SolutionEntries []SolutionEntry `json:"solution_entries,omitempty" gorm:"many2many:exercise_hint_solution_entries"`
}

func (ExerciseHint) TableName() string {
	return "exercise_hints"
}

type SolutionEntry struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	FilePath     string `json:"file_path" gorm:"size:500"`
	Line         int    `json:"line"`
	Code         string `json:"code" gorm:"type:text"`
	TestCaseName string `json:"test_case_name" gorm:"size:255"`
}

func (SolutionEntry) TableName() string {
	return "solution_entries"
}
