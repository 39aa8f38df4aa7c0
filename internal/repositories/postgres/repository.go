package postgres

import (
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"gorm.io/gorm"
)

// NewRepository wires every PostgreSQL repository against one connection
func NewRepository(db *gorm.DB) *repositories.Repository {
	return &repositories.Repository{
		Participations: NewParticipationPostgreSQL(db),
		Results:        NewResultPostgreSQL(db),
		Exercises:      NewExercisePostgreSQL(db),
		Hints:          NewExerciseHintPostgreSQL(db),
		Users:          NewUserPostgreSQL(db),
		Courses:        NewCoursePostgreSQL(db),
		Conversations:  NewConversationPostgreSQL(db),
		Exams:          NewExamPostgreSQL(db),
	}
}
