package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"gorm.io/gorm"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e ExamPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]models.Exam, error) {
	exams := make([]models.Exam, 0)
	if err := e.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("start_date ASC NULLS LAST").
		Order("id ASC").
		Find(&exams).Error; err != nil {
		return nil, fmt.Errorf("failed to list exams for course %d: %w", courseID, err)
	}
	return exams, nil
}

func (e ExamPostgreSQL) GetByID(ctx context.Context, courseID, examID uint) (*models.Exam, error) {
	var exam models.Exam
	if err := e.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		First(&exam, examID).Error; err != nil {
		return nil, fmt.Errorf("failed to get exam %d: %w", examID, err)
	}
	return &exam, nil
}

func (e ExamPostgreSQL) GetStudentExams(ctx context.Context, courseID, userID uint) ([]models.StudentExam, error) {
	studentExams := make([]models.StudentExam, 0)
	if err := e.db.WithContext(ctx).
		Joins("Exam").
		Where(`"Exam".course_id = ?`, courseID).
		Where("student_exams.user_id = ?", userID).
		Find(&studentExams).Error; err != nil {
		return nil, fmt.Errorf("failed to get student exams for user %d: %w", userID, err)
	}
	return studentExams, nil
}

func (e ExamPostgreSQL) AssessUnsubmitted(ctx context.Context, examID uint, now time.Time) (int, error) {
	var affected int64
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exam models.Exam
		if err := tx.First(&exam, examID).Error; err != nil {
			return fmt.Errorf("failed to get exam %d: %w", examID, err)
		}
		if exam.EndDate != nil && exam.EndDate.After(now) {
			return fmt.Errorf("exam %d has not ended yet", examID)
		}

		res := tx.Model(&models.StudentExam{}).
			Where("exam_id = ? AND submitted = ? AND started_date IS NOT NULL", examID, false).
			Update("submitted", true)
		if res.Error != nil {
			return fmt.Errorf("failed to assess unsubmitted exams: %w", res.Error)
		}
		affected = res.RowsAffected
		return nil
	})
	return int(affected), err
}

func (e ExamPostgreSQL) EvaluateQuizExercises(ctx context.Context, examID uint, now time.Time) (int, error) {
	var evaluated int64
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quizIDs := tx.Model(&models.Exercise{}).
			Select("id").
			Where("exam_id = ? AND type = ?", examID, models.ExerciseQuiz)

		if err := tx.Model(&models.Exercise{}).
			Where("exam_id = ? AND type = ?", examID, models.ExerciseQuiz).
			Count(&evaluated).Error; err != nil {
			return fmt.Errorf("failed to count quiz exercises: %w", err)
		}

		participationIDs := tx.Model(&models.Participation{}).
			Select("id").
			Where("exercise_id IN (?)", quizIDs)

		if err := tx.Model(&models.Result{}).
			Where("participation_id IN (?) AND completion_date IS NULL", participationIDs).
			Updates(map[string]interface{}{
				"completion_date": now,
				"assessment_type": models.AssessmentAutomatic,
			}).Error; err != nil {
			return fmt.Errorf("failed to evaluate quiz results: %w", err)
		}
		return nil
	})
	return int(evaluated), err
}
