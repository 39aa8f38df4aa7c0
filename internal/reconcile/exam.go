package reconcile

import (
	"sort"
	"time"

	"github.com/SAP-F-2025/participation-service/internal/models"
)

// ExamVisible reports whether students may see the exam at now.
func ExamVisible(exam *models.Exam, now time.Time) bool {
	if exam == nil || exam.VisibleDate == nil {
		return false
	}
	return exam.VisibleDate.Before(now)
}

func IsTestExam(exam *models.Exam) bool {
	return exam != nil && exam.TestExam
}

// StudentExamsForExam keeps the started student exams of examID, newest id first.
func StudentExamsForExam(studentExams []models.StudentExam, examID uint) []models.StudentExam {
	filtered := make([]models.StudentExam, 0)
	for _, studentExam := range studentExams {
		if studentExam.Exam == nil || studentExam.Exam.ID == 0 || studentExam.StartedDate == nil {
			continue
		}
		if studentExam.Exam.ID == examID {
			filtered = append(filtered, studentExam)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ID > filtered[j].ID
	})
	return filtered
}
