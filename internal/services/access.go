package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
)

// participationAccess decides who may read a participation: its student and
// the tutors and instructors of the exercise's course.
type participationAccess struct {
	courses repositories.CourseRepository
}

func (a participationAccess) check(ctx context.Context, participation *models.Participation, userID uint, action string) error {
	if participation.StudentID != nil && *participation.StudentID == userID {
		return nil
	}
	if participation.Exercise != nil && participation.Exercise.CourseID != nil {
		role, err := a.courses.GetMemberRole(ctx, *participation.Exercise.CourseID, userID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to check course membership: %w", err)
		}
		if err == nil && (role == models.RoleTutor || role == models.RoleInstructor) {
			return nil
		}
	}
	return NewPermissionError(userID, participation.ID, "participation", action, "not owner or course staff")
}

// requireCourseMember accepts any role in the course
func requireCourseMember(ctx context.Context, courses repositories.CourseRepository, courseID, userID uint) error {
	if _, err := courses.GetMemberRole(ctx, courseID, userID); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: user %d, course %d", ErrNotCourseMember, userID, courseID)
		}
		return fmt.Errorf("failed to check course membership: %w", err)
	}
	return nil
}
