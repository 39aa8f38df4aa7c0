package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/participation-service/internal/models"
	"github.com/SAP-F-2025/participation-service/internal/repositories"
	"gorm.io/gorm"
)

const defaultSearchLimit = 25

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

func (u UserPostgreSQL) SearchInCourse(ctx context.Context, courseID uint, query string, limit int) ([]models.UserSummary, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"

	users := make([]models.UserSummary, 0)
	if err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.login").
		Joins("JOIN course_members cm ON cm.user_id = users.id").
		Where("cm.course_id = ?", courseID).
		Where("users.login ILIKE ? OR users.name ILIKE ?", pattern, pattern).
		Order("users.login ASC").
		Limit(limit).
		Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to search users in course %d: %w", courseID, err)
	}
	return users, nil
}

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get course %d: %w", id, err)
	}
	return &course, nil
}

func (c CoursePostgreSQL) GetMemberRole(ctx context.Context, courseID, userID uint) (models.CourseRole, error) {
	var member models.CourseMember
	if err := c.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		First(&member).Error; err != nil {
		return "", fmt.Errorf("failed to get membership of user %d in course %d: %w", userID, courseID, err)
	}
	return member.Role, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
