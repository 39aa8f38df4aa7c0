package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Login string `json:"login" gorm:"uniqueIndex;not null;size:50"`
	Name  string `json:"name" gorm:"size:100"`
	Email string `json:"email" gorm:"size:255"`

	// Profile info
	ImageURL *string `json:"image_url" gorm:"size:500"`
	LangKey  string  `json:"lang_key" gorm:"default:en;size:10"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the projection returned by user searches.
type UserSummary struct {
	ID    uint   `json:"id"`
	Login string `json:"login"`
}

type Course struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" gorm:"not null;size:255"`
	ShortName string `json:"short_name" gorm:"uniqueIndex;size:50"`

	StudentGroupName string `json:"student_group_name" gorm:"size:100"`
	TutorGroupName   string `json:"tutor_group_name" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Exams []Exam `json:"exams,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseRole string

const (
	RoleStudent    CourseRole = "STUDENT"
	RoleTutor      CourseRole = "TUTOR"
	RoleInstructor CourseRole = "INSTRUCTOR"
)

// CourseMember links a user to a course; user searches are scoped by it.
type CourseMember struct {
	CourseID uint       `json:"course_id" gorm:"primaryKey"`
	UserID   uint       `json:"user_id" gorm:"primaryKey"`
	Role     CourseRole `json:"role" gorm:"size:20;default:STUDENT"`
}

func (CourseMember) TableName() string {
	return "course_members"
}
