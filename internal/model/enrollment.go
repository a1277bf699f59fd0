package model

import "time"

const (
	EnrollmentActive  = "active"
	EnrollmentRevoked = "revoked"
)

// Enrollment (affectation) grants a user access to a course and, through it, to the course's quizzes.
type Enrollment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	User       User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course;index"`
	Course     Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Status     string    `json:"status" gorm:"not null;default:'active'"` // "active", "revoked"
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at"`
}
