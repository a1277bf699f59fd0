package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Email       string         `json:"email" gorm:"not null;uniqueIndex"`
	FullName    string         `json:"full_name" gorm:"not null"`
	Role        string         `json:"role" gorm:"not null;default:'employee'"` // "admin", "employee"
	Enrollments []Enrollment   `json:"enrollments,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
