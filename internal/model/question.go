package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	QuizID    uint           `json:"quiz_id" gorm:"not null;index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Position  int            `json:"position" gorm:"not null;default:0"`
	Answers   []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
