package model

import "time"

// QuizSubmission is written once per (user, quiz) and never updated or deleted afterwards.
// The composite unique index is what makes concurrent double submissions safe.
type QuizSubmission struct {
	ID           uint                   `gorm:"primarykey" json:"id"`
	UserID       uint                   `json:"user_id" gorm:"not null;uniqueIndex:idx_submission_user_quiz"`
	QuizID       uint                   `json:"quiz_id" gorm:"not null;uniqueIndex:idx_submission_user_quiz;index"`
	Quiz         Quiz                   `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	SubmittedAt  time.Time              `json:"submitted_at" gorm:"not null"`
	Score        float64                `json:"score" gorm:"not null"`
	CorrectCount int                    `json:"correct_count" gorm:"not null"`
	Records      []QuestionAnswerRecord `json:"records,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE;"`
}
