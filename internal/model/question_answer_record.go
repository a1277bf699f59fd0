package model

// QuestionAnswerRecord stores the answer a user picked for one question. IsCorrect is copied from
// the answer at submission time and does not follow later edits of the answer.
type QuestionAnswerRecord struct {
	ID           uint     `gorm:"primarykey" json:"id"`
	SubmissionID uint     `json:"submission_id" gorm:"not null;index"`
	QuestionID   uint     `json:"question_id" gorm:"not null"`
	Question     Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerID     uint     `json:"answer_id" gorm:"not null"`
	Answer       Answer   `json:"answer,omitempty" gorm:"foreignKey:AnswerID"`
	IsCorrect    bool     `json:"is_correct" gorm:"not null"`
}
