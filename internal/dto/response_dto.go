package dto

import "time"

// QuizSubmissionResultDTO is returned after a successful submission and by the result endpoint.
type QuizSubmissionResultDTO struct {
	QuizID         uint      `json:"quizId"`
	QuizTitle      string    `json:"quizTitle"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

type AnswerRecordDTO struct {
	QuestionID      uint   `json:"questionId"`
	QuestionContent string `json:"questionContent"`
	ResponseID      uint   `json:"responseId"`
	ResponseContent string `json:"responseContent"`
	IsCorrect       bool   `json:"isCorrect"`
}

// QuizSubmissionDetailDTO adds the stored per-question records to the result.
type QuizSubmissionDetailDTO struct {
	QuizSubmissionResultDTO
	Records []AnswerRecordDTO `json:"records"`
}

// SubmissionSummaryDTO is one row of a quiz's submission list.
type SubmissionSummaryDTO struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	QuizID       uint      `json:"quizId"`
	Score        float64   `json:"score"`
	CorrectCount int       `json:"correctCount"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// FeedbackDTO carries the generated study feedback for a submission.
type FeedbackDTO struct {
	QuizID   uint    `json:"quizId"`
	Score    float64 `json:"score"`
	Missed   int     `json:"missed"`
	Feedback string  `json:"feedback"`
}

// ValidationResultDTO is the diagnostic result of the validate endpoints. Errors is never null.
type ValidationResultDTO struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ConflictResponse is returned with 409 when the user already submitted the quiz.
type ConflictResponse struct {
	Message     string     `json:"message"`
	Score       *float64   `json:"score,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}
