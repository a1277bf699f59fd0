package dto

import "time"

// EmployeeAnswerDTO deliberately has no correctness flag.
type EmployeeAnswerDTO struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

type EmployeeQuestionDTO struct {
	ID       uint                `json:"id"`
	Content  string              `json:"content"`
	Position int                 `json:"position"`
	Answers  []EmployeeAnswerDTO `json:"answers"`
}

// EmployeeQuizDTO is the quiz as shown to an employee taking it.
type EmployeeQuizDTO struct {
	ID          uint                  `json:"id"`
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	CourseID    *uint                 `json:"courseId,omitempty"`
	Questions   []EmployeeQuestionDTO `json:"questions"`
}

// QuizSummaryDTO is used for listing quizzes available to an employee.
type QuizSummaryDTO struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	CourseID      *uint      `json:"courseId,omitempty"`
	QuestionCount int        `json:"questionCount"`
	IsReady       bool       `json:"isReady"`
	Submitted     bool       `json:"submitted"`
	Score         *float64   `json:"score,omitempty"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
