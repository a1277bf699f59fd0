package dto

import "time"

// CreateUserRequest registers a user. Role defaults to employee.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin employee"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type CourseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EnrollUserRequest is the body of an enrollment in a course.
type EnrollUserRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type EnrollmentDTO struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"userId"`
	CourseID   uint      `json:"courseId"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

type CreateAnswerRequest struct {
	Content   string `json:"content" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// UpdateAnswerRequest leaves a field untouched when it is omitted.
type UpdateAnswerRequest struct {
	Content   *string `json:"content" binding:"omitempty,min=1"`
	IsCorrect *bool   `json:"isCorrect"`
}

// CreateQuestionRequest adds a question, optionally with its answers. Position defaults to the next free slot.
type CreateQuestionRequest struct {
	Content  string                `json:"content" binding:"required,min=10"`
	Position int                   `json:"position" binding:"omitempty,min=1"`
	Answers  []CreateAnswerRequest `json:"answers" binding:"omitempty,dive"`
}

// CreateQuizRequest creates a quiz, optionally with its questions. Structural rules are checked
// later through the validation endpoints.
type CreateQuizRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description *string                 `json:"description"`
	CourseID    *uint                   `json:"courseId"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"omitempty,dive"`
}

type AnswerDTO struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"questionId"`
	Content    string `json:"content"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionDTO struct {
	ID       uint        `json:"id"`
	QuizID   uint        `json:"quizId"`
	Content  string      `json:"content"`
	Position int         `json:"position"`
	Answers  []AnswerDTO `json:"answers"`
}

// QuizDTO is the admin view of a quiz, correctness flags included.
type QuizDTO struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	CourseID    *uint         `json:"courseId,omitempty"`
	Questions   []QuestionDTO `json:"questions"`
	CreatedAt   time.Time     `json:"createdAt"`
}
