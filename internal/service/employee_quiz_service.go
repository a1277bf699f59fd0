package service

import (
	"context"

	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/quizrules"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// EmployeeQuizService defines the interface for browsing quizzes as an employee.
type EmployeeQuizService interface {
	ListMyQuizzes(ctx context.Context, userID uint) ([]dto.QuizSummaryDTO, error)
	GetQuizForEmployee(ctx context.Context, userID, quizID uint) (*dto.EmployeeQuizDTO, error)
}

type employeeQuizService struct {
	quizRepo       repository.QuizRepository
	enrollmentRepo repository.EnrollmentRepository
	submissionRepo repository.SubmissionRepository
}

// NewEmployeeQuizService creates a new EmployeeQuizService.
func NewEmployeeQuizService(
	quizRepo repository.QuizRepository,
	enrollmentRepo repository.EnrollmentRepository,
	submissionRepo repository.SubmissionRepository,
) EmployeeQuizService {
	return &employeeQuizService{
		quizRepo:       quizRepo,
		enrollmentRepo: enrollmentRepo,
		submissionRepo: submissionRepo,
	}
}

// ListMyQuizzes returns the quizzes of every course the user is actively enrolled in, together
// with the user's score where a submission exists.
func (s *employeeQuizService) ListMyQuizzes(ctx context.Context, userID uint) ([]dto.QuizSummaryDTO, error) {
	courseIDs, err := s.enrollmentRepo.ActiveCourseIDs(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to get active enrollments")
		return nil, apperror.Internal(err, "failed to load enrollments")
	}
	quizzes, err := s.quizRepo.FindAllByCourseIDs(ctx, courseIDs)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to get quizzes from repository")
		return nil, apperror.Internal(err, "failed to load quizzes")
	}
	subs, err := s.submissionRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err, "failed to load submissions")
	}
	byQuiz := make(map[uint]model.QuizSubmission, len(subs))
	for _, sub := range subs {
		byQuiz[sub.QuizID] = sub
	}

	dtos := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, q := range quizzes {
		summary := dto.QuizSummaryDTO{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			CourseID:      q.CourseID,
			QuestionCount: len(q.Questions),
			IsReady:       quizrules.QuizValid(q),
			CreatedAt:     q.CreatedAt,
		}
		if sub, ok := byQuiz[q.ID]; ok {
			score, at := sub.Score, sub.SubmittedAt
			summary.Submitted = true
			summary.Score = &score
			summary.SubmittedAt = &at
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

// GetQuizForEmployee returns the quiz for answering; correctness flags are not exposed.
func (s *employeeQuizService) GetQuizForEmployee(ctx context.Context, userID, quizID uint) (*dto.EmployeeQuizDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		return nil, lookupError(err, "quiz %d", quizID)
	}
	if err := checkEnrollment(ctx, s.enrollmentRepo, userID, quiz); err != nil {
		return nil, err
	}

	resp := dto.EmployeeQuizDTO{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CourseID:    quiz.CourseID,
		Questions:   make([]dto.EmployeeQuestionDTO, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		qd := dto.EmployeeQuestionDTO{
			ID:       q.ID,
			Content:  q.Content,
			Position: q.Position,
			Answers:  make([]dto.EmployeeAnswerDTO, 0, len(q.Answers)),
		}
		for _, a := range q.Answers {
			qd.Answers = append(qd.Answers, dto.EmployeeAnswerDTO{ID: a.ID, Content: a.Content})
		}
		resp.Questions = append(resp.Questions, qd)
	}
	return &resp, nil
}
