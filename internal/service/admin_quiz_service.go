package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminQuizService creates quizzes. Quizzes may be built up incrementally, so the 4/1/10 rules
// are not enforced here; authors check them through QuizValidationService.
type AdminQuizService interface {
	CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.QuizDTO, error)
}

type adminQuizService struct {
	quizRepo   repository.QuizRepository
	courseRepo repository.CourseRepository
}

// NewAdminQuizService creates a new AdminQuizService.
func NewAdminQuizService(quizRepo repository.QuizRepository, courseRepo repository.CourseRepository) AdminQuizService {
	return &adminQuizService{quizRepo: quizRepo, courseRepo: courseRepo}
}

func (s *adminQuizService) CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.QuizDTO, error) {
	if req.CourseID != nil {
		if _, err := s.courseRepo.FindByID(ctx, *req.CourseID); err != nil {
			return nil, lookupError(err, "course %d", *req.CourseID)
		}
	}

	quiz := model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    req.CourseID,
	}
	positions := make(map[int]bool, len(req.Questions))
	for i, qReq := range req.Questions {
		pos := qReq.Position
		if pos == 0 {
			pos = i + 1
		}
		if positions[pos] {
			return nil, apperror.BadRequest("duplicate position %d in questions", pos)
		}
		positions[pos] = true
		quiz.Questions = append(quiz.Questions, newQuestionModel(qReq, pos))
	}

	if err := s.quizRepo.Create(ctx, &quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create quiz")
		return nil, apperror.Internal(err, "failed to create quiz")
	}
	log.Info().Uint("quizID", quiz.ID).Int("questions", len(quiz.Questions)).Msg("Quiz created")

	var resp dto.QuizDTO
	if err := copier.Copy(&resp, &quiz); err != nil {
		return nil, apperror.Internal(err, "error preparing quiz response")
	}
	return &resp, nil
}

func newQuestionModel(req dto.CreateQuestionRequest, position int) model.Question {
	q := model.Question{Content: req.Content, Position: position}
	for _, a := range req.Answers {
		q.Answers = append(q.Answers, model.Answer{Content: a.Content, IsCorrect: a.IsCorrect})
	}
	return q
}
