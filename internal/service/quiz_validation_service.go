package service

import (
	"context"

	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/quizrules"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuizValidationService reports the structural state of quizzes and questions to authors.
type QuizValidationService interface {
	ValidateQuiz(ctx context.Context, quizID uint) (*dto.ValidationResultDTO, error)
	ValidateQuestion(ctx context.Context, questionID uint) (*dto.ValidationResultDTO, error)
}

type quizValidationService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

// NewQuizValidationService creates a new QuizValidationService.
func NewQuizValidationService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository) QuizValidationService {
	return &quizValidationService{quizRepo: quizRepo, questionRepo: questionRepo}
}

func (s *quizValidationService) ValidateQuiz(ctx context.Context, quizID uint) (*dto.ValidationResultDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		return nil, lookupError(err, "quiz %d", quizID)
	}
	violations := quizrules.QuizViolations(*quiz)
	log.Debug().Uint("quizID", quizID).Int("violations", len(violations)).Msg("Quiz validated")
	return newValidationResult(violations), nil
}

func (s *quizValidationService) ValidateQuestion(ctx context.Context, questionID uint) (*dto.ValidationResultDTO, error) {
	question, err := s.questionRepo.FindByIDWithAnswers(ctx, questionID)
	if err != nil {
		return nil, lookupError(err, "question %d", questionID)
	}
	violations := quizrules.QuestionViolations(*question)
	for i, v := range violations {
		violations[i] = "question " + v
	}
	return newValidationResult(violations), nil
}

func newValidationResult(violations []string) *dto.ValidationResultDTO {
	if violations == nil {
		violations = []string{}
	}
	return &dto.ValidationResultDTO{IsValid: len(violations) == 0, Errors: violations}
}
