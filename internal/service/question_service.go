package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuestionService defines the interface for editing questions and answers.
type QuestionService interface {
	AddQuestion(ctx context.Context, quizID uint, req dto.CreateQuestionRequest) (*dto.QuestionDTO, error)
	DeleteQuestion(ctx context.Context, questionID uint) error
	AddAnswer(ctx context.Context, questionID uint, req dto.CreateAnswerRequest) (*dto.AnswerDTO, error)
	UpdateAnswer(ctx context.Context, answerID uint, req dto.UpdateAnswerRequest) (*dto.AnswerDTO, error)
}

type questionService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
) QuestionService {
	return &questionService{quizRepo: quizRepo, questionRepo: questionRepo, answerRepo: answerRepo}
}

func (s *questionService) AddQuestion(ctx context.Context, quizID uint, req dto.CreateQuestionRequest) (*dto.QuestionDTO, error) {
	if _, err := s.quizRepo.FindByID(ctx, quizID); err != nil {
		return nil, lookupError(err, "quiz %d", quizID)
	}
	pos := req.Position
	if pos == 0 {
		next, err := s.questionRepo.NextPosition(ctx, quizID)
		if err != nil {
			return nil, apperror.Internal(err, "failed to compute question position")
		}
		pos = next
	}

	question := newQuestionModel(req, pos)
	question.QuizID = quizID
	if err := s.questionRepo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to create question")
		return nil, apperror.Internal(err, "failed to create question")
	}

	var resp dto.QuestionDTO
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, apperror.Internal(err, "error preparing question response")
	}
	return &resp, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, questionID uint) error {
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("question %d not found", questionID)
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to delete question")
		return apperror.Internal(err, "failed to delete question")
	}
	log.Info().Uint("questionID", questionID).Msg("Question deleted")
	return nil
}

func (s *questionService) AddAnswer(ctx context.Context, questionID uint, req dto.CreateAnswerRequest) (*dto.AnswerDTO, error) {
	if _, err := s.questionRepo.FindByID(ctx, questionID); err != nil {
		return nil, lookupError(err, "question %d", questionID)
	}
	answer := model.Answer{QuestionID: questionID, Content: req.Content, IsCorrect: req.IsCorrect}
	if err := s.answerRepo.Create(ctx, &answer); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to create answer")
		return nil, apperror.Internal(err, "failed to create answer")
	}
	return toAnswerDTO(&answer), nil
}

func (s *questionService) UpdateAnswer(ctx context.Context, answerID uint, req dto.UpdateAnswerRequest) (*dto.AnswerDTO, error) {
	if req.Content == nil && req.IsCorrect == nil {
		return nil, apperror.BadRequest("nothing to update")
	}
	answer, err := s.answerRepo.FindByID(ctx, answerID)
	if err != nil {
		return nil, lookupError(err, "answer %d", answerID)
	}
	if req.Content != nil {
		answer.Content = *req.Content
	}
	if req.IsCorrect != nil {
		answer.IsCorrect = *req.IsCorrect
	}
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		log.Error().Err(err).Uint("answerID", answerID).Msg("Failed to update answer")
		return nil, apperror.Internal(err, "failed to update answer")
	}
	return toAnswerDTO(answer), nil
}

func toAnswerDTO(a *model.Answer) *dto.AnswerDTO {
	return &dto.AnswerDTO{ID: a.ID, QuestionID: a.QuestionID, Content: a.Content, IsCorrect: a.IsCorrect}
}
