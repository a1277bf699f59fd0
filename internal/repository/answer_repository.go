package repository

import (
	"context"

	"github.com/lshigami/learnhub/internal/model"
	"gorm.io/gorm"
)

// AnswerRepository defines the interface for answer data operations.
type AnswerRepository interface {
	Create(ctx context.Context, answer *model.Answer) error
	FindByID(ctx context.Context, id uint) (*model.Answer, error)
	Update(ctx context.Context, answer *model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) FindByID(ctx context.Context, id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *model.Answer) error {
	// Save writes every column, including a flipped IsCorrect back to false.
	return r.db.WithContext(ctx).Save(answer).Error
}
