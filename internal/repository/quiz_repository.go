package repository

import (
	"context"

	"github.com/lshigami/learnhub/internal/model"
	"gorm.io/gorm"
)

// QuizRepository defines the interface for quiz data operations.
type QuizRepository interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id uint) (*model.Quiz, error)
	FindByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error)
	FindAllByCourseIDs(ctx context.Context, courseIDs []uint) ([]model.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	// GORM creates nested Questions and their Answers in the same statement batch.
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindByIDWithQuestions loads the quiz with its questions (by position) and every answer.
func (r *quizRepository) FindByIDWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := withQuestionTree(r.db.WithContext(ctx)).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindAllByCourseIDs(ctx context.Context, courseIDs []uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if len(courseIDs) == 0 {
		return quizzes, nil
	}
	err := withQuestionTree(r.db.WithContext(ctx)).
		Where("course_id IN ?", courseIDs).
		Order("quizzes.created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func withQuestionTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC, questions.id ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id ASC")
		})
}
