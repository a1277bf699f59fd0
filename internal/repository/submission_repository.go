package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/learnhub/internal/model"
	"gorm.io/gorm"
)

// SubmissionRepository defines the interface for quiz submission data operations.
type SubmissionRepository interface {
	// Create writes the submission and its answer records in one transaction. It returns
	// ErrDuplicateSubmission when the user already has a submission for the quiz.
	Create(ctx context.Context, submission *model.QuizSubmission) error
	FindByUserAndQuiz(ctx context.Context, userID, quizID uint) (*model.QuizSubmission, error)
	FindByUserAndQuizWithRecords(ctx context.Context, userID, quizID uint) (*model.QuizSubmission, error)
	FindAllByUser(ctx context.Context, userID uint) ([]model.QuizSubmission, error)
	FindAllByQuiz(ctx context.Context, quizID uint) ([]model.QuizSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.QuizSubmission) error {
	records := submission.Records
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Quiz", "Records").Create(submission).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateSubmission
			}
			return fmt.Errorf("failed to create quiz submission: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		for i := range records {
			records[i].SubmissionID = submission.ID
		}
		if err := tx.Omit("Question", "Answer").Create(&records).Error; err != nil {
			return fmt.Errorf("failed to create answer records: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	submission.Records = records
	return nil
}

func (r *submissionRepository) FindByUserAndQuiz(ctx context.Context, userID, quizID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindByUserAndQuizWithRecords also loads each record's question (with its answers) and the chosen
// answer, soft-deleted ones included, so feedback can still describe them.
func (r *submissionRepository) FindByUserAndQuizWithRecords(ctx context.Context, userID, quizID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Preload("Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_answer_records.id ASC")
		}).
		Preload("Records.Question", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("Records.Question.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Order("answers.id ASC")
		}).
		Preload("Records.Answer", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindAllByUser(ctx context.Context, userID uint) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) FindAllByQuiz(ctx context.Context, quizID uint) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}
