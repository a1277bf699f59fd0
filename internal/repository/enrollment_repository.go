package repository

import (
	"context"
	"errors"

	"github.com/lshigami/learnhub/internal/model"
	"gorm.io/gorm"
)

// EnrollmentRepository defines the interface for enrollment data operations.
type EnrollmentRepository interface {
	HasActiveEnrollment(ctx context.Context, userID, courseID uint) (bool, error)
	ActiveCourseIDs(ctx context.Context, userID uint) ([]uint, error)
	// Enroll creates the enrollment or reactivates a revoked one.
	Enroll(ctx context.Context, userID, courseID uint) (*model.Enrollment, error)
	Revoke(ctx context.Context, userID, courseID uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) HasActiveEnrollment(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.EnrollmentActive).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) ActiveCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, model.EnrollmentActive).
		Order("course_id ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *enrollmentRepository) Enroll(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			enrollment = model.Enrollment{UserID: userID, CourseID: courseID, Status: model.EnrollmentActive}
			return tx.Omit("User", "Course").Create(&enrollment).Error
		}
		if err != nil {
			return err
		}
		if enrollment.Status == model.EnrollmentActive {
			return nil
		}
		enrollment.Status = model.EnrollmentActive
		return tx.Model(&enrollment).Update("status", model.EnrollmentActive).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Revoke(ctx context.Context, userID, courseID uint) error {
	res := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.EnrollmentActive).
		Update("status", model.EnrollmentRevoked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
