package service

import (
	"context"

	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/repository"
)

// checkEnrollment grants access to a quiz only through an active enrollment in its course.
// A quiz without a course is not reachable by employees.
func checkEnrollment(ctx context.Context, enrollments repository.EnrollmentRepository, userID uint, quiz *model.Quiz) error {
	if quiz.CourseID == nil {
		return apperror.Forbidden("quiz %d is not attached to a course", quiz.ID)
	}
	enrolled, err := enrollments.HasActiveEnrollment(ctx, userID, *quiz.CourseID)
	if err != nil {
		return apperror.Internal(err, "failed to check enrollment")
	}
	if !enrolled {
		return apperror.Forbidden("user %d is not enrolled in the course of quiz %d", userID, quiz.ID)
	}
	return nil
}
