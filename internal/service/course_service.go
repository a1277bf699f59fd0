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

// CourseService manages courses, users and the enrollments that link them.
type CourseService interface {
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*dto.CourseDTO, error)
	ListCourses(ctx context.Context) ([]dto.CourseDTO, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error)
	EnrollUser(ctx context.Context, courseID, userID uint) (*dto.EnrollmentDTO, error)
	RevokeEnrollment(ctx context.Context, courseID, userID uint) error
}

type courseService struct {
	courseRepo     repository.CourseRepository
	userRepo       repository.UserRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	enrollmentRepo repository.EnrollmentRepository,
) CourseService {
	return &courseService{courseRepo: courseRepo, userRepo: userRepo, enrollmentRepo: enrollmentRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*dto.CourseDTO, error) {
	course := model.Course{Title: req.Title, Description: req.Description}
	if err := s.courseRepo.Create(ctx, &course); err != nil {
		log.Error().Err(err).Msg("Failed to create course")
		return nil, apperror.Internal(err, "failed to create course")
	}
	var resp dto.CourseDTO
	if err := copier.Copy(&resp, &course); err != nil {
		return nil, apperror.Internal(err, "error preparing course response")
	}
	return &resp, nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list courses")
		return nil, apperror.Internal(err, "failed to list courses")
	}
	resp := make([]dto.CourseDTO, 0, len(courses))
	if err := copier.Copy(&resp, &courses); err != nil {
		return nil, apperror.Internal(err, "error preparing course list")
	}
	return resp, nil
}

func (s *courseService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error) {
	role := req.Role
	if role == "" {
		role = model.RoleEmployee
	}
	user := model.User{Email: req.Email, FullName: req.FullName, Role: role}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(nil, "a user with email %s already exists", req.Email)
		}
		log.Error().Err(err).Msg("Failed to create user")
		return nil, apperror.Internal(err, "failed to create user")
	}
	var resp dto.UserDTO
	if err := copier.Copy(&resp, &user); err != nil {
		return nil, apperror.Internal(err, "error preparing user response")
	}
	return &resp, nil
}

func (s *courseService) EnrollUser(ctx context.Context, courseID, userID uint) (*dto.EnrollmentDTO, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, lookupError(err, "course %d", courseID)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, lookupError(err, "user %d", userID)
	}
	enrollment, err := s.enrollmentRepo.Enroll(ctx, userID, courseID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("courseID", courseID).Msg("Failed to enroll user")
		return nil, apperror.Internal(err, "failed to enroll user")
	}
	log.Info().Uint("userID", userID).Uint("courseID", courseID).Msg("User enrolled")
	return &dto.EnrollmentDTO{
		ID:         enrollment.ID,
		UserID:     enrollment.UserID,
		CourseID:   enrollment.CourseID,
		Status:     enrollment.Status,
		EnrolledAt: enrollment.EnrolledAt,
	}, nil
}

func (s *courseService) RevokeEnrollment(ctx context.Context, courseID, userID uint) error {
	if err := s.enrollmentRepo.Revoke(ctx, userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("no active enrollment of user %d in course %d", userID, courseID)
		}
		return apperror.Internal(err, "failed to revoke enrollment")
	}
	log.Info().Uint("userID", userID).Uint("courseID", courseID).Msg("Enrollment revoked")
	return nil
}
