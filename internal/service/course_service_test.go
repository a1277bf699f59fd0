package service

import (
	"context"
	"testing"

	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/model"
)

func newCourseFixture() (CourseService, *fakeEnrollmentRepo) {
	enrollments := newFakeEnrollmentRepo()
	svc := NewCourseService(
		&fakeCourseRepo{courses: map[uint]*model.Course{}},
		&fakeUserRepo{users: map[uint]*model.User{}},
		enrollments,
	)
	return svc, enrollments
}

func TestCourseService_CoursesAndUsers(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, dto.CreateCourseRequest{Title: "Compliance 101"})
	if err != nil || course.ID == 0 || course.Title != "Compliance 101" {
		t.Fatalf("CreateCourse: %+v (%v)", course, err)
	}
	courses, err := svc.ListCourses(ctx)
	if err != nil || len(courses) != 1 {
		t.Fatalf("ListCourses: %v (%v)", courses, err)
	}

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{Email: "dana@example.com", FullName: "Dana"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != model.RoleEmployee {
		t.Errorf("expected default role employee, got %q", user.Role)
	}
	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Email: "dana@example.com", FullName: "Dana again"})
	expectKind(t, err, apperror.KindConflict)
}

func TestCourseService_Enrollment(t *testing.T) {
	svc, enrollments := newCourseFixture()
	ctx := context.Background()
	course, _ := svc.CreateCourse(ctx, dto.CreateCourseRequest{Title: "Onboarding"})
	user, _ := svc.CreateUser(ctx, dto.CreateUserRequest{Email: "eli@example.com", FullName: "Eli"})

	enrollment, err := svc.EnrollUser(ctx, course.ID, user.ID)
	if err != nil {
		t.Fatalf("EnrollUser: %v", err)
	}
	if enrollment.Status != model.EnrollmentActive {
		t.Errorf("unexpected status %q", enrollment.Status)
	}
	if ok, _ := enrollments.HasActiveEnrollment(ctx, user.ID, course.ID); !ok {
		t.Error("expected active enrollment")
	}

	_, err = svc.EnrollUser(ctx, 404, user.ID)
	expectKind(t, err, apperror.KindNotFound)
	_, err = svc.EnrollUser(ctx, course.ID, 404)
	expectKind(t, err, apperror.KindNotFound)

	if err := svc.RevokeEnrollment(ctx, course.ID, user.ID); err != nil {
		t.Fatalf("RevokeEnrollment: %v", err)
	}
	if ok, _ := enrollments.HasActiveEnrollment(ctx, user.ID, course.ID); ok {
		t.Error("expected enrollment to be revoked")
	}
	expectKind(t, svc.RevokeEnrollment(ctx, course.ID, user.ID), apperror.KindNotFound)
}
