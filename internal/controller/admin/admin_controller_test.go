package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
)

type fakeAdminQuizService struct {
	got dto.CreateQuizRequest
	err error
}

func (f *fakeAdminQuizService) CreateQuiz(_ context.Context, req dto.CreateQuizRequest) (*dto.QuizDTO, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.QuizDTO{ID: 1, Title: req.Title}, nil
}

type fakeQuestionService struct {
	deleted  uint
	updateID uint
	err      error
}

func (f *fakeQuestionService) AddQuestion(_ context.Context, quizID uint, req dto.CreateQuestionRequest) (*dto.QuestionDTO, error) {
	return &dto.QuestionDTO{ID: 3, Content: req.Content}, f.err
}

func (f *fakeQuestionService) DeleteQuestion(_ context.Context, id uint) error {
	f.deleted = id
	return f.err
}

func (f *fakeQuestionService) AddAnswer(context.Context, uint, dto.CreateAnswerRequest) (*dto.AnswerDTO, error) {
	return &dto.AnswerDTO{ID: 4}, f.err
}

func (f *fakeQuestionService) UpdateAnswer(_ context.Context, id uint, _ dto.UpdateAnswerRequest) (*dto.AnswerDTO, error) {
	f.updateID = id
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AnswerDTO{ID: id}, nil
}

type fakeValidationService struct {
	res *dto.ValidationResultDTO
	err error
}

func (f *fakeValidationService) ValidateQuiz(context.Context, uint) (*dto.ValidationResultDTO, error) {
	return f.res, f.err
}

func (f *fakeValidationService) ValidateQuestion(context.Context, uint) (*dto.ValidationResultDTO, error) {
	return f.res, f.err
}

type fakeSubmissionService struct{}

func (fakeSubmissionService) SubmitQuiz(context.Context, uint, uint, dto.SubmitQuizRequest) (*dto.QuizSubmissionResultDTO, error) {
	return nil, nil
}

func (fakeSubmissionService) GetMySubmission(context.Context, uint, uint) (*dto.QuizSubmissionDetailDTO, error) {
	return nil, nil
}

func (fakeSubmissionService) ListQuizSubmissions(_ context.Context, quizID uint) ([]dto.SubmissionSummaryDTO, error) {
	return []dto.SubmissionSummaryDTO{{ID: 1, QuizID: quizID, Score: 100}}, nil
}

type fakeCourseService struct {
	revokeErr error
	userErr   error
}

func (f *fakeCourseService) CreateCourse(_ context.Context, req dto.CreateCourseRequest) (*dto.CourseDTO, error) {
	return &dto.CourseDTO{ID: 1, Title: req.Title}, nil
}

func (f *fakeCourseService) ListCourses(context.Context) ([]dto.CourseDTO, error) {
	return []dto.CourseDTO{{ID: 1}}, nil
}

func (f *fakeCourseService) CreateUser(_ context.Context, req dto.CreateUserRequest) (*dto.UserDTO, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return &dto.UserDTO{ID: 2, Email: req.Email}, nil
}

func (f *fakeCourseService) EnrollUser(_ context.Context, courseID, userID uint) (*dto.EnrollmentDTO, error) {
	return &dto.EnrollmentDTO{CourseID: courseID, UserID: userID}, nil
}

func (f *fakeCourseService) RevokeEnrollment(context.Context, uint, uint) error {
	return f.revokeErr
}

func newAdminRouter(qc *AdminQuizController, cc *AdminCourseController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/admin")
	qc.RegisterRoutes(g)
	cc.RegisterRoutes(g)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateQuiz(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeValidationService
		wantStatus int
		wantValid  bool
	}{
		{"valid", &fakeValidationService{res: &dto.ValidationResultDTO{IsValid: true, Errors: []string{}}}, http.StatusOK, true},
		{"invalid", &fakeValidationService{res: &dto.ValidationResultDTO{Errors: []string{"quiz must have exactly 10 questions, has 9"}}}, http.StatusOK, false},
		{"missing", &fakeValidationService{err: apperror.NotFound("quiz 9 not found")}, http.StatusNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qc := NewAdminQuizController(&fakeAdminQuizService{}, &fakeQuestionService{}, tt.svc, fakeSubmissionService{})
			r := newAdminRouter(qc, NewAdminCourseController(&fakeCourseService{}))

			w := do(r, http.MethodPost, "/admin/quizzes/9/validate", "")
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var res map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res["isValid"] != tt.wantValid {
				t.Errorf("isValid = %v, want %v", res["isValid"], tt.wantValid)
			}
			if _, ok := res["errors"].([]any); !ok {
				t.Errorf("errors should be an array, got %v", res["errors"])
			}
		})
	}
}

func TestCreateQuizBinding(t *testing.T) {
	svc := &fakeAdminQuizService{}
	qc := NewAdminQuizController(svc, &fakeQuestionService{}, &fakeValidationService{}, fakeSubmissionService{})
	r := newAdminRouter(qc, NewAdminCourseController(&fakeCourseService{}))

	if w := do(r, http.MethodPost, "/admin/quizzes", `{"description":"no title"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing title: status = %d, want 400", w.Code)
	}
	w := do(r, http.MethodPost, "/admin/quizzes", `{"title":"Onboarding"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	if svc.got.Title != "Onboarding" {
		t.Errorf("title = %q", svc.got.Title)
	}
}

func TestDeleteQuestion(t *testing.T) {
	qs := &fakeQuestionService{}
	qc := NewAdminQuizController(&fakeAdminQuizService{}, qs, &fakeValidationService{}, fakeSubmissionService{})
	r := newAdminRouter(qc, NewAdminCourseController(&fakeCourseService{}))

	w := do(r, http.MethodDelete, "/admin/questions/12", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if qs.deleted != 12 {
		t.Errorf("deleted = %d, want 12", qs.deleted)
	}
}

func TestUpdateAnswerEmptyBody(t *testing.T) {
	qs := &fakeQuestionService{err: apperror.BadRequest("nothing to update")}
	qc := NewAdminQuizController(&fakeAdminQuizService{}, qs, &fakeValidationService{}, fakeSubmissionService{})
	r := newAdminRouter(qc, NewAdminCourseController(&fakeCourseService{}))

	w := do(r, http.MethodPatch, "/admin/answers/4", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if qs.updateID != 4 {
		t.Errorf("updateID = %d, want 4", qs.updateID)
	}
}

func TestListSubmissions(t *testing.T) {
	qc := NewAdminQuizController(&fakeAdminQuizService{}, &fakeQuestionService{}, &fakeValidationService{}, fakeSubmissionService{})
	r := newAdminRouter(qc, NewAdminCourseController(&fakeCourseService{}))

	w := do(r, http.MethodGet, "/admin/quizzes/3/submissions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got []dto.SubmissionSummaryDTO
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].QuizID != 3 {
		t.Errorf("submissions = %+v", got)
	}
}

func TestCourseRoutes(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeCourseService
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"create user", &fakeCourseService{}, http.MethodPost, "/admin/users", `{"email":"a@b.co","fullName":"Ann"}`, http.StatusCreated},
		{"create user bad email", &fakeCourseService{}, http.MethodPost, "/admin/users", `{"email":"nope","fullName":"Ann"}`, http.StatusBadRequest},
		{"create user duplicate", &fakeCourseService{userErr: apperror.Conflict(nil, "email already registered")}, http.MethodPost, "/admin/users", `{"email":"a@b.co","fullName":"Ann"}`, http.StatusConflict},
		{"create course", &fakeCourseService{}, http.MethodPost, "/admin/courses", `{"title":"Go"}`, http.StatusCreated},
		{"list courses", &fakeCourseService{}, http.MethodGet, "/admin/courses", "", http.StatusOK},
		{"enroll", &fakeCourseService{}, http.MethodPost, "/admin/courses/1/enrollments", `{"userId":5}`, http.StatusCreated},
		{"enroll missing user id", &fakeCourseService{}, http.MethodPost, "/admin/courses/1/enrollments", `{}`, http.StatusBadRequest},
		{"revoke", &fakeCourseService{}, http.MethodDelete, "/admin/courses/1/enrollments/5", "", http.StatusNoContent},
		{"revoke missing", &fakeCourseService{revokeErr: apperror.NotFound("no active enrollment")}, http.MethodDelete, "/admin/courses/1/enrollments/5", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qc := NewAdminQuizController(&fakeAdminQuizService{}, &fakeQuestionService{}, &fakeValidationService{}, fakeSubmissionService{})
			r := newAdminRouter(qc, NewAdminCourseController(tt.svc))
			if w := do(r, tt.method, tt.path, tt.body); w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
