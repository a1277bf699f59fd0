package service

import (
	"context"
	"strings"
	"testing"

	"github.com/lshigami/learnhub/internal/apperror"
)

func newValidationFixture(t *testing.T) (QuizValidationService, *fakeQuizRepo) {
	t.Helper()
	quizzes := newFakeQuizRepo()
	return NewQuizValidationService(quizzes, &fakeQuestionRepo{quizzes: quizzes}), quizzes
}

func TestValidateQuiz(t *testing.T) {
	svc, quizzes := newValidationFixture(t)
	ctx := context.Background()

	valid := buildQuiz(1, testCourse, 10)
	broken := buildQuiz(2, testCourse, 9)
	broken.Questions[2].Answers = broken.Questions[2].Answers[:3]
	quizzes.quizzes[1] = valid
	quizzes.quizzes[2] = broken

	res, err := svc.ValidateQuiz(ctx, 1)
	if err != nil {
		t.Fatalf("ValidateQuiz: %v", err)
	}
	if !res.IsValid || res.Errors == nil || len(res.Errors) != 0 {
		t.Errorf("expected valid with empty errors, got %+v", res)
	}

	res, err = svc.ValidateQuiz(ctx, 2)
	if err != nil {
		t.Fatalf("ValidateQuiz: %v", err)
	}
	if res.IsValid {
		t.Fatal("expected invalid quiz")
	}
	joined := strings.Join(res.Errors, "|")
	for _, want := range []string{"exactly 10 questions, found 9", "question 3 must have exactly 4 answers, found 3"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, res.Errors)
		}
	}

	_, err = svc.ValidateQuiz(ctx, 404)
	expectKind(t, err, apperror.KindNotFound)
}

func TestValidateQuestion(t *testing.T) {
	svc, quizzes := newValidationFixture(t)
	ctx := context.Background()

	quiz := buildQuiz(1, testCourse, 2)
	quiz.Questions[1].Answers[2].IsCorrect = true
	quizzes.quizzes[1] = quiz

	res, err := svc.ValidateQuestion(ctx, quiz.Questions[0].ID)
	if err != nil || !res.IsValid {
		t.Fatalf("expected valid question, got %+v (%v)", res, err)
	}

	res, err = svc.ValidateQuestion(ctx, quiz.Questions[1].ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.IsValid || len(res.Errors) != 1 || res.Errors[0] != "question must have exactly 1 correct answer, found 2" {
		t.Errorf("unexpected result %+v", res)
	}

	_, err = svc.ValidateQuestion(ctx, 1)
	expectKind(t, err, apperror.KindNotFound)
}
