// Package quizrules holds the structural rules a quiz must satisfy before employees can submit it.
// Every function here is pure and works on collections already loaded in memory.
package quizrules

import (
	"fmt"

	"github.com/lshigami/learnhub/internal/model"
)

const (
	RequiredAnswersPerQuestion = 4
	RequiredCorrectAnswers     = 1
	RequiredQuestionsPerQuiz   = 10
)

// CorrectAnswerCount returns how many answers are flagged correct.
func CorrectAnswerCount(answers []model.Answer) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// AnswersValid reports whether an answer set has exactly 4 answers with exactly 1 marked correct.
func AnswersValid(answers []model.Answer) bool {
	return len(answers) == RequiredAnswersPerQuestion && CorrectAnswerCount(answers) == RequiredCorrectAnswers
}

// QuestionValid reports whether a question's answers satisfy AnswersValid.
func QuestionValid(q model.Question) bool {
	return AnswersValid(q.Answers)
}

// QuizValid reports whether a quiz can be submitted: exactly 10 questions, each of them valid.
func QuizValid(quiz model.Quiz) bool {
	if len(quiz.Questions) != RequiredQuestionsPerQuiz {
		return false
	}
	for _, q := range quiz.Questions {
		if !QuestionValid(q) {
			return false
		}
	}
	return true
}

// QuestionViolations lists what is wrong with a question. The messages are phrased to follow a
// subject chosen by the caller, e.g. "question 3 " + msg.
func QuestionViolations(q model.Question) []string {
	var out []string
	if n := len(q.Answers); n != RequiredAnswersPerQuestion {
		out = append(out, fmt.Sprintf("must have exactly %d answers, found %d", RequiredAnswersPerQuestion, n))
	}
	if n := CorrectAnswerCount(q.Answers); n != RequiredCorrectAnswers {
		out = append(out, fmt.Sprintf("must have exactly %d correct answer, found %d", RequiredCorrectAnswers, n))
	}
	return out
}

// QuizViolations lists every structural problem of a quiz. Questions are referred to by their
// 1-based position in the slice, which callers keep ordered.
func QuizViolations(quiz model.Quiz) []string {
	var out []string
	if n := len(quiz.Questions); n != RequiredQuestionsPerQuiz {
		out = append(out, fmt.Sprintf("quiz must have exactly %d questions, found %d", RequiredQuestionsPerQuiz, n))
	}
	for i, q := range quiz.Questions {
		for _, v := range QuestionViolations(q) {
			out = append(out, fmt.Sprintf("question %d %s", i+1, v))
		}
	}
	return out
}
