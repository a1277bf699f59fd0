package service

import (
	"fmt"
	"math"

	"github.com/lshigami/learnhub/internal/quizrules"
)

// ScoreService turns a count of correct answers into a 0-100 score. The denominator is always
// the required question count, never the number of accepted entries.
type ScoreService interface {
	Score(correct int) (float64, error)
}

type scoreService struct{}

// NewScoreService creates a new ScoreService.
func NewScoreService() ScoreService {
	return &scoreService{}
}

func (s *scoreService) Score(correct int) (float64, error) {
	if correct < 0 || correct > quizrules.RequiredQuestionsPerQuiz {
		return 0, fmt.Errorf("correct count %d is out of valid range (0-%d)", correct, quizrules.RequiredQuestionsPerQuiz)
	}
	raw := float64(correct) * 100 / float64(quizrules.RequiredQuestionsPerQuiz)
	return math.Round(raw*100) / 100, nil
}
