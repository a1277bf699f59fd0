package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/learnhub/config"
	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/quizrules"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrFeedbackUnavailable is returned by the generator when no Gemini client is configured.
var ErrFeedbackUnavailable = errors.New("AI feedback is not configured")

// MissedQuestion is a question the user answered wrongly, with the answer they picked and the
// correct one. Correct is empty when the question was edited after the submission and no longer
// names a single correct answer other than the chosen one.
type MissedQuestion struct {
	Question string
	Chosen   string
	Correct  string
}

// StudyFeedbackGenerator defines the interface for producing study feedback text.
type StudyFeedbackGenerator interface {
	StudyFeedback(ctx context.Context, quizTitle string, missed []MissedQuestion, unanswered int) (string, error)
}

// NewGeminiClient returns nil without an API key; the generator built on it then reports
// ErrFeedbackUnavailable.
func NewGeminiClient(cfg *config.Config) (*genai.Client, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Study feedback will be unavailable.")
		return nil, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return client, nil
}

type geminiFeedbackGenerator struct {
	model *genai.GenerativeModel
}

// NewStudyFeedbackGenerator creates a Gemini-backed StudyFeedbackGenerator.
func NewStudyFeedbackGenerator(client *genai.Client, cfg *config.Config) StudyFeedbackGenerator {
	if client == nil {
		return &geminiFeedbackGenerator{}
	}
	m := client.GenerativeModel(cfg.Gemini.Model)
	m.SetTemperature(0.3)
	return &geminiFeedbackGenerator{model: m}
}

func (g *geminiFeedbackGenerator) StudyFeedback(ctx context.Context, quizTitle string, missed []MissedQuestion, unanswered int) (string, error) {
	if g.model == nil {
		return "", ErrFeedbackUnavailable
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildStudyFeedbackPrompt(quizTitle, missed, unanswered)))
	if err != nil {
		log.Error().Err(err).Str("quiz", quizTitle).Msg("Gemini API error during study feedback")
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		log.Warn().Str("quiz", quizTitle).Msg("Gemini returned no text content")
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}

func buildStudyFeedbackPrompt(quizTitle string, missed []MissedQuestion, unanswered int) string {
	var b strings.Builder
	b.WriteString("You are a patient corporate trainer reviewing an employee's multiple-choice quiz.\n")
	fmt.Fprintf(&b, "Quiz: %q\n\n", quizTitle)
	if len(missed) > 0 {
		b.WriteString("The employee answered these questions incorrectly:\n")
		for i, m := range missed {
			correct := m.Correct
			if correct == "" {
				correct = unknownCorrectAnswer
			}
			fmt.Fprintf(&b, "%d. Question: %s\n   Their answer: %s\n   Correct answer: %s\n", i+1, m.Question, m.Chosen, correct)
		}
		b.WriteString("\n")
	}
	if unanswered > 0 {
		fmt.Fprintf(&b, "%d question(s) were left unanswered or could not be matched to the quiz.\n\n", unanswered)
	}
	b.WriteString("For each missed question, explain in one or two sentences why the correct answer is right.\n")
	b.WriteString("Where the correct answer is not available, do not guess it; name the topic to review instead.\n")
	b.WriteString("Finish with a short list of topics the employee should review. Keep the whole answer under 250 words and use plain text.\n")
	return b.String()
}

// FeedbackService defines the interface for study feedback on a submission.
type FeedbackService interface {
	GetSubmissionFeedback(ctx context.Context, userID, quizID uint) (*dto.FeedbackDTO, error)
}

type feedbackService struct {
	submissionRepo repository.SubmissionRepository
	generator      StudyFeedbackGenerator
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(submissionRepo repository.SubmissionRepository, generator StudyFeedbackGenerator) FeedbackService {
	return &feedbackService{submissionRepo: submissionRepo, generator: generator}
}

func (s *feedbackService) GetSubmissionFeedback(ctx context.Context, userID, quizID uint) (*dto.FeedbackDTO, error) {
	sub, err := s.submissionRepo.FindByUserAndQuizWithRecords(ctx, userID, quizID)
	if err != nil {
		return nil, lookupError(err, "submission of quiz %d", quizID)
	}

	missed := missedQuestions(sub.Records)
	unanswered := quizrules.RequiredQuestionsPerQuiz - len(sub.Records)
	if unanswered < 0 {
		unanswered = 0
	}
	resp := &dto.FeedbackDTO{
		QuizID: quizID,
		Score:  sub.Score,
		Missed: quizrules.RequiredQuestionsPerQuiz - sub.CorrectCount,
	}
	if len(missed) == 0 && unanswered == 0 {
		resp.Feedback = "All answers were correct. Nothing to review."
		return resp, nil
	}

	if s.generator == nil {
		return nil, apperror.Wrap(apperror.KindUnavailable, ErrFeedbackUnavailable, "study feedback is unavailable")
	}
	text, err := s.generator.StudyFeedback(ctx, sub.Quiz.Title, missed, unanswered)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("GetSubmissionFeedback: generator failed")
		return nil, apperror.Wrap(apperror.KindUnavailable, err, "study feedback is unavailable")
	}
	resp.Feedback = text
	return resp, nil
}

const unknownCorrectAnswer = "(not available)"

// missedQuestions lists the records frozen as wrong. The correct answer is read from the current
// question and dropped when it no longer agrees with the frozen record.
func missedQuestions(records []model.QuestionAnswerRecord) []MissedQuestion {
	var out []MissedQuestion
	for _, rec := range records {
		if rec.IsCorrect {
			continue
		}
		m := MissedQuestion{Question: rec.Question.Content, Chosen: rec.Answer.Content}
		if quizrules.CorrectAnswerCount(rec.Question.Answers) == 1 {
			for _, a := range rec.Question.Answers {
				if a.IsCorrect && a.ID != rec.AnswerID {
					m.Correct = a.Content
				}
			}
		}
		out = append(out, m)
	}
	return out
}
