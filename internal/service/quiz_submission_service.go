package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/learnhub/internal/apperror"
	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/event"
	"github.com/lshigami/learnhub/internal/metrics"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/quizrules"
	"github.com/lshigami/learnhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionLocker guards the check-then-insert of a submission. Implementations that cannot
// reach their backend return an error and the caller proceeds without the lock.
type SubmissionLocker interface {
	Acquire(ctx context.Context, userID, quizID uint) (release func(), acquired bool, err error)
}

// QuizSubmissionService defines the interface for submitting quizzes and reading results.
type QuizSubmissionService interface {
	SubmitQuiz(ctx context.Context, userID, quizID uint, req dto.SubmitQuizRequest) (*dto.QuizSubmissionResultDTO, error)
	GetMySubmission(ctx context.Context, userID, quizID uint) (*dto.QuizSubmissionDetailDTO, error)
	ListQuizSubmissions(ctx context.Context, quizID uint) ([]dto.SubmissionSummaryDTO, error)
}

type quizSubmissionService struct {
	quizRepo       repository.QuizRepository
	enrollmentRepo repository.EnrollmentRepository
	submissionRepo repository.SubmissionRepository
	scorer         ScoreService
	lock           SubmissionLocker
	publisher      event.Publisher
	metrics        metrics.Recorder
	now            func() time.Time
	lockWait       time.Duration
	lockRetry      time.Duration
}

const (
	defaultLockWait  = 2 * time.Second
	defaultLockRetry = 50 * time.Millisecond
)

var errLockBusy = errors.New("submission lock still held by another request")

// NewQuizSubmissionService creates a new QuizSubmissionService.
func NewQuizSubmissionService(
	quizRepo repository.QuizRepository,
	enrollmentRepo repository.EnrollmentRepository,
	submissionRepo repository.SubmissionRepository,
	scorer ScoreService,
	lock SubmissionLocker,
	publisher event.Publisher,
	recorder metrics.Recorder,
) QuizSubmissionService {
	return &quizSubmissionService{
		quizRepo:       quizRepo,
		enrollmentRepo: enrollmentRepo,
		submissionRepo: submissionRepo,
		scorer:         scorer,
		lock:           lock,
		publisher:      publisher,
		metrics:        recorder,
		now:            time.Now,
		lockWait:       defaultLockWait,
		lockRetry:      defaultLockRetry,
	}
}

// SubmitQuiz checks the preconditions in a fixed order (quiz exists, user enrolled, quiz valid,
// not yet submitted, exactly ten entries), scores the entries it can resolve and stores the
// submission with its records in one write.
func (s *quizSubmissionService) SubmitQuiz(ctx context.Context, userID, quizID uint, req dto.SubmitQuizRequest) (res *dto.QuizSubmissionResultDTO, err error) {
	defer func() {
		if s.metrics == nil {
			return
		}
		if err != nil {
			s.metrics.SubmissionOutcome(string(apperror.KindOf(err)))
			return
		}
		s.metrics.SubmissionOutcome(metrics.OutcomeAccepted)
		s.metrics.SubmissionScore(res.Score)
	}()

	// 1. Quiz exists
	quiz, err := s.quizRepo.FindByIDWithQuestions(ctx, quizID)
	if err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Msg("SubmitQuiz: quiz lookup failed")
		return nil, lookupError(err, "quiz %d", quizID)
	}

	// 2. Active enrollment in the quiz's course
	if err := checkEnrollment(ctx, s.enrollmentRepo, userID, quiz); err != nil {
		return nil, err
	}

	// 3. Structural validity, evaluated on every submission
	if violations := quizrules.QuizViolations(*quiz); len(violations) > 0 {
		log.Info().Uint("quizID", quizID).Strs("violations", violations).Msg("SubmitQuiz: quiz is not ready")
		return nil, apperror.NotReady("quiz %d is not ready for submission: %s", quizID, strings.Join(violations, "; "))
	}

	release, lockErr := s.acquireLock(ctx, userID, quizID)
	defer release()
	if lockErr != nil {
		log.Warn().Err(lockErr).Uint("userID", userID).Uint("quizID", quizID).Msg("SubmitQuiz: proceeding without lock, relying on unique index")
	}

	// 4. Not already submitted
	existing, err := s.submissionRepo.FindByUserAndQuiz(ctx, userID, quizID)
	if err == nil {
		return nil, alreadySubmitted(quizID, existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err, "failed to check existing submission for quiz %d", quizID)
	}

	// 5. Entry count
	if n := len(req.Responses); n != quizrules.RequiredQuestionsPerQuiz {
		return nil, apperror.BadRequest("exactly %d responses are required, received %d", quizrules.RequiredQuestionsPerQuiz, n)
	}

	records, correct := resolveResponses(quiz, req.Responses)
	score, err := s.scorer.Score(correct)
	if err != nil {
		return nil, apperror.Internal(err, "failed to compute score")
	}

	submission := model.QuizSubmission{
		UserID:       userID,
		QuizID:       quizID,
		SubmittedAt:  s.now().UTC(),
		Score:        score,
		CorrectCount: correct,
		Records:      records,
	}
	if err := s.submissionRepo.Create(ctx, &submission); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			log.Info().Uint("userID", userID).Uint("quizID", quizID).Msg("SubmitQuiz: lost submission race")
			winner, findErr := s.submissionRepo.FindByUserAndQuiz(ctx, userID, quizID)
			if findErr != nil {
				return nil, apperror.Conflict(nil, "quiz %d has already been submitted", quizID)
			}
			return nil, alreadySubmitted(quizID, winner)
		}
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("SubmitQuiz: failed to store submission")
		return nil, apperror.Internal(err, "failed to store submission")
	}

	log.Info().
		Uint("userID", userID).
		Uint("quizID", quizID).
		Int("accepted", len(records)).
		Int("correct", correct).
		Float64("score", score).
		Msg("Quiz submitted")
	s.publishSubmitted(ctx, &submission)

	return &dto.QuizSubmissionResultDTO{
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: quizrules.RequiredQuestionsPerQuiz,
		Percentage:     score,
		SubmittedAt:    submission.SubmittedAt,
	}, nil
}

// acquireLock waits up to lockWait for a concurrent request of the same user to finish. When the
// lock stays busy or its backend fails, the request continues unguarded.
func (s *quizSubmissionService) acquireLock(ctx context.Context, userID, quizID uint) (func(), error) {
	noop := func() {}
	if s.lock == nil {
		return noop, nil
	}
	deadline := time.Now().Add(s.lockWait)
	for {
		release, acquired, err := s.lock.Acquire(ctx, userID, quizID)
		if err != nil {
			return noop, err
		}
		if acquired {
			if release == nil {
				release = noop
			}
			return release, nil
		}
		if !time.Now().Before(deadline) {
			return noop, errLockBusy
		}
		select {
		case <-ctx.Done():
			return noop, ctx.Err()
		case <-time.After(s.lockRetry):
		}
	}
}

func (s *quizSubmissionService) publishSubmitted(ctx context.Context, sub *model.QuizSubmission) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishQuizSubmitted(ctx, &event.QuizSubmittedEvent{
		SubmissionID: sub.ID,
		UserID:       sub.UserID,
		QuizID:       sub.QuizID,
		Score:        sub.Score,
		CorrectCount: sub.CorrectCount,
		SubmittedAt:  sub.SubmittedAt,
	})
	if err != nil {
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("SubmitQuiz: failed to publish quiz.submitted")
	}
}

func alreadySubmitted(quizID uint, existing *model.QuizSubmission) error {
	return apperror.Conflict(
		&apperror.ExistingSubmission{Score: existing.Score, SubmittedAt: existing.SubmittedAt},
		"quiz %d has already been submitted", quizID,
	)
}

// resolveResponses turns the submitted entries into answer records. An entry is skipped when its
// question was already accepted earlier in the request, when the question is not part of the
// quiz, or when the answer does not belong to that question. Skipped entries simply count as
// wrong.
func resolveResponses(quiz *model.Quiz, responses []dto.QuestionResponseItem) ([]model.QuestionAnswerRecord, int) {
	questions := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	accepted := make(map[uint]bool, len(responses))
	records := make([]model.QuestionAnswerRecord, 0, len(responses))
	correct := 0
	for _, r := range responses {
		if accepted[r.QuestionID] {
			log.Debug().Uint("quizID", quiz.ID).Uint("questionID", r.QuestionID).Msg("Skipping repeated question")
			continue
		}
		question, ok := questions[r.QuestionID]
		if !ok {
			log.Debug().Uint("quizID", quiz.ID).Uint("questionID", r.QuestionID).Msg("Skipping question outside the quiz")
			continue
		}
		answer := findAnswer(question.Answers, r.ResponseID)
		if answer == nil {
			log.Debug().Uint("questionID", r.QuestionID).Uint("responseID", r.ResponseID).Msg("Skipping answer outside the question")
			continue
		}

		accepted[r.QuestionID] = true
		records = append(records, model.QuestionAnswerRecord{
			QuestionID: question.ID,
			AnswerID:   answer.ID,
			IsCorrect:  answer.IsCorrect,
		})
		if answer.IsCorrect {
			correct++
		}
	}
	return records, correct
}

func findAnswer(answers []model.Answer, id uint) *model.Answer {
	for i := range answers {
		if answers[i].ID == id {
			return &answers[i]
		}
	}
	return nil
}

func (s *quizSubmissionService) GetMySubmission(ctx context.Context, userID, quizID uint) (*dto.QuizSubmissionDetailDTO, error) {
	sub, err := s.submissionRepo.FindByUserAndQuizWithRecords(ctx, userID, quizID)
	if err != nil {
		return nil, lookupError(err, "submission of quiz %d", quizID)
	}

	resp := dto.QuizSubmissionDetailDTO{
		QuizSubmissionResultDTO: dto.QuizSubmissionResultDTO{
			QuizID:         sub.QuizID,
			QuizTitle:      sub.Quiz.Title,
			Score:          sub.Score,
			CorrectAnswers: sub.CorrectCount,
			TotalQuestions: quizrules.RequiredQuestionsPerQuiz,
			Percentage:     sub.Score,
			SubmittedAt:    sub.SubmittedAt,
		},
		Records: make([]dto.AnswerRecordDTO, 0, len(sub.Records)),
	}
	for _, rec := range sub.Records {
		resp.Records = append(resp.Records, dto.AnswerRecordDTO{
			QuestionID:      rec.QuestionID,
			QuestionContent: rec.Question.Content,
			ResponseID:      rec.AnswerID,
			ResponseContent: rec.Answer.Content,
			IsCorrect:       rec.IsCorrect,
		})
	}
	return &resp, nil
}

func (s *quizSubmissionService) ListQuizSubmissions(ctx context.Context, quizID uint) ([]dto.SubmissionSummaryDTO, error) {
	if _, err := s.quizRepo.FindByID(ctx, quizID); err != nil {
		return nil, lookupError(err, "quiz %d", quizID)
	}
	subs, err := s.submissionRepo.FindAllByQuiz(ctx, quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("ListQuizSubmissions: repository error")
		return nil, apperror.Internal(err, "failed to list submissions of quiz %d", quizID)
	}
	out := make([]dto.SubmissionSummaryDTO, 0, len(subs))
	for _, sub := range subs {
		var summary dto.SubmissionSummaryDTO
		if err := copier.Copy(&summary, &sub); err != nil {
			log.Error().Err(err).Uint("submissionID", sub.ID).Msg("ListQuizSubmissions: error copying submission")
			continue
		}
		out = append(out, summary)
	}
	return out, nil
}
