package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/lshigami/learnhub/internal/dto"
	"github.com/lshigami/learnhub/internal/event"
	"github.com/lshigami/learnhub/internal/model"
	"github.com/lshigami/learnhub/internal/repository"
	"gorm.io/gorm"
)

// --- quizzes ---

type fakeQuizRepo struct {
	quizzes map[uint]*model.Quiz
	nextID  uint
}

func newFakeQuizRepo(quizzes ...*model.Quiz) *fakeQuizRepo {
	r := &fakeQuizRepo{quizzes: map[uint]*model.Quiz{}, nextID: 1000}
	for _, q := range quizzes {
		r.quizzes[q.ID] = q
	}
	return r
}

func (r *fakeQuizRepo) Create(_ context.Context, quiz *model.Quiz) error {
	r.nextID++
	quiz.ID = r.nextID
	for i := range quiz.Questions {
		r.nextID++
		quiz.Questions[i].ID = r.nextID
		quiz.Questions[i].QuizID = quiz.ID
		for j := range quiz.Questions[i].Answers {
			r.nextID++
			quiz.Questions[i].Answers[j].ID = r.nextID
			quiz.Questions[i].Answers[j].QuestionID = quiz.Questions[i].ID
		}
	}
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) FindByID(_ context.Context, id uint) (*model.Quiz, error) {
	q, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	cp.Questions = nil
	return &cp, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(_ context.Context, id uint) (*model.Quiz, error) {
	q, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuizRepo) FindAllByCourseIDs(_ context.Context, courseIDs []uint) ([]model.Quiz, error) {
	want := map[uint]bool{}
	for _, id := range courseIDs {
		want[id] = true
	}
	var out []model.Quiz
	for _, q := range r.quizzes {
		if q.CourseID != nil && want[*q.CourseID] {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- questions and answers, backed by the quiz fake ---

type fakeQuestionRepo struct {
	quizzes *fakeQuizRepo
	nextID  uint
}

func (r *fakeQuestionRepo) find(id uint) (*model.Question, *model.Quiz, int) {
	for _, quiz := range r.quizzes.quizzes {
		for i := range quiz.Questions {
			if quiz.Questions[i].ID == id {
				return &quiz.Questions[i], quiz, i
			}
		}
	}
	return nil, nil, -1
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	quiz, ok := r.quizzes.quizzes[q.QuizID]
	if !ok {
		return errors.New("foreign key violation")
	}
	r.nextID++
	q.ID = 5000 + r.nextID
	for i := range q.Answers {
		r.nextID++
		q.Answers[i].ID = 5000 + r.nextID
		q.Answers[i].QuestionID = q.ID
	}
	quiz.Questions = append(quiz.Questions, *q)
	return nil
}

func (r *fakeQuestionRepo) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	q, err := r.FindByIDWithAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Answers = nil
	return q, nil
}

func (r *fakeQuestionRepo) FindByIDWithAnswers(_ context.Context, id uint) (*model.Question, error) {
	q, _, _ := r.find(id)
	if q == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) NextPosition(_ context.Context, quizID uint) (int, error) {
	max := 0
	if quiz, ok := r.quizzes.quizzes[quizID]; ok {
		for _, q := range quiz.Questions {
			if q.Position > max {
				max = q.Position
			}
		}
	}
	return max + 1, nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id uint) error {
	_, quiz, idx := r.find(id)
	if quiz == nil {
		return gorm.ErrRecordNotFound
	}
	quiz.Questions = append(quiz.Questions[:idx], quiz.Questions[idx+1:]...)
	return nil
}

type fakeAnswerRepo struct {
	questions *fakeQuestionRepo
	nextID    uint
}

func (r *fakeAnswerRepo) Create(_ context.Context, a *model.Answer) error {
	q, _, _ := r.questions.find(a.QuestionID)
	if q == nil {
		return errors.New("foreign key violation")
	}
	r.nextID++
	a.ID = 9000 + r.nextID
	q.Answers = append(q.Answers, *a)
	return nil
}

func (r *fakeAnswerRepo) locate(id uint) *model.Answer {
	for _, quiz := range r.questions.quizzes.quizzes {
		for i := range quiz.Questions {
			for j := range quiz.Questions[i].Answers {
				if quiz.Questions[i].Answers[j].ID == id {
					return &quiz.Questions[i].Answers[j]
				}
			}
		}
	}
	return nil
}

func (r *fakeAnswerRepo) FindByID(_ context.Context, id uint) (*model.Answer, error) {
	a := r.locate(id)
	if a == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAnswerRepo) Update(_ context.Context, a *model.Answer) error {
	stored := r.locate(a.ID)
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	*stored = *a
	return nil
}

// --- enrollments ---

type enrollmentKey struct{ user, course uint }

type fakeEnrollmentRepo struct {
	status map[enrollmentKey]string
	err    error
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{status: map[enrollmentKey]string{}}
}

func (r *fakeEnrollmentRepo) enroll(userID, courseID uint) *fakeEnrollmentRepo {
	r.status[enrollmentKey{userID, courseID}] = model.EnrollmentActive
	return r
}

func (r *fakeEnrollmentRepo) HasActiveEnrollment(_ context.Context, userID, courseID uint) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.status[enrollmentKey{userID, courseID}] == model.EnrollmentActive, nil
}

func (r *fakeEnrollmentRepo) ActiveCourseIDs(_ context.Context, userID uint) ([]uint, error) {
	var ids []uint
	for k, st := range r.status {
		if k.user == userID && st == model.EnrollmentActive {
			ids = append(ids, k.course)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeEnrollmentRepo) Enroll(_ context.Context, userID, courseID uint) (*model.Enrollment, error) {
	r.status[enrollmentKey{userID, courseID}] = model.EnrollmentActive
	return &model.Enrollment{ID: 1, UserID: userID, CourseID: courseID, Status: model.EnrollmentActive}, nil
}

func (r *fakeEnrollmentRepo) Revoke(_ context.Context, userID, courseID uint) error {
	k := enrollmentKey{userID, courseID}
	if r.status[k] != model.EnrollmentActive {
		return gorm.ErrRecordNotFound
	}
	r.status[k] = model.EnrollmentRevoked
	return nil
}

// --- submissions ---

type submissionKey struct{ user, quiz uint }

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	subs        map[submissionKey]*model.QuizSubmission
	nextID      uint
	createCalls int
	createErr   error
	// beforeCreate runs inside Create before the uniqueness check, to simulate a concurrent writer.
	beforeCreate func(r *fakeSubmissionRepo)
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: map[submissionKey]*model.QuizSubmission{}}
}

func (r *fakeSubmissionRepo) put(sub *model.QuizSubmission) {
	r.nextID++
	sub.ID = r.nextID
	for i := range sub.Records {
		sub.Records[i].SubmissionID = sub.ID
	}
	r.subs[submissionKey{sub.UserID, sub.QuizID}] = sub
}

func (r *fakeSubmissionRepo) Create(_ context.Context, sub *model.QuizSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.beforeCreate != nil {
		r.beforeCreate(r)
	}
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.subs[submissionKey{sub.UserID, sub.QuizID}]; ok {
		return repository.ErrDuplicateSubmission
	}
	cp := *sub
	r.put(&cp)
	sub.ID = cp.ID
	return nil
}

func (r *fakeSubmissionRepo) FindByUserAndQuiz(_ context.Context, userID, quizID uint) (*model.QuizSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[submissionKey{userID, quizID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) FindByUserAndQuizWithRecords(ctx context.Context, userID, quizID uint) (*model.QuizSubmission, error) {
	return r.FindByUserAndQuiz(ctx, userID, quizID)
}

func (r *fakeSubmissionRepo) FindAllByUser(_ context.Context, userID uint) ([]model.QuizSubmission, error) {
	var out []model.QuizSubmission
	for k, sub := range r.subs {
		if k.user == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindAllByQuiz(_ context.Context, quizID uint) ([]model.QuizSubmission, error) {
	var out []model.QuizSubmission
	for k, sub := range r.subs {
		if k.quiz == quizID {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- courses and users ---

type fakeCourseRepo struct {
	courses map[uint]*model.Course
}

func (r *fakeCourseRepo) Create(_ context.Context, c *model.Course) error {
	c.ID = uint(len(r.courses) + 1)
	r.courses[c.ID] = c
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id uint) (*model.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCourseRepo) FindAll(_ context.Context) ([]model.Course, error) {
	var out []model.Course
	for _, c := range r.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeUserRepo struct {
	users map[uint]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = uint(len(r.users) + 1)
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

// --- infrastructure ---

// fakeLock denies the first deniedFor attempts (every attempt when denied is set) and runs
// onDenied after each refusal, standing in for the request that holds the lock.
type fakeLock struct {
	denied    bool
	deniedFor int
	onDenied  func()
	err       error
	attempts  int
	acquired  int
	released  int
}

func (l *fakeLock) Acquire(_ context.Context, _, _ uint) (func(), bool, error) {
	l.attempts++
	if l.err != nil {
		return func() {}, false, l.err
	}
	if l.denied || l.attempts <= l.deniedFor {
		if l.onDenied != nil {
			l.onDenied()
		}
		return func() {}, false, nil
	}
	l.acquired++
	return func() { l.released++ }, true, nil
}

type recordingPublisher struct {
	events []event.QuizSubmittedEvent
	err    error
}

func (p *recordingPublisher) PublishQuizSubmitted(_ context.Context, evt *event.QuizSubmittedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fakeRecorder struct {
	outcomes []string
	scores   []float64
}

func (r *fakeRecorder) SubmissionOutcome(outcome string) { r.outcomes = append(r.outcomes, outcome) }
func (r *fakeRecorder) SubmissionScore(score float64)    { r.scores = append(r.scores, score) }

// --- fixtures ---

// buildQuiz returns a quiz with n questions. Question i (0-based) has id quizID*100+i+1 and four
// answers with ids questionID*10+1..4; the first answer is the correct one.
func buildQuiz(quizID, courseID uint, n int) *model.Quiz {
	quiz := &model.Quiz{ID: quizID, Title: "Workplace safety"}
	if courseID != 0 {
		cid := courseID
		quiz.CourseID = &cid
	}
	for i := 0; i < n; i++ {
		qid := quizID*100 + uint(i) + 1
		q := model.Question{ID: qid, QuizID: quizID, Content: "What should you do first?", Position: i + 1}
		for j := uint(1); j <= 4; j++ {
			q.Answers = append(q.Answers, model.Answer{ID: qid*10 + j, QuestionID: qid, Content: "option", IsCorrect: j == 1})
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

func correctAnswerID(q model.Question) uint { return q.ID*10 + 1 }
func wrongAnswerID(q model.Question) uint   { return q.ID*10 + 2 }

// responsesFor answers the first `correct` questions correctly and the rest wrongly.
func responsesFor(quiz *model.Quiz, correct int) []dto.QuestionResponseItem {
	out := make([]dto.QuestionResponseItem, 0, len(quiz.Questions))
	for i, q := range quiz.Questions {
		ans := wrongAnswerID(q)
		if i < correct {
			ans = correctAnswerID(q)
		}
		out = append(out, dto.QuestionResponseItem{QuestionID: q.ID, ResponseID: ans})
	}
	return out
}
