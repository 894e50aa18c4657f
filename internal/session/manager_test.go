package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avinashb/quizmind/internal/aigen"
	"github.com/avinashb/quizmind/internal/bank"
	"github.com/avinashb/quizmind/internal/quiz"
	"github.com/avinashb/quizmind/internal/store"
)

// stubGenerator is a canned Generator for tests.
type stubGenerator struct {
	question  *quiz.Question
	err       error
	generated int
}

func (g *stubGenerator) GenerateQuestion(_ context.Context, req aigen.QuestionRequest) (*quiz.Question, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.generated++
	if g.question != nil {
		return g.question, nil
	}
	return &quiz.Question{
		ID:          fmt.Sprintf("ai_%d", g.generated),
		Subject:     req.Subject,
		Topic:       "General",
		Text:        "Generated question?",
		Kind:        quiz.KindShortAnswer,
		Difficulty:  req.Difficulty,
		Answer:      "42",
		Explanation: "Because.",
		Source:      quiz.SourceAI,
	}, nil
}

func (g *stubGenerator) GenerateFeedback(_ context.Context, q *quiz.Question, attempt quiz.Attempt, _ float64, _ aigen.ProfileContext) aigen.Feedback {
	if attempt.Correct {
		return aigen.Feedback{Text: "Well done!", Provenance: aigen.ProvenanceAI}
	}
	return aigen.Feedback{Text: "Not quite. " + q.Explanation, Provenance: aigen.ProvenanceFallback}
}

// memRepo is an in-memory AttemptRepo.
type memRepo struct {
	attempts []store.AttemptRecord
	results  []store.SessionResult
	fail     bool
}

func (r *memRepo) AppendAttempt(_ context.Context, rec store.AttemptRecord) error {
	if r.fail {
		return errors.New("disk full")
	}
	r.attempts = append(r.attempts, rec)
	return nil
}

func (r *memRepo) SaveSessionResult(_ context.Context, res store.SessionResult) error {
	if r.fail {
		return errors.New("disk full")
	}
	r.results = append(r.results, res)
	return nil
}

func (r *memRepo) SubjectStats(_ context.Context, _, _ string) (store.SubjectStats, error) {
	return store.SubjectStats{}, nil
}

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	return NewManager(bank.Builtin(), &stubGenerator{}, cfg)
}

// submitCorrect answers the next question correctly with its own
// canonical answer.
func submitCorrect(t *testing.T, m *Manager, sid string) *Result {
	t.Helper()
	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, q)

	res, err := m.Submit(context.Background(), sid, q.ID, q.Answer, 10, 3, 0)
	require.NoError(t, err)
	require.True(t, res.Correct, "expected canonical answer to be correct for %s", q.ID)
	return res
}

func submitIncorrect(t *testing.T, m *Manager, sid string) *Result {
	t.Helper()
	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, q)

	res, err := m.Submit(context.Background(), sid, q.ID, "definitely wrong answer", 10, 3, 0)
	require.NoError(t, err)
	require.False(t, res.Correct)
	return res
}

func TestStart_Validation(t *testing.T) {
	m := newTestManager(t, Config{})

	var verr *ValidationError

	_, err := m.Start("", "Python Programming", quiz.Beginner)
	require.ErrorAs(t, err, &verr)

	_, err = m.Start("user-1", "", quiz.Beginner)
	require.ErrorAs(t, err, &verr)

	_, err = m.Start("user-1", "Python Programming", quiz.Difficulty(9))
	require.ErrorAs(t, err, &verr)

	// Zero difficulty defaults to Beginner.
	sid, err := m.Start("user-1", "Python Programming", 0)
	require.NoError(t, err)

	sum, err := m.Summary(sid)
	require.NoError(t, err)
	assert.Equal(t, quiz.Beginner, sum.FinalDifficulty)
}

func TestPromotionAfterThreeCorrect(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	res := submitCorrect(t, m, sid)
	assert.False(t, res.DifficultyChanged)
	res = submitCorrect(t, m, sid)
	assert.False(t, res.DifficultyChanged)

	// Third consecutive correct with accuracy 1.0 promotes.
	res = submitCorrect(t, m, sid)
	assert.True(t, res.DifficultyChanged)
	assert.Equal(t, quiz.Intermediate, res.NewDifficulty)
	assert.InDelta(t, 1.0, res.CurrentAccuracy, 1e-9)
}

func TestDemotionOnPoorAccuracy(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	// Promote to Intermediate first.
	for range 3 {
		submitCorrect(t, m, sid)
	}

	// Miss until lifetime accuracy crosses the demotion threshold.
	// After 3 correct and 5 wrong: 3/8 = 0.375 <= 0.40 with a long
	// incorrect streak.
	var last *Result
	for range 5 {
		last = submitIncorrect(t, m, sid)
	}

	assert.True(t, last.DifficultyChanged)
	assert.Equal(t, quiz.Beginner, last.NewDifficulty)
	assert.LessOrEqual(t, last.CurrentAccuracy, 0.40)
}

func TestDifficultyNeverMovesMoreThanOneStep(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	prev := quiz.Beginner
	for i := 0; i < 12; i++ {
		var res *Result
		if i%3 == 0 {
			res = submitIncorrect(t, m, sid)
		} else {
			res = submitCorrect(t, m, sid)
		}
		diff := int(res.NewDifficulty) - int(prev)
		assert.LessOrEqual(t, diff, 1)
		assert.GreaterOrEqual(t, diff, -1)
		assert.True(t, res.NewDifficulty.Valid())
		prev = res.NewDifficulty
	}
}

func TestExhaustionFallsBackToGeneration(t *testing.T) {
	gen := &stubGenerator{}
	m := NewManager(bank.Builtin(), gen, Config{})

	sid, err := m.Start("user-1", "Mathematics", quiz.Beginner)
	require.NoError(t, err)

	// Drain the two Beginner Mathematics bank questions.
	for range 2 {
		q, err := m.NextQuestion(context.Background(), sid)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, quiz.SourceBank, q.Source)
		_, err = m.Submit(context.Background(), sid, q.ID, "wrong", 10, 3, 0)
		require.NoError(t, err)
	}

	// Bank exhausted: the next question comes from the generator.
	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, quiz.SourceAI, q.Source)

	// The generated question is submittable by id.
	res, err := m.Submit(context.Background(), sid, q.ID, q.Answer, 10, 3, 0)
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestExhaustionWithGenerationFailureEndsSession(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}
	m := NewManager(bank.Builtin(), gen, Config{})

	sid, err := m.Start("user-1", "Mathematics", quiz.Beginner)
	require.NoError(t, err)

	for range 2 {
		q, err := m.NextQuestion(context.Background(), sid)
		require.NoError(t, err)
		require.NotNil(t, q)
		_, err = m.Submit(context.Background(), sid, q.ID, q.Answer, 10, 3, 0)
		require.NoError(t, err)
	}

	// Both sources exhausted: nil question, nil error.
	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestion_UnknownSubjectGoesStraightToGeneration(t *testing.T) {
	gen := &stubGenerator{}
	m := NewManager(bank.Builtin(), gen, Config{})

	sid, err := m.Start("user-1", "Quantum Basket Weaving", quiz.Beginner)
	require.NoError(t, err)

	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, quiz.SourceAI, q.Source)
}

func TestSubmit_NotFoundErrors(t *testing.T) {
	m := newTestManager(t, Config{})

	var nf *NotFoundError
	_, err := m.Submit(context.Background(), "nope", "py_001", "x", 10, 3, 0)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "session", nf.Kind)

	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	_, err = m.Submit(context.Background(), sid, "no_such_question", "x", 10, 3, 0)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "question", nf.Kind)

	// The failed submission must not have touched the session.
	sum, err := m.Summary(sid)
	require.NoError(t, err)
	assert.Zero(t, sum.QuestionsAnswered)
	assert.Empty(t, sum.PerformanceTrend)
}

func TestSubmit_ValidationRejectsBeforeMutation(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	var verr *ValidationError

	_, err = m.Submit(context.Background(), sid, "py_001", "x", 10, 6, 0)
	require.ErrorAs(t, err, &verr)

	_, err = m.Submit(context.Background(), sid, "py_001", "x", -5, 3, 0)
	require.ErrorAs(t, err, &verr)

	_, err = m.Submit(context.Background(), sid, "py_001", "x", 10, 3, -1)
	require.ErrorAs(t, err, &verr)

	sum, err := m.Summary(sid)
	require.NoError(t, err)
	assert.Zero(t, sum.QuestionsAnswered)
}

func TestSessionInvariants(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	answered := 0
	for i := 0; i < 9; i++ {
		var res *Result
		if i%2 == 0 {
			res = submitCorrect(t, m, sid)
		} else {
			res = submitIncorrect(t, m, sid)
		}
		answered++

		assert.GreaterOrEqual(t, res.Stats.CorrectAnswers, 0)
		assert.LessOrEqual(t, res.Stats.CorrectAnswers, res.Stats.QuestionsAnswered)
		assert.Equal(t, answered, res.Stats.QuestionsAnswered)
	}

	sum, err := m.Summary(sid)
	require.NoError(t, err)
	assert.Len(t, sum.PerformanceTrend, answered)
}

func TestSummary_EmptyIsZeroed(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Advanced)
	require.NoError(t, err)

	sum, err := m.Summary(sid)
	require.NoError(t, err)
	assert.Equal(t, sid, sum.SessionID)
	assert.Zero(t, sum.QuestionsAnswered)
	assert.Zero(t, sum.Accuracy)
	assert.Zero(t, sum.DurationSeconds)
	assert.Equal(t, quiz.Advanced, sum.FinalDifficulty)
	assert.Empty(t, sum.DifficultyBreakdown)
}

func TestSummary_Idempotent(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	submitCorrect(t, m, sid)
	submitIncorrect(t, m, sid)

	first, err := m.Summary(sid)
	require.NoError(t, err)
	second, err := m.Summary(sid)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummary_DifficultyBreakdown(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	// 3 correct at Beginner promotes, then one more at Intermediate.
	for range 3 {
		submitCorrect(t, m, sid)
	}
	submitIncorrect(t, m, sid)

	sum, err := m.Summary(sid)
	require.NoError(t, err)

	beginner := sum.DifficultyBreakdown[quiz.Beginner.String()]
	assert.Equal(t, 3, beginner.Total)
	assert.Equal(t, 3, beginner.Correct)

	intermediate := sum.DifficultyBreakdown[quiz.Intermediate.String()]
	assert.Equal(t, 1, intermediate.Total)
	assert.Equal(t, 0, intermediate.Correct)
}

func TestResult_RecentTrendIsLastFive(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	var res *Result
	for i := 0; i < 7; i++ {
		if i%2 == 0 {
			res = submitCorrect(t, m, sid)
		} else {
			res = submitIncorrect(t, m, sid)
		}
	}
	assert.Len(t, res.RecentTrend, 5)
	assert.InDelta(t, res.CurrentAccuracy, res.RecentTrend[4], 1e-9)
}

func TestEnd_PersistsAndBlocksFurtherSubmissions(t *testing.T) {
	repo := &memRepo{}
	m := NewManager(bank.Builtin(), &stubGenerator{}, Config{Attempts: repo})

	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	submitCorrect(t, m, sid)
	submitIncorrect(t, m, sid)
	assert.Len(t, repo.attempts, 2)

	sum, err := m.End(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.QuestionsAnswered)
	require.Len(t, repo.results, 1)
	assert.Equal(t, sid, repo.results[0].SessionID)
	assert.Equal(t, 2, repo.results[0].Questions)

	// Ended sessions serve no more questions and reject submissions.
	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	assert.Nil(t, q)

	var verr *ValidationError
	_, err = m.Submit(context.Background(), sid, "py_001", "x", 10, 3, 0)
	require.ErrorAs(t, err, &verr)

	// Ending again is harmless and idempotent.
	again, err := m.End(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, sum, again)
	assert.Len(t, repo.results, 1)
}

func TestPersistenceFailureDoesNotFailSubmission(t *testing.T) {
	repo := &memRepo{fail: true}
	m := NewManager(bank.Builtin(), &stubGenerator{}, Config{Attempts: repo})

	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	res := submitCorrect(t, m, sid)
	assert.True(t, res.Correct)

	_, err = m.End(context.Background(), sid)
	require.NoError(t, err)
}

func TestNextQuestion_ExcludesAnswered(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	seen := make(map[string]bool)
	// Answer incorrectly so difficulty holds and the exclusion set is
	// the only thing changing the candidate pool.
	for range 3 {
		q, err := m.NextQuestion(context.Background(), sid)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.False(t, seen[q.ID], "question %s served twice", q.ID)
		seen[q.ID] = true

		_, err = m.Submit(context.Background(), sid, q.ID, "wrong", 10, 3, 0)
		require.NoError(t, err)
	}
}

func TestFeedbackProvenancePropagates(t *testing.T) {
	m := newTestManager(t, Config{})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	res := submitCorrect(t, m, sid)
	assert.Equal(t, aigen.ProvenanceAI, res.FeedbackProvenance)
	assert.NotEmpty(t, res.Feedback)

	res = submitIncorrect(t, m, sid)
	assert.Equal(t, aigen.ProvenanceFallback, res.FeedbackProvenance)
}

func TestSubmit_ResubmissionGetsDistinctAttemptID(t *testing.T) {
	repo := &memRepo{}
	m := NewManager(bank.Builtin(), &stubGenerator{}, Config{Attempts: repo})
	sid, err := m.Start("user-1", "Python Programming", quiz.Beginner)
	require.NoError(t, err)

	q, err := m.NextQuestion(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, q)

	_, err = m.Submit(context.Background(), sid, q.ID, q.Answer, 10, 3, 0)
	require.NoError(t, err)
	_, err = m.Submit(context.Background(), sid, q.ID, q.Answer, 10, 3, 0)
	require.NoError(t, err)

	require.Len(t, repo.attempts, 2)
	assert.NotEqual(t, repo.attempts[0].Attempt.ID, repo.attempts[1].Attempt.ID,
		"both submissions of %s must persist under their own attempt id", q.ID)
}
