package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avinashb/quizmind/internal/aigen"
	"github.com/avinashb/quizmind/internal/bank"
	"github.com/avinashb/quizmind/internal/quiz"
	"github.com/avinashb/quizmind/internal/store"
)

// Generator is the slice of the AI gateway the manager depends on.
type Generator interface {
	GenerateQuestion(ctx context.Context, req aigen.QuestionRequest) (*quiz.Question, error)
	GenerateFeedback(ctx context.Context, q *quiz.Question, attempt quiz.Attempt, accuracy float64, profile aigen.ProfileContext) aigen.Feedback
}

// Config wires the manager's collaborators.
type Config struct {
	// Strategy ranks repository candidates. Defaults to Sequential.
	Strategy bank.Strategy

	// Attempts, when set, persists attempt history and session results.
	// Persistence failures are logged and never fail a submission.
	Attempts store.AttemptRepo

	// Profile personalizes AI prompts.
	Profile aigen.ProfileContext

	Logger *zap.Logger
}

// Manager owns all live sessions and orchestrates the question bank,
// evaluator, difficulty controller, and AI gateway.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	bank     *bank.Bank
	gateway  Generator
	strategy bank.Strategy
	attempts store.AttemptRepo
	profile  aigen.ProfileContext
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewManager creates a Manager over the given question bank and gateway.
func NewManager(b *bank.Bank, gateway Generator, cfg Config) *Manager {
	if cfg.Strategy == nil {
		cfg.Strategy = bank.Sequential{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Manager{
		sessions: make(map[string]*Session),
		bank:     b,
		gateway:  gateway,
		strategy: cfg.Strategy,
		attempts: cfg.Attempts,
		profile:  cfg.Profile,
		logger:   cfg.Logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Start creates a new session and returns its id. The initial
// difficulty defaults to Beginner when zero.
func (m *Manager) Start(userID, subject string, initial quiz.Difficulty) (string, error) {
	if userID == "" {
		return "", &ValidationError{Field: "user_id", Reason: "must not be empty"}
	}
	if subject == "" {
		return "", &ValidationError{Field: "subject", Reason: "must not be empty"}
	}
	if initial == 0 {
		initial = quiz.Beginner
	}
	if !initial.Valid() {
		return "", &ValidationError{Field: "initial_difficulty", Reason: fmt.Sprintf("unknown level %d", initial)}
	}

	s := &Session{
		ID:                 fmt.Sprintf("quiz_%s_%s", userID, m.newID()),
		UserID:             userID,
		Subject:            subject,
		StartedAt:          m.now(),
		Difficulty:         initial,
		TimePressureFactor: 1.0,
		answered:           make(map[string]bool),
		generated:          make(map[string]*quiz.Question),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; exists {
		return "", &ValidationError{Field: "session_id", Reason: "already exists"}
	}
	m.sessions[s.ID] = s

	m.logger.Info("session started",
		zap.String("session_id", s.ID),
		zap.String("subject", subject),
		zap.String("difficulty", initial.String()))

	return s.ID, nil
}

func (m *Manager) session(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, &NotFoundError{Kind: "session", ID: id}
	}
	return s, nil
}

// NextQuestion returns the next question for the session: the bank at
// the current difficulty first, then AI generation once the bank is
// exhausted. A nil question with nil error means both sources are
// exhausted and the session is complete.
func (m *Manager) NextQuestion(ctx context.Context, sessionID string) (*quiz.Question, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil, nil
	}

	candidates := m.bank.Matching(s.Subject, s.Difficulty, s.answered)
	if len(candidates) > 0 {
		return m.strategy.Select(candidates, bank.PerformanceView{
			RecentAccuracy: s.recentAccuracy(3),
			TimePressure:   s.TimePressureFactor,
		}), nil
	}

	q, err := m.gateway.GenerateQuestion(ctx, aigen.QuestionRequest{
		Subject:         s.Subject,
		Difficulty:      s.Difficulty,
		PreviousMistake: s.lastMistake,
		Profile:         m.profileFor(s),
	})
	if err != nil {
		// Generation failure is never fatal. The bank is exhausted, so
		// the session simply has no more content.
		m.logger.Warn("question generation failed",
			zap.String("session_id", s.ID),
			zap.Error(err))
		return nil, nil
	}

	s.generated[q.ID] = q
	return q, nil
}

// Submit evaluates an answer and applies it to the session: counters,
// streaks, performance trend, difficulty adjustment, feedback. Unknown
// session or question ids and invalid input are rejected before any
// state changes.
func (m *Manager) Submit(ctx context.Context, sessionID, questionID, answer string, timeTaken, confidence, hintsUsed int) (*Result, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	if confidence == 0 {
		confidence = 3
	}
	if confidence < 1 || confidence > 5 {
		return nil, &ValidationError{Field: "confidence", Reason: "must be between 1 and 5"}
	}
	if timeTaken < 0 {
		return nil, &ValidationError{Field: "time_taken", Reason: "must not be negative"}
	}
	if hintsUsed < 0 {
		return nil, &ValidationError{Field: "hints_used", Reason: "must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil, &ValidationError{Field: "session_id", Reason: "session has ended"}
	}

	q, err := m.resolveQuestion(s, questionID)
	if err != nil {
		return nil, err
	}

	correct := quiz.Evaluate(q, answer)

	// Numbered per session so resubmitting a question never reuses an id.
	attempt := quiz.Attempt{
		ID:         fmt.Sprintf("attempt_%s_%d", s.ID, len(s.Attempts)+1),
		UserID:     s.UserID,
		QuestionID: questionID,
		Answer:     answer,
		Correct:    correct,
		TimeTaken:  timeTaken,
		HintsUsed:  hintsUsed,
		Difficulty: s.Difficulty,
		Confidence: confidence,
		Timestamp:  m.now(),
	}

	s.QuestionsAnswered++
	s.TotalTimeSeconds += timeTaken
	if correct {
		s.CorrectAnswers++
		s.ConsecutiveCorrect++
		s.ConsecutiveIncorrect = 0
	} else {
		s.ConsecutiveCorrect = 0
		s.ConsecutiveIncorrect++
		s.lastMistake = q.Text
	}

	accuracy := s.Accuracy()
	s.PerformanceTrend = append(s.PerformanceTrend, accuracy)
	s.ConfidenceHistory = append(s.ConfidenceHistory, confidence)
	s.updateTimePressure(timeTaken, q.EstimatedSeconds)
	s.Attempts = append(s.Attempts, attempt)
	s.answered[questionID] = true

	previous := s.Difficulty
	s.Difficulty = quiz.Adjust(quiz.AdjustInput{
		Accuracy:             accuracy,
		ConsecutiveCorrect:   s.ConsecutiveCorrect,
		ConsecutiveIncorrect: s.ConsecutiveIncorrect,
		Current:              s.Difficulty,
	})

	feedback := m.gateway.GenerateFeedback(ctx, q, attempt, accuracy, m.profileFor(s))

	m.persistAttempt(ctx, s, attempt)

	return &Result{
		Correct:            correct,
		CorrectAnswer:      q.Answer,
		Explanation:        q.Explanation,
		Feedback:           feedback.Text,
		FeedbackProvenance: feedback.Provenance,
		CurrentAccuracy:    accuracy,
		DifficultyChanged:  s.Difficulty != previous,
		NewDifficulty:      s.Difficulty,
		RecentTrend:        lastN(s.PerformanceTrend, 5),
		Stats: Stats{
			QuestionsAnswered: s.QuestionsAnswered,
			CorrectAnswers:    s.CorrectAnswers,
			TotalTimeSeconds:  s.TotalTimeSeconds,
			AverageSeconds:    float64(s.TotalTimeSeconds) / float64(s.QuestionsAnswered),
		},
	}, nil
}

// resolveQuestion finds the question in the bank or the session's AI
// question cache. Caller holds the session lock.
func (m *Manager) resolveQuestion(s *Session, questionID string) (*quiz.Question, error) {
	if q, ok := m.bank.Get(questionID); ok {
		return q, nil
	}
	if q, ok := s.generated[questionID]; ok {
		return q, nil
	}
	return nil, &NotFoundError{Kind: "question", ID: questionID}
}

// Summary aggregates the session so far. Zeroed stats before the first
// attempt, and identical results on repeated calls with no submission
// in between.
func (m *Manager) Summary(sessionID string) (*Summary, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &Summary{
		SessionID:           s.ID,
		Subject:             s.Subject,
		FinalDifficulty:     s.Difficulty,
		DifficultyBreakdown: make(map[string]DifficultyStats),
	}
	if len(s.Attempts) == 0 {
		return sum, nil
	}

	sum.QuestionsAnswered = s.QuestionsAnswered
	sum.CorrectAnswers = s.CorrectAnswers
	sum.Accuracy = s.Accuracy()
	sum.TotalTimeSeconds = s.TotalTimeSeconds
	sum.AverageSeconds = float64(s.TotalTimeSeconds) / float64(s.QuestionsAnswered)
	sum.PerformanceTrend = append([]float64(nil), s.PerformanceTrend...)

	// Duration runs to the last event, not the wall clock, so repeated
	// summaries of an idle session agree.
	end := s.Attempts[len(s.Attempts)-1].Timestamp
	if s.ended {
		end = s.endedAt
	}
	sum.DurationSeconds = end.Sub(s.StartedAt).Seconds()

	for _, a := range s.Attempts {
		ds := sum.DifficultyBreakdown[a.Difficulty.String()]
		ds.Total++
		if a.Correct {
			ds.Correct++
		}
		sum.DifficultyBreakdown[a.Difficulty.String()] = ds
	}

	return sum, nil
}

// End marks the session completed, persists its result, and returns a
// final summary. Ending twice is harmless.
func (m *Manager) End(ctx context.Context, sessionID string) (*Summary, error) {
	s, err := m.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.ended {
		s.ended = true
		s.endedAt = m.now()

		if m.attempts != nil {
			res := store.SessionResult{
				SessionID:       s.ID,
				UserID:          s.UserID,
				Subject:         s.Subject,
				Questions:       s.QuestionsAnswered,
				Correct:         s.CorrectAnswers,
				TotalTimeSec:    s.TotalTimeSeconds,
				FinalDifficulty: s.Difficulty,
				StartedAt:       s.StartedAt,
				EndedAt:         s.endedAt,
			}
			if err := m.attempts.SaveSessionResult(ctx, res); err != nil {
				m.logger.Warn("failed to persist session result",
					zap.String("session_id", s.ID),
					zap.Error(err))
			}
		}
	}
	s.mu.Unlock()

	return m.Summary(sessionID)
}

func (m *Manager) persistAttempt(ctx context.Context, s *Session, attempt quiz.Attempt) {
	if m.attempts == nil {
		return
	}
	rec := store.AttemptRecord{
		SessionID: s.ID,
		Subject:   s.Subject,
		Attempt:   attempt,
	}
	if err := m.attempts.AppendAttempt(ctx, rec); err != nil {
		m.logger.Warn("failed to persist attempt",
			zap.String("session_id", s.ID),
			zap.String("attempt_id", attempt.ID),
			zap.Error(err))
	}
}

// profileFor fills session-dependent profile fields for prompt
// personalization. Caller holds the session lock.
func (m *Manager) profileFor(s *Session) aigen.ProfileContext {
	p := m.profile
	if len(p.Subjects) == 0 {
		p.Subjects = []string{s.Subject}
	}
	p.Difficulty = s.Difficulty.String()
	return p
}

func lastN(values []float64, n int) []float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return append([]float64(nil), values...)
}
