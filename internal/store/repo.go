package store

import (
	"context"
	"time"

	"github.com/avinashb/quizmind/internal/quiz"
)

// AttemptRecord is one attempt row as written to the history log.
type AttemptRecord struct {
	SessionID string
	Subject   string
	Attempt   quiz.Attempt
}

// SessionResult summarizes a finished session.
type SessionResult struct {
	SessionID       string
	UserID          string
	Subject         string
	Questions       int
	Correct         int
	TotalTimeSec    int
	FinalDifficulty quiz.Difficulty
	StartedAt       time.Time
	EndedAt         time.Time
}

// SubjectStats aggregates a user's lifetime history for one subject.
type SubjectStats struct {
	Attempts int
	Correct  int
	Accuracy float64
}

// AttemptRepo records quiz history and answers aggregate queries over it.
type AttemptRepo interface {
	// AppendAttempt records a single answer submission.
	AppendAttempt(ctx context.Context, rec AttemptRecord) error

	// SaveSessionResult records a finished session's summary.
	SaveSessionResult(ctx context.Context, res SessionResult) error

	// SubjectStats returns lifetime accuracy for a user and subject.
	// Zero-valued stats when there is no history.
	SubjectStats(ctx context.Context, userID, subject string) (SubjectStats, error)
}

// LLMRequestEventData captures one call to the content-generation
// provider for observability.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to provider call events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
