package session

import (
	"github.com/avinashb/quizmind/internal/aigen"
	"github.com/avinashb/quizmind/internal/quiz"
)

// Result is returned from Submit. It snapshots the session right after
// the attempt was applied.
type Result struct {
	Correct       bool             `json:"is_correct"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation"`
	Feedback      string           `json:"ai_feedback"`
	// FeedbackProvenance is "ai" or "fallback" so hosts can show a
	// degraded-mode notice.
	FeedbackProvenance aigen.Provenance `json:"feedback_provenance"`

	CurrentAccuracy   float64         `json:"current_accuracy"`
	DifficultyChanged bool            `json:"difficulty_changed"`
	NewDifficulty     quiz.Difficulty `json:"new_difficulty"`

	// RecentTrend holds the last 5 rolling-accuracy snapshots.
	RecentTrend []float64 `json:"performance_trend"`

	Stats Stats `json:"session_stats"`
}

// Stats is a snapshot of session counters.
type Stats struct {
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
	TotalTimeSeconds  int     `json:"total_time"`
	AverageSeconds    float64 `json:"average_time"`
}

// DifficultyStats counts attempts at one difficulty level.
type DifficultyStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Summary aggregates a whole session. A session with no attempts yet
// yields a zeroed summary, not an error.
type Summary struct {
	SessionID       string          `json:"session_id"`
	Subject         string          `json:"subject"`
	DurationSeconds float64         `json:"duration_seconds"`

	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
	Accuracy          float64 `json:"accuracy"`
	AverageSeconds    float64 `json:"average_time_per_question"`
	TotalTimeSeconds  int     `json:"total_time_spent"`

	FinalDifficulty  quiz.Difficulty `json:"final_difficulty"`
	PerformanceTrend []float64       `json:"performance_trend"`

	// DifficultyBreakdown groups correct/total counts by the difficulty
	// in force at each attempt.
	DifficultyBreakdown map[string]DifficultyStats `json:"difficulty_breakdown"`
}
