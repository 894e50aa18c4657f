package session

import (
	"sync"
	"time"

	"github.com/avinashb/quizmind/internal/quiz"
)

// Session is the mutable aggregate for one quiz run. All mutation goes
// through the Manager, which serializes access with the per-session
// lock; no state is shared between sessions.
type Session struct {
	mu sync.Mutex

	ID        string
	UserID    string
	Subject   string
	StartedAt time.Time

	// Difficulty is the level currently in force. It moves at most one
	// step per submitted answer.
	Difficulty quiz.Difficulty

	QuestionsAnswered int
	CorrectAnswers    int
	TotalTimeSeconds  int

	// PerformanceTrend holds one rolling-accuracy snapshot per answered
	// question. Its length always equals QuestionsAnswered.
	PerformanceTrend []float64

	ConsecutiveCorrect   int
	ConsecutiveIncorrect int
	TimePressureFactor   float64
	ConfidenceHistory    []int

	Attempts []quiz.Attempt

	// answered tracks question ids already served and answered, for
	// repository exclusion.
	answered map[string]bool

	// generated caches AI questions served to this session so Submit
	// can resolve their ids.
	generated map[string]*quiz.Question

	// lastMistake is the text of the most recent incorrectly answered
	// question, used to steer AI generation.
	lastMistake string

	ended   bool
	endedAt time.Time
}

// Accuracy returns correct answers over questions answered for the
// whole session, or 0 before any attempt.
func (s *Session) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}

// recentAccuracy averages the last n trend entries, 1.0 with no
// history so a fresh session is not treated as struggling.
func (s *Session) recentAccuracy(n int) float64 {
	if len(s.PerformanceTrend) == 0 {
		return 1.0
	}
	start := len(s.PerformanceTrend) - n
	if start < 0 {
		start = 0
	}
	window := s.PerformanceTrend[start:]

	var sum float64
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

// updateTimePressure tracks how the learner's pace compares to the
// question's estimate. Values above 1 mean they are running slow.
func (s *Session) updateTimePressure(timeTaken, estimatedSeconds int) {
	if estimatedSeconds <= 0 {
		return
	}
	ratio := float64(timeTaken) / float64(estimatedSeconds)

	// Exponential moving average keeps one outlier from dominating.
	const alpha = 0.3
	s.TimePressureFactor = (1-alpha)*s.TimePressureFactor + alpha*ratio
}
