package bank

import (
	"math/rand"

	"github.com/avinashb/quizmind/internal/quiz"
)

// PerformanceView is the slice of session state a selection strategy may
// look at. Strategies are ranking heuristics, not correctness logic.
type PerformanceView struct {
	// RecentAccuracy is the mean of the last few trend entries
	// (1.0 when there is no history yet).
	RecentAccuracy float64

	// TimePressure grows above 1.0 when the learner is answering
	// slower than the questions' estimates.
	TimePressure float64
}

// Strategy picks one question from a non-empty candidate list.
type Strategy interface {
	Select(candidates []*quiz.Question, view PerformanceView) *quiz.Question
}

// Sequential always picks the first candidate. Deterministic; used in
// tests and by hosts that need reproducible sessions.
type Sequential struct{}

func (Sequential) Select(candidates []*quiz.Question, _ PerformanceView) *quiz.Question {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// Weighted is the default selection heuristic: weighted random choice
// that boosts review questions when recent accuracy is low and shorter
// questions when the learner is under time pressure.
type Weighted struct {
	rng *rand.Rand
}

// NewWeighted creates a Weighted strategy with the given random source.
func NewWeighted(rng *rand.Rand) *Weighted {
	return &Weighted{rng: rng}
}

const (
	reviewBoostThreshold = 0.6
	reviewBoost          = 1.5

	timePressureThreshold = 1.2
	shortQuestionSeconds  = 60
	shortQuestionBoost    = 1.3
)

func (w *Weighted) Select(candidates []*quiz.Question, view PerformanceView) *quiz.Question {
	if len(candidates) == 0 {
		return nil
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, q := range candidates {
		weight := 1.0
		if view.RecentAccuracy < reviewBoostThreshold {
			weight *= reviewBoost
		}
		if view.TimePressure > timePressureThreshold && q.EstimatedSeconds < shortQuestionSeconds {
			weight *= shortQuestionBoost
		}
		weights[i] = weight
		total += weight
	}

	r := w.rng.Float64() * total
	for i, weight := range weights {
		r -= weight
		if r < 0 {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}
