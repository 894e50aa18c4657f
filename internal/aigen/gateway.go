package aigen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avinashb/quizmind/internal/llm"
	"github.com/avinashb/quizmind/internal/quiz"
)

// Provenance records whether content came from the model or a local
// fallback, so callers can show a degraded-mode notice.
type Provenance string

const (
	ProvenanceAI       Provenance = "ai"
	ProvenanceFallback Provenance = "fallback"
)

// Feedback is the result of a feedback request. It is always usable;
// on model failure Text holds a locally synthesized message.
type Feedback struct {
	Text       string
	Provenance Provenance
}

// Config tunes gateway behavior.
type Config struct {
	// Timeout bounds a single generation call, retries included.
	Timeout time.Duration

	QuestionMaxTokens int
	FeedbackMaxTokens int
	Temperature       float64
}

// DefaultConfig returns gateway defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:           30 * time.Second,
		QuestionMaxTokens: 1024,
		FeedbackMaxTokens: 512,
		Temperature:       0.7,
	}
}

// Gateway wraps the model provider behind question and feedback
// generation. Provider errors never escape it: question generation
// reports failure with a nil question, feedback degrades to a local
// fallback.
type Gateway struct {
	provider llm.Provider
	config   Config
	newID    func() string
	now      func() time.Time
}

// New creates a Gateway backed by the given provider.
func New(provider llm.Provider, cfg Config) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Gateway{
		provider: provider,
		config:   cfg,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// QuestionRequest describes the question to generate.
type QuestionRequest struct {
	Subject    string
	Difficulty quiz.Difficulty

	// PreviousMistake, when set, asks for a trickier question with a
	// hint targeting the student's last error.
	PreviousMistake string

	Profile ProfileContext
}

// GenerateQuestion asks the model for a novel question. It returns
// (nil, error) when the model fails or its output cannot be parsed;
// callers treat that as bank exhaustion, never as a hard failure.
func (g *Gateway) GenerateQuestion(ctx context.Context, req QuestionRequest) (*quiz.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := g.provider.Complete(ctx, llm.Request{
		System:      questionSystemPrompt,
		Prompt:      buildQuestionPrompt(req.Subject, req.Difficulty, req.PreviousMistake, req.Profile),
		Schema:      QuestionSchema,
		MaxTokens:   g.config.QuestionMaxTokens,
		Temperature: g.config.Temperature,
	})

	var raw []byte
	switch {
	case err == nil:
		raw = resp.Content
	default:
		// A schema-invalid response may still carry salvageable text
		// in the labeled line format.
		var invalid *llm.ErrInvalidResponse
		if !errors.As(err, &invalid) || len(invalid.Content) == 0 {
			return nil, fmt.Errorf("question generation: %w", err)
		}
		raw = invalid.Content
	}

	gq, err := ParseQuestion(raw)
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	return g.buildQuestion(gq, req), nil
}

func (g *Gateway) buildQuestion(gq *GeneratedQuestion, req QuestionRequest) *quiz.Question {
	topic := gq.Topic
	if topic == "" {
		topic = "General"
	}
	estimated := gq.EstimatedTime
	if estimated <= 0 {
		estimated = 60
	}

	return &quiz.Question{
		ID:               "ai_" + g.newID(),
		Subject:          req.Subject,
		Topic:            topic,
		Text:             gq.Text,
		Kind:             quiz.Kind(gq.Kind),
		Difficulty:       req.Difficulty,
		Options:          gq.Options,
		Answer:           gq.CorrectAnswer,
		Explanation:      gq.Explanation,
		EstimatedSeconds: estimated,
		Tags:             []string{"ai_generated"},
		Metadata:         map[string]string{"generated_at": g.now().UTC().Format(time.RFC3339)},
		Source:           quiz.SourceAI,
	}
}

// GenerateFeedback asks the model for personalized feedback on an
// attempt. It never fails: on any provider error the feedback is
// synthesized locally from the question's explanation.
func (g *Gateway) GenerateFeedback(ctx context.Context, q *quiz.Question, attempt quiz.Attempt, accuracy float64, profile ProfileContext) Feedback {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "feedback")

	resp, err := g.provider.Complete(ctx, llm.Request{
		System:      feedbackSystemPrompt,
		Prompt:      buildFeedbackPrompt(q, attempt, accuracy, profile),
		MaxTokens:   g.config.FeedbackMaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return Feedback{Text: fallbackFeedback(q, attempt), Provenance: ProvenanceFallback}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Feedback{Text: fallbackFeedback(q, attempt), Provenance: ProvenanceFallback}
	}

	return Feedback{Text: text, Provenance: ProvenanceAI}
}

// fallbackFeedback builds a deterministic local substitute when the
// model is unavailable.
func fallbackFeedback(q *quiz.Question, attempt quiz.Attempt) string {
	if attempt.Correct {
		return fmt.Sprintf("Great job! You correctly answered this %s level question. %s",
			strings.ToLower(q.Difficulty.String()), q.Explanation)
	}
	return fmt.Sprintf("Not quite right. %s Keep practicing - you're making good progress!",
		q.Explanation)
}
