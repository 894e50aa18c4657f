package quiz

import "time"

// Kind describes how a question is asked and answered.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindShortAnswer    Kind = "short_answer"
	KindFillBlank      Kind = "fill_blank"
	KindCodeCompletion Kind = "code_completion"
)

// Source records where a question came from.
type Source string

const (
	// SourceBank marks a question from the static question bank.
	SourceBank Source = "bank"

	// SourceAI marks a question produced by the content-generation provider.
	SourceAI Source = "ai"
)

// Question is a single quiz question. Questions are immutable once
// created, either at bank initialization or by the AI gateway.
type Question struct {
	// ID uniquely identifies the question.
	ID string

	// Subject is the subject area, e.g. "Python Programming".
	Subject string

	// Topic is the specific topic within the subject.
	Topic string

	// Text is the question prompt shown to the learner.
	Text string

	// Kind selects the answer semantics (see Evaluate).
	Kind Kind

	// Difficulty is the level this question targets.
	Difficulty Difficulty

	// Options holds the answer choices for multiple-choice questions.
	// Empty for all other kinds.
	Options []string

	// Answer is the canonical correct answer as a string.
	Answer string

	// Explanation is shown to the learner after answering.
	Explanation string

	// Hints are optional scaffolding hints, ordered weakest first.
	Hints []string

	// EstimatedSeconds is the expected time to answer.
	EstimatedSeconds int

	// Tags are free-form labels used for selection heuristics.
	Tags []string

	// Metadata carries free-form annotations, never interpreted by the
	// engine.
	Metadata map[string]string

	// Source records the question's provenance.
	Source Source
}

// Attempt records one answer submission. Attempts are append-only and
// never mutated after creation.
type Attempt struct {
	ID         string
	UserID     string
	QuestionID string

	// Answer is the learner's submitted answer text, verbatim.
	Answer string

	// Correct is the evaluator's verdict.
	Correct bool

	// TimeTaken is the answer time in seconds.
	TimeTaken int

	// HintsUsed counts hints revealed before answering.
	HintsUsed int

	// Difficulty is the session difficulty in force at submission time.
	Difficulty Difficulty

	// Confidence is the learner's self-rating, 1 (guessing) to 5 (sure).
	Confidence int

	Timestamp time.Time
}
