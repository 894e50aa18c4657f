package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/avinashb/quizmind/internal/llm"
	"github.com/avinashb/quizmind/internal/quiz"
)

func testGateway(mock *llm.MockProvider) *Gateway {
	g := New(mock, DefaultConfig())
	g.newID = func() string { return "test-id" }
	return g
}

func questionJSON() json.RawMessage {
	return json.RawMessage(`{
		"question_text": "What keyword defines a function in Python?",
		"question_type": "short_answer",
		"options": [],
		"correct_answer": "def",
		"explanation": "Functions are defined with the def keyword.",
		"topic": "Functions",
		"estimated_time": 45
	}`)
}

func TestGenerateQuestion_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionJSON()})
	g := testGateway(mock)

	q, err := g.GenerateQuestion(context.Background(), QuestionRequest{
		Subject:    "Python Programming",
		Difficulty: quiz.Intermediate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.ID != "ai_test-id" {
		t.Errorf("unexpected id: %q", q.ID)
	}
	if q.Subject != "Python Programming" {
		t.Errorf("unexpected subject: %q", q.Subject)
	}
	if q.Difficulty != quiz.Intermediate {
		t.Errorf("unexpected difficulty: %v", q.Difficulty)
	}
	if q.Kind != quiz.KindShortAnswer {
		t.Errorf("unexpected kind: %q", q.Kind)
	}
	if q.Source != quiz.SourceAI {
		t.Errorf("expected AI provenance, got %q", q.Source)
	}
	if q.EstimatedSeconds != 45 {
		t.Errorf("unexpected estimated time: %d", q.EstimatedSeconds)
	}
	if len(q.Tags) != 1 || q.Tags[0] != "ai_generated" {
		t.Errorf("unexpected tags: %v", q.Tags)
	}
}

func TestGenerateQuestion_SalvagesLabeledText(t *testing.T) {
	labeled := "Q: What is the capital of France?\nOptions: Paris | London | Rome | Berlin\nAnswer: Paris\nExplain: Paris has been the capital since 987."
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{
			Content: json.RawMessage(labeled),
			Err:     errors.New("schema validation failed"),
		},
	})
	g := testGateway(mock)

	q, err := g.GenerateQuestion(context.Background(), QuestionRequest{
		Subject:    "Geography",
		Difficulty: quiz.Beginner,
	})
	if err != nil {
		t.Fatalf("expected labeled text to be salvaged, got: %v", err)
	}
	if q.Answer != "Paris" {
		t.Errorf("unexpected answer: %q", q.Answer)
	}
	if q.Kind != quiz.KindMultipleChoice {
		t.Errorf("unexpected kind: %q", q.Kind)
	}
}

func TestGenerateQuestion_ProviderDown(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	g := testGateway(mock)

	q, err := g.GenerateQuestion(context.Background(), QuestionRequest{
		Subject:    "Mathematics",
		Difficulty: quiz.Beginner,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if q != nil {
		t.Fatal("expected nil question on failure")
	}
}

func TestGenerateQuestion_UnparsableContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("I cannot generate a question right now."),
	})
	g := testGateway(mock)

	if _, err := g.GenerateQuestion(context.Background(), QuestionRequest{
		Subject:    "Mathematics",
		Difficulty: quiz.Beginner,
	}); err == nil {
		t.Fatal("expected error for unparsable content")
	}
}

func TestGenerateQuestion_DefaultsTopicAndTime(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"question_text":"x?","question_type":"short_answer","correct_answer":"y","explanation":"z"}`),
	})
	g := testGateway(mock)

	q, err := g.GenerateQuestion(context.Background(), QuestionRequest{
		Subject:    "Mathematics",
		Difficulty: quiz.Advanced,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Topic != "General" {
		t.Errorf("expected default topic, got %q", q.Topic)
	}
	if q.EstimatedSeconds != 60 {
		t.Errorf("expected default estimated time, got %d", q.EstimatedSeconds)
	}
}

func feedbackFixture(correct bool) (*quiz.Question, quiz.Attempt) {
	q := &quiz.Question{
		Text:        "What is a dict?",
		Answer:      "Dictionary",
		Explanation: "A dict maps keys to values.",
		Difficulty:  quiz.Intermediate,
	}
	attempt := quiz.Attempt{
		Answer:    "Dictionary",
		Correct:   correct,
		TimeTaken: 12,
	}
	return q, attempt
}

func TestGenerateFeedback_FromModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Nice work! You clearly understand dictionaries."),
	})
	g := testGateway(mock)

	q, attempt := feedbackFixture(true)
	fb := g.GenerateFeedback(context.Background(), q, attempt, 0.9, ProfileContext{})

	if fb.Provenance != ProvenanceAI {
		t.Errorf("expected ai provenance, got %q", fb.Provenance)
	}
	if !strings.Contains(fb.Text, "Nice work") {
		t.Errorf("unexpected feedback: %q", fb.Text)
	}
}

func TestGenerateFeedback_FallbackOnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	g := testGateway(mock)

	q, attempt := feedbackFixture(true)
	fb := g.GenerateFeedback(context.Background(), q, attempt, 0.9, ProfileContext{})

	if fb.Provenance != ProvenanceFallback {
		t.Errorf("expected fallback provenance, got %q", fb.Provenance)
	}
	if !strings.Contains(fb.Text, "Great job!") {
		t.Errorf("expected correct-answer fallback, got %q", fb.Text)
	}
	if !strings.Contains(fb.Text, q.Explanation) {
		t.Errorf("expected explanation in fallback, got %q", fb.Text)
	}
}

func TestGenerateFeedback_FallbackIncorrect(t *testing.T) {
	mock := llm.NewMockProvider() // Empty queue: every call fails.
	g := testGateway(mock)

	q, attempt := feedbackFixture(false)
	fb := g.GenerateFeedback(context.Background(), q, attempt, 0.4, ProfileContext{})

	if fb.Provenance != ProvenanceFallback {
		t.Errorf("expected fallback provenance, got %q", fb.Provenance)
	}
	if !strings.Contains(fb.Text, "Not quite right.") {
		t.Errorf("expected incorrect-answer fallback, got %q", fb.Text)
	}
}

func TestGenerateFeedback_FallbackOnEmptyResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("   ")})
	g := testGateway(mock)

	q, attempt := feedbackFixture(true)
	fb := g.GenerateFeedback(context.Background(), q, attempt, 1.0, ProfileContext{})

	if fb.Provenance != ProvenanceFallback {
		t.Errorf("expected fallback provenance, got %q", fb.Provenance)
	}
}
