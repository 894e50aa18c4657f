package aigen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avinashb/quizmind/internal/quiz"
)

// GeneratedQuestion is the typed result of parsing a model response,
// before it is stamped with identity and session attributes.
type GeneratedQuestion struct {
	Text          string   `json:"question_text"`
	Kind          string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
	EstimatedTime int      `json:"estimated_time"`
}

// ParseQuestion parses a model response into a GeneratedQuestion. It
// first attempts a strict JSON decode, then falls back to the labeled
// line format (Q:, Options:, Answer:, Explain:). A response that fits
// neither yields an error.
func ParseQuestion(raw []byte) (*GeneratedQuestion, error) {
	if gq, err := parseJSON(raw); err == nil {
		return gq, nil
	}

	gq, err := parseLabeled(string(raw))
	if err != nil {
		return nil, fmt.Errorf("response is neither valid JSON nor labeled text: %w", err)
	}
	return gq, nil
}

func parseJSON(raw []byte) (*GeneratedQuestion, error) {
	// Models sometimes wrap JSON in prose or code fences. Extract the
	// outermost object before decoding.
	start := strings.IndexByte(string(raw), '{')
	end := strings.LastIndexByte(string(raw), '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found")
	}

	var gq GeneratedQuestion
	if err := json.Unmarshal(raw[start:end+1], &gq); err != nil {
		return nil, err
	}
	return &gq, validateGenerated(&gq)
}

// parseLabeled extracts a question from the labeled line format:
//
//	Q: What is 2+2?
//	Options: 3 | 4 | 5 | 6
//	Answer: 4
//	Explain: Basic addition.
//
// Q: and Answer: are required. Lines without a label continue the
// previous field.
func parseLabeled(text string) (*GeneratedQuestion, error) {
	gq := &GeneratedQuestion{}
	var current *string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case hasLabel(trimmed, "Q:"):
			gq.Text = labelValue(trimmed, "Q:")
			current = &gq.Text
		case hasLabel(trimmed, "Options:"):
			gq.Options = splitOptions(labelValue(trimmed, "Options:"))
			current = nil
		case hasLabel(trimmed, "Answer:"):
			gq.CorrectAnswer = labelValue(trimmed, "Answer:")
			current = &gq.CorrectAnswer
		case hasLabel(trimmed, "Explain:"):
			gq.Explanation = labelValue(trimmed, "Explain:")
			current = &gq.Explanation
		default:
			if current != nil {
				*current += " " + trimmed
			}
		}
	}

	if gq.Text == "" || gq.CorrectAnswer == "" {
		return nil, fmt.Errorf("missing Q: or Answer: label")
	}

	gq.Kind = inferKind(gq)
	return gq, nil
}

func hasLabel(line, label string) bool {
	return len(line) >= len(label) && strings.EqualFold(line[:len(label)], label)
}

func labelValue(line, label string) string {
	return strings.TrimSpace(line[len(label):])
}

// splitOptions splits an options line on pipes, or commas when no pipe
// is present.
func splitOptions(s string) []string {
	sep := "|"
	if !strings.Contains(s, "|") {
		sep = ","
	}

	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// inferKind guesses the question kind for labeled-text responses,
// which carry no explicit type.
func inferKind(gq *GeneratedQuestion) string {
	if len(gq.Options) > 0 {
		return string(quiz.KindMultipleChoice)
	}
	switch strings.ToLower(gq.CorrectAnswer) {
	case "true", "false":
		return string(quiz.KindTrueFalse)
	}
	return string(quiz.KindShortAnswer)
}

func validateGenerated(gq *GeneratedQuestion) error {
	if gq.Text == "" {
		return fmt.Errorf("missing question_text")
	}
	if gq.CorrectAnswer == "" {
		return fmt.Errorf("missing correct_answer")
	}

	switch quiz.Kind(gq.Kind) {
	case quiz.KindMultipleChoice, quiz.KindTrueFalse, quiz.KindShortAnswer,
		quiz.KindFillBlank, quiz.KindCodeCompletion:
	default:
		return fmt.Errorf("unknown question_type %q", gq.Kind)
	}

	return nil
}
