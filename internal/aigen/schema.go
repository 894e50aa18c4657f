package aigen

import "github.com/avinashb/quizmind/internal/llm"

// QuestionSchema defines the JSON schema for generated quiz questions.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single quiz question with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner",
			},
			"question_type": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple_choice", "true_false", "short_answer", "fill_blank", "code_completion"},
				"description": "How the learner answers the question",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Answer options for multiple_choice. Empty array for other types.",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For multiple_choice: the text of the correct option.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct answer is correct",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The specific topic this question covers",
			},
			"estimated_time": map[string]any{
				"type":        "integer",
				"minimum":     10,
				"description": "Estimated time to answer, in seconds",
			},
		},
		"required":             []any{"question_text", "question_type", "correct_answer", "explanation"},
		"additionalProperties": false,
	},
}
