package aigen

import (
	"fmt"
	"strings"

	"github.com/avinashb/quizmind/internal/quiz"
)

const questionSystemPrompt = `You are a tutor generating quiz questions for a personalized learning app.

Rules:
- Generate a single question appropriate for the given subject and difficulty level.
- The question text must be clear and self-contained.
- For multiple_choice, provide exactly 4 options where exactly one is correct. Distractors should reflect common mistakes, not random values.
- For true_false, the correct answer is "True" or "False" and options are empty.
- The explanation should teach, not just restate the answer.
- Make it educational and appropriate for the difficulty level.`

const feedbackSystemPrompt = `You are an encouraging tutor reviewing a student's quiz attempt.

Provide:
1. Encouraging feedback (2-3 sentences)
2. Specific explanation of why the answer is right/wrong
3. A helpful tip for similar questions
4. Next steps recommendation

Keep it concise, encouraging, and educational. Respond in plain text.`

// ProfileContext carries learner attributes used only to personalize
// prompts. The engine never inspects it otherwise.
type ProfileContext struct {
	Name          string
	LearningStyle string
	Subjects      []string
	Difficulty    string
}

// buildQuestionPrompt constructs the user message for question generation.
func buildQuestionPrompt(subject string, difficulty quiz.Difficulty, previousMistake string, profile ProfileContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a %s level quiz question for %s.\n", strings.ToLower(difficulty.String()), subject)

	if previousMistake != "" {
		fmt.Fprintf(&b, "\nThe student previously got this wrong: %s\n", previousMistake)
		b.WriteString("Make this question a bit trickier and include a hint.\n")
	}

	writeProfile(&b, profile)

	return b.String()
}

// buildFeedbackPrompt constructs the user message for attempt feedback.
func buildFeedbackPrompt(q *quiz.Question, attempt quiz.Attempt, accuracy float64, profile ProfileContext) string {
	var b strings.Builder

	b.WriteString("Review this quiz attempt:\n\n")
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Correct Answer: %s\n", q.Answer)
	fmt.Fprintf(&b, "Student Answer: %s\n", attempt.Answer)
	fmt.Fprintf(&b, "Is Correct: %t\n", attempt.Correct)
	fmt.Fprintf(&b, "Difficulty Level: %s\n", q.Difficulty)
	fmt.Fprintf(&b, "Time Taken: %d seconds\n", attempt.TimeTaken)
	fmt.Fprintf(&b, "Student's Current Accuracy: %.0f%%\n", accuracy*100)

	writeProfile(&b, profile)

	return b.String()
}

func writeProfile(b *strings.Builder, profile ProfileContext) {
	if profile.Name == "" && profile.LearningStyle == "" {
		return
	}

	b.WriteString("\nLearner profile:\n")
	if profile.Name != "" {
		fmt.Fprintf(b, "Name: %s\n", profile.Name)
	}
	if profile.LearningStyle != "" {
		fmt.Fprintf(b, "Learning style: %s\n", profile.LearningStyle)
	}
	if len(profile.Subjects) > 0 {
		fmt.Fprintf(b, "Subjects: %s\n", strings.Join(profile.Subjects, ", "))
	}
	if profile.Difficulty != "" {
		fmt.Fprintf(b, "Current level: %s\n", profile.Difficulty)
	}
}
