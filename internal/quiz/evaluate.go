package quiz

import (
	"math"
	"strconv"
	"strings"
)

// numericTolerance is the maximum absolute difference for two numeric
// short answers to be considered equal.
const numericTolerance = 0.01

// Evaluate compares a submitted answer against the question's correct
// answer. It is pure and safe to call from multiple sessions at once.
//
// Comparison rules per kind:
//   - MultipleChoice, FillBlank: case-insensitive, whitespace-trimmed
//     exact match.
//   - TrueFalse: both sides normalized to booleans via the token sets
//     {true, t, yes, y} and {false, f, no, n}. An unrecognized token is
//     never correct.
//   - ShortAnswer: numeric comparison within a small tolerance when both
//     sides parse as numbers, otherwise trimmed case-insensitive match.
//   - Anything else: trimmed case-insensitive match.
func Evaluate(q *Question, submitted string) bool {
	submitted = strings.TrimSpace(submitted)
	correct := strings.TrimSpace(q.Answer)

	switch q.Kind {
	case KindTrueFalse:
		sv, sok := parseBoolToken(submitted)
		cv, cok := parseBoolToken(correct)
		return sok && cok && sv == cv

	case KindShortAnswer:
		sf, serr := strconv.ParseFloat(submitted, 64)
		cf, cerr := strconv.ParseFloat(correct, 64)
		if serr == nil && cerr == nil {
			return math.Abs(sf-cf) < numericTolerance
		}
		return strings.EqualFold(submitted, correct)

	default:
		// MultipleChoice, FillBlank, CodeCompletion, and unknown kinds.
		return strings.EqualFold(submitted, correct)
	}
}

// parseBoolToken maps a true/false answer token to a boolean.
func parseBoolToken(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y":
		return true, true
	case "false", "f", "no", "n":
		return false, true
	}
	return false, false
}
