package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is the ordinal question difficulty. Levels are totally
// ordered and adjusted one step at a time, never skipping a level.
type Difficulty int

const (
	Beginner Difficulty = iota + 1
	Intermediate
	Advanced
	Expert
)

// String returns the display name of the level.
func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Expert:
		return "Expert"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// Valid reports whether d is one of the four defined levels.
func (d Difficulty) Valid() bool {
	return d >= Beginner && d <= Expert
}

// Promote returns the next level up, capped at Expert.
func (d Difficulty) Promote() Difficulty {
	if d >= Expert {
		return Expert
	}
	return d + 1
}

// Demote returns the next level down, capped at Beginner.
func (d Difficulty) Demote() Difficulty {
	if d <= Beginner {
		return Beginner
	}
	return d - 1
}

// ParseDifficulty parses a display name back to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Beginner; d <= Expert; d++ {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty: %q", s)
}

// Accuracy thresholds for difficulty adjustment. Both are evaluated
// against lifetime session accuracy, not a sliding window.
const (
	PromoteAccuracy = 0.80
	DemoteAccuracy  = 0.40

	promoteStreak = 3
	demoteStreak  = 2
)

// AdjustInput is the performance snapshot the controller decides on.
type AdjustInput struct {
	// Accuracy is correct/answered over the whole session so far.
	Accuracy float64

	// ConsecutiveCorrect is the current correct-answer streak.
	ConsecutiveCorrect int

	// ConsecutiveIncorrect is the current wrong-answer streak.
	ConsecutiveIncorrect int

	// Current is the session's difficulty before adjustment.
	Current Difficulty
}

// Adjust decides the difficulty after an attempt. It is pure: the same
// input always yields the same output, and it moves at most one level.
//
// Promotion wins over demotion when both could apply (it cannot happen
// with these thresholds, but the priority order is fixed regardless).
func Adjust(in AdjustInput) Difficulty {
	if in.Accuracy >= PromoteAccuracy &&
		in.ConsecutiveCorrect >= promoteStreak &&
		in.Current != Expert {
		return in.Current.Promote()
	}

	if in.Accuracy <= DemoteAccuracy &&
		in.ConsecutiveIncorrect >= demoteStreak &&
		in.Current != Beginner {
		return in.Current.Demote()
	}

	return in.Current
}
