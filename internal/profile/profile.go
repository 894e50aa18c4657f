// Package profile stores the learner profile as a local JSON file.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avinashb/quizmind/internal/aigen"
	"github.com/avinashb/quizmind/internal/quiz"
)

// Profile describes the learner. It only personalizes prompts and
// picks starting difficulty; the engine never branches on it.
type Profile struct {
	Name          string   `json:"name"`
	LearningStyle string   `json:"learning_style"`
	Subjects      []string `json:"subjects"`
	Level         string   `json:"level"`
}

// Default returns the profile used when none has been saved yet.
func Default() *Profile {
	return &Profile{
		Name:          "Student",
		LearningStyle: "Visual",
		Level:         quiz.Beginner.String(),
	}
}

// DefaultPath resolves the profile file location. QUIZMIND_PROFILE
// overrides; otherwise it sits next to the database under the XDG data
// directory.
func DefaultPath() (string, error) {
	if p := os.Getenv("QUIZMIND_PROFILE"); p != "" {
		return p, nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataDir, "quizmind", "profile.json"), nil
}

// Load reads the profile at path. A missing file yields the default
// profile, not an error.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if p.Name == "" {
		p.Name = Default().Name
	}
	return &p, nil
}

// Save writes the profile to path, creating parent directories as
// needed.
func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// StartingDifficulty parses the profile level, defaulting to Beginner
// when unset or unrecognized.
func (p *Profile) StartingDifficulty() quiz.Difficulty {
	d, err := quiz.ParseDifficulty(p.Level)
	if err != nil {
		return quiz.Beginner
	}
	return d
}

// Context converts the profile to the prompt-personalization shape.
func (p *Profile) Context() aigen.ProfileContext {
	return aigen.ProfileContext{
		Name:          p.Name,
		LearningStyle: p.LearningStyle,
		Subjects:      append([]string(nil), p.Subjects...),
		Difficulty:    p.Level,
	}
}
