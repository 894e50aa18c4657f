package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avinashb/quizmind/internal/quiz"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Student" {
		t.Errorf("unexpected default name: %q", p.Name)
	}
	if p.StartingDifficulty() != quiz.Beginner {
		t.Errorf("unexpected default difficulty: %v", p.StartingDifficulty())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.json")

	p := &Profile{
		Name:          "Ada",
		LearningStyle: "Kinesthetic",
		Subjects:      []string{"Mathematics", "Python Programming"},
		Level:         "Advanced",
	}
	if err := p.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "Ada" || loaded.LearningStyle != "Kinesthetic" {
		t.Errorf("unexpected profile: %+v", loaded)
	}
	if loaded.StartingDifficulty() != quiz.Advanced {
		t.Errorf("unexpected difficulty: %v", loaded.StartingDifficulty())
	}

	ctx := loaded.Context()
	if ctx.Name != "Ada" || len(ctx.Subjects) != 2 {
		t.Errorf("unexpected context: %+v", ctx)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed profile")
	}
}

func TestStartingDifficulty_Unrecognized(t *testing.T) {
	p := &Profile{Level: "Wizard"}
	if p.StartingDifficulty() != quiz.Beginner {
		t.Errorf("expected Beginner fallback, got %v", p.StartingDifficulty())
	}
}
