package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hotdog-classifier/backend/internal/models"
)

func TestRules_Normalize(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name  string
		reply string
		want  models.Label
	}{
		{
			name:  "exact positive",
			reply: "Hot Dog",
			want:  models.LabelHotDog,
		},
		{
			name:  "exact negative",
			reply: "Not Hot Dog",
			want:  models.LabelNotHotDog,
		},
		{
			name:  "positive in a sentence",
			reply: "Yes, the image clearly shows a hot dog with mustard.",
			want:  models.LabelHotDog,
		},
		{
			name:  "negative in a sentence",
			reply: "This is not a hot dog, it appears to be a sandwich.",
			want:  models.LabelNotHotDog,
		},
		{
			name:  "concatenated spelling",
			reply: "hotdog",
			want:  models.LabelHotDog,
		},
		{
			name:  "punctuation between words",
			reply: "Hot-Dog!",
			want:  models.LabelHotDog,
		},
		{
			name:  "unrelated reply",
			reply: "The image shows a golden retriever.",
			want:  models.LabelNotHotDog,
		},
		{
			name:  "empty reply",
			reply: "",
			want:  models.LabelNotHotDog,
		},
		{
			name:  "negative wins over embedded positive",
			reply: "NOT HOT DOG",
			want:  models.LabelNotHotDog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Normalize(tt.reply); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	t.Run("full rules file", func(t *testing.T) {
		path := writeRulesFile(t, "positive: [\"wiener\"]\nnegative: [\"no wiener\"]\n")

		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := rules.Normalize("a wiener in a bun"); got != models.LabelHotDog {
			t.Errorf("expected custom positive rule to match, got %q", got)
		}
		if got := rules.Normalize("sadly no wiener here"); got != models.LabelNotHotDog {
			t.Errorf("expected custom negative rule to match, got %q", got)
		}
	})

	t.Run("missing lists fall back to defaults", func(t *testing.T) {
		path := writeRulesFile(t, "positive: [\"sausage\"]\n")

		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rules.Negative) == 0 {
			t.Error("expected default negative rules")
		}
		if got := rules.Normalize("not a hot dog"); got != models.LabelNotHotDog {
			t.Errorf("expected default negative rule to match, got %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeRulesFile(t, "positive: [unclosed")

		if _, err := LoadRules(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}
