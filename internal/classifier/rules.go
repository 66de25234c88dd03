package classifier

import (
	"fmt"
	"os"
	"strings"

	"github.com/hotdog-classifier/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// Rules maps free-text model replies onto the two fixed labels.
// Negative phrases are checked before positive ones, so that
// "not a hot dog" never matches on the "hot dog" substring.
type Rules struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// DefaultRules returns the built-in reply matching rules.
func DefaultRules() Rules {
	return Rules{
		Positive: []string{"hot dog", "hotdog"},
		Negative: []string{"not hot dog", "not a hot dog", "no hot dog", "not hotdog"},
	}
}

// LoadRules reads matching rules from a YAML file. Missing lists fall back
// to the defaults.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parsing rules file: %w", err)
	}

	defaults := DefaultRules()
	if len(rules.Positive) == 0 {
		rules.Positive = defaults.Positive
	}
	if len(rules.Negative) == 0 {
		rules.Negative = defaults.Negative
	}

	return rules, nil
}

// Normalize reduces a model reply to one of the two labels. Replies matching
// no rule normalize to "Not Hot Dog".
func (r Rules) Normalize(reply string) models.Label {
	cleaned := cleanReply(reply)

	for _, phrase := range r.Negative {
		if strings.Contains(cleaned, cleanReply(phrase)) {
			return models.LabelNotHotDog
		}
	}
	for _, phrase := range r.Positive {
		if strings.Contains(cleaned, cleanReply(phrase)) {
			return models.LabelHotDog
		}
	}

	return models.LabelNotHotDog
}

// cleanReply lowercases a reply and collapses punctuation to spaces.
func cleanReply(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}
