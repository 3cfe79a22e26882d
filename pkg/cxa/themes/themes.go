// Package themes assigns rule-based, multi-label themes to review text
// by matching a fixed taxonomy of trigger phrases.
package themes

import (
	"fmt"
	"strings"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/internalerr"
)

// Theme is one taxonomy entry: a human-readable name and the trigger
// phrases that activate it. Triggers may contain spaces, so matching
// happens on substring containment of the lowercased original text
// rather than on tokenized form.
type Theme struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// Taxonomy is an immutable, ordered theme set. It is constructed once,
// passed into the pipeline explicitly, and safe for unsynchronized
// concurrent reads. Declaration order is the canonical render order.
type Taxonomy struct {
	themes []Theme
}

// New builds a taxonomy from the given themes. Every theme needs a name,
// at least one trigger and a unique name; triggers are lowercased at
// construction so matching never re-normalizes them.
func New(themes []Theme) (*Taxonomy, error) {
	if len(themes) == 0 {
		return nil, fmt.Errorf("%w: taxonomy has no themes", internalerr.ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(themes))
	owned := make([]Theme, len(themes))
	for i, th := range themes {
		name := strings.TrimSpace(th.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: theme %d has no name", internalerr.ErrInvalidConfig, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate theme %q", internalerr.ErrInvalidConfig, name)
		}
		seen[name] = struct{}{}
		if len(th.Triggers) == 0 {
			return nil, fmt.Errorf("%w: theme %q has no triggers", internalerr.ErrInvalidConfig, name)
		}

		triggers := make([]string, len(th.Triggers))
		for j, trig := range th.Triggers {
			trig = strings.ToLower(strings.TrimSpace(trig))
			if trig == "" {
				return nil, fmt.Errorf("%w: theme %q has an empty trigger", internalerr.ErrInvalidConfig, name)
			}
			triggers[j] = trig
		}
		owned[i] = Theme{Name: name, Triggers: triggers}
	}

	return &Taxonomy{themes: owned}, nil
}

// Assign returns the themes whose trigger phrases occur in the
// lowercased text, in declaration order. The first matching trigger
// decides per theme, but multiple distinct themes may match one review.
// Empty text yields no themes.
func (t *Taxonomy) Assign(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var matched []string
	for _, th := range t.themes {
		for _, trig := range th.Triggers {
			if strings.Contains(lower, trig) {
				matched = append(matched, th.Name)
				break
			}
		}
	}
	return matched
}

// Names returns the theme names in declaration order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.themes))
	for i, th := range t.themes {
		names[i] = th.Name
	}
	return names
}

// Len returns the number of themes.
func (t *Taxonomy) Len() int {
	return len(t.themes)
}

// Default returns the seven-theme banking-app taxonomy.
func Default() *Taxonomy {
	tax, err := New([]Theme{
		{Name: "Account Access Issues", Triggers: []string{
			"login", "password", "account", "locked", "access", "sign in",
			"authentication", "verify", "otp", "code", "unlock", "reset",
		}},
		{Name: "Transaction Performance", Triggers: []string{
			"transfer", "transaction", "slow", "loading", "payment", "send money",
			"receive", "delay", "pending", "processing", "speed", "fast", "quick",
		}},
		{Name: "Technical Issues", Triggers: []string{
			"crash", "bug", "error", "freeze", "not working", "broken", "issue",
			"problem", "fail", "glitch", "stuck", "down", "offline",
		}},
		{Name: "User Interface & Experience", Triggers: []string{
			"ui", "interface", "design", "easy", "simple", "user friendly",
			"navigation", "layout", "look", "beautiful", "modern", "clean",
		}},
		{Name: "Customer Support", Triggers: []string{
			"support", "help", "customer service", "call center", "contact",
			"response", "complaint", "feedback", "assist", "service",
		}},
		{Name: "Feature Requests", Triggers: []string{
			"need", "want", "add", "feature", "should", "wish", "request",
			"update", "improve", "enhancement", "suggest", "would be nice",
		}},
		{Name: "Security & Privacy", Triggers: []string{
			"security", "safe", "secure", "privacy", "protect", "fingerprint",
			"biometric", "fraud", "scam", "trust", "encryption",
		}},
	})
	if err != nil {
		// The built-in taxonomy is static; a failure here is a broken build.
		panic(err)
	}
	return tax
}
