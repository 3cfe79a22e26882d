package themes

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Biruk-gebru/Customer-Experience-Analytics-for-Fintech-Apps/pkg/cxa/internalerr"
)

func TestAssignMultiLabel(t *testing.T) {
	tax := Default()

	got := tax.Assign("App keeps crashing, login fails")

	want := map[string]bool{
		"Account Access Issues": true,
		"Technical Issues":      true,
	}
	for theme := range want {
		found := false
		for _, g := range got {
			if g == theme {
				found = true
			}
		}
		if !found {
			t.Errorf("expected theme %q in %v", theme, got)
		}
	}
}

func TestAssignDeclarationOrder(t *testing.T) {
	tax, err := New([]Theme{
		{Name: "B Theme", Triggers: []string{"bravo"}},
		{Name: "A Theme", Triggers: []string{"alpha"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// "alpha" occurs first in the text, but rendering follows taxonomy
	// declaration order, not match order.
	got := tax.Assign("alpha then bravo")
	want := []string{"B Theme", "A Theme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected declaration order %v, got %v", want, got)
	}
}

func TestAssignFirstTriggerWinsPerTheme(t *testing.T) {
	tax, err := New([]Theme{
		{Name: "Tech", Triggers: []string{"crash", "bug", "error"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// All three triggers present, theme still counted once.
	got := tax.Assign("crash bug error")
	if len(got) != 1 || got[0] != "Tech" {
		t.Errorf("theme should appear once, got %v", got)
	}
}

func TestAssignIdempotentAndPure(t *testing.T) {
	tax := Default()
	text := "Great app, fast transfer! But login keeps failing."

	first := tax.Assign(text)
	second := tax.Assign(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated assignment differs: %v vs %v", first, second)
	}
}

func TestAssignMonotonicUnderGrowth(t *testing.T) {
	base, err := New([]Theme{
		{Name: "Tech", Triggers: []string{"crash"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	grown, err := New([]Theme{
		{Name: "Tech", Triggers: []string{"crash"}},
		{Name: "Access", Triggers: []string{"login"}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text := "crash on login"
	before := base.Assign(text)
	after := grown.Assign(text)

	for _, theme := range before {
		found := false
		for _, g := range after {
			if g == theme {
				found = true
			}
		}
		if !found {
			t.Errorf("adding a theme removed existing match %q", theme)
		}
	}
}

func TestAssignEmptyText(t *testing.T) {
	tax := Default()
	if got := tax.Assign(""); len(got) != 0 {
		t.Errorf("empty text should yield no themes, got %v", got)
	}
	if got := tax.Assign("   "); len(got) != 0 {
		t.Errorf("blank text should yield no themes, got %v", got)
	}
}

func TestAssignCaseInsensitive(t *testing.T) {
	tax := Default()
	got := tax.Assign("LOGIN problem")
	if len(got) == 0 {
		t.Fatal("uppercase trigger text should still match")
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name   string
		themes []Theme
	}{
		{"empty taxonomy", nil},
		{"unnamed theme", []Theme{{Triggers: []string{"x"}}}},
		{"no triggers", []Theme{{Name: "X"}}},
		{"empty trigger", []Theme{{Name: "X", Triggers: []string{" "}}}},
		{"duplicate name", []Theme{
			{Name: "X", Triggers: []string{"a"}},
			{Name: "X", Triggers: []string{"b"}},
		}},
	}
	for _, c := range cases {
		if _, err := New(c.themes); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", c.name, err)
		}
	}
}

func TestDefaultTaxonomyShape(t *testing.T) {
	tax := Default()
	if tax.Len() != 7 {
		t.Errorf("expected 7 themes, got %d", tax.Len())
	}
	names := tax.Names()
	if names[0] != "Account Access Issues" || names[6] != "Security & Privacy" {
		t.Errorf("unexpected declaration order: %v", names)
	}
}
