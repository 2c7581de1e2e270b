package classify

import (
	"testing"

	"github.com/leagueworks/schedparse/internal/model"
)

func TestRuleClassifier_Categories(t *testing.T) {
	c := NewRuleClassifier(model.TypeTemporal)

	tests := []struct {
		text string
		want model.ConstraintType
	}{
		{"Team A cannot play on Mondays", model.TypeTemporal},
		{"Maximum 2 matches per week for each team", model.TypeCapacity},
		{"All games must be at the home stadium", model.TypeLocation},
		{"Teams need at least 2 days between games", model.TypeRest},
		{"Ideally we would like earlier slots", model.TypePreference},
	}

	for _, tt := range tests {
		result := c.Classify(tt.text)
		if result.Type != tt.want {
			t.Errorf("Classify(%q) = %s (scores %v), want %s", tt.text, result.Type, result.Scores, tt.want)
		}
		if result.Defaulted {
			t.Errorf("Classify(%q) unexpectedly defaulted", tt.text)
		}
		if result.Confidence != 0.3 {
			t.Errorf("Classify(%q) confidence = %f, want 0.3", tt.text, result.Confidence)
		}
	}
}

func TestRuleClassifier_Deterministic(t *testing.T) {
	c := NewRuleClassifier(model.TypeTemporal)

	first := c.Classify("No more than 3 games per day")
	for i := 0; i < 5; i++ {
		again := c.Classify("No more than 3 games per day")
		if again.Type != first.Type || again.Confidence != first.Confidence {
			t.Fatalf("classification not deterministic: %v vs %v", again, first)
		}
	}
}

func TestRuleClassifier_Default(t *testing.T) {
	c := NewRuleClassifier(model.TypeTemporal)

	result := c.Classify("xyzzy")
	if !result.Defaulted {
		t.Fatal("expected defaulted result")
	}
	if result.Type != model.TypeTemporal {
		t.Errorf("expected default temporal, got %s", result.Type)
	}
	if result.Confidence != 0 {
		t.Errorf("expected zero confidence on default, got %f", result.Confidence)
	}
}

func TestRuleClassifier_ConfigurableDefault(t *testing.T) {
	c := NewRuleClassifier(model.TypePreference)

	result := c.Classify("xyzzy")
	if result.Type != model.TypePreference {
		t.Errorf("expected configured default preference, got %s", result.Type)
	}

	// Empty default falls back to temporal
	c = NewRuleClassifier("")
	if result := c.Classify("xyzzy"); result.Type != model.TypeTemporal {
		t.Errorf("expected temporal fallback default, got %s", result.Type)
	}
}

func TestRuleClassifier_TieBreakPriority(t *testing.T) {
	c := NewRuleClassifier(model.TypeTemporal)

	// "limit" scores capacity 1 and "home" scores location 1; capacity
	// outranks location in the priority order.
	result := c.Classify("limit home")
	if result.Type != model.TypeCapacity {
		t.Errorf("expected capacity to win the tie (scores %v), got %s", result.Scores, result.Type)
	}
}

func TestCandidateLabels(t *testing.T) {
	labels, types := CandidateLabels()

	if len(labels) != 5 {
		t.Fatalf("expected 5 labels, got %d", len(labels))
	}
	seen := make(map[model.ConstraintType]bool)
	for _, label := range labels {
		category, ok := types[label]
		if !ok {
			t.Errorf("label %q has no type mapping", label)
			continue
		}
		if seen[category] {
			t.Errorf("type %s mapped by more than one label", category)
		}
		seen[category] = true
	}
}
