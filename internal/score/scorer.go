package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// Component weights. Deliberately a transparent weighted composite rather
// than a learned model, so the final number can be explained component by
// component to an end user.
const (
	intentWeight    = 0.40
	entityWeight    = 0.35
	conditionWeight = 0.25
)

// Scorer combines classifier confidence, entity completeness, and condition
// strength into a single 0-1 score with a full breakdown
type Scorer struct{}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Input carries everything the composite score depends on
type Input struct {
	Text             string
	Category         model.ConstraintType
	IntentConfidence float64 // Classifier probability, or the rule-path heuristic
	Entities         []model.Entity
	Conditions       []model.Condition
}

// entityBonuses rewards category-corroborating entity types. The capacity
// bonuses intentionally exceed 1.0 in aggregate; the component clamps.
var entityBonuses = map[model.ConstraintType]map[model.EntityType]float64{
	model.TypeCapacity: {
		model.EntityCapacityIndicator: 0.35,
		model.EntityNumber:            0.25,
		model.EntityVenue:             0.20,
		model.EntityTimePeriod:        0.15,
	},
	model.TypeTemporal: {
		model.EntityDayOfWeek: 0.35,
		model.EntityTime:      0.25,
		model.EntityDate:      0.15,
	},
	model.TypeRest: {
		model.EntityNumber:     0.35,
		model.EntityTimePeriod: 0.15,
	},
	model.TypeLocation: {
		model.EntityVenue: 0.40,
		model.EntityTeam:  0.10,
	},
	model.TypePreference: {
		model.EntityDayOfWeek: 0.20,
		model.EntityTime:      0.20,
	},
}

// strongMarkers are lexical cues that a condition was stated firmly
var strongMarkers = []string{
	"cannot", "must", "no more than", "at least", "maximum", "minimum",
	"only", "never",
}

// strongPatterns give a per-category bonus for a recognized strong phrasing
var strongPatterns = map[model.ConstraintType]*regexp.Regexp{
	model.TypeCapacity: regexp.MustCompile(`(?:no more than|at most|maximum)\s+\d+`),
	model.TypeRest:     regexp.MustCompile(`\d+\s+(?:days?|hours?)\s+between`),
	model.TypeTemporal: regexp.MustCompile(`(?:before|after)\s+\d`),
}

// Calculate produces the composite confidence and its transparent
// breakdown. Each component is clamped to [0,1] before weighting, and the
// total is clamped again. Weights are additive, never subtractive: more
// corroborating evidence can only raise the score.
func (s *Scorer) Calculate(in Input) (float64, model.ScoreBreakdown) {
	intent := clamp(in.IntentConfidence)
	entity, entityData := s.entityComponent(in)
	condition, conditionData := s.conditionComponent(in)

	total := clamp(intent*intentWeight + entity*entityWeight + condition*conditionWeight)

	breakdown := model.ScoreBreakdown{
		Total: total,
		Components: []model.ScoreComponent{
			{
				Name:        "intent",
				Value:       intent,
				Weight:      intentWeight,
				Description: fmt.Sprintf("Classifier confidence for %q", in.Category),
				Data: map[string]interface{}{
					"formula": "classifier probability (rule path: 0.3 on success, 0 on default)",
				},
			},
			{
				Name:        "entities",
				Value:       entity,
				Weight:      entityWeight,
				Description: fmt.Sprintf("%d entities corroborating the category", len(in.Entities)),
				Data:        entityData,
			},
			{
				Name:        "conditions",
				Value:       condition,
				Weight:      conditionWeight,
				Description: fmt.Sprintf("%d condition(s) with lexical strength markers", len(in.Conditions)),
				Data:        conditionData,
			},
		},
	}

	return total, breakdown
}

// entityComponent scores entity completeness: a count base, category
// bonuses, and a small reward for high per-entity confidence
func (s *Scorer) entityComponent(in Input) (float64, map[string]interface{}) {
	count := len(in.Entities)
	base := minF(float64(count)*0.15, 0.6)

	bonus := 0.0
	bonuses := entityBonuses[in.Category]
	seen := make(map[model.EntityType]bool)
	for _, e := range in.Entities {
		if seen[e.Type] {
			continue
		}
		seen[e.Type] = true
		bonus += bonuses[e.Type]
	}

	confBonus := 0.0
	if count > 0 {
		sum := 0.0
		for _, e := range in.Entities {
			sum += e.Confidence
		}
		confBonus = (sum / float64(count)) * 0.1
	}

	value := clamp(base + bonus + confBonus)
	return value, map[string]interface{}{
		"count":            count,
		"base":             base,
		"category_bonus":   bonus,
		"confidence_bonus": confBonus,
		"formula":          "min(count*0.15, 0.6) + category bonuses + avg_confidence*0.1, clamped to 1",
	}
}

// conditionComponent scores condition strength: presence, strong lexical
// markers, and a recognized strong per-category pattern
func (s *Scorer) conditionComponent(in Input) (float64, map[string]interface{}) {
	if len(in.Conditions) == 0 {
		return 0, map[string]interface{}{
			"formula": "0.5 if condition present + min(markers*0.1, 0.3) + 0.2 pattern bonus, clamped to 1",
		}
	}

	lower := strings.ToLower(in.Text)

	markers := 0
	for _, marker := range strongMarkers {
		if strings.Contains(lower, marker) {
			markers++
		}
	}
	markerBonus := minF(float64(markers)*0.1, 0.3)

	patternBonus := 0.0
	if pattern, ok := strongPatterns[in.Category]; ok && pattern.MatchString(lower) {
		patternBonus = 0.2
	}

	value := clamp(0.5 + markerBonus + patternBonus)
	return value, map[string]interface{}{
		"markers":       markers,
		"marker_bonus":  markerBonus,
		"pattern_bonus": patternBonus,
		"formula":       "0.5 if condition present + min(markers*0.1, 0.3) + 0.2 pattern bonus, clamped to 1",
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
