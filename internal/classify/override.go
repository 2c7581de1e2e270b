package classify

import (
	"github.com/leagueworks/schedparse/internal/extract"
	"github.com/leagueworks/schedparse/internal/model"
)

// OverrideRule forces a category when entity co-occurrence is stronger
// evidence than the classifier's lexical signal. Rules are evaluated in
// order after classification; the first one that applies wins.
type OverrideRule struct {
	Name       string
	Applies    func(entities []model.Entity) bool
	Type       model.ConstraintType
	Confidence float64
}

// DefaultOverrides returns the standard override rules.
//
// The capacity-evidence rule exists because lexical classifiers reliably
// confuse "no more than 3 games on Field 1" (capacity) with location
// constraints; a capacity indicator co-occurring with a number and a venue
// or time period settles the category.
func DefaultOverrides() []OverrideRule {
	return []OverrideRule{
		{
			Name: "capacity_evidence",
			Applies: func(entities []model.Entity) bool {
				return extract.HasType(entities, model.EntityCapacityIndicator) &&
					extract.HasType(entities, model.EntityNumber) &&
					(extract.HasType(entities, model.EntityVenue) ||
						extract.HasType(entities, model.EntityTimePeriod))
			},
			Type:       model.TypeCapacity,
			Confidence: 1.0,
		},
	}
}

// ApplyOverrides re-checks a classification against the override rules.
// When a rule applies, the forced category and confidence replace the
// classifier output regardless of how confident it was; the returned rule
// name is empty when nothing fired.
func ApplyOverrides(result Result, entities []model.Entity, rules []OverrideRule) (Result, string) {
	for _, rule := range rules {
		if rule.Applies(entities) {
			return Result{
				Type:       rule.Type,
				Confidence: rule.Confidence,
				Scores:     result.Scores,
			}, rule.Name
		}
	}
	return result, ""
}
