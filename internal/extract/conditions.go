package extract

import (
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// ConditionExtractor derives logical operators from modal and negation cues.
// At most one condition is produced per call: the first matching cue in
// priority order wins. Multi-condition statements are expected to be split
// by the segmenter first.
type ConditionExtractor struct{}

// NewConditionExtractor creates a condition extractor
func NewConditionExtractor() *ConditionExtractor {
	return &ConditionExtractor{}
}

type cue struct {
	markers  []string
	operator model.Operator
	value    string
}

// Per-category cue tables, in priority order. Values name the parameter the
// operator constrains rather than a literal from the text.
var (
	temporalCues = []cue{
		{[]string{"cannot", "not"}, model.OpNotEquals, "specified_time"},
		{[]string{"must", "only"}, model.OpEquals, "specified_time"},
		{[]string{"before"}, model.OpLessThan, "specified_time"},
		{[]string{"after"}, model.OpGreaterThan, "specified_time"},
	}

	capacityCues = []cue{
		{[]string{"no more than", "maximum"}, model.OpLessThanOrEqual, "max_count"},
		{[]string{"at least", "minimum"}, model.OpGreaterThanOrEqual, "min_count"},
	}

	restCues = []cue{
		{[]string{"at least", "minimum"}, model.OpGreaterThanOrEqual, "min_rest_period"},
	}

	preferenceCues = []cue{
		{[]string{"prefer", "like"}, model.OpPrefer, "specified_option"},
	}
)

// Extract returns the conditions for the given text and category. The text
// is lowercased internally; the result has zero or one element.
func (c *ConditionExtractor) Extract(text string, category model.ConstraintType) []model.Condition {
	lower := strings.ToLower(text)

	switch category {
	case model.TypeTemporal:
		return matchCues(lower, temporalCues)
	case model.TypeCapacity:
		return matchCues(lower, capacityCues)
	case model.TypeRest:
		return matchCues(lower, restCues)
	case model.TypeLocation:
		return locationConditions(lower)
	case model.TypePreference:
		return matchCues(lower, preferenceCues)
	default:
		return nil
	}
}

func matchCues(lower string, cues []cue) []model.Condition {
	for _, c := range cues {
		for _, marker := range c.markers {
			if strings.Contains(lower, marker) {
				return []model.Condition{{Operator: c.operator, Value: c.value}}
			}
		}
	}
	return nil
}

// locationConditions needs a compound check ("must" together with "home"),
// so it does not fit the flat cue table
func locationConditions(lower string) []model.Condition {
	if strings.Contains(lower, "must") && strings.Contains(lower, "home") {
		return []model.Condition{{Operator: model.OpEquals, Value: "home_venue"}}
	}
	if strings.Contains(lower, "cannot") {
		return []model.Condition{{Operator: model.OpNotEquals, Value: "specified_venue"}}
	}
	return nil
}
