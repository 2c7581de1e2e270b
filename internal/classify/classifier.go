package classify

import (
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// Result is the outcome of constraint-type classification
type Result struct {
	Type       model.ConstraintType
	Confidence float64
	Defaulted  bool // True when every keyword score was zero and the configured default applied
	Scores     map[model.ConstraintType]int
}

// ruleConfidence is the fixed intent heuristic the rule path substitutes
// for a classifier probability when categorization succeeds.
const ruleConfidence = 0.3

// RuleClassifier assigns a constraint type by keyword-frequency scoring.
// It is a pure function of the text: identical input always yields an
// identical result.
type RuleClassifier struct {
	keywords    map[model.ConstraintType][]string
	defaultType model.ConstraintType
}

// NewRuleClassifier creates a rule classifier. The default type is assigned
// when no keyword matches at all.
func NewRuleClassifier(defaultType model.ConstraintType) *RuleClassifier {
	if defaultType == "" || defaultType == model.TypeUnknown {
		defaultType = model.TypeTemporal
	}

	return &RuleClassifier{
		defaultType: defaultType,
		keywords: map[model.ConstraintType][]string{
			model.TypeTemporal: {
				"monday", "tuesday", "wednesday", "thursday", "friday",
				"saturday", "sunday", "time", "hour", "am", "pm", "morning",
				"afternoon", "evening", "night", "before", "after", "during",
				"date", "week", "month", "day",
			},
			model.TypeCapacity: {
				"maximum", "minimum", "limit", "capacity", "more than",
				"less than", "no more", "at least", "per day", "per week",
				"games", "matches",
			},
			model.TypeLocation: {
				"field", "venue", "location", "home", "away", "court",
				"stadium", "ground", "facility", "site", "place",
			},
			model.TypeRest: {
				"rest", "break", "between", "gap", "interval", "recovery",
				"days between", "hours between", "time between",
				"between games",
			},
			model.TypePreference: {
				"prefer", "like", "want", "wish", "would like", "ideally",
				"better", "favor", "rather",
			},
		},
	}
}

// Classify scores each category by counting matched keywords. Ties break in
// the fixed priority order temporal > capacity > location > rest >
// preference; an all-zero score falls back to the configured default.
func (c *RuleClassifier) Classify(text string) Result {
	lower := strings.ToLower(text)

	scores := make(map[model.ConstraintType]int, len(c.keywords))
	for category, words := range c.keywords {
		for _, kw := range words {
			if strings.Contains(lower, kw) {
				scores[category]++
			}
		}
	}

	best := model.TypeUnknown
	bestScore := 0
	for _, category := range model.AllTypes() {
		if scores[category] > bestScore {
			best = category
			bestScore = scores[category]
		}
	}

	if bestScore == 0 {
		return Result{
			Type:       c.defaultType,
			Confidence: 0,
			Defaulted:  true,
			Scores:     scores,
		}
	}

	return Result{
		Type:       best,
		Confidence: ruleConfidence,
		Scores:     scores,
	}
}

// CandidateLabels returns the zero-shot label phrases for the external
// classifier, paired with the types they map back to.
func CandidateLabels() (labels []string, types map[string]model.ConstraintType) {
	types = map[string]model.ConstraintType{
		"temporal scheduling constraint": model.TypeTemporal,
		"capacity limitation constraint": model.TypeCapacity,
		"location venue constraint":      model.TypeLocation,
		"rest period constraint":         model.TypeRest,
		"preference soft constraint":     model.TypePreference,
	}
	// Stable order matters for reproducible prompts
	labels = []string{
		"temporal scheduling constraint",
		"capacity limitation constraint",
		"location venue constraint",
		"rest period constraint",
		"preference soft constraint",
	}
	return labels, types
}
