package model

// ConstraintType categorizes a scheduling constraint
type ConstraintType string

const (
	TypeUnknown    ConstraintType = "unknown" // Transient only; never present in a final record
	TypeTemporal   ConstraintType = "temporal"
	TypeCapacity   ConstraintType = "capacity"
	TypeLocation   ConstraintType = "location"
	TypeRest       ConstraintType = "rest"
	TypePreference ConstraintType = "preference"
)

// AllTypes lists the closed set of final constraint types in priority order.
// The order doubles as the tie-break order for the rule-based classifier.
func AllTypes() []ConstraintType {
	return []ConstraintType{TypeTemporal, TypeCapacity, TypeLocation, TypeRest, TypePreference}
}

// Valid reports whether t is one of the final constraint types
func (t ConstraintType) Valid() bool {
	for _, candidate := range AllTypes() {
		if t == candidate {
			return true
		}
	}
	return false
}

// EntityType classifies an extracted span
type EntityType string

const (
	EntityTeam              EntityType = "team"
	EntityVenue             EntityType = "venue"
	EntityDayOfWeek         EntityType = "day_of_week"
	EntityTime              EntityType = "time"
	EntityDate              EntityType = "date"
	EntityNumber            EntityType = "number"
	EntityCapacityIndicator EntityType = "capacity_indicator"
	EntityTimePeriod        EntityType = "time_period"
)

// Entity is a typed, confidence-scored span extracted from constraint text
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
}

// Operator is a logical operator derived from modal/negation cues
type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "not_equals"
	OpGreaterThan        Operator = "greater_than"
	OpLessThan           Operator = "less_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThanOrEqual    Operator = "less_than_or_equal"
	OpContains           Operator = "contains"
	OpNotContains        Operator = "not_contains"
	OpBetween            Operator = "between"
	OpNotBetween         Operator = "not_between"
	OpPrefer             Operator = "prefer"
)

// Condition describes how an entity or parameter constrains scheduling
type Condition struct {
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
	Unit     string   `json:"unit,omitempty"`
}

// ParseMethod records which path produced a record
type ParseMethod string

const (
	MethodML    ParseMethod = "ml"
	MethodRules ParseMethod = "rules"
	MethodMixed ParseMethod = "mixed" // Request-level only: segments diverged
)

// ParsedConstraint is the structured output for one segment.
// Records are immutable once returned by the scorer; the review pass
// produces a new record rather than mutating in place.
type ParsedConstraint struct {
	Type       ConstraintType    `json:"type"`
	Text       string            `json:"text"` // Raw segment text the record was parsed from
	Entities   []Entity          `json:"entities"`
	Conditions []Condition       `json:"conditions"`
	Parameters Parameters        `json:"parameters"`
	Confidence float64           `json:"confidence"`
	Method     ParseMethod       `json:"method"`
	Breakdown  ScoreBreakdown    `json:"breakdown"`
	Validation *ValidationReport `json:"validation,omitempty"`
}

// ValidationReport is the result of the generative review pass
type ValidationReport struct {
	IsValid          bool     `json:"is_valid"`
	SchemaCompliance float64  `json:"schema_compliance"` // 0-1
	Issues           []string `json:"issues,omitempty"`
	Corrected        bool     `json:"corrected"`
}

// ScoreBreakdown is the transparent composition of the confidence score.
// Every component carries its formula and inputs so the final number can
// be explained field-by-field to an end user.
type ScoreBreakdown struct {
	Components []ScoreComponent `json:"components"`
	Total      float64          `json:"total"`
}

// ScoreComponent is one weighted term of the confidence score
type ScoreComponent struct {
	Name        string                 `json:"name"`   // intent, entities, conditions
	Value       float64                `json:"value"`  // Clamped to [0,1] before weighting
	Weight      float64                `json:"weight"` // Fraction of the total
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"` // Formulas and inputs
}

// ParseRequest is the caller-facing input
type ParseRequest struct {
	Text          string `json:"text"`
	SplitMultiple bool   `json:"split_multiple"`
}

// ParseResponse is the caller-facing output
type ParseResponse struct {
	IsMultiple bool               `json:"is_multiple"`
	Records    []ParsedConstraint `json:"records"`
	Stats      Statistics         `json:"statistics"`
}

// Statistics summarizes a parse response
type Statistics struct {
	AverageConfidence   float64     `json:"average_confidence"`
	Method              ParseMethod `json:"parsing_method_used"`
	HighConfidenceCount int         `json:"high_confidence_count"` // Records with confidence >= 0.8
}

// HighConfidenceThreshold is the cutoff for Statistics.HighConfidenceCount
const HighConfidenceThreshold = 0.8
