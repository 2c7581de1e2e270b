package extract

import (
	"regexp"
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// EntityExtractor recognizes typed spans in constraint text using fixed
// regex rules. Confidences are per-rule constants, not learned.
type EntityExtractor struct {
	rules []entityRule
}

type entityRule struct {
	entityType model.EntityType
	pattern    *regexp.Regexp
	confidence float64
	normalize  func(string) string
}

// precedence resolves the case where two rules match the exact same span
// (e.g. "Mondays" as both a team-like capitalized token and a day of week).
// The higher-ranked type keeps the span; the duplicate is suppressed.
var precedence = map[model.EntityType]int{
	model.EntityDayOfWeek:         8,
	model.EntityVenue:             7,
	model.EntityTime:              6,
	model.EntityDate:              5,
	model.EntityCapacityIndicator: 4,
	model.EntityTimePeriod:        3,
	model.EntityNumber:            2,
	model.EntityTeam:              1,
}

// NewEntityExtractor creates an extractor with the fixed sports-domain rules
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{
		rules: []entityRule{
			{
				entityType: model.EntityTeam,
				pattern:    regexp.MustCompile(`\b(Team\s+[A-Z]\w*|[A-Z]\w+\s+Team|[A-Z]\w+s)\b`),
				confidence: 0.8,
			},
			{
				entityType: model.EntityDayOfWeek,
				pattern:    regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)s?\b`),
				confidence: 0.95,
				normalize:  normalizeDay,
			},
			{
				entityType: model.EntityTime,
				pattern:    regexp.MustCompile(`\b(\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?|\d{1,2}\s*(?:AM|PM|am|pm))\b`),
				confidence: 0.9,
			},
			{
				entityType: model.EntityDate,
				pattern:    regexp.MustCompile(`(?i)\b(\d{1,2}/\d{1,2}(?:/\d{2,4})?|(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2})\b`),
				confidence: 0.85,
			},
			{
				entityType: model.EntityNumber,
				pattern:    regexp.MustCompile(`\b(\d+)\b`),
				confidence: 0.85,
			},
			{
				entityType: model.EntityVenue,
				pattern:    regexp.MustCompile(`(?i)\b(Field\s+\d+|Court\s+\d+|Stadium|Arena|Gym|Gymnasium)\b`),
				confidence: 0.9,
			},
			{
				entityType: model.EntityCapacityIndicator,
				pattern:    regexp.MustCompile(`(?i)\b(no more than|at most|maximum|minimum|at least|limit)\b`),
				confidence: 0.9,
			},
			{
				entityType: model.EntityTimePeriod,
				pattern:    regexp.MustCompile(`(?i)\b(per day|per week|per hour|daily|weekly)\b`),
				confidence: 0.9,
			},
		},
	}
}

type span struct {
	start, end int
	entity     model.Entity
}

// Extract returns entities in rule-declaration order, which is the order of
// extraction rather than textual order. Exact-span duplicates across types
// are resolved by precedence; partially overlapping spans are both kept.
func (e *EntityExtractor) Extract(text string) []model.Entity {
	var spans []span
	for _, rule := range e.rules {
		for _, loc := range rule.pattern.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			if rule.normalize != nil {
				value = rule.normalize(value)
			}
			spans = append(spans, span{
				start: loc[0],
				end:   loc[1],
				entity: model.Entity{
					Type:       rule.entityType,
					Value:      value,
					Confidence: rule.confidence,
				},
			})
		}
	}

	var entities []model.Entity
	for i, s := range spans {
		if shadowed(spans, i) {
			continue
		}
		entities = append(entities, s.entity)
	}
	return entities
}

// shadowed reports whether another match claims the identical span with a
// higher-precedence type
func shadowed(spans []span, i int) bool {
	for j, other := range spans {
		if j == i {
			continue
		}
		if other.start == spans[i].start && other.end == spans[i].end &&
			precedence[other.entity.Type] > precedence[spans[i].entity.Type] {
			return true
		}
	}
	return false
}

// Merge combines rule-based entities with spans from an external NER
// service. Rule-based detections win for sports-domain vocabulary (teams,
// venues, days of week) because generic NER under-performs on it; other
// NER spans are appended after the rule-based sequence.
func (e *EntityExtractor) Merge(ruleBased, ner []model.Entity) []model.Entity {
	merged := make([]model.Entity, len(ruleBased))
	copy(merged, ruleBased)

	for _, ent := range ner {
		if isDomainType(ent.Type) && hasEntity(ruleBased, ent) {
			continue
		}
		merged = append(merged, ent)
	}
	return merged
}

func isDomainType(t model.EntityType) bool {
	return t == model.EntityTeam || t == model.EntityVenue || t == model.EntityDayOfWeek
}

func hasEntity(entities []model.Entity, ent model.Entity) bool {
	for _, e := range entities {
		if e.Type == ent.Type && strings.EqualFold(e.Value, ent.Value) {
			return true
		}
	}
	return false
}

// normalizeDay lowercases and strips the plural suffix: "Mondays" -> "monday"
func normalizeDay(value string) string {
	return strings.TrimSuffix(strings.ToLower(value), "s")
}

// HasType reports whether any entity in the sequence has the given type
func HasType(entities []model.Entity, t model.EntityType) bool {
	for _, e := range entities {
		if e.Type == t {
			return true
		}
	}
	return false
}

// FirstOfType returns the first entity of the given type, if any
func FirstOfType(entities []model.Entity, t model.EntityType) (model.Entity, bool) {
	for _, e := range entities {
		if e.Type == t {
			return e, true
		}
	}
	return model.Entity{}, false
}
