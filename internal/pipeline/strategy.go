package pipeline

import (
	"context"
	"fmt"

	"github.com/leagueworks/schedparse/internal/classify"
	"github.com/leagueworks/schedparse/internal/llm"
	"github.com/leagueworks/schedparse/internal/model"
)

// strategy is one way of parsing a single segment. Strategies are tried in
// order with isolated error handling, which makes the "never throws,
// always returns a record" guarantee mechanically checkable: the last
// strategy in the list is infallible.
type strategy interface {
	method() model.ParseMethod
	parse(ctx context.Context, text string) (model.ParsedConstraint, error)
}

// mlStrategy classifies via the external zero-shot service and merges NER
// spans into the rule-based entity set. Any service error or timeout fails
// the strategy, handing the segment to the rule path.
type mlStrategy struct {
	parser   *Parser
	provider llm.Provider
}

func (s *mlStrategy) method() model.ParseMethod {
	return model.MethodML
}

func (s *mlStrategy) parse(ctx context.Context, text string) (model.ParsedConstraint, error) {
	labels, labelTypes := classify.CandidateLabels()

	classification, err := s.provider.Classify(ctx, text, labels)
	if err != nil {
		return model.ParsedConstraint{}, fmt.Errorf("zero-shot classify: %w", err)
	}

	category, ok := labelTypes[classification.Label]
	if !ok {
		return model.ParsedConstraint{}, fmt.Errorf("unmapped label %q", classification.Label)
	}

	ruleEntities := s.parser.entities.Extract(text)
	entities := ruleEntities
	if nerEntities, err := s.provider.ExtractEntities(ctx, text); err == nil {
		entities = s.parser.entities.Merge(ruleEntities, nerEntities)
	}
	// NER failure alone does not fail the strategy: classification
	// succeeded and rule-based entities are always available.

	result := classify.Result{
		Type:       category,
		Confidence: classification.Score,
	}
	result, overriddenBy := classify.ApplyOverrides(result, entities, s.parser.overrides)

	return s.parser.assemble(text, result, overriddenBy, entities, model.MethodML), nil
}

// ruleStrategy is the deterministic fallback: keyword classification and
// pattern extraction only. It is a pure function of the text and never
// returns an error.
type ruleStrategy struct {
	parser *Parser
}

func (s *ruleStrategy) method() model.ParseMethod {
	return model.MethodRules
}

func (s *ruleStrategy) parse(ctx context.Context, text string) (model.ParsedConstraint, error) {
	entities := s.parser.entities.Extract(text)

	result := s.parser.classifier.Classify(text)
	result, overriddenBy := classify.ApplyOverrides(result, entities, s.parser.overrides)

	return s.parser.assemble(text, result, overriddenBy, entities, model.MethodRules), nil
}
