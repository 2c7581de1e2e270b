package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/leagueworks/schedparse/internal/cache"
	"github.com/leagueworks/schedparse/internal/classify"
	"github.com/leagueworks/schedparse/internal/extract"
	"github.com/leagueworks/schedparse/internal/llm"
	"github.com/leagueworks/schedparse/internal/model"
	"github.com/leagueworks/schedparse/internal/params"
	"github.com/leagueworks/schedparse/internal/score"
	"github.com/leagueworks/schedparse/internal/segment"
	"github.com/leagueworks/schedparse/internal/validate"
)

// Parser orchestrates the complete parse: segmentation, per-segment
// extraction/classification/scoring with tiered fallback, and the optional
// review pass. Every code path terminates in a well-formed record; only
// malformed top-level input or request cancellation surfaces an error.
type Parser struct {
	segmenter  *segment.Segmenter
	entities   *extract.EntityExtractor
	conditions *extract.ConditionExtractor
	classifier *classify.RuleClassifier
	overrides  []classify.OverrideRule
	params     *params.Parser
	scorer     *score.Scorer
	reviewer   *validate.Reviewer
	strategies []strategy
	store      Store
	cache      cache.Cache
	config     *model.Config
}

// NewParser creates a parser with the given configuration. Failure to
// construct the external provider is not an error: the rule path carries
// every segment instead.
func NewParser(cfg *model.Config) *Parser {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider, falling back to rules: %v\n", err)
		} else if p != nil {
			provider = llm.NewRateLimited(p, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		}
	}

	parser := &Parser{
		segmenter:  segment.NewSegmenter(cfg.Parser.MinSegmentLength),
		entities:   extract.NewEntityExtractor(),
		conditions: extract.NewConditionExtractor(),
		classifier: classify.NewRuleClassifier(cfg.Parser.DefaultType),
		overrides:  classify.DefaultOverrides(),
		params:     params.NewParser(),
		scorer:     score.NewScorer(),
		store:      NopStore{},
		config:     cfg,
	}

	if cfg.Parser.ReviewEnabled {
		parser.reviewer = validate.NewReviewer(provider, cfg.Output.Verbose)
	} else {
		parser.reviewer = validate.NewReviewer(nil, cfg.Output.Verbose)
	}

	if cfg.Cache.Enabled {
		parser.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	// Strategies are tried in order per segment, each with isolated error
	// handling. The rule strategy never errors, so the list always
	// terminates with a record.
	if provider != nil {
		parser.strategies = append(parser.strategies, &mlStrategy{parser: parser, provider: provider})
	}
	parser.strategies = append(parser.strategies, &ruleStrategy{parser: parser})

	return parser
}

// SetStore installs the persistence collaborator. Storage failures never
// block the parsed result.
func (p *Parser) SetStore(store Store) {
	if store != nil {
		p.store = store
	}
}

// Parse converts free-text scheduling rules into structured constraint
// records. Empty input returns model.ErrEmptyInput; everything else
// returns one record per segment.
func (p *Parser) Parse(ctx context.Context, req model.ParseRequest) (*model.ParseResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, model.ErrEmptyInput
	}

	if resp, ok := p.cached(req); ok {
		return resp, nil
	}

	segments := []string{text}
	if req.SplitMultiple {
		segments = p.segmenter.Segment(text)
	}

	records, err := p.parseSegments(ctx, segments)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		if _, err := p.store.Save(ctx, rec, segments[i], ""); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist record: %v\n", err)
		}
	}

	resp := &model.ParseResponse{
		IsMultiple: len(records) > 1,
		Records:    records,
		Stats:      statistics(records),
	}

	p.remember(req, resp)
	return resp, nil
}

// parseSegments processes segments independently with bounded concurrent
// fan-out. One segment's ML failure never forces another into the rule
// path. Cancellation aborts the whole request: partial results are not
// returned.
func (p *Parser) parseSegments(ctx context.Context, segments []string) ([]model.ParsedConstraint, error) {
	workers := p.config.Concurrency.SegmentWorkers
	if workers <= 0 {
		workers = 4
	}

	records := make([]model.ParsedConstraint, len(segments))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, seg := range segments {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			record := p.parseSegment(ctx, text)
			records[idx] = p.reviewer.Review(ctx, record)
		}(i, seg)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// parseSegment runs the strategy list for one segment. The rule strategy
// cannot fail, but a minimal default record still backstops the invariant
// that every segment yields exactly one record.
func (p *Parser) parseSegment(ctx context.Context, text string) model.ParsedConstraint {
	for _, s := range p.strategies {
		record, err := s.parse(ctx, text)
		if err == nil {
			return record
		}
		if p.config.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: %s path failed for segment, trying next: %v\n", s.method(), err)
		}
	}

	return minimalRecord(text, p.config.Parser.DefaultType)
}

// assemble builds a record from a classification: conditions, parameters,
// and the composite confidence. When an override rule fired, its forced
// confidence stands in for the composite so entity co-occurrence evidence
// is reported at full strength.
func (p *Parser) assemble(text string, result classify.Result, overriddenBy string, entities []model.Entity, method model.ParseMethod) model.ParsedConstraint {
	conditions := p.conditions.Extract(text, result.Type)
	parameters := p.params.Parse(text, result.Type, entities)

	var confidence float64
	var breakdown model.ScoreBreakdown
	if overriddenBy != "" {
		confidence = result.Confidence
		breakdown = model.ScoreBreakdown{
			Total: confidence,
			Components: []model.ScoreComponent{{
				Name:        "override",
				Value:       confidence,
				Weight:      1,
				Description: fmt.Sprintf("Entity-pattern override %q forced the category", overriddenBy),
			}},
		}
	} else {
		confidence, breakdown = p.scorer.Calculate(score.Input{
			Text:             text,
			Category:         result.Type,
			IntentConfidence: result.Confidence,
			Entities:         entities,
			Conditions:       conditions,
		})
	}

	record := model.ParsedConstraint{
		Type:       result.Type,
		Text:       text,
		Entities:   entities,
		Conditions: conditions,
		Parameters: parameters,
		Confidence: confidence,
		Method:     method,
		Breakdown:  breakdown,
	}

	// Parameters shape mismatched to type should not occur; if it does,
	// only this segment degrades to the minimal default record.
	if kind := record.Parameters.Kind(); kind != model.TypeUnknown && kind != record.Type {
		return minimalRecord(text, p.config.Parser.DefaultType)
	}

	return record
}

// minimalRecord is the substitute for a segment whose processing violated
// an internal invariant: default category, nothing extracted, zero
// confidence.
func minimalRecord(text string, defaultType model.ConstraintType) model.ParsedConstraint {
	if defaultType == "" || defaultType == model.TypeUnknown {
		defaultType = model.TypeTemporal
	}
	return model.ParsedConstraint{
		Type:       defaultType,
		Text:       text,
		Entities:   []model.Entity{},
		Conditions: []model.Condition{},
		Confidence: 0,
		Method:     model.MethodRules,
	}
}

// statistics summarizes the records for the caller
func statistics(records []model.ParsedConstraint) model.Statistics {
	if len(records) == 0 {
		return model.Statistics{}
	}

	sum := 0.0
	high := 0
	method := records[0].Method
	for _, rec := range records {
		sum += rec.Confidence
		if rec.Confidence >= model.HighConfidenceThreshold {
			high++
		}
		if rec.Method != method {
			method = model.MethodMixed
		}
	}

	return model.Statistics{
		AverageConfidence:   sum / float64(len(records)),
		Method:              method,
		HighConfidenceCount: high,
	}
}

// cached looks up a previous response for an identical request. The
// pipeline is a pure function of its input and configuration, so
// responses cache safely under a key that covers both.
func (p *Parser) cached(req model.ParseRequest) (*model.ParseResponse, bool) {
	if p.cache == nil {
		return nil, false
	}

	data, found := p.cache.Get(cache.Key(p.requestKey(req)))
	if !found {
		return nil, false
	}

	var resp model.ParseResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (p *Parser) remember(req model.ParseRequest, resp *model.ParseResponse) {
	if p.cache == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = p.cache.Set(cache.Key(p.requestKey(req)), data, 0)
}

// requestKey folds the configuration that shapes a record into the cache
// key. The disk layer outlives the process, so a response parsed under one
// default type, provider, or review setting must never be served to a
// parser configured differently.
func (p *Parser) requestKey(req model.ParseRequest) string {
	return fmt.Sprintf("%t:%s:%s:%t:%s",
		req.SplitMultiple,
		p.config.Parser.DefaultType,
		p.config.LLM.Provider,
		p.config.Parser.ReviewEnabled,
		strings.TrimSpace(req.Text))
}
