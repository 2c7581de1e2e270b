package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// RuleParser defines the interface for parsing a single rule text
type RuleParser interface {
	Parse(ctx context.Context, req model.ParseRequest) (*model.ParseResponse, error)
}

// ParseJob parses one rule from a batch file
type ParseJob struct {
	Text          string
	SplitMultiple bool
	Parser        RuleParser
}

// Execute runs the parse job
func (j *ParseJob) Execute(ctx context.Context) Result {
	resp, err := j.Parser.Parse(ctx, model.ParseRequest{
		Text:          j.Text,
		SplitMultiple: j.SplitMultiple,
	})
	return &ParseResult{
		Text:     j.Text,
		Response: resp,
		Error:    err,
	}
}

// ParseResult represents the outcome of parsing one rule
type ParseResult struct {
	Text     string               `json:"text"`
	Response *model.ParseResponse `json:"response,omitempty"`
	Error    error                `json:"-"`
}

// GetError returns the error from the parse result
func (r *ParseResult) GetError() error {
	return r.Error
}

// BatchProcessor parses multiple rules concurrently
type BatchProcessor struct {
	parser        RuleParser
	concurrency   int
	splitMultiple bool
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(parser RuleParser, concurrency int, splitMultiple bool) *BatchProcessor {
	return &BatchProcessor{
		parser:        parser,
		concurrency:   concurrency,
		splitMultiple: splitMultiple,
	}
}

// ProcessRules parses multiple rule texts concurrently. Cancelling ctx
// stops in-flight parses.
func (b *BatchProcessor) ProcessRules(ctx context.Context, rules []string) []*ParseResult {
	if len(rules) == 0 {
		return []*ParseResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, rule := range rules {
		pool.Submit(&ParseJob{
			Text:          rule,
			SplitMultiple: b.splitMultiple,
			Parser:        b.parser,
		})
	}

	results := pool.Wait()

	parseResults := make([]*ParseResult, len(results))
	for i, result := range results {
		parseResults[i] = result.(*ParseResult)
	}

	return parseResults
}

// ProcessFile reads rules from a file and parses them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ParseResult, error) {
	rules, err := ReadRulesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	return b.ProcessRules(ctx, rules), nil
}

// ReadRulesFromFile reads rule texts from a file, one per line. Empty lines
// and lines starting with # are skipped, and duplicate rules are dropped.
func ReadRulesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var rules []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			rules = append(rules, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return rules, nil
}
