package worker

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/leagueworks/schedparse/internal/model"
)

// MockRuleParser implements RuleParser
type MockRuleParser struct {
	ShouldError bool
}

func (m *MockRuleParser) Parse(ctx context.Context, req model.ParseRequest) (*model.ParseResponse, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("parse error")
	}
	return &model.ParseResponse{
		Records: []model.ParsedConstraint{
			{Type: model.TypeCapacity, Text: req.Text, Confidence: 0.9},
		},
	}, nil
}

func TestBatchProcessor_ProcessRules(t *testing.T) {
	parser := &MockRuleParser{}
	processor := NewBatchProcessor(parser, 2, false)

	rules := []string{
		"No more than 3 games per day",
		"Team A cannot play on Mondays",
		"Teams need 2 days between games",
	}
	ctx := context.Background()

	results := processor.ProcessRules(ctx, rules)

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	successCount := 0
	for _, res := range results {
		if res.Error == nil {
			successCount++
			if res.Response == nil {
				t.Error("expected response for successful parse")
			}
		} else {
			t.Errorf("unexpected error for %q: %v", res.Text, res.Error)
		}
	}

	if successCount != 3 {
		t.Errorf("expected 3 successes, got %d", successCount)
	}
}

func TestBatchProcessor_ProcessRules_Error(t *testing.T) {
	parser := &MockRuleParser{ShouldError: true}
	processor := NewBatchProcessor(parser, 2, false)

	results := processor.ProcessRules(context.Background(), []string{"No more than 3 games per day"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Response != nil {
		t.Error("expected nil response on error")
	}
}

// blockingRuleParser holds every Parse until its context is cancelled
type blockingRuleParser struct {
	started chan struct{}
	once    sync.Once
}

func (p *blockingRuleParser) Parse(ctx context.Context, req model.ParseRequest) (*model.ParseResponse, error) {
	p.once.Do(func() { close(p.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBatchProcessor_CancellationStopsInFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	parser := &blockingRuleParser{started: make(chan struct{})}
	processor := NewBatchProcessor(parser, 2, false)

	done := make(chan []*ParseResult)
	go func() {
		done <- processor.ProcessRules(ctx, []string{
			"No more than 3 games per day",
			"Team A cannot play on Mondays",
		})
	}()

	<-parser.started
	cancel()

	select {
	case results := <-done:
		for _, res := range results {
			if !errors.Is(res.Error, context.Canceled) {
				t.Errorf("expected context.Canceled for %q, got %v", res.Text, res.Error)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessRules did not return after cancellation")
	}
}

func TestBatchProcessor_ProcessRules_Empty(t *testing.T) {
	parser := &MockRuleParser{}
	processor := NewBatchProcessor(parser, 2, false)

	results := processor.ProcessRules(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadRulesFromFile(t *testing.T) {
	content := `No more than 3 games per day
# comment
Team A cannot play on Mondays

Teams need 2 days between games   `

	tmpfile, err := os.CreateTemp("", "rules")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	rules, err := ReadRulesFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadRulesFromFile failed: %v", err)
	}

	expected := []string{
		"No more than 3 games per day",
		"Team A cannot play on Mondays",
		"Teams need 2 days between games",
	}
	if len(rules) != len(expected) {
		t.Fatalf("expected %d rules, got %d", len(expected), len(rules))
	}

	for i, rule := range rules {
		if rule != expected[i] {
			t.Errorf("expected rule %q at index %d, got %q", expected[i], i, rule)
		}
	}
}

func TestReadRulesFromFile_NonExistent(t *testing.T) {
	_, err := ReadRulesFromFile("non_existent_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestParseResult_GetError(t *testing.T) {
	r1 := &ParseResult{Text: "No more than 3 games per day", Error: nil}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("parse failed")
	r2 := &ParseResult{Text: "No more than 3 games per day", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	content := "No more than 3 games per day\nTeam A cannot play on Mondays\n# comment\n\nGames must start after 9am\n"

	tmpfile, err := os.CreateTemp("", "batch_rules")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	parser := &MockRuleParser{}
	processor := NewBatchProcessor(parser, 2, false)

	results, err := processor.ProcessFile(context.Background(), tmpfile.Name())
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	parser := &MockRuleParser{}
	processor := NewBatchProcessor(parser, 2, false)

	_, err := processor.ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadRulesFromFile_Deduplication(t *testing.T) {
	content := `No more than 3 games per day
No more than 3 games per day`

	tmpfile, err := os.CreateTemp("", "rules_dedup")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	rules, err := ReadRulesFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadRulesFromFile failed: %v", err)
	}

	if len(rules) != 1 {
		t.Errorf("expected 1 rule after deduplication, got %d", len(rules))
	}
}
