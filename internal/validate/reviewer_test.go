package validate

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/leagueworks/schedparse/internal/llm"
	"github.com/leagueworks/schedparse/internal/model"
)

// mockProvider implements llm.Provider with a canned review response
type mockProvider struct {
	review *llm.Review
	err    error
}

func (m *mockProvider) Name() string                     { return "mock" }
func (m *mockProvider) IsAvailable(context.Context) bool { return true }

func (m *mockProvider) Classify(ctx context.Context, text string, labels []string) (*llm.Classification, error) {
	return nil, errors.New("not used")
}

func (m *mockProvider) ExtractEntities(ctx context.Context, text string) ([]model.Entity, error) {
	return nil, errors.New("not used")
}

func (m *mockProvider) Review(ctx context.Context, record model.ParsedConstraint, original string) (*llm.Review, error) {
	return m.review, m.err
}

func baseRecord() model.ParsedConstraint {
	n := 3
	return model.ParsedConstraint{
		Type:       model.TypeCapacity,
		Text:       "No more than 3 games per day",
		Confidence: 0.8,
		Method:     model.MethodRules,
		Parameters: model.Parameters{Capacity: &model.CapacityParams{Resource: "games", MaxPerDay: &n}},
	}
}

func TestReviewer_NilProviderPassthrough(t *testing.T) {
	r := NewReviewer(nil, false)

	if r.IsEnabled() {
		t.Error("expected reviewer disabled with nil provider")
	}

	record := baseRecord()
	reviewed := r.Review(context.Background(), record)
	if reviewed.Confidence != record.Confidence || reviewed.Validation != nil {
		t.Errorf("nil provider must pass the record through unchanged: %+v", reviewed)
	}
}

func TestReviewer_ErrorPassthrough(t *testing.T) {
	r := NewReviewer(&mockProvider{err: errors.New("service down")}, false)

	record := baseRecord()
	reviewed := r.Review(context.Background(), record)
	if reviewed.Confidence != record.Confidence || reviewed.Validation != nil {
		t.Errorf("review failure must pass the record through unchanged: %+v", reviewed)
	}
}

func TestReviewer_ValidBoost(t *testing.T) {
	r := NewReviewer(&mockProvider{review: &llm.Review{
		IsValid:          true,
		SchemaCompliance: 0.95,
	}}, false)

	reviewed := r.Review(context.Background(), baseRecord())

	want := 0.8 * 1.05
	if math.Abs(reviewed.Confidence-want) > 1e-9 {
		t.Errorf("expected boosted confidence %f, got %f", want, reviewed.Confidence)
	}
	if reviewed.Validation == nil || !reviewed.Validation.IsValid {
		t.Errorf("expected validation report: %+v", reviewed.Validation)
	}
	if reviewed.Validation.SchemaCompliance != 0.95 {
		t.Errorf("expected compliance 0.95, got %f", reviewed.Validation.SchemaCompliance)
	}
}

func TestReviewer_BoostClamped(t *testing.T) {
	record := baseRecord()
	record.Confidence = 0.99

	r := NewReviewer(&mockProvider{review: &llm.Review{IsValid: true}}, false)
	reviewed := r.Review(context.Background(), record)

	if reviewed.Confidence > 1 {
		t.Errorf("boosted confidence must clamp to 1, got %f", reviewed.Confidence)
	}
}

func TestReviewer_CorrectionApplied(t *testing.T) {
	corrected := baseRecord()
	corrected.Type = model.TypeRest
	n := 2
	corrected.Parameters = model.Parameters{Rest: &model.RestParams{MinDays: &n, BetweenGames: true}}
	corrected.Text = "rewritten by the model"       // Must be restored
	corrected.Method = model.MethodML               // Must be restored
	corrected.Confidence = 0.1                      // Must be restored before boosting

	r := NewReviewer(&mockProvider{review: &llm.Review{
		IsValid:         false,
		NeedsCorrection: true,
		Corrected:       &corrected,
		Issues:          []string{"category mismatch"},
	}}, false)

	record := baseRecord()
	reviewed := r.Review(context.Background(), record)

	if reviewed.Type != model.TypeRest {
		t.Errorf("expected corrected type rest, got %s", reviewed.Type)
	}
	if reviewed.Text != record.Text {
		t.Errorf("original text must survive correction, got %q", reviewed.Text)
	}
	if reviewed.Method != record.Method {
		t.Errorf("parse method must survive correction, got %s", reviewed.Method)
	}
	want := 0.8 * 1.10
	if math.Abs(reviewed.Confidence-want) > 1e-9 {
		t.Errorf("expected corrected boost on original confidence, got %f want %f", reviewed.Confidence, want)
	}
	if reviewed.Validation == nil || !reviewed.Validation.Corrected {
		t.Errorf("expected corrected flag in report: %+v", reviewed.Validation)
	}
}

func TestReviewer_MismatchedCorrectionRejected(t *testing.T) {
	// Correction claims rest but carries capacity parameters: the
	// tagged-union invariant rejects it.
	corrected := baseRecord()
	corrected.Type = model.TypeRest

	r := NewReviewer(&mockProvider{review: &llm.Review{
		IsValid:         false,
		NeedsCorrection: true,
		Corrected:       &corrected,
	}}, false)

	record := baseRecord()
	reviewed := r.Review(context.Background(), record)

	if reviewed.Type != record.Type {
		t.Errorf("invalid correction must not apply, got type %s", reviewed.Type)
	}
	if reviewed.Validation == nil || reviewed.Validation.Corrected {
		t.Errorf("report must not claim correction: %+v", reviewed.Validation)
	}
	if reviewed.Confidence != record.Confidence {
		t.Errorf("no boost without valid review or correction, got %f", reviewed.Confidence)
	}
}
