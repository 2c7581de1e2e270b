package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/leagueworks/schedparse/internal/llm"
	"github.com/leagueworks/schedparse/internal/model"
)

// Confidence boosts applied after a successful review. Multiplicative,
// clamped to 1.0.
const (
	validBoost     = 1.05
	correctedBoost = 1.10
)

// Reviewer submits assembled records to the generative service for a
// schema-compliance check and optional correction. The layer is strictly
// best-effort: on any failure (network error, malformed response, timeout)
// the input record passes through unchanged, so review can never fail the
// pipeline.
type Reviewer struct {
	provider llm.Provider
	verbose  bool
}

// NewReviewer creates a reviewer. A nil provider disables the pass.
func NewReviewer(provider llm.Provider, verbose bool) *Reviewer {
	return &Reviewer{
		provider: provider,
		verbose:  verbose,
	}
}

// IsEnabled reports whether the review pass will run
func (r *Reviewer) IsEnabled() bool {
	return r.provider != nil
}

// Review produces a new record carrying the validation report. The input
// record is never mutated.
func (r *Reviewer) Review(ctx context.Context, record model.ParsedConstraint) model.ParsedConstraint {
	if r.provider == nil {
		return record
	}

	review, err := r.provider.Review(ctx, record, record.Text)
	if err != nil {
		if r.verbose {
			fmt.Fprintf(os.Stderr, "Warning: review pass failed, keeping record as-is: %v\n", err)
		}
		return record
	}

	reviewed := record
	report := model.ValidationReport{
		IsValid:          review.IsValid,
		SchemaCompliance: review.SchemaCompliance,
		Issues:           review.Issues,
	}

	if review.NeedsCorrection && review.Corrected != nil && acceptable(review.Corrected) {
		corrected := *review.Corrected
		// The original segment text and parse path are facts about this
		// request, not something the reviewer may rewrite.
		corrected.Text = record.Text
		corrected.Method = record.Method
		corrected.Breakdown = record.Breakdown
		corrected.Confidence = record.Confidence
		reviewed = corrected
		report.Corrected = true
	}

	if review.IsValid {
		reviewed.Confidence = clamp(reviewed.Confidence * validBoost)
	}
	if report.Corrected {
		reviewed.Confidence = clamp(reviewed.Confidence * correctedBoost)
	}

	reviewed.Validation = &report
	return reviewed
}

// acceptable rejects corrections that would break the tagged-union
// invariant: parameters must match the record's type
func acceptable(record *model.ParsedConstraint) bool {
	if record.Type == model.TypeUnknown || record.Type == "" {
		return false
	}
	kind := record.Parameters.Kind()
	return kind == model.TypeUnknown || kind == record.Type
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
