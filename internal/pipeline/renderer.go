package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/leagueworks/schedparse/internal/model"
)

// Renderer writes parse responses as JSON and prints a human summary
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the response to the given path, or stdout for "-"
func (r *Renderer) RenderJSON(resp *model.ParseResponse, path string) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// RenderSummary prints a short per-record summary to stderr
func (r *Renderer) RenderSummary(resp *model.ParseResponse) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Parsed %d constraint(s) via %s path\n", len(resp.Records), resp.Stats.Method)
	for i, rec := range resp.Records {
		fmt.Fprintf(os.Stderr, "  %d. [%s] confidence %.2f: %s\n", i+1, rec.Type, rec.Confidence, truncate(rec.Text, 60))
	}
	fmt.Fprintf(os.Stderr, "Average confidence: %.2f (%d high-confidence)\n",
		resp.Stats.AverageConfidence, resp.Stats.HighConfidenceCount)
	fmt.Fprintf(os.Stderr, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
