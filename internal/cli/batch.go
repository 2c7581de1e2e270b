package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/leagueworks/schedparse/internal/pipeline"
	"github.com/leagueworks/schedparse/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchOut     string
	batchTimeout time.Duration
	batchSplit   bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse multiple scheduling rules from a file in parallel",
	Long: `Batch processes multiple rules concurrently:
- Read rules from input file (one per line, # for comments)
- Parse rules in parallel with configurable worker count
- Collect every parsed constraint into a single JSON document

Example:
  schedparse batch rules.txt
  schedparse batch rules.txt --concurrency 10 --json results.json
  schedparse batch rules.txt --split --llm openai`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "json", "-", "output JSON path (- for stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchSplit, "split", false, "split each rule into multiple constraints when compound")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse-result cache")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable external model classification and entity extraction")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	batchCmd.Flags().BoolVar(&review, "review", false, "run the generative review pass on each record")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	if verbose {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
		fmt.Fprintf(os.Stderr, "Timeout:    %v\n", batchTimeout)
		if llmEnabled {
			fmt.Fprintf(os.Stderr, "LLM:        %s/%s\n", llmProvider, llmModel)
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewParser(cfg)
	processor := worker.NewBatchProcessor(p, concurrency, batchSplit)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Text, result.Error)
			continue
		}
		successCount++
	}

	if err := writeBatchResults(results, batchOut); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Batch complete: %d rules, %d parsed, %d failed\n",
		len(results), successCount, failureCount)

	return nil
}

// writeBatchResults renders the batch outcome as a JSON array. Failed rules
// are included with their text so callers can see what was skipped.
func writeBatchResults(results []*worker.ParseResult, path string) error {
	type entry struct {
		*worker.ParseResult
		Err string `json:"error,omitempty"`
	}

	entries := make([]entry, len(results))
	for i, r := range results {
		entries[i] = entry{ParseResult: r}
		if r.Error != nil {
			entries[i].Err = r.Error.Error()
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if path == "-" || path == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
