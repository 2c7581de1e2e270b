package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/leagueworks/schedparse/internal/model"
	"github.com/leagueworks/schedparse/internal/pipeline"
	"github.com/leagueworks/schedparse/internal/segment"
	"github.com/spf13/cobra"
)

var (
	inputFile   string
	fromHTML    bool
	noSplit     bool
	outJSON     string
	defaultType string
	review      bool
	timeout     time.Duration
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Parse scheduling constraint text into structured records",
	Long: `Parse analyzes free-form scheduling rules to:
- Split compound text into individual constraints
- Classify each constraint (temporal, capacity, location, rest, preference)
- Extract entities (teams, venues, days, times, counts)
- Derive typed parameters for the scheduler
- Report a transparent per-component confidence score

Example:
  schedparse parse "Team A cannot play on Mondays"
  schedparse parse "No more than 3 games per day and teams need 2 days rest" --json out.json
  schedparse parse --file rules.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Input flags
	parseCmd.Flags().StringVar(&inputFile, "file", "", "read constraint text from file instead of argument")
	parseCmd.Flags().BoolVar(&fromHTML, "from-html", false, "strip HTML markup from the input before parsing")
	parseCmd.Flags().BoolVar(&noSplit, "no-split", false, "treat the input as a single constraint")

	// Output flags
	parseCmd.Flags().StringVar(&outJSON, "json", "-", "output JSON path (- for stdout)")

	// Parser flags
	parseCmd.Flags().StringVar(&defaultType, "default-type", "temporal", "constraint type assigned when classification finds nothing")
	parseCmd.Flags().BoolVar(&review, "review", false, "run the generative review pass on each record")
	parseCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall parse timeout")
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse-result cache")

	// LLM flags
	parseCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable external model classification and entity extraction")
	parseCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	parseCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing: %s\n", text)
		fmt.Fprintf(os.Stderr, "Split: %v\n", !noSplit)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewParser(cfg)

	resp, err := p.Parse(ctx, model.ParseRequest{
		Text:          text,
		SplitMultiple: !noSplit,
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Parsed %d constraint(s)\n", len(resp.Records))
		fmt.Fprintf(os.Stderr, "✓ Average confidence: %.2f\n", resp.Stats.AverageConfidence)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer()
	if err := renderer.RenderJSON(resp, outJSON); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if verbose {
		renderer.RenderSummary(resp)
	}

	return nil
}

// readInput resolves the constraint text from the positional argument or
// the --file flag, stripping HTML when requested.
func readInput(args []string) (string, error) {
	var text string

	switch {
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		text = string(data)
	case len(args) == 1:
		text = args[0]
	default:
		return "", fmt.Errorf("constraint text required: pass it as an argument or via --file")
	}

	if fromHTML {
		stripped, err := segment.StripHTML(text)
		if err != nil {
			return "", fmt.Errorf("strip HTML: %w", err)
		}
		text = stripped
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("constraint text is empty")
	}

	return text, nil
}

// buildConfig assembles the pipeline configuration from flags and env
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Parser.ReviewEnabled = review
	cfg.Output.Verbose = verbose
	cfg.Output.JSON = outJSON

	dt := model.ConstraintType(defaultType)
	if !dt.Valid() {
		return nil, fmt.Errorf("invalid default type %q (want temporal, capacity, location, rest or preference)", defaultType)
	}
	cfg.Parser.DefaultType = dt

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			baseURL := os.Getenv("OLLAMA_BASE_URL")
			if baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
