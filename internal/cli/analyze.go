package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/logging"
	"github.com/veridict/veridict/internal/model"
)

var (
	analyzeURL     string
	analyzeTimeout time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze one piece of news text or an article URL",
	Long: `Analyze runs the full pipeline once and prints the verdict as JSON.

Example:
  veridict analyze "Government announces new infrastructure plan"
  veridict analyze --url https://example.com/news/article`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "article URL to fetch and analyze")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 30*time.Second, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	}
	if text == "" && analyzeURL == "" {
		return fmt.Errorf("provide news text as an argument or an article via --url")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(cfg.Logging, os.Stderr)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	p, cleanup, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	result, err := p.Analyze(ctx, model.AnalysisRequest{Text: text, URL: analyzeURL})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
