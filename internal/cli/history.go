package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/history"
)

var (
	historyLimit  int
	historyOffset int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analysis verdicts, newest first",
	Long: `History reads the local append-only analysis log.

Example:
  veridict history
  veridict history --limit 50 --offset 100`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to print")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "entries to skip from the newest")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(cmd.Context(), historyLimit, historyOffset)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if verbose {
		total, err := store.Count(cmd.Context())
		if err == nil {
			fmt.Fprintf(os.Stderr, "%d entries total\n", total)
		}
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
