package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"thumbgrab/internal/history"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past thumbnail resolutions and downloads",
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Maximum entries to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Remove all history entries")
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := history.OpenDefault()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := store.Recent(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	for _, line := range history.FormatForDisplay(entries) {
		fmt.Println(line)
	}
	return nil
}
