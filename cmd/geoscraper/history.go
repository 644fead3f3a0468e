package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NoamNol/geoscraper/internal/config"
	"github.com/NoamNol/geoscraper/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [region-name]",
		Short: "Show recorded crawls",
		Long: `History shows crawls recorded in the local database.

Without an argument it lists every region name that has been crawled.
With a region name it lists that region's recorded crawls, newest first.

Examples:
  # List all recorded region names
  geoscraper history

  # Show the crawl history of one region
  geoscraper history "Arad"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no crawl history yet: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if len(args) == 0 {
		names, err := db.ListSearches(ctx)
		if err != nil {
			return fmt.Errorf("failed to list searches: %w", err)
		}
		if len(names) == 0 {
			fmt.Fprintln(out, "No crawls recorded yet.")
			return nil
		}
		fmt.Fprintln(out, "Recorded regions:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	}

	searchName := args[0]
	history, err := db.GetHistory(ctx, searchName)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}
	if len(history) == 0 {
		fmt.Fprintf(out, "No crawls recorded for %q.\n", searchName)
		return nil
	}

	fmt.Fprintf(out, "Crawl history for %q:\n\n", searchName)
	fmt.Fprintf(out, "%-6s %-20s %-10s %s\n", "ID", "DATE", "LOCATIONS", "FAILURES")
	for _, meta := range history {
		fmt.Fprintf(out, "%-6d %-20s %-10d %d\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.LocationCount,
			meta.FailureCount,
		)
	}
	return nil
}
