// Package main provides the entry point for the geoscraper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for geoscraper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geoscraper",
		Short: "Extract location data from a public geography directory",
		Long: `geoscraper crawls a public geography directory site and extracts
location data as GeoJSON.

Given a region name, it finds the region on the directory's listing page,
crawls every page under it, collects all locations with coordinates, and
enriches each location with the description from its own page.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
