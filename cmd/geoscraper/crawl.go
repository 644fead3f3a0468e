package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NoamNol/geoscraper/internal/config"
	"github.com/NoamNol/geoscraper/internal/crawler"
	"github.com/NoamNol/geoscraper/internal/database"
	"github.com/NoamNol/geoscraper/internal/log"
	"github.com/NoamNol/geoscraper/internal/model"
	"github.com/NoamNol/geoscraper/internal/report"
)

// summaryFileName is the Markdown summary file name inside the output directory.
const summaryFileName = "summary.md"

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [region-name]",
		Short: "Crawl a region and write its locations as GeoJSON",
		Long: `Crawl finds the named region on the directory's listing page, walks every
page under it, and collects all locations that carry coordinates. Each
location is then enriched with the description from its own page.

The result is written as a GeoJSON feature collection to <outdir>/output.geojson.

The region name may also be supplied through the WIKI_SEARCHNAME environment
variable, the start URL through WIKI_STARTURL, and the output directory
through WIKI_OUTDIR. Flags take precedence over the environment.

Examples:
  # Crawl a region by name
  geoscraper crawl "Arad"

  # Crawl from a different directory page
  geoscraper crawl -u https://wikimapia.org/country/ "Negev"

  # Write pretty-printed GeoJSON plus a Markdown summary
  geoscraper crawl --pretty --markdown "Arad"

  # Use a custom configuration file
  geoscraper crawl -c myconfig.yaml "Arad"

Configuration file (.geoscraper) example:
  defaults:
    workers: 5
  searches:
    Arad:
      outDir: "arad-results"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().StringP("start-url", "u", config.DefaultStartURL,
		"Directory page whose listing is searched for the region name")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent page fetches")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with HTTP requests")

	// Output flags
	cmd.Flags().StringP("outdir", "o", config.DefaultOutDir,
		"Directory the GeoJSON output is written to (created if missing)")
	cmd.Flags().BoolP("pretty", "p", false,
		"Write indented GeoJSON instead of compact output")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown crawl summary next to the GeoJSON output")

	// Persistence flags
	cmd.Flags().Bool("no-db", false,
		"Do not record the crawl in the local history database")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .geoscraper in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags, environment and config file
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, the environment
// and the config file. Precedence: flags > environment > config file >
// built-in defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.StartURL, err = cmd.Flags().GetString("start-url")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.OutDir, err = cmd.Flags().GetString("outdir")
	if err != nil {
		return nil, err
	}

	cfg.PrettyJSON, err = cmd.Flags().GetBool("pretty")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	noDB, err := cmd.Flags().GetBool("no-db")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Positional argument is the region name
	if len(args) > 0 {
		cfg.SearchName = args[0]
	}

	// Environment fills whatever the flags left unset
	cfg.ApplyEnv()

	// Load per-search configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SearchConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.SearchConfigs = &config.File{
			Searches: make(map[string]config.SearchConfig),
		}
	}

	// Config file fills whatever flags and environment left at defaults
	cfg.ApplySearchConfig(cfg.SearchConfigs.GetSearchConfig(cfg.SearchName))

	// Record crawls in the history database unless opted out
	cfg.SaveToDB = !noDB
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runCrawl executes the crawl and writes its outputs.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting crawl",
		"searchName", cfg.SearchName,
		"startURL", cfg.StartURL,
		"workers", cfg.Workers,
		"saveToDB", cfg.SaveToDB,
	)

	fetcher := crawler.NewHTTPFetcher(
		&http.Client{Timeout: cfg.Timeout},
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	c := crawler.New(fetcher,
		crawler.WithWorkers(cfg.Workers),
		crawler.WithDirectoryPrefix(cfg.DirectoryPrefix),
		crawler.WithLogger(logger),
	)

	fmt.Printf("Searching for %q under %s...\n", cfg.SearchName, cfg.StartURL)
	startTime := time.Now()

	result, err := c.Run(ctx, cfg.StartURL, cfg.SearchName)
	if err != nil {
		return err
	}

	if err := writeOutputs(cfg, result); err != nil {
		return err
	}

	// Terminal summary
	if _, err := report.NewSimpleWriter(os.Stdout).WriteReport(result.Report); err != nil {
		logger.Error("failed to print summary", "error", err)
	}

	// Save to database if enabled; a failing database never fails the crawl
	if cfg.SaveToDB {
		if err := saveCrawlResult(ctx, cfg, result, logger); err != nil {
			logger.Error("failed to save crawl to history", "error", err)
		}
	}

	fmt.Printf("--- executed in %.2f seconds ---\n", time.Since(startTime).Seconds())
	return nil
}

// writeOutputs writes the GeoJSON file and, when requested, the Markdown
// summary into the output directory.
func writeOutputs(cfg *config.Config, result *model.CrawlResult) error {
	if err := os.MkdirAll(cfg.OutDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outPath := cfg.OutputPath()
	f, err := os.Create(outPath) //nolint:gosec // Output path is user-chosen by design
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	var opts []report.GeoJSONWriterOption
	if cfg.PrettyJSON {
		opts = append(opts, report.WithPrettyPrint())
	}
	if _, err := report.NewGeoJSONWriter(f, opts...).Write(result); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	fmt.Printf("Wrote %d location(s) to %s\n", len(result.Collection.Features), outPath)

	if cfg.MarkdownReport {
		mdPath := filepath.Join(cfg.OutDir, summaryFileName)
		mf, err := os.Create(mdPath) //nolint:gosec // Output path is user-chosen by design
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		defer mf.Close()

		if _, err := report.NewMarkdownWriter(mf).Write(result); err != nil {
			return fmt.Errorf("failed to write Markdown summary: %w", err)
		}
		fmt.Printf("Wrote crawl summary to %s\n", mdPath)
	}

	return nil
}

// saveCrawlResult records the crawl in the local history database.
func saveCrawlResult(ctx context.Context, cfg *config.Config, result *model.CrawlResult, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveCrawl(ctx, result); err != nil {
		return err
	}

	logger.Info("crawl saved to history", "searchName", result.Report.SearchName, "dir", cfg.DBDir)
	return nil
}
