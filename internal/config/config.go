package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen based on typical directory-site characteristics
// and the behavior of earlier versions of this scraper where applicable.
const (
	// DefaultStartURL is the root of the public geography directory.
	// Every crawl starts from a country listing page under this URL.
	DefaultStartURL = "https://wikimapia.org/country/"

	// DefaultTimeout is set to 30 seconds per request. Directory pages are
	// small, but detail pages occasionally render slowly server-side; a
	// shorter timeout would produce spurious enrichment failures.
	DefaultTimeout = 30 * time.Second

	// DefaultWorkers of 10 concurrent fetches balances throughput with
	// politeness. Higher values may trigger rate limiting or blocking by
	// the source site. Lower values are safer but slower for large regions.
	DefaultWorkers = 10

	// DefaultOutDir is the directory the GeoJSON output is written to,
	// relative to the working directory unless overridden.
	DefaultOutDir = "output"

	// DefaultOutputFile is the GeoJSON file name inside the output directory.
	DefaultOutputFile = "output.geojson"

	// DefaultDirectoryPrefix is the URL path prefix of directory listing
	// pages. Pages under it are traversal structure, not locations, and are
	// excluded from enrichment.
	DefaultDirectoryPrefix = "/country/"

	// AppName is the application name used for XDG directory paths.
	AppName = "geoscraper"

	// DefaultUserAgent identifies the scraper in HTTP requests.
	// Using a descriptive User-Agent is good practice and allows operators
	// to identify scraper traffic in their logs.
	DefaultUserAgent = "geoscraper/1.0 (+https://github.com/NoamNol/geoscraper)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for a crawl.
// This struct is designed to be populated from CLI flags, environment
// variables and the config file, and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// SearchName is the region name to look up on the start page's listing.
	// Matching ignores case and Unicode encoding form. This is the one
	// required input of a crawl.
	SearchName string

	// StartURL is the directory page whose listing is searched for
	// SearchName. Must be an absolute http or https URL.
	StartURL string

	// OutDir is the directory the GeoJSON output file is written to.
	// It is created if it does not exist.
	OutDir string

	// Workers is the number of concurrent page fetches during both
	// discovery and enrichment. Higher values increase throughput but may
	// get the scraper throttled or blocked by the source site.
	Workers int

	// Timeout is the timeout for each HTTP request.
	// This applies to individual fetches, not the overall crawl duration.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	// A descriptive User-Agent helps site operators identify scraper traffic.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory exhaustion.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// DirectoryPrefix is the URL path prefix identifying directory listing
	// pages, which are excluded from enrichment.
	DirectoryPrefix string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// MarkdownReport enables writing a Markdown crawl summary next to the
	// GeoJSON output. The GeoJSON file is always written regardless.
	MarkdownReport bool

	// PrettyJSON enables indented GeoJSON output. The default is compact
	// single-line output, which is what downstream GeoJSON tooling expects.
	PrettyJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .geoscraper in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SearchConfigs holds per-search configurations loaded from the config
	// file. This is populated by LoadConfigFile and consulted before a crawl.
	SearchConfigs *File

	// DBDir is the directory path for storing the SQLite database.
	// When set, crawl results are saved to the database for historical
	// comparison. Defaults to the XDG data directory
	// (~/.local/share/geoscraper on Linux).
	DBDir string

	// SaveToDB indicates whether to save crawl results to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, worker
// count). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		StartURL:        DefaultStartURL,
		OutDir:          DefaultOutDir,
		Workers:         DefaultWorkers,
		Timeout:         DefaultTimeout,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		DirectoryPrefix: DefaultDirectoryPrefix,
	}
}

// XDGDataDir returns the XDG data directory for the scraper.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/geoscraper
// On macOS: ~/Library/Application Support/geoscraper
// On Windows: %LOCALAPPDATA%\geoscraper
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the scraper.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/geoscraper
// On macOS: ~/Library/Application Support/geoscraper
// On Windows: %APPDATA%\geoscraper
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have a region name to look up
	if c.SearchName == "" {
		return ErrNoSearchName
	}

	// The start URL must be absolute so relative links on its pages resolve
	u, err := url.Parse(c.StartURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidStartURL
	}

	// Workers must be positive; zero would mean no crawling
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// MaxBodySize must be non-negative; 0 means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// OutputPath returns the full path of the GeoJSON output file.
func (c *Config) OutputPath() string {
	return filepath.Join(c.OutDir, DefaultOutputFile)
}
