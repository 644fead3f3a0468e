package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/NoamNol/geoscraper/internal/model"
)

// CrawlDB provides SQLite-based storage for crawl history.
// It manages connection pooling and provides methods for saving and
// querying past crawl results.
//
// Design decision: We use a single database file for all searched regions
// rather than separate files per region. This simplifies history queries
// across regions and backup/restore operations.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, "geoscraper.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- Crawl reports store complete crawl results: the run summary as JSON
	-- plus the GeoJSON feature collection produced by the crawl.
	CREATE TABLE IF NOT EXISTS crawl_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		search_name TEXT NOT NULL,
		target_url TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		location_count INTEGER DEFAULT 0,
		failure_count INTEGER DEFAULT 0,
		report_json TEXT NOT NULL,
		geojson TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_search ON crawl_reports(search_name);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON crawl_reports(timestamp);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveCrawl saves a complete crawl result.
// The summary and the feature collection are stored as JSON so history can
// be replayed or re-exported without re-crawling.
func (cdb *CrawlDB) SaveCrawl(ctx context.Context, result *model.CrawlResult) error {
	reportJSON, err := json.Marshal(result.Report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	geoJSON, err := json.Marshal(result.Collection)
	if err != nil {
		return fmt.Errorf("failed to serialize feature collection: %w", err)
	}

	query := `
	INSERT INTO crawl_reports (search_name, target_url, location_count, failure_count, report_json, geojson)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = cdb.db.ExecContext(ctx, query,
		result.Report.SearchName,
		result.Report.TargetURL,
		result.Report.LocationCount,
		result.Report.FailureCount(),
		string(reportJSON),
		string(geoJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save crawl result: %w", err)
	}

	return nil
}

// LatestCrawl retrieves the most recent crawl result for a searched region.
// Returns nil without error when no crawl has been recorded for the name.
func (cdb *CrawlDB) LatestCrawl(ctx context.Context, searchName string) (*model.CrawlResult, error) {
	query := `
	SELECT report_json, geojson FROM crawl_reports
	WHERE search_name = ?
	ORDER BY timestamp DESC
	LIMIT 1
	`

	var reportJSON, geoJSON string
	err := cdb.db.QueryRowContext(ctx, query, searchName).Scan(&reportJSON, &geoJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crawl result: %w", err)
	}

	return unmarshalResult(reportJSON, geoJSON)
}

// GetCrawlByID retrieves a crawl result by its database ID.
// Returns nil without error when the ID does not exist.
func (cdb *CrawlDB) GetCrawlByID(ctx context.Context, id int64) (*model.CrawlResult, error) {
	query := `
	SELECT report_json, geojson FROM crawl_reports
	WHERE id = ?
	`

	var reportJSON, geoJSON string
	err := cdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON, &geoJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crawl result: %w", err)
	}

	return unmarshalResult(reportJSON, geoJSON)
}

// ListSearches returns all region names with recorded crawls.
func (cdb *CrawlDB) ListSearches(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT search_name FROM crawl_reports
	ORDER BY search_name
	`

	rows, err := cdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan search name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// CrawlMetadata contains summary information about a stored crawl.
// This is used for displaying crawl history without loading the full result.
type CrawlMetadata struct {
	// ID is the unique identifier of the crawl in the database.
	ID int64

	// SearchName is the region name that was crawled.
	SearchName string

	// Timestamp is when the crawl was performed.
	Timestamp time.Time

	// LocationCount is the number of locations the crawl found.
	LocationCount int

	// FailureCount is the number of pages that failed during the crawl.
	FailureCount int
}

// GetHistory retrieves crawl metadata for a searched region, most recent
// first. This is more efficient than loading full results when only
// metadata is needed.
func (cdb *CrawlDB) GetHistory(ctx context.Context, searchName string) ([]CrawlMetadata, error) {
	query := `
	SELECT id, search_name, timestamp, location_count, failure_count
	FROM crawl_reports
	WHERE search_name = ?
	ORDER BY timestamp DESC
	`

	rows, err := cdb.db.QueryContext(ctx, query, searchName)
	if err != nil {
		return nil, fmt.Errorf("failed to get crawl history: %w", err)
	}
	defer rows.Close()

	var results []CrawlMetadata
	for rows.Next() {
		var meta CrawlMetadata
		var timestamp string

		if err := rows.Scan(&meta.ID, &meta.SearchName, &timestamp, &meta.LocationCount, &meta.FailureCount); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		// Parse timestamp (SQLite may return different formats depending on version/configuration)
		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// unmarshalResult rebuilds a CrawlResult from its stored JSON columns.
func unmarshalResult(reportJSON, geoJSON string) (*model.CrawlResult, error) {
	var report model.CrawlReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	var collection model.FeatureCollection
	if err := json.Unmarshal([]byte(geoJSON), &collection); err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	return &model.CrawlResult{
		Collection: &collection,
		Report:     &report,
	}, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
