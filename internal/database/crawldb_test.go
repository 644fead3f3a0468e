package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NoamNol/geoscraper/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *CrawlDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// testResult builds a crawl result with sample data for a region name.
func testResult(searchName string, locations, failures int) *model.CrawlResult {
	locs := make([]*model.Location, 0, locations)
	for i := 0; i < locations; i++ {
		locs = append(locs, model.NewLocation(
			"https://example.org/"+searchName+"/"+string(rune('a'+i)),
			"Place "+string(rune('A'+i)),
			model.GeoPoint{Lon: float64(i), Lat: float64(i) + 0.5},
		))
	}

	fails := make([]model.CrawlFailure, 0, failures)
	for i := 0; i < failures; i++ {
		fails = append(fails, model.CrawlFailure{
			URL:   "https://example.org/broken/" + string(rune('a'+i)),
			Phase: model.PhaseDiscovery,
			Error: "fetch failed",
		})
	}

	return &model.CrawlResult{
		Collection: model.NewFeatureCollection(locs),
		Report: &model.CrawlReport{
			SearchName:    searchName,
			StartURL:      "https://example.org/country/",
			TargetURL:     "https://example.org/country/" + searchName,
			DateCrawled:   time.Now(),
			Duration:      time.Second,
			PagesVisited:  locations + 1,
			LocationCount: locations,
			Failures:      fails,
		},
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// Check that database file exists
		dbPath := filepath.Join(dbDir, "geoscraper.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected informative error, got %q", err.Error())
		}

		// Verify database directory was NOT created
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "existing-db")
		ctx := context.Background()

		// First create the database and store a crawl
		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if err := db1.SaveCrawl(ctx, testResult("arad", 2, 0)); err != nil {
			t.Fatalf("failed to save crawl: %v", err)
		}
		db1.Close()

		// Now open with CreateIfNotExists=false
		db2, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		defer db2.Close()

		// Verify data persists
		result, err := db2.LatestCrawl(ctx, "arad")
		if err != nil {
			t.Fatalf("failed to get crawl: %v", err)
		}
		if result == nil || result.Report.SearchName != "arad" {
			t.Errorf("expected persisted crawl for arad, got %+v", result)
		}
	})
}

// TestSaveAndLoadCrawl tests the round trip through the database.
func TestSaveAndLoadCrawl(t *testing.T) {
	t.Parallel()

	t.Run("latest crawl restores the full result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		saved := testResult("testland", 3, 1)
		if err := db.SaveCrawl(ctx, saved); err != nil {
			t.Fatalf("failed to save crawl: %v", err)
		}

		loaded, err := db.LatestCrawl(ctx, "testland")
		if err != nil {
			t.Fatalf("failed to load crawl: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected a stored crawl")
		}

		if loaded.Report.SearchName != "testland" {
			t.Errorf("unexpected search name: %q", loaded.Report.SearchName)
		}
		if loaded.Report.LocationCount != 3 {
			t.Errorf("expected 3 locations in report, got %d", loaded.Report.LocationCount)
		}
		if loaded.Report.FailureCount() != 1 {
			t.Errorf("expected 1 failure, got %d", loaded.Report.FailureCount())
		}
		if len(loaded.Collection.Features) != 3 {
			t.Errorf("expected 3 features, got %d", len(loaded.Collection.Features))
		}
	})

	t.Run("history lists every crawl of a name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if err := db.SaveCrawl(ctx, testResult("testland", 1, 0)); err != nil {
			t.Fatalf("failed to save crawl: %v", err)
		}
		if err := db.SaveCrawl(ctx, testResult("testland", 5, 0)); err != nil {
			t.Fatalf("failed to save crawl: %v", err)
		}

		history, err := db.GetHistory(ctx, "testland")
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("expected 2 history entries, got %d", len(history))
		}

		loaded, err := db.GetCrawlByID(ctx, history[0].ID)
		if err != nil {
			t.Fatalf("failed to load crawl by id: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected a stored crawl")
		}
	})

	t.Run("missing search name returns nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		result, err := db.LatestCrawl(context.Background(), "never-crawled")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != nil {
			t.Error("expected nil result for unknown search name")
		}
	})

	t.Run("missing id returns nil", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		result, err := db.GetCrawlByID(context.Background(), 12345)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != nil {
			t.Error("expected nil result for unknown id")
		}
	})
}

// TestListSearches tests enumeration of recorded region names.
func TestListSearches(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"beta", "alpha", "beta"} {
		if err := db.SaveCrawl(ctx, testResult(name, 1, 0)); err != nil {
			t.Fatalf("failed to save crawl: %v", err)
		}
	}

	names, err := db.ListSearches(ctx)
	if err != nil {
		t.Fatalf("failed to list searches: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 distinct names, got %v", names)
	}
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected sorted distinct names, got %v", names)
	}
}

// TestGetHistory tests the metadata listing.
func TestGetHistory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveCrawl(ctx, testResult("testland", 4, 2)); err != nil {
		t.Fatalf("failed to save crawl: %v", err)
	}

	history, err := db.GetHistory(ctx, "testland")
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}

	meta := history[0]
	if meta.SearchName != "testland" {
		t.Errorf("unexpected search name: %q", meta.SearchName)
	}
	if meta.LocationCount != 4 {
		t.Errorf("expected 4 locations, got %d", meta.LocationCount)
	}
	if meta.FailureCount != 2 {
		t.Errorf("expected 2 failures, got %d", meta.FailureCount)
	}
	if meta.Timestamp.IsZero() {
		t.Error("expected a parsed timestamp")
	}
}

// TestParseTimestamp tests the multi-format timestamp parser.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"sqlite default", "2026-08-30 12:34:56", true},
		{"iso with z", "2026-08-30T12:34:56Z", true},
		{"rfc3339", "2026-08-30T12:34:56+02:00", true},
		{"garbage", "not-a-timestamp", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if tt.valid && got.IsZero() {
				t.Errorf("expected %q to parse", tt.input)
			}
			if !tt.valid && !got.IsZero() {
				t.Errorf("expected %q to fail parsing, got %v", tt.input, got)
			}
		})
	}
}
