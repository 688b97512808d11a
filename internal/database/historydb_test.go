package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docrisk/docrisk/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func storedResult(document, fingerprint string, overall float64, analyzedAt time.Time) *model.AnalysisResult {
	result := model.NewAnalysisResult(document)
	result.DocumentID = fingerprint
	result.AnalyzedAt = analyzedAt
	result.PageCount = 1
	result.OverallRisk = overall
	result.SetTier(model.TierMedium)
	result.Findings = []model.Finding{
		model.NewFinding("risk_keywords", "2 risk keyword occurrences across 1 distinct terms: penalty x2"),
	}
	return result
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer func() { _ = db.Close() }()

		if _, err := os.Stat(filepath.Join(dbDir, "docrisk.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false requires existing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("Open() expected error for missing database")
		}
	})
}

func TestHistoryDBSaveAndList(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, doc := range []string{"a.txt", "b.txt", "c.txt"} {
		result := storedResult(doc, "fp-"+doc, float64(10*(i+1)), base.Add(time.Duration(i)*time.Hour))
		if err := db.SaveResult(ctx, result); err != nil {
			t.Fatalf("SaveResult() error = %v", err)
		}
	}

	t.Run("lists newest first", func(t *testing.T) {
		records, err := db.ListResults(ctx, 0)
		if err != nil {
			t.Fatalf("ListResults() error = %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("got %d records, want 3", len(records))
		}
		if records[0].Document != "c.txt" || records[2].Document != "a.txt" {
			t.Errorf("records not newest first: %s, %s, %s",
				records[0].Document, records[1].Document, records[2].Document)
		}
		if records[0].OverallRisk != 30 {
			t.Errorf("OverallRisk = %v, want 30", records[0].OverallRisk)
		}
		if records[0].Tier != "MEDIUM" {
			t.Errorf("Tier = %q, want MEDIUM", records[0].Tier)
		}
	})

	t.Run("limit bounds rows", func(t *testing.T) {
		records, err := db.ListResults(ctx, 2)
		if err != nil {
			t.Fatalf("ListResults() error = %v", err)
		}
		if len(records) != 2 {
			t.Errorf("got %d records, want 2", len(records))
		}
	})
}

func TestHistoryDBLatestResult(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := db.SaveResult(ctx, storedResult("contract.txt", "fp-1", 25, base)); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := db.SaveResult(ctx, storedResult("contract.txt", "fp-1", 55, base.Add(time.Hour))); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	t.Run("returns newest run with findings intact", func(t *testing.T) {
		result, err := db.LatestResult(ctx, "contract.txt")
		if err != nil {
			t.Fatalf("LatestResult() error = %v", err)
		}
		if result.OverallRisk != 55 {
			t.Errorf("OverallRisk = %v, want 55", result.OverallRisk)
		}
		if len(result.Findings) != 1 || result.Findings[0].Type != "risk_keywords" {
			t.Errorf("Findings = %+v, want risk_keywords", result.Findings)
		}
	})

	t.Run("unknown document returns ErrNotFound", func(t *testing.T) {
		_, err := db.LatestResult(ctx, "unknown.txt")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("LatestResult() error = %v, want ErrNotFound", err)
		}
	})
}

func TestHistoryDBResultsByFingerprint(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// The same content analyzed under two different names.
	if err := db.SaveResult(ctx, storedResult("original.txt", "same-fp", 40, base)); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := db.SaveResult(ctx, storedResult("renamed.txt", "same-fp", 40, base.Add(time.Hour))); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}
	if err := db.SaveResult(ctx, storedResult("other.txt", "other-fp", 10, base)); err != nil {
		t.Fatalf("SaveResult() error = %v", err)
	}

	results, err := db.ResultsByFingerprint(ctx, "same-fp")
	if err != nil {
		t.Fatalf("ResultsByFingerprint() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].DocumentName != "renamed.txt" {
		t.Errorf("results[0].DocumentName = %q, want renamed.txt", results[0].DocumentName)
	}
}
