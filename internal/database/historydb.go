package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docrisk/docrisk/internal/model"
)

// ErrNotFound is returned when no stored analysis matches the query.
var ErrNotFound = errors.New("no stored analysis found")

// HistoryDB provides SQLite-based storage for analysis results.
// It manages connection pooling and provides methods for saving and
// querying past analyses.
//
// Design decision: We store the full result as JSON alongside a few
// indexed columns (document, fingerprint, tier, score) rather than
// normalizing findings into their own table. History queries filter on the
// indexed columns and always want the whole result back, so relational
// decomposition would buy nothing.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "docrisk.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
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

	// SQLite only supports one writer; a single connection avoids lock
	// contention entirely.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Analyses store one row per completed analysis run.
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		analyzed_at DATETIME NOT NULL,
		overall_risk REAL NOT NULL,
		tier TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_document ON analyses(document);
	CREATE INDEX IF NOT EXISTS idx_analyses_fingerprint ON analyses(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses(analyzed_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveResult stores a completed analysis result.
func (hdb *HistoryDB) SaveResult(ctx context.Context, result *model.AnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	_, err = hdb.db.ExecContext(ctx, `
		INSERT INTO analyses (document, fingerprint, analyzed_at, overall_risk, tier, result_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		result.DocumentName,
		result.DocumentID,
		result.AnalyzedAt.UTC(),
		result.OverallRisk,
		result.TierText,
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// AnalysisRecord summarizes one stored analysis without the full result.
type AnalysisRecord struct {
	// ID is the row identifier.
	ID int64

	// Document is the analyzed document's name.
	Document string

	// Fingerprint is the content fingerprint of the analyzed pages.
	Fingerprint string

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time

	// OverallRisk is the fused score.
	OverallRisk float64

	// Tier is the triage tier text.
	Tier string
}

// ListResults returns summaries of stored analyses, newest first.
// The limit bounds the number of rows; a non-positive limit returns all.
func (hdb *HistoryDB) ListResults(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	query := `
		SELECT id, document, fingerprint, analyzed_at, overall_risk, tier
		FROM analyses
		ORDER BY analyzed_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []AnalysisRecord
	for rows.Next() {
		var r AnalysisRecord
		if err := rows.Scan(&r.ID, &r.Document, &r.Fingerprint, &r.AnalyzedAt, &r.OverallRisk, &r.Tier); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LatestResult returns the most recent stored result for the given
// document name. Returns ErrNotFound when the document was never analyzed.
func (hdb *HistoryDB) LatestResult(ctx context.Context, document string) (*model.AnalysisResult, error) {
	var resultJSON string
	err := hdb.db.QueryRowContext(ctx, `
		SELECT result_json FROM analyses
		WHERE document = ?
		ORDER BY analyzed_at DESC, id DESC
		LIMIT 1`,
		document,
	).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest result: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to deserialize result: %w", err)
	}
	return &result, nil
}

// ResultsByFingerprint returns all stored results whose page content
// matches the given fingerprint, newest first. Because the fingerprint is
// content-derived, this finds past analyses of the same document even if it
// was renamed or moved.
func (hdb *HistoryDB) ResultsByFingerprint(ctx context.Context, fingerprint string) ([]*model.AnalysisResult, error) {
	rows, err := hdb.db.QueryContext(ctx, `
		SELECT result_json FROM analyses
		WHERE fingerprint = ?
		ORDER BY analyzed_at DESC, id DESC`,
		fingerprint,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query by fingerprint: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*model.AnalysisResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, fmt.Errorf("failed to deserialize result: %w", err)
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}
