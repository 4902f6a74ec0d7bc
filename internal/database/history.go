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

	"github.com/nao1215/glyphcheck/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "glyphcheck.db"

// timestampLayout is how run times are stored. Fixed-width microseconds
// keep lexical order equal to chronological order.
const timestampLayout = "2006-01-02 15:04:05.000000"

// HistoryDB provides SQLite-based storage for check reports.
//
// Design decision: A single database file holds every checked source. The
// compare command lists and diffs runs per source, so runs are keyed by
// the source path and master rather than by file.
type HistoryDB struct {
	db *sql.DB

	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the given directory.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

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

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
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
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	-- Check reports store complete runs as JSON
	CREATE TABLE IF NOT EXISTS check_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		master_id TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL,
		total_issues INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL,
		summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_source ON check_reports(source);
	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON check_reports(timestamp);

	-- Glyph issues make single runs queryable per glyph and category
	CREATE TABLE IF NOT EXISTS glyph_issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id INTEGER NOT NULL REFERENCES check_reports(id) ON DELETE CASCADE,
		glyph TEXT NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_issues_report ON glyph_issues(report_id);
	CREATE INDEX IF NOT EXISTS idx_issues_glyph ON glyph_issues(glyph);
	CREATE INDEX IF NOT EXISTS idx_issues_category ON glyph_issues(category);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SaveCheckReport stores a report and its issues in one transaction and
// returns the new run ID.
func (h *HistoryDB) SaveCheckReport(ctx context.Context, report *model.CheckReport) (id int64, err error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Counts)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize summary: %w", err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `
	INSERT INTO check_reports (source, master_id, timestamp, total_issues, report_json, summary)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		report.Source,
		report.MasterID,
		report.DateChecked.UTC().Format(timestampLayout),
		report.TotalIssues(),
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save check report: %w", err)
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO glyph_issues (report_id, glyph, category, message)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare issue insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range report.Glyphs {
		for _, is := range g.Issues {
			if _, err = stmt.ExecContext(ctx, id, g.Name, is.Category.String(), is.Message); err != nil {
				return 0, fmt.Errorf("failed to save issue of glyph %q: %w", g.Name, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit check report: %w", err)
	}
	return id, nil
}

// GetLatestCheckReport retrieves the most recent report for a source.
// Returns nil without error when the source has no history.
func (h *HistoryDB) GetLatestCheckReport(ctx context.Context, source string) (*model.CheckReport, error) {
	query := `
	SELECT report_json FROM check_reports
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`
	return h.queryReport(ctx, query, source)
}

// GetCheckReportByID retrieves a report by its run ID.
// Returns nil without error when the ID does not exist.
func (h *HistoryDB) GetCheckReportByID(ctx context.Context, id int64) (*model.CheckReport, error) {
	return h.queryReport(ctx, `SELECT report_json FROM check_reports WHERE id = ?`, id)
}

func (h *HistoryDB) queryReport(ctx context.Context, query string, args ...any) (*model.CheckReport, error) {
	var reportJSON string
	err := h.db.QueryRowContext(ctx, query, args...).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check report: %w", err)
	}

	var report model.CheckReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// GetCheckHistory retrieves all reports for a source, newest first.
// A non-empty masterID restricts the history to that master.
func (h *HistoryDB) GetCheckHistory(ctx context.Context, source, masterID string) ([]*model.CheckReport, error) {
	query := `
	SELECT report_json FROM check_reports
	WHERE source = ? AND (? = '' OR master_id = ?)
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := h.db.QueryContext(ctx, query, source, masterID, masterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get check history: %w", err)
	}
	defer rows.Close()

	var reports []*model.CheckReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.CheckReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// ListCheckedSources returns every source with at least one stored run.
func (h *HistoryDB) ListCheckedSources(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT DISTINCT source FROM check_reports ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// CheckReportMetadata contains summary information about a stored run.
// This is used for displaying history without loading the full report.
type CheckReportMetadata struct {
	ID int64

	Source string

	MasterID string

	Timestamp time.Time

	TotalIssues int

	// Summary holds the issue count per category.
	Summary map[model.Category]int
}

// GetCheckHistoryWithMetadata retrieves run metadata for a source, newest first.
func (h *HistoryDB) GetCheckHistoryWithMetadata(ctx context.Context, source string) ([]CheckReportMetadata, error) {
	query := `
	SELECT id, source, master_id, timestamp, total_issues, summary
	FROM check_reports
	WHERE source = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := h.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get check history: %w", err)
	}
	defer rows.Close()

	var results []CheckReportMetadata
	for rows.Next() {
		var (
			meta        CheckReportMetadata
			timestamp   string
			summaryJSON sql.NullString
		)
		if err := rows.Scan(&meta.ID, &meta.Source, &meta.MasterID, &timestamp, &meta.TotalIssues, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		meta.Summary = make(map[model.Category]int)
		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.Summary); err != nil {
				meta.Summary = make(map[model.Category]int)
			}
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// RecordedIssue is one stored issue together with the run it came from.
type RecordedIssue struct {
	ReportID  int64
	Timestamp time.Time
	Glyph     string
	Issue     model.Issue
}

// QueryIssues returns the stored issues of a source, newest run first.
// Empty glyph or category filters match everything.
func (h *HistoryDB) QueryIssues(ctx context.Context, source, glyph, category string) ([]RecordedIssue, error) {
	query := `
	SELECT r.id, r.timestamp, i.glyph, i.category, i.message
	FROM glyph_issues i
	JOIN check_reports r ON r.id = i.report_id
	WHERE r.source = ?
	`
	args := []any{source}

	if glyph != "" {
		query += " AND i.glyph = ?"
		args = append(args, glyph)
	}
	if category != "" {
		query += " AND i.category = ?"
		args = append(args, category)
	}
	query += " ORDER BY r.timestamp DESC, r.id DESC, i.id"

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	var results []RecordedIssue
	for rows.Next() {
		var (
			rec       RecordedIssue
			timestamp string
			stored    string
		)
		if err := rows.Scan(&rec.ReportID, &timestamp, &rec.Glyph, &stored, &rec.Issue.Message); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		c, err := model.ParseCategory(stored)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored category: %w", err)
		}
		rec.Issue.Category = c
		rec.Timestamp = parseTimestamp(timestamp)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339Nano,
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
