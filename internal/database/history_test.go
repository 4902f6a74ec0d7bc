package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/glyphcheck/internal/model"
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

// newReport builds a report checked at base+offset minutes.
func newReport(source, master string, offset int, issues map[string][]model.Issue, order ...string) *model.CheckReport {
	r := model.NewCheckReport(source)
	r.MasterID = master
	r.DateChecked = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
	for _, name := range order {
		r.AddGlyph(name, issues[name])
	}
	return r
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
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")
		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected informative error, got %q", err.Error())
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "existing-db")
		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db1.SaveCheckReport(context.Background(), newReport("a.yaml", "", 0, nil, "A")); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		_ = db1.Close()

		db2, err := Open(dbDir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to open existing database: %v", err)
		}
		defer db2.Close()

		sources, err := db2.ListCheckedSources(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 1 || sources[0] != "a.yaml" {
			t.Errorf("expected data to persist, got %v", sources)
		}
	})
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true")
	}
}

func TestSaveAndGetCheckReport(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	report := newReport("Sans.yaml", "m01", 0, map[string][]model.Issue{
		"B": {model.NewIssue(model.CategoryOpenPath, "Open path in glyph")},
	}, "A", "B")
	report.FamilyName = "Test Sans"

	id, err := db.SaveCheckReport(ctx, report)
	if err != nil {
		t.Fatalf("failed to save report: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive run id, got %d", id)
	}

	t.Run("latest report round-trips", func(t *testing.T) {
		t.Parallel()

		got, err := db.GetLatestCheckReport(ctx, "Sans.yaml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("expected a report")
		}
		if got.FamilyName != "Test Sans" || got.MasterID != "m01" {
			t.Errorf("unexpected metadata: %+v", got)
		}
		if got.Count(model.CategoryOpenPath) != 1 {
			t.Errorf("expected open_path count 1, got %d", got.Count(model.CategoryOpenPath))
		}
		if msgs := got.Issues("A"); len(msgs) != 1 || msgs[0] != model.OKSentinel {
			t.Errorf("expected A to be OK, got %v", msgs)
		}
	})

	t.Run("by id", func(t *testing.T) {
		t.Parallel()

		got, err := db.GetCheckReportByID(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Source != "Sans.yaml" {
			t.Errorf("expected report for Sans.yaml, got %+v", got)
		}
	})

	t.Run("missing entries return nil", func(t *testing.T) {
		t.Parallel()

		got, err := db.GetLatestCheckReport(ctx, "missing.yaml")
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %v, %v", got, err)
		}
		got, err = db.GetCheckReportByID(ctx, 9999)
		if err != nil || got != nil {
			t.Errorf("expected nil, nil; got %v, %v", got, err)
		}
	})
}

func TestGetCheckHistory(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	// Saved out of chronological order on purpose.
	for _, r := range []*model.CheckReport{
		newReport("Sans.yaml", "m01", 10, nil, "A"),
		newReport("Sans.yaml", "m01", 0, nil, "A"),
		newReport("Sans.yaml", "m02", 20, nil, "A"),
		newReport("Serif.yaml", "m01", 5, nil, "A"),
	} {
		if _, err := db.SaveCheckReport(ctx, r); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
	}

	t.Run("all masters newest first", func(t *testing.T) {
		t.Parallel()

		history, err := db.GetCheckHistory(ctx, "Sans.yaml", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(history))
		}
		for i := 1; i < len(history); i++ {
			if history[i].DateChecked.After(history[i-1].DateChecked) {
				t.Error("expected history sorted newest first")
			}
		}
	})

	t.Run("filtered by master", func(t *testing.T) {
		t.Parallel()

		history, err := db.GetCheckHistory(ctx, "Sans.yaml", "m01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(history))
		}
		if history[0].MasterID != "m01" || history[1].MasterID != "m01" {
			t.Error("expected only m01 reports")
		}
	})

	t.Run("lists sources", func(t *testing.T) {
		t.Parallel()

		sources, err := db.ListCheckedSources(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 2 || sources[0] != "Sans.yaml" || sources[1] != "Serif.yaml" {
			t.Errorf("unexpected sources %v", sources)
		}
	})
}

func TestGetCheckHistoryWithMetadata(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	first := newReport("Sans.yaml", "m01", 0, map[string][]model.Issue{
		"A": {
			model.NewIssue(model.CategoryCollinear, "Extra node at (52, 0)"),
			model.NewIssue(model.CategoryOpenPath, "Open path in glyph"),
		},
	}, "A")
	second := newReport("Sans.yaml", "m01", 1, nil, "A")
	firstID, err := db.SaveCheckReport(ctx, first)
	if err != nil {
		t.Fatalf("failed to save report: %v", err)
	}
	secondID, err := db.SaveCheckReport(ctx, second)
	if err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	metas, err := db.GetCheckHistoryWithMetadata(ctx, "Sans.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(metas))
	}
	if metas[0].ID != secondID || metas[1].ID != firstID {
		t.Errorf("expected newest first, got ids %d, %d", metas[0].ID, metas[1].ID)
	}
	if metas[1].TotalIssues != 2 {
		t.Errorf("expected 2 issues, got %d", metas[1].TotalIssues)
	}
	if metas[1].Summary[model.CategoryCollinear] != 1 {
		t.Errorf("expected collinear count 1, got %v", metas[1].Summary)
	}
	if !metas[1].Timestamp.Equal(first.DateChecked) {
		t.Errorf("expected timestamp %v, got %v", first.DateChecked, metas[1].Timestamp)
	}
}

func TestQueryIssues(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	issues := map[string][]model.Issue{
		"A": {model.NewIssue(model.CategoryCollinear, "Extra node at (52, 0)")},
		"B": {
			model.NewIssue(model.CategorySmallSegment, "Small segment from (0, 0) to (5, 0) [bbox 5×0]"),
			model.NewIssue(model.CategoryOpenPath, "Open path in glyph"),
		},
	}
	if _, err := db.SaveCheckReport(ctx, newReport("Sans.yaml", "", 0, issues, "A", "B")); err != nil {
		t.Fatalf("failed to save report: %v", err)
	}

	tests := []struct {
		name     string
		glyph    string
		category string
		want     int
	}{
		{name: "all", want: 3},
		{name: "by glyph", glyph: "B", want: 2},
		{name: "by category", category: "collinear", want: 1},
		{name: "by glyph and category", glyph: "B", category: "open_path", want: 1},
		{name: "no match", glyph: "C", want: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := db.QueryIssues(ctx, "Sans.yaml", tt.glyph, tt.category)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d issues, got %d", tt.want, len(got))
			}
		})
	}

	t.Run("issue fields round-trip", func(t *testing.T) {
		t.Parallel()

		got, err := db.QueryIssues(ctx, "Sans.yaml", "B", "small_segment")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 issue, got %d", len(got))
		}
		want := model.NewIssue(model.CategorySmallSegment, "Small segment from (0, 0) to (5, 0) [bbox 5×0]")
		if got[0].Issue != want || got[0].Glyph != "B" {
			t.Errorf("unexpected issue %+v", got[0])
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"2026-03-01 12:00:00.000000",
		"2026-03-01 12:00:00",
		"2026-03-01T12:00:00Z",
	} {
		if got := parseTimestamp(s); !got.Equal(want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	if !parseTimestamp("not a time").IsZero() {
		t.Error("expected zero time for unparseable input")
	}
}
