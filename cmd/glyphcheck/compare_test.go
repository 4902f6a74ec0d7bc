package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nao1215/glyphcheck/internal/model"
)

// fixedSnapshot is cleanSnapshot with the open stroke of B closed.
var fixedSnapshot = strings.Replace(cleanSnapshot,
	"          - closed: false\n            nodes: [[0, 0, line], [0, 52, line]]",
	"          - closed: true\n            nodes: [[0, 0, line], [100, 0, line], [100, 100, line], [0, 100, line]]",
	1)

// setupHistory checks the snapshot twice into a fresh database, fixing B
// between the runs, and returns the snapshot path and database directory.
func setupHistory(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	dbDir := t.TempDir()
	path := writeSnapshot(t, dir, cleanSnapshot)
	if _, _, err := executeRoot(t, "check", "--db-dir", dbDir, path); err != nil {
		t.Fatalf("first check failed: %v", err)
	}
	writeSnapshot(t, dir, fixedSnapshot)
	if _, _, err := executeRoot(t, "check", "--db-dir", dbDir, path); err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	return path, dbDir
}

func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()
	for _, name := range []string{"list", "list-sources", "glyph", "with-run-id", "master", "json", "markdown", "db-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("text comparison", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		stdout, _, err := executeRoot(t, "compare", "--db-dir", dbDir, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"Check Comparison: " + path,
			"Trend: IMPROVED (fewer issues)",
			"Resolved Issues (2):",
			"[-] B: Open path (endpoints at (0, 0) and (0, 52))",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
		if strings.Contains(stdout, "New Issues") {
			t.Error("expected no new issues")
		}
	})

	t.Run("json comparison", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		stdout, _, err := executeRoot(t, "compare", "--db-dir", dbDir, "--json", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var c model.Comparison
		if err := json.Unmarshal([]byte(stdout), &c); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if c.Trend != model.TrendImproved {
			t.Errorf("expected trend %q, got %q", model.TrendImproved, c.Trend)
		}
		if c.Previous.TotalIssues != 2 || c.Current.TotalIssues != 0 {
			t.Errorf("unexpected totals %d -> %d", c.Previous.TotalIssues, c.Current.TotalIssues)
		}
		if c.Deltas[model.CategoryOpenPath] != -1 {
			t.Errorf("expected open path delta -1, got %d", c.Deltas[model.CategoryOpenPath])
		}
	})

	t.Run("markdown comparison", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		stdout, _, err := executeRoot(t, "compare", "--db-dir", dbDir, "-M", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Check Comparison: "+path) {
			t.Errorf("expected markdown heading, got:\n%s", stdout)
		}
	})

	t.Run("list runs", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		stdout, _, err := executeRoot(t, "compare", "--db-dir", dbDir, "--list", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "(2 runs)") {
			t.Errorf("expected two runs, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "suspicious_length:1 open_path:1") || !strings.Contains(stdout, noIssuesMessage) {
			t.Errorf("expected issue summaries, got:\n%s", stdout)
		}
	})

	t.Run("list sources", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		stdout, _, err := executeRoot(t, "compare", "--db-dir", dbDir, "--list-sources")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Checked sources (1):") || !strings.Contains(stdout, path) {
			t.Errorf("unexpected source list:\n%s", stdout)
		}
	})

	t.Run("glyph history", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		stdout, _, err := executeRoot(t, "compare", "--db-dir", dbDir, "--glyph", "B", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "[open_path] Open path (endpoints at (0, 0) and (0, 52))") {
			t.Errorf("expected recorded open path, got:\n%s", stdout)
		}

		stdout, _, err = executeRoot(t, "compare", "--db-dir", dbDir, "--glyph", "A", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No recorded issues for glyph A") {
			t.Errorf("expected no issues for A, got:\n%s", stdout)
		}
	})

	t.Run("source is required", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "compare", "--db-dir", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "source is required") {
			t.Errorf("expected source error, got %v", err)
		}
	})

	t.Run("single run cannot be compared", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		path := writeSnapshot(t, t.TempDir(), cleanSnapshot)
		if _, _, err := executeRoot(t, "check", "--db-dir", dbDir, path); err != nil {
			t.Fatalf("check failed: %v", err)
		}
		_, _, err := executeRoot(t, "compare", "--db-dir", dbDir, path)
		if err == nil || !strings.Contains(err.Error(), "at least 2 runs") {
			t.Errorf("expected run count error, got %v", err)
		}
	})

	t.Run("unknown run ID", func(t *testing.T) {
		t.Parallel()

		path, dbDir := setupHistory(t)
		_, _, err := executeRoot(t, "compare", "--db-dir", dbDir, "-i", "99", path)
		if err == nil || !strings.Contains(err.Error(), "run with ID 99 not found") {
			t.Errorf("expected missing run error, got %v", err)
		}
	})
}

func TestFormatIssueSummary(t *testing.T) {
	t.Parallel()

	if got := formatIssueSummary(nil); got != noIssuesMessage {
		t.Errorf("expected %q, got %q", noIssuesMessage, got)
	}
	got := formatIssueSummary(map[model.Category]int{
		model.CategoryOpenPath:     1,
		model.CategorySmallSegment: 3,
	})
	if got != "small_segment:3 open_path:1" {
		t.Errorf("unexpected summary %q", got)
	}
}
