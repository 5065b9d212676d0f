package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "reports", "reports.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveRunRoundTrip(t *testing.T) {
	db := openTestDB(t)

	started := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	findings := []Finding{
		{
			EntryID:     "smith2021",
			Source:      "OpenAlex",
			Field:       "year",
			Severity:    "error",
			LocalValue:  "2021",
			RemoteValue: "2020",
			Message:     "Year mismatch: 2021 vs 2020",
			Score:       0.97,
		},
		{
			EntryID:  "smith2021",
			Source:   "OpenAlex",
			Field:    "doi",
			Severity: "warning",
			Message:  "Missing DOI in local entry",
			Score:    0.97,
		},
	}

	runID, err := db.SaveRun("refs.bib", started, findings)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if runID <= 0 {
		t.Fatalf("invalid run id %d", runID)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].BibPath != "refs.bib" || runs[0].FindingCount != 2 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
	if !runs[0].StartedAt.Equal(started) {
		t.Errorf("started_at = %v, want %v", runs[0].StartedAt, started)
	}

	got, err := db.RunFindings(runID)
	if err != nil {
		t.Fatalf("RunFindings failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(got))
	}
	if got[0] != findings[0] || got[1] != findings[1] {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, findings)
	}
}

func TestListRunsOrder(t *testing.T) {
	db := openTestDB(t)

	for _, path := range []string{"a.bib", "b.bib", "c.bib"} {
		if _, err := db.SaveRun(path, time.Now(), nil); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", path, err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("limit should cap results, got %d", len(runs))
	}
	if runs[0].BibPath != "c.bib" || runs[1].BibPath != "b.bib" {
		t.Errorf("expected newest first, got %v then %v", runs[0].BibPath, runs[1].BibPath)
	}
}

func TestRunFindingsEmpty(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.SaveRun("clean.bib", time.Now(), nil)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	findings, err := db.RunFindings(runID)
	if err != nil {
		t.Fatalf("RunFindings failed: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}
