package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDiagnostics(t *testing.T) {
	report := &Report{}
	report.noteUnmatched("/old/a.mp3")
	report.noteUnmatched("/old/b.mp3")
	report.noteAmbiguous(AmbiguousGroup{
		SourcePath:     "/old/Song.mp3",
		CandidatePaths: []string{"/srv/x/Song.mp3", "/srv/y/Song.mp3"},
	})

	dir := filepath.Join(t.TempDir(), "logs")
	written, err := report.WriteDiagnostics(dir)
	if err != nil {
		t.Fatalf("WriteDiagnostics: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v, want two files", written)
	}

	unmatched, err := os.ReadFile(filepath.Join(dir, "unmatched.log"))
	if err != nil {
		t.Fatalf("read unmatched.log: %v", err)
	}
	if string(unmatched) != "/old/a.mp3\n/old/b.mp3\n" {
		t.Errorf("unmatched.log = %q", unmatched)
	}

	ambiguous, err := os.ReadFile(filepath.Join(dir, "ambiguous.log"))
	if err != nil {
		t.Fatalf("read ambiguous.log: %v", err)
	}
	want := "/old/Song.mp3\n    /srv/x/Song.mp3\n    /srv/y/Song.mp3\n"
	if string(ambiguous) != want {
		t.Errorf("ambiguous.log = %q, want %q", ambiguous, want)
	}
}

func TestWriteDiagnosticsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	written, err := (&Report{Matched: 5}).WriteDiagnostics(dir)
	if err != nil {
		t.Fatalf("WriteDiagnostics: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("clean run should write nothing, got %v", written)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("clean run should not create the diagnostics dir")
	}
}

func TestReportCounters(t *testing.T) {
	report := &Report{}
	report.noteSkip(SkipNoLocation)
	report.noteSkip(SkipNoLocation)
	report.noteSkip(SkipNoData)
	report.noteSkip(SkipPathError)

	if report.SkippedNoLocation != 2 || report.SkippedNoData != 1 || report.PathErrors != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1",
			report.SkippedNoLocation, report.SkippedNoData, report.PathErrors)
	}
}
