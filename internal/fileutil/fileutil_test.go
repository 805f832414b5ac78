package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBackupFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "navidrome.db")

	content := []byte("pretend sqlite payload")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	dst, err := BackupFile(src, now)
	if err != nil {
		t.Fatal(err)
	}

	want := src + ".backup-20250601-123045"
	if dst != want {
		t.Fatalf("backup path: got %q, want %q", dst, want)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestBackupFile_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "navidrome.db")
	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	if err := os.WriteFile(src+".backup-20250601-123045", []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := BackupFile(src, now); err == nil {
		t.Fatal("expected error when backup target already exists")
	}

	got, err := os.ReadFile(src + ".backup-20250601-123045")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "old" {
		t.Fatalf("existing backup was clobbered: %q", got)
	}
}

func TestBackupFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := BackupFile(filepath.Join(dir, "nope.db"), time.Now()); err == nil {
		t.Fatal("expected error for missing source")
	}
}
