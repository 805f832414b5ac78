package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"crossfade/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantDB := filepath.Join(tempHome, ".local", "share", "navidrome", "navidrome.db")
	if cfg.Paths.NavidromeDB != wantDB {
		t.Fatalf("unexpected db path: got %q want %q", cfg.Paths.NavidromeDB, wantDB)
	}
	wantLogs := filepath.Join(tempHome, ".local", "share", "crossfade", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Migration.Mode != "add" {
		t.Fatalf("unexpected default mode: %q", cfg.Migration.Mode)
	}
	if !cfg.Migration.BackupDatabase {
		t.Fatal("expected backups enabled by default")
	}
	if !cfg.Migration.ImportDateAdded {
		t.Fatal("expected date-added import enabled by default")
	}
	if cfg.Migration.ImportPlaylists {
		t.Fatal("expected playlist import disabled by default")
	}
	if cfg.Migration.SamplePaths != 5 {
		t.Fatalf("unexpected sample paths: %d", cfg.Migration.SamplePaths)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil {
		t.Fatalf("expected log dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.LogDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "crossfade.toml")

	type payload struct {
		Paths struct {
			LibraryXML  string `toml:"library_xml"`
			NavidromeDB string `toml:"navidrome_db"`
		} `toml:"paths"`
		Migration struct {
			UserID string `toml:"user_id"`
			Mode   string `toml:"mode"`
		} `toml:"migration"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.LibraryXML = filepath.Join(tempDir, "Library.xml")
	custom.Paths.NavidromeDB = filepath.Join(tempDir, "navidrome.db")
	custom.Migration.UserID = "  abc123  "
	custom.Migration.Mode = "Replace"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("resolved = %q, want %q", resolved, configPath)
	}
	if cfg.Paths.LibraryXML != custom.Paths.LibraryXML {
		t.Fatalf("library_xml = %q", cfg.Paths.LibraryXML)
	}
	if cfg.Migration.UserID != "abc123" {
		t.Fatalf("user_id should be trimmed, got %q", cfg.Migration.UserID)
	}
	if cfg.Migration.Mode != "replace" {
		t.Fatalf("mode should lowercase, got %q", cfg.Migration.Mode)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("format should lowercase, got %q", cfg.Logging.Format)
	}
}

func TestLoadMissingCustomPathUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to report exists=false")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Migration.Mode != "add" {
		t.Fatalf("expected defaults, got mode %q", cfg.Migration.Mode)
	}
}

func TestLoadRejectsBadMode(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "crossfade.toml")
	if err := os.WriteFile(configPath, []byte("[migration]\nmode = \"merge\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected error for invalid mode")
	}
	if !strings.Contains(err.Error(), "migration.mode") {
		t.Fatalf("error should name the field, got %v", err)
	}
}

func TestLoadRejectsNegativeSamplePaths(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "crossfade.toml")
	if err := os.WriteFile(configPath, []byte("[migration]\nsample_paths = -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for negative sample_paths")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Migration.Mode != "add" {
		t.Fatalf("sample mode = %q", cfg.Migration.Mode)
	}
}
