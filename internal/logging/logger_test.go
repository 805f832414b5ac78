package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"crossfade/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"  warn  ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestPrettyHandlerLine(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, levelVar))

	logger.Info("library parsed", "tracks", 42, "path", "/srv/Library.xml")

	line := strings.TrimSuffix(buf.String(), "\n")
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected a single line, got %q", buf.String())
	}
	if !strings.Contains(line, " INFO ") {
		t.Errorf("missing level label in %q", line)
	}
	if !strings.Contains(line, "library parsed") {
		t.Errorf("missing message in %q", line)
	}
	if !strings.Contains(line, "tracks=42") {
		t.Errorf("missing int attr in %q", line)
	}
	if !strings.Contains(line, "path=/srv/Library.xml") {
		t.Errorf("missing string attr in %q", line)
	}
}

func TestPrettyHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, levelVar)).With("component", "migrate")

	logger.Info("run complete")

	line := buf.String()
	if !strings.Contains(line, "migrate: run complete") {
		t.Errorf("component prefix missing in %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should not render as an attr: %q", line)
	}
}

func TestPrettyHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, levelVar))

	logger.Warn("unusable location", "location", "file://old drive/song.mp3", "err", errors.New("normalize: empty"))

	line := buf.String()
	if !strings.Contains(line, `location="file://old drive/song.mp3"`) {
		t.Errorf("value with spaces should be quoted: %q", line)
	}
	if !strings.Contains(line, `err="normalize: empty"`) {
		t.Errorf("error value should be quoted: %q", line)
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, levelVar)).WithGroup("report")

	logger.Info("tallies", "matched", 3, slog.Group("skipped", "no_location", 1))

	line := buf.String()
	if !strings.Contains(line, "report.matched=3") {
		t.Errorf("group prefix missing in %q", line)
	}
	if !strings.Contains(line, "report.skipped.no_location=1") {
		t.Errorf("nested group prefix missing in %q", line)
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, levelVar))

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn record should pass: %q", out)
	}
}

func TestPrettyHandlerEmptyMessage(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	handler := newPrettyHandler(&buf, levelVar)

	record := slog.NewRecord(time.Time{}, slog.LevelInfo, "   ", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(buf.String(), "(no message)") {
		t.Errorf("blank message placeholder missing in %q", buf.String())
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Logging.Format = "console"
	cfg.Logging.Level = "debug"

	logger, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Debug("hello from the test")

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "crossfade.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from the test") {
		t.Errorf("log file missing record: %q", string(data))
	}
}

func TestNewFromConfigNil(t *testing.T) {
	logger, err := NewFromConfig(nil)
	if err != nil {
		t.Fatalf("NewFromConfig(nil): %v", err)
	}
	if logger == nil {
		t.Fatal("expected a usable logger")
	}
}
