package testsupport

import (
	"path/filepath"
	"testing"

	"crossfade/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryXML = filepath.Join(base, "Library.xml")
	cfgVal.Paths.NavidromeDB = filepath.Join(base, "navidrome.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Migration.UserID = "user-1"
	cfgVal.Migration.BackupDatabase = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithUserID sets the migration target account.
func WithUserID(id string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Migration.UserID = id
	}
}

// WithMode sets the merge mode on the test config.
func WithMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Migration.Mode = mode
	}
}

// WithNavidromeDB points the config at an existing database file.
func WithNavidromeDB(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.NavidromeDB = path
	}
}

// WithLibraryXML points the config at an existing export file.
func WithLibraryXML(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LibraryXML = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
