package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMigration()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryXML, err = expandPath(c.Paths.LibraryXML); err != nil {
		return fmt.Errorf("paths.library_xml: %w", err)
	}
	if c.Paths.NavidromeDB, err = expandPath(c.Paths.NavidromeDB); err != nil {
		return fmt.Errorf("paths.navidrome_db: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMigration() {
	c.Migration.UserID = strings.TrimSpace(c.Migration.UserID)
	c.Migration.Mode = strings.ToLower(strings.TrimSpace(c.Migration.Mode))
	if c.Migration.Mode == "" {
		c.Migration.Mode = defaultMode
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
