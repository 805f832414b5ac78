package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMigration(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMigration() error {
	switch c.Migration.Mode {
	case "add", "replace":
	default:
		return fmt.Errorf("migration.mode must be \"add\" or \"replace\", got %q", c.Migration.Mode)
	}
	if c.Migration.SamplePaths < 0 {
		return errors.New("migration.sample_paths must not be negative")
	}
	return nil
}
