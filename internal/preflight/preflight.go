package preflight

import (
	"context"

	"crossfade/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for a migration run.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckLibraryExport(cfg.Paths.LibraryXML))
	results = append(results, CheckDatabase(ctx, cfg.Paths.NavidromeDB))

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckLogDir(cfg.Paths.LogDir))
	}

	return results
}

// Failed reports whether any check in results did not pass.
func Failed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return true
		}
	}
	return false
}
