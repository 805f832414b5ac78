package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SkipReason explains why a source track was ignored.
type SkipReason string

const (
	SkipNoLocation SkipReason = "no_location"
	SkipNoData     SkipReason = "no_data"
	SkipPathError  SkipReason = "path_error"
)

// AmbiguousGroup records one ambiguous match for the diagnostic log.
type AmbiguousGroup struct {
	SourcePath     string
	CandidatePaths []string
}

// Report aggregates the outcome of one migration run.
type Report struct {
	Mode   Mode
	DryRun bool

	Total             int
	Matched           int
	Ambiguous         int
	Unmatched         int
	SkippedNoLocation int
	SkippedNoData     int
	PathErrors        int

	AnnotationsWritten int
	CreatedAtUpdates   int
	PlaylistsCreated   int
	PlaylistTracks     int

	UnmatchedPaths  []string
	AmbiguousGroups []AmbiguousGroup
}

func (r *Report) noteSkip(reason SkipReason) {
	switch reason {
	case SkipNoLocation:
		r.SkippedNoLocation++
	case SkipNoData:
		r.SkippedNoData++
	case SkipPathError:
		r.PathErrors++
	}
}

func (r *Report) noteUnmatched(path string) {
	r.Unmatched++
	r.UnmatchedPaths = append(r.UnmatchedPaths, path)
}

func (r *Report) noteAmbiguous(group AmbiguousGroup) {
	r.Ambiguous++
	r.AmbiguousGroups = append(r.AmbiguousGroups, group)
}

// WriteDiagnostics dumps unmatched paths and ambiguous groups to log
// files under dir, returning the paths it wrote. Runs with nothing to
// report write no files.
func (r *Report) WriteDiagnostics(dir string) ([]string, error) {
	if len(r.UnmatchedPaths) == 0 && len(r.AmbiguousGroups) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create diagnostics dir: %w", err)
	}

	var written []string
	if len(r.UnmatchedPaths) > 0 {
		path := filepath.Join(dir, "unmatched.log")
		var b strings.Builder
		for _, p := range r.UnmatchedPaths {
			b.WriteString(p)
			b.WriteByte('\n')
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return written, fmt.Errorf("write unmatched log: %w", err)
		}
		written = append(written, path)
	}
	if len(r.AmbiguousGroups) > 0 {
		path := filepath.Join(dir, "ambiguous.log")
		var b strings.Builder
		for _, group := range r.AmbiguousGroups {
			b.WriteString(group.SourcePath)
			b.WriteByte('\n')
			for _, candidate := range group.CandidatePaths {
				b.WriteString("    ")
				b.WriteString(candidate)
				b.WriteByte('\n')
			}
		}
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return written, fmt.Errorf("write ambiguous log: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}
