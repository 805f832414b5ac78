package match

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"crossfade/internal/pathnorm"
)

// Entry is one catalog row in the index: its identifier and stored path.
type Entry struct {
	ID   string
	Path string
}

// Kind labels the outcome of a lookup.
type Kind string

const (
	// KindUnmatched means no suffix of the source path exists in the catalog.
	KindUnmatched Kind = "unmatched"
	// KindUnique means some suffix narrowed to exactly one catalog row.
	KindUnique Kind = "unique"
	// KindAmbiguous means the most specific populated suffix still had
	// several rows. The first candidate is a usable fallback.
	KindAmbiguous Kind = "ambiguous"
)

// Result is the outcome of resolving one source location.
type Result struct {
	Kind Kind
	// Path is the normalized source path the lookup used.
	Path string
	// Candidates is empty for unmatched results, holds one entry for unique
	// results, and lists every row sharing the most specific populated
	// suffix, ordered by ID, for ambiguous results.
	Candidates []Entry
}

// Best returns the entry downstream processing should act on. Ambiguous
// results resolve to the lowest candidate ID so repeated runs behave the
// same way.
func (r Result) Best() (Entry, bool) {
	if len(r.Candidates) == 0 {
		return Entry{}, false
	}
	return r.Candidates[0], true
}

// Index maps every case-folded path suffix of the catalog to the entries
// sharing it. An entry whose path splits into N segments appears in N
// buckets, from bare filename up to the full path, so a lookup can resolve
// at whatever depth turns out to be unambiguous.
//
// Build once per run and treat as read-only. The index is not safe for
// concurrent use; the case folder carries state.
type Index struct {
	buckets map[string][]Entry
	folder  cases.Caser
	size    int
	skipped int
}

// NewIndex builds the suffix index over the full catalog entry set.
// Entries whose paths cannot be normalized are counted and left out.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		buckets: make(map[string][]Entry, len(entries)*2),
		folder:  cases.Fold(),
	}
	for _, entry := range entries {
		normalized, err := pathnorm.Normalize(entry.Path)
		if err != nil {
			idx.skipped++
			continue
		}
		segments := strings.Split(normalized, "/")
		for i := range segments {
			key := idx.folder.String(strings.Join(segments[i:], "/"))
			idx.buckets[key] = append(idx.buckets[key], entry)
		}
		idx.size++
	}
	return idx
}

// Size reports how many entries were indexed.
func (idx *Index) Size() int { return idx.size }

// Skipped reports how many entries had unusable paths.
func (idx *Index) Skipped() int { return idx.skipped }

// Buckets reports the number of distinct suffix keys.
func (idx *Index) Buckets() int { return len(idx.buckets) }

// Match resolves one raw source location. The lookup tries the bare
// filename first and widens one directory at a time; a bucket holding
// exactly one entry wins immediately, and buckets holding several never
// stop the widening. When the loop runs out with no unique hit, the most
// specific populated bucket decides: several entries is an ambiguous
// result, none at any width is unmatched.
//
// The returned error reports only normalization failure of the location;
// the caller accounts for those separately from unmatched paths.
func (idx *Index) Match(rawLocation string) (Result, error) {
	normalized, err := pathnorm.Normalize(rawLocation)
	if err != nil {
		return Result{Kind: KindUnmatched}, err
	}

	segments := strings.Split(normalized, "/")
	var narrowest []Entry
	for i := len(segments) - 1; i >= 0; i-- {
		bucket := idx.buckets[idx.folder.String(strings.Join(segments[i:], "/"))]
		switch {
		case len(bucket) == 1:
			return Result{Kind: KindUnique, Path: normalized, Candidates: []Entry{bucket[0]}}, nil
		case len(bucket) > 1:
			narrowest = bucket
		}
	}

	if len(narrowest) == 0 {
		return Result{Kind: KindUnmatched, Path: normalized}, nil
	}

	candidates := make([]Entry, len(narrowest))
	copy(candidates, narrowest)
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].ID < candidates[b].ID })
	return Result{Kind: KindAmbiguous, Path: normalized, Candidates: candidates}, nil
}
