package match

import (
	"reflect"
	"testing"
)

func newTestIndex(t *testing.T, entries ...Entry) *Index {
	t.Helper()
	idx := NewIndex(entries)
	if idx.Skipped() != 0 {
		t.Fatalf("index skipped %d entries", idx.Skipped())
	}
	return idx
}

func TestMatchUniqueFilename(t *testing.T) {
	// A unique filename resolves without any directory context, even when
	// the leading directories have nothing in common.
	idx := newTestIndex(t, Entry{ID: "mf-1", Path: "/mnt/music/A/B/Song.mp3"})

	result, err := idx.Match("/old/drive/X/Song.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindUnique {
		t.Fatalf("kind = %s, want unique", result.Kind)
	}
	if got, _ := result.Best(); got.ID != "mf-1" {
		t.Errorf("matched %s, want mf-1", got.ID)
	}
}

func TestMatchWidensPastSharedFilename(t *testing.T) {
	idx := newTestIndex(t,
		Entry{ID: "mf-1", Path: "/music/ArtistX/Song.mp3"},
		Entry{ID: "mf-2", Path: "/music/ArtistY/Song.mp3"},
	)

	result, err := idx.Match("file:///itunes/media/ArtistY/Song.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindUnique {
		t.Fatalf("kind = %s, want unique", result.Kind)
	}
	if got, _ := result.Best(); got.ID != "mf-2" {
		t.Errorf("matched %s, want mf-2", got.ID)
	}
}

func TestMatchAmbiguousBareFilename(t *testing.T) {
	idx := newTestIndex(t,
		Entry{ID: "mf-2", Path: "/music/ArtistY/Song.mp3"},
		Entry{ID: "mf-1", Path: "/music/ArtistX/Song.mp3"},
	)

	result, err := idx.Match("Song.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindAmbiguous {
		t.Fatalf("kind = %s, want ambiguous", result.Kind)
	}
	ids := make([]string, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		ids = append(ids, c.ID)
	}
	if want := []string{"mf-1", "mf-2"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("candidates = %v, want %v", ids, want)
	}
	if best, ok := result.Best(); !ok || best.ID != "mf-1" {
		t.Errorf("best = %v, want lowest ID mf-1", best.ID)
	}
}

func TestMatchAmbiguousWhenWiderSuffixesMiss(t *testing.T) {
	// The source parent directory exists in neither catalog path, so
	// widening empties out. The filename bucket still names candidates.
	idx := newTestIndex(t,
		Entry{ID: "mf-1", Path: "/music/ArtistX/Song.mp3"},
		Entry{ID: "mf-2", Path: "/music/ArtistY/Song.mp3"},
	)

	result, err := idx.Match("/ipod/backup/Song.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindAmbiguous {
		t.Fatalf("kind = %s, want ambiguous", result.Kind)
	}
	if len(result.Candidates) != 2 {
		t.Errorf("candidates = %d, want 2", len(result.Candidates))
	}
}

func TestMatchUnmatched(t *testing.T) {
	idx := newTestIndex(t, Entry{ID: "mf-1", Path: "/music/ArtistX/Song.mp3"})

	result, err := idx.Match("/music/ArtistX/Other.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindUnmatched {
		t.Fatalf("kind = %s, want unmatched", result.Kind)
	}
	if _, ok := result.Best(); ok {
		t.Error("unmatched result should have no best candidate")
	}
}

func TestMatchCaseFolded(t *testing.T) {
	idx := newTestIndex(t, Entry{ID: "mf-1", Path: "/Music/AC-DC/Back In Black.mp3"})

	result, err := idx.Match("/old/music/ac-dc/back in black.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindUnique {
		t.Fatalf("kind = %s, want unique", result.Kind)
	}
}

func TestMatchUnicodeForms(t *testing.T) {
	// Decomposed source segment against a composed catalog segment. The
	// shared filename forces the lookup to widen into the accented
	// directory, where the two forms must compare equal.
	idx := newTestIndex(t,
		Entry{ID: "mf-1", Path: "/music/Café Tacvba/Eres.mp3"},
		Entry{ID: "mf-2", Path: "/music/Otros/Eres.mp3"},
	)

	result, err := idx.Match("file:///itunes/Café Tacvba/Eres.mp3")
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if result.Kind != KindUnique {
		t.Fatalf("kind = %s, want unique", result.Kind)
	}
	if got, _ := result.Best(); got.ID != "mf-1" {
		t.Errorf("matched %s, want mf-1", got.ID)
	}
}

func TestMatchFullPathMembership(t *testing.T) {
	// Every entry resolves via its own full stored path.
	entries := []Entry{
		{ID: "mf-1", Path: "/music/A/one.mp3"},
		{ID: "mf-2", Path: "/music/B/one.mp3"},
		{ID: "mf-3", Path: "/music/B/two.mp3"},
	}
	idx := newTestIndex(t, entries...)

	for _, entry := range entries {
		result, err := idx.Match(entry.Path)
		if err != nil {
			t.Fatalf("Match(%s): %v", entry.Path, err)
		}
		if result.Kind != KindUnique {
			t.Fatalf("Match(%s) kind = %s, want unique", entry.Path, result.Kind)
		}
		if got, _ := result.Best(); got.ID != entry.ID {
			t.Errorf("Match(%s) = %s, want %s", entry.Path, got.ID, entry.ID)
		}
	}
}

func TestMatchIdempotent(t *testing.T) {
	idx := newTestIndex(t,
		Entry{ID: "mf-1", Path: "/music/ArtistX/Song.mp3"},
		Entry{ID: "mf-2", Path: "/music/ArtistY/Song.mp3"},
	)

	first, err := idx.Match("Song.mp3")
	if err != nil {
		t.Fatalf("first Match: %v", err)
	}
	second, err := idx.Match("Song.mp3")
	if err != nil {
		t.Fatalf("second Match: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v then %+v", first, second)
	}
}

func TestMatchEmptyLocation(t *testing.T) {
	idx := newTestIndex(t, Entry{ID: "mf-1", Path: "/music/a.mp3"})

	if _, err := idx.Match("   "); err == nil {
		t.Error("expected error for blank location")
	}
}

func TestNewIndexSkipsUnusablePaths(t *testing.T) {
	idx := NewIndex([]Entry{
		{ID: "mf-1", Path: "/music/a.mp3"},
		{ID: "mf-2", Path: "   "},
	})
	if idx.Size() != 1 {
		t.Errorf("Size = %d, want 1", idx.Size())
	}
	if idx.Skipped() != 1 {
		t.Errorf("Skipped = %d, want 1", idx.Skipped())
	}
}
