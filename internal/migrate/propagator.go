package migrate

import (
	"context"
	"fmt"

	"crossfade/internal/catalog"
)

// Propagator repeats a file's merge onto its album and artist rollups.
// Under add mode an album's play count converges to the sum of every
// track contribution routed through it.
type Propagator struct {
	merger *Merger
}

// NewPropagator wraps a merger for rollup writes.
func NewPropagator(merger *Merger) *Propagator {
	return &Propagator{merger: merger}
}

// Rollup merges vals into the album and artist rows referenced by file,
// skipping levels the file has no reference for. It returns the number
// of rollup annotations written before any failure.
func (p *Propagator) Rollup(ctx context.Context, file catalog.MediaFile, vals Values) (int, error) {
	written := 0
	if file.AlbumID != "" {
		if err := p.merger.Upsert(ctx, file.AlbumID, catalog.ItemTypeAlbum, vals); err != nil {
			return written, fmt.Errorf("album annotation: %w", err)
		}
		written++
	}
	if file.ArtistID != "" {
		if err := p.merger.Upsert(ctx, file.ArtistID, catalog.ItemTypeArtist, vals); err != nil {
			return written, fmt.Errorf("artist annotation: %w", err)
		}
		written++
	}
	return written, nil
}
