package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"crossfade/internal/catalog"
	"crossfade/internal/library"
	"crossfade/internal/match"
)

// runStore is everything a run writes through. *catalog.Tx satisfies it;
// dry runs use dryRunStore.
type runStore interface {
	annotationStore
	SetMediaFileCreatedAt(ctx context.Context, id string, createdAt time.Time) error
	InsertPlaylist(ctx context.Context, pl catalog.Playlist) error
	InsertPlaylistTracks(ctx context.Context, playlistID string, mediaFileIDs []string) error
}

// dryRunStore reads through the live connection and swallows writes, so
// a dry run reports exactly what a real run would do.
type dryRunStore struct {
	store *catalog.Store
}

func (d dryRunStore) Annotation(ctx context.Context, userID, itemID string, itemType catalog.ItemType) (*catalog.Annotation, error) {
	return d.store.Annotation(ctx, userID, itemID, itemType)
}

func (d dryRunStore) InsertAnnotation(context.Context, *catalog.Annotation, bool) error {
	return nil
}

func (d dryRunStore) UpdateAnnotation(context.Context, *catalog.Annotation) error {
	return nil
}

func (d dryRunStore) SetMediaFileCreatedAt(context.Context, string, time.Time) error {
	return nil
}

func (d dryRunStore) InsertPlaylist(context.Context, catalog.Playlist) error {
	return nil
}

func (d dryRunStore) InsertPlaylistTracks(context.Context, string, []string) error {
	return nil
}

// Options configure one migration run.
type Options struct {
	UserID          string
	Mode            Mode
	DryRun          bool
	ImportDateAdded bool
	ImportPlaylists bool
	// ProgressEvery controls how often the runner logs progress, in
	// processed tracks. Zero means every 500.
	ProgressEvery int
}

// Runner executes one migration of a parsed library export into the
// catalog. Build a fresh Runner per run; it carries per-run state.
type Runner struct {
	store  *catalog.Store
	lib    *library.Library
	logger *slog.Logger
	opts   Options
}

// NewRunner wires a run over an open catalog and parsed export.
func NewRunner(store *catalog.Store, lib *library.Library, logger *slog.Logger, opts Options) *Runner {
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = 500
	}
	return &Runner{store: store, lib: lib, logger: logger, opts: opts}
}

// Run processes every source track in track-ID order and returns the
// run report. Store write failures abort the run and roll back every
// write made so far.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	user, err := r.store.UserByID(ctx, r.opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("verify user: %w", err)
	}
	if user == nil {
		return nil, r.unknownUserError(ctx)
	}

	withRatedAt, err := r.store.HasRatedAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("probe rated_at: %w", err)
	}

	files, err := r.store.MediaFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load media files: %w", err)
	}
	entries := make([]match.Entry, len(files))
	byID := make(map[string]catalog.MediaFile, len(files))
	for i, file := range files {
		entries[i] = match.Entry{ID: file.ID, Path: file.Path}
		byID[file.ID] = file
	}
	index := match.NewIndex(entries)
	r.logger.Info("index built",
		"files", index.Size(),
		"buckets", index.Buckets(),
		"skipped", index.Skipped(),
	)

	var (
		store runStore
		tx    *catalog.Tx
	)
	if r.opts.DryRun {
		store = dryRunStore{store: r.store}
	} else {
		tx, err = r.store.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer func() { _ = tx.Rollback() }()
		store = tx
	}

	merger := NewMerger(store, r.opts.UserID, r.opts.Mode, withRatedAt)
	propagator := NewPropagator(merger)

	report := &Report{Mode: r.opts.Mode, DryRun: r.opts.DryRun}
	matchedByTrackID := make(map[int]string)

	for _, track := range r.lib.TracksInOrder() {
		report.Total++
		if report.Total%r.opts.ProgressEvery == 0 {
			r.logger.Info("progress", "processed", report.Total, "matched", report.Matched)
		}

		if strings.TrimSpace(track.Location) == "" {
			report.noteSkip(SkipNoLocation)
			continue
		}

		vals := Values{
			PlayCount: track.PlayCount,
			Rating:    library.StarRating(track.Rating),
			PlayDate:  track.PlayDateUTC,
		}
		if vals.PlayCount == 0 && vals.Rating == 0 {
			report.noteSkip(SkipNoData)
			continue
		}

		result, err := index.Match(track.Location)
		if err != nil {
			report.noteSkip(SkipPathError)
			r.logger.Warn("unusable location", "track", track.Name, "error", err)
			continue
		}

		switch result.Kind {
		case match.KindUnmatched:
			report.noteUnmatched(result.Path)
			continue
		case match.KindAmbiguous:
			group := AmbiguousGroup{SourcePath: result.Path}
			for _, candidate := range result.Candidates {
				group.CandidatePaths = append(group.CandidatePaths, candidate.Path)
			}
			report.noteAmbiguous(group)
		case match.KindUnique:
			report.Matched++
		}

		best, ok := result.Best()
		if !ok {
			report.noteUnmatched(result.Path)
			continue
		}
		file := byID[best.ID]

		if err := merger.Upsert(ctx, file.ID, catalog.ItemTypeMediaFile, vals); err != nil {
			return nil, fmt.Errorf("track annotation: %w", err)
		}
		report.AnnotationsWritten++

		rollups, err := propagator.Rollup(ctx, file, vals)
		report.AnnotationsWritten += rollups
		if err != nil {
			return nil, err
		}

		if r.opts.ImportDateAdded && track.DateAdded != nil {
			if err := store.SetMediaFileCreatedAt(ctx, file.ID, *track.DateAdded); err != nil {
				return nil, fmt.Errorf("date added: %w", err)
			}
			report.CreatedAtUpdates++
		}

		matchedByTrackID[track.ID] = file.ID
	}

	if r.opts.ImportPlaylists {
		if err := r.importPlaylists(ctx, store, matchedByTrackID, report); err != nil {
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit run: %w", err)
		}
	}

	r.logger.Info("run complete",
		"total", report.Total,
		"matched", report.Matched,
		"ambiguous", report.Ambiguous,
		"unmatched", report.Unmatched,
		"written", report.AnnotationsWritten,
		"dry_run", report.DryRun,
	)
	return report, nil
}

func (r *Runner) unknownUserError(ctx context.Context) error {
	available, err := r.store.Users(ctx)
	if err != nil || len(available) == 0 {
		return fmt.Errorf("user %q not found", r.opts.UserID)
	}
	names := make([]string, 0, len(available))
	for _, u := range available {
		names = append(names, fmt.Sprintf("%s (%s)", u.ID, u.Name))
	}
	return fmt.Errorf("user %q not found; available: %s", r.opts.UserID, strings.Join(names, ", "))
}

// importPlaylists recreates importable user playlists from matched
// tracks, preserving member order. Lists whose tracks all failed to
// match are skipped.
func (r *Runner) importPlaylists(ctx context.Context, store runStore, matched map[int]string, report *Report) error {
	now := time.Now().UTC()
	for _, pl := range r.lib.Playlists {
		if !pl.Importable() {
			continue
		}
		var fileIDs []string
		for _, item := range pl.Items {
			if id, ok := matched[item.TrackID]; ok {
				fileIDs = append(fileIDs, id)
			}
		}
		if len(fileIDs) == 0 {
			r.logger.Info("playlist has no matched tracks", "playlist", pl.Name)
			continue
		}

		playlist := catalog.Playlist{
			ID:        uuid.NewString(),
			Name:      pl.Name,
			Comment:   "Imported from iTunes",
			OwnerID:   r.opts.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.InsertPlaylist(ctx, playlist); err != nil {
			return fmt.Errorf("playlist %q: %w", pl.Name, err)
		}
		if err := store.InsertPlaylistTracks(ctx, playlist.ID, fileIDs); err != nil {
			return fmt.Errorf("playlist %q tracks: %w", pl.Name, err)
		}
		report.PlaylistsCreated++
		report.PlaylistTracks += len(fileIDs)
	}
	return nil
}
