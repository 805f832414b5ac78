package catalog

import (
	"context"
	"fmt"
	"time"
)

// Playlist is a new playlist row created from an imported list.
type Playlist struct {
	ID        string
	Name      string
	Comment   string
	OwnerID   string
	Public    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InsertPlaylist creates the playlist row with an empty track list.
func (t *Tx) InsertPlaylist(ctx context.Context, pl Playlist) error {
	_, err := t.tx.ExecContext(
		ctx,
		`INSERT INTO playlist (id, name, comment, owner_id, public, song_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		pl.ID,
		pl.Name,
		nullableString(pl.Comment),
		pl.OwnerID,
		boolToInt(pl.Public),
		formatTimestamp(pl.CreatedAt),
		formatTimestamp(pl.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

// InsertPlaylistTracks appends the member files in order and fixes the
// playlist's song count.
func (t *Tx) InsertPlaylistTracks(ctx context.Context, playlistID string, mediaFileIDs []string) error {
	for i, fileID := range mediaFileIDs {
		if _, err := t.tx.ExecContext(
			ctx,
			`INSERT INTO playlist_tracks (id, playlist_id, media_file_id) VALUES (?, ?, ?)`,
			i+1,
			playlistID,
			fileID,
		); err != nil {
			return fmt.Errorf("insert playlist track: %w", err)
		}
	}
	if _, err := t.tx.ExecContext(
		ctx,
		`UPDATE playlist SET song_count = ? WHERE id = ?`,
		len(mediaFileIDs),
		playlistID,
	); err != nil {
		return fmt.Errorf("update song count: %w", err)
	}
	return nil
}
