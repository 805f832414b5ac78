package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MediaFile is the slice of a media_file row that matching and rollups need.
type MediaFile struct {
	ID       string
	Path     string
	AlbumID  string
	ArtistID string
}

const mediaFileColumns = "id, path, album_id, artist_id"

func scanMediaFile(scanner interface{ Scan(dest ...any) error }) (MediaFile, error) {
	var (
		id       string
		path     sql.NullString
		albumID  sql.NullString
		artistID sql.NullString
	)
	if err := scanner.Scan(&id, &path, &albumID, &artistID); err != nil {
		return MediaFile{}, err
	}
	return MediaFile{
		ID:       id,
		Path:     path.String,
		AlbumID:  albumID.String,
		ArtistID: artistID.String,
	}, nil
}

// MediaFiles loads every library file row ordered by identifier.
func (s *Store) MediaFiles(ctx context.Context) ([]MediaFile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+mediaFileColumns+` FROM media_file ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query media files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []MediaFile
	for rows.Next() {
		file, err := scanMediaFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media file: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media files: %w", err)
	}
	return files, nil
}

// MediaFileCount returns the number of rows in media_file.
func (s *Store) MediaFileCount(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT count(*) FROM media_file`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count media files: %w", err)
	}
	return count, nil
}

// SamplePaths returns up to limit file paths for preview output.
func (s *Store) SamplePaths(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM media_file ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sample paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var path sql.NullString
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan sample path: %w", err)
		}
		paths = append(paths, path.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sample paths: %w", err)
	}
	return paths, nil
}

// SetMediaFileCreatedAt overwrites the import timestamp of one file.
func (t *Tx) SetMediaFileCreatedAt(ctx context.Context, id string, createdAt time.Time) error {
	res, err := t.tx.ExecContext(
		ctx,
		`UPDATE media_file SET created_at = ? WHERE id = ?`,
		formatTimestamp(createdAt),
		id,
	)
	if err != nil {
		return fmt.Errorf("update created_at: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("media file %s not found", id)
	}
	return nil
}
