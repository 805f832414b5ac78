package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Property is one server setting row from Navidrome's property table.
type Property struct {
	ID    string
	Value string
}

// Properties lists server metadata rows, or nothing when the table is
// absent.
func (s *Store) Properties(ctx context.Context) ([]Property, error) {
	ok, err := s.hasTable(ctx, "property")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, value FROM property ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var properties []Property
	for rows.Next() {
		var (
			id    string
			value sql.NullString
		)
		if err := rows.Scan(&id, &value); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, Property{ID: id, Value: value.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

// ErrNoLibraries marks databases from Navidrome versions before
// multi-library support.
var ErrNoLibraries = errors.New("no library table")

// Library is one music folder registered in a multi-library database.
type Library struct {
	ID   int
	Name string
	Path string
}

// Libraries lists registered music folders. Single-library databases
// return ErrNoLibraries.
func (s *Store) Libraries(ctx context.Context) ([]Library, error) {
	ok, err := s.hasTable(ctx, "library")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoLibraries
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, path FROM library ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query libraries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var libraries []Library
	for rows.Next() {
		var (
			id   int
			name sql.NullString
			path sql.NullString
		)
		if err := rows.Scan(&id, &name, &path); err != nil {
			return nil, fmt.Errorf("scan library: %w", err)
		}
		libraries = append(libraries, Library{ID: id, Name: name.String, Path: path.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate libraries: %w", err)
	}
	return libraries, nil
}

// AnnotationTallies summarizes existing media file annotations.
type AnnotationTallies struct {
	Rows       int
	WithPlays  int
	WithRating int
}

// MediaFileAnnotationTallies counts annotation rows on media files.
func (s *Store) MediaFileAnnotationTallies(ctx context.Context) (AnnotationTallies, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT count(*),
		        coalesce(sum(play_count > 0), 0),
		        coalesce(sum(rating > 0), 0)
		 FROM annotation WHERE item_type = 'media_file'`,
	)
	var tallies AnnotationTallies
	if err := row.Scan(&tallies.Rows, &tallies.WithPlays, &tallies.WithRating); err != nil {
		return AnnotationTallies{}, fmt.Errorf("tally annotations: %w", err)
	}
	return tallies, nil
}
