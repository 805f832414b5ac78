package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ItemType names the three annotation targets Navidrome tracks.
type ItemType string

const (
	ItemTypeMediaFile ItemType = "media_file"
	ItemTypeAlbum     ItemType = "album"
	ItemTypeArtist    ItemType = "artist"
)

// Annotation mirrors the merge-relevant part of an annotation row.
type Annotation struct {
	UserID    string
	ItemID    string
	ItemType  ItemType
	PlayCount int
	PlayDate  *time.Time
	Rating    int
	RatedAt   *time.Time
}

// rated_at stays out of the select list so lookups work on schemas
// that predate the column.
const annotationColumns = "user_id, item_id, item_type, play_count, play_date, rating"

func scanAnnotation(scanner interface{ Scan(dest ...any) error }) (*Annotation, error) {
	var (
		userID    string
		itemID    string
		itemType  string
		playCount sql.NullInt64
		playDate  sql.NullString
		rating    sql.NullInt64
	)
	if err := scanner.Scan(&userID, &itemID, &itemType, &playCount, &playDate, &rating); err != nil {
		return nil, err
	}

	ann := &Annotation{
		UserID:    userID,
		ItemID:    itemID,
		ItemType:  ItemType(itemType),
		PlayCount: int(playCount.Int64),
		Rating:    int(rating.Int64),
	}
	if playDate.Valid {
		if parsed, err := parseTimestamp(playDate.String); err == nil {
			ann.PlayDate = &parsed
		}
	}
	return ann, nil
}

func getAnnotation(ctx context.Context, q querier, userID, itemID string, itemType ItemType) (*Annotation, error) {
	row := q.QueryRowContext(
		ctx,
		`SELECT `+annotationColumns+` FROM annotation WHERE user_id = ? AND item_id = ? AND item_type = ?`,
		userID,
		itemID,
		string(itemType),
	)
	ann, err := scanAnnotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get annotation: %w", err)
	}
	return ann, nil
}

// Annotation fetches one row outside any transaction; nil means absent.
func (s *Store) Annotation(ctx context.Context, userID, itemID string, itemType ItemType) (*Annotation, error) {
	return getAnnotation(ctx, s.db, userID, itemID, itemType)
}

// Annotation fetches one row inside the run transaction; nil means absent.
func (t *Tx) Annotation(ctx context.Context, userID, itemID string, itemType ItemType) (*Annotation, error) {
	return getAnnotation(ctx, t.tx, userID, itemID, itemType)
}

// InsertAnnotation creates a fresh row. New rows are never starred.
// includeRatedAt must be false on schemas without the rated_at column.
func (t *Tx) InsertAnnotation(ctx context.Context, ann *Annotation, includeRatedAt bool) error {
	var err error
	if includeRatedAt {
		_, err = t.tx.ExecContext(
			ctx,
			`INSERT INTO annotation (user_id, item_id, item_type, play_count, play_date, rating, starred, starred_at, rated_at)
			 VALUES (?, ?, ?, ?, ?, ?, 0, NULL, ?)`,
			ann.UserID,
			ann.ItemID,
			string(ann.ItemType),
			ann.PlayCount,
			nullableTime(ann.PlayDate),
			ann.Rating,
			nullableTime(ann.RatedAt),
		)
	} else {
		_, err = t.tx.ExecContext(
			ctx,
			`INSERT INTO annotation (user_id, item_id, item_type, play_count, play_date, rating, starred, starred_at)
			 VALUES (?, ?, ?, ?, ?, ?, 0, NULL)`,
			ann.UserID,
			ann.ItemID,
			string(ann.ItemType),
			ann.PlayCount,
			nullableTime(ann.PlayDate),
			ann.Rating,
		)
	}
	if err != nil {
		return fmt.Errorf("insert annotation: %w", err)
	}
	return nil
}

// UpdateAnnotation rewrites the merged counters of an existing row.
// Starred state and rated_at keep whatever values the row already has.
func (t *Tx) UpdateAnnotation(ctx context.Context, ann *Annotation) error {
	res, err := t.tx.ExecContext(
		ctx,
		`UPDATE annotation SET play_count = ?, play_date = ?, rating = ?
		 WHERE user_id = ? AND item_id = ? AND item_type = ?`,
		ann.PlayCount,
		nullableTime(ann.PlayDate),
		ann.Rating,
		ann.UserID,
		ann.ItemID,
		string(ann.ItemType),
	)
	if err != nil {
		return fmt.Errorf("update annotation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("annotation %s/%s/%s not found", ann.UserID, ann.ItemID, ann.ItemType)
	}
	return nil
}
