package migrate

import (
	"context"
	"time"

	"crossfade/internal/catalog"
)

// Values carries the incoming play history for one target item.
type Values struct {
	PlayCount int
	Rating    int
	PlayDate  *time.Time
}

// annotationStore is the slice of the catalog the merger reads and
// writes. *catalog.Tx satisfies it; dry runs substitute a stand-in
// whose writes do nothing.
type annotationStore interface {
	Annotation(ctx context.Context, userID, itemID string, itemType catalog.ItemType) (*catalog.Annotation, error)
	InsertAnnotation(ctx context.Context, ann *catalog.Annotation, includeRatedAt bool) error
	UpdateAnnotation(ctx context.Context, ann *catalog.Annotation) error
}

// Merger applies one user's incoming values onto annotation rows.
type Merger struct {
	store       annotationStore
	userID      string
	mode        Mode
	withRatedAt bool
}

// NewMerger builds a merger for one run. withRatedAt must reflect
// whether the annotation table carries the rated_at column.
func NewMerger(store annotationStore, userID string, mode Mode, withRatedAt bool) *Merger {
	return &Merger{store: store, userID: userID, mode: mode, withRatedAt: withRatedAt}
}

// Upsert merges vals into the (user, item) annotation row, creating it
// when absent. Play dates always resolve to the later of the two sides
// regardless of mode. rated_at is stamped on insert only; updates never
// touch it, nor the starred columns.
func (m *Merger) Upsert(ctx context.Context, itemID string, itemType catalog.ItemType, vals Values) error {
	existing, err := m.store.Annotation(ctx, m.userID, itemID, itemType)
	if err != nil {
		return err
	}

	if existing == nil {
		ann := &catalog.Annotation{
			UserID:    m.userID,
			ItemID:    itemID,
			ItemType:  itemType,
			PlayCount: vals.PlayCount,
			PlayDate:  copyTime(vals.PlayDate),
			Rating:    vals.Rating,
		}
		if m.withRatedAt && vals.Rating > 0 {
			ann.RatedAt = copyTime(vals.PlayDate)
		}
		return m.store.InsertAnnotation(ctx, ann, m.withRatedAt)
	}

	if m.mode == ModeReplace {
		existing.PlayCount = vals.PlayCount
		existing.Rating = vals.Rating
	} else {
		existing.PlayCount += vals.PlayCount
		if vals.Rating > 0 {
			existing.Rating = vals.Rating
		}
	}
	existing.PlayDate = laterTime(existing.PlayDate, vals.PlayDate)

	return m.store.UpdateAnnotation(ctx, existing)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// laterTime keeps the more recent of two optional timestamps.
func laterTime(a, b *time.Time) *time.Time {
	switch {
	case a == nil:
		return copyTime(b)
	case b == nil:
		return copyTime(a)
	case b.After(*a):
		return copyTime(b)
	default:
		return copyTime(a)
	}
}
