package testsupport

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// Catalog is a throwaway Navidrome-shaped database for tests.
type Catalog struct {
	T    testing.TB
	Path string
	DB   *sql.DB

	ratedAt bool
}

// CatalogOption customizes the generated test database.
type CatalogOption func(*catalogSchema)

type catalogSchema struct {
	ratedAt      bool
	libraryTable bool
}

// WithRatedAt adds the rated_at column newer Navidrome schemas carry.
func WithRatedAt() CatalogOption {
	return func(s *catalogSchema) {
		s.ratedAt = true
	}
}

// WithLibraryTable adds the multi-library table.
func WithLibraryTable() CatalogOption {
	return func(s *catalogSchema) {
		s.libraryTable = true
	}
}

const catalogBaseSchema = `
CREATE TABLE user (
	id varchar(255) NOT NULL PRIMARY KEY,
	user_name varchar(255) DEFAULT '' NOT NULL UNIQUE,
	name varchar(255) DEFAULT '' NOT NULL,
	is_admin bool DEFAULT FALSE NOT NULL,
	created_at datetime,
	updated_at datetime
);
CREATE TABLE media_file (
	id varchar(255) NOT NULL PRIMARY KEY,
	path varchar(255) DEFAULT '' NOT NULL,
	title varchar(255) DEFAULT '' NOT NULL,
	album varchar(255) DEFAULT '' NOT NULL,
	artist varchar(255) DEFAULT '' NOT NULL,
	album_id varchar(255) DEFAULT '' NOT NULL,
	artist_id varchar(255) DEFAULT '' NOT NULL,
	created_at datetime,
	updated_at datetime
);
CREATE TABLE property (
	id varchar(255) NOT NULL PRIMARY KEY,
	value varchar(255) DEFAULT '' NOT NULL
);
CREATE TABLE playlist (
	id varchar(255) NOT NULL PRIMARY KEY,
	name varchar(255) DEFAULT '' NOT NULL,
	comment varchar(255) DEFAULT '' NOT NULL,
	owner_id varchar(255) DEFAULT '' NOT NULL,
	public bool DEFAULT FALSE NOT NULL,
	song_count integer DEFAULT 0 NOT NULL,
	created_at datetime,
	updated_at datetime
);
CREATE TABLE playlist_tracks (
	id integer DEFAULT 0 NOT NULL,
	playlist_id varchar(255) DEFAULT '' NOT NULL,
	media_file_id varchar(255) DEFAULT '' NOT NULL
);
`

const annotationSchema = `
CREATE TABLE annotation (
	user_id varchar(255) DEFAULT '' NOT NULL,
	item_id varchar(255) DEFAULT '' NOT NULL,
	item_type varchar(255) DEFAULT '' NOT NULL,
	play_count integer DEFAULT 0,
	play_date datetime,
	rating integer DEFAULT 0,
	starred bool DEFAULT FALSE NOT NULL,
	starred_at datetime,
	UNIQUE (user_id, item_id, item_type)
);
`

const annotationRatedAtSchema = `
CREATE TABLE annotation (
	user_id varchar(255) DEFAULT '' NOT NULL,
	item_id varchar(255) DEFAULT '' NOT NULL,
	item_type varchar(255) DEFAULT '' NOT NULL,
	play_count integer DEFAULT 0,
	play_date datetime,
	rating integer DEFAULT 0,
	starred bool DEFAULT FALSE NOT NULL,
	starred_at datetime,
	rated_at datetime,
	UNIQUE (user_id, item_id, item_type)
);
`

const librarySchema = `
CREATE TABLE library (
	id integer NOT NULL PRIMARY KEY,
	name varchar NOT NULL UNIQUE,
	path varchar NOT NULL UNIQUE
);
`

// NewCatalog creates a Navidrome-shaped SQLite database in a temp
// directory and opens a raw connection for seeding and assertions.
func NewCatalog(t testing.TB, opts ...CatalogOption) *Catalog {
	t.Helper()

	schema := catalogSchema{}
	for _, opt := range opts {
		opt(&schema)
	}

	path := filepath.Join(t.TempDir(), "navidrome.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	statements := catalogBaseSchema
	if schema.ratedAt {
		statements += annotationRatedAtSchema
	} else {
		statements += annotationSchema
	}
	if schema.libraryTable {
		statements += librarySchema
	}
	if _, err := db.Exec(statements); err != nil {
		t.Fatalf("create test schema: %v", err)
	}

	return &Catalog{T: t, Path: path, DB: db, ratedAt: schema.ratedAt}
}

// SeedUser inserts an account row.
func (c *Catalog) SeedUser(id, name string, admin bool) {
	c.T.Helper()
	if _, err := c.DB.Exec(
		`INSERT INTO user (id, user_name, name, is_admin) VALUES (?, ?, ?, ?)`,
		id, name, name, admin,
	); err != nil {
		c.T.Fatalf("seed user: %v", err)
	}
}

// SeedMediaFile inserts a library file row.
func (c *Catalog) SeedMediaFile(id, path, albumID, artistID string) {
	c.T.Helper()
	if _, err := c.DB.Exec(
		`INSERT INTO media_file (id, path, album_id, artist_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, '2020-01-01 00:00:00', '2020-01-01 00:00:00')`,
		id, path, albumID, artistID,
	); err != nil {
		c.T.Fatalf("seed media file: %v", err)
	}
}

// SeedAnnotation inserts a pre-existing annotation row.
func (c *Catalog) SeedAnnotation(userID, itemID, itemType string, playCount int, playDate *time.Time, rating int) {
	c.T.Helper()
	var date any
	if playDate != nil {
		date = playDate.UTC().Format("2006-01-02 15:04:05")
	}
	if _, err := c.DB.Exec(
		`INSERT INTO annotation (user_id, item_id, item_type, play_count, play_date, rating, starred, starred_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, NULL)`,
		userID, itemID, itemType, playCount, date, rating,
	); err != nil {
		c.T.Fatalf("seed annotation: %v", err)
	}
}

// SeedProperty inserts a server metadata row.
func (c *Catalog) SeedProperty(id, value string) {
	c.T.Helper()
	if _, err := c.DB.Exec(`INSERT INTO property (id, value) VALUES (?, ?)`, id, value); err != nil {
		c.T.Fatalf("seed property: %v", err)
	}
}

// SeedLibrary inserts a music folder row. Requires WithLibraryTable.
func (c *Catalog) SeedLibrary(id int, name, path string) {
	c.T.Helper()
	if _, err := c.DB.Exec(`INSERT INTO library (id, name, path) VALUES (?, ?, ?)`, id, name, path); err != nil {
		c.T.Fatalf("seed library: %v", err)
	}
}

// AnnotationState captures one annotation row for assertions.
type AnnotationState struct {
	PlayCount int
	PlayDate  *time.Time
	Rating    int
	Starred   bool
	StarredAt *time.Time
	RatedAt   *time.Time
}

// AnnotationRow reads one annotation back; nil means the row is absent.
func (c *Catalog) AnnotationRow(userID, itemID, itemType string) *AnnotationState {
	c.T.Helper()

	columns := "play_count, play_date, rating, starred, starred_at"
	if c.ratedAt {
		columns += ", rated_at"
	}
	row := c.DB.QueryRow(
		`SELECT `+columns+` FROM annotation WHERE user_id = ? AND item_id = ? AND item_type = ?`,
		userID, itemID, itemType,
	)

	var (
		state     AnnotationState
		playDate  sql.NullString
		starredAt sql.NullString
		ratedAt   sql.NullString
	)
	dest := []any{&state.PlayCount, &playDate, &state.Rating, &state.Starred, &starredAt}
	if c.ratedAt {
		dest = append(dest, &ratedAt)
	}
	err := row.Scan(dest...)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		c.T.Fatalf("read annotation: %v", err)
	}
	state.PlayDate = parseTestTime(c.T, playDate)
	state.StarredAt = parseTestTime(c.T, starredAt)
	state.RatedAt = parseTestTime(c.T, ratedAt)
	return &state
}

// MediaFileCreatedAt reads back the created_at column of one file.
func (c *Catalog) MediaFileCreatedAt(id string) time.Time {
	c.T.Helper()
	var raw sql.NullString
	if err := c.DB.QueryRow(`SELECT created_at FROM media_file WHERE id = ?`, id).Scan(&raw); err != nil {
		c.T.Fatalf("read created_at: %v", err)
	}
	parsed := parseTestTime(c.T, raw)
	if parsed == nil {
		c.T.Fatalf("created_at is null for %s", id)
	}
	return *parsed
}

// PlaylistNames lists playlist names ordered by name.
func (c *Catalog) PlaylistNames() []string {
	c.T.Helper()
	rows, err := c.DB.Query(`SELECT name FROM playlist ORDER BY name`)
	if err != nil {
		c.T.Fatalf("query playlists: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			c.T.Fatalf("scan playlist: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		c.T.Fatalf("iterate playlists: %v", err)
	}
	return names
}

// PlaylistTrackIDs lists a playlist's member file IDs in position order.
func (c *Catalog) PlaylistTrackIDs(name string) []string {
	c.T.Helper()
	rows, err := c.DB.Query(
		`SELECT pt.media_file_id FROM playlist_tracks pt
		 JOIN playlist pl ON pl.id = pt.playlist_id
		 WHERE pl.name = ? ORDER BY pt.id`,
		name,
	)
	if err != nil {
		c.T.Fatalf("query playlist tracks: %v", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			c.T.Fatalf("scan playlist track: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		c.T.Fatalf("iterate playlist tracks: %v", err)
	}
	return ids
}

// AnnotationCount counts all annotation rows.
func (c *Catalog) AnnotationCount() int {
	c.T.Helper()
	var count int
	if err := c.DB.QueryRow(`SELECT count(*) FROM annotation`).Scan(&count); err != nil {
		c.T.Fatalf("count annotations: %v", err)
	}
	return count
}

func parseTestTime(t testing.TB, raw sql.NullString) *time.Time {
	t.Helper()
	if !raw.Valid || raw.String == "" {
		return nil
	}
	layouts := []string{time.RFC3339Nano, "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw.String); err == nil {
			return &parsed
		}
	}
	t.Fatalf("unparseable test timestamp %q", raw.String)
	return nil
}
