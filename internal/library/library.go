package library

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"howett.net/plist"
)

// Track is one entry from the export's Tracks dictionary. Tag names follow
// the plist keys as iTunes writes them.
type Track struct {
	ID           int        `plist:"Track ID"`
	PersistentID string     `plist:"Persistent ID"`
	Name         string     `plist:"Name"`
	Artist       string     `plist:"Artist"`
	AlbumArtist  string     `plist:"Album Artist"`
	Album        string     `plist:"Album"`
	Location     string     `plist:"Location"`
	PlayCount    int        `plist:"Play Count"`
	Rating       int        `plist:"Rating"`
	PlayDateUTC  *time.Time `plist:"Play Date UTC"`
	DateAdded    *time.Time `plist:"Date Added"`
	TrackType    string     `plist:"Track Type"`
}

// Playlist is one entry from the export's Playlists array.
type Playlist struct {
	Name              string         `plist:"Name"`
	PersistentID      string         `plist:"Playlist Persistent ID"`
	Master            bool           `plist:"Master"`
	DistinguishedKind int            `plist:"Distinguished Kind"`
	SmartInfo         []byte         `plist:"Smart Info"`
	Items             []PlaylistItem `plist:"Playlist Items"`
}

// PlaylistItem references a track by its export-local ID.
type PlaylistItem struct {
	TrackID int `plist:"Track ID"`
}

// Importable reports whether the playlist is a user-built list worth
// recreating. The master library list, system lists (Distinguished Kind),
// and smart playlists are generated views, not user data.
func (p Playlist) Importable() bool {
	if p.Master || p.DistinguishedKind != 0 || len(p.SmartInfo) > 0 {
		return false
	}
	if strings.TrimSpace(p.Name) == "" {
		return false
	}
	return len(p.Items) > 0
}

// Library is one parsed export.
type Library struct {
	Tracks    map[string]*Track `plist:"Tracks"`
	Playlists []Playlist        `plist:"Playlists"`
}

// Parse reads and decodes an export file.
func Parse(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open library export: %w", err)
	}
	defer f.Close()

	var lib Library
	if err := plist.NewDecoder(f).Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode library export: %w", err)
	}
	if lib.Tracks == nil {
		return nil, fmt.Errorf("library export %s has no Tracks dictionary", path)
	}
	return &lib, nil
}

// TracksInOrder returns the tracks sorted by ID so runs process the export
// in a stable order.
func (l *Library) TracksInOrder() []*Track {
	tracks := make([]*Track, 0, len(l.Tracks))
	for _, track := range l.Tracks {
		tracks = append(tracks, track)
	}
	sort.Slice(tracks, func(a, b int) bool { return tracks[a].ID < tracks[b].ID })
	return tracks
}
