// Package library reads iTunes and Apple Music XML exports.
//
// An export is an Apple property list holding a Tracks dictionary keyed by
// track ID plus an ordered Playlists array. Parse decodes the subset of
// fields the migration needs: locations, play counts, ratings, play and
// added dates, and enough playlist structure to rebuild user playlists.
// Conversion helpers translate the export's 0-100 rating scale to the
// catalog's 0-5 stars.
package library
