// Package migrate merges iTunes play history into Navidrome annotations.
//
// A run is single threaded and wraps every write in one transaction:
// either all matched history lands or none of it does. Dry runs execute
// the same pipeline with writes disabled. Track-level merges roll up to
// the file's album and artist annotations with the same values.
package migrate
