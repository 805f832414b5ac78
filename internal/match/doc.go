// Package match resolves source track paths to catalog rows by longest
// unique path suffix.
//
// Libraries get rerooted when they move between machines, so absolute
// prefixes from an export rarely line up with catalog paths. Instead of
// asking the operator for a prefix mapping, the index buckets every catalog
// row under every case-folded suffix of its path. A lookup starts at the
// bare filename and widens one directory at a time until some suffix is
// owned by exactly one row. Lookups that never narrow to one row report
// every candidate of the most specific suffix that had any.
package match
