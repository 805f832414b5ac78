// Package pathnorm canonicalizes track locations from heterogeneous sources.
//
// Library exports reference files as file:// URIs with percent encoding and
// sometimes leftover XML entities; databases written on macOS tend to hold
// decomposed (NFD) Unicode while Linux catalogs hold composed (NFC) form;
// Windows exports carry drive letters and backslashes. Normalize folds all of
// these into one canonical shape so the same file yields the same path string
// no matter which system wrote it.
//
// Normalization never changes letter case. Matching code folds case at lookup
// time so exact paths stay byte-preserving for display and diagnostics.
package pathnorm
