// Package catalog reads and updates a Navidrome SQLite database.
//
// The schema belongs to Navidrome: this package never creates or
// migrates tables, it only probes for the ones it needs. Reads run on
// the live connection; all writes of a migration run go through a
// single transaction so a failure leaves the database untouched.
package catalog
