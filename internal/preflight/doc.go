// Package preflight provides readiness checks for the files and
// directories a migration run depends on.
//
// The migrate command calls RunAll before asking for confirmation so a
// missing export or an unwritable database surfaces before any work
// starts. Each check returns a Result the CLI renders as a table row.
package preflight
