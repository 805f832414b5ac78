// Package logging builds the slog loggers used across crossfade.
//
// Console output is a compact single-line format (timestamp, level,
// message, key=value pairs) written to stderr so stdout stays free for
// command output; runs also append to a log file under the configured
// log directory. A JSON format is available for machine consumption.
package logging
