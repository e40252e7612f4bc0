// Package logging constructs slog loggers for Stash.
//
// Two formats are supported: a human-oriented console handler (colored when
// attached to a terminal) and plain JSON. Output can fan out to stdout and a
// log file under the configured log directory. Attr helpers and the component
// logger convention keep field names consistent across packages.
package logging
