// Package log builds the [slog.Handler] installed by the command line
// interface.
package log
