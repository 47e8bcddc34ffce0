// Package logger provides structured logging with optional Sentry error
// reporting on top of the standard library's log/slog.
//
// New returns a JSON stdout logger. NewWithSentry additionally routes
// warnings and errors to Sentry when a DSN is configured, and falls back to
// stdout-only logging when it is not.
package logger
