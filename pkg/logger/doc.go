// Package logger builds slog loggers with a consistent configuration
// surface: JSON for aggregation, text for local development, plus attribute
// helpers for the identifiers that recur across the codebase.
package logger
