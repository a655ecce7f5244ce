// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the server so that log
// lines are queryable by a consistent schema, plus small helpers for
// attaching common attributes and for masking credential material before it
// reaches a log line.
package logging
