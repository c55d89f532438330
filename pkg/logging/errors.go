// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

// Package logging provides the process-wide TrustPin log sink: a severity
// gate with levels None < Error < Info < Debug and a slog.Handler that emits
// records in the "TrustPin [YYYY-MM-DD HH:MM:SS] [LEVEL] <message>" format.
package logging

import "errors"

var (
	// ErrUnknownLevel is returned when a log level string cannot be parsed.
	ErrUnknownLevel = errors.New("logging: unknown log level")
)
