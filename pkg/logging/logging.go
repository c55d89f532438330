// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Level is the TrustPin log severity. Levels are ordered
// None < Error < Info < Debug; a record is emitted iff its level is at or
// below the current level and the current level is not None.
type Level int

const (
	// LevelNone disables all log output.
	LevelNone Level = iota

	// LevelError emits error records only.
	LevelError

	// LevelInfo emits error and informational records.
	LevelInfo

	// LevelDebug emits all records.
	LevelDebug
)

// String returns the canonical lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel parses a level name ("none", "error", "info", "debug").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return LevelNone, nil
	case "error":
		return LevelError, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}
	return LevelNone, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// slogLevel maps a TrustPin level to the minimum slog level it admits.
func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelError
	}
}

// currentLevel holds the process-wide severity gate.
var currentLevel atomic.Int32

func init() {
	currentLevel.Store(int32(LevelError))
}

// SetLevel sets the process-wide log level.
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

// CurrentLevel returns the process-wide log level.
func CurrentLevel() Level {
	return Level(currentLevel.Load())
}

// Handler is a slog.Handler that writes records in the TrustPin diagnostic
// format:
//
//	TrustPin [YYYY-MM-DD HH:MM:SS] [LEVEL] <message> key=value ...
//
// Records are filtered against the process-wide level set via SetLevel.
// Writes are serialized so interleaved goroutines produce whole lines.
type Handler struct {
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

// NewHandler creates a Handler writing to w. A nil w writes to os.Stderr.
func NewHandler(w io.Writer) *Handler {
	if w == nil {
		w = os.Stderr
	}
	return &Handler{mu: &sync.Mutex{}, w: w}
}

// Enabled reports whether a record at the given slog level passes the
// process-wide gate.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	cur := CurrentLevel()
	if cur == LevelNone {
		return false
	}
	return level >= cur.slogLevel()
}

// Handle formats and writes a single record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString("TrustPin [")
	b.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	b.WriteString("] [")
	b.WriteString(levelName(r.Level))
	b.WriteString("] ")
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		appendAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler that includes the given attributes on every
// record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		// Qualify with the groups opened so far; later groups do not apply.
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

// WithGroup returns a handler that qualifies subsequent attribute keys with
// the group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	if nh.group != "" {
		nh.group += "."
	}
	nh.group += name
	return &nh
}

func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	if group != "" {
		b.WriteString(group)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// defaultLogger is the shared process-wide logger backed by a Handler on
// stderr.
var defaultLogger = slog.New(NewHandler(os.Stderr))

// Logger returns the shared TrustPin logger.
func Logger() *slog.Logger {
	return defaultLogger
}
