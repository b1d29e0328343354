// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is the logging handle used across the project.
type Logger = *slog.Logger

var root atomic.Value // slog.Handler

func init() {
	root.Store(slog.Handler(NewLogfmtHandlerWithLevel(os.Stderr, slog.LevelInfo)))
}

// SetDefault swaps the handler behind every logger created by this package,
// including loggers created before the swap.
func SetDefault(h slog.Handler) {
	root.Store(h)
}

// Root returns the root logger.
func Root() Logger {
	return slog.New(&swapHandler{})
}

// WithContext creates a logger with contextual attrs bound to every record.
// Typical use: log.WithContext("pkg", "ledger").
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// swapHandler delegates to the current root handler, so that handler swaps
// reach loggers created at package init time.
type swapHandler struct {
	attrs []slog.Attr
}

func (h *swapHandler) delegate() slog.Handler {
	d := root.Load().(slog.Handler)
	if len(h.attrs) > 0 {
		d = d.WithAttrs(h.attrs)
	}
	return d
}

func (h *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.delegate().Enabled(ctx, level)
}

func (h *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.delegate().Handle(ctx, r)
}

func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &swapHandler{attrs: merged}
}

func (h *swapHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

// FromLegacyLevel converts a legacy numeric verbosity into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelCrit
	case 1:
		return slog.LevelError
	case 2:
		return slog.LevelWarn
	case 3:
		return slog.LevelInfo
	case 4:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

const (
	// LevelTrace is below slog's debug level.
	LevelTrace slog.Level = -8
	// LevelCrit is above slog's error level.
	LevelCrit slog.Level = 12
)

// Legacy numeric verbosity values accepted on the command line.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)
