package logging

import (
	"context"
	"log/slog"
	"strings"
)

// FilteringHandler wraps another slog.Handler and applies a minimum level
// chosen by logger name. The name is taken from the LoggerNameKey attribute.
// The most specific dotted prefix with a configured level wins.
type FilteringHandler struct {
	h        slog.Handler
	fallback slog.Level
	levels   map[string]slog.Level
	level    slog.Level
	grouped  bool
}

var _ slog.Handler = (*FilteringHandler)(nil)

// NewFilteringHandler creates a FilteringHandler. Records from loggers that
// match no entry in levels are filtered at fallback.
func NewFilteringHandler(h slog.Handler, fallback slog.Level, levels map[string]slog.Level) *FilteringHandler {
	return &FilteringHandler{
		h:        h,
		fallback: fallback,
		levels:   levels,
		level:    fallback,
	}
}

func (h *FilteringHandler) levelFor(name string) slog.Level {
	parts := strings.Split(name, ".")

	for i := len(parts); i > 0; i-- {
		if level, ok := h.levels[strings.Join(parts[:i], ".")]; ok {
			return level
		}
	}

	return h.fallback
}

// Handle implements slog.Handler.
func (h *FilteringHandler) Handle(ctx context.Context, r slog.Record) error {
	//nolint:wrapcheck
	return h.h.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.WithAttrs.
func (h *FilteringHandler) WithAttrs(attrs []slog.Attr) Handler {
	clone := *h
	clone.h = h.h.WithAttrs(attrs)

	if !h.grouped {
		for _, attr := range attrs {
			if attr.Key == LoggerNameKey && attr.Value.Kind() == slog.KindString {
				clone.level = h.levelFor(attr.Value.String())
			}
		}
	}

	return &clone
}

// WithGroup implements slog.Handler.WithGroup.
func (h *FilteringHandler) WithGroup(name string) Handler {
	clone := *h
	clone.h = h.h.WithGroup(name)
	clone.grouped = true

	return &clone
}

// Enabled implements slog.Handler.Enabled.
func (h *FilteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level && h.h.Enabled(ctx, level)
}
