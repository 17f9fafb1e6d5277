package logger

import (
	"context"
	"log/slog"
	"strings"
)

// tagFilter drops records whose tag attribute is disabled.
type tagFilter struct {
	base     slog.Handler
	disabled map[string]struct{}
}

func newTagFilter(base slog.Handler, tags []string) *tagFilter {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			set[t] = struct{}{}
		}
	}
	return &tagFilter{base: base, disabled: set}
}

func (h *tagFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *tagFilter) Handle(ctx context.Context, r slog.Record) error {
	drop := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			_, drop = h.disabled[strings.ToLower(a.Value.String())]
			return false
		}
		return true
	})
	if drop {
		return nil
	}
	return h.base.Handle(ctx, r)
}

func (h *tagFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tagFilter{base: h.base.WithAttrs(attrs), disabled: h.disabled}
}

func (h *tagFilter) WithGroup(name string) slog.Handler {
	return &tagFilter{base: h.base.WithGroup(name), disabled: h.disabled}
}
