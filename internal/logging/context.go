package logging

import (
	"context"
	"log/slog"

	"github.com/dbrown540/pypeline-cli/internal/services"
)

// contextHandler decorates records with correlation values carried in the
// context: the build identifier and the invoking command. Call sites that
// log through the Context variants pick these up without threading them as
// explicit attributes.
type contextHandler struct {
	inner slog.Handler
}

func withContextAttrs(inner slog.Handler) slog.Handler {
	return contextHandler{inner: inner}
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if id, ok := services.BuildIDFromContext(ctx); ok {
		record.AddAttrs(slog.String(FieldBuildID, id))
	}
	if name, ok := services.CommandFromContext(ctx); ok {
		record.AddAttrs(slog.String("command", name))
	}
	return h.inner.Handle(ctx, record)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{inner: h.inner.WithGroup(name)}
}
