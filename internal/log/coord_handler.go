package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/nao1215/glyphcheck/internal/check"
)

// coordKeys contains attribute keys whose float values are geometry.
var coordKeys = map[string]bool{
	"x":      true,
	"y":      true,
	"width":  true,
	"height": true,
	"length": true,
	"dist":   true,
}

// CoordHandler wraps an slog.Handler and formats geometric float attributes
// with check.FormatCoord before passing records on.
//
// Design decision: We use a handler wrapper rather than formatting at each
// call site because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
type CoordHandler struct {
	// handler is the underlying slog handler that receives formatted records.
	handler slog.Handler
}

// NewCoordHandler creates a new CoordHandler wrapping the given handler.
// If handler is nil, the returned CoordHandler will use slog.Default().Handler().
func NewCoordHandler(handler slog.Handler) *CoordHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &CoordHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CoordHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle formats the record's attributes and passes it to the underlying handler.
func (h *CoordHandler) Handle(ctx context.Context, r slog.Record) error {
	formatted := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		formatted.AddAttrs(formatAttr(a))
		return true
	})
	return h.handler.Handle(ctx, formatted)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *CoordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		formatted[i] = formatAttr(a)
	}
	return &CoordHandler{handler: h.handler.WithAttrs(formatted)}
}

// WithGroup returns a new handler with the given group name.
func (h *CoordHandler) WithGroup(name string) slog.Handler {
	return &CoordHandler{handler: h.handler.WithGroup(name)}
}

// formatAttr formats a single attribute, recursively handling groups.
func formatAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = formatAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindFloat64:
		f := v.Float64()
		if !coordKeys[strings.ToLower(a.Key)] || math.IsNaN(f) || math.IsInf(f, 0) {
			return a
		}
		return slog.String(a.Key, check.FormatCoord(f))
	default:
		return a
	}
}

// handlerOptions returns the handler options for the given verbosity.
func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

// NewLogger creates a text logger that formats geometric attributes.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCoordHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a JSON logger that formats geometric attributes.
// This is useful for machine-readable log output.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewCoordHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}
