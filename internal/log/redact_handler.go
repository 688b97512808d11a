package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// contentKeys contains attribute keys whose values quote document content.
// Such values are always masked; the document being analyzed may be
// confidential and logs travel further than reports do.
var contentKeys = map[string]bool{
	"text":     true,
	"excerpt":  true,
	"snippet":  true,
	"clause":   true,
	"content":  true,
	"context":  true,
	"sentence": true,
	"amount":   true,
	"raw":      true,
}

// contentPatterns contains regex patterns that indicate a value quotes
// document content. Values matching these are masked regardless of key name.
var contentPatterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),

	// Monetary literals ("$250,000", "EUR 1.5M")
	regexp.MustCompile(`^[$€£¥][0-9][0-9,.]*\s?[KMBkmb]?$`),
	regexp.MustCompile(`(?i)^(USD|EUR|GBP|JPY)\s?[0-9][0-9,.]*\s?[KMBkmb]?$`),

	// US social security numbers
	regexp.MustCompile(`^[0-9]{3}-[0-9]{2}-[0-9]{4}$`),
}

// MaskValue is the string used to replace masked values.
const MaskValue = "***MASKED***"

// RedactHandler wraps an slog.Handler to mask document content in log
// attributes before they reach the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because it composes with any underlying handler (text, JSON) and with
// every slog API; call sites log normally and never need to know which
// attributes are sensitive.
type RedactHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewRedactHandler creates a new RedactHandler wrapping the given handler.
// If handler is nil, the returned RedactHandler uses slog.Default().Handler().
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying
// handler.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute if it carries document content.
// Group attributes are masked recursively.
func (h *RedactHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		groupAttrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(groupAttrs))
		for i, groupAttr := range groupAttrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if contentKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isContentValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// isContentValue checks if a value matches document-content patterns.
func isContentValue(value string) bool {
	for _, pattern := range contentPatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewRedactLogger creates a new slog.Logger with content masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewRedactLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewRedactHandler(slog.NewTextHandler(w, opts)))
}
