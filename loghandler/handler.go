package loghandler

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Records may carry a string "tag" attribute naming the subsystem; it is
// rendered as a bracketed prefix instead of a key=value pair.
const tagKey = "tag"

const timeLayout = "2006/01/02 15:04:05"

// CompactHandler is a slog.Handler producing single-line, human-oriented
// output:
//
//	2026/09/01 14:03:59 [rooms] member joined room=sala-1 name=Alice
//
// The level gates output but is never printed. Handlers derived via
// WithAttrs and WithGroup share the writer and its mutex.
type CompactHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level

	// attrs holds preformatted " key=value" text accumulated by WithAttrs;
	// tag is a tag attribute captured there. group qualifies record keys.
	attrs string
	tag   string
	group string
}

// NewCompactHandler returns a handler writing to w, dropping records below
// level.
func NewCompactHandler(w io.Writer, level slog.Level) *CompactHandler {
	return &CompactHandler{w: w, mu: &sync.Mutex{}, level: level}
}

// Enabled reports whether records at the given level are written.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes the record as one line. A tag on the record itself takes
// precedence over one inherited from WithAttrs.
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	tag := h.tag
	var pairs strings.Builder
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey && h.group == "" && a.Value.Kind() == slog.KindString {
			tag = a.Value.String()
			return true
		}
		h.appendAttr(&pairs, a)
		return true
	})

	var b strings.Builder
	b.Grow(160)
	b.WriteString(r.Time.Format(timeLayout))
	b.WriteByte(' ')
	if tag != "" {
		b.WriteByte('[')
		b.WriteString(tag)
		b.WriteString("] ")
	}
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	b.WriteString(pairs.String())
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// appendAttr writes " key=value", qualifying the key with the group path.
func (h *CompactHandler) appendAttr(b *strings.Builder, a slog.Attr) {
	b.WriteByte(' ')
	if h.group != "" {
		b.WriteString(h.group)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(a.Value.Resolve().String())
}

// WithAttrs returns a handler whose every line carries the given
// attributes. A string tag attribute becomes the line prefix.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := *h
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		if a.Key == tagKey && h.group == "" && a.Value.Kind() == slog.KindString {
			nh.tag = a.Value.String()
			continue
		}
		h.appendAttr(&b, a)
	}
	nh.attrs = b.String()
	return &nh
}

// WithGroup returns a handler that qualifies subsequent record keys with
// name (dot-separated when nested).
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	if h.group != "" {
		nh.group = h.group + "." + name
	} else {
		nh.group = name
	}
	return &nh
}
