package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	timeLayout         = "2006-01-02T15:04:05-07:00"
	lineBufferCapacity = 256
)

// lineHandler writes one line per record:
//
//	2026-05-04T10:00:00+02:00 INFO [4242] hook routed event=PreToolUse tool=Read
//
// Several hook processes append to the same file, so every line carries the
// writing pid and is written with a single Write call.
type lineHandler struct {
	out    *lockedWriter
	level  slog.Level
	pid    string
	prefix string
	attrs  []byte
}

// lockedWriter serializes writes from handlers derived with WithAttrs and
// WithGroup.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) write(line []byte) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	_, err := lw.w.Write(line)

	return err
}

func (lw *lockedWriter) close() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if closer, ok := lw.w.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func newLineHandler(w io.Writer, level slog.Level) *lineHandler {
	return &lineHandler{
		out:   &lockedWriter{w: w},
		level: level,
		pid:   strconv.Itoa(os.Getpid()),
	}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	line := make([]byte, 0, lineBufferCapacity)
	line = r.Time.Local().AppendFormat(line, timeLayout)
	line = append(line, ' ')
	line = append(line, r.Level.String()...)
	line = append(line, " ["...)
	line = append(line, h.pid...)
	line = append(line, "] "...)
	line = append(line, r.Message...)
	line = append(line, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		line = appendAttr(line, h.prefix, a)

		return true
	})

	return h.out.write(append(line, '\n'))
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := *h
	child.attrs = append([]byte(nil), h.attrs...)

	for _, a := range attrs {
		child.attrs = appendAttr(child.attrs, h.prefix, a)
	}

	return &child
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	child := *h
	child.prefix = h.prefix + name + "."

	return &child
}

// appendAttr renders " key=value", quoting values a reader could not split
// on whitespace.
func appendAttr(line []byte, prefix string, a slog.Attr) []byte {
	if a.Equal(slog.Attr{}) {
		return line
	}

	line = append(line, ' ')
	line = append(line, prefix...)
	line = append(line, a.Key...)
	line = append(line, '=')

	val := a.Value.Resolve().String()
	if val == "" || strings.ContainsAny(val, " \t\r\n\"=") {
		return strconv.AppendQuote(line, val)
	}

	return append(line, val...)
}
