// Package log provides the structured logging used across the assembler and its command-line
// driver.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultLogger returns a logger that writes formatted records to standard error. Each call
	// builds a new logger; components that do not receive a logger explicitly may call this and
	// cache the result.
	DefaultLogger = func() *Logger { return NewFormattedLogger(os.Stderr) }

	// SetDefault overrides the default logger used by the slog package-level functions.
	SetDefault = slog.SetDefault

	// Verbosity holds the current log level. It can be changed at runtime, e.g. by a
	// command-line flag, and is shared by every Handler created with NewHandler.
	Verbosity = &slog.LevelVar{}
)

// NewFormattedLogger returns a logger that writes human-readable, field-aligned records to out.
func NewFormattedLogger(out io.Writer) *Logger {
	return slog.New(NewHandler(out))
}

// Handler is a slog.Handler that renders records as a block of aligned "FIELD : value" lines,
// rather than slog's single-line key=value format. Multi-word attribute values -- a source line,
// a register dump -- read better this way.
type Handler struct {
	mu  *sync.Mutex
	out io.Writer

	opts  *slog.HandlerOptions
	group string
	attrs []Attr
}

// Options configures the handlers created by NewHandler.
var Options = &slog.HandlerOptions{
	AddSource:   true,
	Level:       Verbosity,
	ReplaceAttr: func(_ []string, attr Attr) Attr { return attr },
}

// NewHandler creates a Handler that writes to out using Options.
func NewHandler(out io.Writer) *Handler {
	return &Handler{
		out:  out,
		mu:   new(sync.Mutex),
		opts: Options,
	}
}

// Enabled reports whether a record at level should be handled.
func (h *Handler) Enabled(_ context.Context, level Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle formats and writes a single log record.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	buf := bytes.NewBuffer(make([]byte, 0, 256))

	if !rec.Time.IsZero() {
		fmt.Fprintf(buf, "%10s : %s\n", "TIMESTAMP", rec.Time.Format(time.RFC3339Nano))
	}

	fmt.Fprintf(buf, "%10s : %s\n", "LEVEL", rec.Level.String())

	if h.opts.AddSource && rec.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{rec.PC})
		frame, _ := frames.Next()
		_, file := path.Split(frame.File)
		fmt.Fprintf(buf, "%10s : %s:%d\n", "SOURCE", file, frame.Line)
	}

	fmt.Fprintf(buf, "%10s : %s\n", "MESSAGE", rec.Message)

	for _, a := range h.attrs {
		if err := h.appendAttr(buf, a, false); err != nil {
			return err
		}
	}

	var attrErr error

	rec.Attrs(func(attr Attr) bool {
		attrErr = h.appendAttr(buf, attr, false)
		return attrErr == nil
	})

	if attrErr != nil {
		return attrErr
	}

	fmt.Fprintln(buf)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(buf.Bytes())

	return err
}

// WithGroup returns a Handler that carries name as its group. The name is passed to
// Options.ReplaceAttr; it is not printed, and attributes are not nested under it.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	attrs := make([]Attr, len(h.attrs))
	copy(attrs, h.attrs)

	return &Handler{mu: h.mu, out: h.out, opts: h.opts, attrs: attrs, group: name}
}

// WithAttrs returns a Handler that includes attrs on every record it handles.
func (h *Handler) WithAttrs(attrs []Attr) slog.Handler {
	merged := make([]Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &Handler{mu: h.mu, out: h.out, opts: h.opts, attrs: merged}
}

func (h *Handler) appendAttr(out io.Writer, attr slog.Attr, grouped bool) error {
	attr.Value = attr.Value.Resolve()
	attr = h.opts.ReplaceAttr([]string{h.group}, attr)

	if attr.Equal(Attr{}) {
		return nil
	}

	key, value := strings.ToUpper(attr.Key), attr.Value

	if value.Kind() != slog.KindGroup {
		if grouped {
			fmt.Fprint(out, "  ")
		}

		_, err := fmt.Fprintf(out, "%10s : %v\n", key, value.Any())

		return err
	}

	if key != "" {
		if _, err := fmt.Fprintf(out, "%10s :\n", key); err != nil {
			return err
		}

		grouped = true
	}

	for _, a := range value.Group() {
		if err := h.appendAttr(out, a, grouped); err != nil {
			return err
		}
	}

	return nil
}

type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
	Value  = slog.Value
)

var (
	String      = slog.String
	StringValue = slog.StringValue
	Int         = slog.Int
	Group       = slog.Group
	GroupValue  = slog.GroupValue
	Any         = slog.Any
	AnyValue    = slog.AnyValue
)

const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)
