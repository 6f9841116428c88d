package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiCodeReset     = "\033[0m"
	ansiCodeRed       = "\033[31m"
	ansiCodeGreen     = "\033[32m"
	ansiCodeYellow    = "\033[33m"
	ansiCodeCyan      = "\033[36m"
	ansiCodeGray      = "\033[90m"
	ansiCodeUnderline = "\033[4m"
)

//nolint:gochecknoglobals
var ansiCodeMap = map[slog.Level]string{
	slog.LevelDebug: ansiCodeCyan,
	slog.LevelInfo:  ansiCodeGreen,
	slog.LevelWarn:  ansiCodeYellow,
	slog.LevelError: ansiCodeRed,
}

// ConsoleHandler implements slog.Handler to format log records with ANSI colors
// and human-readable output suitable for development environments.
type ConsoleHandler struct {
	// Output is the destination for log output (typically os.Stdout or os.Stderr)
	Output io.Writer
	// Level is the minimum level for log records to be processed
	Level slog.Leveler

	attrs  []slog.Attr
	groups []string
}

// consoleLock serializes writes of all console handlers.
//
//nolint:gochecknoglobals
var consoleLock sync.Mutex

var _ slog.Handler = (*ConsoleHandler)(nil)

// Handle implements slog.Handler. Each record is written as one line with
// time, level, message and attributes, followed by a line naming the caller.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder

	line.WriteString(ansiCodeGray + r.Time.Format("15:04:05.000000") + ansiCodeReset)
	line.WriteString(" " + ansiCodeMap[r.Level] + "[" + r.Level.String() + "]" + ansiCodeReset)
	line.WriteString(" " + r.Message)

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	if len(attrs) > 0 {
		var prefix string
		if len(h.groups) > 0 {
			prefix = strings.Join(h.groups, ".") + "."
		}

		line.WriteString(" " + ansiCodeGray + "|" + ansiCodeReset)
		renderAttrs(&line, prefix, attrs)
	}

	if r.PC != 0 {
		renderCaller(&line, r.PC)
	}

	line.WriteString("\n")

	consoleLock.Lock()
	defer consoleLock.Unlock()

	_, err := io.WriteString(h.Output, line.String())

	//nolint:wrapcheck
	return err
}

func renderAttrs(out *strings.Builder, prefix string, attrs []slog.Attr) {
	for _, attr := range attrs {
		if attr.Value.Kind() == slog.KindGroup {
			renderAttrs(out, prefix+attr.Key+".", attr.Value.Group())

			continue
		}

		out.WriteString(" " + prefix + attr.Key)
		out.WriteString("=" + ansiCodeGray + attr.Value.String() + ansiCodeReset)
	}
}

func renderCaller(out *strings.Builder, pc uintptr) {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	fn := strings.Split(frame.Function, string(os.PathSeparator))

	out.WriteString("\n-> " + ansiCodeGray + fn[len(fn)-1] + "()")
	out.WriteString(" in " + ansiCodeUnderline + frame.File + ":" + strconv.Itoa(frame.Line) + ansiCodeReset)
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		Output: h.Output,
		Level:  h.Level,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// WithAttrs implements slog.Handler.WithAttrs.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) Handler {
	c := h.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

// WithGroup implements slog.Handler.WithGroup.
func (h *ConsoleHandler) WithGroup(name string) Handler {
	c := h.clone()
	c.groups = append(c.groups, name)

	return c
}

// Enabled implements slog.Handler.Enabled.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if h.Level == nil {
		return level >= slog.LevelInfo
	}

	return h.Level.Level() <= level
}
