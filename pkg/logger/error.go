package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors/errbase"
)

// errorHandler expands error attributes with the verbose message and, when
// available, the stack trace recorded by cockroachdb/errors.
type errorHandler struct {
	slog.Handler
}

func (h errorHandler) Handle(ctx context.Context, rec slog.Record) error {
	var extra []slog.Attr
	rec.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrorKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok && err != nil {
			extra = append(extra, slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
			if x, ok := err.(errbase.StackTraceProvider); ok {
				extra = append(extra, slog.Any(ErrorStackTraceKey, traceLines(x.StackTrace())))
			}
		}
		return false
	})
	rec.AddAttrs(extra...)
	return h.Handler.Handle(ctx, rec)
}

func (h errorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return errorHandler{h.Handler.WithAttrs(attrs)}
}

func (h errorHandler) WithGroup(name string) slog.Handler {
	return errorHandler{h.Handler.WithGroup(name)}
}

// traceLines formats frames outermost first, without the leading runtime frames.
func traceLines(frames errbase.StackTrace) []string {
	lines := make([]string, 0, len(frames))
	for i := len(frames) - 1; i >= 0; i-- {
		pc := uintptr(frames[i]) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			lines = append(lines, "unknown")
			continue
		}
		if len(lines) == 0 && strings.HasPrefix(fn.Name(), "runtime.") {
			continue
		}
		file, line := fn.FileLine(pc)
		lines = append(lines, fmt.Sprintf("%s %s:%d", fn.Name(), file, line))
	}
	return lines
}
