package logger

import (
	"log/slog"
)

const (
	LevelPanic = slog.Level(12)
	LevelFatal = slog.Level(16)
)

// levelAttrReplacer names the levels above [slog.LevelError].
func levelAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 || attr.Key != slog.LevelKey {
		return attr
	}
	switch l, _ := attr.Value.Any().(slog.Level); {
	case l >= LevelFatal:
		return slog.String(attr.Key, "FATAL")
	case l >= LevelPanic:
		return slog.String(attr.Key, "PANIC")
	}
	return attr
}
