package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

// Init sets GOMAXPROCS to match the Linux container CPU quota, if any.
// A GOMAXPROCS environment variable takes precedence.
func Init() error {
	ctx := logger.WithContext(context.Background(),
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", runtime.GOMAXPROCS(0)),
	)

	printf := func(format string, v ...any) {
		var attrs []slog.Attr
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = runtime.GOMAXPROCS(0)
			}
			if n, ok := val.(int); ok {
				attrs = append(attrs, slogx.Int("set_maxprocs", n))
			}
		}
		logger.LogAttrs(ctx, slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
	}

	if _, err := maxprocs.Set(maxprocs.Logger(printf), maxprocs.Min(1)); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
