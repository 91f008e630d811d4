package requestlogger

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	WithRequestQuery bool `mapstructure:"request_query"`
	Disable          bool `mapstructure:"disable"` // Disable logger level `INFO`
}

// New logs every completed request. Failed requests are logged at error level.
func New(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()

		level := slog.LevelInfo
		if err != nil || status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		if config.Disable && level == slog.LevelInfo {
			return errors.WithStack(err)
		}

		request := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.String("ip", requestcontext.GetClientIP(c.UserContext())),
			slog.String("user-agent", string(c.Context().UserAgent())),
		}
		if config.WithRequestQuery {
			request = append(request, slog.String("query", string(c.Request().URI().QueryString())))
		}
		attrs := []slog.Attr{
			slog.String("event", "api_request"),
			slog.Int64("latency", latency.Milliseconds()),
			slog.String("latencyHuman", latency.String()),
			{Key: "request", Value: slog.GroupValue(request...)},
			{Key: "response", Value: slog.GroupValue(
				slog.Int("status", status),
				slog.Int("length", len(c.Response().Body())),
			)},
		}
		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		logger.LogAttrs(c.UserContext(), level, "Request Completed", attrs...)
		return errors.WithStack(err)
	}
}
