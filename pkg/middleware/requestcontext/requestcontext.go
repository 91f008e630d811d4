package requestcontext

import (
	"context"
	"net"

	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

type (
	requestIDKey struct{}
	clientIPKey  struct{}
)

type Config struct {
	// [Optional] TrustedHeader is a header name for getting client IP. (e.g. X-Real-IP, CF-Connecting-IP, etc.)
	TrustedHeader string `mapstructure:"trusted_header"`
}

// New attaches the request id and client IP to the user context and its logger.
func New(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		if !ok || requestID == "" {
			requestID = c.Get(requestid.ConfigDefault.Header, fiberutils.UUID())
			c.Set(requestid.ConfigDefault.Header, requestID)
			c.Locals(requestid.ConfigDefault.ContextKey, requestID)
		}
		clientIP := c.IP()
		if config.TrustedHeader != "" {
			if ip := c.Get(config.TrustedHeader); net.ParseIP(ip) != nil {
				clientIP = ip
			}
		}

		ctx := context.WithValue(c.UserContext(), requestIDKey{}, requestID)
		ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
		ctx = logger.WithContext(ctx, "requestId", requestID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// GetRequestID get requestId from context. If not found, return empty string
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// GetClientIP get clientIP from context. If not found, return empty string
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
