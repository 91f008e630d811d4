package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
)

// kindStatus maps error kinds that are safe to expose to their HTTP status.
var kindStatus = []struct {
	kind   error
	status int
}{
	{errs.NotFound, http.StatusNotFound},
	{errs.InvalidArgument, http.StatusBadRequest},
	{errs.Unsupported, http.StatusNotImplemented},
	{errs.Reverted, http.StatusUnprocessableEntity},
	{errs.Timeout, http.StatusGatewayTimeout},
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(http.StatusBadRequest).JSON(map[string]any{
				"error": e.Message(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).SendString(e.Error()))
		}
		for _, k := range kindStatus {
			if errors.Is(err, k.kind) {
				return errors.WithStack(ctx.Status(k.status).JSON(map[string]any{
					"error": err.Error(),
				}))
			}
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
