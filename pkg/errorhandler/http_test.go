package errorhandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"public", errs.NewPublicError("bad address"), http.StatusBadRequest, "bad address"},
		{"fiber", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, ""},
		{"not_found", errors.Wrap(errs.NotFound, "transaction"), http.StatusNotFound, "transaction: Not Found"},
		{"invalid_argument", errors.Wrap(errs.InvalidArgument, "vega key"), http.StatusBadRequest, "vega key: Invalid Argument"},
		{"reverted", errors.Wrap(errs.Reverted, "call"), http.StatusUnprocessableEntity, "call: Execution Reverted"},
		{"internal", errors.New("database is down"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: NewHTTPErrorHandler()})
			app.Get("/", func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.message == "" {
				return
			}
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.message, body["error"])
		})
	}
}
