package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	c := NewVersionCommand()
	c.SetOut(&out)
	c.SetArgs(nil)
	require.NoError(t, c.Execute())
	assert.Equal(t, Version+"\n", out.String())
}

func TestHTTPServer(t *testing.T) {
	app := newHTTPServer(config.Config{})

	for _, path := range []string{"/", "/metrics"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestArgumentValidation(t *testing.T) {
	t.Run("stakes", func(t *testing.T) {
		c := NewStakesCommand()
		c.SetContext(context.Background())
		assert.ErrorIs(t, stakesHandler(c, []string{"0x1234"}), errs.InvalidArgument)
	})

	t.Run("track", func(t *testing.T) {
		c := NewTrackCommand()
		c.SetContext(context.Background())
		assert.ErrorIs(t, trackHandler(&trackCmdOptions{}, c, []string{"0xabcd"}), errs.InvalidArgument)
	})
}
