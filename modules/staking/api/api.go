package api

import (
	"context"

	"github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/modules/staking/api/httphandler"
	"github.com/gaze-network/vega-contracts/modules/staking/usecase"
)

func NewHTTPHandler(trackCtx context.Context, network common.Network, usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(trackCtx, network, usecase)
}
