package httphandler

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gcommon "github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/modules/staking/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	network gcommon.Network

	// trackCtx bounds transactions tracked on request. It outlives the request.
	trackCtx context.Context
}

func New(trackCtx context.Context, network gcommon.Network, usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase:  usecase,
		network:  network,
		trackCtx: trackCtx,
	}
}

func validateAddress(field, value string) error {
	if !common.IsHexAddress(value) {
		return errors.Newf("'%s' is not a valid address", field)
	}
	return nil
}

func validateHash(field, value string) error {
	if b, err := hexutil.Decode(value); err != nil || len(b) != common.HashLength {
		return errors.Newf("'%s' is not a valid transaction hash", field)
	}
	return nil
}
