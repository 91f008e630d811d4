package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	gcommon "github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type getStakesRequest struct {
	Address string `params:"address"`
}

func (r getStakesRequest) Validate() error {
	return errs.WithPublicMessage(validateAddress("address", r.Address), "validation error")
}

type getStakesResult struct {
	Address common.Address `json:"address"`

	// amounts per vega public key
	Staking map[string]decimal.Decimal `json:"staking"`
	Vesting map[string]decimal.Decimal `json:"vesting"`
	Total   map[string]decimal.Decimal `json:"total"`
}

type getStakesResponse = gcommon.HttpResponse[getStakesResult]

func (h *HttpHandler) GetStakes(ctx *fiber.Ctx) (err error) {
	var req getStakesRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	address := common.HexToAddress(req.Address)
	stakes, err := h.usecase.GetStakes(ctx.UserContext(), address)
	if err != nil {
		return errors.Wrap(err, "error during GetStakes")
	}

	resp := getStakesResponse{
		Result: &getStakesResult{
			Address: address,
			Staking: stakes.Staking,
			Vesting: stakes.Vesting,
			Total:   stakes.Total,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
