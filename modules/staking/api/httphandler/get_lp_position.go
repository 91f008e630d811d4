package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	gcommon "github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type getLPPositionRequest struct {
	Pool    string `params:"pool"`
	Address string `params:"address"`
}

func (r getLPPositionRequest) Validate() error {
	return errs.WithPublicMessage(errors.Join(
		validateAddress("pool", r.Pool),
		validateAddress("address", r.Address),
	), "validation error")
}

type epoch struct {
	ID           uint64 `json:"id"`
	StartSeconds uint64 `json:"startSeconds"`
	EndSeconds   uint64 `json:"endSeconds"`
}

type getLPPositionResult struct {
	Pool           common.Address  `json:"pool"`
	Address        common.Address  `json:"address"`
	Pending        decimal.Decimal `json:"pending"`
	EarningRewards decimal.Decimal `json:"earningRewards"`
	Total          decimal.Decimal `json:"total"`
	Rewards        decimal.Decimal `json:"rewards"`
	Epoch          epoch           `json:"epoch"`
}

type getLPPositionResponse = gcommon.HttpResponse[getLPPositionResult]

func (h *HttpHandler) GetLPPosition(ctx *fiber.Ctx) (err error) {
	var req getLPPositionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	pool, address := common.HexToAddress(req.Pool), common.HexToAddress(req.Address)
	position, err := h.usecase.GetLPPosition(ctx.UserContext(), pool, address)
	if err != nil {
		return errors.Wrap(err, "error during GetLPPosition")
	}

	resp := getLPPositionResponse{
		Result: &getLPPositionResult{
			Pool:           pool,
			Address:        address,
			Pending:        position.Staked.Pending,
			EarningRewards: position.Staked.EarningRewards,
			Total:          position.Staked.Total,
			Rewards:        position.Rewards,
			Epoch: epoch{
				ID:           position.Epoch.ID.Uint64(),
				StartSeconds: position.Epoch.StartSeconds.Uint64(),
				EndSeconds:   position.Epoch.EndSeconds.Uint64(),
			},
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
