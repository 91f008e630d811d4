package httphandler

import (
	"github.com/cockroachdb/errors"
	gcommon "github.com/gaze-network/vega-contracts/common"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type getTokenResult struct {
	Network     gcommon.Network `json:"network"`
	TotalSupply decimal.Decimal `json:"totalSupply"`
	Decimals    uint8           `json:"decimals"`
}

type getTokenResponse = gcommon.HttpResponse[getTokenResult]

func (h *HttpHandler) GetToken(ctx *fiber.Ctx) (err error) {
	data, err := h.usecase.GetTokenData(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during GetTokenData")
	}

	resp := getTokenResponse{
		Result: &getTokenResult{
			Network:     h.network,
			TotalSupply: data.TotalSupply,
			Decimals:    data.Decimals,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
