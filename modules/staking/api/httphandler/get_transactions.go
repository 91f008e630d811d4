package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	gcommon "github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type transaction struct {
	Hash                  common.Hash `json:"hash"`
	Pending               bool        `json:"pending"`
	Confirmations         int         `json:"confirmations"`
	RequiredConfirmations int         `json:"requiredConfirmations"`
	BlockNumber           *uint64     `json:"blockNumber"`
	Status                *uint64     `json:"status"`
}

func mapTransaction(tx txtracker.TrackedTransaction) transaction {
	result := transaction{
		Hash:                  tx.Hash,
		Pending:               tx.Pending,
		Confirmations:         tx.Confirmations,
		RequiredConfirmations: tx.RequiredConfirmations,
	}
	if tx.Receipt != nil {
		if tx.Receipt.BlockNumber != nil {
			result.BlockNumber = lo.ToPtr(tx.Receipt.BlockNumber.Uint64())
		}
		result.Status = lo.ToPtr(tx.Receipt.Status)
	}
	return result
}

type getTransactionsRequest struct {
	Pending *bool `query:"pending"`
}

type getTransactionsResult struct {
	List []transaction `json:"list"`
}

type getTransactionsResponse = gcommon.HttpResponse[getTransactionsResult]

func (h *HttpHandler) GetTransactions(ctx *fiber.Ctx) (err error) {
	var req getTransactionsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}

	txs := h.usecase.GetTransactions()
	if req.Pending != nil {
		txs = lo.Filter(txs, func(tx txtracker.TrackedTransaction, _ int) bool {
			return tx.Pending == *req.Pending
		})
	}

	resp := getTransactionsResponse{
		Result: &getTransactionsResult{
			List: lo.Map(txs, func(tx txtracker.TrackedTransaction, _ int) transaction {
				return mapTransaction(tx)
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}

type getTransactionRequest struct {
	Hash string `params:"hash"`
}

func (r getTransactionRequest) Validate() error {
	return errs.WithPublicMessage(validateHash("hash", r.Hash), "validation error")
}

type getTransactionResponse = gcommon.HttpResponse[transaction]

func (h *HttpHandler) GetTransaction(ctx *fiber.Ctx) (err error) {
	var req getTransactionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	tx, err := h.usecase.GetTransaction(common.HexToHash(req.Hash))
	if err != nil {
		return errors.WithStack(err)
	}

	resp := getTransactionResponse{Result: lo.ToPtr(mapTransaction(tx))}
	return errors.WithStack(ctx.JSON(resp))
}

// TrackTransaction starts tracking the transaction and responds with its current state.
func (h *HttpHandler) TrackTransaction(ctx *fiber.Ctx) (err error) {
	var req getTransactionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	tx, err := h.usecase.TrackTransaction(ctx.UserContext(), h.trackCtx, common.HexToHash(req.Hash))
	if err != nil {
		return errors.Wrap(err, "error during TrackTransaction")
	}

	resp := getTransactionResponse{Result: lo.ToPtr(mapTransaction(tx))}
	return errors.WithStack(ctx.Status(fiber.StatusAccepted).JSON(resp))
}
