package contracts

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
)

// WithdrawApproval is a withdrawal signed off by the Vega network.
// Amount is already in the asset's integer units.
type WithdrawApproval struct {
	AssetSource   common.Address `json:"assetSource"`
	Amount        *big.Int       `json:"amount"`
	Nonce         *big.Int       `json:"nonce"`
	Signatures    []byte         `json:"signatures"`
	TargetAddress common.Address `json:"targetAddress"`
}

// Bridge is the ERC20 bridge.
type Bridge struct {
	base
}

func NewBridge(contract Contract, deps Deps) *Bridge {
	return &Bridge{base: newBase("erc20_bridge", contract, nil, deps)}
}

// Withdraw submits an approved withdrawal as is.
func (b *Bridge) Withdraw(ctx context.Context, opts *bind.TransactOpts, approval WithdrawApproval) (*Submission, error) {
	if approval.Amount == nil || approval.Amount.Sign() < 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "withdraw amount must be a non-negative integer")
	}
	if approval.Nonce == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "withdraw nonce is required")
	}
	return b.submit(ctx, opts, b.confirmations, "withdraw_asset",
		approval.AssetSource,
		approval.Amount,
		approval.TargetAddress,
		approval.Nonce,
		approval.Signatures,
	)
}
