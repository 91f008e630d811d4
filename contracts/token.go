package contracts

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MaxSafeInteger is the allowance, in token units, granted by Approve.
var MaxSafeInteger = decimal.NewFromInt(1<<53 - 1)

// Token is an ERC20 token, such as VEGA. Amounts are in token units.
type Token struct {
	base
}

type TokenData struct {
	TotalSupply decimal.Decimal `json:"totalSupply"`
	Decimals    uint8           `json:"decimals"`
}

func NewToken(contract Contract, deps Deps) *Token {
	t := &Token{}
	t.base = newBase("token", contract, nil, deps)
	t.scaler = decimals.NewScaler(t.Decimals)
	return t
}

// Decimals calls the contract. Use Scaler().Decimals for the cached value.
func (t *Token) Decimals(ctx context.Context) (uint8, error) {
	raw, err := t.callBigInt(ctx, "decimals")
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if !raw.IsUint64() || raw.Uint64() > math.MaxUint8 {
		return 0, errors.Wrapf(errs.InternalError, "decimals %s out of range", raw)
	}
	return uint8(raw.Uint64()), nil
}

func (t *Token) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	return t.callDecimal(ctx, "totalSupply")
}

func (t *Token) BalanceOf(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	return t.callDecimal(ctx, "balanceOf", account)
}

func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (decimal.Decimal, error) {
	return t.callDecimal(ctx, "allowance", owner, spender)
}

// TokenData returns the total supply and decimals, queried concurrently.
func (t *Token) TokenData(ctx context.Context) (TokenData, error) {
	var data TokenData
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		supply, err := t.TotalSupply(gctx)
		data.TotalSupply = supply
		return errors.WithStack(err)
	})
	group.Go(func() error {
		d, err := t.scaler.Decimals(gctx)
		data.Decimals = d
		return errors.WithStack(err)
	})
	if err := group.Wait(); err != nil {
		return TokenData{}, errors.WithStack(err)
	}
	return data, nil
}

// Approve lets spender transfer up to MaxSafeInteger tokens.
func (t *Token) Approve(ctx context.Context, opts *bind.TransactOpts, spender common.Address) (*Submission, error) {
	raw, err := t.toRaw(ctx, t.scaler, MaxSafeInteger)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return t.submit(ctx, opts, t.confirmations, "approve", spender, raw)
}

func (t *Token) Transfer(ctx context.Context, opts *bind.TransactOpts, recipient common.Address, amount decimal.Decimal) (*Submission, error) {
	raw, err := t.toRaw(ctx, t.scaler, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return t.submit(ctx, opts, t.confirmations, "transfer", recipient, raw)
}

func (t *Token) TransferFrom(ctx context.Context, opts *bind.TransactOpts, sender, recipient common.Address, amount decimal.Decimal) (*Submission, error) {
	raw, err := t.toRaw(ctx, t.scaler, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return t.submit(ctx, opts, t.confirmations, "transferFrom", sender, recipient, raw)
}
