package contracts

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gaze-network/vega-contracts/core/stakes"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/shopspring/decimal"
)

// Vesting is the vesting contract. Locked tokens held in tranches can be staked
// without being withdrawn. Amounts are in VEGA token units.
type Vesting struct {
	base
}

func NewVesting(contract Contract, scaler *decimals.Scaler, deps Deps) *Vesting {
	return &Vesting{base: newBase("vesting", contract, scaler, deps)}
}

func (v *Vesting) StakeBalance(ctx context.Context, account common.Address, vegaKey string) (decimal.Decimal, error) {
	return stakeBalance(ctx, &v.base, account, vegaKey)
}

func (v *Vesting) TotalStaked(ctx context.Context) (decimal.Decimal, error) {
	return v.callDecimal(ctx, "total_staked")
}

// AddStake stakes tokens held in tranches for vegaKey.
func (v *Vesting) AddStake(ctx context.Context, opts *bind.TransactOpts, amount decimal.Decimal, vegaKey string) (*Submission, error) {
	return v.stakeCall(ctx, opts, v.confirmations, "stake_tokens", amount, vegaKey)
}

func (v *Vesting) RemoveStake(ctx context.Context, opts *bind.TransactOpts, amount decimal.Decimal, vegaKey string) (*Submission, error) {
	return v.stakeCall(ctx, opts, v.confirmations, "remove_stake", amount, vegaKey)
}

// GetLien returns the amount of account's vesting tokens that is currently staked.
func (v *Vesting) GetLien(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	out, err := v.call(ctx, "user_stats", account)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	raw, err := outputBigInt(out, 1, "user_stats")
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return v.scaler.ToDecimal(ctx, raw)
}

func (v *Vesting) UserTrancheTotalBalance(ctx context.Context, account common.Address, tranche uint8) (decimal.Decimal, error) {
	return v.callDecimal(ctx, "get_tranche_balance", account, tranche)
}

func (v *Vesting) UserTrancheVestedBalance(ctx context.Context, account common.Address, tranche uint8) (decimal.Decimal, error) {
	return v.callDecimal(ctx, "get_vested_for_tranche", account, tranche)
}

func (v *Vesting) GetUserBalanceAllTranches(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	return v.callDecimal(ctx, "user_total_all_tranches", account)
}

// WithdrawFromTranche withdraws the vested tokens of a tranche to the sender.
func (v *Vesting) WithdrawFromTranche(ctx context.Context, opts *bind.TransactOpts, tranche uint8) (*Submission, error) {
	return v.submit(ctx, opts, v.confirmations, "withdraw_from_tranche", tranche)
}

// UserTotalStakedByVegaKey sums the stake deposits and removals of account per Vega key.
func (v *Vesting) UserTotalStakedByVegaKey(ctx context.Context, account common.Address) (map[string]decimal.Decimal, error) {
	return userTotalStakedByVegaKey(ctx, &v.base, account)
}

// WatchEvents tracks the transaction of every new stake event of the given
// users, or of all users when none are given.
func (v *Vesting) WatchEvents(ctx context.Context, users ...common.Address) (event.Subscription, error) {
	return v.watch(ctx, []string{stakes.DepositedEventName, stakes.RemovedEventName}, addressQuery(users))
}
