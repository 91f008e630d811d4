package contracts

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gaze-network/vega-contracts/core/stakes"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// StakeConfirmations is the depth stake deposits are tracked to.
const StakeConfirmations = 3

// Staking is the staking bridge. Amounts are in VEGA token units.
type Staking struct {
	base
}

// NewStaking creates the staking bridge facade. scaler converts VEGA amounts,
// usually the VEGA Token's Scaler().
func NewStaking(contract Contract, scaler *decimals.Scaler, deps Deps) *Staking {
	return &Staking{base: newBase("staking_bridge", contract, scaler, deps)}
}

// AddStake deposits amount of VEGA for vegaKey. The deposit is tracked to at
// least StakeConfirmations.
func (s *Staking) AddStake(ctx context.Context, opts *bind.TransactOpts, amount decimal.Decimal, vegaKey string) (*Submission, error) {
	return s.stakeCall(ctx, opts, max(StakeConfirmations, s.confirmations), "stake", amount, vegaKey)
}

func (s *Staking) RemoveStake(ctx context.Context, opts *bind.TransactOpts, amount decimal.Decimal, vegaKey string) (*Submission, error) {
	return s.stakeCall(ctx, opts, s.confirmations, "remove_stake", amount, vegaKey)
}

// TransferStake moves amount of the caller's stake on vegaKey to newAddress.
func (s *Staking) TransferStake(ctx context.Context, opts *bind.TransactOpts, amount decimal.Decimal, newAddress common.Address, vegaKey string) (*Submission, error) {
	raw, err := s.toRaw(ctx, s.scaler, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	key, err := vegaKeyParam(vegaKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return s.submit(ctx, opts, s.confirmations, "transfer_stake", raw, newAddress, key)
}

func (s *Staking) StakeBalance(ctx context.Context, account common.Address, vegaKey string) (decimal.Decimal, error) {
	return stakeBalance(ctx, &s.base, account, vegaKey)
}

func (s *Staking) TotalStaked(ctx context.Context) (decimal.Decimal, error) {
	return s.callDecimal(ctx, "total_staked")
}

// UserTotalStakedByVegaKey sums the stake deposits and removals of account per Vega key.
func (s *Staking) UserTotalStakedByVegaKey(ctx context.Context, account common.Address) (map[string]decimal.Decimal, error) {
	return userTotalStakedByVegaKey(ctx, &s.base, account)
}

// WatchEvents tracks the transaction of every new stake event of the given
// users, or of all users when none are given.
func (s *Staking) WatchEvents(ctx context.Context, users ...common.Address) (event.Subscription, error) {
	return s.watch(ctx,
		[]string{stakes.DepositedEventName, stakes.RemovedEventName, stakes.TransferredEventName},
		addressQuery(users),
	)
}

// stakeCall submits method(raw amount, vega key), shared by the staking bridge and vesting.
func (b *base) stakeCall(ctx context.Context, opts *bind.TransactOpts, confirmations int, method string, amount decimal.Decimal, vegaKey string) (*Submission, error) {
	raw, err := b.toRaw(ctx, b.scaler, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	key, err := vegaKeyParam(vegaKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b.submit(ctx, opts, confirmations, method, raw, key)
}

func stakeBalance(ctx context.Context, b *base, account common.Address, vegaKey string) (decimal.Decimal, error) {
	key, err := vegaKeyParam(vegaKey)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return b.callDecimal(ctx, "stake_balance", account, key)
}

func userTotalStakedByVegaKey(ctx context.Context, b *base, account common.Address) (result map[string]decimal.Decimal, err error) {
	defer func() { b.metrics.StakeAggregation(b.name, err) }()

	var deposits, removals []stakes.Event
	group, gctx := errgroup.WithContext(ctx)
	query := []any{account}
	group.Go(func() error {
		logs, err := b.filterLogs(gctx, stakes.DepositedEventName, query)
		if err != nil {
			return errors.WithStack(err)
		}
		deposits, err = stakes.DecodeLogs(stakes.Deposit, logs)
		return errors.WithStack(err)
	})
	group.Go(func() error {
		logs, err := b.filterLogs(gctx, stakes.RemovedEventName, query)
		if err != nil {
			return errors.WithStack(err)
		}
		removals, err = stakes.DecodeLogs(stakes.Removal, logs)
		return errors.WithStack(err)
	})
	if err := group.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}

	d, err := b.scaler.Decimals(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err = stakes.Aggregate(deposits, removals, d)
	if err != nil {
		return nil, errors.Wrapf(err, "can't aggregate stake events of %s", account)
	}
	return result, nil
}

func addressQuery(addresses []common.Address) []any {
	return lo.Map(addresses, func(address common.Address, _ int) any { return address })
}
