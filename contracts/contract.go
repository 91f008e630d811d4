package contracts

import (
	"context"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/core/stakes"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/internal/metrics"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/shopspring/decimal"
)

// DefaultConfirmations is the confirmation depth submitted transactions are tracked to.
const DefaultConfirmations = 1

// Contract is a contract binding. It is satisfied by *bind.BoundContract.
type Contract interface {
	Call(opts *bind.CallOpts, results *[]any, method string, params ...any) error
	Transact(opts *bind.TransactOpts, method string, params ...any) (*types.Transaction, error)
	FilterLogs(opts *bind.FilterOpts, name string, query ...[]any) (chan types.Log, event.Subscription, error)
	WatchLogs(opts *bind.WatchOpts, name string, query ...[]any) (chan types.Log, event.Subscription, error)
}

var _ Contract = (*bind.BoundContract)(nil)

// Waiter resolves handles to wait for submitted transactions.
type Waiter interface {
	TransactionHandle(ctx context.Context, hash common.Hash) (txtracker.Handle, error)
}

// Binder binds an ERC20 token found at runtime, such as the LP staking tokens.
type Binder func(address common.Address) Contract

// Deps are the collaborators shared by all facades.
type Deps struct {
	Tracker *txtracker.Tracker
	Waiter  Waiter
	Metrics *metrics.Metrics

	// Confirmations is the depth submitted transactions are tracked to.
	// Defaults to DefaultConfirmations.
	Confirmations int
}

// Submission is a state changing call sent to the network. Done receives the
// result of tracking the transaction to the required confirmations.
type Submission struct {
	Transaction *types.Transaction
	Done        <-chan error
}

// Wait blocks until the transaction is tracked to the required confirmations.
func (s *Submission) Wait(ctx context.Context) error {
	select {
	case err := <-s.Done:
		return errors.WithStack(err)
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// base holds what every facade shares: the binding, the unit scaler and the tracker.
type base struct {
	name     string
	contract Contract
	scaler   *decimals.Scaler

	tracker       *txtracker.Tracker
	waiter        Waiter
	metrics       *metrics.Metrics
	confirmations int
}

func newBase(name string, contract Contract, scaler *decimals.Scaler, deps Deps) base {
	b := base{
		name:          name,
		contract:      contract,
		scaler:        scaler,
		tracker:       deps.Tracker,
		waiter:        deps.Waiter,
		metrics:       deps.Metrics,
		confirmations: deps.Confirmations,
	}
	if b.tracker == nil {
		b.tracker = txtracker.New(deps.Waiter)
	}
	if b.metrics == nil {
		b.metrics = metrics.Nop()
	}
	if b.confirmations < 1 {
		b.confirmations = DefaultConfirmations
	}
	return b
}

// Tracker returns the tracker submitted transactions are tracked by.
func (b *base) Tracker() *txtracker.Tracker {
	return b.tracker
}

// Scaler returns the unit scaler of the amounts this contract deals in.
func (b *base) Scaler() *decimals.Scaler {
	return b.scaler
}

func (b *base) call(ctx context.Context, method string, params ...any) ([]any, error) {
	var out []any
	if err := b.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		if isReverted(err) {
			err = errors.Mark(err, errs.Reverted)
		}
		return nil, errors.Wrapf(err, "%s.%s", b.name, method)
	}
	return out, nil
}

func (b *base) callBigInt(ctx context.Context, method string, params ...any) (*big.Int, error) {
	out, err := b.call(ctx, method, params...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return outputBigInt(out, 0, method)
}

func (b *base) callAddress(ctx context.Context, method string, params ...any) (common.Address, error) {
	out, err := b.call(ctx, method, params...)
	if err != nil {
		return common.Address{}, errors.WithStack(err)
	}
	if len(out) == 0 {
		return common.Address{}, errors.Wrapf(errs.InternalError, "%s returned no output", method)
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// callDecimal calls a method returning a raw amount and scales it with the facade's scaler.
func (b *base) callDecimal(ctx context.Context, method string, params ...any) (decimal.Decimal, error) {
	return b.callScaled(ctx, b.scaler, method, params...)
}

func (b *base) callScaled(ctx context.Context, scaler *decimals.Scaler, method string, params ...any) (decimal.Decimal, error) {
	raw, err := b.callBigInt(ctx, method, params...)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	amount, err := scaler.ToDecimal(ctx, raw)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return amount, nil
}

// submit sends a transaction and starts tracking it to confirmations in the background.
func (b *base) submit(ctx context.Context, opts *bind.TransactOpts, confirmations int, method string, params ...any) (*Submission, error) {
	if opts == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "transact options are required")
	}
	txOpts := *opts
	if txOpts.Context == nil {
		txOpts.Context = ctx
	}

	tx, err := b.contract.Transact(&txOpts, method, params...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", b.name, method)
	}
	ctx = logger.WithContext(ctx,
		slogx.String("contract", b.name),
		slogx.String("method", method),
		slogx.Stringer("tx_hash", tx.Hash()),
	)
	logger.InfoContext(ctx, "Transaction submitted")

	if b.waiter == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "no transaction waiter configured")
	}
	h, err := b.waiter.TransactionHandle(ctx, tx.Hash())
	if err != nil {
		return nil, errors.Wrapf(err, "can't resolve submitted transaction %s", tx.Hash())
	}
	return &Submission{
		Transaction: tx,
		Done:        b.tracker.Go(ctx, h, confirmations),
	}, nil
}

// toRaw converts a decimal amount into the contract's integer units.
func (b *base) toRaw(ctx context.Context, scaler *decimals.Scaler, amount decimal.Decimal) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, errors.Wrapf(errs.InvalidArgument, "amount %s is negative", amount)
	}
	raw, err := scaler.ToBigInt(ctx, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return raw, nil
}

// filterLogs queries all past logs of a contract event and drains the result.
func (b *base) filterLogs(ctx context.Context, name string, query ...[]any) ([]types.Log, error) {
	logs, sub, err := b.contract.FilterLogs(&bind.FilterOpts{Context: ctx}, name, query...)
	if err != nil {
		return nil, errors.Wrapf(err, "can't filter %s logs", name)
	}
	defer sub.Unsubscribe()

	var result []types.Log
	for {
		select {
		case log := <-logs:
			result = append(result, log)
		case err := <-sub.Err():
			if err != nil {
				return nil, errors.Wrapf(err, "can't filter %s logs", name)
			}
			// the producer is done, collect what is still buffered
			for {
				select {
				case log := <-logs:
					result = append(result, log)
				default:
					return result, nil
				}
			}
		case <-ctx.Done():
			return nil, errors.WithStack(ctx.Err())
		}
	}
}

// watch tracks the transaction behind every new log of the given events.
// The returned subscription ends when any watcher fails or on Unsubscribe.
func (b *base) watch(ctx context.Context, names []string, query ...[]any) (event.Subscription, error) {
	type watcher struct {
		logs chan types.Log
		sub  event.Subscription
	}

	watchers := make([]watcher, 0, len(names))
	unsubscribeAll := func() {
		for _, w := range watchers {
			w.sub.Unsubscribe()
		}
	}
	for _, name := range names {
		logs, sub, err := b.contract.WatchLogs(&bind.WatchOpts{Context: ctx}, name, query...)
		if err != nil {
			unsubscribeAll()
			return nil, errors.Wrapf(err, "can't watch %s logs", name)
		}
		watchers = append(watchers, watcher{logs: logs, sub: sub})
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer unsubscribeAll()

		errc := make(chan error, len(watchers))
		for _, w := range watchers {
			go func() {
				for {
					select {
					case log := <-w.logs:
						go b.observe(ctx, log)
					case err := <-w.sub.Err():
						errc <- err
						return
					case <-quit:
						return
					}
				}
			}()
		}

		select {
		case err := <-errc:
			return errors.WithStack(err)
		case <-quit:
			return nil
		}
	}), nil
}

func (b *base) observe(ctx context.Context, log types.Log) {
	if err := b.tracker.ObserveEvent(ctx, log, b.confirmations); err != nil {
		logger.WarnContext(ctx, "Failed to track transaction of contract event",
			slogx.String("contract", b.name),
			slogx.Stringer("tx_hash", log.TxHash),
			slogx.Error(err),
		)
	}
}

func outputBigInt(out []any, i int, method string) (*big.Int, error) {
	if len(out) <= i {
		return nil, errors.Wrapf(errs.InternalError, "%s returned %d outputs, want at least %d", method, len(out), i+1)
	}
	raw, err := decimals.ParseRaw(out[i])
	if err != nil {
		return nil, errors.Wrapf(err, "%s output %d", method, i)
	}
	return raw, nil
}

// isReverted reports whether a call failed because the contract reverted.
func isReverted(err error) bool {
	if errors.Is(err, vm.ErrExecutionReverted) {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == 3 {
		return true
	}
	return strings.Contains(err.Error(), vm.ErrExecutionReverted.Error())
}

// vegaKeyParam converts a hex Vega public key into the bytes32 contract parameter.
func vegaKeyParam(vegaKey string) ([32]byte, error) {
	topic, err := stakes.VegaKeyTopic(vegaKey)
	if err != nil {
		return [32]byte{}, errors.WithStack(err)
	}
	return [32]byte(topic), nil
}
