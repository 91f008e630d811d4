package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
)

func (u *Usecase) GetTransactions() []txtracker.TrackedTransaction {
	return u.tracker.Transactions()
}

func (u *Usecase) GetTransaction(hash common.Hash) (txtracker.TrackedTransaction, error) {
	tx, ok := u.tracker.Get(hash)
	if !ok {
		return txtracker.TrackedTransaction{}, errors.Wrapf(errs.NotFound, "transaction %s is not tracked", hash)
	}
	return tx, nil
}

// TrackTransaction starts following a transaction until it has the configured
// confirmations. Tracking continues after ctx is done; it stops with trackCtx.
// An already tracked transaction is returned as is.
func (u *Usecase) TrackTransaction(ctx, trackCtx context.Context, hash common.Hash) (txtracker.TrackedTransaction, error) {
	if tx, ok := u.tracker.Get(hash); ok {
		return tx, nil
	}
	if u.resolver == nil {
		return txtracker.TrackedTransaction{}, errors.Wrap(errs.Unsupported, "transaction tracking is not available")
	}

	h, err := u.resolver.TransactionHandle(ctx, hash)
	if err != nil {
		return txtracker.TrackedTransaction{}, errors.Wrapf(err, "can't resolve transaction %s", hash)
	}
	done, err := u.tracker.TrackIfAbsent(trackCtx, h, u.confirmations)
	if err != nil {
		return txtracker.TrackedTransaction{}, errors.WithStack(err)
	}
	// nil when a concurrent request claimed the transaction first
	if done != nil {
		go func() {
			if err := <-done; err != nil {
				logger.WarnContext(trackCtx, "Transaction tracking failed", slogx.Stringer("tx_hash", hash), slogx.Error(err))
			}
		}()
	}

	tx, _ := u.tracker.Get(hash)
	return tx, nil
}
