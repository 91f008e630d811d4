package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/contracts"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type LPPosition struct {
	Staked  contracts.LPStakedBalance
	Rewards decimal.Decimal
	Epoch   contracts.EpochDetails
}

// GetLPPosition returns the stake and pending rewards of account in a configured pool.
func (u *Usecase) GetLPPosition(ctx context.Context, pool, account common.Address) (LPPosition, error) {
	lp, ok := u.pools[pool]
	if !ok {
		return LPPosition{}, errors.Wrapf(errs.NotFound, "liquidity pool %s is not configured", pool)
	}

	var position LPPosition
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		position.Staked, err = lp.StakedBalance(gctx, account)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		position.Rewards, err = lp.RewardsBalance(gctx, account)
		return errors.WithStack(err)
	})
	group.Go(func() (err error) {
		position.Epoch, err = lp.CurrentEpochDetails(gctx)
		return errors.WithStack(err)
	})
	if err := group.Wait(); err != nil {
		return LPPosition{}, errors.Wrapf(err, "can't get position in liquidity pool %s", pool)
	}
	return position, nil
}
