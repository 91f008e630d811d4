package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/contracts"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Stakes is the net stake of an account per vega key, by contract.
type Stakes struct {
	Staking map[string]decimal.Decimal
	Vesting map[string]decimal.Decimal

	// Total sums both contracts per vega key.
	Total map[string]decimal.Decimal
}

func (u *Usecase) GetStakes(ctx context.Context, account common.Address) (Stakes, error) {
	var stakes Stakes
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		stakes.Staking, err = u.staking.UserTotalStakedByVegaKey(gctx, account)
		return errors.Wrap(err, "staking bridge")
	})
	group.Go(func() (err error) {
		stakes.Vesting, err = u.vesting.UserTotalStakedByVegaKey(gctx, account)
		return errors.Wrap(err, "vesting")
	})
	if err := group.Wait(); err != nil {
		return Stakes{}, errors.WithStack(err)
	}

	stakes.Total = make(map[string]decimal.Decimal, len(stakes.Staking)+len(stakes.Vesting))
	for _, m := range []map[string]decimal.Decimal{stakes.Staking, stakes.Vesting} {
		for key, amount := range m {
			stakes.Total[key] = stakes.Total[key].Add(amount)
		}
	}
	return stakes, nil
}

func (u *Usecase) GetTokenData(ctx context.Context) (contracts.TokenData, error) {
	data, err := u.token.TokenData(ctx)
	if err != nil {
		return contracts.TokenData{}, errors.Wrap(err, "can't get token data")
	}
	return data, nil
}
