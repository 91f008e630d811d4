package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/contracts"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/shopspring/decimal"
)

// StakeSource is a contract that stakes tokens against vega keys.
type StakeSource interface {
	UserTotalStakedByVegaKey(ctx context.Context, account common.Address) (map[string]decimal.Decimal, error)
}

type TokenSource interface {
	TokenData(ctx context.Context) (contracts.TokenData, error)
}

// LPPool is a liquidity pool staking contract.
type LPPool interface {
	StakedBalance(ctx context.Context, account common.Address) (contracts.LPStakedBalance, error)
	RewardsBalance(ctx context.Context, account common.Address) (decimal.Decimal, error)
	CurrentEpochDetails(ctx context.Context) (contracts.EpochDetails, error)
}

type Usecase struct {
	staking  StakeSource
	vesting  StakeSource
	token    TokenSource
	pools    map[common.Address]LPPool
	tracker  *txtracker.Tracker
	resolver txtracker.Resolver

	// confirmations is the depth transactions tracked on request are followed to.
	confirmations int
}

type Deps struct {
	Staking       StakeSource
	Vesting       StakeSource
	Token         TokenSource
	Pools         map[common.Address]LPPool
	Tracker       *txtracker.Tracker
	Resolver      txtracker.Resolver
	Confirmations int
}

func New(deps Deps) *Usecase {
	if deps.Confirmations < 1 {
		deps.Confirmations = contracts.DefaultConfirmations
	}
	return &Usecase{
		staking:       deps.Staking,
		vesting:       deps.Vesting,
		token:         deps.Token,
		pools:         deps.Pools,
		tracker:       deps.Tracker,
		resolver:      deps.Resolver,
		confirmations: deps.Confirmations,
	}
}
