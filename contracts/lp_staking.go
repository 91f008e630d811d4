package contracts

import (
	"context"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/shopspring/decimal"
)

// LPStakedBalance splits a stake by whether it earns rewards in the current epoch.
type LPStakedBalance struct {
	Pending        decimal.Decimal `json:"pending"`
	EarningRewards decimal.Decimal `json:"earningRewards"`
	Total          decimal.Decimal `json:"total"`
}

type EpochDetails struct {
	ID           *big.Int `json:"id"`
	StartSeconds *big.Int `json:"startSeconds"`
	EndSeconds   *big.Int `json:"endSeconds"`
}

// LPStaking is a liquidity pool staking contract. Stakes are in LP token units,
// rewards in reward token units. Both tokens are discovered from the contract.
type LPStaking struct {
	base
	address   common.Address
	bindToken Binder
	deps      Deps

	lpToken     lazyToken
	rewardToken lazyToken
}

type lazyToken struct {
	mu     sync.Mutex
	method string
	token  *Token
}

func NewLPStaking(address common.Address, contract Contract, bindToken Binder, deps Deps) *LPStaking {
	s := &LPStaking{
		address:     address,
		bindToken:   bindToken,
		lpToken:     lazyToken{method: "trusted_lp_token"},
		rewardToken: lazyToken{method: "trusted_reward_token"},
	}
	s.base = newBase("lp_staking", contract, nil, deps)
	s.deps = deps
	s.deps.Tracker = s.tracker
	s.deps.Metrics = s.metrics
	s.scaler = decimals.NewScaler(func(ctx context.Context) (uint8, error) {
		lp, err := s.LPToken(ctx)
		if err != nil {
			return 0, errors.WithStack(err)
		}
		return lp.Scaler().Decimals(ctx)
	})
	return s
}

func (s *LPStaking) Address() common.Address {
	return s.address
}

// LPToken returns the staked liquidity token.
func (s *LPStaking) LPToken(ctx context.Context) (*Token, error) {
	return s.resolveToken(ctx, &s.lpToken)
}

// RewardToken returns the token rewards are paid in.
func (s *LPStaking) RewardToken(ctx context.Context) (*Token, error) {
	return s.resolveToken(ctx, &s.rewardToken)
}

func (s *LPStaking) resolveToken(ctx context.Context, lazy *lazyToken) (*Token, error) {
	lazy.mu.Lock()
	defer lazy.mu.Unlock()
	if lazy.token != nil {
		return lazy.token, nil
	}

	address, err := s.callAddress(ctx, lazy.method)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	lazy.token = NewToken(s.bindToken(address), s.deps)
	return lazy.token, nil
}

func (s *LPStaking) SLPContractAddress(ctx context.Context) (common.Address, error) {
	return s.callAddress(ctx, s.lpToken.method)
}

func (s *LPStaking) AwardContractAddress(ctx context.Context) (common.Address, error) {
	return s.callAddress(ctx, s.rewardToken.method)
}

func (s *LPStaking) CurrentEpoch(ctx context.Context) (*big.Int, error) {
	return s.callBigInt(ctx, "get_current_epoch_number")
}

func (s *LPStaking) StakingStart(ctx context.Context) (*big.Int, error) {
	return s.callBigInt(ctx, "staking_start")
}

// CurrentEpochDetails returns the current epoch and its bounds in unix seconds.
func (s *LPStaking) CurrentEpochDetails(ctx context.Context) (EpochDetails, error) {
	id, err := s.CurrentEpoch(ctx)
	if err != nil {
		return EpochDetails{}, errors.WithStack(err)
	}
	start, err := s.StakingStart(ctx)
	if err != nil {
		return EpochDetails{}, errors.WithStack(err)
	}
	epochSeconds, err := s.callBigInt(ctx, "epoch_seconds")
	if err != nil {
		return EpochDetails{}, errors.WithStack(err)
	}

	startSeconds := new(big.Int).Mul(id, epochSeconds)
	startSeconds.Add(startSeconds, start)
	return EpochDetails{
		ID:           id,
		StartSeconds: startSeconds,
		EndSeconds:   new(big.Int).Add(startSeconds, epochSeconds),
	}, nil
}

// StakedBalance returns the stake of account. A stake added in the current
// epoch is pending and only earns rewards from the next epoch.
func (s *LPStaking) StakedBalance(ctx context.Context, account common.Address) (LPStakedBalance, error) {
	user, err := s.call(ctx, "users", account)
	if err != nil {
		return LPStakedBalance{}, errors.WithStack(err)
	}
	lastEpochWithdrawn, err := outputBigInt(user, 1, "users")
	if err != nil {
		return LPStakedBalance{}, errors.WithStack(err)
	}
	epoch, err := s.CurrentEpoch(ctx)
	if err != nil {
		return LPStakedBalance{}, errors.WithStack(err)
	}
	total, err := s.callDecimal(ctx, "total_staked_for_user", account)
	if err != nil {
		return LPStakedBalance{}, errors.WithStack(err)
	}

	if epoch.Cmp(lastEpochWithdrawn) == 0 {
		return LPStakedBalance{Pending: total, EarningRewards: decimal.Zero, Total: total}, nil
	}
	return LPStakedBalance{Pending: decimal.Zero, EarningRewards: total, Total: total}, nil
}

// RewardsBalance returns the rewards account can withdraw, in reward token units.
// The contract reverts while account has nothing staked, which reads as zero.
func (s *LPStaking) RewardsBalance(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	reward, err := s.RewardToken(ctx)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	amount, err := s.callScaled(ctx, reward.Scaler(), "get_available_reward", account)
	if errors.Is(err, errs.Reverted) {
		logger.DebugContext(ctx, "No rewards available", slogx.Stringer("account", account), slogx.Error(err))
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return amount, nil
}

// RewardPerEpoch returns the rewards paid out per epoch, in reward token units.
func (s *LPStaking) RewardPerEpoch(ctx context.Context) (decimal.Decimal, error) {
	reward, err := s.RewardToken(ctx)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return s.callScaled(ctx, reward.Scaler(), "epoch_reward")
}

// LiquidityTokensInRewardPool returns the LP tokens held by the staking contract.
func (s *LPStaking) LiquidityTokensInRewardPool(ctx context.Context) (decimal.Decimal, error) {
	return s.TotalUnstaked(ctx, s.address)
}

func (s *LPStaking) TotalStaked(ctx context.Context) (decimal.Decimal, error) {
	return s.callDecimal(ctx, "total_staked")
}

// TotalUnstaked returns the LP tokens account holds outside the staking contract.
func (s *LPStaking) TotalUnstaked(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	lp, err := s.LPToken(ctx)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return lp.BalanceOf(ctx, account)
}

// Allowance returns how many LP tokens of account the staking contract may transfer.
func (s *LPStaking) Allowance(ctx context.Context, account common.Address) (decimal.Decimal, error) {
	lp, err := s.LPToken(ctx)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return lp.Allowance(ctx, account, s.address)
}

// Approve approves spender on the LP token.
func (s *LPStaking) Approve(ctx context.Context, opts *bind.TransactOpts, spender common.Address) (*Submission, error) {
	lp, err := s.LPToken(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return lp.Approve(ctx, opts, spender)
}

// Stake stakes amount of LP tokens. A stake can't be topped up; Unstake first.
func (s *LPStaking) Stake(ctx context.Context, opts *bind.TransactOpts, amount decimal.Decimal) (*Submission, error) {
	raw, err := s.toRaw(ctx, s.scaler, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return s.submit(ctx, opts, s.confirmations, "stake", raw)
}

// Unstake withdraws the whole stake along with its rewards.
func (s *LPStaking) Unstake(ctx context.Context, opts *bind.TransactOpts) (*Submission, error) {
	return s.submit(ctx, opts, s.confirmations, "unstake")
}

func (s *LPStaking) WithdrawRewards(ctx context.Context, opts *bind.TransactOpts) (*Submission, error) {
	return s.submit(ctx, opts, s.confirmations, "withdraw_rewards")
}
