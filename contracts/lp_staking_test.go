package contracts

import (
	"context"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testPoolAddress   = common.HexToAddress("0x0000000000000000000000000000000000000100")
	testLPAddress     = common.HexToAddress("0x0000000000000000000000000000000000000101")
	testRewardAddress = common.HexToAddress("0x0000000000000000000000000000000000000102")
)

type lpFixture struct {
	pool   *fakeContract
	lp     *fakeContract
	reward *fakeContract
	bound  map[common.Address]int
	s      *LPStaking
}

func newLPFixture() *lpFixture {
	f := &lpFixture{
		pool: newFakeContract().
			on("trusted_lp_token", testLPAddress).
			on("trusted_reward_token", testRewardAddress),
		lp:     newFakeContract().on("decimals", uint8(18)),
		reward: newFakeContract().on("decimals", uint8(6)),
		bound:  make(map[common.Address]int),
	}
	binder := func(address common.Address) Contract {
		f.bound[address]++
		if address == testLPAddress {
			return f.lp
		}
		return f.reward
	}
	f.s = NewLPStaking(testPoolAddress, f.pool, binder, testDeps())
	return f
}

func TestLPStakedBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("pending_in_current_epoch", func(t *testing.T) {
		f := newLPFixture()
		f.pool.
			on("users", big.NewInt(0), big.NewInt(7)).
			on("get_current_epoch_number", big.NewInt(7)).
			on("total_staked_for_user", big.NewInt(3_000_000_000_000_000_000))

		balance, err := f.s.StakedBalance(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, "3", balance.Total.String())
		assert.Equal(t, "3", balance.Pending.String())
		assert.True(t, balance.EarningRewards.IsZero())
	})

	t.Run("earning_rewards", func(t *testing.T) {
		f := newLPFixture()
		f.pool.
			on("users", big.NewInt(0), big.NewInt(6)).
			on("get_current_epoch_number", big.NewInt(7)).
			on("total_staked_for_user", big.NewInt(3_000_000_000_000_000_000))

		balance, err := f.s.StakedBalance(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, "3", balance.EarningRewards.String())
		assert.True(t, balance.Pending.IsZero())
	})
}

func TestLPRewardsBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("available", func(t *testing.T) {
		f := newLPFixture()
		f.pool.on("get_available_reward", big.NewInt(1_500_000))

		rewards, err := f.s.RewardsBalance(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, "1.5", rewards.String())
	})

	t.Run("revert_means_no_stake", func(t *testing.T) {
		f := newLPFixture()
		f.pool.fail("get_available_reward", errors.Wrap(vm.ErrExecutionReverted, "call"))

		rewards, err := f.s.RewardsBalance(ctx, testUser)
		require.NoError(t, err)
		assert.True(t, rewards.IsZero())
	})

	t.Run("node_failure_is_returned", func(t *testing.T) {
		f := newLPFixture()
		nodeErr := errors.New("connection reset by peer")
		f.pool.fail("get_available_reward", nodeErr)

		_, err := f.s.RewardsBalance(ctx, testUser)
		assert.True(t, errors.Is(err, nodeErr))
		assert.False(t, errors.Is(err, errs.Reverted))
	})
}

func TestLPEpochDetails(t *testing.T) {
	f := newLPFixture()
	f.pool.
		on("get_current_epoch_number", big.NewInt(3)).
		on("staking_start", big.NewInt(1_000)).
		on("epoch_seconds", big.NewInt(100))

	details, err := f.s.CurrentEpochDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), details.ID.Int64())
	assert.Equal(t, int64(1_300), details.StartSeconds.Int64())
	assert.Equal(t, int64(1_400), details.EndSeconds.Int64())
}

func TestLPTokens(t *testing.T) {
	ctx := context.Background()
	f := newLPFixture()
	f.pool.
		on("total_staked", big.NewInt(5_000_000_000_000_000_000)).
		on("epoch_reward", big.NewInt(2_000_000))
	f.lp.
		on("balanceOf", big.NewInt(1_000_000_000_000_000_000)).
		on("allowance", big.NewInt(0))

	total, err := f.s.TotalStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5", total.String())

	perEpoch, err := f.s.RewardPerEpoch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", perEpoch.String())

	unstaked, err := f.s.TotalUnstaked(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "1", unstaked.String())

	pool, err := f.s.LiquidityTokensInRewardPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", pool.String())

	allowance, err := f.s.Allowance(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, allowance.IsZero())

	slp, err := f.s.SLPContractAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, testLPAddress, slp)
	award, err := f.s.AwardContractAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, testRewardAddress, award)

	assert.Equal(t, 1, f.bound[testLPAddress], "LP token must be bound once")
	assert.Equal(t, 1, f.bound[testRewardAddress], "reward token must be bound once")
	assert.Equal(t, 1, f.lp.callCount("decimals"))
}

func TestLPTransactions(t *testing.T) {
	ctx := context.Background()
	f := newLPFixture()

	submission, err := f.s.Stake(ctx, testOpts(), decimals.MustFromString("0.25"))
	require.NoError(t, err)
	wait(t, submission)
	sent := f.pool.lastSent(t)
	assert.Equal(t, "stake", sent.method)
	assert.Equal(t, "250000000000000000", sent.params[0].(*big.Int).String())

	submission, err = f.s.Unstake(ctx, testOpts())
	require.NoError(t, err)
	wait(t, submission)
	assert.Equal(t, "unstake", f.pool.lastSent(t).method)

	submission, err = f.s.WithdrawRewards(ctx, testOpts())
	require.NoError(t, err)
	wait(t, submission)
	assert.Equal(t, "withdraw_rewards", f.pool.lastSent(t).method)

	submission, err = f.s.Approve(ctx, testOpts(), testPoolAddress)
	require.NoError(t, err)
	wait(t, submission)
	sent = f.lp.lastSent(t)
	assert.Equal(t, "approve", sent.method)
	assert.Equal(t, testPoolAddress, sent.params[0])

	// approvals on the LP token share the pool's tracker
	assert.Len(t, f.s.Tracker().Transactions(), 4)
}
