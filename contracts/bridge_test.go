package contracts

import (
	"context"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeWithdraw(t *testing.T) {
	contract := newFakeContract()
	bridge := NewBridge(contract, testDeps())

	approval := WithdrawApproval{
		AssetSource:   common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Amount:        big.NewInt(123456789),
		Nonce:         big.NewInt(42),
		Signatures:    []byte{0xde, 0xad},
		TargetAddress: common.HexToAddress("0x0000000000000000000000000000000000000002"),
	}
	submission, err := bridge.Withdraw(context.Background(), testOpts(), approval)
	require.NoError(t, err)
	wait(t, submission)

	sent := contract.lastSent(t)
	assert.Equal(t, "withdraw_asset", sent.method)
	assert.Equal(t, []any{
		approval.AssetSource,
		approval.Amount,
		approval.TargetAddress,
		approval.Nonce,
		approval.Signatures,
	}, sent.params)
	assert.Equal(t, int64(123456789), sent.params[1].(*big.Int).Int64(), "amount must not be rescaled")
}

func TestBridgeWithdrawInvalid(t *testing.T) {
	contract := newFakeContract()
	bridge := NewBridge(contract, testDeps())

	_, err := bridge.Withdraw(context.Background(), testOpts(), WithdrawApproval{Nonce: big.NewInt(1)})
	assert.True(t, errors.Is(err, errs.InvalidArgument))

	_, err = bridge.Withdraw(context.Background(), testOpts(), WithdrawApproval{Amount: big.NewInt(1)})
	assert.True(t, errors.Is(err, errs.InvalidArgument))
	assert.Empty(t, contract.sent)
}
