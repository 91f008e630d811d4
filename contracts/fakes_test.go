package contracts

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gaze-network/vega-contracts/core/stakes"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	method string
	params []any
}

// fakeContract answers calls from canned outputs and records transactions.
type fakeContract struct {
	mu       sync.Mutex
	outputs  map[string][]any
	failures map[string]error
	logs     map[string][]types.Log
	watchers map[string]chan types.Log

	calls   []fakeCall
	sent    []fakeCall
	queries map[string][][]any
}

func newFakeContract() *fakeContract {
	return &fakeContract{
		outputs:  make(map[string][]any),
		failures: make(map[string]error),
		logs:     make(map[string][]types.Log),
		watchers: make(map[string]chan types.Log),
		queries:  make(map[string][][]any),
	}
}

func (c *fakeContract) on(method string, outputs ...any) *fakeContract {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outputs[method] = outputs
	return c
}

func (c *fakeContract) fail(method string, err error) *fakeContract {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[method] = err
	return c
}

func (c *fakeContract) Call(_ *bind.CallOpts, results *[]any, method string, params ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fakeCall{method: method, params: params})
	if err, ok := c.failures[method]; ok {
		return err
	}
	outputs, ok := c.outputs[method]
	if !ok {
		return errors.Newf("unexpected call to %s", method)
	}
	*results = outputs
	return nil
}

func (c *fakeContract) Transact(_ *bind.TransactOpts, method string, params ...any) (*types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err, ok := c.failures[method]; ok {
		return nil, err
	}
	c.sent = append(c.sent, fakeCall{method: method, params: params})
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(c.sent)), Data: []byte(method)}), nil
}

func (c *fakeContract) FilterLogs(_ *bind.FilterOpts, name string, query ...[]any) (chan types.Log, event.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries[name] = query
	logs := make(chan types.Log, len(c.logs[name]))
	for _, log := range c.logs[name] {
		logs <- log
	}
	return logs, event.NewSubscription(func(<-chan struct{}) error { return nil }), nil
}

func (c *fakeContract) WatchLogs(_ *bind.WatchOpts, name string, query ...[]any) (chan types.Log, event.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries[name] = query
	logs := make(chan types.Log)
	c.watchers[name] = logs
	return logs, event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		return nil
	}), nil
}

func (c *fakeContract) callCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.method == method {
			n++
		}
	}
	return n
}

func (c *fakeContract) lastSent(t *testing.T) fakeCall {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.sent, "no transaction sent")
	return c.sent[len(c.sent)-1]
}

func (c *fakeContract) watcher(name string) chan types.Log {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.watchers[name]
}

// instantWaiter confirms every transaction as soon as it is waited on.
type instantWaiter struct{}

func (instantWaiter) TransactionHandle(_ context.Context, hash common.Hash) (txtracker.Handle, error) {
	return instantHandle(hash), nil
}

type instantHandle common.Hash

func (h instantHandle) Hash() common.Hash { return common.Hash(h) }

func (h instantHandle) Wait(context.Context, int) (*types.Receipt, error) {
	return &types.Receipt{TxHash: common.Hash(h), Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
}

func testDeps() Deps {
	return Deps{Tracker: txtracker.New(instantWaiter{}), Waiter: instantWaiter{}}
}

func testOpts() *bind.TransactOpts {
	return &bind.TransactOpts{From: common.HexToAddress("0x00000000000000000000000000000000000000f0")}
}

const testVegaKey = "f0b40ebdc5b92cf2cf82ff5d0c3f94085d23d5ec2d37d0b929e177c6d4d37e4c"

func testVegaKeyBytes(t *testing.T) [32]byte {
	t.Helper()
	key, err := stakes.VegaKeyTopic(testVegaKey)
	require.NoError(t, err)
	return [32]byte(key)
}

// stakeLog builds a Stake_Deposited or Stake_Removed log as the contract emits it.
func stakeLog(t *testing.T, name string, user common.Address, amount int64, txHash common.Hash) types.Log {
	t.Helper()
	ev := stakingBridgeABI.Events[name]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(amount))
	require.NoError(t, err)
	return types.Log{
		Topics: []common.Hash{ev.ID, common.BytesToHash(user.Bytes()), common.Hash(testVegaKeyBytes(t))},
		Data:   data,
		TxHash: txHash,
	}
}

func wait(t *testing.T, s *Submission) {
	t.Helper()
	require.NotNil(t, s)
	require.NoError(t, s.Wait(context.Background()))
}
