package httphandler

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gcommon "github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/contracts"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/modules/staking/usecase"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/gaze-network/vega-contracts/pkg/errorhandler"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stakeSource map[string]decimal.Decimal

func (s stakeSource) UserTotalStakedByVegaKey(context.Context, common.Address) (map[string]decimal.Decimal, error) {
	return s, nil
}

type tokenSource struct{}

func (tokenSource) TokenData(context.Context) (contracts.TokenData, error) {
	return contracts.TokenData{TotalSupply: decimals.MustFromString("1000.5"), Decimals: 18}, nil
}

type pool struct{}

func (pool) StakedBalance(context.Context, common.Address) (contracts.LPStakedBalance, error) {
	return contracts.LPStakedBalance{Pending: decimals.MustFromString("1"), EarningRewards: decimal.Zero, Total: decimals.MustFromString("1")}, nil
}

func (pool) RewardsBalance(context.Context, common.Address) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (pool) CurrentEpochDetails(context.Context) (contracts.EpochDetails, error) {
	return contracts.EpochDetails{ID: big.NewInt(2), StartSeconds: big.NewInt(20), EndSeconds: big.NewInt(30)}, nil
}

// handle confirms instantly at block 7.
type handle common.Hash

func (h handle) Hash() common.Hash {
	return common.Hash(h)
}

func (h handle) Wait(context.Context, int) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7)}, nil
}

type resolver struct{}

func (resolver) TransactionHandle(_ context.Context, hash common.Hash) (txtracker.Handle, error) {
	return handle(hash), nil
}

var (
	poolAddress = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	userAddress = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	txHash      = common.HexToHash("0x01")
)

func newApp(t *testing.T) (*fiber.App, *txtracker.Tracker) {
	t.Helper()
	tracker := txtracker.New(resolver{})
	uc := usecase.New(usecase.Deps{
		Staking:  stakeSource{"aa": decimals.MustFromString("1.5")},
		Vesting:  stakeSource{"aa": decimals.MustFromString("0.5"), "bb": decimals.MustFromString("3")},
		Token:    tokenSource{},
		Pools:    map[common.Address]usecase.LPPool{poolAddress: pool{}},
		Tracker:  tracker,
		Resolver: resolver{},
	})
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(context.Background(), gcommon.NetworkTestnet, uc).Mount(app))
	return app, tracker
}

func request[T any](t *testing.T, app *fiber.App, method, target string) (int, gcommon.HttpResponse[T]) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var result gcommon.HttpResponse[T]
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.Unmarshal(body, &result), string(body))
	}
	return resp.StatusCode, result
}

func TestGetStakes(t *testing.T) {
	app, _ := newApp(t)

	status, resp := request[getStakesResult](t, app, http.MethodGet, "/v1/stakes/"+userAddress.Hex())
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, userAddress, resp.Result.Address)
	assert.Equal(t, "2", resp.Result.Total["aa"].String())
	assert.Equal(t, "3", resp.Result.Total["bb"].String())
	assert.Equal(t, "1.5", resp.Result.Staking["aa"].String())

	t.Run("invalid_address", func(t *testing.T) {
		status, resp := request[getStakesResult](t, app, http.MethodGet, "/v1/stakes/0x1234")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Nil(t, resp.Result)
	})
}

func TestGetToken(t *testing.T) {
	app, _ := newApp(t)

	status, resp := request[getTokenResult](t, app, http.MethodGet, "/v1/token")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, gcommon.NetworkTestnet, resp.Result.Network)
	assert.Equal(t, uint8(18), resp.Result.Decimals)
	assert.Equal(t, "1000.5", resp.Result.TotalSupply.String())
}

func TestTransactions(t *testing.T) {
	app, tracker := newApp(t)

	status, _ := request[transaction](t, app, http.MethodGet, "/v1/transactions/"+txHash.Hex())
	assert.Equal(t, http.StatusNotFound, status)

	status, resp := request[transaction](t, app, http.MethodPost, "/v1/transactions/"+txHash.Hex())
	require.Equal(t, http.StatusAccepted, status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, txHash, resp.Result.Hash)
	assert.Equal(t, contracts.DefaultConfirmations, resp.Result.RequiredConfirmations)

	assert.Eventually(t, func() bool {
		tx, ok := tracker.Get(txHash)
		return ok && !tx.Pending
	}, time.Second, 5*time.Millisecond)

	status, resp = request[transaction](t, app, http.MethodGet, "/v1/transactions/"+txHash.Hex())
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Result.Pending)
	assert.Equal(t, uint64(7), *resp.Result.BlockNumber)
	assert.Equal(t, types.ReceiptStatusSuccessful, *resp.Result.Status)

	t.Run("list", func(t *testing.T) {
		status, resp := request[getTransactionsResult](t, app, http.MethodGet, "/v1/transactions")
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, resp.Result.List, 1)

		status, resp = request[getTransactionsResult](t, app, http.MethodGet, "/v1/transactions?pending=true")
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, resp.Result.List)
	})

	t.Run("invalid_hash", func(t *testing.T) {
		status, _ := request[transaction](t, app, http.MethodGet, "/v1/transactions/0xzz")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestGetLPPosition(t *testing.T) {
	app, _ := newApp(t)

	status, resp := request[getLPPositionResult](t, app, http.MethodGet, "/v1/lp/"+poolAddress.Hex()+"/"+userAddress.Hex())
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "1", resp.Result.Pending.String())
	assert.Equal(t, uint64(2), resp.Result.Epoch.ID)
	assert.Equal(t, uint64(30), resp.Result.Epoch.EndSeconds)

	t.Run("unknown_pool", func(t *testing.T) {
		status, _ := request[getLPPositionResult](t, app, http.MethodGet, "/v1/lp/"+userAddress.Hex()+"/"+userAddress.Hex())
		assert.Equal(t, http.StatusNotFound, status)
	})
}
