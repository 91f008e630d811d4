package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
network: testnet
logger:
  output: json
ethereum:
  rpc_url: http://localhost:8545
  poll_interval: 2s
contracts:
  vesting: "0x0000000000000000000000000000000000000abc"
tracker:
  confirmations: 3
  preserve_position: true
http_server:
  port: 9000
`)

	conf, err := load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, common.NetworkTestnet, conf.Network)
	assert.Equal(t, "json", conf.Logger.Output)
	assert.Equal(t, "http://localhost:8545", conf.Ethereum.RPCURL)
	assert.Equal(t, 2*time.Second, conf.Ethereum.PollInterval)
	assert.Equal(t, 3, conf.Tracker.Confirmations)
	assert.True(t, conf.Tracker.PreservePosition)
	assert.True(t, conf.Tracker.Watch, "unset keys keep their default")
	assert.Equal(t, 9000, conf.HTTPServer.Port)

	addresses, err := conf.Contracts.Resolve(conf.Network)
	require.NoError(t, err)
	assert.Equal(t, gethcommon.HexToAddress("0xabc"), addresses.Vesting)
	assert.Equal(t, common.NetworkTestnet.Contracts().VegaToken, addresses.VegaToken)
}

func TestLoadDefaults(t *testing.T) {
	conf, err := load(viper.New(), writeConfig(t, "{}"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), conf)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("unsupported_network", func(t *testing.T) {
		_, err := load(viper.New(), writeConfig(t, "network: moonnet"))
		assert.True(t, errors.Is(err, errs.Unsupported))
	})

	t.Run("confirmations", func(t *testing.T) {
		_, err := load(viper.New(), writeConfig(t, "tracker:\n  confirmations: 0"))
		assert.True(t, errors.Is(err, errs.InvalidArgument))
	})

	t.Run("address_override", func(t *testing.T) {
		_, err := load(viper.New(), writeConfig(t, "contracts:\n  staking_bridge: nope"))
		assert.True(t, errors.Is(err, errs.InvalidArgument))
	})
}

func TestLPStakingAddresses(t *testing.T) {
	c := ContractsConfig{LPStaking: []string{"0x0000000000000000000000000000000000000001"}}
	addresses, err := c.LPStakingAddresses()
	require.NoError(t, err)
	assert.Equal(t, []gethcommon.Address{gethcommon.HexToAddress("0x01")}, addresses)

	c.LPStaking = append(c.LPStaking, "0x1")
	_, err = c.LPStakingAddresses()
	assert.True(t, errors.Is(err, errs.InvalidArgument))
}
