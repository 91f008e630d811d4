package config

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	gethcommon "github.com/ethereum/go-ethereum/common"
)

// Resolve returns the contract addresses of network with the configured overrides applied.
func (c ContractsConfig) Resolve(network common.Network) (common.ContractAddresses, error) {
	addresses := network.Contracts()
	overrides := []struct {
		key    string
		value  string
		target *gethcommon.Address
	}{
		{"contracts.vega_token", c.VegaToken, &addresses.VegaToken},
		{"contracts.vesting", c.Vesting, &addresses.Vesting},
		{"contracts.staking_bridge", c.StakingBridge, &addresses.StakingBridge},
		{"contracts.erc20_bridge", c.ERC20Bridge, &addresses.ERC20Bridge},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		address, err := parseAddress(o.key, o.value)
		if err != nil {
			return common.ContractAddresses{}, errors.WithStack(err)
		}
		*o.target = address
	}
	return addresses, nil
}

// LPStakingAddresses parses the configured LP staking contracts.
func (c ContractsConfig) LPStakingAddresses() ([]gethcommon.Address, error) {
	addresses := make([]gethcommon.Address, 0, len(c.LPStaking))
	for _, value := range c.LPStaking {
		address, err := parseAddress("contracts.lp_staking", value)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

func parseAddress(key, value string) (gethcommon.Address, error) {
	if !gethcommon.IsHexAddress(value) {
		return gethcommon.Address{}, errors.Wrapf(errs.InvalidArgument, "%s: %q is not an address", key, value)
	}
	return gethcommon.HexToAddress(value), nil
}
