package contracts

import (
	"maps"
	"strings"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/gaze-network/vega-contracts/core/stakes"
)

const ERC20ABI = `[
	{"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"sender","type":"address"},{"name":"recipient","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"anonymous":false,"type":"event","name":"Transfer","inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}]},
	{"anonymous":false,"type":"event","name":"Approval","inputs":[{"indexed":true,"name":"owner","type":"address"},{"indexed":true,"name":"spender","type":"address"},{"indexed":false,"name":"value","type":"uint256"}]}
]`

// StakingBridgeABI holds the staking bridge functions. The stake events are
// merged in from the stakes package.
const StakingBridgeABI = `[
	{"type":"function","name":"stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"remove_stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"transfer_stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"new_address","type":"address"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"stake_balance","stateMutability":"view","inputs":[{"name":"target","type":"address"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"total_staked","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"staking_token","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`

const VestingABI = `[
	{"type":"function","name":"stake_tokens","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"remove_stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[]},
	{"type":"function","name":"stake_balance","stateMutability":"view","inputs":[{"name":"target","type":"address"},{"name":"vega_public_key","type":"bytes32"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"total_staked","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"user_stats","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"total_in_all_tranches","type":"uint256"},{"name":"lien","type":"uint256"}]},
	{"type":"function","name":"get_tranche_balance","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"tranche_id","type":"uint8"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"get_vested_for_tranche","stateMutability":"view","inputs":[{"name":"user","type":"address"},{"name":"tranche_id","type":"uint8"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"user_total_all_tranches","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"withdraw_from_tranche","stateMutability":"nonpayable","inputs":[{"name":"tranche_id","type":"uint8"}],"outputs":[]}
]`

const ERC20BridgeABI = `[
	{"type":"function","name":"withdraw_asset","stateMutability":"nonpayable","inputs":[{"name":"asset_source","type":"address"},{"name":"amount","type":"uint256"},{"name":"target","type":"address"},{"name":"nonce","type":"uint256"},{"name":"signatures","type":"bytes"}],"outputs":[]}
]`

const LPStakingABI = `[
	{"type":"function","name":"trusted_lp_token","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"trusted_reward_token","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"get_current_epoch_number","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"staking_start","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"epoch_seconds","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"epoch_reward","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"users","stateMutability":"view","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"total_staked","type":"uint256"},{"name":"last_epoch_withdrawn","type":"uint256"}]},
	{"type":"function","name":"total_staked_for_user","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"get_available_reward","stateMutability":"view","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"total_staked","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"stake","stateMutability":"nonpayable","inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"unstake","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"withdraw_rewards","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

var (
	erc20ABI         = mustParseABI(ERC20ABI)
	stakingBridgeABI = withStakeEvents(mustParseABI(StakingBridgeABI))
	vestingABI       = withStakeEvents(mustParseABI(VestingABI))
	erc20BridgeABI   = mustParseABI(ERC20BridgeABI)
	lpStakingABI     = mustParseABI(LPStakingABI)
)

func mustParseABI(definition string) abi.ABI {
	return utils.Must(abi.JSON(strings.NewReader(definition)))
}

func withStakeEvents(parsed abi.ABI) abi.ABI {
	events := mustParseABI(stakes.EventsABI)
	maps.Copy(parsed.Events, events.Events)
	return parsed
}
