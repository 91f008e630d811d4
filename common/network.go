package common

import (
	"os"

	gethcommon "github.com/ethereum/go-ethereum/common"
)

type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkTestnet  Network = "testnet"
	NetworkDevnet   Network = "devnet"
	NetworkStagnet  Network = "stagnet"
	NetworkStagnet2 Network = "stagnet2"
	NetworkCustom   Network = "custom"
)

// ContractAddresses is the set of deployed contracts on a network.
type ContractAddresses struct {
	VegaToken     gethcommon.Address
	Claim         gethcommon.Address
	Locked        gethcommon.Address
	Vesting       gethcommon.Address
	StakingBridge gethcommon.Address
	ERC20Bridge   gethcommon.Address
}

var contractAddresses = map[Network]ContractAddresses{
	NetworkDevnet: {
		VegaToken:     gethcommon.HexToAddress("0xc93137f9F4B820Ca85FfA3C7e84cCa6Ebc7bB517"),
		Claim:         gethcommon.HexToAddress("0x8Cef746ab7C83B61F6461cC92882bD61AB65a994"),
		Vesting:       gethcommon.HexToAddress("0xd751FF6264234cAfAE88e4BF6003878fAB9630a7"),
		StakingBridge: gethcommon.HexToAddress("0x3cCe40e1e47cedf76c03db3E48507f421b575523"),
		ERC20Bridge:   gethcommon.HexToAddress("0x042573A44C7ed0c03960ce505Bd60C6d90d23795"),
	},
	NetworkStagnet: {
		VegaToken:     gethcommon.HexToAddress("0x547cbA83a7eb82b546ee5C7ff0527F258Ba4546D"),
		Claim:         gethcommon.HexToAddress("0x8Cef746ab7C83B61F6461cC92882bD61AB65a994"),
		Vesting:       gethcommon.HexToAddress("0xfCe6eB272D3d4146A96bC28de71212b327F575fa"),
		StakingBridge: gethcommon.HexToAddress("0x7D88CD817227D599815d407D929af18Bb8D57176"),
		ERC20Bridge:   gethcommon.HexToAddress("0xc0835e6dEf177F8ba2561C4e4216827A3798c6B9"),
	},
	NetworkStagnet2: {
		VegaToken:     gethcommon.HexToAddress("0xd8fa193B93a179DdCf51FFFDe5320E0872cdcf44"),
		Claim:         gethcommon.HexToAddress("0x8Cef746ab7C83B61F6461cC92882bD61AB65a994"),
		Vesting:       gethcommon.HexToAddress("0x005F13184cf57B9EE49701c8D8c952534c36AcaB"),
		StakingBridge: gethcommon.HexToAddress("0xCee201E44ADe5400Ceb0d5924e0802244B6c40f7"),
		ERC20Bridge:   gethcommon.HexToAddress("0xEbabe46685157A43578DD63Edb0430ef48B5a5b0"),
	},
	NetworkTestnet: {
		VegaToken:     gethcommon.HexToAddress("0xDc335304979D378255015c33AbFf09B60c31EBAb"),
		Claim:         gethcommon.HexToAddress("0x8Cef746ab7C83B61F6461cC92882bD61AB65a994"),
		Vesting:       gethcommon.HexToAddress("0xe2deBB240b43EDfEBc9c38B67c0894B9A92Bf07c"),
		StakingBridge: gethcommon.HexToAddress("0xF5A3830F002BE78dd801214F5316b677E0355c60"),
		ERC20Bridge:   gethcommon.HexToAddress("0xF009C66c6afC9661143fD7cE1eDb02c1961a6510"),
	},
	NetworkMainnet: {
		VegaToken:     gethcommon.HexToAddress("0xcB84d72e61e383767C4DFEb2d8ff7f4FB89abc6e"),
		Claim:         gethcommon.HexToAddress("0x0ee1fb382caf98e86e97e51f9f42f8b4654020f3"),
		Locked:        gethcommon.HexToAddress("0x78344c7305d73a7a0ac3c94cd9960f4449a1814e"),
		Vesting:       gethcommon.HexToAddress("0x23d1bFE8fA50a167816fBD79D7932577c06011f4"),
		StakingBridge: gethcommon.HexToAddress("0x195064D33f09e0c42cF98E665D9506e0dC17de68"),
		ERC20Bridge:   gethcommon.HexToAddress("0xCd403f722b76366f7d609842C589906ca051310f"),
	},
}

func (n Network) IsSupported() bool {
	if n == NetworkCustom {
		return true
	}
	_, ok := contractAddresses[n]
	return ok
}

// Contracts returns the deployed contract addresses of the network.
// The custom network is read from the CUSTOM_* environment variables.
func (n Network) Contracts() ContractAddresses {
	if n == NetworkCustom {
		return ContractAddresses{
			VegaToken:     gethcommon.HexToAddress(os.Getenv("CUSTOM_TOKEN_ADDRESS")),
			Claim:         gethcommon.HexToAddress(os.Getenv("CUSTOM_CLAIM_ADDRESS")),
			Locked:        gethcommon.HexToAddress(os.Getenv("CUSTOM_LOCKED_ADDRESS")),
			Vesting:       gethcommon.HexToAddress(os.Getenv("CUSTOM_VESTING_ADDRESS")),
			StakingBridge: gethcommon.HexToAddress(os.Getenv("CUSTOM_STAKING_BRIDGE")),
			ERC20Bridge:   gethcommon.HexToAddress(os.Getenv("CUSTOM_ERC20_BRIDGE")),
		}
	}
	return contractAddresses[n]
}

func (n Network) String() string {
	return string(n)
}
