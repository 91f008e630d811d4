package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

func BindToken(address common.Address, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, erc20ABI, backend, backend, backend)
}

func BindStakingBridge(address common.Address, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, stakingBridgeABI, backend, backend, backend)
}

func BindVesting(address common.Address, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, vestingABI, backend, backend, backend)
}

func BindERC20Bridge(address common.Address, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, erc20BridgeABI, backend, backend, backend)
}

func BindLPStaking(address common.Address, backend bind.ContractBackend) *bind.BoundContract {
	return bind.NewBoundContract(address, lpStakingABI, backend, backend, backend)
}

// TokenBinder binds ERC20 tokens discovered at runtime to backend.
func TokenBinder(backend bind.ContractBackend) Binder {
	return func(address common.Address) Contract {
		return BindToken(address, backend)
	}
}
