package staking

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gaze-network/vega-contracts/contracts"
	"github.com/gaze-network/vega-contracts/core/datasources"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/gaze-network/vega-contracts/internal/metrics"
	stakingapi "github.com/gaze-network/vega-contracts/modules/staking/api"
	stakingusecase "github.com/gaze-network/vega-contracts/modules/staking/usecase"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

// Module holds the contracts of the configured network and the use cases built on them.
type Module struct {
	Token   *contracts.Token
	Staking *contracts.Staking
	Vesting *contracts.Vesting
	Bridge  *contracts.Bridge
	Pools   map[common.Address]*contracts.LPStaking
	Usecase *stakingusecase.Usecase

	conf config.Config
	subs []event.Subscription
}

func New(injector do.Injector) (*Module, error) {
	conf := do.MustInvoke[config.Config](injector)
	node := do.MustInvoke[*datasources.EthereumNode](injector)
	tracker := do.MustInvoke[*txtracker.Tracker](injector)
	m := do.MustInvoke[*metrics.Metrics](injector)

	addresses, err := conf.Contracts.Resolve(conf.Network)
	if err != nil {
		return nil, errors.Wrap(err, "invalid contract addresses")
	}
	lpAddresses, err := conf.Contracts.LPStakingAddresses()
	if err != nil {
		return nil, errors.Wrap(err, "invalid liquidity pool addresses")
	}

	backend := node.Backend()
	deps := contracts.Deps{
		Tracker:       tracker,
		Waiter:        node,
		Metrics:       m,
		Confirmations: conf.Tracker.Confirmations,
	}
	token := contracts.NewToken(contracts.BindToken(addresses.VegaToken, backend), deps)
	module := &Module{
		Token:   token,
		Staking: contracts.NewStaking(contracts.BindStakingBridge(addresses.StakingBridge, backend), token.Scaler(), deps),
		Vesting: contracts.NewVesting(contracts.BindVesting(addresses.Vesting, backend), token.Scaler(), deps),
		Bridge:  contracts.NewBridge(contracts.BindERC20Bridge(addresses.ERC20Bridge, backend), deps),
		Pools:   make(map[common.Address]*contracts.LPStaking, len(lpAddresses)),
		conf:    conf,
	}
	for _, address := range lpAddresses {
		module.Pools[address] = contracts.NewLPStaking(address, contracts.BindLPStaking(address, backend), contracts.TokenBinder(backend), deps)
	}

	module.Usecase = stakingusecase.New(stakingusecase.Deps{
		Staking: module.Staking,
		Vesting: module.Vesting,
		Token:   module.Token,
		Pools: lo.MapValues(module.Pools, func(pool *contracts.LPStaking, _ common.Address) stakingusecase.LPPool {
			return pool
		}),
		Tracker:       tracker,
		Resolver:      node,
		Confirmations: conf.Tracker.Confirmations,
	})
	return module, nil
}

// Mount mounts the HTTP API. Transactions tracked on request stop with ctx.
func (m *Module) Mount(ctx context.Context, app *fiber.App) error {
	handler := stakingapi.NewHTTPHandler(ctx, m.conf.Network, m.Usecase)
	if err := handler.Mount(app); err != nil {
		return errors.Wrap(err, "can't mount staking API")
	}
	logger.InfoContext(ctx, "Mounted HTTP handler", slog.String("module", "staking"))
	return nil
}

// Watch starts tracking the transactions of new stake events on the staking
// bridge and vesting contracts until ctx is done or Shutdown is called.
func (m *Module) Watch(ctx context.Context) error {
	ctx = logger.WithContext(ctx, slog.String("module", "staking"))
	watchers := []struct {
		name  string
		watch func(context.Context, ...common.Address) (event.Subscription, error)
	}{
		{"staking_bridge", m.Staking.WatchEvents},
		{"vesting", m.Vesting.WatchEvents},
	}
	for _, w := range watchers {
		sub, err := w.watch(ctx)
		if err != nil {
			return errors.Wrapf(err, "can't watch %s events", w.name)
		}
		m.subs = append(m.subs, sub)
		go func() {
			if err, ok := <-sub.Err(); ok && err != nil {
				logger.ErrorContext(ctx, "Stopped watching contract events", slogx.String("contract", w.name), slogx.Error(err))
			}
		}()
	}
	logger.InfoContext(ctx, "Watching stake events", slogx.Int("contracts", len(watchers)))
	return nil
}

// Shutdown stops the event watchers.
func (m *Module) Shutdown() error {
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.subs = nil
	return nil
}
