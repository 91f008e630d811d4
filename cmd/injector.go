package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/core/datasources"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/gaze-network/vega-contracts/internal/metrics"
	"github.com/gaze-network/vega-contracts/modules/staking"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/do/v2"
)

// newInjector provides the services shared by all commands. Services are created on first use.
func newInjector(ctx context.Context, conf config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	do.Provide(injector, func(i do.Injector) (*metrics.Metrics, error) {
		return metrics.New(prometheus.DefaultRegisterer), nil
	})

	// Initialize Ethereum node datasource
	do.Provide(injector, func(i do.Injector) (*datasources.EthereumNode, error) {
		conf := do.MustInvoke[config.Config](i)
		if conf.Ethereum.RPCURL == "" {
			return nil, errors.New("ethereum.rpc_url is required")
		}

		start := time.Now()
		logger.InfoContext(ctx, "Connecting to Ethereum node...")
		node, err := datasources.DialEthereumNode(ctx, conf.Ethereum.RPCURL, conf.Ethereum.PollInterval)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		head, err := node.BlockNumber(ctx)
		if err != nil {
			node.Shutdown()
			return nil, errors.Wrap(err, "can't connect to Ethereum node")
		}
		logger.InfoContext(ctx, "Connected to Ethereum node", slogx.Uint64("head", head), slog.Duration("latency", time.Since(start)))
		return node, nil
	})

	do.Provide(injector, func(i do.Injector) (*txtracker.Tracker, error) {
		conf := do.MustInvoke[config.Config](i)
		node := do.MustInvoke[*datasources.EthereumNode](i)
		opts := []txtracker.Option{txtracker.WithMetrics(do.MustInvoke[*metrics.Metrics](i))}
		if conf.Tracker.PreservePosition {
			opts = append(opts, txtracker.WithPreservePosition())
		}
		return txtracker.New(node, opts...), nil
	})

	do.Provide(injector, staking.New)
	return injector
}
