package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

// Version is the vega-contracts version.
const Version = "v0.1.0"

var cmd = &cobra.Command{
	Use:          "vega-contracts",
	Long:         `Read and track Vega staking, vesting and bridge contracts on Ethereum`,
	SilenceUsage: true,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")
	flags.String("network", "mainnet", "network to connect to, E.g. `mainnet` or `testnet`")
	flags.String("rpc-url", "", "Ethereum JSON-RPC endpoint")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))
	config.BindPFlag("ethereum.rpc_url", flags.Lookup("rpc-url"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		config := config.Parse(configFile)

		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	cmd.AddCommand(
		NewVersionCommand(),
		NewServeCommand(),
		NewStakesCommand(),
		NewTrackCommand(),
	)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
