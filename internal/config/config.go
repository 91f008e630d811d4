package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/gaze-network/vega-contracts/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = defaultConfig()
)

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	Network    common.Network   `mapstructure:"network"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Contracts  ContractsConfig  `mapstructure:"contracts"`
	Tracker    TrackerConfig    `mapstructure:"tracker"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
}

type EthereumConfig struct {
	RPCURL string `mapstructure:"rpc_url"`

	// PollInterval is how often receipts are polled while waiting for confirmations.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// ContractsConfig overrides the contract addresses of the selected network.
type ContractsConfig struct {
	VegaToken     string `mapstructure:"vega_token"`
	Vesting       string `mapstructure:"vesting"`
	StakingBridge string `mapstructure:"staking_bridge"`
	ERC20Bridge   string `mapstructure:"erc20_bridge"`

	// LPStaking lists the liquidity pool staking contracts to serve.
	LPStaking []string `mapstructure:"lp_staking"`
}

type TrackerConfig struct {
	// Confirmations is the depth submitted and observed transactions are tracked to.
	Confirmations int `mapstructure:"confirmations"`

	// PreservePosition keeps updated transactions at their first-seen position.
	PreservePosition bool `mapstructure:"preserve_position"`

	// Watch enables tracking the transactions of new stake events.
	Watch bool `mapstructure:"watch"`
}

type HTTPServerConfig struct {
	Port   int                  `mapstructure:"port"`
	Logger requestlogger.Config `mapstructure:"logger"`
}

func defaultConfig() Config {
	return Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkMainnet,
		Ethereum: EthereumConfig{
			PollInterval: 4 * time.Second,
		},
		Tracker: TrackerConfig{
			Confirmations: 1,
			Watch:         true,
		},
		HTTPServer: HTTPServerConfig{
			Port: 8080,
		},
	}
}

// Parse parse the configuration from environment variables and the given config file.
// It's parsed once; later calls return the same configuration.
func Parse(configFile string) Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		conf, err := load(viper.GetViper(), configFile)
		if err != nil {
			logger.PanicContext(ctx, "Invalid configuration", slogx.Error(err))
		}
		config = conf
		logger.InfoContext(ctx, "Loaded configuration successfully", slogx.Stringer("network", config.Network))
	})
	return config
}

// Load returns the parsed configuration, parsing it without a config file if needed.
func Load() Config {
	return Parse("")
}

// BindPFlag binds a viper key to a cobra flag.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

func load(v *viper.Viper, configFile string) (Config, error) {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath("./")
		v.SetConfigName("config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if !errors.As(err, &errNotfound) {
			return Config{}, errors.Wrap(err, "invalid config file")
		}
		logger.WarnContext(ctx, "Config file not found, use default value", slogx.Error(err))
	}

	conf := defaultConfig()
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, errors.WithStack(err)
	}
	return conf, nil
}

func (c Config) Validate() error {
	if !c.Network.IsSupported() {
		return errors.Wrapf(errs.Unsupported, "%q network is not supported", c.Network)
	}
	if c.Tracker.Confirmations < 1 {
		return errors.Wrapf(errs.InvalidArgument, "tracker.confirmations must be at least 1, got %d", c.Tracker.Confirmations)
	}
	if _, err := c.Contracts.Resolve(c.Network); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
