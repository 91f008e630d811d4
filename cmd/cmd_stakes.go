package cmd

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/gaze-network/vega-contracts/modules/staking"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func NewStakesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stakes <address>",
		Short: "Print the stake of an Ethereum address per Vega public key",
		Args:  cobra.ExactArgs(1),
		RunE:  stakesHandler,
	}
}

func stakesHandler(cmd *cobra.Command, args []string) error {
	if !common.IsHexAddress(args[0]) {
		return errors.Wrapf(errs.InvalidArgument, "%q is not an address", args[0])
	}
	account := common.HexToAddress(args[0])

	ctx := cmd.Context()
	injector := newInjector(ctx, config.Load())
	defer func() { _ = injector.Shutdown() }()

	module, err := do.Invoke[*staking.Module](injector)
	if err != nil {
		return errors.Wrap(err, "can't init staking module")
	}
	stakes, err := module.Usecase.GetStakes(ctx, account)
	if err != nil {
		return errors.WithStack(err)
	}

	keys := lo.Keys(stakes.Total)
	slices.Sort(keys)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VEGA KEY\tSTAKING BRIDGE\tVESTING\tTOTAL")
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, stakes.Staking[key], stakes.Vesting[key], stakes.Total[key])
	}
	return errors.WithStack(w.Flush())
}
