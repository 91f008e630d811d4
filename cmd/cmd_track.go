package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/core/datasources"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/internal/config"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

type trackCmdOptions struct {
	Confirmations int
}

func NewTrackCommand() *cobra.Command {
	opts := &trackCmdOptions{}

	trackCmd := &cobra.Command{
		Use:   "track <tx-hash>",
		Short: "Track a transaction and print every confirmation until it is final",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return trackHandler(opts, cmd, args)
		},
	}

	flags := trackCmd.Flags()
	flags.IntVar(&opts.Confirmations, "confirmations", 0, "confirmations to wait for (default: tracker.confirmations)")
	return trackCmd
}

func trackHandler(opts *trackCmdOptions, cmd *cobra.Command, args []string) error {
	raw, err := hexutil.Decode(args[0])
	if err != nil || len(raw) != common.HashLength {
		return errors.Wrapf(errs.InvalidArgument, "%q is not a transaction hash", args[0])
	}
	hash := common.BytesToHash(raw)

	conf := config.Load()
	required := opts.Confirmations
	if required == 0 {
		required = conf.Tracker.Confirmations
	}

	ctx := cmd.Context()
	injector := newInjector(ctx, conf)
	defer func() { _ = injector.Shutdown() }()

	node, err := do.Invoke[*datasources.EthereumNode](injector)
	if err != nil {
		return errors.WithStack(err)
	}
	tracker, err := do.Invoke[*txtracker.Tracker](injector)
	if err != nil {
		return errors.WithStack(err)
	}

	unsubscribe := tracker.Subscribe(func(txs []txtracker.TrackedTransaction) {
		for _, tx := range txs {
			if tx.Hash != hash {
				continue
			}
			block := "-"
			if tx.Receipt != nil && tx.Receipt.BlockNumber != nil {
				block = tx.Receipt.BlockNumber.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s block=%s confirmations=%d/%d pending=%t\n",
				tx.Hash, block, tx.Confirmations, tx.RequiredConfirmations, tx.Pending)
		}
	})
	defer unsubscribe()

	h, err := node.TransactionHandle(ctx, hash)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(tracker.Track(ctx, h, required))
}
