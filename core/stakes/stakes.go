package stakes

import (
	"cmp"
	"math/big"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/decimals"
	"github.com/shopspring/decimal"
)

type Kind int

const (
	Deposit Kind = iota + 1
	Removal
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Removal:
		return "removal"
	default:
		return "unknown"
	}
}

// Event is a stake deposit or removal attributed to a Vega key.
type Event struct {
	Kind Kind

	// VegaKey is the hex encoded public key, without 0x prefix.
	VegaKey   string
	User      common.Address
	RawAmount *big.Int

	// BlockNumber and LogIndex locate the event in chain history. They are
	// not used for aggregation.
	BlockNumber uint64
	LogIndex    uint
	TxHash      common.Hash
}

// Aggregate folds deposits and removals into the net staked amount per Vega key,
// in decimal units. Keys with more removals than deposits get a negative balance.
// A missing or negative raw amount fails the whole aggregation.
func Aggregate(deposits, removals []Event, dp uint8) (map[string]decimal.Decimal, error) {
	totals := make(map[string]*big.Int, len(deposits))

	fold := func(events []Event, sign int) error {
		for _, event := range events {
			if event.RawAmount == nil {
				return errors.Wrapf(errs.MalformedAmount, "%s event for key %q has no amount", signKind(sign), event.VegaKey)
			}
			if event.RawAmount.Sign() < 0 {
				return errors.Wrapf(errs.MalformedAmount, "%s event for key %q has negative amount %s", signKind(sign), event.VegaKey, event.RawAmount)
			}

			total, ok := totals[event.VegaKey]
			if !ok {
				total = new(big.Int)
				totals[event.VegaKey] = total
			}
			if sign > 0 {
				total.Add(total, event.RawAmount)
			} else {
				total.Sub(total, event.RawAmount)
			}
		}
		return nil
	}

	if err := fold(deposits, 1); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := fold(removals, -1); err != nil {
		return nil, errors.WithStack(err)
	}

	result := make(map[string]decimal.Decimal, len(totals))
	for key, total := range totals {
		result[key] = decimals.ToDecimal(total, dp)
	}
	return result, nil
}

// AggregateEvents splits mixed events by kind and aggregates them.
func AggregateEvents(events []Event, dp uint8) (map[string]decimal.Decimal, error) {
	var deposits, removals []Event
	for _, event := range events {
		switch event.Kind {
		case Deposit:
			deposits = append(deposits, event)
		case Removal:
			removals = append(removals, event)
		default:
			return nil, errors.Wrapf(errs.InvalidArgument, "unknown event kind %d", event.Kind)
		}
	}
	return Aggregate(deposits, removals, dp)
}

func signKind(sign int) Kind {
	if sign > 0 {
		return Deposit
	}
	return Removal
}

// Sort orders events by their position in chain history.
func Sort(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		if c := cmp.Compare(a.BlockNumber, b.BlockNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.LogIndex, b.LogIndex)
	})
}
