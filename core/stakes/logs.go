package stakes

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gaze-network/vega-contracts/common/errs"
)

const (
	DepositedEventName   = "Stake_Deposited"
	RemovedEventName     = "Stake_Removed"
	TransferredEventName = "Stake_Transferred"
)

// EventsABI declares the stake events shared by the staking bridge and the vesting contract.
const EventsABI = `[
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"user","type":"address"},{"indexed":false,"internalType":"uint256","name":"amount","type":"uint256"},{"indexed":true,"internalType":"bytes32","name":"vega_public_key","type":"bytes32"}],"name":"Stake_Deposited","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"user","type":"address"},{"indexed":false,"internalType":"uint256","name":"amount","type":"uint256"},{"indexed":true,"internalType":"bytes32","name":"vega_public_key","type":"bytes32"}],"name":"Stake_Removed","type":"event"},
	{"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":false,"internalType":"uint256","name":"amount","type":"uint256"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":true,"internalType":"bytes32","name":"vega_public_key","type":"bytes32"}],"name":"Stake_Transferred","type":"event"}
]`

var eventsABI = utils.Must(abi.JSON(strings.NewReader(EventsABI)))

// EventName returns the contract event name emitted for kind.
func (k Kind) EventName() string {
	switch k {
	case Deposit:
		return DepositedEventName
	case Removal:
		return RemovedEventName
	default:
		return ""
	}
}

// EventID returns the topic hash of the contract event emitted for kind.
func (k Kind) EventID() common.Hash {
	event, ok := eventsABI.Events[k.EventName()]
	if !ok {
		return common.Hash{}
	}
	return event.ID
}

// DecodeLogs decodes Stake_Deposited or Stake_Removed logs, selected by kind.
// Removed (re-orged) logs are skipped.
func DecodeLogs(kind Kind, logs []types.Log) ([]Event, error) {
	abiEvent, ok := eventsABI.Events[kind.EventName()]
	if !ok {
		return nil, errors.Wrapf(errs.InvalidArgument, "unknown event kind %d", kind)
	}

	events := make([]Event, 0, len(logs))
	for i := range logs {
		log := &logs[i]
		if log.Removed {
			continue
		}
		event, err := decodeLog(kind, abiEvent, log)
		if err != nil {
			return nil, errors.Wrapf(err, "can't decode %s log %d of tx %s", abiEvent.Name, log.Index, log.TxHash)
		}
		events = append(events, event)
	}
	return events, nil
}

func decodeLog(kind Kind, abiEvent abi.Event, log *types.Log) (Event, error) {
	if len(log.Topics) != 3 || log.Topics[0] != abiEvent.ID {
		return Event{}, errors.Wrapf(errs.MalformedAmount, "unexpected topics %v", log.Topics)
	}

	fields := make(map[string]any, 3)
	if err := abiEvent.Inputs.UnpackIntoMap(fields, log.Data); err != nil {
		return Event{}, errors.Mark(errors.Wrap(err, "can't unpack log data"), errs.MalformedAmount)
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed(abiEvent.Inputs), log.Topics[1:]); err != nil {
		return Event{}, errors.Mark(errors.Wrap(err, "can't parse log topics"), errs.MalformedAmount)
	}

	amount, ok := fields["amount"].(*big.Int)
	if !ok {
		return Event{}, errors.Wrapf(errs.MalformedAmount, "amount has type %T", fields["amount"])
	}
	user, _ := fields["user"].(common.Address)
	vegaKey, _ := fields["vega_public_key"].([32]byte)

	return Event{
		Kind:        kind,
		VegaKey:     hex.EncodeToString(vegaKey[:]),
		User:        user,
		RawAmount:   amount,
		BlockNumber: log.BlockNumber,
		LogIndex:    log.Index,
		TxHash:      log.TxHash,
	}, nil
}

func indexed(args abi.Arguments) abi.Arguments {
	var out abi.Arguments
	for _, arg := range args {
		if arg.Indexed {
			out = append(out, arg)
		}
	}
	return out
}

// VegaKeyTopic converts a hex encoded Vega key, with or without 0x prefix, to its bytes32 form.
func VegaKeyTopic(vegaKey string) (common.Hash, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(vegaKey, "0x"))
	if err != nil {
		return common.Hash{}, errors.Wrapf(errs.InvalidArgument, "vega key %q is not hex: %v", vegaKey, err)
	}
	if len(raw) != common.HashLength {
		return common.Hash{}, errors.Wrapf(errs.InvalidArgument, "vega key %q must be %d bytes", vegaKey, common.HashLength)
	}
	return common.BytesToHash(raw), nil
}
