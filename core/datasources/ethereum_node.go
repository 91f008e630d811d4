package datasources

import (
	"context"
	"math/big"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/core/txtracker"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
)

// DefaultPollInterval is the receipt polling interval used when none is configured.
const DefaultPollInterval = 4 * time.Second

// Make sure to implement the Datasource interface
var _ Datasource = (*EthereumNode)(nil)

type chainReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// EthereumNode reads chain state from an Ethereum JSON-RPC node.
type EthereumNode struct {
	reader       chainReader
	backend      bind.ContractBackend
	pollInterval time.Duration
	close        func()
}

// NewEthereumNode creates a datasource on top of an ethclient connection.
func NewEthereumNode(client *ethclient.Client, pollInterval time.Duration) *EthereumNode {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &EthereumNode{
		reader:       client,
		backend:      client,
		pollInterval: pollInterval,
		close:        client.Close,
	}
}

// Shutdown closes the node connection.
func (d *EthereumNode) Shutdown() {
	if d.close != nil {
		d.close()
	}
}

// DialEthereumNode connects to the node at rpcURL.
func DialEthereumNode(ctx context.Context, rpcURL string, pollInterval time.Duration) (*EthereumNode, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "can't dial ethereum node")
	}
	return NewEthereumNode(client, pollInterval), nil
}

func (d *EthereumNode) Name() string {
	return "ethereum_node"
}

// Backend returns the backend contracts are bound to.
func (d *EthereumNode) Backend() bind.ContractBackend {
	return d.backend
}

func (d *EthereumNode) BlockNumber(ctx context.Context) (uint64, error) {
	height, err := d.reader.BlockNumber(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get block number")
	}
	return height, nil
}

// TransactionHandle returns a handle that polls the node for the receipt of hash.
func (d *EthereumNode) TransactionHandle(_ context.Context, hash common.Hash) (txtracker.Handle, error) {
	return &receiptHandle{node: d, hash: hash}, nil
}

// HandleOf returns a handle for a transaction submitted through this node.
func (d *EthereumNode) HandleOf(tx *types.Transaction) txtracker.Handle {
	return &receiptHandle{node: d, hash: tx.Hash()}
}

type receiptHandle struct {
	node *EthereumNode
	hash common.Hash
}

func (h *receiptHandle) Hash() common.Hash {
	return h.hash
}

// Wait polls until the transaction is mined with at least the given number of
// confirmations. The including block counts as the first confirmation.
func (h *receiptHandle) Wait(ctx context.Context, confirmations int) (*types.Receipt, error) {
	ticker := time.NewTicker(h.node.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := h.poll(ctx, confirmations)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.WithStack(ctx.Err())
		case <-ticker.C:
		}
	}
}

// poll returns a nil receipt while the transaction is not mined or not deep enough.
func (h *receiptHandle) poll(ctx context.Context, confirmations int) (*types.Receipt, error) {
	receipt, err := h.node.reader.TransactionReceipt(ctx, h.hash)
	if errors.Is(err, ethereum.NotFound) {
		logger.DebugContext(ctx, "Transaction not mined yet", slogx.Stringer("tx_hash", h.hash))
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get receipt of %s", h.hash)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return nil, errors.Wrapf(errs.Reverted, "transaction %s reverted in block %s", h.hash, receipt.BlockNumber)
	}

	head, err := h.node.reader.BlockNumber(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get block number")
	}
	if depth(head, receipt.BlockNumber) < uint64(confirmations) {
		return nil, nil
	}
	return receipt, nil
}

func depth(head uint64, included *big.Int) uint64 {
	if included == nil || !included.IsUint64() || included.Uint64() > head {
		return 0
	}
	return head - included.Uint64() + 1
}
