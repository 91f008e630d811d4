package txtracker

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TrackedTransaction is the latest known state of a submitted transaction.
type TrackedTransaction struct {
	Hash common.Hash `json:"hash"`

	// Receipt of the most recent confirmation, nil until the first confirmation.
	Receipt *types.Receipt `json:"receipt,omitempty"`

	// Pending is true while fewer than RequiredConfirmations have been observed.
	Pending bool `json:"pending"`

	Confirmations         int `json:"confirmations"`
	RequiredConfirmations int `json:"requiredConfirmations"`
}

// Handle is a submitted transaction that can be waited on.
type Handle interface {
	Hash() common.Hash

	// Wait blocks until the transaction is confirmed to the given depth and
	// returns its receipt. It has no timeout of its own.
	Wait(ctx context.Context, confirmations int) (*types.Receipt, error)
}

// Resolver resolves the transaction behind a contract event.
type Resolver interface {
	TransactionHandle(ctx context.Context, hash common.Hash) (Handle, error)
}

// Listener receives the full ordered collection after every change.
// The slice is owned by the listener. Listeners run while the tracker holds
// its merge lock, so one that needs to track a transaction must do it from a
// new goroutine.
type Listener func(txs []TrackedTransaction)
