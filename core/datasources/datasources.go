package datasources

import (
	"context"

	"github.com/gaze-network/vega-contracts/core/txtracker"
)

// Datasource is a chain node the contract facades read from and track transactions on.
type Datasource interface {
	txtracker.Resolver
	Name() string
	BlockNumber(ctx context.Context) (uint64, error)
}
