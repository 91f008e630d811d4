package decimals

import (
	"context"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// DecimalsFetcher returns the decimal count of an asset, usually by calling `decimals()` on its contract.
type DecimalsFetcher func(ctx context.Context) (uint8, error)

// Scaler converts amounts of a single asset. The decimal count is fetched
// on first use and cached for the lifetime of the Scaler.
type Scaler struct {
	fetch DecimalsFetcher

	mu       sync.Mutex
	loaded   bool
	decimals uint8
}

func NewScaler(fetch DecimalsFetcher) *Scaler {
	return &Scaler{fetch: fetch}
}

// NewFixedScaler returns a Scaler with an already known decimal count.
func NewFixedScaler(decimals uint8) *Scaler {
	return &Scaler{loaded: true, decimals: decimals}
}

// Decimals returns the cached decimal count, fetching it on the first call.
// A failed fetch is not cached.
func (s *Scaler) Decimals(ctx context.Context) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.decimals, nil
	}
	if s.fetch == nil {
		return 0, errors.New("scaler has no decimals source")
	}

	d, err := s.fetch(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "can't fetch decimals")
	}
	s.decimals, s.loaded = d, true
	return d, nil
}

func (s *Scaler) ToDecimal(ctx context.Context, raw *big.Int) (decimal.Decimal, error) {
	d, err := s.Decimals(ctx)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return ToDecimal(raw, d), nil
}

func (s *Scaler) ToRaw(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	d, err := s.Decimals(ctx)
	if err != nil {
		return decimal.Zero, errors.WithStack(err)
	}
	return ToRaw(amount, d), nil
}

func (s *Scaler) ToBigInt(ctx context.Context, amount decimal.Decimal) (*big.Int, error) {
	d, err := s.Decimals(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ToBigInt(amount, d)
}
