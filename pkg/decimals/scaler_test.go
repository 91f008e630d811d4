package decimals

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaler(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches_once", func(t *testing.T) {
		var calls int
		s := NewScaler(func(context.Context) (uint8, error) {
			calls++
			return 18, nil
		})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d, err := s.Decimals(ctx)
				assert.NoError(t, err)
				assert.Equal(t, uint8(18), d)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, calls)
	})

	t.Run("failed_fetch_not_cached", func(t *testing.T) {
		fail := true
		s := NewScaler(func(context.Context) (uint8, error) {
			if fail {
				return 0, errors.New("node unavailable")
			}
			return 6, nil
		})

		_, err := s.Decimals(ctx)
		require.Error(t, err)

		fail = false
		d, err := s.Decimals(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint8(6), d)
	})

	t.Run("conversions", func(t *testing.T) {
		s := NewFixedScaler(2)

		amount, err := s.ToDecimal(ctx, big.NewInt(60))
		require.NoError(t, err)
		assert.Equal(t, "0.6", amount.String())

		raw, err := s.ToRaw(ctx, MustFromString("0.605"))
		require.NoError(t, err)
		assert.Equal(t, "60.5", raw.String())

		_, err = s.ToBigInt(ctx, MustFromString("0.605"))
		require.Error(t, err)

		bi, err := s.ToBigInt(ctx, MustFromString("0.6"))
		require.NoError(t, err)
		assert.Equal(t, int64(60), bi.Int64())
	})

	t.Run("no_source", func(t *testing.T) {
		_, err := NewScaler(nil).Decimals(ctx)
		require.Error(t, err)
	})
}
