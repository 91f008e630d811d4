package decimals

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDecimal(t *testing.T) {
	t.Run("invalid_decimals", func(t *testing.T) {
		assert.NotPanics(t, func() { ToDecimal(big.NewInt(1), 0) })
		assert.NotPanics(t, func() { ToDecimal(big.NewInt(1), uint8(255)) })
		assert.Panics(t, func() { ToDecimal(big.NewInt(1), -1) }, "negative decimals should panic")
		assert.Panics(t, func() { ToDecimal(big.NewInt(1), int64(math.MaxInt32)+1) }, "out of range decimals should panic")
	})
	t.Run("nil_raw", func(t *testing.T) {
		assert.True(t, ToDecimal(nil, 18).IsZero())
	})

	testcases := []struct {
		decimals uint8
		value    string
		expected string
	}{
		{0, "1", "1"},
		{1, "1", "0.1"},
		{2, "1", "0.01"},
		{2, "60", "0.6"},
		{2, "-40", "-0.4"},
		{18, "1", "0.000000000000000001"},
		{36, "1", "0.000000000000000000000000000000000001"},
		{0, "18446744073709551615", "18446744073709551615"},
		{18, "18446744073709551615", "18.446744073709551615"},
		{18, "115792089237316195423570985008687907853269984665640564039457584007913129639935", "115792089237316195423570985008687907853269984665640564039457.584007913129639935"},
	}
	for _, tc := range testcases {
		t.Run(fmt.Sprintf("%d_%s", tc.decimals, tc.value), func(t *testing.T) {
			raw, err := ParseRaw(tc.value)
			require.NoError(t, err)
			actual := ToDecimal(raw, tc.decimals)
			assert.Equal(t, tc.expected, actual.String())
		})
	}
}

func TestToRaw(t *testing.T) {
	t.Run("scales_up", func(t *testing.T) {
		assert.Equal(t, "1050", ToRaw(MustFromString("10.5"), 2).String())
		assert.Equal(t, "1000000000000000000", ToRaw(MustFromString("1"), 18).String())
	})
	t.Run("not_rounded", func(t *testing.T) {
		actual := ToRaw(MustFromString("1.2345"), 2)
		assert.Equal(t, "123.45", actual.String())
		assert.False(t, actual.IsInteger())
	})
	t.Run("negative_decimals", func(t *testing.T) {
		assert.Panics(t, func() { ToRaw(decimal.NewFromInt(1), -2) })
	})
}

func TestToBigInt(t *testing.T) {
	raw, err := ToBigInt(MustFromString("12.34"), 18)
	require.NoError(t, err)
	assert.Equal(t, "12340000000000000000", raw.String())

	_, err = ToBigInt(MustFromString("0.001"), 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.InvalidArgument))
}

func TestRoundTrip(t *testing.T) {
	values := []string{"0", "1", "7", "100", "123456789", "18446744073709551615", "340282366920938463463374607431768211455"}
	for d := uint8(0); d <= 18; d++ {
		for _, v := range values {
			t.Run(fmt.Sprintf("%d_%s", d, v), func(t *testing.T) {
				raw, ok := new(big.Int).SetString(v, 10)
				require.True(t, ok)
				back := ToRaw(ToDecimal(raw, d), d)
				require.True(t, back.IsInteger())
				assert.Equal(t, 0, raw.Cmp(back.BigInt()))
			})
		}
	}
}

func TestParseRaw(t *testing.T) {
	typesConv := []func(uint64) any{
		func(i uint64) any { return int(i) },
		func(i uint64) any { return int8(i) },
		func(i uint64) any { return int16(i) },
		func(i uint64) any { return int32(i) },
		func(i uint64) any { return int64(i) },
		func(i uint64) any { return uint(i) },
		func(i uint64) any { return uint8(i) },
		func(i uint64) any { return uint16(i) },
		func(i uint64) any { return uint32(i) },
		func(i uint64) any { return i },
		func(i uint64) any { return fmt.Sprint(i) },
		func(i uint64) any { return new(big.Int).SetUint64(i) },
		func(i uint64) any { return uint256.NewInt(i) },
		func(i uint64) any { return *uint256.NewInt(i) },
	}
	for _, conv := range typesConv {
		input := conv(42)
		t.Run(fmt.Sprintf("%T", input), func(t *testing.T) {
			actual, err := ParseRaw(input)
			require.NoError(t, err)
			assert.Equal(t, int64(42), actual.Int64())
		})
	}

	t.Run("copies_big_int", func(t *testing.T) {
		in := big.NewInt(5)
		out, err := ParseRaw(in)
		require.NoError(t, err)
		out.SetInt64(6)
		assert.Equal(t, int64(5), in.Int64())
	})

	malformed := []any{"", "1.5", "abc", "0x10", (*big.Int)(nil), (*uint256.Int)(nil), 1.5, nil}
	for _, input := range malformed {
		t.Run(fmt.Sprintf("malformed_%T_%v", input, input), func(t *testing.T) {
			_, err := ParseRaw(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.MalformedAmount))
		})
	}
}
