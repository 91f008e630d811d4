package decimals

import (
	"math"
	"math/big"
	"reflect"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/vega-contracts/common/errs"
	"github.com/gaze-network/vega-contracts/pkg/logger"
	"github.com/gaze-network/vega-contracts/pkg/logger/slogx"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	DefaultDivPrecision = 36
)

func init() {
	decimal.DivisionPrecision = DefaultDivPrecision
}

// Integer is the set of types usable as a decimal count.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MustFromString convert string to decimal.Decimal. Panic if error
// string must be a valid number, not NaN, Inf or empty string.
func MustFromString(s string) decimal.Decimal {
	return utils.Must(decimal.NewFromString(s))
}

// ParseRaw converts a raw on-chain amount into *big.Int.
// Strings must be base-10 integers.
func ParseRaw(iraw any) (*big.Int, error) {
	switch v := iraw.(type) {
	case *big.Int:
		if v == nil {
			return nil, errors.Wrap(errs.MalformedAmount, "nil amount")
		}
		return new(big.Int).Set(v), nil
	case string:
		value, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, errors.Wrapf(errs.MalformedAmount, "%q is not an integer amount", v)
		}
		return value, nil
	case *uint256.Int:
		if v == nil {
			return nil, errors.Wrap(errs.MalformedAmount, "nil amount")
		}
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	case int, int8, int16, int32, int64:
		return big.NewInt(reflect.ValueOf(v).Int()), nil
	case uint, uint8, uint16, uint32, uint64:
		return new(big.Int).SetUint64(reflect.ValueOf(v).Uint()), nil
	}
	return nil, errors.Wrapf(errs.MalformedAmount, "unsupported amount type %T", iraw)
}

// ToDecimal converts a raw integer amount into decimal units: raw / 10^decimals,
// rounded to decimals places.
func ToDecimal[T Integer](raw *big.Int, decimals T) decimal.Decimal {
	exp := exponent(decimals)
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -exp).Round(exp)
}

// ToRaw converts a decimal amount into raw integer units: amount * 10^decimals.
// The result is not rounded; fractional digits beyond decimals stay in the result.
func ToRaw[T Integer](amount decimal.Decimal, decimals T) decimal.Decimal {
	return amount.Mul(PowerOfTen(exponent(decimals)))
}

// ToBigInt converts a decimal amount into a raw integer amount for a contract call.
// The amount must not carry more than decimals fractional digits.
func ToBigInt[T Integer](amount decimal.Decimal, decimals T) (*big.Int, error) {
	raw := ToRaw(amount, decimals)
	if !raw.IsInteger() {
		return nil, errors.Wrapf(errs.InvalidArgument, "amount %s has more than %d decimal places", amount, decimals)
	}
	return raw.BigInt(), nil
}

// exponent validates a decimal count. A negative or oversized count is a programmer error.
func exponent[T Integer](decimals T) int32 {
	switch {
	case decimals < 0:
		logger.Panic("decimals must not be negative", slogx.Any("decimals", decimals))
	case uint64(decimals) > math.MaxInt32:
		logger.Panic("decimals is too big, should be equal less than 2^31-1", slogx.Any("decimals", decimals))
	}
	return int32(decimals)
}
