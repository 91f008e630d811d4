package decimals

import (
	"github.com/shopspring/decimal"
)

// max precision is 36
const (
	minPowerOfTen = -DefaultDivPrecision
	maxPowerOfTen = DefaultDivPrecision
)

var powerOfTen = func() map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, maxPowerOfTen-minPowerOfTen+1)
	for n := int64(minPowerOfTen); n <= maxPowerOfTen; n++ {
		m[n] = decimal.New(1, int32(n))
	}
	return m
}()

// PowerOfTen optimized arithmetic performance for 10^n.
func PowerOfTen[T Integer](n T) decimal.Decimal {
	nInt64 := int64(n)
	if val, ok := powerOfTen[nInt64]; ok {
		return val
	}
	return decimal.New(1, int32(nInt64))
}
