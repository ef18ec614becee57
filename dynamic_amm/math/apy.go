package math

import (
	"fmt"
	stdmath "math"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Trailing yield estimate over the virtual price snapshot ring. The
// annualization exponent is fractional, so this is the one place the
// engine leaves exact integer arithmetic; APY is an estimate, not a
// settlement value.

// PushSample writes sample at the ring pointer and advances it,
// returning a new buffer. The oldest sample is overwritten.
func PushSample(buffer shared.SnapshotBuffer, sample shared.VirtualPriceSample) shared.SnapshotBuffer {
	buffer.Samples[buffer.Pointer%shared.SnapshotBufferSize] = sample
	buffer.Pointer = (buffer.Pointer + 1) % shared.SnapshotBufferSize
	return buffer
}

// FirstSample returns the earliest filled sample strictly after the wrap
// pointer. Zero-price slots are unfilled and skipped.
func FirstSample(buffer shared.SnapshotBuffer) shared.VirtualPriceSample {
	for i := uint64(1); i < shared.SnapshotBufferSize; i++ {
		sample := buffer.Samples[(buffer.Pointer+i)%shared.SnapshotBufferSize]
		if sample.Price != 0 {
			return sample
		}
	}
	return shared.VirtualPriceSample{}
}

// LastSample returns the most recently written sample: the slot before
// the pointer, wrapping to the final slot when the pointer is at zero.
func LastSample(buffer shared.SnapshotBuffer) shared.VirtualPriceSample {
	if buffer.Pointer == 0 {
		return buffer.Samples[shared.SnapshotBufferSize-1]
	}
	return buffer.Samples[(buffer.Pointer-1)%shared.SnapshotBufferSize]
}

// Apy annualizes the virtual price growth between the first and last
// ring samples: (last/first)^(secondsPerYear/elapsed) - 1. An unfilled
// anchor or non-positive elapsed time makes the APY undefined; "no data"
// must never read as 0% yield.
func Apy(buffer shared.SnapshotBuffer) (decimal.Decimal, error) {
	first := FirstSample(buffer)
	last := LastSample(buffer)
	if first.Price == 0 || last.Price == 0 {
		return decimal.Zero, fmt.Errorf("%w: ring has fewer than two samples", shared.ErrUndefinedAPY)
	}
	elapsed := last.Timestamp - first.Timestamp
	if elapsed <= 0 {
		return decimal.Zero, fmt.Errorf("%w: non-positive elapsed time", shared.ErrUndefinedAPY)
	}

	rate := decimal.NewFromUint64(last.Price).Div(decimal.NewFromUint64(first.Price))
	frequency := decimal.NewFromInt(shared.SecondsPerYear).Div(decimal.NewFromInt(elapsed))
	return powDecimal(rate, frequency).Sub(decimal.NewFromInt(1)), nil
}

// powDecimal raises base to a possibly fractional exponent. Integer
// exponents stay in decimal; fractional ones go through float64.
func powDecimal(base, exponent decimal.Decimal) decimal.Decimal {
	if exponent.Equal(exponent.Truncate(0)) {
		return base.Pow(exponent)
	}
	baseFloat, _ := base.Float64()
	expFloat, _ := exponent.Float64()
	return decimal.NewFromFloat(stdmath.Pow(baseFloat, expFloat))
}
