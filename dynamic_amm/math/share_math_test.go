package math

import (
	"errors"
	"math/big"
	"testing"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

func TestShareByAmount(t *testing.T) {
	cases := []struct {
		name        string
		amount      int64
		totalAmount int64
		totalSupply int64
		rounding    shared.Rounding
		want        int64
	}{
		{"exact", 100, 1000, 500, shared.RoundingDown, 50},
		{"truncates down", 101, 1000, 500, shared.RoundingDown, 50},
		{"rounds up", 101, 1000, 500, shared.RoundingUp, 51},
		{"full amount", 1000, 1000, 500, shared.RoundingDown, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ShareByAmount(big.NewInt(tc.amount), big.NewInt(tc.totalAmount), big.NewInt(tc.totalSupply), tc.rounding)
			if err != nil {
				t.Fatalf("ShareByAmount failed: %v", err)
			}
			if got.Int64() != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShareByAmountEmptyPool(t *testing.T) {
	_, err := ShareByAmount(big.NewInt(100), big.NewInt(0), big.NewInt(500), shared.RoundingDown)
	if !errors.Is(err, shared.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestAmountByShareEmptyPool(t *testing.T) {
	_, err := AmountByShare(big.NewInt(100), big.NewInt(1000), big.NewInt(0), shared.RoundingDown)
	if !errors.Is(err, shared.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

// A truncated round trip must never give back more than went in.
func TestShareRoundTripNeverGains(t *testing.T) {
	totalAmount := big.NewInt(1_000_003)
	totalSupply := big.NewInt(777_777)
	for _, amount := range []int64{1, 7, 999, 123_456, 1_000_003} {
		share, err := ShareByAmount(big.NewInt(amount), totalAmount, totalSupply, shared.RoundingDown)
		if err != nil {
			t.Fatalf("ShareByAmount(%d) failed: %v", amount, err)
		}
		back, err := AmountByShare(share, totalAmount, totalSupply, shared.RoundingDown)
		if err != nil {
			t.Fatalf("AmountByShare failed: %v", err)
		}
		if back.Int64() > amount {
			t.Fatalf("round trip of %d returned %v", amount, back)
		}
	}
}

func TestMulDivZeroDenominator(t *testing.T) {
	_, err := MulDiv(big.NewInt(1), big.NewInt(1), big.NewInt(0), shared.RoundingDown)
	if !errors.Is(err, shared.ErrMathOverflow) {
		t.Fatalf("expected ErrMathOverflow, got %v", err)
	}
}

func TestToU64(t *testing.T) {
	if v, err := ToU64(new(big.Int).Set(shared.U64Max)); err != nil || v != ^uint64(0) {
		t.Fatalf("u64 max should fit: %v %v", v, err)
	}
	over := new(big.Int).Add(shared.U64Max, big.NewInt(1))
	if _, err := ToU64(over); !errors.Is(err, shared.ErrMathOverflow) {
		t.Fatalf("expected ErrMathOverflow, got %v", err)
	}
	if _, err := ToU64(big.NewInt(-1)); !errors.Is(err, shared.ErrMathOverflow) {
		t.Fatalf("expected ErrMathOverflow for negative, got %v", err)
	}
}
