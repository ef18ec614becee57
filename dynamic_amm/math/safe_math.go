package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, fmt.Errorf("%w: subtraction underflow", shared.ErrMathOverflow)
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, fmt.Errorf("%w: division by zero", shared.ErrMathOverflow)
	}
	return new(big.Int).Div(a, b), nil
}

// MulDiv computes x*y/denominator with the requested rounding. A zero
// denominator is an error, never a silent zero.
func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, fmt.Errorf("%w: division by zero", shared.ErrMathOverflow)
	}
	mul := new(big.Int).Mul(x, y)
	div, mod := new(big.Int).QuoRem(mul, denominator, new(big.Int))
	if rounding == shared.RoundingUp && mod.Sign() != 0 {
		div.Add(div, big.NewInt(1))
	}
	return div, nil
}

// ToU64 checks the on-chain u64 domain before narrowing.
func ToU64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || v.BitLen() > 64 {
		return 0, fmt.Errorf("%w: value does not fit u64", shared.ErrMathOverflow)
	}
	return v.Uint64(), nil
}
