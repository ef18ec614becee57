package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Share accounting between a liquidity share and an underlying amount.
// The rounding direction is a correctness requirement, not a detail:
// whatever a party receives rounds against that party, whatever the pool
// is owed rounds in the pool's favor. Both the pool LP mint and the
// vault LP mints settle through these two conversions.

// ShareByAmount converts an underlying amount into shares:
// amount * totalSupply / totalAmount.
func ShareByAmount(amount, totalAmount, totalSupply *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if totalAmount.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero total amount", shared.ErrEmptyPool)
	}
	return MulDiv(amount, totalSupply, totalAmount, rounding)
}

// AmountByShare converts shares into the underlying amount:
// share * totalAmount / totalSupply.
func AmountByShare(share, totalAmount, totalSupply *big.Int, rounding shared.Rounding) (*big.Int, error) {
	if totalSupply.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero share supply", shared.ErrEmptyPool)
	}
	return MulDiv(share, totalAmount, totalSupply, rounding)
}
