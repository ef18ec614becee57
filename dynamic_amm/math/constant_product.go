package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Constant product curve: (sourceReserve+dx)*(destReserve-dy) = sourceReserve*destReserve.
// Output truncates toward zero so the pool never over-pays.

func constantProductOutAmount(sourceAmount, sourceReserve, destReserve *big.Int) (*big.Int, error) {
	if sourceReserve.Sign() == 0 || destReserve.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero swap reserve", shared.ErrEmptyPool)
	}
	newSourceReserve := Add(sourceReserve, sourceAmount)
	return MulDiv(destReserve, sourceAmount, newSourceReserve, shared.RoundingDown)
}

// constantProductInAmount inverts the curve: the source amount that buys
// destAmount, rounded up so the estimate never undershoots settlement.
func constantProductInAmount(destAmount, sourceReserve, destReserve *big.Int) (*big.Int, error) {
	if sourceReserve.Sign() == 0 || destReserve.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero swap reserve", shared.ErrEmptyPool)
	}
	if destAmount.Cmp(destReserve) >= 0 {
		return nil, fmt.Errorf("%w: output would drain the reserve", shared.ErrInsufficientReserve)
	}
	newDestReserve, err := Sub(destReserve, destAmount)
	if err != nil {
		return nil, err
	}
	return MulDiv(sourceReserve, destAmount, newDestReserve, shared.RoundingUp)
}

func constantProductD(reserveA, reserveB *big.Int) *big.Int {
	return Mul(reserveA, reserveB)
}
