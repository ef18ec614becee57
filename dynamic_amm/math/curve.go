package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Curve dispatch. CurveType is a closed tagged union; every operation
// switches exhaustively on Kind so a new variant cannot slip through
// half-supported.

// ComputeOutAmount prices sourceAmountAfterFee (fees already removed)
// against the curve and returns the destination amount, truncated so the
// pool never over-pays.
func ComputeOutAmount(curve shared.CurveType, sourceAmountAfterFee, sourceReserve, destReserve *big.Int, direction shared.TradeDirection) (*big.Int, error) {
	switch curve.Kind {
	case shared.CurveKindConstantProduct:
		return constantProductOutAmount(sourceAmountAfterFee, sourceReserve, destReserve)
	case shared.CurveKindStable:
		return stableOutAmount(curve, sourceAmountAfterFee, sourceReserve, destReserve, direction)
	default:
		return nil, fmt.Errorf("unknown curve kind %d", curve.Kind)
	}
}

// ComputeInAmount inverts the curve: the source amount needed to receive
// destAmount. Used for capacity estimation only, never for settlement.
func ComputeInAmount(curve shared.CurveType, destAmount, sourceReserve, destReserve *big.Int, direction shared.TradeDirection) (*big.Int, error) {
	switch curve.Kind {
	case shared.CurveKindConstantProduct:
		return constantProductInAmount(destAmount, sourceReserve, destReserve)
	case shared.CurveKindStable:
		return stableInAmount(curve, destAmount, sourceReserve, destReserve, direction)
	default:
		return nil, fmt.Errorf("unknown curve kind %d", curve.Kind)
	}
}

// ComputeD returns the pool invariant.
func ComputeD(curve shared.CurveType, reserveA, reserveB *big.Int) (*big.Int, error) {
	switch curve.Kind {
	case shared.CurveKindConstantProduct:
		return constantProductD(reserveA, reserveB), nil
	case shared.CurveKindStable:
		return stableD(curve, reserveA, reserveB)
	default:
		return nil, fmt.Errorf("unknown curve kind %d", curve.Kind)
	}
}

// ComputeImbalanceDeposit prices a non-proportional deposit. Constant
// product pools accept only proportional deposits.
func ComputeImbalanceDeposit(curve shared.CurveType, depositA, depositB, reserveA, reserveB, lpSupply *big.Int, fees shared.PoolFees) (*big.Int, error) {
	switch curve.Kind {
	case shared.CurveKindConstantProduct:
		return nil, fmt.Errorf("%w: constant product accepts only proportional deposits", shared.ErrImbalancedDepositUnsupported)
	case shared.CurveKindStable:
		return stableImbalanceDeposit(curve, depositA, depositB, reserveA, reserveB, lpSupply, fees)
	default:
		return nil, fmt.Errorf("unknown curve kind %d", curve.Kind)
	}
}

// ComputeWithdrawOne prices a single-sided withdraw. direction names the
// source side of the equivalent swap; the withdrawn token is the
// destination side.
func ComputeWithdrawOne(curve shared.CurveType, shareIn, lpSupply, reserveA, reserveB *big.Int, fees shared.PoolFees, direction shared.TradeDirection) (*big.Int, error) {
	switch curve.Kind {
	case shared.CurveKindConstantProduct:
		return nil, fmt.Errorf("%w: single-sided withdraw needs a stable curve", shared.ErrCapabilityUnsupported)
	case shared.CurveKindStable:
		return stableWithdrawOne(curve, shareIn, lpSupply, reserveA, reserveB, fees, direction)
	default:
		return nil, fmt.Errorf("unknown curve kind %d", curve.Kind)
	}
}

// VirtualPrice is the invariant value per LP share in
// VirtualPricePrecision units: the yield-tracking index sampled into the
// snapshot ring. For a constant product pool the invariant value is
// sqrt(D); for a stable pool it is D/2 (per-token normalized).
func VirtualPrice(curve shared.CurveType, reserveA, reserveB, lpSupply *big.Int) (uint64, error) {
	if lpSupply.Sign() == 0 {
		return 0, fmt.Errorf("%w: zero lp supply", shared.ErrEmptyPool)
	}
	d, err := ComputeD(curve, reserveA, reserveB)
	if err != nil {
		return 0, err
	}
	var value *big.Int
	switch curve.Kind {
	case shared.CurveKindConstantProduct:
		value = new(big.Int).Sqrt(d)
	case shared.CurveKindStable:
		value = new(big.Int).Div(d, bigTwo)
	default:
		return 0, fmt.Errorf("unknown curve kind %d", curve.Kind)
	}
	price, err := MulDiv(value, big.NewInt(shared.VirtualPricePrecision), lpSupply, shared.RoundingDown)
	if err != nil {
		return 0, err
	}
	return ToU64(price)
}
