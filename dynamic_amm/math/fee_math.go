package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Trade fee and owner (protocol) fee both truncate down: a fee never
// rounds in the trader's favor, and the sub-unit remainder stays with
// the pool.

func TradingFee(fees shared.PoolFees, amount *big.Int) (*big.Int, error) {
	return feeAmount(fees.TradeFeeNumerator, fees.TradeFeeDenominator, amount)
}

func OwnerTradingFee(fees shared.PoolFees, amount *big.Int) (*big.Int, error) {
	return feeAmount(fees.OwnerTradeFeeNumerator, fees.OwnerTradeFeeDenominator, amount)
}

func feeAmount(numerator, denominator uint64, amount *big.Int) (*big.Int, error) {
	if numerator == 0 || denominator == 0 {
		return big.NewInt(0), nil
	}
	return MulDiv(amount, new(big.Int).SetUint64(numerator), new(big.Int).SetUint64(denominator), shared.RoundingDown)
}

// ValidateFees rejects a fee pair that would charge more than 100%.
func ValidateFees(fees shared.PoolFees) error {
	if fees.TradeFeeNumerator > fees.TradeFeeDenominator {
		return fmt.Errorf("%w: trade fee numerator exceeds denominator", shared.ErrInvalidFeeSchedule)
	}
	if fees.OwnerTradeFeeNumerator > fees.OwnerTradeFeeDenominator {
		return fmt.Errorf("%w: owner fee numerator exceeds denominator", shared.ErrInvalidFeeSchedule)
	}
	return nil
}

// ValidateFeeSchedule rejects out-of-order activation points. The
// schedule is never silently sorted.
func ValidateFeeSchedule(schedule shared.FeeSchedule) error {
	for i := 1; i < len(schedule.Points); i++ {
		if schedule.Points[i].ActivatedPoint < schedule.Points[i-1].ActivatedPoint {
			return fmt.Errorf("%w: point %d activates before point %d", shared.ErrInvalidFeeSchedule, i, i-1)
		}
	}
	return nil
}

// EffectiveFees resolves the trade fee in force at currentPoint. With an
// empty schedule the static fees apply. Flat mode takes the latest point
// whose activation is not after currentPoint (an exact boundary hit
// returns that boundary's point); before the first point the first
// point's fee applies, after the last the last point's fee stays
// constant. Linear mode interpolates between the bracketing points. The
// owner fee pair is never rescheduled.
func EffectiveFees(fees shared.PoolFees, schedule shared.FeeSchedule, currentPoint uint64) (shared.PoolFees, error) {
	if err := ValidateFeeSchedule(schedule); err != nil {
		return shared.PoolFees{}, err
	}
	if len(schedule.Points) == 0 {
		return fees, nil
	}

	bps, err := effectiveFeeBps(schedule, currentPoint)
	if err != nil {
		return shared.PoolFees{}, err
	}
	numerator, err := MulDiv(
		new(big.Int).SetUint64(uint64(bps)),
		new(big.Int).SetUint64(fees.TradeFeeDenominator),
		big.NewInt(shared.BasisPointMax),
		shared.RoundingDown,
	)
	if err != nil {
		return shared.PoolFees{}, err
	}
	tradeFeeNumerator, err := ToU64(numerator)
	if err != nil {
		return shared.PoolFees{}, err
	}
	return shared.PoolFees{
		TradeFeeNumerator:        tradeFeeNumerator,
		TradeFeeDenominator:      fees.TradeFeeDenominator,
		OwnerTradeFeeNumerator:   fees.OwnerTradeFeeNumerator,
		OwnerTradeFeeDenominator: fees.OwnerTradeFeeDenominator,
	}, nil
}

func effectiveFeeBps(schedule shared.FeeSchedule, currentPoint uint64) (uint16, error) {
	points := schedule.Points
	if currentPoint < points[0].ActivatedPoint {
		return points[0].FeeBps, nil
	}
	last := points[len(points)-1]
	if currentPoint >= last.ActivatedPoint {
		return last.FeeBps, nil
	}

	// currentPoint sits between points[i] and points[i+1].
	i := 0
	for i+1 < len(points) && points[i+1].ActivatedPoint <= currentPoint {
		i++
	}
	if schedule.Mode == shared.FeeScheduleModeFlat {
		return points[i].FeeBps, nil
	}

	a, b := points[i], points[i+1]
	span := b.ActivatedPoint - a.ActivatedPoint
	if span == 0 {
		return a.FeeBps, nil
	}
	m := uint64(a.FeeBps)
	n := uint64(b.FeeBps)
	numerator := n*(currentPoint-a.ActivatedPoint) + m*(b.ActivatedPoint-currentPoint)
	return uint16(numerator / span), nil
}
