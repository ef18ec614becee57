package math

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Stable swap curve for two assets. The invariant D satisfies
//
//	A*n^n*S + D = A*D*n^n + D^(n+1) / (n^n * prod(reserves))
//
// solved with Newton-Raphson in exact integer arithmetic. Reserves are
// upscaled by the token multiplier (and the depeg virtual price, when one
// side is a staked-asset wrapper) before any invariant math, and results
// are downscaled after, so the curve always works in the peg asset's
// native precision.

const (
	stableNCoins        = 2
	stableMaxIterations = 255
)

var (
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigFour = big.NewInt(4)
)

// stableScale applies per-side upscaling for a stable curve. Side A and
// side B carry independent multipliers; the depegged side additionally
// rebases by the oracle virtual price.
type stableScale struct {
	curve shared.CurveType
}

func newStableScale(curve shared.CurveType) (stableScale, error) {
	// amp == 0 would zero the iteration denominators and panic big.Int.Div.
	if curve.Amp == 0 {
		return stableScale{}, fmt.Errorf("%w: zero amplification coefficient", shared.ErrEmptyPool)
	}
	if curve.Depeg.Source != shared.DepegSourceNone && curve.Depeg.BaseVirtualPrice == 0 {
		return stableScale{}, fmt.Errorf("%w: depeg virtual price unresolved", shared.ErrMissingDepegAccount)
	}
	return stableScale{curve: curve}, nil
}

func (s stableScale) multiplier(side shared.DepegSource) *big.Int {
	m := s.curve.TokenMultiplier.TokenAMultiplier
	if side == shared.DepegSourceB {
		m = s.curve.TokenMultiplier.TokenBMultiplier
	}
	if m == 0 {
		m = 1
	}
	return new(big.Int).SetUint64(m)
}

func (s stableScale) upscale(amount *big.Int, side shared.DepegSource, rounding shared.Rounding) (*big.Int, error) {
	v := Mul(amount, s.multiplier(side))
	if s.curve.Depeg.Source != side {
		return v, nil
	}
	vp := new(big.Int).SetUint64(s.curve.Depeg.BaseVirtualPrice)
	return MulDiv(v, vp, big.NewInt(shared.DepegPrecision), rounding)
}

func (s stableScale) downscale(amount *big.Int, side shared.DepegSource, rounding shared.Rounding) (*big.Int, error) {
	v := new(big.Int).Set(amount)
	if s.curve.Depeg.Source == side {
		vp := new(big.Int).SetUint64(s.curve.Depeg.BaseVirtualPrice)
		out, err := MulDiv(v, big.NewInt(shared.DepegPrecision), vp, rounding)
		if err != nil {
			return nil, err
		}
		v = out
	}
	return MulDiv(v, bigOne, s.multiplier(side), rounding)
}

// stableComputeD solves the invariant for D, starting from D0 = a+b and
// iterating the closed two-asset form. Successive iterates within one
// unit terminate; running out of the iteration budget is fatal.
func stableComputeD(amp uint64, reserveA, reserveB *big.Int) (*big.Int, error) {
	sum := Add(reserveA, reserveB)
	if sum.Sign() == 0 || reserveA.Sign() == 0 || reserveB.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero stable reserve", shared.ErrEmptyPool)
	}
	n := big.NewInt(stableNCoins)
	ann := Mul(new(big.Int).SetUint64(amp), n)

	d := new(big.Int).Set(sum)
	for i := 0; i < stableMaxIterations; i++ {
		// dP = D^(n+1) / (n^n * a * b), built one division at a time to
		// stay inside integer arithmetic.
		dP := new(big.Int).Set(d)
		dP.Mul(dP, d).Div(dP, Mul(reserveA, n))
		dP.Mul(dP, d).Div(dP, Mul(reserveB, n))

		dPrev := new(big.Int).Set(d)

		// D = (ann*S + n*dP) * D / ((ann-1)*D + (n+1)*dP)
		numerator := Mul(Add(Mul(ann, sum), Mul(dP, n)), d)
		denominator := Add(Mul(new(big.Int).Sub(ann, bigOne), d), Mul(Add(n, bigOne), dP))
		d.Div(numerator, denominator)

		if withinOne(d, dPrev) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: d after %d iterations", shared.ErrInvariantDidNotConverge, stableMaxIterations)
}

// stableComputeY solves the invariant for the unknown balance y given the
// other balance x and a fixed D, via the same Newton-Raphson technique.
func stableComputeY(amp uint64, x, d *big.Int) (*big.Int, error) {
	if x.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero stable balance", shared.ErrEmptyPool)
	}
	n := big.NewInt(stableNCoins)
	ann := Mul(new(big.Int).SetUint64(amp), n)

	// c = D^3 / (n^2 * x * ann/n) collapsed stepwise; b = x + D/ann.
	c := new(big.Int).Set(d)
	c.Mul(c, d).Div(c, Mul(x, n))
	c.Mul(c, d).Div(c, Mul(ann, n))
	b := Add(x, new(big.Int).Div(d, ann))

	y := new(big.Int).Set(d)
	for i := 0; i < stableMaxIterations; i++ {
		yPrev := new(big.Int).Set(y)
		// y = (y^2 + c) / (2y + b - D)
		numerator := Add(Mul(y, y), c)
		denominator := new(big.Int).Sub(Add(Mul(y, bigTwo), b), d)
		y.Div(numerator, denominator)
		if withinOne(y, yPrev) {
			return y, nil
		}
	}
	return nil, fmt.Errorf("%w: y after %d iterations", shared.ErrInvariantDidNotConverge, stableMaxIterations)
}

func withinOne(a, b *big.Int) bool {
	diff := new(big.Int).Sub(a, b)
	return diff.CmpAbs(bigOne) <= 0
}

func stableSides(direction shared.TradeDirection) (src, dst shared.DepegSource) {
	if direction == shared.TradeDirectionAtoB {
		return shared.DepegSourceA, shared.DepegSourceB
	}
	return shared.DepegSourceB, shared.DepegSourceA
}

func stableOutAmount(curve shared.CurveType, sourceAmount, sourceReserve, destReserve *big.Int, direction shared.TradeDirection) (*big.Int, error) {
	scale, err := newStableScale(curve)
	if err != nil {
		return nil, err
	}
	srcSide, dstSide := stableSides(direction)

	srcScaled, err := scale.upscale(sourceReserve, srcSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	dstScaled, err := scale.upscale(destReserve, dstSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	inScaled, err := scale.upscale(sourceAmount, srcSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}

	d, err := stableComputeD(curve.Amp, srcScaled, dstScaled)
	if err != nil {
		return nil, err
	}
	newDest, err := stableComputeY(curve.Amp, Add(srcScaled, inScaled), d)
	if err != nil {
		return nil, err
	}
	outScaled, err := Sub(dstScaled, newDest)
	if err != nil {
		return nil, err
	}
	return scale.downscale(outScaled, dstSide, shared.RoundingDown)
}

func stableInAmount(curve shared.CurveType, destAmount, sourceReserve, destReserve *big.Int, direction shared.TradeDirection) (*big.Int, error) {
	scale, err := newStableScale(curve)
	if err != nil {
		return nil, err
	}
	srcSide, dstSide := stableSides(direction)

	srcScaled, err := scale.upscale(sourceReserve, srcSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	dstScaled, err := scale.upscale(destReserve, dstSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	outScaled, err := scale.upscale(destAmount, dstSide, shared.RoundingUp)
	if err != nil {
		return nil, err
	}
	if outScaled.Cmp(dstScaled) >= 0 {
		return nil, fmt.Errorf("%w: output would drain the reserve", shared.ErrInsufficientReserve)
	}

	d, err := stableComputeD(curve.Amp, srcScaled, dstScaled)
	if err != nil {
		return nil, err
	}
	newDest, err := Sub(dstScaled, outScaled)
	if err != nil {
		return nil, err
	}
	newSource, err := stableComputeY(curve.Amp, newDest, d)
	if err != nil {
		return nil, err
	}
	inScaled, err := Sub(newSource, srcScaled)
	if err != nil {
		return nil, err
	}
	return scale.downscale(inScaled, srcSide, shared.RoundingUp)
}

// normalizedTradeFee is the imbalance fee applied to the deviation from
// the ideal balance: tradeFee * n / (4 * (n-1)), i.e. half the trade fee
// for a two-asset pool. Rounds up against the depositor.
func normalizedTradeFee(fees shared.PoolFees, amount *big.Int) (*big.Int, error) {
	if fees.TradeFeeDenominator == 0 || fees.TradeFeeNumerator == 0 {
		return big.NewInt(0), nil
	}
	numerator := Mul(new(big.Int).SetUint64(fees.TradeFeeNumerator), bigTwo)
	denominator := Mul(new(big.Int).SetUint64(fees.TradeFeeDenominator), bigFour)
	return MulDiv(amount, numerator, denominator, shared.RoundingUp)
}

// stableImbalanceDeposit prices a non-proportional deposit: shares minted
// for the invariant growth, with the per-token imbalance fee charged on
// each side's deviation from the ideal post-deposit balance.
func stableImbalanceDeposit(curve shared.CurveType, depositA, depositB, reserveA, reserveB, lpSupply *big.Int, fees shared.PoolFees) (*big.Int, error) {
	if lpSupply.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero lp supply", shared.ErrEmptyPool)
	}
	scale, err := newStableScale(curve)
	if err != nil {
		return nil, err
	}
	oldA, err := scale.upscale(reserveA, shared.DepegSourceA, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	oldB, err := scale.upscale(reserveB, shared.DepegSourceB, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	depA, err := scale.upscale(depositA, shared.DepegSourceA, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	depB, err := scale.upscale(depositB, shared.DepegSourceB, shared.RoundingDown)
	if err != nil {
		return nil, err
	}

	d0, err := stableComputeD(curve.Amp, oldA, oldB)
	if err != nil {
		return nil, err
	}
	newA := Add(oldA, depA)
	newB := Add(oldB, depB)
	d1, err := stableComputeD(curve.Amp, newA, newB)
	if err != nil {
		return nil, err
	}
	if d1.Cmp(d0) <= 0 {
		return nil, fmt.Errorf("%w: deposit does not grow the invariant", shared.ErrEmptyPool)
	}

	adjustedA, err := imbalanceAdjusted(newA, oldA, d0, d1, fees)
	if err != nil {
		return nil, err
	}
	adjustedB, err := imbalanceAdjusted(newB, oldB, d0, d1, fees)
	if err != nil {
		return nil, err
	}
	d2, err := stableComputeD(curve.Amp, adjustedA, adjustedB)
	if err != nil {
		return nil, err
	}

	growth, err := Sub(d2, d0)
	if err != nil {
		return nil, err
	}
	return MulDiv(lpSupply, growth, d0, shared.RoundingDown)
}

func imbalanceAdjusted(newBalance, oldBalance, d0, d1 *big.Int, fees shared.PoolFees) (*big.Int, error) {
	ideal, err := MulDiv(d1, oldBalance, d0, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	diff := new(big.Int).Sub(newBalance, ideal)
	diff.Abs(diff)
	fee, err := normalizedTradeFee(fees, diff)
	if err != nil {
		return nil, err
	}
	return Sub(newBalance, fee)
}

// stableWithdrawOne prices a single-sided withdraw: burn shareIn against
// lpSupply, solve the invariant for the remaining destination balance,
// and charge the imbalance fee on both sides' deviation.
func stableWithdrawOne(curve shared.CurveType, shareIn, lpSupply, reserveA, reserveB *big.Int, fees shared.PoolFees, direction shared.TradeDirection) (*big.Int, error) {
	if lpSupply.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero lp supply", shared.ErrEmptyPool)
	}
	if shareIn.Cmp(lpSupply) > 0 {
		return nil, fmt.Errorf("%w: share exceeds supply", shared.ErrInsufficientReserve)
	}
	scale, err := newStableScale(curve)
	if err != nil {
		return nil, err
	}

	// direction names the source side of a swap; the withdrawn token is
	// the destination side.
	_, dstSide := stableSides(direction)
	outReserve, otherReserve := reserveB, reserveA
	otherSide := shared.DepegSourceA
	if dstSide == shared.DepegSourceA {
		outReserve, otherReserve = reserveA, reserveB
		otherSide = shared.DepegSourceB
	}

	outScaled, err := scale.upscale(outReserve, dstSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	otherScaled, err := scale.upscale(otherReserve, otherSide, shared.RoundingDown)
	if err != nil {
		return nil, err
	}

	d0, err := stableComputeD(curve.Amp, outScaled, otherScaled)
	if err != nil {
		return nil, err
	}
	burn, err := MulDiv(d0, shareIn, lpSupply, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	d1, err := Sub(d0, burn)
	if err != nil {
		return nil, err
	}

	newOut, err := stableComputeY(curve.Amp, otherScaled, d1)
	if err != nil {
		return nil, err
	}

	// Fee-adjust both balances toward the ideal D1 allocation, then
	// re-solve for the reachable destination balance.
	idealOut, err := MulDiv(d1, outScaled, d0, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	outDeviation, err := Sub(idealOut, newOut)
	if err != nil {
		return nil, err
	}
	outFee, err := normalizedTradeFee(fees, outDeviation)
	if err != nil {
		return nil, err
	}
	reducedOut, err := Sub(outScaled, outFee)
	if err != nil {
		return nil, err
	}

	idealOther, err := MulDiv(d1, otherScaled, d0, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	otherDeviation, err := Sub(otherScaled, idealOther)
	if err != nil {
		return nil, err
	}
	otherFee, err := normalizedTradeFee(fees, otherDeviation)
	if err != nil {
		return nil, err
	}
	reducedOther, err := Sub(otherScaled, otherFee)
	if err != nil {
		return nil, err
	}

	newOutAfterFee, err := stableComputeY(curve.Amp, reducedOther, d1)
	if err != nil {
		return nil, err
	}
	dy, err := Sub(reducedOut, newOutAfterFee)
	if err != nil {
		return nil, err
	}
	return scale.downscale(dy, dstSide, shared.RoundingDown)
}

// stableD upscales both reserves and solves for D. Exposed through the
// curve dispatch for virtual price computation.
func stableD(curve shared.CurveType, reserveA, reserveB *big.Int) (*big.Int, error) {
	scale, err := newStableScale(curve)
	if err != nil {
		return nil, err
	}
	a, err := scale.upscale(reserveA, shared.DepegSourceA, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	b, err := scale.upscale(reserveB, shared.DepegSourceB, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return stableComputeD(curve.Amp, a, b)
}
