package dynamic_vault

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// Each side of a pool sits inside a yield-bearing vault with its own LP
// mint. The vault releases strategy profit linearly over a lockup
// window, so the withdrawable amount is a pure function of the snapshot
// and the supplied timestamp: non-decreasing in time, never above
// TotalAmount.

// LockedProfitDegradationDenominator scales LockedProfitDegradation:
// the fraction of locked profit released per second, in 1e-12 units.
const LockedProfitDegradationDenominator = 1_000_000_000_000

type LockedProfitTracker struct {
	LastUpdatedLockedProfit uint64
	LastReport              int64
	LockedProfitDegradation uint64
}

// VaultState is the decoded vault account reduced to what quoting needs.
type VaultState struct {
	Enabled             bool
	TotalAmount         uint64
	LockedProfitTracker LockedProfitTracker
}

// CalculateLockedProfit returns the still-locked share of the last
// reported profit at currentTime.
func (v *VaultState) CalculateLockedProfit(currentTime int64) uint64 {
	tracker := v.LockedProfitTracker
	if currentTime < tracker.LastReport {
		return tracker.LastUpdatedLockedProfit
	}
	duration := new(big.Int).SetInt64(currentTime - tracker.LastReport)
	degradation := new(big.Int).SetUint64(tracker.LockedProfitDegradation)
	lockedRatio := new(big.Int).Mul(duration, degradation)
	denominator := big.NewInt(LockedProfitDegradationDenominator)
	if lockedRatio.Cmp(denominator) >= 0 {
		return 0
	}
	remaining := new(big.Int).Sub(denominator, lockedRatio)
	locked := new(big.Int).SetUint64(tracker.LastUpdatedLockedProfit)
	locked.Mul(locked, remaining).Div(locked, denominator)
	return locked.Uint64()
}

// UnlockedAmount is the withdrawable amount at currentTime.
func (v *VaultState) UnlockedAmount(currentTime int64) (uint64, error) {
	locked := v.CalculateLockedProfit(currentTime)
	if locked > v.TotalAmount {
		return 0, fmt.Errorf("%w: locked profit exceeds vault total", shared.ErrMathOverflow)
	}
	return v.TotalAmount - locked, nil
}

// GetAmountByShare converts vault LP shares into underlying tokens at
// currentTime.
func (v *VaultState) GetAmountByShare(currentTime int64, share, totalSupply uint64, rounding shared.Rounding) (uint64, error) {
	unlocked, err := v.UnlockedAmount(currentTime)
	if err != nil {
		return 0, err
	}
	amount, err := math.AmountByShare(
		new(big.Int).SetUint64(share),
		new(big.Int).SetUint64(unlocked),
		new(big.Int).SetUint64(totalSupply),
		rounding,
	)
	if err != nil {
		return 0, err
	}
	return math.ToU64(amount)
}

// GetUnmintAmount converts an underlying token amount into the vault LP
// shares that must be burned (or would be minted) for it at currentTime.
func (v *VaultState) GetUnmintAmount(currentTime int64, outToken, totalSupply uint64, rounding shared.Rounding) (uint64, error) {
	unlocked, err := v.UnlockedAmount(currentTime)
	if err != nil {
		return 0, err
	}
	share, err := math.ShareByAmount(
		new(big.Int).SetUint64(outToken),
		new(big.Int).SetUint64(unlocked),
		new(big.Int).SetUint64(totalSupply),
		rounding,
	)
	if err != nil {
		return 0, err
	}
	return math.ToU64(share)
}
