package dynamic_amm

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/depeg"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
	"github.com/krazyTry/dynamic-amm-go/dynamic_vault"
)

// DepositQuote prices a liquidity deposit.
//
// With balance true exactly one of tokenAIn / tokenBIn must be non-zero;
// the other side is derived proportionally (rounded up, against the
// depositor). A constant product pool then mints by the supplied side's
// share of its reserve; a stable pool routes even this nominally
// balanced call through the invariant, because the vault-adjusted actual
// amounts rarely match the nominal ratio exactly.
//
// With balance false both amounts are taken as given and priced through
// the stable invariant; constant product pools reject this.
//
// Example:
//
// quote, _ := DepositQuote(quoteData, 1_000_000, 0, true, 250)
func DepositQuote(data *QuoteData, tokenAIn, tokenBIn uint64, balance bool, slippageBps uint64) (*shared.DepositQuoteResult, error) {
	if err := data.ensureTradable(); err != nil {
		return nil, err
	}
	if tokenAIn == 0 && tokenBIn == 0 {
		return nil, fmt.Errorf("%w: zero deposit", shared.ErrEmptyPool)
	}
	// The depeg refresh works on a copy: the snapshot is never mutated.
	curve := data.Pool.CurveType
	if err := depeg.UpdateBaseVirtualPrice(&curve, data.CurrentTime, data.Pool.Stake, data.StakeData); err != nil {
		return nil, err
	}
	tokenAAmount, tokenBAmount, err := data.tokenAmounts()
	if err != nil {
		return nil, err
	}

	var poolTokenOut, aIn, bIn *big.Int
	if balance {
		poolTokenOut, aIn, bIn, err = balancedDeposit(data, curve, tokenAIn, tokenBIn, tokenAAmount, tokenBAmount)
	} else {
		poolTokenOut, aIn, bIn, err = imbalancedDeposit(data, curve, tokenAIn, tokenBIn, tokenAAmount, tokenBAmount)
	}
	if err != nil {
		return nil, err
	}
	if poolTokenOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: deposit mints no pool tokens", shared.ErrEmptyPool)
	}

	minPoolTokenOut, err := minimumAmountWithSlippage(poolTokenOut, slippageBps)
	if err != nil {
		return nil, err
	}
	maxAIn, err := maximumAmountWithSlippage(aIn, slippageBps)
	if err != nil {
		return nil, err
	}
	maxBIn, err := maximumAmountWithSlippage(bIn, slippageBps)
	if err != nil {
		return nil, err
	}
	return &shared.DepositQuoteResult{
		PoolTokenOut:      poolTokenOut,
		MinPoolTokenOut:   minPoolTokenOut,
		TokenAInAmount:    aIn,
		TokenBInAmount:    bIn,
		MaxTokenAInAmount: maxAIn,
		MaxTokenBInAmount: maxBIn,
	}, nil
}

func balancedDeposit(data *QuoteData, curve shared.CurveType, tokenAIn, tokenBIn uint64, tokenAAmount, tokenBAmount *big.Int) (*big.Int, *big.Int, *big.Int, error) {
	if tokenAIn != 0 && tokenBIn != 0 {
		return nil, nil, nil, fmt.Errorf("%w: balanced deposit takes exactly one token amount", shared.ErrCapabilityUnsupported)
	}

	var aIn, bIn, suppliedIn, suppliedReserve *big.Int
	var err error
	if tokenAIn != 0 {
		aIn = new(big.Int).SetUint64(tokenAIn)
		bIn, err = math.MulDiv(aIn, tokenBAmount, tokenAAmount, shared.RoundingUp)
		suppliedIn, suppliedReserve = aIn, tokenAAmount
	} else {
		bIn = new(big.Int).SetUint64(tokenBIn)
		aIn, err = math.MulDiv(bIn, tokenAAmount, tokenBAmount, shared.RoundingUp)
		suppliedIn, suppliedReserve = bIn, tokenBAmount
	}
	if err != nil {
		return nil, nil, nil, err
	}

	// A stable pool prices even a nominally balanced deposit through the
	// invariant: the vault round trip nudges the actual amounts off the
	// nominal ratio.
	if curve.Kind == shared.CurveKindStable {
		aU64, err := math.ToU64(aIn)
		if err != nil {
			return nil, nil, nil, err
		}
		bU64, err := math.ToU64(bIn)
		if err != nil {
			return nil, nil, nil, err
		}
		poolTokenOut, _, _, err := imbalancedDeposit(data, curve, aU64, bU64, tokenAAmount, tokenBAmount)
		if err != nil {
			return nil, nil, nil, err
		}
		return poolTokenOut, aIn, bIn, nil
	}

	poolTokenOut, err := math.ShareByAmount(suppliedIn, suppliedReserve, new(big.Int).SetUint64(data.PoolLpSupply), shared.RoundingDown)
	if err != nil {
		return nil, nil, nil, err
	}
	return poolTokenOut, aIn, bIn, nil
}

func imbalancedDeposit(data *QuoteData, curve shared.CurveType, tokenAIn, tokenBIn uint64, tokenAAmount, tokenBAmount *big.Int) (*big.Int, *big.Int, *big.Int, error) {
	// The invariant prices what actually lands in the pool, which is the
	// deposit after each vault's own share rounding.
	actualA, err := vaultAdjustedDeposit(data.VaultA, data.CurrentTime, tokenAIn, data.PoolVaultALp, data.VaultALpSupply, tokenAAmount)
	if err != nil {
		return nil, nil, nil, err
	}
	actualB, err := vaultAdjustedDeposit(data.VaultB, data.CurrentTime, tokenBIn, data.PoolVaultBLp, data.VaultBLpSupply, tokenBAmount)
	if err != nil {
		return nil, nil, nil, err
	}
	fees, err := math.EffectiveFees(data.Pool.Fees, data.Pool.FeeSchedule, data.CurrentPoint())
	if err != nil {
		return nil, nil, nil, err
	}
	poolTokenOut, err := math.ComputeImbalanceDeposit(
		curve,
		actualA,
		actualB,
		tokenAAmount,
		tokenBAmount,
		new(big.Int).SetUint64(data.PoolLpSupply),
		fees,
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return poolTokenOut, new(big.Int).SetUint64(tokenAIn), new(big.Int).SetUint64(tokenBIn), nil
}

// vaultAdjustedDeposit runs amount through the vault mint round trip and
// returns the growth of the pool's whole vault-LP holding, the way the
// settlement program measures a deposit. before is the holding's value
// ahead of the deposit.
func vaultAdjustedDeposit(vault dynamic_vault.VaultState, currentTime int64, amount, poolVaultLp, lpSupply uint64, before *big.Int) (*big.Int, error) {
	if amount == 0 {
		return big.NewInt(0), nil
	}
	minted, err := vault.GetUnmintAmount(currentTime, amount, lpSupply, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	vault.TotalAmount += amount
	after, err := vault.GetAmountByShare(currentTime, poolVaultLp+minted, lpSupply+minted, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Sub(new(big.Int).SetUint64(after), before), nil
}
