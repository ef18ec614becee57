package dynamic_amm

import (
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/depeg"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// SwapQuote prices a swap of inAmount of inTokenMint against the pool
// snapshot. The full path is simulated: fees off the input, deposit into
// the in-side vault, curve swap, withdrawal from the out-side vault, and
// the out-side reserve cap. slippageBps shrinks OutAmount into
// MinOutAmount.
//
// Example:
//
// quote, _ := SwapQuote(quoteData, pool.TokenAMint, big.NewInt(1_000_000), 250)
func SwapQuote(data *QuoteData, inTokenMint solanago.PublicKey, inAmount *big.Int, slippageBps uint64) (*shared.SwapQuoteResult, error) {
	if err := data.ensureTradable(); err != nil {
		return nil, err
	}
	if inAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive swap input", shared.ErrEmptyPool)
	}
	direction, err := data.direction(inTokenMint)
	if err != nil {
		return nil, err
	}
	// The depeg refresh works on a copy: the snapshot is never mutated.
	curve := data.Pool.CurveType
	if err = depeg.UpdateBaseVirtualPrice(&curve, data.CurrentTime, data.Pool.Stake, data.StakeData); err != nil {
		return nil, err
	}

	tokenAAmount, tokenBAmount, err := data.tokenAmounts()
	if err != nil {
		return nil, err
	}
	inReserve, outReserve := tokenAAmount, tokenBAmount
	inVault, outVault := data.VaultA, data.VaultB
	inVaultLpSupply, outVaultLpSupply := data.VaultALpSupply, data.VaultBLpSupply
	inPoolVaultLp := data.PoolVaultALp
	outVaultReserve := data.VaultBReserve
	if direction == shared.TradeDirectionBtoA {
		inReserve, outReserve = tokenBAmount, tokenAAmount
		inVault, outVault = data.VaultB, data.VaultA
		inVaultLpSupply, outVaultLpSupply = data.VaultBLpSupply, data.VaultALpSupply
		inPoolVaultLp = data.PoolVaultBLp
		outVaultReserve = data.VaultAReserve
	}

	fees, err := math.EffectiveFees(data.Pool.Fees, data.Pool.FeeSchedule, data.CurrentPoint())
	if err != nil {
		return nil, err
	}
	// Both fees are assessed on the raw input. The owner fee leaves
	// before the vault deposit, the trade fee after it.
	tradeFee, err := math.TradingFee(fees, inAmount)
	if err != nil {
		return nil, err
	}
	ownerFee, err := math.OwnerTradingFee(fees, inAmount)
	if err != nil {
		return nil, err
	}

	depositAmount, err := math.ToU64(new(big.Int).Sub(inAmount, ownerFee))
	if err != nil {
		return nil, err
	}
	inVaultLpMinted, err := inVault.GetUnmintAmount(data.CurrentTime, depositAmount, inVaultLpSupply, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	inVault.TotalAmount += depositAmount
	// The settlement program measures the deposit as the growth of the
	// pool's whole vault-LP holding, not as the value of the minted
	// shares alone. The floors differ, so the quote does too.
	afterInTotal, err := inVault.GetAmountByShare(data.CurrentTime, inPoolVaultLp+inVaultLpMinted, inVaultLpSupply+inVaultLpMinted, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	actualIn := new(big.Int).Sub(new(big.Int).SetUint64(afterInTotal), inReserve)
	swapIn := new(big.Int).Sub(actualIn, tradeFee)
	if swapIn.Sign() <= 0 {
		return nil, fmt.Errorf("%w: input consumed by fees", shared.ErrEmptyPool)
	}

	destAmount, err := math.ComputeOutAmount(curve, swapIn, inReserve, outReserve, direction)
	if err != nil {
		return nil, err
	}
	destU64, err := math.ToU64(destAmount)
	if err != nil {
		return nil, err
	}
	outVaultLpBurned, err := outVault.GetUnmintAmount(data.CurrentTime, destU64, outVaultLpSupply, shared.RoundingUp)
	if err != nil {
		return nil, err
	}
	outAmount, err := outVault.GetAmountByShare(data.CurrentTime, outVaultLpBurned, outVaultLpSupply, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	if outAmount > outVaultReserve {
		return nil, fmt.Errorf("%w: out amount %d exceeds vault reserve %d", shared.ErrInsufficientReserve, outAmount, outVaultReserve)
	}

	out := new(big.Int).SetUint64(outAmount)
	minOut, err := minimumAmountWithSlippage(out, slippageBps)
	if err != nil {
		return nil, err
	}
	return &shared.SwapQuoteResult{
		OutAmount:    out,
		MinOutAmount: minOut,
		TradeFee:     tradeFee,
		OwnerFee:     ownerFee,
	}, nil
}

// MaxSwapOutAmount is the largest output the pool can settle for
// outTokenMint: the logical reserve capped by the vault token account.
func MaxSwapOutAmount(data *QuoteData, outTokenMint solanago.PublicKey) (*big.Int, error) {
	tokenAAmount, tokenBAmount, err := data.tokenAmounts()
	if err != nil {
		return nil, err
	}
	var reserve *big.Int
	var vaultReserve uint64
	switch {
	case outTokenMint.Equals(data.Pool.TokenAMint):
		reserve, vaultReserve = tokenAAmount, data.VaultAReserve
	case outTokenMint.Equals(data.Pool.TokenBMint):
		reserve, vaultReserve = tokenBAmount, data.VaultBReserve
	default:
		return nil, fmt.Errorf("%w: %s is not a pool mint", shared.ErrInvalidMint, outTokenMint)
	}
	settleCap := new(big.Int).SetUint64(vaultReserve)
	if reserve.Cmp(settleCap) <= 0 {
		return reserve, nil
	}
	return settleCap, nil
}

// MaxSwapInAmount estimates the largest input of inTokenMint the pool can
// absorb: the curve inverted against the capped output, with fees taken
// off. An estimate for sizing, not a settlement bound.
func MaxSwapInAmount(data *QuoteData, inTokenMint solanago.PublicKey) (*big.Int, error) {
	direction, err := data.direction(inTokenMint)
	if err != nil {
		return nil, err
	}
	curve := data.Pool.CurveType
	if err = depeg.UpdateBaseVirtualPrice(&curve, data.CurrentTime, data.Pool.Stake, data.StakeData); err != nil {
		return nil, err
	}
	tokenAAmount, tokenBAmount, err := data.tokenAmounts()
	if err != nil {
		return nil, err
	}
	inReserve, outReserve := tokenAAmount, tokenBAmount
	outMint := data.Pool.TokenBMint
	if direction == shared.TradeDirectionBtoA {
		inReserve, outReserve = tokenBAmount, tokenAAmount
		outMint = data.Pool.TokenAMint
	}

	maxOut, err := MaxSwapOutAmount(data, outMint)
	if err != nil {
		return nil, err
	}
	// The curve cannot pay out the whole reserve.
	if maxOut.Cmp(outReserve) >= 0 && maxOut.Sign() > 0 {
		maxOut = new(big.Int).Sub(maxOut, big.NewInt(1))
	}
	inAmount, err := math.ComputeInAmount(curve, maxOut, inReserve, outReserve, direction)
	if err != nil {
		return nil, err
	}

	fees, err := math.EffectiveFees(data.Pool.Fees, data.Pool.FeeSchedule, data.CurrentPoint())
	if err != nil {
		return nil, err
	}
	tradeFee, err := math.TradingFee(fees, inAmount)
	if err != nil {
		return nil, err
	}
	ownerFee, err := math.OwnerTradingFee(fees, inAmount)
	if err != nil {
		return nil, err
	}
	inAmount.Sub(inAmount, tradeFee)
	inAmount.Sub(inAmount, ownerFee)
	if inAmount.Sign() < 0 {
		inAmount.SetInt64(0)
	}
	return inAmount, nil
}

// minimumAmountWithSlippage shrinks amount by its truncated slippage
// slice. The slice truncates, so the minimum never loses an extra unit
// to rounding.
func minimumAmountWithSlippage(amount *big.Int, slippageBps uint64) (*big.Int, error) {
	slice, err := slippageSlice(amount, slippageBps, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Sub(amount, slice), nil
}

// maximumAmountWithSlippage grows amount by its slippage slice, rounded
// up against the payer.
func maximumAmountWithSlippage(amount *big.Int, slippageBps uint64) (*big.Int, error) {
	slice, err := slippageSlice(amount, slippageBps, shared.RoundingUp)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(amount, slice), nil
}

func slippageSlice(amount *big.Int, slippageBps uint64, rounding shared.Rounding) (*big.Int, error) {
	if slippageBps > shared.BasisPointMax {
		return nil, fmt.Errorf("%w: slippage %d bps exceeds %d", shared.ErrMathOverflow, slippageBps, shared.BasisPointMax)
	}
	return math.MulDiv(amount, new(big.Int).SetUint64(slippageBps), big.NewInt(shared.BasisPointMax), rounding)
}
