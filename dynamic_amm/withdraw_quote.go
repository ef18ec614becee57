package dynamic_amm

import (
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/depeg"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
	"github.com/krazyTry/dynamic-amm-go/dynamic_vault"
)

// WithdrawQuote prices burning poolTokenIn pool LP tokens. A nil
// outTokenMint quotes a proportional withdrawal of both sides; a set one
// quotes a single-sided withdrawal through the stable invariant.
// Withdrawals are not activation-gated: liquidity can always leave.
//
// Example:
//
// quote, _ := WithdrawQuote(quoteData, 500_000, nil, 250)
func WithdrawQuote(data *QuoteData, poolTokenIn uint64, outTokenMint *solanago.PublicKey, slippageBps uint64) (*shared.WithdrawQuoteResult, error) {
	if poolTokenIn == 0 {
		return nil, fmt.Errorf("%w: zero pool token input", shared.ErrEmptyPool)
	}
	if poolTokenIn > data.PoolLpSupply {
		return nil, fmt.Errorf("%w: burn %d exceeds pool lp supply %d", shared.ErrInsufficientReserve, poolTokenIn, data.PoolLpSupply)
	}
	if outTokenMint == nil {
		return balancedWithdraw(data, poolTokenIn, slippageBps)
	}
	return singleSideWithdraw(data, poolTokenIn, *outTokenMint, slippageBps)
}

func balancedWithdraw(data *QuoteData, poolTokenIn, slippageBps uint64) (*shared.WithdrawQuoteResult, error) {
	share := new(big.Int).SetUint64(poolTokenIn)
	lpSupply := new(big.Int).SetUint64(data.PoolLpSupply)

	outA, err := proportionalVaultWithdraw(data.VaultA, data.CurrentTime, share, lpSupply, data.PoolVaultALp, data.VaultALpSupply, data.VaultAReserve)
	if err != nil {
		return nil, fmt.Errorf("token A side: %w", err)
	}
	outB, err := proportionalVaultWithdraw(data.VaultB, data.CurrentTime, share, lpSupply, data.PoolVaultBLp, data.VaultBLpSupply, data.VaultBReserve)
	if err != nil {
		return nil, fmt.Errorf("token B side: %w", err)
	}

	minA, err := minimumAmountWithSlippage(outA, slippageBps)
	if err != nil {
		return nil, err
	}
	minB, err := minimumAmountWithSlippage(outB, slippageBps)
	if err != nil {
		return nil, err
	}
	return &shared.WithdrawQuoteResult{
		PoolTokenIn:        share,
		TokenAOutAmount:    outA,
		TokenBOutAmount:    outB,
		MinTokenAOutAmount: minA,
		MinTokenBOutAmount: minB,
	}, nil
}

// proportionalVaultWithdraw burns the pool's pro-rata slice of one
// vault's LP and converts it to tokens, capped by the vault reserve.
func proportionalVaultWithdraw(vault dynamic_vault.VaultState, currentTime int64, share, lpSupply *big.Int, poolVaultLp, vaultLpSupply, vaultReserve uint64) (*big.Int, error) {
	vaultLpBurned, err := math.MulDiv(new(big.Int).SetUint64(poolVaultLp), share, lpSupply, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	burned, err := math.ToU64(vaultLpBurned)
	if err != nil {
		return nil, err
	}
	out, err := vault.GetAmountByShare(currentTime, burned, vaultLpSupply, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	if out > vaultReserve {
		return nil, fmt.Errorf("%w: out amount %d exceeds vault reserve %d", shared.ErrInsufficientReserve, out, vaultReserve)
	}
	return new(big.Int).SetUint64(out), nil
}

func singleSideWithdraw(data *QuoteData, poolTokenIn uint64, outTokenMint solanago.PublicKey, slippageBps uint64) (*shared.WithdrawQuoteResult, error) {
	// Single-sided withdrawal of token X is a proportional withdrawal
	// plus a swap of the other side into X, so it routes the invariant.
	var direction shared.TradeDirection
	switch {
	case outTokenMint.Equals(data.Pool.TokenAMint):
		direction = shared.TradeDirectionBtoA
	case outTokenMint.Equals(data.Pool.TokenBMint):
		direction = shared.TradeDirectionAtoB
	default:
		return nil, fmt.Errorf("%w: %s is not a pool mint", shared.ErrInvalidMint, outTokenMint)
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
	fees, err := math.EffectiveFees(data.Pool.Fees, data.Pool.FeeSchedule, data.CurrentPoint())
	if err != nil {
		return nil, err
	}

	outToken, err := math.ComputeWithdrawOne(
		curve,
		new(big.Int).SetUint64(poolTokenIn),
		new(big.Int).SetUint64(data.PoolLpSupply),
		tokenAAmount,
		tokenBAmount,
		fees,
		direction,
	)
	if err != nil {
		return nil, err
	}
	outU64, err := math.ToU64(outToken)
	if err != nil {
		return nil, err
	}

	outVault, outVaultLpSupply, outVaultReserve := data.VaultA, data.VaultALpSupply, data.VaultAReserve
	if direction == shared.TradeDirectionAtoB {
		outVault, outVaultLpSupply, outVaultReserve = data.VaultB, data.VaultBLpSupply, data.VaultBReserve
	}
	vaultLpBurned, err := outVault.GetUnmintAmount(data.CurrentTime, outU64, outVaultLpSupply, shared.RoundingUp)
	if err != nil {
		return nil, err
	}
	outAmount, err := outVault.GetAmountByShare(data.CurrentTime, vaultLpBurned, outVaultLpSupply, shared.RoundingDown)
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
	result := &shared.WithdrawQuoteResult{
		PoolTokenIn:        new(big.Int).SetUint64(poolTokenIn),
		TokenAOutAmount:    big.NewInt(0),
		TokenBOutAmount:    big.NewInt(0),
		MinTokenAOutAmount: big.NewInt(0),
		MinTokenBOutAmount: big.NewInt(0),
	}
	if direction == shared.TradeDirectionBtoA {
		result.TokenAOutAmount = out
		result.MinTokenAOutAmount = minOut
	} else {
		result.TokenBOutAmount = out
		result.MinTokenBOutAmount = minOut
	}
	return result, nil
}
