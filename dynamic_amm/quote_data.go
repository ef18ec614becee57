package dynamic_amm

import (
	"errors"
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
	"github.com/krazyTry/dynamic-amm-go/dynamic_vault"
)

var (
	ErrPoolDisabled     = errors.New("pool is disabled")
	ErrPoolNotActivated = errors.New("pool is not activated yet")
)

// QuoteData is a consistent snapshot of every account a quote reads.
// All quote functions are pure over it: same snapshot, same answer.
type QuoteData struct {
	Pool *shared.PoolState

	VaultA dynamic_vault.VaultState
	VaultB dynamic_vault.VaultState

	// LP supplies of the two vault LP mints and the pool LP mint.
	VaultALpSupply uint64
	VaultBLpSupply uint64
	PoolLpSupply   uint64

	// The pool's balances of each vault's LP token. These are the pool's
	// claim on the vaults; the logical reserves derive from them.
	PoolVaultALp uint64
	PoolVaultBLp uint64

	// Balances of the vault token accounts. Withdrawals settle from
	// these, so quoted outputs are capped by them.
	VaultAReserve uint64
	VaultBReserve uint64

	CurrentSlot uint64
	CurrentTime int64

	// Raw account bytes for the depeg oracle, keyed by address. Only
	// depeg stable pools need an entry.
	StakeData map[solanago.PublicKey][]byte
}

// CurrentPoint returns the activation clock reading: slots or seconds,
// per the pool's activation type.
func (d *QuoteData) CurrentPoint() uint64 {
	if d.Pool.ActivationType == shared.ActivationTypeTimestamp {
		return uint64(d.CurrentTime)
	}
	return d.CurrentSlot
}

func (d *QuoteData) ensureTradable() error {
	if !d.Pool.Enabled {
		return ErrPoolDisabled
	}
	if d.CurrentPoint() < d.Pool.ActivationPoint {
		return fmt.Errorf("%w: point %d < activation point %d", ErrPoolNotActivated, d.CurrentPoint(), d.Pool.ActivationPoint)
	}
	return nil
}

// tokenAmounts converts the pool's vault LP holdings into the logical
// token reserves at the snapshot time. Truncated: the pool never claims
// more than the vaults would pay.
func (d *QuoteData) tokenAmounts() (*big.Int, *big.Int, error) {
	tokenAAmount, err := d.VaultA.GetAmountByShare(d.CurrentTime, d.PoolVaultALp, d.VaultALpSupply, shared.RoundingDown)
	if err != nil {
		return nil, nil, fmt.Errorf("token A reserve: %w", err)
	}
	tokenBAmount, err := d.VaultB.GetAmountByShare(d.CurrentTime, d.PoolVaultBLp, d.VaultBLpSupply, shared.RoundingDown)
	if err != nil {
		return nil, nil, fmt.Errorf("token B reserve: %w", err)
	}
	return new(big.Int).SetUint64(tokenAAmount), new(big.Int).SetUint64(tokenBAmount), nil
}

// direction resolves which side inTokenMint is, A-in or B-in.
func (d *QuoteData) direction(inTokenMint solanago.PublicKey) (shared.TradeDirection, error) {
	switch {
	case inTokenMint.Equals(d.Pool.TokenAMint):
		return shared.TradeDirectionAtoB, nil
	case inTokenMint.Equals(d.Pool.TokenBMint):
		return shared.TradeDirectionBtoA, nil
	default:
		return 0, fmt.Errorf("%w: %s is not a pool mint", shared.ErrInvalidMint, inTokenMint)
	}
}
