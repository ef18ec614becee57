package dynamic_amm

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
	"github.com/krazyTry/dynamic-amm-go/dynamic_vault"
)

// identityQuoteData builds a snapshot whose vaults convert shares one to
// one: LP supply equals the vault total, the pool owns every share, and
// nothing is locked. Quotes then hit the curve numbers exactly.
func identityQuoteData(reserveA, reserveB uint64, curve shared.CurveType, fees shared.PoolFees) *QuoteData {
	pool := &shared.PoolState{
		TokenAMint: solanago.NewWallet().PublicKey(),
		TokenBMint: solanago.NewWallet().PublicKey(),
		Enabled:    true,
		Fees:       fees,
		CurveType:  curve,
	}
	return &QuoteData{
		Pool:           pool,
		VaultA:         dynamic_vault.VaultState{Enabled: true, TotalAmount: reserveA},
		VaultB:         dynamic_vault.VaultState{Enabled: true, TotalAmount: reserveB},
		VaultALpSupply: reserveA,
		VaultBLpSupply: reserveB,
		PoolLpSupply:   100_000_000,
		PoolVaultALp:   reserveA,
		PoolVaultBLp:   reserveB,
		VaultAReserve:  reserveA,
		VaultBReserve:  reserveB,
		CurrentSlot:    100,
		CurrentTime:    1_700_000_000,
	}
}

var (
	testCpCurve = shared.CurveType{Kind: shared.CurveKindConstantProduct}

	testStableCurve = shared.CurveType{
		Kind: shared.CurveKindStable,
		Amp:  100,
		TokenMultiplier: shared.TokenMultiplier{
			TokenAMultiplier: 1,
			TokenBMultiplier: 1,
		},
	}

	testFees = shared.PoolFees{
		TradeFeeNumerator:        2_500,
		TradeFeeDenominator:      1_000_000,
		OwnerTradeFeeNumerator:   0,
		OwnerTradeFeeDenominator: 1_000_000,
	}
)

func TestSwapQuoteConstantProduct(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	quote, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 100)
	if err != nil {
		t.Fatalf("SwapQuote failed: %v", err)
	}
	if quote.TradeFee.Int64() != 2_500 {
		t.Fatalf("trade fee = %v, want 2500", quote.TradeFee)
	}
	if quote.OwnerFee.Sign() != 0 {
		t.Fatalf("owner fee = %v, want 0", quote.OwnerFee)
	}
	// 997_500 after fee: 1e9 * 997_500 / 10_997_500.
	if quote.OutAmount.Int64() != 90_702_432 {
		t.Fatalf("out = %v, want 90702432", quote.OutAmount)
	}
	if quote.MinOutAmount.Int64() != 89_795_408 {
		t.Fatalf("min out = %v, want 89795408", quote.MinOutAmount)
	}
}

func TestSwapQuoteOwnerFee(t *testing.T) {
	fees := testFees
	fees.OwnerTradeFeeNumerator = 500
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, fees)
	quote, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("SwapQuote failed: %v", err)
	}
	if quote.OwnerFee.Int64() != 500 {
		t.Fatalf("owner fee = %v, want 500", quote.OwnerFee)
	}
	// The owner fee shrinks the swapped amount.
	if quote.OutAmount.Int64() >= 90_702_432 {
		t.Fatalf("out = %v, should be below the fee-free case", quote.OutAmount)
	}
}

func TestSwapQuoteBothDirections(t *testing.T) {
	data := identityQuoteData(1_000_000_000, 1_000_000_000, testStableCurve, testFees)
	forward, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(5_000_000), 0)
	if err != nil {
		t.Fatalf("A to B failed: %v", err)
	}
	backward, err := SwapQuote(data, data.Pool.TokenBMint, big.NewInt(5_000_000), 0)
	if err != nil {
		t.Fatalf("B to A failed: %v", err)
	}
	// A balanced stable pool is symmetric.
	if forward.OutAmount.Cmp(backward.OutAmount) != 0 {
		t.Fatalf("asymmetric quotes: %v vs %v", forward.OutAmount, backward.OutAmount)
	}
}

func TestSwapQuoteInvalidMint(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	_, err := SwapQuote(data, solanago.NewWallet().PublicKey(), big.NewInt(1_000), 0)
	if !errors.Is(err, shared.ErrInvalidMint) {
		t.Fatalf("expected ErrInvalidMint, got %v", err)
	}
}

func TestSwapQuoteDisabledPool(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	data.Pool.Enabled = false
	_, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000), 0)
	if !errors.Is(err, ErrPoolDisabled) {
		t.Fatalf("expected ErrPoolDisabled, got %v", err)
	}
}

func TestSwapQuoteBeforeActivation(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	data.Pool.ActivationPoint = data.CurrentSlot + 1
	_, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000), 0)
	if !errors.Is(err, ErrPoolNotActivated) {
		t.Fatalf("expected ErrPoolNotActivated, got %v", err)
	}

	// Timestamp-activated pools read the clock instead of the slot.
	data.Pool.ActivationType = shared.ActivationTypeTimestamp
	data.Pool.ActivationPoint = uint64(data.CurrentTime)
	if _, err = SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000), 0); err != nil {
		t.Fatalf("activation boundary should trade: %v", err)
	}
}

func TestSwapQuoteReserveCap(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	data.VaultBReserve = 1_000
	_, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if !errors.Is(err, shared.ErrInsufficientReserve) {
		t.Fatalf("expected ErrInsufficientReserve, got %v", err)
	}
}

func TestSwapQuoteFeeSchedule(t *testing.T) {
	fees := shared.PoolFees{
		TradeFeeNumerator:        100_000, // 10% at pool start
		TradeFeeDenominator:      1_000_000,
		OwnerTradeFeeDenominator: 1_000_000,
	}
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, fees)
	data.Pool.FeeSchedule = shared.FeeSchedule{
		Mode: shared.FeeScheduleModeFlat,
		Points: []shared.FeePoint{
			{FeeBps: 1_000, ActivatedPoint: 0},
			{FeeBps: 25, ActivatedPoint: 50},
		},
	}
	quote, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("SwapQuote failed: %v", err)
	}
	// At slot 100 the decayed 25 bps step applies, not the static 10%.
	if quote.TradeFee.Int64() != 2_500 {
		t.Fatalf("scheduled trade fee = %v, want 2500", quote.TradeFee)
	}
}

func TestMaxSwapOutAmount(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	max, err := MaxSwapOutAmount(data, data.Pool.TokenBMint)
	if err != nil {
		t.Fatalf("MaxSwapOutAmount failed: %v", err)
	}
	if max.Int64() != 1_000_000_000 {
		t.Fatalf("max out = %v, want the full logical reserve", max)
	}

	// A drained vault caps below the logical reserve.
	data.VaultBReserve = 400_000_000
	max, err = MaxSwapOutAmount(data, data.Pool.TokenBMint)
	if err != nil {
		t.Fatalf("MaxSwapOutAmount failed: %v", err)
	}
	if max.Int64() != 400_000_000 {
		t.Fatalf("max out = %v, want the vault reserve", max)
	}
}

func TestMaxSwapInAmount(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	max, err := MaxSwapInAmount(data, data.Pool.TokenAMint)
	if err != nil {
		t.Fatalf("MaxSwapInAmount failed: %v", err)
	}
	if max.Sign() <= 0 {
		t.Fatalf("max in = %v, want positive", max)
	}
}

func TestDepositQuoteBalanced(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	quote, err := DepositQuote(data, 1_000_000, 0, true, 0)
	if err != nil {
		t.Fatalf("DepositQuote failed: %v", err)
	}
	// 10% of the A reserve mints 10% of the LP supply and needs 10% of B.
	if quote.PoolTokenOut.Int64() != 10_000_000 {
		t.Fatalf("pool token out = %v, want 10000000", quote.PoolTokenOut)
	}
	if quote.TokenAInAmount.Int64() != 1_000_000 {
		t.Fatalf("token A in = %v", quote.TokenAInAmount)
	}
	if quote.TokenBInAmount.Int64() != 100_000_000 {
		t.Fatalf("token B in = %v, want 100000000", quote.TokenBInAmount)
	}
	if quote.MinPoolTokenOut.Cmp(quote.PoolTokenOut) != 0 {
		t.Fatalf("zero slippage changed the minimum: %v", quote.MinPoolTokenOut)
	}
}

func TestDepositQuoteBalancedBSide(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	quote, err := DepositQuote(data, 0, 100_000_000, true, 100)
	if err != nil {
		t.Fatalf("DepositQuote failed: %v", err)
	}
	if quote.PoolTokenOut.Int64() != 10_000_000 {
		t.Fatalf("pool token out = %v, want 10000000", quote.PoolTokenOut)
	}
	if quote.TokenAInAmount.Int64() != 1_000_000 {
		t.Fatalf("derived token A in = %v, want 1000000", quote.TokenAInAmount)
	}
	// Slippage widens the required inputs.
	if quote.MaxTokenAInAmount.Int64() != 1_010_000 {
		t.Fatalf("max token A in = %v, want 1010000", quote.MaxTokenAInAmount)
	}
}

func TestDepositQuoteBalancedBothAmounts(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	_, err := DepositQuote(data, 1_000, 1_000, true, 0)
	if !errors.Is(err, shared.ErrCapabilityUnsupported) {
		t.Fatalf("expected ErrCapabilityUnsupported, got %v", err)
	}
}

func TestDepositQuoteImbalanceConstantProduct(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	_, err := DepositQuote(data, 1_000, 2_000, false, 0)
	if !errors.Is(err, shared.ErrImbalancedDepositUnsupported) {
		t.Fatalf("expected ErrImbalancedDepositUnsupported, got %v", err)
	}
}

func TestDepositQuoteImbalanceStable(t *testing.T) {
	data := identityQuoteData(1_000_000_000, 1_000_000_000, testStableCurve, testFees)
	quote, err := DepositQuote(data, 2_000_000, 500_000, false, 0)
	if err != nil {
		t.Fatalf("DepositQuote failed: %v", err)
	}
	if quote.PoolTokenOut.Sign() <= 0 {
		t.Fatalf("imbalanced stable deposit minted %v", quote.PoolTokenOut)
	}
	// 2.5e6 of value against 2e9 at supply 1e8 mints about 125_000,
	// less the imbalance fee.
	if quote.PoolTokenOut.Int64() > 125_000 {
		t.Fatalf("minted %v, more than the proportional bound", quote.PoolTokenOut)
	}
}

func TestWithdrawQuoteBalanced(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	quote, err := WithdrawQuote(data, 10_000_000, nil, 0)
	if err != nil {
		t.Fatalf("WithdrawQuote failed: %v", err)
	}
	// Burning 10% of the supply returns 10% of each side.
	if quote.TokenAOutAmount.Int64() != 1_000_000 {
		t.Fatalf("token A out = %v, want 1000000", quote.TokenAOutAmount)
	}
	if quote.TokenBOutAmount.Int64() != 100_000_000 {
		t.Fatalf("token B out = %v, want 100000000", quote.TokenBOutAmount)
	}
	if quote.MinTokenAOutAmount.Cmp(quote.TokenAOutAmount) != 0 {
		t.Fatalf("zero slippage changed the minimum")
	}
}

func TestWithdrawQuoteSingleSidedConstantProduct(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	mint := data.Pool.TokenAMint
	_, err := WithdrawQuote(data, 1_000_000, &mint, 0)
	if !errors.Is(err, shared.ErrCapabilityUnsupported) {
		t.Fatalf("expected ErrCapabilityUnsupported, got %v", err)
	}
}

func TestWithdrawQuoteSingleSidedStable(t *testing.T) {
	data := identityQuoteData(1_000_000_000, 1_000_000_000, testStableCurve, testFees)
	mint := data.Pool.TokenAMint
	quote, err := WithdrawQuote(data, 1_000_000, &mint, 0)
	if err != nil {
		t.Fatalf("WithdrawQuote failed: %v", err)
	}
	if quote.TokenBOutAmount.Sign() != 0 {
		t.Fatalf("single-sided withdraw paid token B: %v", quote.TokenBOutAmount)
	}
	// 1% of the supply is worth about 2e7 all in one token, minus
	// slippage and the imbalance fee.
	out := quote.TokenAOutAmount.Int64()
	if out < 19_000_000 || out > 20_000_000 {
		t.Fatalf("token A out = %v, out of range", out)
	}
}

func TestWithdrawQuoteZeroInput(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	if _, err := WithdrawQuote(data, 0, nil, 0); !errors.Is(err, shared.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestWithdrawQuoteExceedsSupply(t *testing.T) {
	data := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	_, err := WithdrawQuote(data, data.PoolLpSupply+1, nil, 0)
	if !errors.Is(err, shared.ErrInsufficientReserve) {
		t.Fatalf("expected ErrInsufficientReserve, got %v", err)
	}
}

func TestSwapQuoteDepegCache(t *testing.T) {
	curve := testStableCurve
	data := identityQuoteData(1_000_000_000, 2_000_000_000, curve, testFees)
	data.Pool.CurveType.Depeg = shared.Depeg{
		BaseVirtualPrice: 2 * shared.DepegPrecision,
		BaseCacheUpdated: uint64(data.CurrentTime) - 10,
		Source:           shared.DepegSourceA,
	}
	quote, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("fresh depeg cache should quote: %v", err)
	}
	// 1 staked token is worth about 2 base tokens.
	if quote.OutAmount.Int64() < 1_900_000 || quote.OutAmount.Int64() > 2_000_000 {
		t.Fatalf("depeg quote out of range: %v", quote.OutAmount)
	}

	// An expired cache needs the oracle account.
	stale := identityQuoteData(1_000_000_000, 2_000_000_000, curve, testFees)
	stale.Pool.CurveType.Depeg = shared.Depeg{
		BaseVirtualPrice: 2 * shared.DepegPrecision,
		BaseCacheUpdated: 0,
		Source:           shared.DepegSourceA,
	}
	_, err = SwapQuote(stale, stale.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if !errors.Is(err, shared.ErrMissingDepegAccount) {
		t.Fatalf("expected ErrMissingDepegAccount, got %v", err)
	}
}

// The deposit leg must be measured as the growth of the pool's whole
// vault-LP holding, the way settlement measures it. With a lossy vault
// the minted shares alone floor one unit short.
func TestSwapQuoteVaultRoundingDelta(t *testing.T) {
	fees := shared.PoolFees{
		TradeFeeDenominator:      1_000_000,
		OwnerTradeFeeDenominator: 1_000_000,
	}
	data := identityQuoteData(10, 1_000_000, testCpCurve, fees)
	// Vault A: total 10 over 3 shares, the pool holding 2 of them, so the
	// logical reserve is 6 and every conversion truncates.
	data.VaultALpSupply = 3
	data.PoolVaultALp = 2

	quote, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(7), 0)
	if err != nil {
		t.Fatalf("SwapQuote failed: %v", err)
	}
	// Depositing 7 mints 2 shares; the holding grows from 6 to
	// floor(4*17/5) = 13, so the curve prices 7, not the 6 the minted
	// shares alone are worth: 1e6 * 7 / (6 + 7).
	if quote.OutAmount.Int64() != 538_461 {
		t.Fatalf("out = %v, want 538461", quote.OutAmount)
	}
}

// stakePoolFixture mirrors the borsh prefix of an SPL stake pool account
// far enough for the virtual price decoder.
type stakePoolFixture struct {
	AccountType           uint8
	Manager               solanago.PublicKey
	Staker                solanago.PublicKey
	StakeDepositAuthority solanago.PublicKey
	StakeWithdrawBumpSeed uint8
	ValidatorList         solanago.PublicKey
	ReserveStake          solanago.PublicKey
	PoolMint              solanago.PublicKey
	ManagerFeeAccount     solanago.PublicKey
	TokenProgramID        solanago.PublicKey
	TotalLamports         uint64
	PoolTokenSupply       uint64
	LastUpdateEpoch       uint64
	Lockup                struct {
		UnixTimestamp int64
		Epoch         uint64
		Custodian     solanago.PublicKey
	}
	EpochFee                   struct{ Denominator, Numerator uint64 }
	NextEpochFee               *struct{ Denominator, Numerator uint64 } `bin:"optional"`
	PreferredDepositValidator  *solanago.PublicKey                      `bin:"optional"`
	PreferredWithdrawValidator *solanago.PublicKey                      `bin:"optional"`
	StakeDepositFee            struct{ Denominator, Numerator uint64 }
	StakeWithdrawalFee         struct{ Denominator, Numerator uint64 }
	NextStakeWithdrawalFee     *struct{ Denominator, Numerator uint64 } `bin:"optional"`
	StakeReferralFee           uint8
	SolDepositAuthority        *solanago.PublicKey `bin:"optional"`
	SolDepositFee              struct{ Denominator, Numerator uint64 }
	SolReferralFee             uint8
	SolWithdrawAuthority       *solanago.PublicKey `bin:"optional"`
	SolWithdrawalFee           struct{ Denominator, Numerator uint64 }
}

// A depeg refresh must land on a private copy of the curve, never on the
// caller's snapshot: quotes are pure and safe to run concurrently over
// one snapshot.
func TestSwapQuoteLeavesSnapshotUntouched(t *testing.T) {
	curve := testStableCurve
	curve.Depeg = shared.Depeg{Source: shared.DepegSourceA}
	data := identityQuoteData(1_000_000_000, 2_000_000_000, curve, testFees)
	data.Pool.Stake = solanago.NewWallet().PublicKey()

	// 1 pool token worth 2 lamports, no withdrawal fee.
	var buf bytes.Buffer
	if err := bin.NewBorshEncoder(&buf).Encode(stakePoolFixture{
		TotalLamports:   2_000_000,
		PoolTokenSupply: 1_000_000,
	}); err != nil {
		t.Fatalf("encode stake pool: %v", err)
	}
	data.StakeData = map[solanago.PublicKey][]byte{data.Pool.Stake: buf.Bytes()}

	first, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("SwapQuote failed: %v", err)
	}
	if first.OutAmount.Sign() <= 0 {
		t.Fatalf("depeg quote paid nothing: %v", first.OutAmount)
	}
	if got := data.Pool.CurveType.Depeg; got.BaseVirtualPrice != 0 || got.BaseCacheUpdated != 0 {
		t.Fatalf("quote wrote the oracle refresh into the snapshot: %+v", got)
	}

	// Same snapshot, same answer.
	second, err := SwapQuote(data, data.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("repeat SwapQuote failed: %v", err)
	}
	if first.OutAmount.Cmp(second.OutAmount) != 0 {
		t.Fatalf("quotes diverged over one snapshot: %v vs %v", first.OutAmount, second.OutAmount)
	}
}

// A nominally balanced single-side deposit on a stable pool is priced
// through the invariant on the vault-adjusted amounts, not by the
// proportional share ratio.
func TestDepositQuoteBalancedStableUsesInvariant(t *testing.T) {
	data := identityQuoteData(10, 12, testStableCurve, testFees)
	// Vault A: total 10 over 3 shares, the pool holding 2 of them, so the
	// logical reserve is 6. A deposit of 3 mints zero shares, and only
	// the vault's own appreciation (2 of the 3) reaches the pool.
	data.VaultALpSupply = 3
	data.PoolVaultALp = 2

	quote, err := DepositQuote(data, 3, 0, true, 0)
	if err != nil {
		t.Fatalf("DepositQuote failed: %v", err)
	}
	if quote.PoolTokenOut.Sign() <= 0 {
		t.Fatalf("deposit minted %v", quote.PoolTokenOut)
	}
	if quote.TokenBInAmount.Int64() != 6 {
		t.Fatalf("derived token B in = %v, want 6", quote.TokenBInAmount)
	}

	// The proportional share ratio would mint 3/6 of the supply. The
	// invariant sees only 2 of the 3 land and mints well below that.
	proportional := new(big.Int).Div(
		new(big.Int).Mul(big.NewInt(3), new(big.Int).SetUint64(data.PoolLpSupply)),
		big.NewInt(6),
	)
	if quote.PoolTokenOut.Cmp(proportional) >= 0 {
		t.Fatalf("minted %v, not below the proportional ratio %v", quote.PoolTokenOut, proportional)
	}

	// The balanced call and an explicit imbalanced call with the derived
	// amounts must agree: both price the same invariant growth.
	direct, err := DepositQuote(data, 3, 6, false, 0)
	if err != nil {
		t.Fatalf("imbalanced DepositQuote failed: %v", err)
	}
	if quote.PoolTokenOut.Cmp(direct.PoolTokenOut) != 0 {
		t.Fatalf("balanced %v != invariant route %v", quote.PoolTokenOut, direct.PoolTokenOut)
	}
}

// A vault mid-vesting lowers the pool's effective reserves and the quote
// with them.
func TestSwapQuoteRespectsLockedProfit(t *testing.T) {
	fresh := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	baseline, err := SwapQuote(fresh, fresh.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("baseline quote failed: %v", err)
	}

	locked := identityQuoteData(10_000_000, 1_000_000_000, testCpCurve, testFees)
	locked.Pool.TokenAMint = fresh.Pool.TokenAMint
	locked.VaultB.LockedProfitTracker = dynamic_vault.LockedProfitTracker{
		LastUpdatedLockedProfit: 100_000_000,
		LastReport:              locked.CurrentTime,
		LockedProfitDegradation: dynamic_vault.LockedProfitDegradationDenominator / 3600,
	}
	reduced, err := SwapQuote(locked, locked.Pool.TokenAMint, big.NewInt(1_000_000), 0)
	if err != nil {
		t.Fatalf("locked quote failed: %v", err)
	}
	if reduced.OutAmount.Cmp(baseline.OutAmount) >= 0 {
		t.Fatalf("locked profit did not reduce the quote: %v >= %v", reduced.OutAmount, baseline.OutAmount)
	}
}
