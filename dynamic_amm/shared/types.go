package shared

import (
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
)

// Enums and common types shared by math and the dynamic_amm client.

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

type TradeDirection uint8

const (
	TradeDirectionAtoB TradeDirection = 0
	TradeDirectionBtoA TradeDirection = 1
)

type ActivationType = uint8

const (
	ActivationTypeSlot      ActivationType = 0
	ActivationTypeTimestamp ActivationType = 1
)

type CurveKind uint8

const (
	CurveKindConstantProduct CurveKind = 0
	CurveKindStable          CurveKind = 1
)

// DepegSource selects which side of the pool holds the depegged
// (staked-asset) token. The flagged side's reserve is rebased by the
// oracle virtual price before curve math.
type DepegSource uint8

const (
	DepegSourceNone DepegSource = 0
	DepegSourceA    DepegSource = 1
	DepegSourceB    DepegSource = 2
)

type FeeScheduleMode uint8

const (
	FeeScheduleModeFlat   FeeScheduleMode = 0
	FeeScheduleModeLinear FeeScheduleMode = 1
)

// TokenMultiplier scales both sides of a stable pool into a common
// precision before invariant math.
type TokenMultiplier struct {
	TokenAMultiplier uint64
	TokenBMultiplier uint64
	PrecisionFactor  uint8
}

// Depeg carries the cached oracle virtual price for a depeg stable pool.
// BaseVirtualPrice is in DepegPrecision units; zero means unresolved.
type Depeg struct {
	BaseVirtualPrice uint64
	BaseCacheUpdated uint64
	Source           DepegSource
}

// CurveType is a closed tagged union. Every curve operation dispatches on
// Kind with an exhaustive switch; adding a variant must touch every switch.
type CurveType struct {
	Kind            CurveKind
	Amp             uint64
	TokenMultiplier TokenMultiplier
	Depeg           Depeg
}

// PoolFees holds the fee charge setting. Trade fee stays in the pool for
// LPs, owner fee goes to the pool admin.
type PoolFees struct {
	TradeFeeNumerator        uint64
	TradeFeeDenominator      uint64
	OwnerTradeFeeNumerator   uint64
	OwnerTradeFeeDenominator uint64
}

// FeePoint is one step of a time-decaying fee schedule, relative to the
// pool activation point.
type FeePoint struct {
	FeeBps         uint16
	ActivatedPoint uint64
}

// FeeSchedule decays the trade fee over time. Points must be supplied in
// non-decreasing ActivatedPoint order.
type FeeSchedule struct {
	Mode   FeeScheduleMode
	Points []FeePoint
}

// VirtualPriceSample is one entry of the yield-tracking ring buffer.
// A zero Price marks an unfilled slot, never a real sample.
type VirtualPriceSample struct {
	Price     uint64
	Timestamp int64
}

// SnapshotBufferSize is the fixed ring capacity.
const SnapshotBufferSize = 28

// SnapshotBuffer is a fixed-capacity ring of virtual price samples with
// an oldest-overwrite pointer. It is a value type: Push returns a new
// buffer, nothing mutates in place.
type SnapshotBuffer struct {
	Pointer uint64
	Samples [SnapshotBufferSize]VirtualPriceSample
}

// PoolState is the decoded pool account, reduced to the fields the quote
// engine reads.
type PoolState struct {
	LpMint     solanago.PublicKey
	TokenAMint solanago.PublicKey
	TokenBMint solanago.PublicKey
	AVault     solanago.PublicKey
	BVault     solanago.PublicKey
	AVaultLp   solanago.PublicKey
	BVaultLp   solanago.PublicKey
	Enabled    bool
	Stake      solanago.PublicKey
	Fees       PoolFees
	// FeeSchedule is engine configuration; empty Points means the static
	// Fees apply for the pool's whole life.
	FeeSchedule     FeeSchedule
	CurveType       CurveType
	ActivationType  ActivationType
	ActivationPoint uint64
}

// SwapQuoteResult is the output of a swap quote. All amounts are in the
// same base units as the pool reserves.
type SwapQuoteResult struct {
	OutAmount    *big.Int
	MinOutAmount *big.Int
	TradeFee     *big.Int
	OwnerFee     *big.Int
}

// DepositQuoteResult is the output of a deposit quote. PoolTokenOut is
// slippage-reduced into MinPoolTokenOut; the required input amounts are
// slippage-increased into the Max fields.
type DepositQuoteResult struct {
	PoolTokenOut      *big.Int
	MinPoolTokenOut   *big.Int
	TokenAInAmount    *big.Int
	TokenBInAmount    *big.Int
	MaxTokenAInAmount *big.Int
	MaxTokenBInAmount *big.Int
}

// WithdrawQuoteResult is the output of a withdraw quote. A single-sided
// withdraw leaves the unused side at zero.
type WithdrawQuoteResult struct {
	PoolTokenIn        *big.Int
	TokenAOutAmount    *big.Int
	TokenBOutAmount    *big.Int
	MinTokenAOutAmount *big.Int
	MinTokenBOutAmount *big.Int
}

const (
	// BasisPointMax is the slippage and fee-bps denominator.
	BasisPointMax = 10_000

	// DepegPrecision scales oracle virtual prices.
	DepegPrecision = 1_000_000

	// VirtualPricePrecision scales the yield-tracking virtual price index.
	VirtualPricePrecision = 100_000_000

	// SecondsPerYear is used to annualize the trailing yield.
	SecondsPerYear = 365 * 24 * 60 * 60
)

var U64Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
