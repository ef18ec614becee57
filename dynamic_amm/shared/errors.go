package shared

import "errors"

// Failure taxonomy of the quote engine. Callers are expected to test with
// errors.Is; quote functions wrap these with context via fmt.Errorf("%w").
var (
	// ErrInvalidMint: the requested mint is not one of the pool's two mints.
	ErrInvalidMint = errors.New("invalid mint")

	// ErrEmptyPool: a divisor reserve or supply is zero.
	ErrEmptyPool = errors.New("empty pool")

	// ErrImbalancedDepositUnsupported: non-proportional deposit on a
	// constant product pool.
	ErrImbalancedDepositUnsupported = errors.New("imbalanced deposit unsupported")

	// ErrInsufficientReserve: requested output exceeds available liquidity.
	ErrInsufficientReserve = errors.New("insufficient reserve")

	// ErrInvariantDidNotConverge: stable swap iteration exceeded its budget.
	// The unconverged value is never returned.
	ErrInvariantDidNotConverge = errors.New("invariant did not converge")

	// ErrMissingDepegAccount: a depeg pool's oracle account is absent or
	// undecodable.
	ErrMissingDepegAccount = errors.New("missing depeg account")

	// ErrCapabilityUnsupported: operation not available for the pool's
	// curve, e.g. single-sided withdraw on constant product.
	ErrCapabilityUnsupported = errors.New("capability unsupported")

	// ErrUndefinedAPY: not enough history, or non-positive elapsed time.
	// Never downgraded to a zero yield.
	ErrUndefinedAPY = errors.New("undefined apy")

	// ErrMathOverflow: a result does not fit the on-chain u64 domain.
	ErrMathOverflow = errors.New("math overflow")

	// ErrInvalidFeeSchedule: schedule points out of order or fee pair invalid.
	ErrInvalidFeeSchedule = errors.New("invalid fee schedule")
)
