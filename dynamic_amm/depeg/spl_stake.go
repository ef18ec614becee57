package depeg

import (
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// SPL stake pool virtual price: how many lamports one pool token is
// worth, in DepegPrecision units. Blends the deposit price with the
// withdraw price (deposit weighted 3x) so the quote sits between the two
// conversion paths a staker can actually take.

type stakeFee struct {
	Denominator uint64
	Numerator   uint64
}

type stakeLockup struct {
	UnixTimestamp int64
	Epoch         uint64
	Custodian     solanago.PublicKey
}

// stakePool is the borsh prefix of an SPL stake pool account, declared
// only as far as the fields the price needs; the decoder stops there.
type stakePool struct {
	AccountType                uint8
	Manager                    solanago.PublicKey
	Staker                     solanago.PublicKey
	StakeDepositAuthority      solanago.PublicKey
	StakeWithdrawBumpSeed      uint8
	ValidatorList              solanago.PublicKey
	ReserveStake               solanago.PublicKey
	PoolMint                   solanago.PublicKey
	ManagerFeeAccount          solanago.PublicKey
	TokenProgramID             solanago.PublicKey
	TotalLamports              uint64
	PoolTokenSupply            uint64
	LastUpdateEpoch            uint64
	Lockup                     stakeLockup
	EpochFee                   stakeFee
	NextEpochFee               *stakeFee           `bin:"optional"`
	PreferredDepositValidator  *solanago.PublicKey `bin:"optional"`
	PreferredWithdrawValidator *solanago.PublicKey `bin:"optional"`
	StakeDepositFee            stakeFee
	StakeWithdrawalFee         stakeFee
	NextStakeWithdrawalFee     *stakeFee `bin:"optional"`
	StakeReferralFee           uint8
	SolDepositAuthority        *solanago.PublicKey `bin:"optional"`
	SolDepositFee              stakeFee
	SolReferralFee             uint8
	SolWithdrawAuthority       *solanago.PublicKey `bin:"optional"`
	SolWithdrawalFee           stakeFee
}

// StakePoolVirtualPrice decodes an SPL stake pool account and computes
// (3*depositPrice + withdrawPrice) / 4.
func StakePoolVirtualPrice(data []byte) (uint64, error) {
	var stake stakePool
	if err := bin.NewBorshDecoder(data).Decode(&stake); err != nil {
		return 0, fmt.Errorf("%w: decode stake pool: %s", shared.ErrMissingDepegAccount, err)
	}
	if stake.PoolTokenSupply == 0 {
		return 0, fmt.Errorf("%w: stake pool has zero token supply", shared.ErrMissingDepegAccount)
	}

	totalLamports := new(big.Int).SetUint64(stake.TotalLamports)
	supply := new(big.Int).SetUint64(stake.PoolTokenSupply)

	depositPrice := new(big.Int).Mul(totalLamports, big.NewInt(shared.DepegPrecision))
	depositPrice.Div(depositPrice, supply)

	feeDenominator := new(big.Int).SetUint64(stake.SolWithdrawalFee.Denominator)
	feeNumerator := new(big.Int).SetUint64(stake.SolWithdrawalFee.Numerator)

	// A withdrawal fee of 10% or more is treated as unusable; the
	// deposit path alone prices the token then.
	if feeDenominator.Cmp(new(big.Int).Mul(feeNumerator, big.NewInt(10))) <= 0 {
		return math.ToU64(depositPrice)
	}

	withdrawPrice := new(big.Int).Sub(feeDenominator, feeNumerator)
	withdrawPrice.Mul(withdrawPrice, totalLamports)
	withdrawPrice.Mul(withdrawPrice, big.NewInt(shared.DepegPrecision))
	withdrawPrice.Div(withdrawPrice, feeDenominator)
	withdrawPrice.Div(withdrawPrice, supply)

	// Deposit price weighs three times the withdraw price.
	virtualPrice := new(big.Int).Mul(depositPrice, big.NewInt(3))
	virtualPrice.Add(virtualPrice, withdrawPrice)
	virtualPrice.Div(virtualPrice, big.NewInt(4))
	return math.ToU64(virtualPrice)
}
