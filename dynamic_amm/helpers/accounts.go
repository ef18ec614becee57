package helpers

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
	"github.com/krazyTry/dynamic-amm-go/dynamic_vault"
)

// Borsh layouts of the on-chain accounts. Field order mirrors the
// program's account structs; the engine only keeps what quoting reads.

const accountDiscriminatorSize = 8

type poolFeesLayout struct {
	TradeFeeNumerator        uint64
	TradeFeeDenominator      uint64
	OwnerTradeFeeNumerator   uint64
	OwnerTradeFeeDenominator uint64
}

type poolLayout struct {
	LpMint          solanago.PublicKey
	TokenAMint      solanago.PublicKey
	TokenBMint      solanago.PublicKey
	AVault          solanago.PublicKey
	BVault          solanago.PublicKey
	AVaultLp        solanago.PublicKey
	BVaultLp        solanago.PublicKey
	AVaultLpBump    uint8
	Enabled         bool
	AdminTokenAFee  solanago.PublicKey
	AdminTokenBFee  solanago.PublicKey
	Admin           solanago.PublicKey
	Fees            poolFeesLayout
	PoolType        uint8
	Stake           solanago.PublicKey
	TotalLockedLp   uint64
	ActivationType  uint8
	ActivationPoint uint64
	Padding         [455]byte
	CurveType       curveTypeLayout
}

// curveTypeLayout is the borsh enum at the tail of the pool account:
// one tag byte, then the stable parameters when tagged stable.
type curveTypeLayout struct {
	Kind                    shared.CurveKind
	Amp                     uint64
	TokenMultiplier         shared.TokenMultiplier
	Depeg                   shared.Depeg
	LastAmpUpdatedTimestamp uint64
}

func (c *curveTypeLayout) UnmarshalWithDecoder(dec *bin.Decoder) error {
	tag, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	c.Kind = shared.CurveKind(tag)
	switch c.Kind {
	case shared.CurveKindConstantProduct:
		return nil
	case shared.CurveKindStable:
		if c.Amp, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		if c.TokenMultiplier.TokenAMultiplier, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		if c.TokenMultiplier.TokenBMultiplier, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		if c.TokenMultiplier.PrecisionFactor, err = dec.ReadUint8(); err != nil {
			return err
		}
		if c.Depeg.BaseVirtualPrice, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		if c.Depeg.BaseCacheUpdated, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
		source, err := dec.ReadUint8()
		if err != nil {
			return err
		}
		c.Depeg.Source = shared.DepegSource(source)
		c.LastAmpUpdatedTimestamp, err = dec.ReadUint64(bin.LE)
		return err
	default:
		return fmt.Errorf("unknown curve tag %d", tag)
	}
}

// ParsePoolAccount decodes a pool account into the engine's PoolState.
func ParsePoolAccount(data []byte) (*shared.PoolState, error) {
	if len(data) < accountDiscriminatorSize {
		return nil, fmt.Errorf("pool account too short: %d bytes", len(data))
	}
	var layout poolLayout
	if err := bin.NewBorshDecoder(data[accountDiscriminatorSize:]).Decode(&layout); err != nil {
		return nil, fmt.Errorf("decode pool account: %w", err)
	}
	return &shared.PoolState{
		LpMint:     layout.LpMint,
		TokenAMint: layout.TokenAMint,
		TokenBMint: layout.TokenBMint,
		AVault:     layout.AVault,
		BVault:     layout.BVault,
		AVaultLp:   layout.AVaultLp,
		BVaultLp:   layout.BVaultLp,
		Enabled:    layout.Enabled,
		Stake:      layout.Stake,
		Fees: shared.PoolFees{
			TradeFeeNumerator:        layout.Fees.TradeFeeNumerator,
			TradeFeeDenominator:      layout.Fees.TradeFeeDenominator,
			OwnerTradeFeeNumerator:   layout.Fees.OwnerTradeFeeNumerator,
			OwnerTradeFeeDenominator: layout.Fees.OwnerTradeFeeDenominator,
		},
		CurveType: shared.CurveType{
			Kind:            layout.CurveType.Kind,
			Amp:             layout.CurveType.Amp,
			TokenMultiplier: layout.CurveType.TokenMultiplier,
			Depeg:           layout.CurveType.Depeg,
		},
		ActivationType:  layout.ActivationType,
		ActivationPoint: layout.ActivationPoint,
	}, nil
}

type lockedProfitTrackerLayout struct {
	LastUpdatedLockedProfit uint64
	LastReport              int64
	LockedProfitDegradation uint64
}

type vaultBumpsLayout struct {
	VaultBump      uint8
	TokenVaultBump uint8
}

type vaultLayout struct {
	Enabled             uint8
	Bumps               vaultBumpsLayout
	TotalAmount         uint64
	TokenVault          solanago.PublicKey
	FeeVault            solanago.PublicKey
	TokenMint           solanago.PublicKey
	LpMint              solanago.PublicKey
	Strategies          [30]solanago.PublicKey
	Base                solanago.PublicKey
	Admin               solanago.PublicKey
	Operator            solanago.PublicKey
	LockedProfitTracker lockedProfitTrackerLayout
}

// VaultAccount pairs the engine's vault snapshot with the keys needed to
// resolve its LP mint and token account.
type VaultAccount struct {
	State      dynamic_vault.VaultState
	TokenVault solanago.PublicKey
	TokenMint  solanago.PublicKey
	LpMint     solanago.PublicKey
}

// ParseVaultAccount decodes a dynamic vault account.
func ParseVaultAccount(data []byte) (*VaultAccount, error) {
	if len(data) < accountDiscriminatorSize {
		return nil, fmt.Errorf("vault account too short: %d bytes", len(data))
	}
	var layout vaultLayout
	if err := bin.NewBorshDecoder(data[accountDiscriminatorSize:]).Decode(&layout); err != nil {
		return nil, fmt.Errorf("decode vault account: %w", err)
	}
	return &VaultAccount{
		State: dynamic_vault.VaultState{
			Enabled:     layout.Enabled == 1,
			TotalAmount: layout.TotalAmount,
			LockedProfitTracker: dynamic_vault.LockedProfitTracker{
				LastUpdatedLockedProfit: layout.LockedProfitTracker.LastUpdatedLockedProfit,
				LastReport:              layout.LockedProfitTracker.LastReport,
				LockedProfitDegradation: layout.LockedProfitTracker.LockedProfitDegradation,
			},
		},
		TokenVault: layout.TokenVault,
		TokenMint:  layout.TokenMint,
		LpMint:     layout.LpMint,
	}, nil
}

// clockLayout is the sysvar clock account.
type clockLayout struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// Clock is the point-in-time the snapshot was read at.
type Clock struct {
	Slot          uint64
	UnixTimestamp int64
}

// ParseClock decodes the sysvar clock account.
func ParseClock(data []byte) (Clock, error) {
	var layout clockLayout
	if err := bin.NewBinDecoder(data).Decode(&layout); err != nil {
		return Clock{}, fmt.Errorf("decode clock sysvar: %w", err)
	}
	return Clock{Slot: layout.Slot, UnixTimestamp: layout.UnixTimestamp}, nil
}
