package dynamic_amm

import (
	"context"
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/depeg"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/helpers"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

type StateService struct {
	*DynamicAmmProgram
}

func NewStateService(rpcClient *rpc.Client, commitment rpc.CommitmentType) *StateService {
	return &StateService{DynamicAmmProgram: NewDynamicAmmProgram(rpcClient, commitment)}
}

// GetPool fetches and decodes the pool account.
func (s *StateService) GetPool(ctx context.Context, poolAddress solanago.PublicKey) (*shared.PoolState, error) {
	data, err := s.getAccountData(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return helpers.ParsePoolAccount(data)
}

// GetQuoteData fetches everything a quote reads in three RPC rounds:
// pool and clock, then the vaults and pool-side balances, then the
// vault-side mints and reserves plus the depeg oracle when the pool
// needs one.
func (s *StateService) GetQuoteData(ctx context.Context, poolAddress solanago.PublicKey) (*QuoteData, error) {
	round1, err := s.getMultipleAccountData(ctx, poolAddress, solanago.SysVarClockPubkey)
	if err != nil {
		return nil, err
	}
	pool, err := helpers.ParsePoolAccount(round1[0])
	if err != nil {
		return nil, err
	}
	clock, err := helpers.ParseClock(round1[1])
	if err != nil {
		return nil, err
	}

	round2, err := s.getMultipleAccountData(ctx, pool.AVault, pool.BVault, pool.LpMint, pool.AVaultLp, pool.BVaultLp)
	if err != nil {
		return nil, err
	}
	vaultA, err := helpers.ParseVaultAccount(round2[0])
	if err != nil {
		return nil, fmt.Errorf("vault A: %w", err)
	}
	vaultB, err := helpers.ParseVaultAccount(round2[1])
	if err != nil {
		return nil, fmt.Errorf("vault B: %w", err)
	}
	poolLpSupply, err := decodeMintSupply(round2[2])
	if err != nil {
		return nil, err
	}
	poolVaultALp, err := decodeTokenBalance(round2[3])
	if err != nil {
		return nil, err
	}
	poolVaultBLp, err := decodeTokenBalance(round2[4])
	if err != nil {
		return nil, err
	}

	round3Keys := []solanago.PublicKey{vaultA.LpMint, vaultB.LpMint, vaultA.TokenVault, vaultB.TokenVault}
	needStake := pool.CurveType.Kind == shared.CurveKindStable && pool.CurveType.Depeg.Source != shared.DepegSourceNone
	if needStake {
		round3Keys = append(round3Keys, pool.Stake)
	}
	round3, err := s.getMultipleAccountData(ctx, round3Keys...)
	if err != nil {
		return nil, err
	}
	vaultALpSupply, err := decodeMintSupply(round3[0])
	if err != nil {
		return nil, err
	}
	vaultBLpSupply, err := decodeMintSupply(round3[1])
	if err != nil {
		return nil, err
	}
	vaultAReserve, err := decodeTokenBalance(round3[2])
	if err != nil {
		return nil, err
	}
	vaultBReserve, err := decodeTokenBalance(round3[3])
	if err != nil {
		return nil, err
	}
	stakeData := map[solanago.PublicKey][]byte{}
	if needStake {
		stakeData[pool.Stake] = round3[4]
	}

	return &QuoteData{
		Pool:           pool,
		VaultA:         vaultA.State,
		VaultB:         vaultB.State,
		VaultALpSupply: vaultALpSupply,
		VaultBLpSupply: vaultBLpSupply,
		PoolLpSupply:   poolLpSupply,
		PoolVaultALp:   poolVaultALp,
		PoolVaultBLp:   poolVaultBLp,
		VaultAReserve:  vaultAReserve,
		VaultBReserve:  vaultBReserve,
		CurrentSlot:    clock.Slot,
		CurrentTime:    clock.UnixTimestamp,
		StakeData:      stakeData,
	}, nil
}

// GetVirtualPrice computes the pool's current yield-tracking virtual
// price from a fresh snapshot.
func (s *StateService) GetVirtualPrice(ctx context.Context, poolAddress solanago.PublicKey) (uint64, int64, error) {
	data, err := s.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return 0, 0, err
	}
	return VirtualPriceFromSnapshot(data)
}

// VirtualPriceFromSnapshot derives the virtual price and its timestamp
// from an already-fetched snapshot.
func VirtualPriceFromSnapshot(data *QuoteData) (uint64, int64, error) {
	// The depeg refresh works on a copy: the snapshot is never mutated.
	curve := data.Pool.CurveType
	if err := depeg.UpdateBaseVirtualPrice(&curve, data.CurrentTime, data.Pool.Stake, data.StakeData); err != nil {
		return 0, 0, err
	}
	tokenAAmount, tokenBAmount, err := data.tokenAmounts()
	if err != nil {
		return 0, 0, err
	}
	price, err := math.VirtualPrice(curve, tokenAAmount, tokenBAmount, new(big.Int).SetUint64(data.PoolLpSupply))
	if err != nil {
		return 0, 0, err
	}
	return price, data.CurrentTime, nil
}
