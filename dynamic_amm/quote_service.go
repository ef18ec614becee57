package dynamic_amm

import (
	"context"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/shared"
)

// QuoteService fetches pool snapshots and prices operations against
// them. Each call takes one fresh snapshot; nothing is cached.
type QuoteService struct {
	state *StateService
}

func NewQuoteService(rpcClient *rpc.Client, commitment rpc.CommitmentType) *QuoteService {
	return &QuoteService{state: NewStateService(rpcClient, commitment)}
}

func (s *QuoteService) GetSwapQuote(ctx context.Context, poolAddress, inTokenMint solanago.PublicKey, inAmount *big.Int, slippageBps uint64) (*shared.SwapQuoteResult, error) {
	data, err := s.state.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return SwapQuote(data, inTokenMint, inAmount, slippageBps)
}

func (s *QuoteService) GetDepositQuote(ctx context.Context, poolAddress solanago.PublicKey, tokenAIn, tokenBIn uint64, balance bool, slippageBps uint64) (*shared.DepositQuoteResult, error) {
	data, err := s.state.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return DepositQuote(data, tokenAIn, tokenBIn, balance, slippageBps)
}

func (s *QuoteService) GetWithdrawQuote(ctx context.Context, poolAddress solanago.PublicKey, poolTokenIn uint64, outTokenMint *solanago.PublicKey, slippageBps uint64) (*shared.WithdrawQuoteResult, error) {
	data, err := s.state.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return WithdrawQuote(data, poolTokenIn, outTokenMint, slippageBps)
}

func (s *QuoteService) GetMaxSwapOutAmount(ctx context.Context, poolAddress, outTokenMint solanago.PublicKey) (*big.Int, error) {
	data, err := s.state.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return MaxSwapOutAmount(data, outTokenMint)
}

func (s *QuoteService) GetMaxSwapInAmount(ctx context.Context, poolAddress, inTokenMint solanago.PublicKey) (*big.Int, error) {
	data, err := s.state.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return MaxSwapInAmount(data, inTokenMint)
}

// GetApy samples the pool's current virtual price into buffer and
// annualizes the growth across the ring. The updated buffer is returned
// so the caller can persist it.
func (s *QuoteService) GetApy(ctx context.Context, poolAddress solanago.PublicKey, buffer shared.SnapshotBuffer) (decimal.Decimal, shared.SnapshotBuffer, error) {
	data, err := s.state.GetQuoteData(ctx, poolAddress)
	if err != nil {
		return decimal.Zero, buffer, err
	}
	price, timestamp, err := VirtualPriceFromSnapshot(data)
	if err != nil {
		return decimal.Zero, buffer, err
	}
	buffer = math.PushSample(buffer, shared.VirtualPriceSample{Price: price, Timestamp: timestamp})
	apy, err := math.Apy(buffer)
	if err != nil {
		return decimal.Zero, buffer, err
	}
	return apy, buffer, nil
}
