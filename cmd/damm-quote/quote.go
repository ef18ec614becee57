package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dynamicamm "github.com/krazyTry/dynamic-amm-go/dynamic_amm"
	"github.com/krazyTry/dynamic-amm-go/dynamic_amm/math"
	"github.com/krazyTry/dynamic-amm-go/sampler"
)

const rpcTimeout = 30 * time.Second

func newClient(cfg Config) (*dynamicamm.DynamicAmmClient, solanago.PublicKey, error) {
	commitment, err := commitmentFromString(cfg.Commitment)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	if cfg.Pool == "" {
		return nil, solanago.PublicKey{}, fmt.Errorf("pool address is required")
	}
	pool, err := solanago.PublicKeyFromBase58(cfg.Pool)
	if err != nil {
		return nil, solanago.PublicKey{}, fmt.Errorf("parse pool address: %w", err)
	}
	return dynamicamm.Create(rpc.New(cfg.RPCURL), commitment), pool, nil
}

func runSwap(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, pool, err := newClient(cfg)
	if err != nil {
		return err
	}
	inMintStr, _ := cmd.Flags().GetString("in-mint")
	inMint, err := solanago.PublicKeyFromBase58(inMintStr)
	if err != nil {
		return fmt.Errorf("parse in-mint: %w", err)
	}
	amount, _ := cmd.Flags().GetUint64("amount")
	if amount == 0 {
		return fmt.Errorf("amount is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
	defer cancel()

	quote, err := client.Quote.GetSwapQuote(ctx, pool, inMint, new(big.Int).SetUint64(amount), cfg.SlippageBps)
	if err != nil {
		return err
	}
	logger.Info("swap quote",
		zap.String("pool", pool.String()),
		zap.String("in_mint", inMint.String()),
		zap.Uint64("in_amount", amount),
		zap.String("out_amount", quote.OutAmount.String()),
		zap.String("min_out_amount", quote.MinOutAmount.String()),
		zap.String("trade_fee", quote.TradeFee.String()),
		zap.String("owner_fee", quote.OwnerFee.String()))
	fmt.Printf("out:%v \t min out:%v \t trade fee:%v \t owner fee:%v \n",
		quote.OutAmount, quote.MinOutAmount, quote.TradeFee, quote.OwnerFee)
	return nil
}

func runDeposit(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, pool, err := newClient(cfg)
	if err != nil {
		return err
	}
	tokenA, _ := cmd.Flags().GetUint64("token-a")
	tokenB, _ := cmd.Flags().GetUint64("token-b")
	imbalance, _ := cmd.Flags().GetBool("imbalance")

	ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
	defer cancel()

	quote, err := client.Quote.GetDepositQuote(ctx, pool, tokenA, tokenB, !imbalance, cfg.SlippageBps)
	if err != nil {
		return err
	}
	logger.Info("deposit quote",
		zap.String("pool", pool.String()),
		zap.String("pool_token_out", quote.PoolTokenOut.String()),
		zap.String("min_pool_token_out", quote.MinPoolTokenOut.String()))
	fmt.Printf("lp out:%v \t min lp out:%v \t token a in:%v (max %v) \t token b in:%v (max %v) \n",
		quote.PoolTokenOut, quote.MinPoolTokenOut,
		quote.TokenAInAmount, quote.MaxTokenAInAmount,
		quote.TokenBInAmount, quote.MaxTokenBInAmount)
	return nil
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, pool, err := newClient(cfg)
	if err != nil {
		return err
	}
	poolToken, _ := cmd.Flags().GetUint64("pool-token")
	if poolToken == 0 {
		return fmt.Errorf("pool-token is required")
	}
	var outMint *solanago.PublicKey
	if outMintStr, _ := cmd.Flags().GetString("out-mint"); outMintStr != "" {
		key, err := solanago.PublicKeyFromBase58(outMintStr)
		if err != nil {
			return fmt.Errorf("parse out-mint: %w", err)
		}
		outMint = &key
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
	defer cancel()

	quote, err := client.Quote.GetWithdrawQuote(ctx, pool, poolToken, outMint, cfg.SlippageBps)
	if err != nil {
		return err
	}
	logger.Info("withdraw quote",
		zap.String("pool", pool.String()),
		zap.Uint64("pool_token_in", poolToken),
		zap.String("token_a_out", quote.TokenAOutAmount.String()),
		zap.String("token_b_out", quote.TokenBOutAmount.String()))
	fmt.Printf("token a out:%v (min %v) \t token b out:%v (min %v) \n",
		quote.TokenAOutAmount, quote.MinTokenAOutAmount,
		quote.TokenBOutAmount, quote.MinTokenBOutAmount)
	return nil
}

func runApy(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, pool, err := newClient(cfg)
	if err != nil {
		return err
	}
	if cfg.DBHost == "" || cfg.DBName == "" {
		return fmt.Errorf("db-host and db-name are required: the APY ring is rebuilt from the sample store")
	}
	store, err := sampler.Open(cfg.dbConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
	defer cancel()

	if err = store.EnsureSchema(ctx); err != nil {
		return err
	}
	buffer, err := store.LoadBuffer(ctx, pool.String())
	if err != nil {
		return err
	}
	apy, buffer, err := client.Quote.GetApy(ctx, pool, buffer)
	if err != nil {
		return err
	}
	latest := math.LastSample(buffer)
	if err = store.RecordSample(ctx, pool.String(), latest); err != nil {
		return err
	}
	logger.Info("pool apy",
		zap.String("pool", pool.String()),
		zap.Uint64("virtual_price", latest.Price),
		zap.String("apy", apy.String()))
	fmt.Printf("virtual price:%v \t apy:%v%% \n", latest.Price, apy.Mul(decimal.NewFromInt(100)).StringFixed(4))
	return nil
}
