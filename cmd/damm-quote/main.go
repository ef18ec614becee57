package main

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	// A local .env can carry DAMM_RPC and DB credentials.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "damm-quote",
		Short:        "Quote swaps, deposits and withdrawals against a dynamic AMM pool",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "Solana RPC URL")
	root.PersistentFlags().String("commitment", "confirmed", "commitment level (processed, confirmed, finalized)")
	root.PersistentFlags().String("pool", "", "pool address")
	root.PersistentFlags().Uint64("slippage-bps", 50, "slippage tolerance in basis points")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap",
		RunE:  runSwap,
	}
	swapCmd.Flags().String("in-mint", "", "mint of the token being sold")
	swapCmd.Flags().Uint64("amount", 0, "input amount in base units")
	root.AddCommand(swapCmd)

	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Quote a liquidity deposit",
		RunE:  runDeposit,
	}
	depositCmd.Flags().Uint64("token-a", 0, "token A amount in base units")
	depositCmd.Flags().Uint64("token-b", 0, "token B amount in base units")
	depositCmd.Flags().Bool("imbalance", false, "price both amounts through the stable invariant")
	root.AddCommand(depositCmd)

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Quote a liquidity withdrawal",
		RunE:  runWithdraw,
	}
	withdrawCmd.Flags().Uint64("pool-token", 0, "pool LP amount to burn")
	withdrawCmd.Flags().String("out-mint", "", "withdraw single-sided into this mint (empty for proportional)")
	root.AddCommand(withdrawCmd)

	apyCmd := &cobra.Command{
		Use:   "apy",
		Short: "Sample the pool virtual price and print the trailing APY",
		RunE:  runApy,
	}
	apyCmd.Flags().String("db-host", "", "PostgreSQL host for the sample store")
	apyCmd.Flags().Int("db-port", 5432, "PostgreSQL port")
	apyCmd.Flags().String("db-user", "", "PostgreSQL user")
	apyCmd.Flags().String("db-password", "", "PostgreSQL password")
	apyCmd.Flags().String("db-name", "", "PostgreSQL database name")
	apyCmd.Flags().String("db-sslmode", "disable", "PostgreSQL sslmode")
	root.AddCommand(apyCmd)

	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "Print a wallet's token balances",
		RunE:  runBalances,
	}
	balancesCmd.Flags().String("owner", "", "wallet address")
	root.AddCommand(balancesCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := Load(cfgFile, cmd.Flags())
	if err != nil {
		return Config{}, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return Config{}, nil, err
	}
	if cfg.RPCURL == "" {
		return Config{}, nil, fmt.Errorf("rpc url is required")
	}
	return cfg, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

func commitmentFromString(commitment string) (rpc.CommitmentType, error) {
	switch commitment {
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed", "":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	default:
		return "", fmt.Errorf("unknown commitment %q", commitment)
	}
}
