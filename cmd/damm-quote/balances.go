package main

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func runBalances(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	commitment, err := commitmentFromString(cfg.Commitment)
	if err != nil {
		return err
	}
	ownerStr, _ := cmd.Flags().GetString("owner")
	owner, err := solanago.PublicKeyFromBase58(ownerStr)
	if err != nil {
		return fmt.Errorf("parse owner: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rpcTimeout)
	defer cancel()

	rpcClient := rpc.New(cfg.RPCURL)
	resp, err := rpcClient.GetTokenAccountsByOwner(ctx, owner, &rpc.GetTokenAccountsConfig{
		ProgramId: &solanago.TokenProgramID,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solanago.EncodingJSONParsed,
		Commitment: commitment,
	})
	if err != nil {
		return err
	}

	for _, v := range resp.Value {
		mint := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.mint").String()
		amount := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.tokenAmount.amount").Uint()
		if amount == 0 || mint == "" {
			continue
		}
		fmt.Printf("mint:%v \t holdings:%v \n", mint, amount)
	}
	return nil
}
