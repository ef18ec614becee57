package dynamic_amm

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

type DynamicAmmProgram struct {
	RPC        *rpc.Client
	Commitment rpc.CommitmentType
}

func NewDynamicAmmProgram(rpcClient *rpc.Client, commitment rpc.CommitmentType) *DynamicAmmProgram {
	return &DynamicAmmProgram{
		RPC:        rpcClient,
		Commitment: commitment,
	}
}

func (p *DynamicAmmProgram) getAccountData(ctx context.Context, address solanago.PublicKey) ([]byte, error) {
	acc, err := p.RPC.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{Commitment: p.Commitment})
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Value == nil {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return acc.Value.Data.GetBinary(), nil
}

func (p *DynamicAmmProgram) getMultipleAccountData(ctx context.Context, addresses ...solanago.PublicKey) ([][]byte, error) {
	res, err := p.RPC.GetMultipleAccountsWithOpts(ctx, addresses, &rpc.GetMultipleAccountsOpts{Commitment: p.Commitment})
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Value) != len(addresses) {
		return nil, fmt.Errorf("expected %d accounts", len(addresses))
	}
	out := make([][]byte, len(addresses))
	for i, acc := range res.Value {
		if acc == nil {
			return nil, fmt.Errorf("account %s not found", addresses[i])
		}
		out[i] = acc.Data.GetBinary()
	}
	return out, nil
}

func decodeMintSupply(data []byte) (uint64, error) {
	mintAcc := new(token.Mint)
	if err := mintAcc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return 0, fmt.Errorf("decode mint: %w", err)
	}
	return mintAcc.Supply, nil
}

func decodeTokenBalance(data []byte) (uint64, error) {
	tokenAcc := new(token.Account)
	if err := tokenAcc.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return 0, fmt.Errorf("decode token account: %w", err)
	}
	return tokenAcc.Amount, nil
}
