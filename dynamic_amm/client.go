package dynamic_amm

import (
	"github.com/gagliardetto/solana-go/rpc"
)

// DynamicAmmClient groups high-level services.
type DynamicAmmClient struct {
	Quote      *QuoteService
	State      *StateService
	Commitment rpc.CommitmentType
	RPC        *rpc.Client
}

// NewDynamicAmmClient constructs a client with the given RPC connection.
func NewDynamicAmmClient(rpcClient *rpc.Client, commitment rpc.CommitmentType) *DynamicAmmClient {
	return &DynamicAmmClient{
		Quote:      NewQuoteService(rpcClient, commitment),
		State:      NewStateService(rpcClient, commitment),
		Commitment: commitment,
		RPC:        rpcClient,
	}
}

// Create is a convenience constructor using confirmed commitment by default.
func Create(rpcClient *rpc.Client, commitment rpc.CommitmentType) *DynamicAmmClient {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return NewDynamicAmmClient(rpcClient, commitment)
}
