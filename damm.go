package damm

import (
	dynamicamm "github.com/krazyTry/dynamic-amm-go/dynamic_amm"
)

// NewClient creates a new dynamic AMM quote client.
//
// Example:
//
// client := NewClient(rpcClient, rpc.CommitmentConfirmed)
//
// client.Quote.GetSwapQuote(ctx, pool, inMint, amountIn, 250)
//
// client.Quote.GetWithdrawQuote(ctx, pool, lpAmount, nil, 250)
var NewClient = dynamicamm.NewDynamicAmmClient
