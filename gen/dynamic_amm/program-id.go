package dynamicamm

import solanago "github.com/gagliardetto/solana-go"

// ProgramID is the dynamic AMM program address.
var ProgramID = solanago.MustPublicKeyFromBase58("Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB")
