package helpers

import (
	"bytes"

	solanago "github.com/gagliardetto/solana-go"

	dynamicammgen "github.com/krazyTry/dynamic-amm-go/gen/dynamic_amm"
)

const (
	poolPrefix   = "pool"
	lpMintPrefix = "lp_mint"
)

// DerivePoolAddress derives the pool PDA from the two mints, smaller key
// first so both orderings land on the same pool.
func DerivePoolAddress(curveKey, tokenAMint, tokenBMint solanago.PublicKey) solanago.PublicKey {
	first, second := tokenAMint, tokenBMint
	if bytes.Compare(first.Bytes(), second.Bytes()) > 0 {
		first, second = second, first
	}
	key, _, _ := solanago.FindProgramAddress(
		[][]byte{[]byte(poolPrefix), curveKey.Bytes(), first.Bytes(), second.Bytes()},
		dynamicammgen.ProgramID,
	)
	return key
}

// DeriveLpMintAddress derives the pool LP mint PDA.
func DeriveLpMintAddress(pool solanago.PublicKey) solanago.PublicKey {
	key, _, _ := solanago.FindProgramAddress(
		[][]byte{[]byte(lpMintPrefix), pool.Bytes()},
		dynamicammgen.ProgramID,
	)
	return key
}
