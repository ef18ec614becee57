package dynamic_vault

import (
	solanago "github.com/gagliardetto/solana-go"

	dynamicvaultgen "github.com/krazyTry/dynamic-amm-go/gen/dynamic_vault"
)

const (
	vaultPrefix      = "vault"
	tokenVaultPrefix = "token_vault"
	lpMintPrefix     = "lp_mint"
)

func DeriveVaultKey(mint solanago.PublicKey) solanago.PublicKey {
	key, _, _ := solanago.FindProgramAddress(
		[][]byte{[]byte(vaultPrefix), mint.Bytes(), dynamicvaultgen.BaseKey.Bytes()},
		dynamicvaultgen.ProgramID,
	)
	return key
}

func DeriveTokenVaultKey(vault solanago.PublicKey) solanago.PublicKey {
	key, _, _ := solanago.FindProgramAddress(
		[][]byte{[]byte(tokenVaultPrefix), vault.Bytes()},
		dynamicvaultgen.ProgramID,
	)
	return key
}

func DeriveLpMintKey(vault solanago.PublicKey) solanago.PublicKey {
	key, _, _ := solanago.FindProgramAddress(
		[][]byte{[]byte(lpMintPrefix), vault.Bytes()},
		dynamicvaultgen.ProgramID,
	)
	return key
}
