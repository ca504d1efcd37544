package types

import "github.com/gagliardetto/solana-go"

// PoolKeys references a constant-product pool and the fee treasury
// accounts the hook trades through. Token0/Token1 follow the pool's
// ordering, not the hooked mint.
type PoolKeys struct {
	ID             solana.PublicKey `json:"id"`
	ProgramID      solana.PublicKey `json:"programId"`
	AmmConfig      solana.PublicKey `json:"ammConfig"`
	Authority      solana.PublicKey `json:"authority"`
	Token0Mint     solana.PublicKey `json:"token0Mint"`
	Token1Mint     solana.PublicKey `json:"token1Mint"`
	Token0Vault    solana.PublicKey `json:"token0Vault"`
	Token1Vault    solana.PublicKey `json:"token1Vault"`
	Token0Program  solana.PublicKey `json:"token0Program"`
	Token1Program  solana.PublicKey `json:"token1Program"`
	LpMint         solana.PublicKey `json:"lpMint"`
	LpDecimals     int              `json:"lpDecimals"`
	Token0Decimals int              `json:"token0Decimals"`
	Token1Decimals int              `json:"token1Decimals"`

	Token0Account solana.PublicKey `json:"token0Account"`
	Token1Account solana.PublicKey `json:"token1Account"`
	LpAccount     solana.PublicKey `json:"lpAccount"`
}

// Paired returns the mint on the other side of the pool from mint.
func (p PoolKeys) Paired(mint solana.PublicKey) (solana.PublicKey, bool) {
	switch {
	case p.Token0Mint.Equals(mint):
		return p.Token1Mint, true
	case p.Token1Mint.Equals(mint):
		return p.Token0Mint, true
	}
	return solana.PublicKey{}, false
}
