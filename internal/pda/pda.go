package pda

import (
	"github.com/gagliardetto/solana-go"
)

// DelegatedAuthority is the keyless account the hook program signs
// sub-calls with. Its bump is found once and reused for every signature.
type DelegatedAuthority struct {
	Address solana.PublicKey
	Bump    uint8
	Seed    string
}

func FindDelegatedAuthority(programId solana.PublicKey, seed string) (DelegatedAuthority, error) {
	address, bump, err := solana.FindProgramAddress([][]byte{[]byte(seed)}, programId)
	if err != nil {
		return DelegatedAuthority{}, err
	}

	return DelegatedAuthority{
		Address: address,
		Bump:    bump,
		Seed:    seed,
	}, nil
}

// SignerSeeds are the seeds presented to the runtime to sign as the authority.
func (d DelegatedAuthority) SignerSeeds() [][]byte {
	return [][]byte{[]byte(d.Seed), {d.Bump}}
}

func ExtraAccountMetaList(programId solana.PublicKey, seed string, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(seed), mint[:]}, programId)
}

func PoolAuthority(cpSwapId solana.PublicKey, seed string) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(seed)}, cpSwapId)
}

func PoolLpMint(cpSwapId solana.PublicKey, seed string, poolState solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(seed), poolState[:]}, cpSwapId)
}
