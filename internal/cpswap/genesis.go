package cpswap

import (
	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

func NewPoolStateAccount(key, programId solana.PublicKey, state coder.PoolState, rent ledger.Rent) (ledger.Account, error) {
	data, err := coder.EncodePoolState(state)
	if err != nil {
		return ledger.Account{}, err
	}
	return ledger.Account{Key: key, Owner: programId, Lamports: rent.MinimumBalance(len(data)), Data: data}, nil
}

func NewAmmConfigAccount(key, programId solana.PublicKey, cfg coder.AmmConfig, rent ledger.Rent) (ledger.Account, error) {
	data, err := coder.EncodeAmmConfig(cfg)
	if err != nil {
		return ledger.Account{}, err
	}
	return ledger.Account{Key: key, Owner: programId, Lamports: rent.MinimumBalance(len(data)), Data: data}, nil
}

// PoolKeys lifts the pool-owned addresses out of a decoded state. The
// treasury accounts are left for the caller.
func PoolKeys(id, programId, authority solana.PublicKey, state coder.PoolState) types.PoolKeys {
	return types.PoolKeys{
		ID:             id,
		ProgramID:      programId,
		AmmConfig:      state.AmmConfig,
		Authority:      authority,
		Token0Mint:     state.Token0Mint,
		Token1Mint:     state.Token1Mint,
		Token0Vault:    state.Token0Vault,
		Token1Vault:    state.Token1Vault,
		Token0Program:  state.Token0Program,
		Token1Program:  state.Token1Program,
		LpMint:         state.LpMint,
		LpDecimals:     int(state.LpMintDecimals),
		Token0Decimals: int(state.Mint0Decimals),
		Token1Decimals: int(state.Mint1Decimals),
	}
}
