package pda

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
)

func TestFindDelegatedAuthority(t *testing.T) {
	programId := config.HOOK_PROGRAM_ID

	first, err := FindDelegatedAuthority(programId, config.DELEGATE_SEED)
	require.NoError(t, err)

	second, err := FindDelegatedAuthority(programId, config.DELEGATE_SEED)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.False(t, first.Address.IsOnCurve(), "delegate must not be key controlled")

	derived, err := solana.CreateProgramAddress(first.SignerSeeds(), programId)
	require.NoError(t, err)
	require.Equal(t, first.Address, derived)
}

func TestFindDelegatedAuthorityDependsOnProgram(t *testing.T) {
	a, err := FindDelegatedAuthority(config.HOOK_PROGRAM_ID, config.DELEGATE_SEED)
	require.NoError(t, err)

	b, err := FindDelegatedAuthority(solana.NewWallet().PublicKey(), config.DELEGATE_SEED)
	require.NoError(t, err)

	require.NotEqual(t, a.Address, b.Address)
}

func TestExtraAccountMetaListIsPerMint(t *testing.T) {
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	a, _, err := ExtraAccountMetaList(config.HOOK_PROGRAM_ID, config.EXTRA_ACCOUNT_METAS_SEED, mintA)
	require.NoError(t, err)
	b, _, err := ExtraAccountMetaList(config.HOOK_PROGRAM_ID, config.EXTRA_ACCOUNT_METAS_SEED, mintB)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}
