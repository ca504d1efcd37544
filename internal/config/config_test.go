package config

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestLoadProgramsOverridesFromEnv(t *testing.T) {
	hook := solana.NewWallet().PublicKey()
	t.Setenv("HOOK_PROGRAM_ID", hook.String())

	p := DefaultPrograms()
	require.NoError(t, loadPrograms(&p))
	require.Equal(t, hook, p.Hook)
	require.Equal(t, CPSWAP_PROGRAM_ID, p.CpSwap)
	require.Equal(t, solana.Token2022ProgramID, p.Token2022)
}

func TestLoadProgramsRejectsBadKey(t *testing.T) {
	t.Setenv("CPSWAP_PROGRAM_ID", "not-a-key")

	p := DefaultPrograms()
	require.Error(t, loadPrograms(&p))
}

func TestIntFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")

	n, err := intFromEnv("HTTP_PORT", 1)
	require.NoError(t, err)
	require.Equal(t, 8080, n)

	n, err = intFromEnv("UNSET_FOR_TEST", 7)
	require.NoError(t, err)
	require.Equal(t, 7, n)
}
