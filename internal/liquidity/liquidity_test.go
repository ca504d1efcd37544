package liquidity

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/token"
)

type fakeChain struct {
	poolId  solana.PublicKey
	state   coder.PoolState
	vaults  map[solana.PublicKey]uint64
	fetches int
}

func newFakeChain(t *testing.T) *fakeChain {
	chain := &fakeChain{
		poolId: solana.NewWallet().PublicKey(),
		state: coder.PoolState{
			AmmConfig:          solana.NewWallet().PublicKey(),
			Token0Vault:        solana.NewWallet().PublicKey(),
			Token1Vault:        solana.NewWallet().PublicKey(),
			LpMint:             solana.NewWallet().PublicKey(),
			Token0Mint:         solana.NewWallet().PublicKey(),
			Token1Mint:         solana.NewWallet().PublicKey(),
			Token0Program:      solana.Token2022ProgramID,
			Token1Program:      solana.TokenProgramID,
			Mint0Decimals:      6,
			Mint1Decimals:      9,
			LpMintDecimals:     9,
			LpSupply:           5_000,
			ProtocolFeesToken0: 100,
			FundFeesToken1:     50,
		},
	}
	chain.vaults = map[solana.PublicKey]uint64{
		chain.state.Token0Vault: 10_100,
		chain.state.Token1Vault: 20_050,
	}

	getPoolState = func(ctx context.Context, cpSwapId, poolId solana.PublicKey) (*coder.PoolState, error) {
		if !poolId.Equals(chain.poolId) {
			return nil, rpc.ErrAccountNotFound
		}
		chain.fetches++
		state := chain.state
		return &state, nil
	}
	getAccountInfo = func(ctx context.Context, key solana.PublicKey) (*rpc.AccountInfo, error) {
		amount, ok := chain.vaults[key]
		if !ok {
			return nil, rpc.ErrAccountNotFound
		}
		data, err := token.EncodeAccount(&spltoken.Account{
			Mint:   solana.NewWallet().PublicKey(),
			Owner:  solana.NewWallet().PublicKey(),
			Amount: amount,
			State:  spltoken.Initialized,
		}, false)
		if err != nil {
			return nil, err
		}
		return &rpc.AccountInfo{Owner: solana.TokenProgramID, Data: data}, nil
	}
	t.Cleanup(func() {
		getPoolState = rpc.GetPoolState
		getAccountInfo = rpc.GetAccountInfo
	})

	return chain
}

func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	defer mr.Close()

	if err := adapter.InitRedisClients(mr.Addr(), ""); err != nil {
		panic(err)
	}

	m.Run()
}

func TestGetPoolKeysCaches(t *testing.T) {
	chain := newFakeChain(t)

	first, err := GetPoolKeys(context.Background(), chain.poolId)
	require.NoError(t, err)
	assert.Equal(t, chain.poolId, first.ID)
	assert.Equal(t, config.Program.CpSwap, first.ProgramID)
	assert.Equal(t, chain.state.Token0Vault, first.Token0Vault)
	assert.Equal(t, 9, first.Token1Decimals)
	assert.False(t, first.Authority.IsZero())

	second, err := GetPoolKeys(context.Background(), chain.poolId)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, chain.fetches)

	_, err = GetPoolKeys(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, rpc.ErrAccountNotFound)
}

func TestGetMint(t *testing.T) {
	chain := newFakeChain(t)

	pk, err := GetPoolKeys(context.Background(), chain.poolId)
	require.NoError(t, err)

	paired, isToken1, err := GetMint(pk, chain.state.Token1Mint)
	require.NoError(t, err)
	assert.Equal(t, chain.state.Token0Mint, paired)
	assert.True(t, isToken1)

	paired, isToken1, err = GetMint(pk, chain.state.Token0Mint)
	require.NoError(t, err)
	assert.Equal(t, chain.state.Token1Mint, paired)
	assert.False(t, isToken1)

	_, _, err = GetMint(pk, solana.NewWallet().PublicKey())
	assert.Error(t, err)
}

func TestGetPoolInfo(t *testing.T) {
	chain := newFakeChain(t)

	pKey, err := GetPoolKeys(context.Background(), chain.poolId)
	require.NoError(t, err)

	info, err := GetPoolInfo(context.Background(), pKey)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), info.Token0Reserve)
	assert.Equal(t, uint64(20_000), info.Token1Reserve)
	assert.Equal(t, uint64(5_000), info.LpSupply)

	hooked, paired := info.Reserves(true)
	assert.Equal(t, uint64(20_000), hooked)
	assert.Equal(t, uint64(10_000), paired)
}
