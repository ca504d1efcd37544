package liquidity

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/cpswap"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/storage"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

var (
	getPoolState   = rpc.GetPoolState
	getAccountInfo = rpc.GetAccountInfo
)

// Return pool keys from storage if available, otherwise fetch from RPC and store in storage
func GetPoolKeys(ctx context.Context, poolId solana.PublicKey) (*types.PoolKeys, error) {
	redisClient, err := adapter.GetRedisClient(adapter.RedisPoolKeysDB)
	if err != nil {
		return nil, err
	}

	stored, err := storage.GetPoolKeys(ctx, redisClient, poolId)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, storage.ErrPoolKeysNotFound) {
		return nil, err
	}

	state, err := getPoolState(ctx, config.Program.CpSwap, poolId)
	if err != nil {
		return nil, err
	}

	authority, _, err := pda.PoolAuthority(config.Program.CpSwap, config.Program.PoolAuthoritySeed)
	if err != nil {
		return nil, err
	}

	pKey := cpswap.PoolKeys(poolId, config.Program.CpSwap, authority, *state)

	if err := storage.SetPoolKeys(ctx, redisClient, &pKey); err != nil {
		logger.Get().Warn().Err(err).Str("pool", poolId.String()).Msg("failed to cache pool keys")
	}

	return &pKey, nil
}

// GetMint returns the pool mint opposite the hooked mint, and whether the
// hooked mint sits on the token1 side.
func GetMint(pKey *types.PoolKeys, hooked solana.PublicKey) (solana.PublicKey, bool, error) {
	paired, ok := pKey.Paired(hooked)
	if !ok {
		return solana.PublicKey{}, false, errors.New("mint is not traded by this pool")
	}

	return paired, pKey.Token1Mint.Equals(hooked), nil
}
