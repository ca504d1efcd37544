package bot

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/hook"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/instructions"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/storage"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

var (
	ErrPayerNotConfigured = errors.New("payer is not configured")
	ErrMintNotInPool      = instructions.ErrMintNotInPool
)

type PublishRequest struct {
	Mint         solana.PublicKey
	Pool         types.PoolKeys
	WithDelegate bool
	Compute      instructions.ComputeUnit
}

// ExtraAccountMetas is the list the hook publishes for mint trading
// against pool.
func ExtraAccountMetas(programs config.Programs, mint solana.PublicKey, pool types.PoolKeys) (meta.List, error) {
	paired, ok := pool.Paired(mint)
	if !ok {
		return nil, ErrMintNotInPool
	}

	return hook.BuildExtraAccountMetas(programs.DelegateSeed, hook.ExtraAccounts{
		SourceMint:       mint,
		PairedMint:       paired,
		Token2022Program: programs.Token2022,
		AmmConfig:        pool.AmmConfig,
		PoolState:        pool.ID,
		LpAccount:        pool.LpAccount,
		Token0Account:    pool.Token0Account,
		Token1Account:    pool.Token1Account,
		Token0Vault:      pool.Token0Vault,
		Token1Vault:      pool.Token1Vault,
		TokenProgram:     programs.Token,
		PoolAuthority:    pool.Authority,
	})
}

// Publish sends the initialization transaction for req.Mint and caches
// the list it publishes.
func Publish(ctx context.Context, req PublishRequest) (solana.Signature, error) {
	if config.Payer == nil {
		return solana.Signature{}, ErrPayerNotConfigured
	}

	list, err := ExtraAccountMetas(config.Program, req.Mint, req.Pool)
	if err != nil {
		return solana.Signature{}, err
	}

	blockhash, err := rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	_, tx, err := instructions.MakeInitializeTransaction(
		config.Program,
		config.Payer.PrivateKey,
		req.Mint,
		req.Pool,
		req.WithDelegate,
		req.Compute,
		instructions.TxOption{Blockhash: blockhash},
	)
	if err != nil {
		return solana.Signature{}, err
	}

	signature, err := rpc.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}

	logger.Get().Info().
		Str("signature", signature.String()).
		Str("mint", req.Mint.String()).
		Int("count", len(list)).
		Msg("extra account metas published")

	if client, err := adapter.GetRedisClient(adapter.RedisExtraMetasDB); err == nil {
		if err := storage.SetExtraMetas(ctx, client, req.Mint, list); err != nil {
			logger.Get().Warn().Err(err).Msg("failed to cache extra account metas")
		}
	}

	return signature, nil
}

// GetExtraMetas returns the published list for mint, from cache when possible.
func GetExtraMetas(ctx context.Context, mint solana.PublicKey) (meta.List, error) {
	client, err := adapter.GetRedisClient(adapter.RedisExtraMetasDB)
	if err != nil {
		return nil, err
	}

	list, err := storage.GetExtraMetas(ctx, client, mint)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, storage.ErrExtraMetasNotFound) {
		return nil, err
	}

	list, err = getExtraAccountMetas(ctx, config.Program.Hook, config.Program.ExtraAccountMetaSeed, mint)
	if err != nil {
		return nil, err
	}

	if err := storage.SetExtraMetas(ctx, client, mint, list); err != nil {
		logger.Get().Warn().Err(err).Msg("failed to cache extra account metas")
	}

	return list, nil
}

var getExtraAccountMetas = rpc.GetExtraAccountMetas
