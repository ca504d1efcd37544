package storage

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/redis/go-redis/v9"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
)

// SetExtraMetas caches a mint's published list in its on-chain encoding.
func SetExtraMetas(ctx context.Context, client *redis.Client, mint solana.PublicKey, list meta.List) error {
	data, err := list.Encode()
	if err != nil {
		return err
	}

	return client.HSet(ctx, mint.String(), KEY_EXTRA_METAS, data).Err()
}

func GetExtraMetas(ctx context.Context, client *redis.Client, mint solana.PublicKey) (meta.List, error) {
	data, err := client.HGet(ctx, mint.String(), KEY_EXTRA_METAS).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrExtraMetasNotFound
		}
		return nil, err
	}

	return meta.Decode(data)
}
