package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/redis/go-redis/v9"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

func SetPoolKeys(ctx context.Context, client *redis.Client, pKey *types.PoolKeys) error {
	data, err := json.Marshal(pKey)
	if err != nil {
		return err
	}

	return client.HSet(ctx, pKey.ID.String(), KEY_POOLKEYS, data).Err()
}

func GetPoolKeys(ctx context.Context, client *redis.Client, poolId solana.PublicKey) (*types.PoolKeys, error) {
	data, err := client.HGet(ctx, poolId.String(), KEY_POOLKEYS).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPoolKeysNotFound
		}
		return nil, err
	}

	var pKey types.PoolKeys
	if err := json.Unmarshal([]byte(data), &pKey); err != nil {
		return nil, err
	}

	return &pKey, nil
}
