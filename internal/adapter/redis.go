package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Redis databases by concern.
const (
	RedisPoolKeysDB   = 1
	RedisExtraMetasDB = 2
)

var (
	clients = make(map[int]*redis.Client)
	once    sync.Once
)

func InitRedisClients(addr string, password string) error {
	if addr == "" {
		return errors.New("Redis host is empty")
	}

	var initError error
	once.Do(func() {
		for _, db := range []int{RedisPoolKeysDB, RedisExtraMetasDB} {
			client := redis.NewClient(&redis.Options{
				Addr:     addr,
				Password: password,
				DB:       db,
			})

			if _, err := client.Ping(context.Background()).Result(); err != nil {
				initError = fmt.Errorf("failed to connect to Redis DB %d: %w", db, err)
				return
			}

			clients[db] = client
		}
	})

	return initError
}

func GetRedisClient(db int) (*redis.Client, error) {
	client, exists := clients[db]
	if !exists {
		return nil, fmt.Errorf("redis client for DB %d is not initialized. call InitRedisClients first", db)
	}
	return client, nil
}
