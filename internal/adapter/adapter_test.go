package adapter

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClients(t *testing.T) {
	_, err := GetRedisClient(RedisPoolKeysDB)
	require.Error(t, err)

	require.Error(t, InitRedisClients("", ""))

	s := miniredis.RunT(t)
	require.NoError(t, InitRedisClients(s.Addr(), ""))

	for _, db := range []int{RedisPoolKeysDB, RedisExtraMetasDB} {
		client, err := GetRedisClient(db)
		require.NoError(t, err)
		assert.Equal(t, db, client.Options().DB)
	}
}

func TestMySQLClientRequiresInit(t *testing.T) {
	require.Error(t, InitMySQLClient(""))

	_, err := GetMySQLClient()
	assert.Error(t, err)
}
