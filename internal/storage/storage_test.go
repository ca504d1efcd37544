package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gagliardetto/solana-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func TestPoolKeys(t *testing.T) {
	ctx := context.Background()
	client := newRedis(t)

	pKey := &types.PoolKeys{
		ID:             newKey(),
		ProgramID:      newKey(),
		AmmConfig:      newKey(),
		Token0Mint:     newKey(),
		Token1Mint:     newKey(),
		LpDecimals:     9,
		Token0Decimals: 6,
		LpAccount:      newKey(),
	}

	_, err := GetPoolKeys(ctx, client, pKey.ID)
	require.ErrorIs(t, err, ErrPoolKeysNotFound)

	require.NoError(t, SetPoolKeys(ctx, client, pKey))

	got, err := GetPoolKeys(ctx, client, pKey.ID)
	require.NoError(t, err)
	assert.Equal(t, pKey, got)
}

func TestExtraMetas(t *testing.T) {
	ctx := context.Background()
	client := newRedis(t)
	mint := newKey()

	_, err := GetExtraMetas(ctx, client, mint)
	require.ErrorIs(t, err, ErrExtraMetasNotFound)

	seeded, err := meta.NewWithSeeds([][]byte{[]byte("delegate")}, false, true)
	require.NoError(t, err)
	list := meta.List{meta.NewWithPubkey(newKey(), false, true), seeded}

	require.NoError(t, SetExtraMetas(ctx, client, mint, list))

	got, err := GetExtraMetas(ctx, client, mint)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func newMock(t *testing.T) (*FeeEventStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewFeeEventStorage(db), mock
}

func TestFeeEventSet(t *testing.T) {
	s, mock := newMock(t)
	mint := newKey()

	mock.ExpectExec("INSERT INTO fee_events (signature,slot,mint,amount,fee,burn,swap,deposit,timestamp) VALUES (?,?,?,?,?,?,?,?,?)").
		WithArgs("sig", int64(7), mint.String(), int64(500), int64(5), int64(2), int64(1), int64(2), int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Set(&types.FeeEvent{
		Signature: "sig",
		Slot:      7,
		Mint:      &mint,
		Amount:    500,
		Fee:       5,
		Burn:      2,
		Swap:      1,
		Deposit:   2,
		Timestamp: 1700000000,
	}))
}

func TestFeeEventSearch(t *testing.T) {
	s, mock := newMock(t)
	mint := newKey()

	rows := sqlmock.NewRows(feeEventColumns).
		AddRow("a", 1, mint.String(), 500, 5, 2, 1, 2, 10).
		AddRow("b", 2, mint.String(), 1000, 10, 5, 2, 3, 11)
	mock.ExpectQuery("SELECT signature, slot, mint, amount, fee, burn, swap, deposit, timestamp FROM fee_events WHERE mint = ? LIMIT 10").
		WithArgs(mint.String()).
		WillReturnRows(rows)

	events, err := s.Search(types.MySQLFilter{
		Query: []types.MySQLQuery{{Column: "mint", Op: "=", Query: mint.String()}},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[1].Signature)
	assert.Equal(t, uint64(3), events[1].Deposit)
	assert.Equal(t, mint, *events[0].Mint)
}

func TestFeeEventSearchRejectsColumn(t *testing.T) {
	s, _ := newMock(t)

	_, err := s.Search(types.MySQLFilter{
		Query: []types.MySQLQuery{{Column: "1=1; --", Op: "=", Query: "x"}},
	})
	require.ErrorIs(t, err, ErrInvalidColumn)
}

func TestFeeEventDeleteAll(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec("DELETE FROM fee_events").WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
