package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	db "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/database"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/hook"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/sandbox"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

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

type collector struct {
	events []*types.FeeEvent
}

func (c *collector) Submit(event *types.FeeEvent) {
	c.events = append(c.events, event)
}

func feeLine(mint solana.PublicKey, amount, fee, burn, swap, deposit uint64) string {
	return programLogPrefix + fmt.Sprintf(hook.FeeLogFormat, mint, amount, fee, burn, swap, deposit)
}

func TestParseFeeEvents(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	logs := []string{
		"Program TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb invoke [1]",
		"Program log: swap_base_input: in=1 out=0 fee=1",
		feeLine(mint, 1000, 10, 5, 2, 3),
		"Program log: fee: mint=notakey amount=1 fee=0 burn=0 swap=0 deposit=0",
		"fee: mint=" + mint.String() + " amount=1 fee=0 burn=0 swap=0 deposit=0",
		feeLine(mint, 99, 0, 0, 0, 0),
	}

	events := ParseFeeEvents("sig", 7, logs)
	require.Len(t, events, 2)

	assert.Equal(t, &types.FeeEvent{
		Signature: "sig",
		Slot:      7,
		Mint:      mint.ToPointer(),
		Amount:    1000,
		Fee:       10,
		Burn:      5,
		Swap:      2,
		Deposit:   3,
	}, events[0])
	assert.Equal(t, uint64(99), events[1].Amount)
	assert.Zero(t, events[1].Fee)
}

func TestProcessResponse(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	c := &collector{}

	n := ProcessResponse(rpc.LogsNotification{
		Signature: "ok",
		Slot:      3,
		Logs:      []string{feeLine(mint, 500, 5, 2, 1, 2)},
	}, c)
	assert.Equal(t, 1, n)

	n = ProcessResponse(rpc.LogsNotification{
		Signature: "failed",
		Failed:    true,
		Logs:      []string{feeLine(mint, 500, 5, 2, 1, 2)},
	}, c)
	assert.Zero(t, n)

	require.Len(t, c.events, 1)
	assert.Equal(t, "ok", c.events[0].Signature)
	assert.NotZero(t, c.events[0].Timestamp)
}

func TestSimulateRoutesFee(t *testing.T) {
	sim, err := Simulate(500, sandbox.DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, sim.Error)

	assert.Equal(t, map[string]int64{
		"holder":         -502,
		"recipient":      500,
		"supply":         -2,
		"sourceTreasury": -3,
		"sourceVault":    3,
		"pairedTreasury": -1,
		"pairedVault":    1,
		"lp":             1,
	}, sim.Deltas)

	require.Len(t, sim.Events, 1)
	assert.Equal(t, sim.Split.Fee, sim.Events[0].Fee)
	assert.Equal(t, sim.Split.Burn, sim.Events[0].Burn)
	assert.Equal(t, sim.Split.Swap, sim.Events[0].Swap)
	assert.Equal(t, sim.Split.Deposit, sim.Events[0].Deposit)
}

func TestSimulateHookedMintOnToken1Side(t *testing.T) {
	opts := sandbox.DefaultOptions()
	opts.SourceIsToken1 = true

	sim, err := Simulate(1_000_000, opts)
	require.NoError(t, err)
	require.Empty(t, sim.Error)

	assert.Equal(t, int64(-5_000), sim.Deltas["supply"])
	assert.Zero(t, sim.Deltas["sourceTreasury"]+sim.Deltas["sourceVault"])
	assert.Zero(t, sim.Deltas["pairedTreasury"]+sim.Deltas["pairedVault"])
	assert.Positive(t, sim.Deltas["lp"])
}

func TestSimulateReportsRejectedTransfer(t *testing.T) {
	opts := sandbox.DefaultOptions()
	opts.Allowance = 0

	sim, err := Simulate(500, opts)
	require.NoError(t, err)
	assert.Contains(t, sim.Error, "burn")
	assert.Empty(t, sim.Events)
	assert.NotEmpty(t, sim.Logs)
}

func TestExtraAccountMetasMatchPublished(t *testing.T) {
	w, err := sandbox.New(sandbox.DefaultOptions())
	require.NoError(t, err)

	published, err := w.ExtraAccountMetas()
	require.NoError(t, err)

	list, err := ExtraAccountMetas(w.Programs, w.Mint, w.Pool)
	require.NoError(t, err)
	assert.Equal(t, published, list)
	assert.Len(t, list, hook.ExtraAccountCount)

	_, err = ExtraAccountMetas(w.Programs, solana.NewWallet().PublicKey(), w.Pool)
	assert.ErrorIs(t, err, ErrMintNotInPool)
}

func TestPublishRequiresPayer(t *testing.T) {
	payer := config.Payer
	config.Payer = nil
	defer func() { config.Payer = payer }()

	_, err := Publish(context.Background(), PublishRequest{})
	assert.ErrorIs(t, err, ErrPayerNotConfigured)
}

func TestGetExtraMetasCachesChainRead(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	list := meta.List{meta.NewWithPubkey(mint, false, true)}

	reads := 0
	getExtraAccountMetas = func(ctx context.Context, hookId solana.PublicKey, seed string, m solana.PublicKey) (meta.List, error) {
		reads++
		if !m.Equals(mint) {
			return nil, rpc.ErrAccountNotFound
		}
		return list, nil
	}
	defer func() { getExtraAccountMetas = rpc.GetExtraAccountMetas }()

	for i := 0; i < 2; i++ {
		got, err := GetExtraMetas(context.Background(), mint)
		require.NoError(t, err)
		assert.Equal(t, list, got)
	}
	assert.Equal(t, 1, reads)

	_, err := GetExtraMetas(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, rpc.ErrAccountNotFound)
}

func TestSetFeeEvent(t *testing.T) {
	client, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer client.Close()

	database, err := db.NewDatabase(client, "hook")
	require.NoError(t, err)

	previous := adapter.Database
	adapter.Database = database
	defer func() { adapter.Database = previous }()

	mint := solana.NewWallet().PublicKey()
	event := &types.FeeEvent{Signature: "sig", Slot: 1, Mint: mint.ToPointer(), Amount: 500, Fee: 5, Burn: 2, Swap: 1, Deposit: 2, Timestamp: 10}

	mock.ExpectExec("INSERT INTO fee_events").
		WithArgs("sig", uint64(1), mint.String(), uint64(500), uint64(5), uint64(2), uint64(1), uint64(2), int64(10)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, MySQLJournal{}.Set(event))
	require.NoError(t, mock.ExpectationsWereMet())
}
