package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
)

type request struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type account struct {
	owner solana.PublicKey
	data  []byte
}

// serve answers JSON-RPC calls from a fixed account table.
func serve(t *testing.T, accounts map[solana.PublicKey]account) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var result any
		switch req.Method {
		case "getAccountInfo":
			var key solana.PublicKey
			require.NoError(t, json.Unmarshal(req.Params[0], &key))

			acc, ok := accounts[key]
			if !ok {
				result = map[string]any{"context": map[string]any{"slot": 1}, "value": nil}
				break
			}
			result = map[string]any{
				"context": map[string]any{"slot": 1},
				"value": map[string]any{
					"data":       []string{base64.StdEncoding.EncodeToString(acc.data), "base64"},
					"owner":      acc.owner.String(),
					"lamports":   1_000_000,
					"executable": false,
					"rentEpoch":  0,
				},
			}
		case "getLatestBlockhash":
			result = map[string]any{
				"context": map[string]any{"slot": 1},
				"value": map[string]any{
					"blockhash":            solana.HashFromBytes(make([]byte, 32)).String(),
					"lastValidBlockHeight": 100,
				},
			}
		case "getMinimumBalanceForRentExemption":
			result = 2_039_280
		case "getBalance":
			result = map[string]any{"context": map[string]any{"slot": 1}, "value": 42}
		default:
			t.Fatalf("unexpected method %s", req.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		}))
	}))
	t.Cleanup(server.Close)

	Init(server.URL)
	t.Cleanup(func() { client = nil })
}

func TestNotInitialized(t *testing.T) {
	client = nil
	_, err := GetLatestBlockhash(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestGetAccountInfoNotFound(t *testing.T) {
	serve(t, nil)

	_, err := GetAccountInfo(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetPoolState(t *testing.T) {
	poolId := solana.NewWallet().PublicKey()
	state := coder.PoolState{
		Token0Mint: solana.NewWallet().PublicKey(),
		Token1Mint: solana.NewWallet().PublicKey(),
		LpSupply:   1_000,
	}
	data, err := coder.EncodePoolState(state)
	require.NoError(t, err)

	serve(t, map[solana.PublicKey]account{
		poolId: {owner: config.CPSWAP_PROGRAM_ID, data: data},
	})

	got, err := GetPoolState(context.Background(), config.CPSWAP_PROGRAM_ID, poolId)
	require.NoError(t, err)
	assert.Equal(t, state, *got)

	_, err = GetPoolState(context.Background(), solana.NewWallet().PublicKey(), poolId)
	assert.Error(t, err)
}

func TestGetExtraAccountMetas(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	listKey, _, err := pda.ExtraAccountMetaList(config.HOOK_PROGRAM_ID, config.EXTRA_ACCOUNT_METAS_SEED, mint)
	require.NoError(t, err)

	delegate, err := meta.NewWithSeeds([][]byte{[]byte(config.DELEGATE_SEED)}, false, true)
	require.NoError(t, err)
	list := meta.List{
		meta.NewWithPubkey(mint, false, true),
		delegate,
	}
	data, err := list.Encode()
	require.NoError(t, err)

	serve(t, map[solana.PublicKey]account{
		listKey: {owner: config.HOOK_PROGRAM_ID, data: data},
	})

	got, err := GetExtraAccountMetas(context.Background(), config.HOOK_PROGRAM_ID, config.EXTRA_ACCOUNT_METAS_SEED, mint)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	_, err = GetExtraAccountMetas(context.Background(), config.HOOK_PROGRAM_ID, config.EXTRA_ACCOUNT_METAS_SEED, solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestBlockhashAndRent(t *testing.T) {
	serve(t, nil)

	hash, err := GetLatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, solana.Hash{}, hash)

	lamports, err := GetMinimumBalance(context.Background(), 165)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_039_280), lamports)

	balance, err := GetBalance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), balance)
}
