package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/fee"
	bot "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/library"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

type fakeStore struct {
	events  []types.FeeEvent
	filter  types.MySQLFilter
	deleted bool
	err     error
}

func (s *fakeStore) Search(filter types.MySQLFilter) ([]types.FeeEvent, error) {
	s.filter = filter
	return s.events, s.err
}

func (s *fakeStore) DeleteAll() (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.deleted = true
	return int64(len(s.events)), nil
}

func noMetas(ctx context.Context, mint solana.PublicKey) (meta.List, error) {
	return nil, rpc.ErrAccountNotFound
}

func serve(t *testing.T, store FeeEventStore, metas MetasSource, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := CreateRoutes(config.HOOK_PROGRAM_ID, store, metas)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSplit(t *testing.T) {
	rec := serve(t, &fakeStore{}, noMetas, http.MethodGet, "/split/1000", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got fee.Split
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, fee.Split{Amount: 1000, Fee: 10, Burn: 5, Swap: 2, Deposit: 3}, got)

	rec = serve(t, &fakeStore{}, noMetas, http.MethodGet, "/split/-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulate(t *testing.T) {
	rec := serve(t, &fakeStore{}, noMetas, http.MethodGet, "/simulate/500?token1=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sim bot.Simulation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sim))
	assert.Equal(t, int64(-2), sim.Deltas["supply"])
	assert.Equal(t, int64(500), sim.Deltas["recipient"])
	require.Len(t, sim.Events, 1)

	rec = serve(t, &fakeStore{}, noMetas, http.MethodGet, "/simulate/500?token1=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFees(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	store := &fakeStore{events: []types.FeeEvent{{Signature: "sig", Mint: mint.ToPointer(), Fee: 5}}}

	rec := serve(t, store, noMetas, http.MethodGet, "/fees", `{"query":[{"column":"mint","op":"=","query":"`+mint.String()+`"}],"limit":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []types.FeeEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, store.events, got)
	assert.Equal(t, 5, store.filter.Limit)
	assert.Equal(t, "mint", store.filter.Query[0].Column)

	rec = serve(t, &fakeStore{}, noMetas, http.MethodGet, "/fees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(t, store, noMetas, http.MethodGet, "/fees", "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, &fakeStore{err: errors.New("down")}, noMetas, http.MethodGet, "/fees", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteFees(t *testing.T) {
	store := &fakeStore{}
	rec := serve(t, store, noMetas, http.MethodDelete, "/fees", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, store.deleted)
}

func TestGetMetas(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	delegate, err := meta.NewWithSeeds([][]byte{[]byte(config.DELEGATE_SEED)}, false, true)
	require.NoError(t, err)

	metas := func(ctx context.Context, m solana.PublicKey) (meta.List, error) {
		if !m.Equals(mint) {
			return nil, rpc.ErrAccountNotFound
		}
		return meta.List{meta.NewWithPubkey(mint, false, false), delegate}, nil
	}

	rec := serve(t, &fakeStore{}, metas, http.MethodGet, "/metas/"+mint.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	want, err := pda.FindDelegatedAuthority(config.HOOK_PROGRAM_ID, config.DELEGATE_SEED)
	require.NoError(t, err)

	var got []accountMetaView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []accountMetaView{
		{Pubkey: mint.String()},
		{Pubkey: want.Address.String(), IsWritable: true},
	}, got)

	rec = serve(t, &fakeStore{}, metas, http.MethodGet, "/metas/"+solana.NewWallet().PublicKey().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, &fakeStore{}, metas, http.MethodGet, "/metas/bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
