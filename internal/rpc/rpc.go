package rpc

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNotInitialized  = errors.New("rpc client not initialized")
)

const commitment = solanarpc.CommitmentConfirmed

var client *solanarpc.Client

// Init points the package at a JSON-RPC endpoint.
func Init(url string) {
	client = solanarpc.New(url)
}

func getClient() (*solanarpc.Client, error) {
	if client == nil {
		return nil, ErrNotInitialized
	}
	return client, nil
}

type AccountInfo struct {
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

func GetAccountInfo(ctx context.Context, publicKey solana.PublicKey) (*AccountInfo, error) {
	c, err := getClient()
	if err != nil {
		return nil, err
	}

	resp, err := c.GetAccountInfoWithOpts(ctx, publicKey, &solanarpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: commitment,
	})
	if errors.Is(err, solanarpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, publicKey)
	}
	if err != nil {
		return nil, err
	}

	var data []byte
	if resp.Value.Data != nil {
		data = resp.Value.Data.GetBinary()
	}

	return &AccountInfo{
		Owner:    resp.Value.Owner,
		Lamports: resp.Value.Lamports,
		Data:     data,
	}, nil
}

func GetBalance(ctx context.Context, publicKey solana.PublicKey) (uint64, error) {
	c, err := getClient()
	if err != nil {
		return 0, err
	}

	resp, err := c.GetBalance(ctx, publicKey, commitment)
	if err != nil {
		return 0, err
	}
	return resp.Value, nil
}

func GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	c, err := getClient()
	if err != nil {
		return solana.Hash{}, err
	}

	resp, err := c.GetLatestBlockhash(ctx, commitment)
	if err != nil {
		return solana.Hash{}, err
	}
	return resp.Value.Blockhash, nil
}

func GetMinimumBalance(ctx context.Context, size uint64) (uint64, error) {
	c, err := getClient()
	if err != nil {
		return 0, err
	}
	return c.GetMinimumBalanceForRentExemption(ctx, size, commitment)
}

func SendTransaction(ctx context.Context, transaction *solana.Transaction) (solana.Signature, error) {
	c, err := getClient()
	if err != nil {
		return solana.Signature{}, err
	}

	maxRetries := uint(1)
	return c.SendTransactionWithOpts(ctx, transaction, solanarpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: commitment,
		MaxRetries:          &maxRetries,
	})
}

// Pool State

func GetPoolState(ctx context.Context, cpSwapId, poolId solana.PublicKey) (*coder.PoolState, error) {
	info, err := GetAccountInfo(ctx, poolId)
	if err != nil {
		return nil, err
	}
	if !info.Owner.Equals(cpSwapId) {
		return nil, fmt.Errorf("pool %s is owned by %s", poolId, info.Owner)
	}

	state, err := coder.NewCpSwapStateCoder().DecodePoolState(info.Data)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// GetExtraAccountMetas reads the list published for mint under the hook program.
func GetExtraAccountMetas(ctx context.Context, hookId solana.PublicKey, seed string, mint solana.PublicKey) (meta.List, error) {
	listKey, _, err := pda.ExtraAccountMetaList(hookId, seed, mint)
	if err != nil {
		return nil, err
	}

	info, err := GetAccountInfo(ctx, listKey)
	if err != nil {
		return nil, err
	}
	if !info.Owner.Equals(hookId) {
		return nil, fmt.Errorf("extra account metas %s is owned by %s", listKey, info.Owner)
	}

	return meta.Decode(info.Data)
}
