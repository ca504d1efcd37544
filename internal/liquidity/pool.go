package liquidity

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/cpswap"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/token"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

type LiquidityPoolInfo struct {
	Status         uint8  `json:"status"`
	Token0Decimals int    `json:"token0Decimals"`
	Token1Decimals int    `json:"token1Decimals"`
	LpDecimals     int    `json:"lpDecimals"`
	Token0Reserve  uint64 `json:"token0Reserve"`
	Token1Reserve  uint64 `json:"token1Reserve"`
	LpSupply       uint64 `json:"lpSupply"`
	OpenTime       uint64 `json:"openTime"`
}

// GetPoolInfo reads the live reserves, net of protocol and fund fees.
func GetPoolInfo(ctx context.Context, pKey *types.PoolKeys) (*LiquidityPoolInfo, error) {
	state, err := getPoolState(ctx, config.Program.CpSwap, pKey.ID)
	if err != nil {
		return nil, err
	}

	balance0, err := vaultBalance(ctx, pKey.Token0Vault)
	if err != nil {
		return nil, err
	}
	balance1, err := vaultBalance(ctx, pKey.Token1Vault)
	if err != nil {
		return nil, err
	}

	reserve0, reserve1 := cpswap.Reserves(*state, balance0, balance1)

	return &LiquidityPoolInfo{
		Status:         state.Status,
		Token0Decimals: int(state.Mint0Decimals),
		Token1Decimals: int(state.Mint1Decimals),
		LpDecimals:     int(state.LpMintDecimals),
		Token0Reserve:  reserve0,
		Token1Reserve:  reserve1,
		LpSupply:       state.LpSupply,
		OpenTime:       state.OpenTime,
	}, nil
}

// Reserves orders the pool reserves as (hooked side, paired side).
func (info *LiquidityPoolInfo) Reserves(hookedIsToken1 bool) (uint64, uint64) {
	if hookedIsToken1 {
		return info.Token1Reserve, info.Token0Reserve
	}
	return info.Token0Reserve, info.Token1Reserve
}

func vaultBalance(ctx context.Context, vault solana.PublicKey) (uint64, error) {
	info, err := getAccountInfo(ctx, vault)
	if err != nil {
		return 0, err
	}

	acc, err := token.DecodeAccount(info.Data)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}
