package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/cpswap"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/fee"
	bot "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/library"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/liquidity"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/sandbox"
)

type quote struct {
	fee.Split
	SwapOut  *uint64 `json:"swapOut,omitempty"`
	LpTokens *uint64 `json:"lpTokens,omitempty"`
}

var quoteFlags struct {
	mint         string
	pool         string
	tradeFeeRate uint64
}

var quoteCmd = &cli.Command{
	Name:      "quote",
	Usage:     "split the fee of a transfer amount, optionally priced against a live pool",
	ArgsUsage: "<amount>",
	Action:    runQuoteCmd,
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "mint", Usage: "hooked mint, required with --pool", Destination: &quoteFlags.mint},
		&cli.StringFlag{Name: "pool", Usage: "price the swap and deposit legs against this pool", Destination: &quoteFlags.pool},
		&cli.Uint64Flag{Name: "trade-fee-rate", Usage: "pool trade fee in millionths", Value: 2500, Destination: &quoteFlags.tradeFeeRate},
	},
}

func amountArg(c *cli.Context) (uint64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one amount argument")
	}
	return strconv.ParseUint(c.Args().First(), 10, 64)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runQuoteCmd(c *cli.Context) error {
	amount, err := amountArg(c)
	if err != nil {
		return err
	}

	q := quote{Split: fee.Calculate(amount)}
	if quoteFlags.pool == "" {
		return printJSON(q)
	}

	poolId, err := solana.PublicKeyFromBase58(quoteFlags.pool)
	if err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(quoteFlags.mint)
	if err != nil {
		return fmt.Errorf("mint: %w", err)
	}

	if err := adapter.InitRedisClients(config.RedisAddr, config.RedisPassword); err != nil {
		return fmt.Errorf("failed to initialize Redis clients: %w", err)
	}
	rpc.Init(config.RpcHttpUrl)

	pKey, err := liquidity.GetPoolKeys(c.Context, poolId)
	if err != nil {
		return err
	}
	_, hookedIsToken1, err := liquidity.GetMint(pKey, mint)
	if err != nil {
		return err
	}
	info, err := liquidity.GetPoolInfo(c.Context, pKey)
	if err != nil {
		return err
	}

	hookedReserve, pairedReserve := info.Reserves(hookedIsToken1)
	swapOut, _ := cpswap.SwapBaseInput(q.Swap, hookedReserve, pairedReserve, quoteFlags.tradeFeeRate)
	lp := cpswap.QuoteLpForAmount(q.Deposit, info.LpSupply, hookedReserve+q.Swap)
	q.SwapOut, q.LpTokens = &swapOut, &lp

	return printJSON(q)
}

var simulateFlags struct {
	token1  bool
	revoked bool
}

var simulateCmd = &cli.Command{
	Name:      "simulate",
	Usage:     "run one hooked transfer against an in-process pool and print every balance change",
	ArgsUsage: "<amount>",
	Action:    runSimulateCmd,
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "token1", Usage: "put the hooked mint on the pool's token 1 side", Destination: &simulateFlags.token1},
		&cli.BoolFlag{Name: "revoked", Usage: "skip the holder's approval of the delegate", Destination: &simulateFlags.revoked},
	},
}

func runSimulateCmd(c *cli.Context) error {
	amount, err := amountArg(c)
	if err != nil {
		return err
	}

	opts := sandbox.DefaultOptions()
	opts.Programs = config.Program
	opts.SourceIsToken1 = simulateFlags.token1
	if simulateFlags.revoked {
		opts.Allowance = 0
	}

	sim, err := bot.Simulate(amount, opts)
	if err != nil {
		return err
	}
	return printJSON(sim)
}
