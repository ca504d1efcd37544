package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/urfave/cli/v2"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/instructions"
	bot "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/library"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/liquidity"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
)

var publishFlags struct {
	mint          string
	pool          string
	lpAccount     string
	token0Account string
	token1Account string
	withDelegate  bool
	computeUnits  uint
	priorityFee   uint64
}

var publishCmd = &cli.Command{
	Name:   "publish",
	Usage:  "create the delegate and publish the extra account metas for a mint",
	Action: runPublishCmd,
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "mint", Usage: "hooked token-2022 mint", Required: true, Destination: &publishFlags.mint},
		&cli.StringFlag{Name: "pool", Usage: "constant-product pool trading the mint", Required: true, Destination: &publishFlags.pool},
		&cli.StringFlag{Name: "lp-account", Usage: "delegate-owned LP token account", Required: true, Destination: &publishFlags.lpAccount},
		&cli.StringFlag{Name: "token0-account", Usage: "delegate-owned token 0 treasury", Required: true, Destination: &publishFlags.token0Account},
		&cli.StringFlag{Name: "token1-account", Usage: "delegate-owned token 1 treasury", Required: true, Destination: &publishFlags.token1Account},
		&cli.BoolFlag{Name: "with-delegate", Usage: "also create the delegate account", Value: true, Destination: &publishFlags.withDelegate},
		&cli.UintFlag{Name: "compute-units", Usage: "compute unit limit, 0 to leave unset", Value: 200_000, Destination: &publishFlags.computeUnits},
		&cli.Uint64Flag{Name: "priority-fee", Usage: "compute unit price in micro lamports", Destination: &publishFlags.priorityFee},
	},
}

func parseKeys(values map[string]string) (map[string]solana.PublicKey, error) {
	keys := make(map[string]solana.PublicKey, len(values))
	for name, value := range values {
		key, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		keys[name] = key
	}
	return keys, nil
}

func runPublishCmd(c *cli.Context) error {
	keys, err := parseKeys(map[string]string{
		"mint":           publishFlags.mint,
		"pool":           publishFlags.pool,
		"lp-account":     publishFlags.lpAccount,
		"token0-account": publishFlags.token0Account,
		"token1-account": publishFlags.token1Account,
	})
	if err != nil {
		return err
	}

	if err := adapter.InitRedisClients(config.RedisAddr, config.RedisPassword); err != nil {
		return fmt.Errorf("failed to initialize Redis clients: %w", err)
	}
	rpc.Init(config.RpcHttpUrl)

	pKey, err := liquidity.GetPoolKeys(c.Context, keys["pool"])
	if err != nil {
		return err
	}
	pKey.LpAccount = keys["lp-account"]
	pKey.Token0Account = keys["token0-account"]
	pKey.Token1Account = keys["token1-account"]

	signature, err := bot.Publish(c.Context, bot.PublishRequest{
		Mint:         keys["mint"],
		Pool:         *pKey,
		WithDelegate: publishFlags.withDelegate,
		Compute: instructions.ComputeUnit{
			Units:         uint32(publishFlags.computeUnits),
			MicroLamports: publishFlags.priorityFee,
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(signature)
	return nil
}
