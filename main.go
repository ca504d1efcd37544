package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/urfave/cli/v2"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
)

func main() {
	app := &cli.App{
		Name:  "safemoon-hook",
		Usage: "route transfer fees of a hooked token-2022 mint into burns and pool liquidity",
		Before: func(_ *cli.Context) error {
			if err := config.InitEnv(); err != nil {
				return err
			}
			logger.Initialize(config.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			serveCmd,
			publishCmd,
			quoteCmd,
			simulateCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Get().Fatal().Err(err).Msg("exit")
	}
}
