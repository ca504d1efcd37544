package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/urfave/cli/v2"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/adapter"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/handler"
	bot "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/library"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pool"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/storage"
)

type Server struct {
	Router *chi.Mux
}

func CreateServer() *Server {
	return &Server{
		Router: handler.CreateRoutes(config.Program.Hook, storage.FeeEvents, bot.GetExtraMetas),
	}
}

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "journal fee events from the hook program logs and serve the HTTP API",
	Action: runServeCmd,
}

func runServeCmd(c *cli.Context) error {
	log := logger.Get()

	if err := adapter.InitRedisClients(config.RedisAddr, config.RedisPassword); err != nil {
		return fmt.Errorf("failed to initialize Redis clients: %w", err)
	}

	if err := adapter.InitMySQLClient(config.MySqlDsn); err != nil {
		return fmt.Errorf("failed to initialize SQL client: %w", err)
	}

	mySqlClient, err := adapter.GetMySQLClient()
	if err != nil {
		return err
	}
	storage.Init(mySqlClient)

	rpc.Init(config.RpcHttpUrl)

	log.Info().Msg("initialized environment successfully")

	journal := pool.NewJournalPool(bot.MySQLJournal{}, config.JournalWorkers)
	defer journal.Close()

	ws, err := rpc.NewWsRpc(config.RpcWsUrl)
	if err != nil {
		return fmt.Errorf("failed to connect websocket: %w", err)
	}

	logsChan := make(chan rpc.LogsNotification)
	if err := ws.SubscribeToLogs(config.Program.Hook, logsChan); err != nil {
		ws.Close()
		return err
	}

	var (
		wg        sync.WaitGroup
		processed sync.Map
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for response := range logsChan {
			// notifications can repeat across reconnects
			if _, exists := processed.LoadOrStore(response.Signature, true); exists {
				continue
			}
			bot.ProcessResponse(response, journal)

			signature := response.Signature
			time.AfterFunc(time.Minute, func() {
				processed.Delete(signature)
			})
		}
		log.Warn().Msg("log subscription closed")
	}()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.HttpPort),
		Handler: CreateServer().Router,
	}

	go func() {
		log.Info().Int("port", config.HttpPort).Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server")
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	ws.Close()
	wg.Wait()

	return nil
}
