package handler

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

const ErrTimeout = "request timed out"

type FeeEventStore interface {
	Search(filter types.MySQLFilter) ([]types.FeeEvent, error)
	DeleteAll() (int64, error)
}

type MetasSource func(ctx context.Context, mint solana.PublicKey) (meta.List, error)

func CreateRoutes(hookId solana.PublicKey, events FeeEventStore, metas MetasSource) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	var (
		FeeHandler   = NewFeeHandler(events)
		SplitHandler = NewSplitHandler()
		MetasHandler = NewMetasHandler(hookId, metas)
	)

	r.Route("/fees", func(r chi.Router) {
		r.Get("/", FeeHandler.Get)
		r.Delete("/", FeeHandler.DeleteAll)
	})

	r.Get("/split/{amount}", SplitHandler.Split)
	r.Get("/simulate/{amount}", SplitHandler.Simulate)
	r.Get("/metas/{mint}", MetasHandler.Get)

	return r
}
