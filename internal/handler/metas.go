package handler

import (
	"errors"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/rpc"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/utils"
)

type accountMetaView struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

type metasHandler struct {
	hookId solana.PublicKey
	metas  MetasSource
}

func NewMetasHandler(hookId solana.PublicKey, metas MetasSource) *metasHandler {
	return &metasHandler{hookId: hookId, metas: metas}
}

// Get returns the mint's published accounts, resolved, in Execute order.
func (h *metasHandler) Get(w http.ResponseWriter, r *http.Request) {
	mint, err := solana.PublicKeyFromBase58(chi.URLParam(r, "mint"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	list, err := h.metas(ctx, mint)
	if err != nil {
		switch {
		case errors.Is(err, rpc.ErrAccountNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case ctx.Err() != nil:
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resolved, err := list.Resolve(h.hookId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	views := make([]accountMetaView, 0, len(resolved))
	for _, m := range resolved {
		views = append(views, accountMetaView{
			Pubkey:     m.PublicKey.String(),
			IsSigner:   m.IsSigner,
			IsWritable: m.IsWritable,
		})
	}

	utils.Encode(w, r, http.StatusOK, views)
}
