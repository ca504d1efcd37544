package handler

import (
	"net/http"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/utils"
)

type feeHandler struct {
	events FeeEventStore
}

func NewFeeHandler(events FeeEventStore) *feeHandler {
	return &feeHandler{events: events}
}

func (h *feeHandler) Get(w http.ResponseWriter, r *http.Request) {
	decoded, err := utils.Decode[types.MySQLFilter](r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	events, err := h.events.Search(decoded)
	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if events == nil {
		events = []types.FeeEvent{}
	}
	utils.Encode(w, r, http.StatusOK, events)
}

func (h *feeHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, err := h.events.DeleteAll()
	if err != nil {
		select {
		case <-ctx.Done():
			http.Error(w, ErrTimeout, http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
