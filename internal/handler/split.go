package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/fee"
	bot "github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/library"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/sandbox"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/utils"
)

type splitHandler struct{}

func NewSplitHandler() *splitHandler {
	return &splitHandler{}
}

func amountParam(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "amount"), 10, 64)
}

func (h *splitHandler) Split(w http.ResponseWriter, r *http.Request) {
	amount, err := amountParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.Encode(w, r, http.StatusOK, fee.Calculate(amount))
}

// Simulate replays a hooked transfer in a sandbox. ?token1=true puts the
// hooked mint on the pool's token 1 side.
func (h *splitHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	amount, err := amountParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := sandbox.DefaultOptions()
	if v := r.URL.Query().Get("token1"); v != "" {
		if opts.SourceIsToken1, err = strconv.ParseBool(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	sim, err := bot.Simulate(amount, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if sim.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	utils.Encode(w, r, status, sim)
}
