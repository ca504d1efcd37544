package bot

import (
	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/fee"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/sandbox"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

type Simulation struct {
	Split  fee.Split         `json:"split"`
	Events []*types.FeeEvent `json:"events"`
	Deltas map[string]int64  `json:"deltas"`
	Logs   []string          `json:"logs"`
	Error  string            `json:"error,omitempty"`
}

// Simulate runs one hooked transfer of amount in a fresh sandbox and
// reports where every token moved.
func Simulate(amount uint64, opts sandbox.Options) (*Simulation, error) {
	w, err := sandbox.New(opts)
	if err != nil {
		return nil, err
	}

	before, err := w.Snapshot()
	if err != nil {
		return nil, err
	}

	sim := &Simulation{Split: fee.Calculate(amount)}

	receipt, err := w.Transfer(amount)
	if receipt == nil {
		return nil, err
	}
	sim.Logs = receipt.Logs
	if err != nil {
		sim.Error = err.Error()
		return sim, nil
	}
	sim.Events = ParseFeeEvents(receipt.Signature, receipt.Slot, receipt.Logs)

	after, err := w.Snapshot()
	if err != nil {
		return nil, err
	}

	sourceTreasury, sourceVault := w.Pool.Token0Account, w.Pool.Token0Vault
	pairedTreasury, pairedVault := w.Pool.Token1Account, w.Pool.Token1Vault
	if w.Pool.Token1Mint.Equals(w.Mint) {
		sourceTreasury, pairedTreasury = pairedTreasury, sourceTreasury
		sourceVault, pairedVault = pairedVault, sourceVault
	}

	labels := map[string]solana.PublicKey{
		"holder":         w.HolderAccount,
		"recipient":      w.RecipientAccount,
		"supply":         w.Mint,
		"sourceTreasury": sourceTreasury,
		"sourceVault":    sourceVault,
		"pairedTreasury": pairedTreasury,
		"pairedVault":    pairedVault,
		"lp":             w.Pool.LpAccount,
	}

	sim.Deltas = make(map[string]int64, len(labels))
	for label, key := range labels {
		sim.Deltas[label] = int64(after[key]) - int64(before[key])
	}

	return sim, nil
}
