package types

import "github.com/gagliardetto/solana-go"

// TransferEvent is what the runtime reports to the hook for one transfer.
type TransferEvent struct {
	Amount      uint64
	Source      solana.PublicKey
	Destination solana.PublicKey
	Owner       solana.PublicKey
	Mint        solana.PublicKey
}

// FeeEvent is one routed fee as recorded in the journal.
type FeeEvent struct {
	Signature string            `json:"signature"`
	Slot      uint64            `json:"slot"`
	Mint      *solana.PublicKey `json:"mint"`
	Amount    uint64            `json:"amount"`
	Fee       uint64            `json:"fee"`
	Burn      uint64            `json:"burn"`
	Swap      uint64            `json:"swap"`
	Deposit   uint64            `json:"deposit"`
	Timestamp int64             `json:"timestamp"`
}
