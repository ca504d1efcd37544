package ledger

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

type Account struct {
	Key        solana.PublicKey
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

func (a *Account) Clone() *Account {
	clone := *a
	clone.Data = bytes.Clone(a.Data)
	return &clone
}

// Store holds every account of the ledger. It is not safe for concurrent
// use; the Runtime serializes access.
type Store struct {
	accounts map[solana.PublicKey]*Account
}

func NewStore() *Store {
	return &Store{accounts: make(map[solana.PublicKey]*Account)}
}

func (s *Store) Get(key solana.PublicKey) (*Account, bool) {
	acc, ok := s.accounts[key]
	return acc, ok
}

func (s *Store) Set(acc *Account) {
	s.accounts[acc.Key] = acc
}

type snapshot map[solana.PublicKey]*Account

func (s *Store) snapshot() snapshot {
	snap := make(snapshot, len(s.accounts))
	for key, acc := range s.accounts {
		snap[key] = acc.Clone()
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap
}
