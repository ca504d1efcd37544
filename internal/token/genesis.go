package token

import (
	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
)

// NewMintAccount builds a ready mint account owned by programId, for
// seeding a runtime.
func NewMintAccount(key, programId solana.PublicKey, m *Mint, rent ledger.Rent) (ledger.Account, error) {
	m.IsInitialized = true
	data, err := EncodeMint(m)
	if err != nil {
		return ledger.Account{}, err
	}
	return ledger.Account{
		Key:      key,
		Lamports: rent.MinimumBalance(len(data)),
		Owner:    programId,
		Data:     data,
	}, nil
}

// NewTokenAccount builds an initialized token account. Token-2022 accounts
// get the extended layout.
func NewTokenAccount(key, programId, mint, owner solana.PublicKey, amount uint64, extended bool, rent ledger.Rent) (ledger.Account, error) {
	data, err := EncodeAccount(&spltoken.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  spltoken.Initialized,
	}, extended)
	if err != nil {
		return ledger.Account{}, err
	}
	return ledger.Account{
		Key:      key,
		Lamports: rent.MinimumBalance(len(data)),
		Owner:    programId,
		Data:     data,
	}, nil
}
