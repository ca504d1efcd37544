package token

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
)

// Account is the balance surface every token account offers regardless of
// which token program owns it. Debit and Credit persist immediately.
type Account interface {
	Key() solana.PublicKey
	Mint() solana.PublicKey
	Owner() solana.PublicKey
	ProgramID() solana.PublicKey
	Balance() uint64
	Debit(amount uint64) error
	Credit(amount uint64) error
}

type LegacyAccount struct {
	*tokenAccount
}

// Token2022Account may carry an extension area after the base layout.
type Token2022Account struct {
	*tokenAccount
	extended bool
}

func (a *Token2022Account) Extended() bool {
	return a.extended
}

// Resolver picks the variant from the owning program.
type Resolver struct {
	Legacy    solana.PublicKey
	Token2022 solana.PublicKey
}

func NewResolver(programs config.Programs) Resolver {
	return Resolver{Legacy: programs.Token, Token2022: programs.Token2022}
}

func (r Resolver) Load(acc *ledger.Account) (Account, error) {
	switch {
	case acc.Owner.Equals(r.Legacy):
		if len(acc.Data) != AccountSize {
			return nil, fmt.Errorf("%w: legacy account %s of %d bytes", ErrInvalidAccountData, acc.Key, len(acc.Data))
		}
		base, err := loadTokenAccount(acc)
		if err != nil {
			return nil, err
		}
		return &LegacyAccount{tokenAccount: base}, nil
	case acc.Owner.Equals(r.Token2022):
		base, err := loadTokenAccount(acc)
		if err != nil {
			return nil, err
		}
		return &Token2022Account{tokenAccount: base, extended: len(acc.Data) > AccountSize}, nil
	}
	return nil, fmt.Errorf("%w: %s owned by %s", ErrInvalidAccountOwner, acc.Key, acc.Owner)
}

func baseOf(a Account) *tokenAccount {
	switch v := a.(type) {
	case *LegacyAccount:
		return v.tokenAccount
	case *Token2022Account:
		return v.tokenAccount
	}
	return nil
}

type tokenAccount struct {
	ledger *ledger.Account
	state  *spltoken.Account
}

func loadTokenAccount(acc *ledger.Account) (*tokenAccount, error) {
	state, err := DecodeAccount(acc.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", acc.Key, err)
	}
	return &tokenAccount{ledger: acc, state: state}, nil
}

func (a *tokenAccount) Key() solana.PublicKey {
	return a.ledger.Key
}

func (a *tokenAccount) Mint() solana.PublicKey {
	return a.state.Mint
}

func (a *tokenAccount) Owner() solana.PublicKey {
	return a.state.Owner
}

func (a *tokenAccount) ProgramID() solana.PublicKey {
	return a.ledger.Owner
}

func (a *tokenAccount) Balance() uint64 {
	return a.state.Amount
}

func (a *tokenAccount) Debit(amount uint64) error {
	if a.state.State == spltoken.Frozen {
		return fmt.Errorf("%w: %s", ErrAccountFrozen, a.Key())
	}
	if a.state.Amount < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, a.Key(), a.state.Amount, amount)
	}
	a.state.Amount -= amount
	return a.store()
}

func (a *tokenAccount) Credit(amount uint64) error {
	if a.state.State == spltoken.Frozen {
		return fmt.Errorf("%w: %s", ErrAccountFrozen, a.Key())
	}
	if a.state.Amount > math.MaxUint64-amount {
		return ErrOverflow
	}
	a.state.Amount += amount
	return a.store()
}

func (a *tokenAccount) store() error {
	data, err := EncodeAccount(a.state, false)
	if err != nil {
		return err
	}
	copy(a.ledger.Data[:AccountSize], data)
	return nil
}
