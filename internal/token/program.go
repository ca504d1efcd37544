// Package token hosts the two token program variants on the ledger runtime
// and the capability view other programs use to move balances.
package token

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
)

type Program struct {
	id       solana.PublicKey
	programs config.Programs
	resolver Resolver
}

func NewLegacyProgram(programs config.Programs) *Program {
	return &Program{id: programs.Token, programs: programs, resolver: NewResolver(programs)}
}

// NewToken2022Program also runs the mint's transfer hook on TransferChecked.
func NewToken2022Program(programs config.Programs) *Program {
	return &Program{id: programs.Token2022, programs: programs, resolver: NewResolver(programs)}
}

func (p *Program) ID() solana.PublicKey {
	return p.id
}

func (p *Program) isToken2022() bool {
	return p.id.Equals(p.programs.Token2022)
}

func (p *Program) Process(ctx *ledger.Context, accounts []*solana.AccountMeta, data []byte) error {
	inst, err := spltoken.DecodeInstruction(accounts, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}

	switch impl := inst.Impl.(type) {
	case *spltoken.Transfer:
		return p.transfer(ctx, impl)
	case *spltoken.TransferChecked:
		return p.transferChecked(ctx, impl)
	case *spltoken.Burn:
		return p.burn(ctx, impl)
	case *spltoken.Approve:
		return p.approve(ctx, impl)
	case *spltoken.MintTo:
		return p.mintTo(ctx, impl)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedInstruction, spltoken.InstructionIDToName(inst.TypeID.Uint8()))
	}
}

func (p *Program) account(ctx *ledger.Context, key solana.PublicKey) (*tokenAccount, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(p.id) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountOwner, key)
	}
	loaded, err := p.resolver.Load(acc)
	if err != nil {
		return nil, err
	}
	return baseOf(loaded), nil
}

func (p *Program) mint(ctx *ledger.Context, key solana.PublicKey) (*ledger.Account, *Mint, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return nil, nil, err
	}
	if !acc.Owner.Equals(p.id) {
		return nil, nil, fmt.Errorf("%w: mint %s", ErrInvalidAccountOwner, key)
	}
	m, err := DecodeMint(acc.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("mint %s: %w", key, err)
	}
	return acc, m, nil
}

// StoreMint rewrites a mint account in place.
func StoreMint(acc *ledger.Account, m *Mint) error {
	data, err := EncodeMint(m)
	if err != nil {
		return err
	}
	acc.Data = data
	return nil
}

// authorize accepts the owner, or the delegate up to its remaining
// allowance, which is consumed.
func authorize(ctx *ledger.Context, acc *tokenAccount, authority solana.PublicKey, amount uint64) error {
	if !ctx.IsSigner(authority) {
		return fmt.Errorf("%w: %s", ledger.ErrMissingRequiredSignature, authority)
	}

	if acc.state.Owner.Equals(authority) {
		return nil
	}

	if acc.state.Delegate != nil && acc.state.Delegate.Equals(authority) {
		if acc.state.DelegatedAmount < amount {
			return fmt.Errorf("%w: %d approved, %d requested", ErrInsufficientDelegation, acc.state.DelegatedAmount, amount)
		}
		acc.state.DelegatedAmount -= amount
		if acc.state.DelegatedAmount == 0 {
			acc.state.Delegate = nil
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrOwnerMismatch, authority)
}

func (p *Program) move(source, destination *tokenAccount, amount uint64) error {
	if !source.Mint().Equals(destination.Mint()) {
		return ErrMintMismatch
	}
	if source.Key().Equals(destination.Key()) {
		if source.Balance() < amount {
			return ErrInsufficientFunds
		}
		return source.store()
	}
	if err := source.Debit(amount); err != nil {
		return err
	}
	return destination.Credit(amount)
}

func (p *Program) transfer(ctx *ledger.Context, inst *spltoken.Transfer) error {
	if len(inst.Accounts) < 3 {
		return ErrNotEnoughAccountKeys
	}

	source, err := p.account(ctx, inst.Accounts[0].PublicKey)
	if err != nil {
		return err
	}
	destination, err := p.account(ctx, inst.Accounts[1].PublicKey)
	if err != nil {
		return err
	}

	if p.isToken2022() {
		_, m, err := p.mint(ctx, source.Mint())
		if err != nil {
			return err
		}
		if m.TransferHook != nil {
			return ErrMintRequiredForTransfer
		}
	}

	if err := authorize(ctx, source, inst.Accounts[2].PublicKey, *inst.Amount); err != nil {
		return err
	}
	return p.move(source, destination, *inst.Amount)
}

// transferChecked moves the tokens first and then, for a hooked mint, runs
// the hook inside the same transaction.
func (p *Program) transferChecked(ctx *ledger.Context, inst *spltoken.TransferChecked) error {
	if len(inst.Accounts) < 4 {
		return ErrNotEnoughAccountKeys
	}

	sourceKey := inst.Accounts[0].PublicKey
	mintKey := inst.Accounts[1].PublicKey
	destinationKey := inst.Accounts[2].PublicKey
	ownerKey := inst.Accounts[3].PublicKey

	_, m, err := p.mint(ctx, mintKey)
	if err != nil {
		return err
	}
	if m.Decimals != *inst.Decimals {
		return fmt.Errorf("%w: mint has %d, got %d", ErrMintDecimalsMismatch, m.Decimals, *inst.Decimals)
	}

	source, err := p.account(ctx, sourceKey)
	if err != nil {
		return err
	}
	destination, err := p.account(ctx, destinationKey)
	if err != nil {
		return err
	}
	if !source.Mint().Equals(mintKey) {
		return ErrMintMismatch
	}

	if err := authorize(ctx, source, ownerKey, *inst.Amount); err != nil {
		return err
	}
	if err := p.move(source, destination, *inst.Amount); err != nil {
		return err
	}

	if !p.isToken2022() || m.TransferHook == nil || m.TransferHook.ProgramID.IsZero() {
		return nil
	}

	// The hook only acts on a source that is flagged as mid-transfer.
	if err := SetTransferring(source.ledger.Data, true); err != nil {
		return fmt.Errorf("%s: %w", sourceKey, err)
	}
	if err := p.executeTransferHook(ctx, m.TransferHook, *inst.Amount, sourceKey, mintKey, destinationKey, ownerKey); err != nil {
		return err
	}
	return SetTransferring(source.ledger.Data, false)
}

func (p *Program) burn(ctx *ledger.Context, inst *spltoken.Burn) error {
	if len(inst.Accounts) < 3 {
		return ErrNotEnoughAccountKeys
	}

	source, err := p.account(ctx, inst.Accounts[0].PublicKey)
	if err != nil {
		return err
	}
	mintAcc, m, err := p.mint(ctx, inst.Accounts[1].PublicKey)
	if err != nil {
		return err
	}
	if !source.Mint().Equals(mintAcc.Key) {
		return ErrMintMismatch
	}

	amount := *inst.Amount
	if err := authorize(ctx, source, inst.Accounts[2].PublicKey, amount); err != nil {
		return err
	}
	if err := source.Debit(amount); err != nil {
		return err
	}

	if m.Supply < amount {
		return ErrOverflow
	}
	m.Supply -= amount
	return StoreMint(mintAcc, m)
}

func (p *Program) approve(ctx *ledger.Context, inst *spltoken.Approve) error {
	if len(inst.Accounts) < 3 {
		return ErrNotEnoughAccountKeys
	}

	source, err := p.account(ctx, inst.Accounts[0].PublicKey)
	if err != nil {
		return err
	}
	owner := inst.Accounts[2].PublicKey
	if !ctx.IsSigner(owner) {
		return fmt.Errorf("%w: %s", ledger.ErrMissingRequiredSignature, owner)
	}
	if !source.state.Owner.Equals(owner) {
		return ErrOwnerMismatch
	}

	delegate := inst.Accounts[1].PublicKey
	source.state.Delegate = &delegate
	source.state.DelegatedAmount = *inst.Amount
	return source.store()
}

func (p *Program) mintTo(ctx *ledger.Context, inst *spltoken.MintTo) error {
	if len(inst.Accounts) < 3 {
		return ErrNotEnoughAccountKeys
	}

	mintAcc, m, err := p.mint(ctx, inst.Accounts[0].PublicKey)
	if err != nil {
		return err
	}
	destination, err := p.account(ctx, inst.Accounts[1].PublicKey)
	if err != nil {
		return err
	}
	if !destination.Mint().Equals(mintAcc.Key) {
		return ErrMintMismatch
	}

	authority := inst.Accounts[2].PublicKey
	if m.MintAuthority == nil || !m.MintAuthority.Equals(authority) {
		return ErrOwnerMismatch
	}
	if !ctx.IsSigner(authority) {
		return fmt.Errorf("%w: %s", ledger.ErrMissingRequiredSignature, authority)
	}

	amount := *inst.Amount
	if m.Supply > math.MaxUint64-amount {
		return ErrOverflow
	}
	if err := destination.Credit(amount); err != nil {
		return err
	}
	m.Supply += amount
	return StoreMint(mintAcc, m)
}
