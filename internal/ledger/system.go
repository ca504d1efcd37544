package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// SystemProgram implements account creation and lamport transfers.
type SystemProgram struct{}

func (p *SystemProgram) Process(ctx *Context, accounts []*solana.AccountMeta, data []byte) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccountKeys
	}

	inst, err := system.DecodeInstruction(accounts, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedInstruction, err)
	}

	switch impl := inst.Impl.(type) {
	case *system.CreateAccount:
		return createAccount(ctx, impl)
	case *system.Transfer:
		return transfer(ctx, impl)
	default:
		return fmt.Errorf("%w: system %s", ErrUnsupportedInstruction, system.InstructionIDToName(inst.TypeID.Uint32()))
	}
}

func createAccount(ctx *Context, inst *system.CreateAccount) error {
	funding := inst.GetFundingAccount().PublicKey
	newKey := inst.GetNewAccount().PublicKey

	if !ctx.IsSigner(funding) || !ctx.IsSigner(newKey) {
		return ErrMissingRequiredSignature
	}

	if existing, ok := ctx.runtime.store.Get(newKey); ok && (existing.Lamports > 0 || len(existing.Data) > 0) {
		return fmt.Errorf("%w: %s", ErrAccountAlreadyInUse, newKey)
	}

	funder, err := ctx.Account(funding)
	if err != nil {
		return err
	}
	if funder.Lamports < *inst.Lamports {
		return fmt.Errorf("%w: need %d have %d", ErrInsufficientFunds, *inst.Lamports, funder.Lamports)
	}
	funder.Lamports -= *inst.Lamports

	ctx.create(&Account{
		Key:      newKey,
		Lamports: *inst.Lamports,
		Owner:    *inst.Owner,
		Data:     make([]byte, *inst.Space),
	})
	return nil
}

func transfer(ctx *Context, inst *system.Transfer) error {
	from := inst.GetFundingAccount().PublicKey
	to := inst.GetRecipientAccount().PublicKey

	if !ctx.IsSigner(from) {
		return ErrMissingRequiredSignature
	}

	sender, err := ctx.Account(from)
	if err != nil {
		return err
	}
	if sender.Lamports < *inst.Lamports {
		return fmt.Errorf("%w: need %d have %d", ErrInsufficientFunds, *inst.Lamports, sender.Lamports)
	}

	recipient, ok := ctx.runtime.store.Get(to)
	if !ok {
		recipient = &Account{Key: to, Owner: solana.SystemProgramID}
		ctx.create(recipient)
	}

	sender.Lamports -= *inst.Lamports
	recipient.Lamports += *inst.Lamports
	return nil
}
