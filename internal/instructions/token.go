package instructions

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// The solana-go token builders always target the legacy program id; these
// wrappers re-home them so the same layouts serve token-2022.

func rehome(programId solana.PublicKey, built *token.Instruction, extras ...*solana.AccountMeta) (solana.Instruction, error) {
	data, err := built.Data()
	if err != nil {
		return nil, err
	}
	accounts := append(built.Accounts(), extras...)
	return solana.NewInstruction(programId, accounts, data), nil
}

func NewBurnInstruction(programId solana.PublicKey, amount uint64, source, mint, authority solana.PublicKey) (solana.Instruction, error) {
	return rehome(programId, token.NewBurnInstruction(amount, source, mint, authority, nil).Build())
}

// NewTransferCheckedInstruction appends extras after the owner, which is
// where a transfer-hook mint expects its resolved accounts.
func NewTransferCheckedInstruction(
	programId solana.PublicKey,
	amount uint64,
	decimals uint8,
	source, mint, destination, owner solana.PublicKey,
	extras []*solana.AccountMeta) (solana.Instruction, error) {

	built := token.NewTransferCheckedInstruction(amount, decimals, source, mint, destination, owner, nil).Build()
	return rehome(programId, built, extras...)
}

func NewTransferInstruction(programId solana.PublicKey, amount uint64, source, destination, owner solana.PublicKey) (solana.Instruction, error) {
	return rehome(programId, token.NewTransferInstruction(amount, source, destination, owner, nil).Build())
}

func NewApproveInstruction(programId solana.PublicKey, amount uint64, source, delegate, owner solana.PublicKey) (solana.Instruction, error) {
	return rehome(programId, token.NewApproveInstruction(amount, source, delegate, owner, nil).Build())
}

func NewMintToInstruction(programId solana.PublicKey, amount uint64, mint, destination, authority solana.PublicKey) (solana.Instruction, error) {
	return rehome(programId, token.NewMintToInstruction(amount, mint, destination, authority, nil).Build())
}
