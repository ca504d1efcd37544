package instructions

import (
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

var ErrMintNotInPool = errors.New("mint is not traded by the pool")

// ExecuteAccounts are the fixed accounts the token-2022 program passes
// ahead of the resolved extra accounts.
type ExecuteAccounts struct {
	Source               solana.PublicKey
	Mint                 solana.PublicKey
	Destination          solana.PublicKey
	Owner                solana.PublicKey
	ExtraAccountMetaList solana.PublicKey
}

type ExecuteInstruction struct {
	baseInstruction
	Amount uint64
}

func (instruction *ExecuteInstruction) Data() ([]byte, error) {
	return encode(instruction)
}

func (instruction *ExecuteInstruction) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeTypeID(encoder, instruction.TypeID); err != nil {
		return err
	}
	return encoder.WriteUint64(instruction.Amount, binary.LittleEndian)
}

func NewExecuteInstruction(programId solana.PublicKey, amount uint64, accounts ExecuteAccounts, extras []*solana.AccountMeta) *ExecuteInstruction {
	ins := &ExecuteInstruction{Amount: amount}
	ins.programId = programId
	ins.BaseVariant = bin.BaseVariant{
		Impl:   ins,
		TypeID: coder.ExecuteDiscriminator,
	}

	accountMetas := []*solana.AccountMeta{
		solana.Meta(accounts.Source),
		solana.Meta(accounts.Mint),
		solana.Meta(accounts.Destination),
		solana.Meta(accounts.Owner),
		solana.Meta(accounts.ExtraAccountMetaList),
	}
	ins.AccountMetaSlice = append(accountMetas, extras...)

	return ins
}

// NativeInstruction is one of the hook's own commands; they carry no
// arguments beyond the discriminator.
type NativeInstruction struct {
	baseInstruction
}

func (instruction *NativeInstruction) Data() ([]byte, error) {
	return encode(instruction)
}

func (instruction *NativeInstruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeTypeID(encoder, instruction.TypeID)
}

type InitializeExtraAccountMetaListAccounts struct {
	Payer                solana.PublicKey
	ExtraAccountMetaList solana.PublicKey
	Mint                 solana.PublicKey
	Pool                 types.PoolKeys
	Token2022Program     solana.PublicKey
	TokenProgram         solana.PublicKey
}

// NewInitializeExtraAccountMetaListInstruction lists, after payer, list and
// mint, every literal address the published list will contain.
func NewInitializeExtraAccountMetaListInstruction(programId solana.PublicKey, accounts InitializeExtraAccountMetaListAccounts) (*NativeInstruction, error) {
	paired, ok := accounts.Pool.Paired(accounts.Mint)
	if !ok {
		return nil, fmt.Errorf("%w: %s not in %s", ErrMintNotInPool, accounts.Mint, accounts.Pool.ID)
	}

	ins := &NativeInstruction{}
	ins.programId = programId
	ins.BaseVariant = bin.BaseVariant{
		Impl:   ins,
		TypeID: coder.InitializeExtraAccountMetaListDiscriminator,
	}

	ins.AccountMetaSlice = []*solana.AccountMeta{
		solana.Meta(accounts.Payer).WRITE().SIGNER(),
		solana.Meta(accounts.ExtraAccountMetaList).WRITE(),
		solana.Meta(accounts.Mint),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(paired),
		solana.Meta(accounts.Token2022Program),
		solana.Meta(accounts.Pool.AmmConfig),
		solana.Meta(accounts.Pool.ID),
		solana.Meta(accounts.Pool.LpAccount),
		solana.Meta(accounts.Pool.Token0Account),
		solana.Meta(accounts.Pool.Token1Account),
		solana.Meta(accounts.Pool.Token0Vault),
		solana.Meta(accounts.Pool.Token1Vault),
		solana.Meta(accounts.TokenProgram),
		solana.Meta(accounts.Pool.Authority),
	}

	return ins, nil
}

func NewInitializeDelegateInstruction(programId solana.PublicKey, payer solana.PublicKey, delegate solana.PublicKey) *NativeInstruction {
	ins := &NativeInstruction{}
	ins.programId = programId
	ins.BaseVariant = bin.BaseVariant{
		Impl:   ins,
		TypeID: coder.InitializeDelegateDiscriminator,
	}

	ins.AccountMetaSlice = []*solana.AccountMeta{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(delegate).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	return ins
}
