package instructions

import (
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
)

type SwapBaseInputInstruction struct {
	baseInstruction
	AmountIn         uint64
	MinimumAmountOut uint64
}

type SwapBaseInputParams struct {
	AmountIn           uint64
	MinimumAmountOut   uint64
	Payer              solana.PublicKey
	Authority          solana.PublicKey
	AmmConfig          solana.PublicKey
	PoolState          solana.PublicKey
	InputTokenAccount  solana.PublicKey
	OutputTokenAccount solana.PublicKey
	InputVault         solana.PublicKey
	OutputVault        solana.PublicKey
	InputTokenProgram  solana.PublicKey
	OutputTokenProgram solana.PublicKey
	InputMint          solana.PublicKey
	OutputMint         solana.PublicKey
}

func (instruction *SwapBaseInputInstruction) Data() ([]byte, error) {
	return encode(instruction)
}

func (instruction *SwapBaseInputInstruction) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeTypeID(encoder, instruction.TypeID); err != nil {
		return err
	}
	if err = encoder.WriteUint64(instruction.AmountIn, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteUint64(instruction.MinimumAmountOut, binary.LittleEndian)
}

func MakeSwapBaseInputInstruction(programId solana.PublicKey, params *SwapBaseInputParams) *SwapBaseInputInstruction {
	ins := &SwapBaseInputInstruction{
		AmountIn:         params.AmountIn,
		MinimumAmountOut: params.MinimumAmountOut,
	}
	ins.programId = programId
	ins.BaseVariant = bin.BaseVariant{
		Impl:   ins,
		TypeID: coder.SwapBaseInputDiscriminator,
	}

	ins.AccountMetaSlice = []*solana.AccountMeta{
		solana.Meta(params.Payer).WRITE().SIGNER(),
		solana.Meta(params.Authority),
		solana.Meta(params.AmmConfig),
		solana.Meta(params.PoolState).WRITE(),
		solana.Meta(params.InputTokenAccount).WRITE(),
		solana.Meta(params.OutputTokenAccount).WRITE(),
		solana.Meta(params.InputVault).WRITE(),
		solana.Meta(params.OutputVault).WRITE(),
		solana.Meta(params.InputTokenProgram),
		solana.Meta(params.OutputTokenProgram),
		solana.Meta(params.InputMint),
		solana.Meta(params.OutputMint),
	}

	return ins
}

type DepositInstruction struct {
	baseInstruction
	LpTokenAmount       uint64
	MaximumToken0Amount uint64
	MaximumToken1Amount uint64
}

type DepositParams struct {
	LpTokenAmount       uint64
	MaximumToken0Amount uint64
	MaximumToken1Amount uint64
	Owner               solana.PublicKey
	Authority           solana.PublicKey
	PoolState           solana.PublicKey
	OwnerLpToken        solana.PublicKey
	Token0Account       solana.PublicKey
	Token1Account       solana.PublicKey
	Token0Vault         solana.PublicKey
	Token1Vault         solana.PublicKey
	TokenProgram        solana.PublicKey
	TokenProgram2022    solana.PublicKey
	Vault0Mint          solana.PublicKey
	Vault1Mint          solana.PublicKey
	LpMint              solana.PublicKey
}

func (instruction *DepositInstruction) Data() ([]byte, error) {
	return encode(instruction)
}

func (instruction *DepositInstruction) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeTypeID(encoder, instruction.TypeID); err != nil {
		return err
	}
	if err = encoder.WriteUint64(instruction.LpTokenAmount, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(instruction.MaximumToken0Amount, binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteUint64(instruction.MaximumToken1Amount, binary.LittleEndian)
}

func MakeDepositInstruction(programId solana.PublicKey, params *DepositParams) *DepositInstruction {
	ins := &DepositInstruction{
		LpTokenAmount:       params.LpTokenAmount,
		MaximumToken0Amount: params.MaximumToken0Amount,
		MaximumToken1Amount: params.MaximumToken1Amount,
	}
	ins.programId = programId
	ins.BaseVariant = bin.BaseVariant{
		Impl:   ins,
		TypeID: coder.DepositDiscriminator,
	}

	ins.AccountMetaSlice = []*solana.AccountMeta{
		solana.Meta(params.Owner).WRITE().SIGNER(),
		solana.Meta(params.Authority),
		solana.Meta(params.PoolState).WRITE(),
		solana.Meta(params.OwnerLpToken).WRITE(),
		solana.Meta(params.Token0Account).WRITE(),
		solana.Meta(params.Token1Account).WRITE(),
		solana.Meta(params.Token0Vault).WRITE(),
		solana.Meta(params.Token1Vault).WRITE(),
		solana.Meta(params.TokenProgram),
		solana.Meta(params.TokenProgram2022),
		solana.Meta(params.Vault0Mint),
		solana.Meta(params.Vault1Mint),
		solana.Meta(params.LpMint).WRITE(),
	}

	return ins
}
