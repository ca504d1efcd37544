package coder

import (
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// HookInstructionCoder decodes every payload the hook program accepts.
type HookInstructionCoder struct{}

func NewHookInstructionCoder() *HookInstructionCoder {
	return &HookInstructionCoder{}
}

// Decode returns one of Execute, InitializeExtraAccountMetaList or
// InitializeDelegate. Anything else is ErrInvalidInstructionData.
func (coder *HookInstructionCoder) Decode(data []byte) (interface{}, error) {
	return decodeHookData(data)
}

// CpSwapInstructionCoder decodes the two liquidity-pool commands the hook issues.
type CpSwapInstructionCoder struct{}

func NewCpSwapInstructionCoder() *CpSwapInstructionCoder {
	return &CpSwapInstructionCoder{}
}

func (coder *CpSwapInstructionCoder) Decode(data []byte) (interface{}, error) {
	return decodeCpSwapData(data)
}

func decodeHookData(data []byte) (interface{}, error) {
	dec := bin.NewBorshDecoder(data)
	instructionID, err := dec.ReadTypeID()
	if err != nil {
		return nil, ErrInvalidInstructionData
	}

	switch instructionID {
	case ExecuteDiscriminator:
		return decodeExecute(dec)
	case InitializeExtraAccountMetaListDiscriminator:
		return InitializeExtraAccountMetaList{}, nil
	case InitializeDelegateDiscriminator:
		return InitializeDelegate{}, nil
	default:
		return nil, ErrInvalidInstructionData
	}
}

func decodeCpSwapData(data []byte) (interface{}, error) {
	dec := bin.NewBorshDecoder(data)
	instructionID, err := dec.ReadTypeID()
	if err != nil {
		return nil, ErrInvalidInstructionData
	}

	switch instructionID {
	case SwapBaseInputDiscriminator:
		return decodeSwapBaseInput(dec)
	case DepositDiscriminator:
		return decodeDeposit(dec)
	default:
		return nil, ErrInvalidInstructionData
	}
}

func decodeExecute(dec *bin.Decoder) (Execute, error) {
	var instruction Execute
	amount, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return instruction, fmt.Errorf("%w: execute amount: %v", ErrInvalidInstructionData, err)
	}
	instruction.Amount = amount

	return instruction, nil
}

func decodeSwapBaseInput(dec *bin.Decoder) (SwapBaseInput, error) {
	var instruction SwapBaseInput
	if err := readUint64s(dec, &instruction.AmountIn, &instruction.MinimumAmountOut); err != nil {
		return instruction, fmt.Errorf("%w: swap_base_input: %v", ErrInvalidInstructionData, err)
	}

	return instruction, nil
}

func decodeDeposit(dec *bin.Decoder) (Deposit, error) {
	var instruction Deposit
	err := readUint64s(dec,
		&instruction.LpTokenAmount,
		&instruction.MaximumToken0Amount,
		&instruction.MaximumToken1Amount)
	if err != nil {
		return instruction, fmt.Errorf("%w: deposit: %v", ErrInvalidInstructionData, err)
	}

	return instruction, nil
}

func readUint64s(dec *bin.Decoder, out ...*uint64) error {
	for _, v := range out {
		value, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return err
		}
		*v = value
	}
	return nil
}
