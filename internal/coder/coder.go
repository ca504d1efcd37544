package coder

import (
	"errors"

	bin "github.com/gagliardetto/binary"
)

var ErrInvalidInstructionData = errors.New("invalid instruction data")

// Transfer-hook interface command, as sent by the token-2022 program.
type Execute struct {
	Amount uint64
}

type InitializeExtraAccountMetaList struct{}

type InitializeDelegate struct{}

type SwapBaseInput struct {
	AmountIn         uint64
	MinimumAmountOut uint64
}

type Deposit struct {
	LpTokenAmount       uint64
	MaximumToken0Amount uint64
	MaximumToken1Amount uint64
}

var (
	ExecuteDiscriminator = bin.TypeIDFromBytes(
		bin.Sighash("spl-transfer-hook-interface", "execute"))
	InitializeExtraAccountMetaListDiscriminator = bin.SighashTypeID(
		bin.SIGHASH_GLOBAL_NAMESPACE, "initialize_extra_account_meta_list")
	InitializeDelegateDiscriminator = bin.SighashTypeID(
		bin.SIGHASH_GLOBAL_NAMESPACE, "initialize_delegate")

	SwapBaseInputDiscriminator = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "swap_base_input")
	DepositDiscriminator       = bin.SighashTypeID(bin.SIGHASH_GLOBAL_NAMESPACE, "deposit")

	PoolStateDiscriminator = bin.TypeIDFromBytes(bin.SighashAccount("PoolState"))
	AmmConfigDiscriminator = bin.TypeIDFromBytes(bin.SighashAccount("AmmConfig"))
)
