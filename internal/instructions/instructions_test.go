package instructions

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func TestExecuteInstruction(t *testing.T) {
	programId := newKey()
	accounts := ExecuteAccounts{
		Source:               newKey(),
		Mint:                 newKey(),
		Destination:          newKey(),
		Owner:                newKey(),
		ExtraAccountMetaList: newKey(),
	}
	extra := solana.Meta(newKey()).WRITE()

	ins := NewExecuteInstruction(programId, 500, accounts, []*solana.AccountMeta{extra})
	assert.Equal(t, programId, ins.ProgramID())

	data, err := ins.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	assert.Equal(t, uint64(500), binary.LittleEndian.Uint64(data[8:]))

	decoded, err := coder.NewHookInstructionCoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, coder.Execute{Amount: 500}, decoded)

	metas := ins.Accounts()
	require.Len(t, metas, 6)
	assert.Equal(t, accounts.Source, metas[0].PublicKey)
	assert.Equal(t, accounts.ExtraAccountMetaList, metas[4].PublicKey)
	assert.Equal(t, extra, metas[5])
	for _, m := range metas[:5] {
		assert.False(t, m.IsSigner)
		assert.False(t, m.IsWritable)
	}
}

func TestSwapBaseInputInstruction(t *testing.T) {
	params := &SwapBaseInputParams{
		AmountIn:           25,
		Payer:              newKey(),
		Authority:          newKey(),
		AmmConfig:          newKey(),
		PoolState:          newKey(),
		InputTokenAccount:  newKey(),
		OutputTokenAccount: newKey(),
		InputVault:         newKey(),
		OutputVault:        newKey(),
		InputTokenProgram:  solana.Token2022ProgramID,
		OutputTokenProgram: solana.TokenProgramID,
		InputMint:          newKey(),
		OutputMint:         newKey(),
	}
	ins := MakeSwapBaseInputInstruction(config.CPSWAP_PROGRAM_ID, params)

	data, err := ins.Data()
	require.NoError(t, err)
	decoded, err := coder.NewCpSwapInstructionCoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, coder.SwapBaseInput{AmountIn: 25, MinimumAmountOut: 0}, decoded)

	metas := ins.Accounts()
	require.Len(t, metas, 12)
	assert.True(t, metas[0].IsSigner)
	assert.Equal(t, params.PoolState, metas[3].PublicKey)
	assert.Equal(t, params.OutputMint, metas[11].PublicKey)
}

func TestDepositInstruction(t *testing.T) {
	params := &DepositParams{
		LpTokenAmount:       3,
		MaximumToken0Amount: 2,
		MaximumToken1Amount: math.MaxUint64,
		Owner:               newKey(),
		LpMint:              newKey(),
	}
	ins := MakeDepositInstruction(config.CPSWAP_PROGRAM_ID, params)

	data, err := ins.Data()
	require.NoError(t, err)
	decoded, err := coder.NewCpSwapInstructionCoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, coder.Deposit{LpTokenAmount: 3, MaximumToken0Amount: 2, MaximumToken1Amount: math.MaxUint64}, decoded)

	metas := ins.Accounts()
	require.Len(t, metas, 13)
	assert.True(t, metas[0].IsSigner)
	assert.Equal(t, params.LpMint, metas[12].PublicKey)
	assert.True(t, metas[12].IsWritable)
}

func TestBurnInstructionTargetsGivenProgram(t *testing.T) {
	source, mint, authority := newKey(), newKey(), newKey()

	ins, err := NewBurnInstruction(solana.Token2022ProgramID, 2, source, mint, authority)
	require.NoError(t, err)
	assert.Equal(t, solana.Token2022ProgramID, ins.ProgramID())

	data, err := ins.Data()
	require.NoError(t, err)
	assert.Equal(t, byte(token.Instruction_Burn), data[0])

	decoded, err := token.DecodeInstruction(ins.Accounts(), data)
	require.NoError(t, err)
	burn, ok := decoded.Impl.(*token.Burn)
	require.True(t, ok)
	assert.Equal(t, uint64(2), *burn.Amount)
	assert.Equal(t, []*solana.AccountMeta{
		solana.Meta(source).WRITE(),
		solana.Meta(mint).WRITE(),
		solana.Meta(authority).SIGNER(),
	}, ins.Accounts())
}

func TestTransferCheckedCarriesExtras(t *testing.T) {
	extras := []*solana.AccountMeta{solana.Meta(newKey()), solana.Meta(newKey()).WRITE()}
	ins, err := NewTransferCheckedInstruction(solana.Token2022ProgramID, 10, 6, newKey(), newKey(), newKey(), newKey(), extras)
	require.NoError(t, err)

	metas := ins.Accounts()
	require.Len(t, metas, 6)
	assert.True(t, metas[3].IsSigner)
	assert.Equal(t, extras, metas[4:])
}

func TestInitializeInstructions(t *testing.T) {
	programs := config.DefaultPrograms()
	payer := newKey()
	mint := newKey()
	pool := types.PoolKeys{
		ID:         newKey(),
		Token0Mint: mint,
		Token1Mint: newKey(),
	}

	ins, err := MakeInitializeInstructions(programs, payer, mint, pool, true)
	require.NoError(t, err)
	require.Len(t, ins, 2)

	data, err := ins[0].Data()
	require.NoError(t, err)
	decoded, err := coder.NewHookInstructionCoder().Decode(data)
	require.NoError(t, err)
	assert.IsType(t, coder.InitializeDelegate{}, decoded)

	data, err = ins[1].Data()
	require.NoError(t, err)
	decoded, err = coder.NewHookInstructionCoder().Decode(data)
	require.NoError(t, err)
	assert.IsType(t, coder.InitializeExtraAccountMetaList{}, decoded)

	metas := ins[1].Accounts()
	require.Len(t, metas, 15)
	assert.Equal(t, mint, metas[2].PublicKey)
	assert.Equal(t, pool.Token1Mint, metas[4].PublicKey)
	assert.Equal(t, pool.ID, metas[7].PublicKey)

	ins, err = MakeInitializeInstructions(programs, payer, mint, pool, false)
	require.NoError(t, err)
	assert.Len(t, ins, 1)

	_, err = MakeInitializeInstructions(programs, payer, newKey(), pool, true)
	assert.ErrorIs(t, err, ErrMintNotInPool)
}

func TestMakeInitializeTransaction(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	mint := newKey()
	pool := types.PoolKeys{ID: newKey(), Token0Mint: newKey(), Token1Mint: mint}

	signatures, tx, err := MakeInitializeTransaction(
		config.DefaultPrograms(), payer, mint, pool, true,
		ComputeUnit{Units: 200_000, MicroLamports: 1000},
		TxOption{Blockhash: solana.Hash{1}})
	require.NoError(t, err)
	require.Len(t, signatures, 1)
	assert.Len(t, tx.Message.Instructions, 4)
	assert.NoError(t, tx.VerifySignatures())
}
