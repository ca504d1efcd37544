package instructions

import (
	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

type ComputeUnit struct {
	MicroLamports uint64
	Units         uint32
}

type TxOption struct {
	Blockhash solana.Hash
}

// MakeInitializeInstructions creates the delegate account when
// withDelegate is set, then publishes the extra account metas for mint.
func MakeInitializeInstructions(
	programs config.Programs,
	payer solana.PublicKey,
	mint solana.PublicKey,
	pool types.PoolKeys,
	withDelegate bool) ([]solana.Instruction, error) {

	ins := []solana.Instruction{}

	if withDelegate {
		delegate, err := pda.FindDelegatedAuthority(programs.Hook, programs.DelegateSeed)
		if err != nil {
			return nil, err
		}
		ins = append(ins, NewInitializeDelegateInstruction(programs.Hook, payer, delegate.Address))
	}

	list, _, err := pda.ExtraAccountMetaList(programs.Hook, programs.ExtraAccountMetaSeed, mint)
	if err != nil {
		return nil, err
	}

	publish, err := NewInitializeExtraAccountMetaListInstruction(programs.Hook, InitializeExtraAccountMetaListAccounts{
		Payer:                payer,
		ExtraAccountMetaList: list,
		Mint:                 mint,
		Pool:                 pool,
		Token2022Program:     programs.Token2022,
		TokenProgram:         programs.Token,
	})
	if err != nil {
		return nil, err
	}

	return append(ins, publish), nil
}

// MakeInitializeTransaction wraps MakeInitializeInstructions with compute
// budget instructions and signs it with payer.
func MakeInitializeTransaction(
	programs config.Programs,
	payer solana.PrivateKey,
	mint solana.PublicKey,
	pool types.PoolKeys,
	withDelegate bool,
	compute ComputeUnit,
	options TxOption) ([]solana.Signature, *solana.Transaction, error) {

	computeInstructions := []solana.Instruction{}

	if compute.Units > 0 {
		computeInstructions = append(
			computeInstructions,
			computebudget.NewSetComputeUnitLimitInstruction(compute.Units).Build())
	}

	if compute.MicroLamports > 0 {
		computeInstructions = append(
			computeInstructions,
			computebudget.NewSetComputeUnitPriceInstruction(compute.MicroLamports).Build())
	}

	initInstructions, err := MakeInitializeInstructions(programs, payer.PublicKey(), mint, pool, withDelegate)
	if err != nil {
		return nil, nil, err
	}

	ins := []solana.Instruction{}
	ins = append(ins, computeInstructions...)
	ins = append(ins, initInstructions...)

	tx, err := solana.NewTransaction(
		ins,
		options.Blockhash,
		solana.TransactionPayer(payer.PublicKey()),
	)

	if err != nil {
		return nil, nil, err
	}

	signature, err := tx.Sign(
		func(key solana.PublicKey) *solana.PrivateKey {
			if payer.PublicKey().Equals(key) {
				return &payer
			}
			return nil
		},
	)

	if err != nil {
		return nil, nil, err
	}

	return signature, tx, nil
}
