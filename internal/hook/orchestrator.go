package hook

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/cpswap"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/fee"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/instructions"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
)

// FeeLogFormat is logged once per successful Execute.
const FeeLogFormat = "fee: mint=%s amount=%d fee=%d burn=%d swap=%d deposit=%d"

// execute burns, swaps and deposits the fee of one transfer, in that
// order. The first failing sub-call ends the invocation and its error is
// returned as is, so the runtime discards everything done before it.
func (p *Program) execute(ctx *ledger.Context, accounts []*solana.AccountMeta, amount uint64) error {
	a, err := p.LoadExecuteAccounts(ctx, accounts)
	if err != nil {
		return err
	}

	event := a.TransferEvent(amount)
	split := fee.Calculate(event.Amount)
	signer := p.delegate.SignerSeeds()

	burn, err := p.BurnInstruction(a, split.Burn)
	if err != nil {
		return err
	}
	if err := ctx.InvokeSigned(burn, signer); err != nil {
		return fmt.Errorf("burn: %w", err)
	}

	if err := ctx.InvokeSigned(p.SwapInstruction(a, split.Swap), signer); err != nil {
		return fmt.Errorf("swap: %w", err)
	}

	deposit, err := p.DepositInstruction(ctx, a, split.Deposit)
	if err != nil {
		return err
	}
	if err := ctx.InvokeSigned(deposit, signer); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	ctx.Logf(FeeLogFormat, event.Mint, split.Amount, split.Fee, split.Burn, split.Swap, split.Deposit)
	return nil
}

// BurnInstruction burns from the transfer source on the holder's approval
// of the delegate.
func (p *Program) BurnInstruction(a *ExecuteAccounts, amount uint64) (solana.Instruction, error) {
	return instructions.NewBurnInstruction(a.Token2022Program, amount, a.Source, a.Mint, a.Delegate)
}

// SwapInstruction sells amount of the hooked mint from the delegate's
// treasury for the paired mint.
// TODO: derive a minimum output from the pool quote once a slippage bound
// is agreed on; zero accepts any price.
func (p *Program) SwapInstruction(a *ExecuteAccounts, amount uint64) solana.Instruction {
	input, inputVault, inputProgram := a.SourceSide()
	output, outputVault, outputProgram := a.PairedSide()

	return instructions.MakeSwapBaseInputInstruction(p.programs.CpSwap, &instructions.SwapBaseInputParams{
		AmountIn:           amount,
		MinimumAmountOut:   0,
		Payer:              a.Delegate,
		Authority:          a.PoolAuthority,
		AmmConfig:          a.AmmConfig,
		PoolState:          a.PoolState,
		InputTokenAccount:  input.Key(),
		OutputTokenAccount: output.Key(),
		InputVault:         inputVault.Key(),
		OutputVault:        outputVault.Key(),
		InputTokenProgram:  inputProgram,
		OutputTokenProgram: outputProgram,
		InputMint:          a.Mint,
		OutputMint:         a.PairedMint,
	})
}

// DepositInstruction quotes the LP amount that amount of the hooked mint
// buys at the pool's current reserves. The paired side is uncapped; it is
// paid from whatever the treasury holds, including the swap proceeds.
func (p *Program) DepositInstruction(ctx *ledger.Context, a *ExecuteAccounts, amount uint64) (solana.Instruction, error) {
	poolAcc, err := ctx.Account(a.PoolState)
	if err != nil {
		return nil, err
	}
	state, err := p.states.DecodePoolState(poolAcc.Data)
	if err != nil {
		return nil, err
	}

	balance0, err := p.balance(ctx, a.Token0Vault.Key())
	if err != nil {
		return nil, err
	}
	balance1, err := p.balance(ctx, a.Token1Vault.Key())
	if err != nil {
		return nil, err
	}
	reserve0, reserve1 := cpswap.Reserves(state, balance0, balance1)

	maximum0, maximum1 := amount, uint64(math.MaxUint64)
	reserve := reserve0
	if !a.SourceIsToken0 {
		maximum0, maximum1 = maximum1, maximum0
		reserve = reserve1
	}

	return instructions.MakeDepositInstruction(p.programs.CpSwap, &instructions.DepositParams{
		LpTokenAmount:       cpswap.QuoteLpForAmount(amount, state.LpSupply, reserve),
		MaximumToken0Amount: maximum0,
		MaximumToken1Amount: maximum1,
		Owner:               a.Delegate,
		Authority:           a.PoolAuthority,
		PoolState:           a.PoolState,
		OwnerLpToken:        a.LpAccount.Key(),
		Token0Account:       a.Token0Account.Key(),
		Token1Account:       a.Token1Account.Key(),
		Token0Vault:         a.Token0Vault.Key(),
		Token1Vault:         a.Token1Vault.Key(),
		TokenProgram:        a.TokenProgram,
		TokenProgram2022:    a.Token2022Program,
		Vault0Mint:          a.Pool.Token0Mint,
		Vault1Mint:          a.Pool.Token1Mint,
		LpMint:              state.LpMint,
	}), nil
}
