// Package cpswap hosts a constant-product liquidity pool program on the
// ledger runtime, speaking the swap_base_input and deposit wire formats.
package cpswap

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/token"
)

// Program moves balances through token.Account directly instead of nested
// token program calls, so vault movements never re-enter a transfer hook.
type Program struct {
	programs  config.Programs
	resolver  token.Resolver
	authority solana.PublicKey
	states    *coder.CpSwapStateCoder
}

func NewProgram(programs config.Programs) (*Program, error) {
	authority, _, err := pda.PoolAuthority(programs.CpSwap, programs.PoolAuthoritySeed)
	if err != nil {
		return nil, err
	}
	return &Program{
		programs:  programs,
		resolver:  token.NewResolver(programs),
		authority: authority,
		states:    coder.NewCpSwapStateCoder(),
	}, nil
}

func (p *Program) Authority() solana.PublicKey {
	return p.authority
}

func (p *Program) Process(ctx *ledger.Context, accounts []*solana.AccountMeta, data []byte) error {
	decoded, err := coder.NewCpSwapInstructionCoder().Decode(data)
	if err != nil {
		return err
	}

	switch instruction := decoded.(type) {
	case coder.SwapBaseInput:
		return p.swapBaseInput(ctx, accounts, instruction)
	case coder.Deposit:
		return p.deposit(ctx, accounts, instruction)
	default:
		return coder.ErrInvalidInstructionData
	}
}

func (p *Program) loadPool(ctx *ledger.Context, key solana.PublicKey) (*ledger.Account, coder.PoolState, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return nil, coder.PoolState{}, err
	}
	if !acc.Owner.Equals(p.programs.CpSwap) {
		return nil, coder.PoolState{}, fmt.Errorf("%w: pool state %s", ErrInvalidPool, key)
	}
	state, err := p.states.DecodePoolState(acc.Data)
	return acc, state, err
}

func (p *Program) savePool(acc *ledger.Account, state coder.PoolState) error {
	data, err := coder.EncodePoolState(state)
	if err != nil {
		return err
	}
	acc.Data = data
	return nil
}

func (p *Program) loadConfig(ctx *ledger.Context, key solana.PublicKey) (coder.AmmConfig, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return coder.AmmConfig{}, err
	}
	if !acc.Owner.Equals(p.programs.CpSwap) {
		return coder.AmmConfig{}, fmt.Errorf("%w: amm config %s", ErrInvalidPool, key)
	}
	return p.states.DecodeAmmConfig(acc.Data)
}

func (p *Program) tokenAccount(ctx *ledger.Context, key solana.PublicKey, mint solana.PublicKey) (token.Account, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return nil, err
	}
	loaded, err := p.resolver.Load(acc)
	if err != nil {
		return nil, err
	}
	if !loaded.Mint().Equals(mint) {
		return nil, fmt.Errorf("%w: %s", token.ErrMintMismatch, key)
	}
	return loaded, nil
}

func (p *Program) checkAuthority(key solana.PublicKey) error {
	if !key.Equals(p.authority) {
		return fmt.Errorf("%w: %s", ErrInvalidAuthority, key)
	}
	return nil
}

func (p *Program) swapBaseInput(ctx *ledger.Context, accounts []*solana.AccountMeta, instruction coder.SwapBaseInput) error {
	if len(accounts) < 12 {
		return ErrNotEnoughAccountKeys
	}

	payer := accounts[0].PublicKey
	if !ctx.IsSigner(payer) {
		return fmt.Errorf("%w: %s", ledger.ErrMissingRequiredSignature, payer)
	}
	if err := p.checkAuthority(accounts[1].PublicKey); err != nil {
		return err
	}

	poolAcc, state, err := p.loadPool(ctx, accounts[3].PublicKey)
	if err != nil {
		return err
	}
	if !state.AmmConfig.Equals(accounts[2].PublicKey) {
		return fmt.Errorf("%w: amm config", ErrInvalidPool)
	}
	ammConfig, err := p.loadConfig(ctx, state.AmmConfig)
	if err != nil {
		return err
	}

	inputVaultKey, outputVaultKey := accounts[6].PublicKey, accounts[7].PublicKey
	inputMint, outputMint := accounts[10].PublicKey, accounts[11].PublicKey

	var zeroForOne bool
	switch {
	case inputVaultKey.Equals(state.Token0Vault) && outputVaultKey.Equals(state.Token1Vault):
		zeroForOne = true
	case inputVaultKey.Equals(state.Token1Vault) && outputVaultKey.Equals(state.Token0Vault):
		zeroForOne = false
	default:
		return ErrInvalidVault
	}
	if zeroForOne && (!inputMint.Equals(state.Token0Mint) || !outputMint.Equals(state.Token1Mint)) ||
		!zeroForOne && (!inputMint.Equals(state.Token1Mint) || !outputMint.Equals(state.Token0Mint)) {
		return fmt.Errorf("%w: mints", ErrInvalidPool)
	}

	input, err := p.tokenAccount(ctx, accounts[4].PublicKey, inputMint)
	if err != nil {
		return err
	}
	output, err := p.tokenAccount(ctx, accounts[5].PublicKey, outputMint)
	if err != nil {
		return err
	}
	inputVault, err := p.tokenAccount(ctx, inputVaultKey, inputMint)
	if err != nil {
		return err
	}
	outputVault, err := p.tokenAccount(ctx, outputVaultKey, outputMint)
	if err != nil {
		return err
	}

	if !input.Owner().Equals(payer) {
		return fmt.Errorf("%w: input %s", ErrInvalidOwner, input.Key())
	}
	if !input.ProgramID().Equals(accounts[8].PublicKey) || !output.ProgramID().Equals(accounts[9].PublicKey) {
		return ErrInvalidTokenProgram
	}

	if instruction.AmountIn == 0 {
		return nil
	}

	vault0, vault1 := inputVault, outputVault
	if !zeroForOne {
		vault0, vault1 = outputVault, inputVault
	}
	reserve0, reserve1 := Reserves(state, vault0.Balance(), vault1.Balance())
	reserveIn, reserveOut := reserve0, reserve1
	if !zeroForOne {
		reserveIn, reserveOut = reserve1, reserve0
	}

	amountOut, fee := SwapBaseInput(instruction.AmountIn, reserveIn, reserveOut, ammConfig.TradeFeeRate)
	if amountOut < instruction.MinimumAmountOut {
		return fmt.Errorf("%w: out %d, minimum %d", ErrExceededSlippage, amountOut, instruction.MinimumAmountOut)
	}

	if err := input.Debit(instruction.AmountIn); err != nil {
		return err
	}
	if err := inputVault.Credit(instruction.AmountIn); err != nil {
		return err
	}
	if err := outputVault.Debit(amountOut); err != nil {
		return err
	}
	if err := output.Credit(amountOut); err != nil {
		return err
	}

	ctx.Logf("swap_base_input: in=%d out=%d fee=%d", instruction.AmountIn, amountOut, fee)
	return p.savePool(poolAcc, state)
}

func (p *Program) deposit(ctx *ledger.Context, accounts []*solana.AccountMeta, instruction coder.Deposit) error {
	if len(accounts) < 13 {
		return ErrNotEnoughAccountKeys
	}

	owner := accounts[0].PublicKey
	if !ctx.IsSigner(owner) {
		return fmt.Errorf("%w: %s", ledger.ErrMissingRequiredSignature, owner)
	}
	if err := p.checkAuthority(accounts[1].PublicKey); err != nil {
		return err
	}

	poolAcc, state, err := p.loadPool(ctx, accounts[2].PublicKey)
	if err != nil {
		return err
	}
	if !accounts[6].PublicKey.Equals(state.Token0Vault) || !accounts[7].PublicKey.Equals(state.Token1Vault) {
		return ErrInvalidVault
	}
	if !accounts[10].PublicKey.Equals(state.Token0Mint) || !accounts[11].PublicKey.Equals(state.Token1Mint) {
		return fmt.Errorf("%w: mints", ErrInvalidPool)
	}
	if !accounts[12].PublicKey.Equals(state.LpMint) {
		return fmt.Errorf("%w: lp mint", ErrInvalidPool)
	}
	if !accounts[8].PublicKey.Equals(p.programs.Token) || !accounts[9].PublicKey.Equals(p.programs.Token2022) {
		return ErrInvalidTokenProgram
	}

	ownerLp, err := p.tokenAccount(ctx, accounts[3].PublicKey, state.LpMint)
	if err != nil {
		return err
	}
	token0, err := p.tokenAccount(ctx, accounts[4].PublicKey, state.Token0Mint)
	if err != nil {
		return err
	}
	token1, err := p.tokenAccount(ctx, accounts[5].PublicKey, state.Token1Mint)
	if err != nil {
		return err
	}
	vault0, err := p.tokenAccount(ctx, state.Token0Vault, state.Token0Mint)
	if err != nil {
		return err
	}
	vault1, err := p.tokenAccount(ctx, state.Token1Vault, state.Token1Mint)
	if err != nil {
		return err
	}
	if !token0.Owner().Equals(owner) || !token1.Owner().Equals(owner) {
		return ErrInvalidOwner
	}

	if instruction.LpTokenAmount == 0 {
		return nil
	}

	reserve0, reserve1 := Reserves(state, vault0.Balance(), vault1.Balance())
	amount0, amount1, ok := LpTokensToTradingTokens(instruction.LpTokenAmount, state.LpSupply, reserve0, reserve1)
	if !ok {
		return ErrZeroLiquidity
	}
	if amount0 > instruction.MaximumToken0Amount || amount1 > instruction.MaximumToken1Amount {
		return fmt.Errorf("%w: needs %d/%d, allowed %d/%d", ErrExceededSlippage,
			amount0, amount1, instruction.MaximumToken0Amount, instruction.MaximumToken1Amount)
	}

	lpMintAcc, err := ctx.Account(state.LpMint)
	if err != nil {
		return err
	}
	if !lpMintAcc.Owner.Equals(p.programs.Token) {
		return fmt.Errorf("%w: lp mint owned by %s", ErrInvalidTokenProgram, lpMintAcc.Owner)
	}
	lpMint, err := token.DecodeMint(lpMintAcc.Data)
	if err != nil {
		return err
	}
	if lpMint.Supply > math.MaxUint64-instruction.LpTokenAmount || state.LpSupply > math.MaxUint64-instruction.LpTokenAmount {
		return fmt.Errorf("%w: lp supply", token.ErrOverflow)
	}

	if err := token0.Debit(amount0); err != nil {
		return err
	}
	if err := vault0.Credit(amount0); err != nil {
		return err
	}
	if err := token1.Debit(amount1); err != nil {
		return err
	}
	if err := vault1.Credit(amount1); err != nil {
		return err
	}

	lpMint.Supply += instruction.LpTokenAmount
	if err := token.StoreMint(lpMintAcc, lpMint); err != nil {
		return err
	}
	if err := ownerLp.Credit(instruction.LpTokenAmount); err != nil {
		return err
	}

	state.LpSupply += instruction.LpTokenAmount
	ctx.Logf("deposit: lp=%d token0=%d token1=%d", instruction.LpTokenAmount, amount0, amount1)
	return p.savePool(poolAcc, state)
}
