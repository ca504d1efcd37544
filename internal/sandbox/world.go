// Package sandbox assembles a ledger runtime with both token programs, a
// constant-product pool and the hook program, seeded with a hooked mint, a
// funded pool and a delegate treasury.
package sandbox

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	spltoken "github.com/gagliardetto/solana-go/programs/token"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/cpswap"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/hook"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/instructions"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/token"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

type Options struct {
	Programs config.Programs

	MintDecimals   uint8
	PairedDecimals uint8

	HolderBalance uint64
	// Allowance is what the holder approves the delegate to burn.
	Allowance uint64

	SourceReserve uint64
	PairedReserve uint64
	LpSupply      uint64
	TradeFeeRate  uint64

	SourceTreasury uint64
	PairedTreasury uint64

	// SourceIsToken1 puts the hooked mint on the pool's token 1 side.
	SourceIsToken1 bool
	// Initialize creates the delegate and publishes the extra account metas.
	Initialize bool
}

func DefaultOptions() Options {
	return Options{
		Programs:       config.DefaultPrograms(),
		MintDecimals:   6,
		PairedDecimals: 9,
		HolderBalance:  1_000_000_000,
		Allowance:      math.MaxUint64,
		SourceReserve:  1_000_000_000,
		PairedReserve:  1_000_000_000,
		LpSupply:       1_000_000_000,
		TradeFeeRate:   2500,
		SourceTreasury: 1_000_000_000,
		PairedTreasury: 1_000_000_000,
		Initialize:     true,
	}
}

type World struct {
	Runtime  *ledger.Runtime
	Programs config.Programs
	Hook     *hook.Program
	CpSwap   *cpswap.Program
	Options  Options

	Payer     solana.PublicKey
	Holder    solana.PublicKey
	Recipient solana.PublicKey

	Mint             solana.PublicKey
	PairedMint       solana.PublicKey
	HolderAccount    solana.PublicKey
	RecipientAccount solana.PublicKey

	Delegate             solana.PublicKey
	ExtraAccountMetaList solana.PublicKey
	Pool                 types.PoolKeys
}

func New(opts Options) (*World, error) {
	programs := opts.Programs
	rt := ledger.NewRuntime()

	hookProgram, err := hook.NewProgram(programs)
	if err != nil {
		return nil, err
	}
	pool, err := cpswap.NewProgram(programs)
	if err != nil {
		return nil, err
	}
	rt.Register(programs.Token, token.NewLegacyProgram(programs))
	rt.Register(programs.Token2022, token.NewToken2022Program(programs))
	rt.Register(programs.CpSwap, pool)
	rt.Register(programs.Hook, hookProgram)

	w := &World{
		Runtime:          rt,
		Programs:         programs,
		Hook:             hookProgram,
		CpSwap:           pool,
		Options:          opts,
		Payer:            newKey(),
		Holder:           newKey(),
		Recipient:        newKey(),
		Mint:             newKey(),
		PairedMint:       newKey(),
		HolderAccount:    newKey(),
		RecipientAccount: newKey(),
		Delegate:         hookProgram.Delegate().Address,
	}

	w.ExtraAccountMetaList, _, err = pda.ExtraAccountMetaList(programs.Hook, programs.ExtraAccountMetaSeed, w.Mint)
	if err != nil {
		return nil, err
	}

	if err := w.seed(); err != nil {
		return nil, err
	}

	if opts.Initialize {
		if _, err := w.Initialize(true); err != nil {
			return nil, fmt.Errorf("initialize: %w", err)
		}
	}
	if opts.Allowance > 0 {
		if _, err := w.Approve(opts.Allowance); err != nil {
			return nil, fmt.Errorf("approve: %w", err)
		}
	}

	return w, nil
}

func newKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func (w *World) seed() error {
	opts, programs, rent := w.Options, w.Programs, w.Runtime.Rent()

	w.Runtime.SetAccount(ledger.Account{
		Key:      w.Payer,
		Lamports: 100 * uint64(config.LAMPORTS_PER_SOL),
		Owner:    programs.System,
	})

	poolState := newKey()
	lpMint, _, err := pda.PoolLpMint(programs.CpSwap, programs.PoolLpMintSeed, poolState)
	if err != nil {
		return err
	}
	authority := w.CpSwap.Authority()

	state := coder.PoolState{
		AmmConfig:      newKey(),
		PoolCreator:    w.Payer,
		Token0Vault:    newKey(),
		Token1Vault:    newKey(),
		LpMint:         lpMint,
		Token0Mint:     w.Mint,
		Token1Mint:     w.PairedMint,
		Token0Program:  programs.Token2022,
		Token1Program:  programs.Token,
		ObservationKey: newKey(),
		LpMintDecimals: 9,
		Mint0Decimals:  opts.MintDecimals,
		Mint1Decimals:  opts.PairedDecimals,
		LpSupply:       opts.LpSupply,
	}
	reserve0, reserve1 := opts.SourceReserve, opts.PairedReserve
	treasury0, treasury1 := opts.SourceTreasury, opts.PairedTreasury
	if opts.SourceIsToken1 {
		state.Token0Mint, state.Token1Mint = state.Token1Mint, state.Token0Mint
		state.Token0Program, state.Token1Program = state.Token1Program, state.Token0Program
		state.Mint0Decimals, state.Mint1Decimals = state.Mint1Decimals, state.Mint0Decimals
		reserve0, reserve1 = reserve1, reserve0
		treasury0, treasury1 = treasury1, treasury0
	}

	w.Pool = cpswap.PoolKeys(poolState, programs.CpSwap, authority, state)
	w.Pool.Token0Account = newKey()
	w.Pool.Token1Account = newKey()
	w.Pool.LpAccount = newKey()

	accounts := []func() (ledger.Account, error){
		func() (ledger.Account, error) {
			return token.NewMintAccount(w.Mint, programs.Token2022, &token.Mint{
				Mint: spltoken.Mint{
					MintAuthority: w.Payer.ToPointer(),
					Supply:        opts.HolderBalance + opts.SourceReserve + opts.SourceTreasury,
					Decimals:      opts.MintDecimals,
				},
				TransferHook: &token.TransferHook{Authority: w.Payer, ProgramID: programs.Hook},
			}, rent)
		},
		func() (ledger.Account, error) {
			return token.NewMintAccount(w.PairedMint, programs.Token, &token.Mint{
				Mint: spltoken.Mint{
					MintAuthority: w.Payer.ToPointer(),
					Supply:        opts.PairedReserve + opts.PairedTreasury,
					Decimals:      opts.PairedDecimals,
				},
			}, rent)
		},
		func() (ledger.Account, error) {
			return token.NewMintAccount(lpMint, programs.Token, &token.Mint{
				Mint: spltoken.Mint{
					MintAuthority: authority.ToPointer(),
					Supply:        opts.LpSupply,
					Decimals:      9,
				},
			}, rent)
		},
		func() (ledger.Account, error) {
			return cpswap.NewAmmConfigAccount(state.AmmConfig, programs.CpSwap, coder.AmmConfig{
				TradeFeeRate:  opts.TradeFeeRate,
				ProtocolOwner: w.Payer,
				FundOwner:     w.Payer,
			}, rent)
		},
		func() (ledger.Account, error) {
			return cpswap.NewPoolStateAccount(poolState, programs.CpSwap, state, rent)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.Pool.Token0Vault, state.Token0Program, state.Token0Mint, authority, reserve0)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.Pool.Token1Vault, state.Token1Program, state.Token1Mint, authority, reserve1)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.Pool.Token0Account, state.Token0Program, state.Token0Mint, w.Delegate, treasury0)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.Pool.Token1Account, state.Token1Program, state.Token1Mint, w.Delegate, treasury1)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.Pool.LpAccount, programs.Token, lpMint, w.Delegate, 0)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.HolderAccount, programs.Token2022, w.Mint, w.Holder, opts.HolderBalance)
		},
		func() (ledger.Account, error) {
			return w.tokenAccount(w.RecipientAccount, programs.Token2022, w.Mint, w.Recipient, 0)
		},
	}

	for _, build := range accounts {
		acc, err := build()
		if err != nil {
			return err
		}
		w.Runtime.SetAccount(acc)
	}
	return nil
}

func (w *World) tokenAccount(key, programId, mint, owner solana.PublicKey, amount uint64) (ledger.Account, error) {
	return token.NewTokenAccount(key, programId, mint, owner, amount, programId.Equals(w.Programs.Token2022), w.Runtime.Rent())
}

// Send runs instructions as one transaction.
func (w *World) Send(signers []solana.PublicKey, ixs ...solana.Instruction) (*ledger.Receipt, error) {
	return w.Runtime.Process(&ledger.Transaction{Instructions: ixs, Signers: signers})
}

// Initialize creates the delegate account when withDelegate is set and
// publishes the mint's extra account metas, paid by the payer.
func (w *World) Initialize(withDelegate bool) (*ledger.Receipt, error) {
	ixs, err := instructions.MakeInitializeInstructions(w.Programs, w.Payer, w.Mint, w.Pool, withDelegate)
	if err != nil {
		return nil, err
	}
	return w.Send([]solana.PublicKey{w.Payer}, ixs...)
}

// Approve lets the delegate burn up to amount from the holder.
func (w *World) Approve(amount uint64) (*ledger.Receipt, error) {
	ix, err := instructions.NewApproveInstruction(w.Programs.Token2022, amount, w.HolderAccount, w.Delegate, w.Holder)
	if err != nil {
		return nil, err
	}
	return w.Send([]solana.PublicKey{w.Holder}, ix)
}

func (w *World) ExtraAccountMetas() (meta.List, error) {
	acc, ok := w.Runtime.Account(w.ExtraAccountMetaList)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, w.ExtraAccountMetaList)
	}
	return meta.Decode(acc.Data)
}

// ResolvedExtras are the accounts a client appends to a transfer of the
// hooked mint, in published order.
func (w *World) ResolvedExtras() ([]*solana.AccountMeta, error) {
	list, err := w.ExtraAccountMetas()
	if err != nil {
		return nil, err
	}
	return list.Resolve(w.Programs.Hook)
}

// TransferInstruction moves amount from holder to recipient with the
// resolved hook accounts attached, the way a wallet builds it.
func (w *World) TransferInstruction(amount uint64) (solana.Instruction, error) {
	extras, err := w.ResolvedExtras()
	if err != nil {
		return nil, err
	}
	extras = append(extras, solana.Meta(w.Programs.Hook), solana.Meta(w.ExtraAccountMetaList))

	return instructions.NewTransferCheckedInstruction(
		w.Programs.Token2022,
		amount,
		w.Options.MintDecimals,
		w.HolderAccount,
		w.Mint,
		w.RecipientAccount,
		w.Holder,
		extras,
	)
}

func (w *World) Transfer(amount uint64) (*ledger.Receipt, error) {
	ix, err := w.TransferInstruction(amount)
	if err != nil {
		return nil, err
	}
	return w.Send([]solana.PublicKey{w.Holder}, ix)
}

// ExecuteInstruction calls the hook directly, as the token program would
// after a transfer of amount.
func (w *World) ExecuteInstruction(amount uint64) (*instructions.ExecuteInstruction, error) {
	extras, err := w.ResolvedExtras()
	if err != nil {
		return nil, err
	}
	return instructions.NewExecuteInstruction(w.Programs.Hook, amount, w.ExecuteAccounts(), extras), nil
}

func (w *World) ExecuteAccounts() instructions.ExecuteAccounts {
	return instructions.ExecuteAccounts{
		Source:               w.HolderAccount,
		Mint:                 w.Mint,
		Destination:          w.RecipientAccount,
		Owner:                w.Holder,
		ExtraAccountMetaList: w.ExtraAccountMetaList,
	}
}

func (w *World) Balance(key solana.PublicKey) (uint64, error) {
	acc, ok := w.Runtime.Account(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, key)
	}
	state, err := token.DecodeAccount(acc.Data)
	if err != nil {
		return 0, err
	}
	return state.Amount, nil
}

func (w *World) Supply(mint solana.PublicKey) (uint64, error) {
	acc, ok := w.Runtime.Account(mint)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, mint)
	}
	m, err := token.DecodeMint(acc.Data)
	if err != nil {
		return 0, err
	}
	return m.Supply, nil
}

func (w *World) PoolState() (coder.PoolState, error) {
	acc, ok := w.Runtime.Account(w.Pool.ID)
	if !ok {
		return coder.PoolState{}, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, w.Pool.ID)
	}
	return coder.NewCpSwapStateCoder().DecodePoolState(acc.Data)
}

// Snapshot records every token balance and mint supply in the world.
type Snapshot map[solana.PublicKey]uint64

func (w *World) Snapshot() (Snapshot, error) {
	snap := Snapshot{}
	for _, key := range []solana.PublicKey{
		w.HolderAccount, w.RecipientAccount,
		w.Pool.Token0Vault, w.Pool.Token1Vault,
		w.Pool.Token0Account, w.Pool.Token1Account, w.Pool.LpAccount,
	} {
		balance, err := w.Balance(key)
		if err != nil {
			return nil, err
		}
		snap[key] = balance
	}
	for _, mint := range []solana.PublicKey{w.Mint, w.PairedMint, w.Pool.LpMint} {
		supply, err := w.Supply(mint)
		if err != nil {
			return nil, err
		}
		snap[mint] = supply
	}
	return snap, nil
}
