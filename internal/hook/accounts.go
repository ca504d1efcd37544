package hook

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/token"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
)

// Positions in the published extra account meta list. The token-2022
// program appends the resolved accounts in this order after the fixed
// Execute accounts, and the orchestrator reads them back by the same index.
const (
	ExtraSourceMint = iota
	ExtraPairedMint
	ExtraDelegate
	ExtraToken2022Program
	ExtraAmmConfig
	ExtraPoolState
	ExtraLpAccount
	ExtraToken0Account
	ExtraToken1Account
	ExtraToken0Vault
	ExtraToken1Vault
	ExtraTokenProgram
	ExtraPoolAuthority

	ExtraAccountCount
)

const (
	executeSource = iota
	executeMint
	executeDestination
	executeOwner
	executeExtraAccountMetaList

	executeFixedAccounts
)

// ExtraAccounts are the literal addresses a mint's list is built from.
// The delegate is not among them; it is always published as a seed recipe.
type ExtraAccounts struct {
	SourceMint       solana.PublicKey
	PairedMint       solana.PublicKey
	Token2022Program solana.PublicKey
	AmmConfig        solana.PublicKey
	PoolState        solana.PublicKey
	LpAccount        solana.PublicKey
	Token0Account    solana.PublicKey
	Token1Account    solana.PublicKey
	Token0Vault      solana.PublicKey
	Token1Vault      solana.PublicKey
	TokenProgram     solana.PublicKey
	PoolAuthority    solana.PublicKey
}

func BuildExtraAccountMetas(delegateSeed string, accounts ExtraAccounts) (meta.List, error) {
	delegate, err := meta.NewWithSeeds([][]byte{[]byte(delegateSeed)}, false, true)
	if err != nil {
		return nil, err
	}

	list := make(meta.List, ExtraAccountCount)
	list[ExtraSourceMint] = meta.NewWithPubkey(accounts.SourceMint, false, true)
	list[ExtraPairedMint] = meta.NewWithPubkey(accounts.PairedMint, false, true)
	list[ExtraDelegate] = delegate
	list[ExtraToken2022Program] = meta.NewWithPubkey(accounts.Token2022Program, false, false)
	list[ExtraAmmConfig] = meta.NewWithPubkey(accounts.AmmConfig, false, true)
	list[ExtraPoolState] = meta.NewWithPubkey(accounts.PoolState, false, true)
	list[ExtraLpAccount] = meta.NewWithPubkey(accounts.LpAccount, false, true)
	list[ExtraToken0Account] = meta.NewWithPubkey(accounts.Token0Account, false, true)
	list[ExtraToken1Account] = meta.NewWithPubkey(accounts.Token1Account, false, true)
	list[ExtraToken0Vault] = meta.NewWithPubkey(accounts.Token0Vault, false, true)
	list[ExtraToken1Vault] = meta.NewWithPubkey(accounts.Token1Vault, false, true)
	list[ExtraTokenProgram] = meta.NewWithPubkey(accounts.TokenProgram, false, false)
	list[ExtraPoolAuthority] = meta.NewWithPubkey(accounts.PoolAuthority, false, false)

	return list, nil
}

// ExecuteAccounts is the validated account set of one Execute call.
// Token accounts are resolved to their program variant here and not again.
type ExecuteAccounts struct {
	Source               solana.PublicKey
	Mint                 solana.PublicKey
	Destination          solana.PublicKey
	Owner                solana.PublicKey
	ExtraAccountMetaList solana.PublicKey

	PairedMint       solana.PublicKey
	Delegate         solana.PublicKey
	Token2022Program solana.PublicKey
	AmmConfig        solana.PublicKey
	PoolState        solana.PublicKey
	LpAccount        token.Account
	Token0Account    token.Account
	Token1Account    token.Account
	Token0Vault      token.Account
	Token1Vault      token.Account
	TokenProgram     solana.PublicKey
	PoolAuthority    solana.PublicKey

	Pool coder.PoolState
	// SourceIsToken0 is set when the hooked mint is the pool's token 0.
	SourceIsToken0 bool
}

// SourceSide returns the treasury account, vault and token program on the
// hooked mint's side of the pool.
func (a *ExecuteAccounts) SourceSide() (account token.Account, vault token.Account, program solana.PublicKey) {
	if a.SourceIsToken0 {
		return a.Token0Account, a.Token0Vault, a.Pool.Token0Program
	}
	return a.Token1Account, a.Token1Vault, a.Pool.Token1Program
}

func (a *ExecuteAccounts) PairedSide() (account token.Account, vault token.Account, program solana.PublicKey) {
	if a.SourceIsToken0 {
		return a.Token1Account, a.Token1Vault, a.Pool.Token1Program
	}
	return a.Token0Account, a.Token0Vault, a.Pool.Token0Program
}

// LoadExecuteAccounts checks the Execute account set against the program's
// derived addresses and the pool state it names. The source must be
// flagged by the token program as mid-transfer.
func (p *Program) LoadExecuteAccounts(ctx *ledger.Context, accounts []*solana.AccountMeta) (*ExecuteAccounts, error) {
	want := executeFixedAccounts + ExtraAccountCount
	if len(accounts) < want {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrNotEnoughAccountKeys, len(accounts), want)
	}

	fixed, extra := accounts[:executeFixedAccounts], accounts[executeFixedAccounts:]
	key := func(i int) solana.PublicKey { return extra[i].PublicKey }

	a := &ExecuteAccounts{
		Source:               fixed[executeSource].PublicKey,
		Mint:                 fixed[executeMint].PublicKey,
		Destination:          fixed[executeDestination].PublicKey,
		Owner:                fixed[executeOwner].PublicKey,
		ExtraAccountMetaList: fixed[executeExtraAccountMetaList].PublicKey,
		Delegate:             key(ExtraDelegate),
	}

	listKey, _, err := pda.ExtraAccountMetaList(p.programs.Hook, p.programs.ExtraAccountMetaSeed, a.Mint)
	if err != nil {
		return nil, err
	}
	if !a.ExtraAccountMetaList.Equals(listKey) {
		return nil, fmt.Errorf("%w: extra account meta list %s", ErrInvalidSeeds, a.ExtraAccountMetaList)
	}
	listAcc, err := ctx.Account(listKey)
	if err != nil {
		return nil, err
	}
	if !listAcc.Owner.Equals(p.programs.Hook) {
		return nil, fmt.Errorf("%w: extra account meta list owned by %s", ErrInvalidAccount, listAcc.Owner)
	}

	if !a.Delegate.Equals(p.delegate.Address) {
		return nil, fmt.Errorf("%w: delegate %s", ErrInvalidSeeds, a.Delegate)
	}

	err = p.loadPoolAccounts(ctx, a, ExtraAccounts{
		SourceMint:       key(ExtraSourceMint),
		PairedMint:       key(ExtraPairedMint),
		Token2022Program: key(ExtraToken2022Program),
		AmmConfig:        key(ExtraAmmConfig),
		PoolState:        key(ExtraPoolState),
		LpAccount:        key(ExtraLpAccount),
		Token0Account:    key(ExtraToken0Account),
		Token1Account:    key(ExtraToken1Account),
		Token0Vault:      key(ExtraToken0Vault),
		Token1Vault:      key(ExtraToken1Vault),
		TokenProgram:     key(ExtraTokenProgram),
		PoolAuthority:    key(ExtraPoolAuthority),
	})
	if err != nil {
		return nil, err
	}

	if err := p.checkTransferring(ctx, a.Source, a.Mint); err != nil {
		return nil, err
	}

	return a, nil
}

// loadPoolAccounts fills the pool side of a from literal and checks every
// address against the pool state. a.Mint and a.Delegate must already be set.
func (p *Program) loadPoolAccounts(ctx *ledger.Context, a *ExecuteAccounts, literal ExtraAccounts) error {
	a.PairedMint = literal.PairedMint
	a.Token2022Program = literal.Token2022Program
	a.AmmConfig = literal.AmmConfig
	a.PoolState = literal.PoolState
	a.TokenProgram = literal.TokenProgram
	a.PoolAuthority = literal.PoolAuthority

	if !literal.SourceMint.Equals(a.Mint) {
		return fmt.Errorf("%w: source mint %s", ErrInvalidAccount, literal.SourceMint)
	}
	if !a.PoolAuthority.Equals(p.poolAuthority) {
		return fmt.Errorf("%w: pool authority %s", ErrInvalidSeeds, a.PoolAuthority)
	}
	if !a.Token2022Program.Equals(p.programs.Token2022) {
		return fmt.Errorf("%w: %s", ErrIncorrectProgramId, a.Token2022Program)
	}
	if !a.TokenProgram.Equals(p.programs.Token) {
		return fmt.Errorf("%w: %s", ErrIncorrectProgramId, a.TokenProgram)
	}

	poolAcc, err := ctx.Account(a.PoolState)
	if err != nil {
		return err
	}
	if !poolAcc.Owner.Equals(p.programs.CpSwap) {
		return fmt.Errorf("%w: pool state owned by %s", ErrInvalidAccount, poolAcc.Owner)
	}
	a.Pool, err = p.states.DecodePoolState(poolAcc.Data)
	if err != nil {
		return err
	}
	if !a.Pool.AmmConfig.Equals(a.AmmConfig) {
		return fmt.Errorf("%w: amm config %s", ErrInvalidAccount, a.AmmConfig)
	}

	switch {
	case a.Pool.Token0Mint.Equals(a.Mint) && a.Pool.Token1Mint.Equals(a.PairedMint):
		a.SourceIsToken0 = true
	case a.Pool.Token1Mint.Equals(a.Mint) && a.Pool.Token0Mint.Equals(a.PairedMint):
		a.SourceIsToken0 = false
	default:
		return fmt.Errorf("%w: pool does not pair %s with %s", ErrInvalidAccount, a.Mint, a.PairedMint)
	}

	for _, program := range []solana.PublicKey{a.Pool.Token0Program, a.Pool.Token1Program} {
		if !program.Equals(a.TokenProgram) && !program.Equals(a.Token2022Program) {
			return fmt.Errorf("%w: pool token program %s", ErrIncorrectProgramId, program)
		}
	}

	if !literal.Token0Vault.Equals(a.Pool.Token0Vault) || !literal.Token1Vault.Equals(a.Pool.Token1Vault) {
		return fmt.Errorf("%w: vaults do not match pool", ErrInvalidAccount)
	}

	if a.Token0Account, err = p.tokenAccount(ctx, literal.Token0Account, a.Pool.Token0Mint, a.Delegate); err != nil {
		return err
	}
	if a.Token1Account, err = p.tokenAccount(ctx, literal.Token1Account, a.Pool.Token1Mint, a.Delegate); err != nil {
		return err
	}
	if a.Token0Vault, err = p.tokenAccount(ctx, literal.Token0Vault, a.Pool.Token0Mint, p.poolAuthority); err != nil {
		return err
	}
	if a.Token1Vault, err = p.tokenAccount(ctx, literal.Token1Vault, a.Pool.Token1Mint, p.poolAuthority); err != nil {
		return err
	}
	if a.LpAccount, err = p.tokenAccount(ctx, literal.LpAccount, a.Pool.LpMint, a.Delegate); err != nil {
		return err
	}

	if _, _, program := a.SourceSide(); !program.Equals(a.Token2022Program) {
		return fmt.Errorf("%w: hooked mint must be a token-2022 mint", ErrIncorrectProgramId)
	}
	return nil
}

func (p *Program) checkTransferring(ctx *ledger.Context, source, mint solana.PublicKey) error {
	acc, err := ctx.Account(source)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(p.programs.Token2022) {
		return fmt.Errorf("%w: source %s owned by %s", ErrInvalidAccount, source, acc.Owner)
	}
	loaded, err := p.resolver.Load(acc)
	if err != nil {
		return err
	}
	if !loaded.Mint().Equals(mint) {
		return fmt.Errorf("%w: source %s holds %s", ErrInvalidAccount, source, loaded.Mint())
	}

	transferring, err := token.Transferring(acc.Data)
	if err != nil {
		return fmt.Errorf("%w: source %s: %v", ErrInvalidAccount, source, err)
	}
	if !transferring {
		return fmt.Errorf("%w: source %s is not transferring", ErrInvalidAccount, source)
	}
	return nil
}

func (p *Program) tokenAccount(ctx *ledger.Context, key, mint, owner solana.PublicKey) (token.Account, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return nil, err
	}
	loaded, err := p.resolver.Load(acc)
	if err != nil {
		return nil, err
	}
	if !loaded.Mint().Equals(mint) {
		return nil, fmt.Errorf("%w: %s holds %s, want %s", ErrInvalidAccount, key, loaded.Mint(), mint)
	}
	if !loaded.Owner().Equals(owner) {
		return nil, fmt.Errorf("%w: %s owned by %s, want %s", ErrInvalidAccount, key, loaded.Owner(), owner)
	}
	return loaded, nil
}

func (p *Program) balance(ctx *ledger.Context, key solana.PublicKey) (uint64, error) {
	acc, err := ctx.Account(key)
	if err != nil {
		return 0, err
	}
	loaded, err := p.resolver.Load(acc)
	if err != nil {
		return 0, err
	}
	return loaded.Balance(), nil
}

func (a *ExecuteAccounts) TransferEvent(amount uint64) types.TransferEvent {
	return types.TransferEvent{
		Amount:      amount,
		Source:      a.Source,
		Destination: a.Destination,
		Owner:       a.Owner,
		Mint:        a.Mint,
	}
}
