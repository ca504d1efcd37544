package hook

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
)

// Account order of initialize_extra_account_meta_list.
const (
	publishPayer = iota
	publishExtraAccountMetaList
	publishMint
	publishSystemProgram
	publishPairedMint
	publishToken2022Program
	publishAmmConfig
	publishPoolState
	publishLpAccount
	publishToken0Account
	publishToken1Account
	publishToken0Vault
	publishToken1Vault
	publishTokenProgram
	publishPoolAuthority

	publishAccountCount
)

func (p *Program) initializeExtraAccountMetaList(ctx *ledger.Context, accounts []*solana.AccountMeta) error {
	if len(accounts) < publishAccountCount {
		return fmt.Errorf("%w: got %d, need %d", ErrNotEnoughAccountKeys, len(accounts), publishAccountCount)
	}
	key := func(i int) solana.PublicKey { return accounts[i].PublicKey }

	payer := key(publishPayer)
	if !ctx.IsSigner(payer) {
		return fmt.Errorf("%w: %s", ErrMissingSignature, payer)
	}
	if !key(publishSystemProgram).Equals(p.programs.System) {
		return fmt.Errorf("%w: %s", ErrIncorrectProgramId, key(publishSystemProgram))
	}

	mint := key(publishMint)
	listKey, bump, err := pda.ExtraAccountMetaList(p.programs.Hook, p.programs.ExtraAccountMetaSeed, mint)
	if err != nil {
		return err
	}
	if !key(publishExtraAccountMetaList).Equals(listKey) {
		return fmt.Errorf("%w: extra account meta list %s", ErrInvalidSeeds, key(publishExtraAccountMetaList))
	}
	if initialized(ctx, listKey) {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, listKey)
	}

	literal := ExtraAccounts{
		SourceMint:       mint,
		PairedMint:       key(publishPairedMint),
		Token2022Program: key(publishToken2022Program),
		AmmConfig:        key(publishAmmConfig),
		PoolState:        key(publishPoolState),
		LpAccount:        key(publishLpAccount),
		Token0Account:    key(publishToken0Account),
		Token1Account:    key(publishToken1Account),
		Token0Vault:      key(publishToken0Vault),
		Token1Vault:      key(publishToken1Vault),
		TokenProgram:     key(publishTokenProgram),
		PoolAuthority:    key(publishPoolAuthority),
	}

	// The list cannot be rewritten, so it has to pass the same checks
	// every Execute will run against it.
	check := &ExecuteAccounts{Mint: mint, Delegate: p.delegate.Address}
	if err := p.loadPoolAccounts(ctx, check, literal); err != nil {
		return err
	}

	list, err := BuildExtraAccountMetas(p.programs.DelegateSeed, literal)
	if err != nil {
		return err
	}
	data, err := list.Encode()
	if err != nil {
		return err
	}

	size := meta.SizeOf(len(list))
	create := system.NewCreateAccountInstruction(
		ctx.Rent().MinimumBalance(size),
		uint64(size),
		p.programs.Hook,
		payer,
		listKey,
	).Build()

	seeds := [][]byte{[]byte(p.programs.ExtraAccountMetaSeed), mint[:], {bump}}
	if err := ctx.InvokeSigned(create, seeds); err != nil {
		return fmt.Errorf("create extra account meta list: %w", err)
	}

	listAcc, err := ctx.Account(listKey)
	if err != nil {
		return err
	}
	copy(listAcc.Data, data)

	ctx.Logf("extra account metas: mint=%s count=%d", mint, len(list))
	return nil
}

// initializeDelegate funds the delegate address as an empty system
// account so it can pay for the pool's sub-calls.
func (p *Program) initializeDelegate(ctx *ledger.Context, accounts []*solana.AccountMeta) error {
	if len(accounts) < 3 {
		return fmt.Errorf("%w: got %d, need 3", ErrNotEnoughAccountKeys, len(accounts))
	}

	payer, delegate := accounts[0].PublicKey, accounts[1].PublicKey
	if !ctx.IsSigner(payer) {
		return fmt.Errorf("%w: %s", ErrMissingSignature, payer)
	}
	if !delegate.Equals(p.delegate.Address) {
		return fmt.Errorf("%w: delegate %s", ErrInvalidSeeds, delegate)
	}
	if initialized(ctx, delegate) {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, delegate)
	}

	create := system.NewCreateAccountInstruction(
		ctx.Rent().MinimumBalance(0),
		0,
		p.programs.System,
		payer,
		delegate,
	).Build()

	if err := ctx.InvokeSigned(create, p.delegate.SignerSeeds()); err != nil {
		return fmt.Errorf("create delegate: %w", err)
	}

	ctx.Logf("delegate: %s", delegate)
	return nil
}

func initialized(ctx *ledger.Context, key solana.PublicKey) bool {
	acc, err := ctx.Account(key)
	if err != nil {
		return false
	}
	return acc.Lamports > 0 || len(acc.Data) > 0
}
