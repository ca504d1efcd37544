package token

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/instructions"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/meta"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
)

// executeTransferHook reads the mint's published extra account metas,
// resolves them and calls the hook's Execute.
func (p *Program) executeTransferHook(
	ctx *ledger.Context,
	hook *TransferHook,
	amount uint64,
	source, mint, destination, owner solana.PublicKey) error {

	listKey, _, err := pda.ExtraAccountMetaList(hook.ProgramID, p.programs.ExtraAccountMetaSeed, mint)
	if err != nil {
		return err
	}

	listAcc, err := ctx.Account(listKey)
	if err != nil {
		return fmt.Errorf("transfer hook accounts: %w", err)
	}

	list, err := meta.Decode(listAcc.Data)
	if err != nil {
		return fmt.Errorf("transfer hook accounts: %w", err)
	}

	extras, err := list.Resolve(hook.ProgramID)
	if err != nil {
		return fmt.Errorf("transfer hook accounts: %w", err)
	}

	ix := instructions.NewExecuteInstruction(hook.ProgramID, amount, instructions.ExecuteAccounts{
		Source:               source,
		Mint:                 mint,
		Destination:          destination,
		Owner:                owner,
		ExtraAccountMetaList: listKey,
	}, extras)

	return ctx.Invoke(ix)
}
