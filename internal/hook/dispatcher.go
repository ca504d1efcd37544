package hook

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/ledger"
)

// Process is the program entrypoint. Nothing is read or written before the
// payload decodes into a known command.
func (p *Program) Process(ctx *ledger.Context, accounts []*solana.AccountMeta, data []byte) error {
	if !ctx.ProgramID().Equals(p.programs.Hook) {
		return fmt.Errorf("%w: %s", ErrIncorrectProgramId, ctx.ProgramID())
	}

	decoded, err := p.instructions.Decode(data)
	if err != nil {
		return err
	}

	switch instruction := decoded.(type) {
	case coder.Execute:
		return p.execute(ctx, accounts, instruction.Amount)
	case coder.InitializeExtraAccountMetaList:
		return p.initializeExtraAccountMetaList(ctx, accounts)
	case coder.InitializeDelegate:
		return p.initializeDelegate(ctx, accounts)
	default:
		return ErrInvalidInstructionData
	}
}
