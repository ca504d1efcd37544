// Package hook is the transfer-hook program: it takes one percent of every
// transfer of its mint and burns, swaps and redeposits it through a
// constant-product pool, signing as a program-derived delegate.
package hook

import (
	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/config"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/pda"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/token"
)

type Program struct {
	programs      config.Programs
	delegate      pda.DelegatedAuthority
	poolAuthority solana.PublicKey
	resolver      token.Resolver
	instructions  *coder.HookInstructionCoder
	states        *coder.CpSwapStateCoder
}

// NewProgram derives the delegate and the pool authority once; every
// invocation reuses them.
func NewProgram(programs config.Programs) (*Program, error) {
	delegate, err := pda.FindDelegatedAuthority(programs.Hook, programs.DelegateSeed)
	if err != nil {
		return nil, err
	}
	poolAuthority, _, err := pda.PoolAuthority(programs.CpSwap, programs.PoolAuthoritySeed)
	if err != nil {
		return nil, err
	}

	return &Program{
		programs:      programs,
		delegate:      delegate,
		poolAuthority: poolAuthority,
		resolver:      token.NewResolver(programs),
		instructions:  coder.NewHookInstructionCoder(),
		states:        coder.NewCpSwapStateCoder(),
	}, nil
}

func (p *Program) ID() solana.PublicKey {
	return p.programs.Hook
}

func (p *Program) Delegate() pda.DelegatedAuthority {
	return p.delegate
}

func (p *Program) PoolAuthority() solana.PublicKey {
	return p.poolAuthority
}
