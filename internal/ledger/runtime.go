// Package ledger is a deterministic in-process host for on-chain programs:
// an account store, a program registry, nested invocation with
// seed-derived signers and all-or-nothing transactions.
package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/logger"
)

const MaxInvokeDepth = 4

type Program interface {
	Process(ctx *Context, accounts []*solana.AccountMeta, data []byte) error
}

type ProgramFunc func(ctx *Context, accounts []*solana.AccountMeta, data []byte) error

func (f ProgramFunc) Process(ctx *Context, accounts []*solana.AccountMeta, data []byte) error {
	return f(ctx, accounts, data)
}

type Transaction struct {
	Instructions []solana.Instruction
	Signers      []solana.PublicKey
}

type Invocation struct {
	ProgramID solana.PublicKey
	Depth     int
}

type Receipt struct {
	Signature   string
	Slot        uint64
	Logs        []string
	Invocations []Invocation
	Err         error
}

func (r *Receipt) log(format string, args ...interface{}) {
	r.Logs = append(r.Logs, fmt.Sprintf(format, args...))
}

// InvocationsOf counts how many times programId ran, at any depth.
func (r *Receipt) InvocationsOf(programId solana.PublicKey) int {
	n := 0
	for _, inv := range r.Invocations {
		if inv.ProgramID.Equals(programId) {
			n++
		}
	}
	return n
}

type Runtime struct {
	mu       sync.Mutex
	store    *Store
	programs map[solana.PublicKey]Program
	rent     Rent
	slot     uint64
	logger   zerolog.Logger
}

type Option func(*Runtime)

func WithRent(rent Rent) Option {
	return func(r *Runtime) { r.rent = rent }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		store:    NewStore(),
		programs: make(map[solana.PublicKey]Program),
		rent:     DefaultRent(),
		logger:   logger.GetForComponent("ledger"),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Register(solana.SystemProgramID, &SystemProgram{})
	return r
}

func (r *Runtime) Register(programId solana.PublicKey, program Program) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.programs[programId] = program
	r.store.Set(&Account{
		Key:        programId,
		Lamports:   1,
		Owner:      solana.BPFLoaderUpgradeableProgramID,
		Executable: true,
	})
}

func (r *Runtime) SetAccount(acc Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Set(acc.Clone())
}

func (r *Runtime) Account(key solana.PublicKey) (Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.store.Get(key)
	if !ok {
		return Account{}, false
	}
	return *acc.Clone(), true
}

func (r *Runtime) Rent() Rent {
	return r.rent
}

func (r *Runtime) Slot() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slot
}

// Process runs every instruction of tx in order. If any of them fails the
// store is restored to what it was before the transaction and the receipt
// carries the error.
func (r *Runtime) Process(tx *Transaction) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slot++
	receipt := &Receipt{
		Slot:      r.slot,
		Signature: signature(r.slot, tx),
	}

	if len(tx.Instructions) == 0 {
		receipt.Err = ErrEmptyTransaction
		return receipt, receipt.Err
	}

	signers := make(map[solana.PublicKey]bool, len(tx.Signers))
	for _, key := range tx.Signers {
		signers[key] = true
	}

	snap := r.store.snapshot()
	for i, ix := range tx.Instructions {
		if err := r.invoke(receipt, signers, ix, 1); err != nil {
			r.store.restore(snap)
			receipt.Err = fmt.Errorf("instruction %d: %w", i, err)
			r.logger.Debug().
				Str("signature", receipt.Signature).
				Err(receipt.Err).
				Msg("transaction rolled back")
			return receipt, receipt.Err
		}
	}

	r.logger.Debug().
		Str("signature", receipt.Signature).
		Uint64("slot", receipt.Slot).
		Int("invocations", len(receipt.Invocations)).
		Msg("transaction processed")

	return receipt, nil
}

func (r *Runtime) invoke(receipt *Receipt, allowed map[solana.PublicKey]bool, ix solana.Instruction, depth int) error {
	programId := ix.ProgramID()
	if depth > MaxInvokeDepth {
		return fmt.Errorf("%w: %d", ErrCallDepth, depth)
	}

	program, ok := r.programs[programId]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, programId)
	}

	accounts := ix.Accounts()
	signers := make(map[solana.PublicKey]bool)
	for _, m := range accounts {
		if !m.IsSigner {
			continue
		}
		if !allowed[m.PublicKey] {
			return fmt.Errorf("%w: %s", ErrMissingRequiredSignature, m.PublicKey)
		}
		signers[m.PublicKey] = true
	}

	data, err := ix.Data()
	if err != nil {
		return err
	}

	receipt.Invocations = append(receipt.Invocations, Invocation{ProgramID: programId, Depth: depth})
	receipt.log("Program %s invoke [%d]", programId, depth)

	ctx := &Context{
		runtime:   r,
		receipt:   receipt,
		programId: programId,
		signers:   signers,
		depth:     depth,
	}
	if err := program.Process(ctx, accounts, data); err != nil {
		receipt.log("Program %s failed: %v", programId, err)
		return err
	}

	receipt.log("Program %s success", programId)
	return nil
}

func signature(slot uint64, tx *Transaction) string {
	h := sha256.New()
	h.Write(binary.LittleEndian.AppendUint64(nil, slot))
	for _, key := range tx.Signers {
		h.Write(key[:])
	}
	for _, ix := range tx.Instructions {
		programId := ix.ProgramID()
		h.Write(programId[:])
		if data, err := ix.Data(); err == nil {
			h.Write(data)
		}
	}
	first := h.Sum(nil)
	second := sha256.Sum256(first)

	var sig solana.Signature
	copy(sig[:32], first)
	copy(sig[32:], second[:])
	return base58.Encode(sig[:])
}
