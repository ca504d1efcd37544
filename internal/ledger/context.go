package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Context is handed to a program for the duration of one invocation.
type Context struct {
	runtime   *Runtime
	receipt   *Receipt
	programId solana.PublicKey
	signers   map[solana.PublicKey]bool
	depth     int
}

func (c *Context) ProgramID() solana.PublicKey {
	return c.programId
}

func (c *Context) Depth() int {
	return c.depth
}

// Account returns the live account. Changes to it are part of the
// enclosing transaction.
func (c *Context) Account(key solana.PublicKey) (*Account, error) {
	acc, ok := c.runtime.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	return acc, nil
}

func (c *Context) IsSigner(key solana.PublicKey) bool {
	return c.signers[key]
}

func (c *Context) Rent() Rent {
	return c.runtime.rent
}

func (c *Context) Logf(format string, args ...interface{}) {
	c.receipt.log("Program log: "+format, args...)
}

func (c *Context) Invoke(ix solana.Instruction) error {
	return c.InvokeSigned(ix)
}

// InvokeSigned calls another program. Each seed set must derive, under the
// calling program id, an address that is then treated as a signer for this
// call only.
func (c *Context) InvokeSigned(ix solana.Instruction, signerSeeds ...[][]byte) error {
	allowed := make(map[solana.PublicKey]bool, len(c.signers)+len(signerSeeds))
	for key := range c.signers {
		allowed[key] = true
	}

	for _, seeds := range signerSeeds {
		address, err := solana.CreateProgramAddress(seeds, c.programId)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSeeds, err)
		}
		allowed[address] = true
	}

	return c.runtime.invoke(c.receipt, allowed, ix, c.depth+1)
}

func (c *Context) create(acc *Account) {
	c.runtime.store.Set(acc)
}
