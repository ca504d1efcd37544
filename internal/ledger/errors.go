package ledger

import "errors"

var (
	ErrAccountNotFound          = errors.New("account not found")
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrProgramNotFound          = errors.New("program not found")
	ErrCallDepth                = errors.New("invocation depth too deep")
	ErrInvalidSeeds             = errors.New("invalid seeds for program address")
	ErrUnsupportedInstruction   = errors.New("unsupported instruction")
	ErrEmptyTransaction         = errors.New("transaction has no instructions")
	ErrNotEnoughAccountKeys     = errors.New("not enough account keys")
)
