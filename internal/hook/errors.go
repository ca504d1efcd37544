package hook

import (
	"errors"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/coder"
)

var (
	ErrInvalidInstructionData = coder.ErrInvalidInstructionData
	ErrAlreadyInitialized     = errors.New("account already initialized")
	ErrNotEnoughAccountKeys   = errors.New("not enough account keys")
	ErrInvalidAccount         = errors.New("invalid account")
	ErrInvalidSeeds           = errors.New("account does not match its seeds")
	ErrIncorrectProgramId     = errors.New("incorrect program id")
	ErrMissingSignature       = errors.New("missing required signature")
)
