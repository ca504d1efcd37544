package token

import "errors"

var (
	ErrInvalidAccountData      = errors.New("invalid token account data")
	ErrInvalidAccountOwner     = errors.New("account not owned by a token program")
	ErrUninitializedState      = errors.New("state is uninitialized")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInsufficientDelegation  = errors.New("insufficient delegated amount")
	ErrOwnerMismatch           = errors.New("owner does not match")
	ErrMintMismatch            = errors.New("account not associated with this mint")
	ErrMintDecimalsMismatch    = errors.New("mint decimals mismatch")
	ErrAccountFrozen           = errors.New("account is frozen")
	ErrOverflow                = errors.New("operation overflowed")
	ErrInvalidInstruction      = errors.New("invalid token instruction")
	ErrUnsupportedInstruction  = errors.New("unsupported token instruction")
	ErrMintRequiredForTransfer = errors.New("mint required for this transfer")
	ErrNotEnoughAccountKeys    = errors.New("not enough account keys")
)
