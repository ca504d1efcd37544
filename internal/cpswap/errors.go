package cpswap

import "errors"

var (
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")
	ErrInvalidAuthority     = errors.New("invalid pool authority")
	ErrInvalidPool          = errors.New("account does not belong to pool")
	ErrInvalidVault         = errors.New("invalid vault")
	ErrInvalidOwner         = errors.New("token account owner mismatch")
	ErrInvalidTokenProgram  = errors.New("invalid token program")
	ErrExceededSlippage     = errors.New("exceeds desired slippage limit")
	ErrZeroLiquidity        = errors.New("pool has no liquidity")
)
