package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// AMM module sentinel errors
var (
	ErrInvalidInput       = errorsmod.Register(ModuleName, 2, "invalid input")
	ErrAlreadyInitialized = errorsmod.Register(ModuleName, 3, "pool already initialized")
	ErrUnknownAsset       = errorsmod.Register(ModuleName, 4, "asset is not part of the pair")
	ErrSlippageExceeded   = errorsmod.Register(ModuleName, 5, "slippage exceeded")
	ErrOverflow           = errorsmod.Register(ModuleName, 6, "arithmetic overflow")
	ErrUnderflow          = errorsmod.Register(ModuleName, 7, "arithmetic underflow")
	ErrPoolNotFound       = errorsmod.Register(ModuleName, 8, "pool not found")
	ErrEmptyPool          = errorsmod.Register(ModuleName, 9, "pool has no liquidity")
	ErrInsufficientShares = errorsmod.Register(ModuleName, 10, "insufficient liquidity shares")
	ErrInvariantViolation = errorsmod.Register(ModuleName, 11, "pool invariant violated")
	ErrInvalidParams      = errorsmod.Register(ModuleName, 12, "invalid params")
)

// ErrInsufficientFunds is raised by the ledgers that hold assets and LP
// shares. It is shared so callers check a single error kind.
var ErrInsufficientFunds = ledger.ErrInsufficientFunds
