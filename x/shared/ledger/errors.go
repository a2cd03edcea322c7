package ledger

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the error codespace shared by every ledger instance.
const Codespace = "ledger"

// Ledger sentinel errors
var (
	ErrInvalidAmount     = errorsmod.Register(Codespace, 2, "invalid amount")
	ErrInsufficientFunds = errorsmod.Register(Codespace, 3, "insufficient funds")
	ErrOverflow          = errorsmod.Register(Codespace, 4, "arithmetic overflow")
	ErrUnderflow         = errorsmod.Register(Codespace, 5, "arithmetic underflow")
	ErrInvalidHolder     = errorsmod.Register(Codespace, 6, "invalid holder")
)
