package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Token module sentinel errors. Balance errors come from the shared ledger.
var (
	ErrInvalidAsset = errorsmod.Register(ModuleName, 2, "invalid asset")
)
