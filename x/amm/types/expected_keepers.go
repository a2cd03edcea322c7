package types

import (
	"context"

	"cosmossdk.io/math"
)

// LedgerKeeper defines the fungible-token ledger the AMM moves assets
// through. Balance reports false for holders that never held the asset.
type LedgerKeeper interface {
	Balance(ctx context.Context, asset, holder string) (math.Int, bool)
	Transfer(ctx context.Context, asset, from, to string, amount math.Int) error
}
