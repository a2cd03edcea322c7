package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// SetPoolForTest overwrites a pool record and its reserves without moving
// any tokens, so tests can seed broken state.
func SetPoolForTest(k *Keeper, ctx sdk.Context, pool types.Pool) error {
	return k.setPool(ctx, pool)
}

// MustHoldConstantProductForTest exposes the post-swap k check.
func MustHoldConstantProductForTest(k *Keeper, ctx sdk.Context, before, after types.Pool) {
	k.mustHoldConstantProduct(ctx, before, after)
}
