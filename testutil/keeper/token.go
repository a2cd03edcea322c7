package keeper

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/token/keeper"
	"github.com/paw-chain/pawswap/x/token/types"
)

// TokenKeeper creates a token keeper over a fresh in-memory store
func TokenKeeper(t testing.TB) (keeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := newContext(t, storeKey)
	return keeper.NewKeeper(storeKey), ctx
}
