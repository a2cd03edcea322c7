package keeper

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// AmmKeeper creates an amm keeper wired to a real token keeper, both over
// the same in-memory multistore, and initialises default genesis.
func AmmKeeper(t testing.TB) (*keeper.Keeper, tokenkeeper.Keeper, sdk.Context) {
	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)
	ctx := newContext(t, ammKey, tokenKey)

	tk := tokenkeeper.NewKeeper(tokenKey)
	k := keeper.NewKeeper(ammKey, tk, types.DefaultModuleAccount)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, tk, ctx
}

// Fund mints amount of each asset to holder.
func Fund(t testing.TB, tk tokenkeeper.Keeper, ctx sdk.Context, holder string, amount math.Int, assets ...string) {
	for _, asset := range assets {
		require.NoError(t, tk.Mint(ctx, asset, holder, amount))
	}
}

// CreateTestPool funds creator and creates the pool tokenA/tokenB.
func CreateTestPool(t testing.TB, k *keeper.Keeper, tk tokenkeeper.Keeper, ctx sdk.Context, creator, tokenA, tokenB string, amountA, amountB math.Int) math.Int {
	require.NoError(t, tk.Mint(ctx, tokenA, creator, amountA))
	require.NoError(t, tk.Mint(ctx, tokenB, creator, amountB))

	shares, err := k.Create(ctx, creator, types.NewTokenPair(tokenA, tokenB), amountA, amountB, math.ZeroInt())
	require.NoError(t, err)
	return shares
}
