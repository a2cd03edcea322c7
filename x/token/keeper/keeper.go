package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/shared/ledger"
	"github.com/paw-chain/pawswap/x/token/types"
)

// Keeper of the token store. It is the reference fungible-token ledger the
// AMM module moves assets through.
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new token Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{storeKey: key}
}

// getStore returns the KVStore for the token module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// assetLedger returns the ledger holding balances of asset.
func (k Keeper) assetLedger(ctx context.Context, asset string) (ledger.Ledger, error) {
	if err := types.ValidateAsset(asset); err != nil {
		return ledger.Ledger{}, err
	}
	return ledger.New(prefix.NewStore(k.getStore(ctx), types.LedgerPrefix(asset))), nil
}
