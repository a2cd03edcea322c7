package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// Keeper of the amm store
type Keeper struct {
	storeKey      storetypes.StoreKey
	ledgerKeeper  types.LedgerKeeper
	moduleAccount string
	metrics       *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance. moduleAccount is the ledger
// holder that keeps custody of every pool's reserves.
func NewKeeper(key storetypes.StoreKey, ledgerKeeper types.LedgerKeeper, moduleAccount string) *Keeper {
	if moduleAccount == "" {
		moduleAccount = types.DefaultModuleAccount
	}
	return &Keeper{
		storeKey:      key,
		ledgerKeeper:  ledgerKeeper,
		moduleAccount: moduleAccount,
		metrics:       NewAMMMetrics(),
	}
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// ModuleAccount returns the holder that keeps pool custody.
func (k Keeper) ModuleAccount() string {
	return k.moduleAccount
}

// shareLedger returns the LP-share ledger of a canonical pair.
func (k Keeper) shareLedger(ctx context.Context, pair types.TokenPair) ledger.Ledger {
	return ledger.New(prefix.NewStore(k.getStore(ctx), types.SharesStorePrefix(pair)))
}

// validateCounterparty rejects the custody holder as the other side of a
// pool operation. Transfers between the custody holder and itself are
// no-ops, so the reserves would move without funds backing them.
func (k Keeper) validateCounterparty(role, holder string) error {
	if holder == k.moduleAccount {
		return types.ErrInvalidInput.Wrapf("%s cannot be the pool custody account %s", role, k.moduleAccount)
	}
	return nil
}
