package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/paw-chain/pawswap/x/shared/ledger"
	"github.com/paw-chain/pawswap/x/token/types"
)

// Mint creates amount of asset and credits it to the holder.
func (k Keeper) Mint(ctx context.Context, asset, to string, amount math.Int) error {
	l, err := k.assetLedger(ctx, asset)
	if err != nil {
		return err
	}
	if err := l.Mint(to, amount); err != nil {
		return fmt.Errorf("Mint: %s to %s: %w", asset, to, err)
	}
	k.getStore(ctx).Set(types.AssetKey(asset), []byte{0x01})

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyTo, to),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	incrAssetCounter(types.EventTypeMint, asset)
	return nil
}

// Transfer moves amount of asset between holders. It fails with
// ledger.ErrInsufficientFunds when the sender balance is short.
func (k Keeper) Transfer(ctx context.Context, asset, from, to string, amount math.Int) error {
	l, err := k.assetLedger(ctx, asset)
	if err != nil {
		return err
	}
	if err := l.Transfer(from, to, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyFrom, from),
			sdk.NewAttribute(types.AttributeKeyTo, to),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	incrAssetCounter(types.EventTypeTransfer, asset)
	return nil
}

func incrAssetCounter(op, asset string) {
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, op},
		1,
		[]metrics.Label{telemetry.NewLabel("asset", asset)},
	)
}

// Balance returns the holder's balance of asset. The boolean is false when
// the holder never held the asset.
func (k Keeper) Balance(ctx context.Context, asset, holder string) (math.Int, bool) {
	l, err := k.assetLedger(ctx, asset)
	if err != nil {
		return math.ZeroInt(), false
	}
	return l.Balance(holder)
}

// Balances lists every holder entry of asset.
func (k Keeper) Balances(ctx context.Context, asset string) ([]ledger.Balance, error) {
	l, err := k.assetLedger(ctx, asset)
	if err != nil {
		return nil, err
	}
	return l.Balances(), nil
}

// TotalSupply returns the minted supply of asset.
func (k Keeper) TotalSupply(ctx context.Context, asset string) math.Int {
	l, err := k.assetLedger(ctx, asset)
	if err != nil {
		return math.ZeroInt()
	}
	return l.TotalSupply()
}

// Assets returns every asset that was ever minted, in key order.
func (k Keeper) Assets(ctx context.Context) []string {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AssetKeyPrefix)
	defer iterator.Close()

	var assets []string
	for ; iterator.Valid(); iterator.Next() {
		assets = append(assets, types.AssetFromKey(iterator.Key()))
	}
	return assets
}
