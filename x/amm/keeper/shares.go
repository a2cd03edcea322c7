package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// LP shares of a pool behave like a token of their own: holders can query
// and transfer them the same way they would any other asset.

// ShareBalance returns the LP shares of holder in pair and whether the
// holder has ever held any.
func (k Keeper) ShareBalance(ctx context.Context, pair types.TokenPair, holder string) (math.Int, bool, error) {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return math.ZeroInt(), false, err
	}
	balance, found := k.shareLedger(ctx, pool.Pair).Balance(holder)
	return balance, found, nil
}

// TotalShares returns the LP shares outstanding for pair.
func (k Keeper) TotalShares(ctx context.Context, pair types.TokenPair) (math.Int, error) {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return math.ZeroInt(), err
	}
	return pool.TotalShares, nil
}

// ShareBalances lists every LP share entry of pair, zero balances included.
func (k Keeper) ShareBalances(ctx context.Context, pair types.TokenPair) ([]ledger.Balance, error) {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return nil, err
	}
	return k.shareLedger(ctx, pool.Pair).Balances(), nil
}

// TransferShares moves LP shares of pair between holders.
func (k Keeper) TransferShares(ctx context.Context, pair types.TokenPair, from, to string, amount math.Int) error {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := k.shareLedger(cacheCtx, pool.Pair).Transfer(from, to, amount); err != nil {
		return fmt.Errorf("TransferShares: %s: %w", pool.Pair, err)
	}
	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeShareTransfer,
			sdk.NewAttribute(types.AttributeKeyPair, pool.Pair.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from),
			sdk.NewAttribute(types.AttributeKeyTo, to),
			sdk.NewAttribute(types.AttributeKeyShares, amount.String()),
		),
	)
	return nil
}
