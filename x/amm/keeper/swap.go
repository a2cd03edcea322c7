package keeper

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Quote returns what Swap would pay for amountIn of assetIn against the
// current reserves. It never mutates state and applies no minimum.
func (k Keeper) Quote(ctx context.Context, pair types.TokenPair, assetIn string, amountIn math.Int) (math.Int, error) {
	pool, side, err := k.poolForAsset(ctx, pair, assetIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	reserveIn, reserveOut := pool.Reserves(side)
	return types.QuoteSwap(reserveIn, reserveOut, amountIn, pool.FeeBps)
}

// Swap sells amountIn of assetIn to the pool for the other asset of the pair.
// The quote is checked against minAmountOut before any state changes; the
// full amountIn, fee included, stays in the pool. A trade whose output
// rounds down to zero fails with ErrInvalidInput rather than taking amountIn
// for nothing, even when minAmountOut is zero.
func (k Keeper) Swap(ctx context.Context, trader string, pair types.TokenPair, assetIn string, amountIn, minAmountOut math.Int) (math.Int, error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	if err := k.validateCounterparty("trader", trader); err != nil {
		return math.ZeroInt(), err
	}
	if err := types.ValidateMinimum("min amount out", minAmountOut); err != nil {
		return math.ZeroInt(), err
	}

	pool, side, err := k.poolForAsset(ctx, pair, assetIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	pairLabel := pool.Pair.String()
	assetOut := pool.Pair.Asset(side.Opposite())

	reserveIn, reserveOut := pool.Reserves(side)
	amountOut, err := types.QuoteSwap(reserveIn, reserveOut, amountIn, pool.FeeBps)
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(pairLabel, assetIn, "failed").Inc()
		return math.ZeroInt(), err
	}

	// Slippage protection
	if amountOut.LT(minAmountOut) {
		k.metrics.SwapsTotal.WithLabelValues(pairLabel, assetIn, "slippage").Inc()
		expected := math.LegacyNewDecFromInt(minAmountOut)
		shortfall := expected.Sub(math.LegacyNewDecFromInt(amountOut)).Quo(expected).MulInt64(100)
		if f, err := shortfall.Float64(); err == nil {
			k.metrics.SwapSlippage.Observe(f)
		}
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, amountOut)
	}
	if amountOut.IsZero() {
		k.metrics.SwapsTotal.WithLabelValues(pairLabel, assetIn, "failed").Inc()
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("swap of %s %s rounds to zero output", amountIn, assetIn)
	}

	newReserveIn, err := reserveIn.SafeAdd(amountIn)
	if err != nil {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("reserve %s + %s: %v", reserveIn, amountIn, err)
	}
	newReserveOut, err := reserveOut.SafeSub(amountOut)
	if err != nil || !newReserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrUnderflow.Wrapf("reserve %s - %s", reserveOut, amountOut)
	}
	updated := pool
	updated.SetReserve(side, newReserveIn)
	updated.SetReserve(side.Opposite(), newReserveOut)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	if err := k.ledgerKeeper.Transfer(cacheCtx, assetIn, trader, k.moduleAccount, amountIn); err != nil {
		k.metrics.SwapsTotal.WithLabelValues(pairLabel, assetIn, "failed").Inc()
		return math.ZeroInt(), fmt.Errorf("Swap: pay in %s: %w", assetIn, err)
	}
	if err := k.ledgerKeeper.Transfer(cacheCtx, assetOut, k.moduleAccount, trader, amountOut); err != nil {
		k.metrics.SwapsTotal.WithLabelValues(pairLabel, assetIn, "failed").Inc()
		return math.ZeroInt(), fmt.Errorf("Swap: pay out %s: %w", assetOut, err)
	}

	k.mustHoldConstantProduct(ctx, pool, updated)

	if err := k.setPool(cacheCtx, updated); err != nil {
		return math.ZeroInt(), fmt.Errorf("Swap: save pool: %w", err)
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeyPair, pairLabel),
			sdk.NewAttribute(types.AttributeKeyTrader, trader),
			sdk.NewAttribute(types.AttributeKeyAssetIn, assetIn),
			sdk.NewAttribute(types.AttributeKeyAssetOut, assetOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", pool.FeeBps)),
		),
	)

	k.metrics.SwapsTotal.WithLabelValues(pairLabel, assetIn, "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(pairLabel, assetIn).Add(toFloat64(amountIn))
	k.recordPoolGauges(updated)

	return amountOut, nil
}

// mustHoldConstantProduct panics when a state transition lowers k. A
// decreasing k means the pricing code is wrong, so the transition must not
// be written; the dispatcher turns the panic into a failed call.
func (k Keeper) mustHoldConstantProduct(ctx context.Context, before, after types.Pool) {
	err := types.CheckConstantProduct(before.ReserveA, before.ReserveB, after.ReserveA, after.ReserveB)
	if err == nil {
		return
	}
	k.metrics.InvariantViolations.Inc()
	k.Logger(ctx).Error("constant product invariant violated",
		"pair", before.Pair.String(),
		"reserve_a", after.ReserveA.String(),
		"reserve_b", after.ReserveB.String(),
		"error", err,
	)
	panic(err)
}
