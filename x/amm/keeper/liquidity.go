package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// AddLiquidity deposits into an existing pool and mints LP shares to the
// provider. On an initialised pool the provider pays only the proportional
// amounts for the shares minted, which may be less than offered. On an empty
// pool the deposit re-bootstraps the pool at the offered ratio.
//
// Amounts in and out follow the caller's pair order.
func (k Keeper) AddLiquidity(ctx context.Context, provider string, pair types.TokenPair, amountA, amountB, minSharesOut math.Int) (types.DepositResult, error) {
	if err := k.validateCounterparty("provider", provider); err != nil {
		return types.DepositResult{}, err
	}
	if err := pair.Validate(); err != nil {
		return types.DepositResult{}, err
	}
	if err := types.ValidatePositive("amount a", amountA); err != nil {
		return types.DepositResult{}, err
	}
	if err := types.ValidatePositive("amount b", amountB); err != nil {
		return types.DepositResult{}, err
	}
	if err := types.ValidateMinimum("min shares out", minSharesOut); err != nil {
		return types.DepositResult{}, err
	}

	callerPair := pair
	amountA, amountB = pair.Orient(amountA, amountB)

	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.DepositResult{}, err
	}

	shares, err := types.LiquidityShares(amountA, amountB, pool.ReserveA, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return types.DepositResult{}, err
	}
	if shares.IsZero() {
		return types.DepositResult{}, types.ErrInvalidInput.Wrap("deposit too small to mint any shares")
	}
	if shares.LT(minSharesOut) {
		return types.DepositResult{}, types.ErrSlippageExceeded.Wrapf("expected at least %s shares, got %s", minSharesOut, shares)
	}

	usedA, usedB := amountA, amountB
	if !pool.IsEmpty() {
		usedA, usedB, err = types.DepositAmounts(shares, pool.ReserveA, pool.ReserveB, pool.TotalShares)
		if err != nil {
			return types.DepositResult{}, err
		}
	}

	updated := pool
	if updated.ReserveA, err = pool.ReserveA.SafeAdd(usedA); err != nil {
		return types.DepositResult{}, types.ErrOverflow.Wrapf("reserve %s: %v", pool.Pair.A, err)
	}
	if updated.ReserveB, err = pool.ReserveB.SafeAdd(usedB); err != nil {
		return types.DepositResult{}, types.ErrOverflow.Wrapf("reserve %s: %v", pool.Pair.B, err)
	}
	if updated.TotalShares, err = pool.TotalShares.SafeAdd(shares); err != nil {
		return types.DepositResult{}, types.ErrOverflow.Wrapf("total shares: %v", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	if err := k.pullFunds(cacheCtx, provider, pool.Pair, usedA, usedB); err != nil {
		return types.DepositResult{}, fmt.Errorf("AddLiquidity: %w", err)
	}
	if err := k.setPool(cacheCtx, updated); err != nil {
		return types.DepositResult{}, fmt.Errorf("AddLiquidity: save pool: %w", err)
	}
	if err := k.shareLedger(cacheCtx, pool.Pair).Mint(provider, shares); err != nil {
		return types.DepositResult{}, fmt.Errorf("AddLiquidity: mint shares: %w", err)
	}

	k.mustHoldConstantProduct(ctx, pool, updated)

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeyPair, pool.Pair.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider),
			sdk.NewAttribute(types.AttributeKeyAmountA, usedA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, usedB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	k.metrics.LiquidityAdded.WithLabelValues(pool.Pair.String(), pool.Pair.A).Add(toFloat64(usedA))
	k.metrics.LiquidityAdded.WithLabelValues(pool.Pair.String(), pool.Pair.B).Add(toFloat64(usedB))
	k.recordPoolGauges(updated)

	if pool.IsEmpty() {
		k.Logger(ctx).Info("pool re-initialised", "pair", pool.Pair.String(), "shares", shares.String())
	}

	outA, outB := callerPair.Orient(usedA, usedB)
	return types.DepositResult{Shares: shares, AmountA: outA, AmountB: outB}, nil
}

// RemoveLiquidity burns shares held by the provider and pays out the
// proportional reserves, rounded down. Burning every outstanding share
// leaves the pool empty but registered.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider string, pair types.TokenPair, shares, minAmountA, minAmountB math.Int) (types.WithdrawResult, error) {
	if err := k.validateCounterparty("provider", provider); err != nil {
		return types.WithdrawResult{}, err
	}
	if err := pair.Validate(); err != nil {
		return types.WithdrawResult{}, err
	}
	if err := types.ValidatePositive("shares", shares); err != nil {
		return types.WithdrawResult{}, err
	}
	if err := types.ValidateMinimum("min amount a", minAmountA); err != nil {
		return types.WithdrawResult{}, err
	}
	if err := types.ValidateMinimum("min amount b", minAmountB); err != nil {
		return types.WithdrawResult{}, err
	}

	callerPair := pair
	minAmountA, minAmountB = pair.Orient(minAmountA, minAmountB)

	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.WithdrawResult{}, err
	}

	held, _ := k.shareLedger(ctx, pool.Pair).Balance(provider)
	if held.LT(shares) {
		return types.WithdrawResult{}, types.ErrInsufficientFunds.Wrapf("%s holds %s shares of %s, needs %s", provider, held, pool.Pair, shares)
	}

	amountA, amountB, err := types.WithdrawAmounts(shares, pool.ReserveA, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	if amountA.IsZero() && amountB.IsZero() {
		return types.WithdrawResult{}, types.ErrInvalidInput.Wrapf("burning %s shares pays nothing", shares)
	}
	if amountA.LT(minAmountA) || amountB.LT(minAmountB) {
		return types.WithdrawResult{}, types.ErrSlippageExceeded.Wrapf(
			"expected at least %s/%s, got %s/%s", minAmountA, minAmountB, amountA, amountB)
	}

	updated := pool
	if updated.ReserveA, err = pool.ReserveA.SafeSub(amountA); err != nil {
		return types.WithdrawResult{}, types.ErrUnderflow.Wrapf("reserve %s: %v", pool.Pair.A, err)
	}
	if updated.ReserveB, err = pool.ReserveB.SafeSub(amountB); err != nil {
		return types.WithdrawResult{}, types.ErrUnderflow.Wrapf("reserve %s: %v", pool.Pair.B, err)
	}
	updated.TotalShares = pool.TotalShares.Sub(shares)
	if err := updated.Validate(); err != nil {
		return types.WithdrawResult{}, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	if err := k.shareLedger(cacheCtx, pool.Pair).Burn(provider, shares); err != nil {
		return types.WithdrawResult{}, fmt.Errorf("RemoveLiquidity: burn shares: %w", err)
	}
	if err := k.pushFunds(cacheCtx, provider, pool.Pair, amountA, amountB); err != nil {
		return types.WithdrawResult{}, fmt.Errorf("RemoveLiquidity: %w", err)
	}
	if err := k.setPool(cacheCtx, updated); err != nil {
		return types.WithdrawResult{}, fmt.Errorf("RemoveLiquidity: save pool: %w", err)
	}

	writeFn()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveLiquidity,
			sdk.NewAttribute(types.AttributeKeyPair, pool.Pair.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	k.metrics.LiquidityRemoved.WithLabelValues(pool.Pair.String(), pool.Pair.A).Add(toFloat64(amountA))
	k.metrics.LiquidityRemoved.WithLabelValues(pool.Pair.String(), pool.Pair.B).Add(toFloat64(amountB))
	k.recordPoolGauges(updated)

	outA, outB := callerPair.Orient(amountA, amountB)
	return types.WithdrawResult{AmountA: outA, AmountB: outB}, nil
}

// pullFunds moves canonical-order amounts from holder into module custody.
func (k Keeper) pullFunds(ctx context.Context, holder string, pair types.TokenPair, amountA, amountB math.Int) error {
	for _, leg := range []struct {
		asset  string
		amount math.Int
	}{{pair.A, amountA}, {pair.B, amountB}} {
		if leg.amount.IsZero() {
			continue
		}
		if err := k.ledgerKeeper.Transfer(ctx, leg.asset, holder, k.moduleAccount, leg.amount); err != nil {
			return fmt.Errorf("deposit %s: %w", leg.asset, err)
		}
	}
	return nil
}

// pushFunds moves canonical-order amounts from module custody to holder.
func (k Keeper) pushFunds(ctx context.Context, holder string, pair types.TokenPair, amountA, amountB math.Int) error {
	for _, leg := range []struct {
		asset  string
		amount math.Int
	}{{pair.A, amountA}, {pair.B, amountB}} {
		if leg.amount.IsZero() {
			continue
		}
		if err := k.ledgerKeeper.Transfer(ctx, leg.asset, k.moduleAccount, holder, leg.amount); err != nil {
			return fmt.Errorf("withdraw %s: %w", leg.asset, err)
		}
	}
	return nil
}
