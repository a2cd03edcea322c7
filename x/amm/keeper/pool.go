package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// HasPool reports whether pair (in either order) has been created.
func (k Keeper) HasPool(ctx context.Context, pair types.TokenPair) bool {
	return k.getStore(ctx).Has(types.PoolKey(pair.Canonical()))
}

// GetPool retrieves the pool of pair, which may be given in either order.
// Returns ErrPoolNotFound if the pair was never created.
func (k Keeper) GetPool(ctx context.Context, pair types.TokenPair) (types.Pool, error) {
	if err := pair.Validate(); err != nil {
		return types.Pool{}, err
	}
	pair = pair.Canonical()

	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(pair))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("no pool for pair %s", pair)
	}
	fee, err := types.UnmarshalFee(bz)
	if err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: decode pool %s: %w", pair, err)
	}

	reserveA, err := getReserve(store, pair, pair.A)
	if err != nil {
		return types.Pool{}, err
	}
	reserveB, err := getReserve(store, pair, pair.B)
	if err != nil {
		return types.Pool{}, err
	}

	return types.Pool{
		Pair:        pair,
		ReserveA:    reserveA,
		ReserveB:    reserveB,
		TotalShares: k.shareLedger(ctx, pair).TotalSupply(),
		FeeBps:      fee,
	}, nil
}

// setPool saves the pool record and both reserves. Shares live in the
// pool's share ledger and are not touched here.
func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	store := k.getStore(ctx)
	store.Set(types.PoolKey(pool.Pair), types.MarshalFee(pool.FeeBps))
	if err := setReserve(store, pool.Pair, pool.Pair.A, pool.ReserveA); err != nil {
		return fmt.Errorf("setPool: %w", err)
	}
	if err := setReserve(store, pool.Pair, pool.Pair.B, pool.ReserveB); err != nil {
		return fmt.Errorf("setPool: %w", err)
	}
	return nil
}

func getReserve(store storetypes.KVStore, pair types.TokenPair, asset string) (math.Int, error) {
	bz := store.Get(types.ReserveKey(pair, asset))
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var reserve math.Int
	if err := reserve.Unmarshal(bz); err != nil {
		return math.ZeroInt(), fmt.Errorf("getReserve: %s in %s: %w", asset, pair, err)
	}
	return reserve, nil
}

func setReserve(store storetypes.KVStore, pair types.TokenPair, asset string, reserve math.Int) error {
	bz, err := reserve.Marshal()
	if err != nil {
		return err
	}
	store.Set(types.ReserveKey(pair, asset), bz)
	return nil
}

// IteratePools iterates over all pools in canonical pair order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	store := k.getStore(ctx)

	// Collect pairs first so the callback may read the store freely.
	var pairs []types.TokenPair
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	for ; iterator.Valid(); iterator.Next() {
		pair, err := types.PairFromPoolKey(iterator.Key())
		if err != nil {
			iterator.Close()
			return fmt.Errorf("IteratePools: %w", err)
		}
		pairs = append(pairs, pair)
	}
	iterator.Close()

	for _, pair := range pairs {
		pool, err := k.GetPool(ctx, pair)
		if err != nil {
			return fmt.Errorf("IteratePools: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// Create initialises the pool for pair with the caller's first deposit and
// returns the LP shares minted to the creator, floor(sqrt(amountA*amountB)).
// Amounts follow the order in which the caller names the pair. Each pair can
// be created once; a second call fails with ErrAlreadyInitialized.
func (k Keeper) Create(ctx context.Context, creator string, pair types.TokenPair, amountA, amountB, minSharesOut math.Int) (math.Int, error) {
	// 1. Input validation
	if err := k.validateCounterparty("creator", creator); err != nil {
		return math.ZeroInt(), err
	}
	if err := pair.Validate(); err != nil {
		return math.ZeroInt(), err
	}
	if err := types.ValidatePositive("amount a", amountA); err != nil {
		return math.ZeroInt(), err
	}
	if err := types.ValidatePositive("amount b", amountB); err != nil {
		return math.ZeroInt(), err
	}
	if err := types.ValidateMinimum("min shares out", minSharesOut); err != nil {
		return math.ZeroInt(), err
	}

	// 2. Canonical ordering
	amountA, amountB = pair.Orient(amountA, amountB)
	pair = pair.Canonical()

	if k.HasPool(ctx, pair) {
		return math.ZeroInt(), types.ErrAlreadyInitialized.Wrapf("pool %s already exists", pair)
	}

	// 3. Price the deposit before touching state
	shares, err := types.InitialLiquidity(amountA, amountB)
	if err != nil {
		return math.ZeroInt(), err
	}
	if shares.LT(minSharesOut) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf("expected at least %s shares, got %s", minSharesOut, shares)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}

	pool := types.Pool{
		Pair:        pair,
		ReserveA:    amountA,
		ReserveB:    amountB,
		TotalShares: shares,
		FeeBps:      params.FeeBps,
	}
	if err := pool.Validate(); err != nil {
		return math.ZeroInt(), fmt.Errorf("Create: validate pool state: %w", err)
	}

	// 4. Transfers and writes happen in a cache context that is only
	// written once every step succeeded.
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, writeFn := sdkCtx.CacheContext()

	if err := k.pullFunds(cacheCtx, creator, pair, amountA, amountB); err != nil {
		return math.ZeroInt(), fmt.Errorf("Create: %w", err)
	}
	if err := k.setPool(cacheCtx, pool); err != nil {
		return math.ZeroInt(), fmt.Errorf("Create: save pool: %w", err)
	}
	if err := k.shareLedger(cacheCtx, pair).Mint(creator, shares); err != nil {
		return math.ZeroInt(), fmt.Errorf("Create: mint shares: %w", err)
	}

	writeFn()

	// 5. Events and metrics
	attrs := []sdk.Attribute{
		sdk.NewAttribute(types.AttributeKeyPair, pair.String()),
		sdk.NewAttribute(types.AttributeKeyCreator, creator),
		sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
		sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		sdk.NewAttribute(types.AttributeKeyFeeBps, fmt.Sprintf("%d", pool.FeeBps)),
	}
	if price, err := types.SpotPrice(amountA, amountB); err == nil {
		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyPrice, price.String()))
	}
	sdkCtx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePoolCreated, attrs...))

	k.metrics.PoolsCreated.Inc()
	k.recordPoolGauges(pool)

	k.Logger(ctx).Info("pool created", "pair", pair.String(), "shares", shares.String(), "fee_bps", pool.FeeBps)

	return shares, nil
}

// TokenBalance returns the pool reserve of asset.
func (k Keeper) TokenBalance(ctx context.Context, pair types.TokenPair, asset string) (math.Int, error) {
	pool, side, err := k.poolForAsset(ctx, pair, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	return pool.Reserve(side), nil
}

// poolForAsset loads the pool of pair and locates asset within it.
func (k Keeper) poolForAsset(ctx context.Context, pair types.TokenPair, asset string) (types.Pool, types.Side, error) {
	pool, err := k.GetPool(ctx, pair)
	if err != nil {
		return types.Pool{}, types.SideA, err
	}
	side, err := pool.Pair.SideOf(asset)
	if err != nil {
		return types.Pool{}, types.SideA, err
	}
	return pool, side, nil
}

func (k Keeper) recordPoolGauges(pool types.Pool) {
	pair := pool.Pair.String()
	k.metrics.PoolReserves.WithLabelValues(pair, pool.Pair.A).Set(toFloat64(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(pair, pool.Pair.B).Set(toFloat64(pool.ReserveB))
	k.metrics.LPShareSupply.WithLabelValues(pair).Set(toFloat64(pool.TotalShares))
}
