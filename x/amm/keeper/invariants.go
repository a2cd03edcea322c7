package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// RegisterInvariants registers all amm invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-custody", ModuleCustodyInvariant(k))
}

// AllInvariants runs all invariants of the amm module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PositiveReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ModuleCustodyInvariant(k)(ctx)
	}
}

// PositiveReservesInvariant checks that every pool with outstanding shares
// has both reserves positive, and every empty pool has none.
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %s: %v\n", pool.Pair, err)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "positive-reserves",
			fmt.Sprintf("found %d pools with invalid reserves\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that each pool's share supply equals the sum
// of its holders' LP balances.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			sum := math.ZeroInt()
			for _, entry := range k.shareLedger(ctx, pool.Pair).Balances() {
				sum = sum.Add(entry.Amount)
			}
			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %s: total shares %s != sum of balances %s\n", pool.Pair, pool.TotalShares, sum)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with mismatched share supply\n%s", count, msg),
		), broken
	}
}

// ModuleCustodyInvariant checks that the custody account holds at least the
// reserves of every pool, summed per asset since assets appear in several
// pools.
func ModuleCustodyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		owed := make(map[string]math.Int)
		var assets []string
		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			for _, side := range []types.Side{types.SideA, types.SideB} {
				asset := pool.Pair.Asset(side)
				if _, ok := owed[asset]; !ok {
					owed[asset] = math.ZeroInt()
					assets = append(assets, asset)
				}
				owed[asset] = owed[asset].Add(pool.Reserve(side))
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %v\n", err)
		}

		for _, asset := range assets {
			held, _ := k.ledgerKeeper.Balance(ctx, asset, k.moduleAccount)
			if held.LT(owed[asset]) {
				count++
				msg += fmt.Sprintf("asset %s: custody balance %s < reserves %s\n", asset, held, owed[asset])
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "module-custody",
			fmt.Sprintf("found %d under-collateralised assets\n%s", count, msg),
		), broken
	}
}
