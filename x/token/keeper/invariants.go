package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/shared/ledger"
	"github.com/paw-chain/pawswap/x/token/types"
)

// RegisterInvariants registers all token invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-supply", TotalSupplyInvariant(k))
}

// TotalSupplyInvariant checks that the balances of every asset sum to its supply
func TotalSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, asset := range k.Assets(ctx) {
			l, err := k.assetLedger(ctx, asset)
			if err != nil {
				count++
				msg += fmt.Sprintf("asset %q: %v\n", asset, err)
				continue
			}

			sum := math.ZeroInt()
			l.IterateBalances(func(b ledger.Balance) bool {
				sum = sum.Add(b.Amount)
				return false
			})
			if !sum.Equal(l.TotalSupply()) {
				count++
				msg += fmt.Sprintf("asset %s: sum of balances %s != supply %s\n", asset, sum, l.TotalSupply())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "total-supply",
			fmt.Sprintf("found %d assets with mismatched supply\n%s", count, msg),
		), broken
	}
}
