package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state.
// Reserves are restored as-is; custody of the matching tokens is the
// caller's concern.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid amm genesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, ps := range genState.Pools {
		if k.HasPool(ctx, ps.Pool.Pair) {
			return types.ErrAlreadyInitialized.Wrapf("pool %s", ps.Pool.Pair)
		}
		if err := k.setPool(ctx, ps.Pool); err != nil {
			return fmt.Errorf("failed to set pool %s: %w", ps.Pool.Pair, err)
		}
		shares := k.shareLedger(ctx, ps.Pool.Pair)
		for _, entry := range ps.Shares {
			if err := shares.Import(entry); err != nil {
				return fmt.Errorf("failed to import shares of %s in %s: %w", entry.Holder, ps.Pool.Pair, err)
			}
		}
	}
	return nil
}

// ExportGenesis returns the amm module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	genesis := &types.GenesisState{Params: params}
	err = k.IteratePools(ctx, func(pool types.Pool) bool {
		genesis.Pools = append(genesis.Pools, types.PoolState{
			Pool:   pool,
			Shares: k.shareLedger(ctx, pool.Pair).Balances(),
		})
		return false
	})
	if err != nil {
		return nil, err
	}
	return genesis, nil
}
