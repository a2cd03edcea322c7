package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawswap/x/token/types"
)

// InitGenesis initializes the token module's state from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid token genesis: %w", err)
	}

	for _, as := range genState.Assets {
		l, err := k.assetLedger(ctx, as.Asset)
		if err != nil {
			return err
		}
		for _, entry := range as.Balances {
			if err := l.Import(entry); err != nil {
				return fmt.Errorf("failed to import %s balance of %s: %w", as.Asset, entry.Holder, err)
			}
		}
		k.getStore(ctx).Set(types.AssetKey(as.Asset), []byte{0x01})
	}
	return nil
}

// ExportGenesis returns the token module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	for _, asset := range k.Assets(ctx) {
		balances, err := k.Balances(ctx, asset)
		if err != nil {
			return nil, err
		}
		genesis.Assets = append(genesis.Assets, types.AssetState{Asset: asset, Balances: balances})
	}
	return genesis, nil
}
