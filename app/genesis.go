package app

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// GenesisState is the full application state: token balances and pools.
type GenesisState struct {
	Token tokentypes.GenesisState `json:"token" yaml:"token"`
	AMM   ammtypes.GenesisState   `json:"amm" yaml:"amm"`
}

// NewDefaultGenesisState returns an empty state with the given swap fee.
func NewDefaultGenesisState(feeBps uint32) GenesisState {
	amm := ammtypes.DefaultGenesis()
	amm.Params = ammtypes.NewParams(feeBps)
	return GenesisState{
		Token: *tokentypes.DefaultGenesis(),
		AMM:   *amm,
	}
}

// Validate checks each module's state.
func (gs GenesisState) Validate() error {
	if err := gs.Token.Validate(); err != nil {
		return fmt.Errorf("token: %w", err)
	}
	if err := gs.AMM.Validate(); err != nil {
		return fmt.Errorf("amm: %w", err)
	}
	return nil
}

// InitGenesis loads gs into the store as one call. Module custody balances
// are part of the token state, so the invariants hold after import only if
// the snapshot was consistent.
func (app *App) InitGenesis(gs GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	_, err := app.Exec(UnlimitedGas, func(ctx sdk.Context) error {
		if err := app.TokenKeeper.InitGenesis(ctx, gs.Token); err != nil {
			return err
		}
		return app.AMMKeeper.InitGenesis(ctx, gs.AMM)
	})
	return err
}

// ExportGenesis snapshots the latest state.
func (app *App) ExportGenesis() (gs GenesisState, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		token, err := app.TokenKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		amm, err := app.AMMKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		gs = GenesisState{Token: *token, AMM: *amm}
		return nil
	})
	return gs, err
}
