package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// Mint credits amount of asset to holder.
func (app *App) Mint(asset, to string, amount math.Int) error {
	_, err := app.Exec(MaxGasPerMint, func(ctx sdk.Context) error {
		return app.TokenKeeper.Mint(ctx, asset, to, amount)
	})
	return err
}

// Transfer moves amount of asset between holders.
func (app *App) Transfer(asset, from, to string, amount math.Int) error {
	_, err := app.Exec(MaxGasPerTransfer, func(ctx sdk.Context) error {
		return app.TokenKeeper.Transfer(ctx, asset, from, to, amount)
	})
	return err
}

// Balance returns the holder's balance of asset and whether the holder has
// ever held it.
func (app *App) Balance(asset, holder string) (balance math.Int, found bool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		balance, found = app.TokenKeeper.Balance(ctx, asset, holder)
		return nil
	})
	return balance, found, err
}

// Balances lists every holder entry of asset.
func (app *App) Balances(asset string) (balances []ledger.Balance, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		balances, err = app.TokenKeeper.Balances(ctx, asset)
		return err
	})
	return balances, err
}

// TotalSupply returns the minted supply of asset.
func (app *App) TotalSupply(asset string) (supply math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		supply = app.TokenKeeper.TotalSupply(ctx, asset)
		return nil
	})
	return supply, err
}

// Assets lists every asset ever minted.
func (app *App) Assets() (assets []string, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		assets = app.TokenKeeper.Assets(ctx)
		return nil
	})
	return assets, err
}
