package app

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// CreatePool creates the pool of pair with the creator's first deposit.
func (app *App) CreatePool(creator string, pair ammtypes.TokenPair, amountA, amountB, minSharesOut math.Int) (shares math.Int, err error) {
	_, err = app.Exec(MaxGasPerPoolCreation, func(ctx sdk.Context) error {
		shares, err = app.AMMKeeper.Create(ctx, creator, pair, amountA, amountB, minSharesOut)
		return err
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return shares, nil
}

// Swap sells amountIn of assetIn to the pool of pair.
func (app *App) Swap(trader string, pair ammtypes.TokenPair, assetIn string, amountIn, minAmountOut math.Int) (amountOut math.Int, err error) {
	_, err = app.Exec(MaxGasPerSwap, func(ctx sdk.Context) error {
		amountOut, err = app.AMMKeeper.Swap(ctx, trader, pair, assetIn, amountIn, minAmountOut)
		return err
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return amountOut, nil
}

// Quote returns what Swap would pay without changing state.
func (app *App) Quote(pair ammtypes.TokenPair, assetIn string, amountIn math.Int) (amountOut math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		amountOut, err = app.AMMKeeper.Quote(ctx, pair, assetIn, amountIn)
		return err
	})
	return amountOut, err
}

// TokenBalance returns the pool reserve of asset.
func (app *App) TokenBalance(pair ammtypes.TokenPair, asset string) (reserve math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		reserve, err = app.AMMKeeper.TokenBalance(ctx, pair, asset)
		return err
	})
	return reserve, err
}

// AddLiquidity deposits into the pool of pair.
func (app *App) AddLiquidity(provider string, pair ammtypes.TokenPair, amountA, amountB, minSharesOut math.Int) (res ammtypes.DepositResult, err error) {
	_, err = app.Exec(MaxGasPerLiquidityAdd, func(ctx sdk.Context) error {
		res, err = app.AMMKeeper.AddLiquidity(ctx, provider, pair, amountA, amountB, minSharesOut)
		return err
	})
	if err != nil {
		return ammtypes.DepositResult{}, err
	}
	return res, nil
}

// RemoveLiquidity burns LP shares of pair for the proportional reserves.
func (app *App) RemoveLiquidity(provider string, pair ammtypes.TokenPair, shares, minAmountA, minAmountB math.Int) (res ammtypes.WithdrawResult, err error) {
	_, err = app.Exec(MaxGasPerLiquidityRemove, func(ctx sdk.Context) error {
		res, err = app.AMMKeeper.RemoveLiquidity(ctx, provider, pair, shares, minAmountA, minAmountB)
		return err
	})
	if err != nil {
		return ammtypes.WithdrawResult{}, err
	}
	return res, nil
}

// ShareBalance returns the LP shares of holder in pair.
func (app *App) ShareBalance(pair ammtypes.TokenPair, holder string) (balance math.Int, found bool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		balance, found, err = app.AMMKeeper.ShareBalance(ctx, pair, holder)
		return err
	})
	return balance, found, err
}

// TransferShares moves LP shares of pair between holders.
func (app *App) TransferShares(pair ammtypes.TokenPair, from, to string, amount math.Int) error {
	_, err := app.Exec(MaxGasPerShareTransfer, func(ctx sdk.Context) error {
		return app.AMMKeeper.TransferShares(ctx, pair, from, to, amount)
	})
	return err
}

// TotalShares returns the LP shares outstanding for pair.
func (app *App) TotalShares(pair ammtypes.TokenPair) (total math.Int, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		total, err = app.AMMKeeper.TotalShares(ctx, pair)
		return err
	})
	return total, err
}

// ShareBalances lists the LP share holders of pair.
func (app *App) ShareBalances(pair ammtypes.TokenPair) (balances []ledger.Balance, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		balances, err = app.AMMKeeper.ShareBalances(ctx, pair)
		return err
	})
	return balances, err
}

// Pools returns every pool.
func (app *App) Pools() (pools []ammtypes.Pool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		pools, err = app.AMMKeeper.GetAllPools(ctx)
		return err
	})
	return pools, err
}

// Pool returns the pool of pair.
func (app *App) Pool(pair ammtypes.TokenPair) (pool ammtypes.Pool, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		pool, err = app.AMMKeeper.GetPool(ctx, pair)
		return err
	})
	return pool, err
}

// SetFee updates the fee applied to pools created from now on.
func (app *App) SetFee(feeBps uint32) error {
	_, err := app.Exec(MaxGasPerParamsUpdate, func(ctx sdk.Context) error {
		return app.AMMKeeper.SetParams(ctx, ammtypes.NewParams(feeBps))
	})
	return err
}
