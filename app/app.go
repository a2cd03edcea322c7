package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ammkeeper "github.com/paw-chain/pawswap/x/amm/keeper"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	tokenkeeper "github.com/paw-chain/pawswap/x/token/keeper"
	tokentypes "github.com/paw-chain/pawswap/x/token/types"
)

// App owns the multistore and the keepers and serializes calls into them.
// Mutating calls take the write lock and run in a cache of the multistore
// that is written back only on success; queries share the read lock and
// never write.
type App struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	config Config

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	// keepers
	TokenKeeper tokenkeeper.Keeper
	AMMKeeper   *ammkeeper.Keeper

	invariants []invariantRoute

	mu     sync.RWMutex
	height int64
}

type invariantRoute struct {
	module string
	route  string
	check  sdk.Invariant
}

var _ sdk.InvariantRegistry = (*App)(nil)

// ExecResult reports what a committed call consumed and emitted.
type ExecResult struct {
	GasUsed uint64
	Events  sdk.Events
}

// New returns an App over db, wired and initialised from cfg.
func New(logger log.Logger, db dbm.DB, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	keys := storetypes.NewKVStoreKeys(tokentypes.StoreKey, ammtypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeDB, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	app := &App{
		logger: logger.With("module", "app"),
		db:     db,
		cms:    cms,
		config: cfg,
		keys:   keys,
	}

	app.TokenKeeper = tokenkeeper.NewKeeper(keys[tokentypes.StoreKey])
	app.AMMKeeper = ammkeeper.NewKeeper(keys[ammtypes.StoreKey], app.TokenKeeper, cfg.ModuleAccount)

	tokenkeeper.RegisterInvariants(app, app.TokenKeeper)
	ammkeeper.RegisterInvariants(app, *app.AMMKeeper)

	if _, err := app.Exec(MaxGasPerParamsUpdate, func(ctx sdk.Context) error {
		return app.AMMKeeper.SetParams(ctx, ammtypes.NewParams(cfg.FeeBps))
	}); err != nil {
		return nil, fmt.Errorf("failed to set amm params: %w", err)
	}

	return app, nil
}

// RegisterRoute implements sdk.InvariantRegistry.
func (app *App) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	app.invariants = append(app.invariants, invariantRoute{module: moduleName, route: route, check: invar})
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger {
	return app.logger
}

// Config returns the configuration the app was built with.
func (app *App) Config() Config {
	return app.config
}

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// Close releases the database.
func (app *App) Close() error {
	return app.db.Close()
}

// Exec runs fn as one all-or-nothing call under a gas meter of gasLimit
// (UnlimitedGas for none). State is written only if fn returns nil, no
// invariant broke and nothing panicked; a panic is returned as an error.
func (app *App) Exec(gasLimit uint64, fn func(ctx sdk.Context) error) (res ExecResult, err error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	cache := app.cms.CacheMultiStore()
	ctx := app.newContext(cache, gasLimit)

	defer func() {
		if r := recover(); r != nil {
			err = app.recoverCall(ctx, r)
			res = ExecResult{}
		}
	}()

	if err := fn(ctx); err != nil {
		return ExecResult{}, err
	}

	if app.config.CheckInvariants {
		if err := app.assertInvariants(ctx); err != nil {
			return ExecResult{}, err
		}
	}

	cache.Write()
	app.height++

	return ExecResult{
		GasUsed: ctx.GasMeter().GasConsumed(),
		Events:  ctx.EventManager().Events(),
	}, nil
}

// Query runs fn against a read-only view of the latest state. Queries may
// run concurrently with each other but never with Exec.
func (app *App) Query(fn func(ctx sdk.Context) error) (err error) {
	app.mu.RLock()
	defer app.mu.RUnlock()

	ctx := app.newContext(app.cms.CacheMultiStore(), UnlimitedGas)

	defer func() {
		if r := recover(); r != nil {
			err = app.recoverCall(ctx, r)
		}
	}()

	return fn(ctx)
}

// CheckInvariants runs every registered invariant against the latest state.
func (app *App) CheckInvariants() error {
	return app.Query(app.assertInvariants)
}

func (app *App) newContext(ms storetypes.MultiStore, gasLimit uint64) sdk.Context {
	var meter storetypes.GasMeter = storetypes.NewInfiniteGasMeter()
	if gasLimit != UnlimitedGas {
		meter = storetypes.NewGasMeter(gasLimit)
	}

	return sdk.NewContext(ms, cmtproto.Header{ChainID: Name, Height: app.height + 1}, false, app.logger).
		WithGasMeter(meter).
		WithEventManager(sdk.NewEventManager())
}

func (app *App) assertInvariants(ctx sdk.Context) error {
	ctx = ctx.WithGasMeter(storetypes.NewInfiniteGasMeter())
	for _, inv := range app.invariants {
		if msg, broken := inv.check(ctx); broken {
			app.logger.Error("invariant broken", "module", inv.module, "route", inv.route, "details", msg)
			return ammtypes.ErrInvariantViolation.Wrapf("%s/%s: %s", inv.module, inv.route, msg)
		}
	}
	return nil
}

// recoverCall converts a panic raised inside a call into an error, the way
// baseapp does for transactions.
func (app *App) recoverCall(ctx sdk.Context, r interface{}) error {
	switch rType := r.(type) {
	case storetypes.ErrorOutOfGas:
		return errorsmod.Wrapf(sdkerrors.ErrOutOfGas,
			"out of gas in location: %v; gasWanted: %d, gasUsed: %d",
			rType.Descriptor, ctx.GasMeter().Limit(), ctx.GasMeter().GasConsumed())

	case error:
		if errors.Is(rType, ammtypes.ErrInvariantViolation) {
			app.logger.Error("call aborted by invariant violation", "error", rType)
			return rType
		}
		app.logger.Error("panic recovered", "error", rType, "stack", string(debug.Stack()))
		return errorsmod.Wrapf(sdkerrors.ErrPanic, "recovered: %v", rType)

	default:
		app.logger.Error("panic recovered", "panic", r, "stack", string(debug.Stack()))
		return errorsmod.Wrapf(sdkerrors.ErrPanic, "recovered: %v", r)
	}
}
