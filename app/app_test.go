package app_test

import (
	"sync"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/paw-chain/pawswap/app"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	"github.com/paw-chain/pawswap/x/shared/ledger"
)

const (
	admin  = "admin"
	minter = "minter"
	tokenA = "token-a"
	tokenB = "token-b"
)

var pair = ammtypes.NewTokenPair(tokenA, tokenB)

type AppTestSuite struct {
	suite.Suite
	app *app.App
}

func (s *AppTestSuite) SetupTest() {
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), app.DefaultConfig())
	s.Require().NoError(err)
	s.app = a
}

func (s *AppTestSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

// fundAdmin mints to minter and moves the pool seed amounts to admin.
func (s *AppTestSuite) fundAdmin() {
	s.Require().NoError(s.app.Mint(tokenA, minter, math.NewInt(1000)))
	s.Require().NoError(s.app.Mint(tokenB, minter, math.NewInt(1000)))
	s.Require().NoError(s.app.Transfer(tokenA, minter, admin, math.NewInt(100)))
	s.Require().NoError(s.app.Transfer(tokenB, minter, admin, math.NewInt(500)))
}

func (s *AppTestSuite) constantProduct() math.Int {
	a, err := s.app.TokenBalance(pair, tokenA)
	s.Require().NoError(err)
	b, err := s.app.TokenBalance(pair, tokenB)
	s.Require().NoError(err)
	return a.Mul(b)
}

// tradeReferenceSequence runs the quote and swap sequence shared by the
// amm and pool scenarios against a 100/500 pool.
func (s *AppTestSuite) tradeReferenceSequence() {
	k1 := s.constantProduct()

	for in, out := range map[int64]int64{10: 45, 100: 250, 1000: 454} {
		quoted, err := s.app.Quote(pair, tokenA, math.NewInt(in))
		s.Require().NoError(err)
		s.Require().Equal(out, quoted.Int64())
	}

	_, err := s.app.Swap(minter, pair, tokenA, math.NewInt(10), math.NewInt(46))
	s.Require().ErrorIs(err, ammtypes.ErrSlippageExceeded)

	out, err := s.app.Swap(minter, pair, tokenA, math.NewInt(10), math.NewInt(45))
	s.Require().NoError(err)
	s.Require().Equal(int64(45), out.Int64())

	k2 := s.constantProduct()
	s.Require().True(k2.GTE(k1))

	quoted, err := s.app.Quote(pair, tokenB, math.NewInt(45))
	s.Require().NoError(err)
	s.Require().Equal(int64(9), quoted.Int64())

	out, err = s.app.Swap(minter, pair, tokenB, math.NewInt(45), math.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(int64(9), out.Int64())

	k3 := s.constantProduct()
	s.Require().True(k3.GTE(k2))
}

func (s *AppTestSuite) TestAMMScenario() {
	s.fundAdmin()

	shares, err := s.app.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(int64(223), shares.Int64())

	balA, err := s.app.TokenBalance(pair, tokenA)
	s.Require().NoError(err)
	s.Require().Equal(int64(100), balA.Int64())
	balB, err := s.app.TokenBalance(pair, tokenB)
	s.Require().NoError(err)
	s.Require().Equal(int64(500), balB.Int64())

	s.tradeReferenceSequence()

	_, err = s.app.CreatePool(admin, pair, math.NewInt(1), math.NewInt(1), math.ZeroInt())
	s.Require().ErrorIs(err, ammtypes.ErrAlreadyInitialized)

	s.Require().NoError(s.app.CheckInvariants())
}

// TestPoolScenario re-initialises a drained pool and then uses its LP
// shares through the token-like interface.
func (s *AppTestSuite) TestPoolScenario() {
	s.fundAdmin()

	_, err := s.app.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)
	_, err = s.app.RemoveLiquidity(admin, pair, math.NewInt(223), math.ZeroInt(), math.ZeroInt())
	s.Require().NoError(err)

	res, err := s.app.AddLiquidity(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(int64(223), res.Shares.Int64())

	s.tradeReferenceSequence()

	lp, found, err := s.app.ShareBalance(pair, admin)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(int64(223), lp.Int64())

	_, found, err = s.app.ShareBalance(pair, minter)
	s.Require().NoError(err)
	s.Require().False(found)

	s.Require().NoError(s.app.TransferShares(pair, admin, minter, math.NewInt(23)))

	lp, _, err = s.app.ShareBalance(pair, admin)
	s.Require().NoError(err)
	s.Require().Equal(int64(200), lp.Int64())
	lp, found, err = s.app.ShareBalance(pair, minter)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(int64(23), lp.Int64())

	total, err := s.app.TotalShares(pair)
	s.Require().NoError(err)
	s.Require().Equal(int64(223), total.Int64())

	s.Require().NoError(s.app.CheckInvariants())
}

func (s *AppTestSuite) TestTokenScenario() {
	const token = "token"

	s.Require().NoError(s.app.Mint(token, minter, math.NewInt(900)))
	s.Require().NoError(s.app.Mint(token, minter, math.NewInt(100)))

	err := s.app.Transfer(token, "holder", minter, math.NewInt(123))
	s.Require().ErrorIs(err, ledger.ErrInsufficientFunds)

	s.Require().NoError(s.app.Transfer(token, minter, "holder", math.NewInt(40)))
	s.Require().NoError(s.app.Transfer(token, minter, "holder", math.NewInt(2)))

	bal, found, err := s.app.Balance(token, "holder")
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().Equal(int64(42), bal.Int64())

	bal, _, err = s.app.Balance(token, minter)
	s.Require().NoError(err)
	s.Require().Equal(int64(958), bal.Int64())

	_, found, err = s.app.Balance(token, "foo")
	s.Require().NoError(err)
	s.Require().False(found)

	balances, err := s.app.Balances(token)
	s.Require().NoError(err)
	sum := math.ZeroInt()
	for _, b := range balances {
		sum = sum.Add(b.Amount)
	}
	supply, err := s.app.TotalSupply(token)
	s.Require().NoError(err)
	s.Require().True(sum.Equal(supply))
	s.Require().Equal(int64(1000), supply.Int64())
}

func (s *AppTestSuite) TestExec_RecoversInvariantPanic() {
	_, err := s.app.Exec(app.UnlimitedGas, func(ctx sdk.Context) error {
		if err := s.app.TokenKeeper.Mint(ctx, tokenA, admin, math.NewInt(5)); err != nil {
			return err
		}
		panic(ammtypes.ErrInvariantViolation.Wrap("constant product decreased"))
	})
	s.Require().ErrorIs(err, ammtypes.ErrInvariantViolation)

	_, found, err := s.app.Balance(tokenA, admin)
	s.Require().NoError(err)
	s.Require().False(found)
}

func (s *AppTestSuite) TestExec_RecoversOtherPanics() {
	_, err := s.app.Exec(app.UnlimitedGas, func(ctx sdk.Context) error {
		panic("boom")
	})
	s.Require().ErrorIs(err, sdkerrors.ErrPanic)
}

func (s *AppTestSuite) TestExec_OutOfGas() {
	_, err := s.app.Exec(10, func(ctx sdk.Context) error {
		return s.app.TokenKeeper.Mint(ctx, tokenA, admin, math.NewInt(5))
	})
	s.Require().ErrorIs(err, sdkerrors.ErrOutOfGas)

	supply, err := s.app.TotalSupply(tokenA)
	s.Require().NoError(err)
	s.Require().True(supply.IsZero())
}

func (s *AppTestSuite) TestExec_ReportsGasAndEvents() {
	s.fundAdmin()
	_, err := s.app.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)

	res, err := s.app.Exec(app.MaxGasPerSwap, func(ctx sdk.Context) error {
		_, err := s.app.AMMKeeper.Swap(ctx, minter, pair, tokenA, math.NewInt(10), math.ZeroInt())
		return err
	})
	s.Require().NoError(err)
	s.Require().Positive(res.GasUsed)

	var swaps int
	for _, event := range res.Events {
		if event.Type == ammtypes.EventTypeSwap {
			swaps++
		}
	}
	s.Require().Equal(1, swaps)
}

// TestExec_RejectsBrokenInvariants corrupts a reserve inside a call and
// checks the call is refused before it is committed.
func (s *AppTestSuite) TestExec_RejectsBrokenInvariants() {
	s.fundAdmin()
	_, err := s.app.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)

	_, err = s.app.Exec(app.UnlimitedGas, func(ctx sdk.Context) error {
		bz, err := math.NewInt(1_000).Marshal()
		if err != nil {
			return err
		}
		ctx.KVStore(s.app.GetKey(ammtypes.StoreKey)).Set(ammtypes.ReserveKey(pair, tokenA), bz)
		return nil
	})
	s.Require().ErrorIs(err, ammtypes.ErrInvariantViolation)

	reserve, err := s.app.TokenBalance(pair, tokenA)
	s.Require().NoError(err)
	s.Require().Equal(int64(100), reserve.Int64())
}

func (s *AppTestSuite) TestConcurrentQueriesAndSwaps() {
	s.fundAdmin()
	_, err := s.app.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.app.Swap(minter, pair, tokenA, math.NewInt(5), math.ZeroInt())
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := s.app.Quote(pair, tokenB, math.NewInt(5))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	reserve, err := s.app.TokenBalance(pair, tokenA)
	s.Require().NoError(err)
	s.Require().Equal(int64(140), reserve.Int64())
	s.Require().NoError(s.app.CheckInvariants())
}

func (s *AppTestSuite) TestGenesisRoundTrip() {
	s.fundAdmin()
	_, err := s.app.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	s.Require().NoError(err)
	_, err = s.app.Swap(minter, pair, tokenA, math.NewInt(10), math.ZeroInt())
	s.Require().NoError(err)

	exported, err := s.app.ExportGenesis()
	s.Require().NoError(err)
	s.Require().NoError(exported.Validate())

	restored, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), app.DefaultConfig())
	s.Require().NoError(err)
	defer restored.Close()

	s.Require().NoError(restored.InitGenesis(exported))
	s.Require().NoError(restored.CheckInvariants())

	pool, err := restored.Pool(pair)
	s.Require().NoError(err)
	s.Require().Equal(int64(110), pool.ReserveA.Int64())
	s.Require().Equal(int64(455), pool.ReserveB.Int64())

	bal, _, err := restored.Balance(tokenB, minter)
	s.Require().NoError(err)
	s.Require().Equal(int64(545), bal.Int64())
}

func TestConfig_Validate(t *testing.T) {
	cfg := app.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.FeeBps = 10_000
	require.ErrorIs(t, cfg.Validate(), ammtypes.ErrInvalidParams)

	cfg = app.DefaultConfig()
	cfg.DBBackend = "sqlite"
	require.Error(t, cfg.Validate())

	cfg = app.DefaultConfig()
	cfg.ModuleAccount = ""
	require.Error(t, cfg.Validate())
}

func TestNew_AppliesConfiguredFee(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.FeeBps = 30
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), cfg)
	require.NoError(t, err)

	require.NoError(t, a.Mint(tokenA, admin, math.NewInt(100)))
	require.NoError(t, a.Mint(tokenB, admin, math.NewInt(500)))
	_, err = a.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	require.NoError(t, err)

	pool, err := a.Pool(pair)
	require.NoError(t, err)
	require.Equal(t, uint32(30), pool.FeeBps)
}

func TestOnDiskStatePersists(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.DBBackend = string(dbm.GoLevelDBBackend)
	cfg.Home = t.TempDir()

	db, err := cfg.OpenDB()
	require.NoError(t, err)
	a, err := app.New(log.NewNopLogger(), db, cfg)
	require.NoError(t, err)
	require.NoError(t, a.Mint(tokenA, admin, math.NewInt(100)))
	require.NoError(t, a.Mint(tokenB, admin, math.NewInt(500)))
	_, err = a.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	require.NoError(t, err)
	require.NoError(t, a.Close())

	db, err = cfg.OpenDB()
	require.NoError(t, err)
	reopened, err := app.New(log.NewNopLogger(), db, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	total, err := reopened.TotalShares(pair)
	require.NoError(t, err)
	require.Equal(t, int64(223), total.Int64())
}

func TestCustodyAccountRejectedWithoutInvariantChecks(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.CheckInvariants = false
	a, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Mint(tokenA, admin, math.NewInt(100)))
	require.NoError(t, a.Mint(tokenB, admin, math.NewInt(500)))
	_, err = a.CreatePool(admin, pair, math.NewInt(100), math.NewInt(500), math.ZeroInt())
	require.NoError(t, err)

	custody := cfg.ModuleAccount
	_, err = a.Swap(custody, pair, tokenA, math.NewInt(10), math.ZeroInt())
	require.ErrorIs(t, err, ammtypes.ErrInvalidInput)
	_, err = a.AddLiquidity(custody, pair, math.NewInt(10), math.NewInt(50), math.ZeroInt())
	require.ErrorIs(t, err, ammtypes.ErrInvalidInput)

	reserveA, err := a.TokenBalance(pair, tokenA)
	require.NoError(t, err)
	require.Equal(t, int64(100), reserveA.Int64())
	custodyA, _, err := a.Balance(tokenA, custody)
	require.NoError(t, err)
	require.Equal(t, int64(100), custodyA.Int64())
	require.NoError(t, a.CheckInvariants())
}
