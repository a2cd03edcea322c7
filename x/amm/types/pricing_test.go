package types_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func TestInitialLiquidity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		expected int64
	}{
		{"imbalanced", 100, 500, 223},
		{"perfect square", 100, 100, 100},
		{"unit", 1, 1, 1},
		{"large", 1_000_000, 4_000_000, 2_000_000},
		{"truncates", 2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := types.InitialLiquidity(math.NewInt(tt.a), math.NewInt(tt.b))
			require.NoError(t, err)
			require.Equal(t, tt.expected, shares.Int64())
		})
	}
}

func TestInitialLiquidity_RejectsNonPositive(t *testing.T) {
	_, err := types.InitialLiquidity(math.ZeroInt(), math.NewInt(10))
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = types.InitialLiquidity(math.NewInt(10), math.NewInt(-1))
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestInitialLiquidity_Overflow(t *testing.T) {
	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	_, err := types.InitialLiquidity(huge, huge)
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestIntSqrt(t *testing.T) {
	require.True(t, types.IntSqrt(math.ZeroInt()).IsZero())
	require.Equal(t, int64(3), types.IntSqrt(math.NewInt(15)).Int64())
	require.Equal(t, int64(4), types.IntSqrt(math.NewInt(16)).Int64())
	require.True(t, types.IntSqrt(math.NewInt(-4)).IsZero())
}

func TestQuoteSwap_Reference(t *testing.T) {
	reserveIn, reserveOut := math.NewInt(100), math.NewInt(500)

	tests := []struct {
		in, out int64
	}{
		{10, 45},
		{100, 250},
		{1000, 454},
	}
	for _, tt := range tests {
		out, err := types.QuoteSwap(reserveIn, reserveOut, math.NewInt(tt.in), 0)
		require.NoError(t, err)
		require.Equal(t, tt.out, out.Int64(), "amount in %d", tt.in)
	}

	// reverse direction after the first swap moved reserves to 110/455
	out, err := types.QuoteSwap(math.NewInt(455), math.NewInt(110), math.NewInt(45), 0)
	require.NoError(t, err)
	require.Equal(t, int64(9), out.Int64())
}

func TestQuoteSwap_Fee(t *testing.T) {
	// 10 * 9970 / 10000 = 9 effective; 500 * 9 / 109 = 41
	out, err := types.QuoteSwap(math.NewInt(100), math.NewInt(500), math.NewInt(10), 30)
	require.NoError(t, err)
	require.Equal(t, int64(41), out.Int64())

	_, err = types.QuoteSwap(math.NewInt(100), math.NewInt(500), math.NewInt(10), 10_000)
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestQuoteSwap_Errors(t *testing.T) {
	_, err := types.QuoteSwap(math.NewInt(100), math.NewInt(500), math.ZeroInt(), 0)
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = types.QuoteSwap(math.ZeroInt(), math.ZeroInt(), math.NewInt(10), 0)
	require.ErrorIs(t, err, types.ErrEmptyPool)

	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	_, err = types.QuoteSwap(huge, huge, huge, 0)
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestQuoteSwap_DustRoundsToZero(t *testing.T) {
	out, err := types.QuoteSwap(math.NewInt(1_000_000), math.NewInt(10), math.NewInt(1), 0)
	require.NoError(t, err)
	require.True(t, out.IsZero())
}

func TestApplyFee(t *testing.T) {
	eff, err := types.ApplyFee(math.NewInt(10_000), 30)
	require.NoError(t, err)
	require.Equal(t, int64(9_970), eff.Int64())

	eff, err = types.ApplyFee(math.NewInt(10_000), 0)
	require.NoError(t, err)
	require.Equal(t, int64(10_000), eff.Int64())
}

func TestLiquidityShares(t *testing.T) {
	r100, r500, s := math.NewInt(100), math.NewInt(500), math.NewInt(223)

	shares, err := types.LiquidityShares(math.NewInt(10), math.NewInt(50), r100, r500, s)
	require.NoError(t, err)
	require.Equal(t, int64(22), shares.Int64())

	// the smaller side wins
	shares, err = types.LiquidityShares(math.NewInt(10), math.NewInt(500), r100, r500, s)
	require.NoError(t, err)
	require.Equal(t, int64(22), shares.Int64())

	// empty pool bootstraps
	shares, err = types.LiquidityShares(math.NewInt(100), math.NewInt(500), math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, int64(223), shares.Int64())
}

func TestDepositAndWithdrawAmounts_Rounding(t *testing.T) {
	r100, r500, s := math.NewInt(100), math.NewInt(500), math.NewInt(223)

	a, b, err := types.DepositAmounts(math.NewInt(22), r100, r500, s)
	require.NoError(t, err)
	require.Equal(t, int64(10), a.Int64())
	require.Equal(t, int64(50), b.Int64())

	a, b, err = types.WithdrawAmounts(math.NewInt(22), r100, r500, s)
	require.NoError(t, err)
	require.Equal(t, int64(9), a.Int64())
	require.Equal(t, int64(49), b.Int64())

	a, b, err = types.WithdrawAmounts(s, r100, r500, s)
	require.NoError(t, err)
	require.Equal(t, int64(100), a.Int64())
	require.Equal(t, int64(500), b.Int64())

	_, _, err = types.WithdrawAmounts(math.NewInt(224), r100, r500, s)
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	_, _, err = types.DepositAmounts(math.NewInt(1), r100, r500, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrEmptyPool)
}

func TestCheckConstantProduct(t *testing.T) {
	require.NoError(t, types.CheckConstantProduct(math.NewInt(100), math.NewInt(500), math.NewInt(110), math.NewInt(455)))
	require.NoError(t, types.CheckConstantProduct(math.NewInt(100), math.NewInt(500), math.NewInt(100), math.NewInt(500)))

	err := types.CheckConstantProduct(math.NewInt(100), math.NewInt(500), math.NewInt(110), math.NewInt(450))
	require.ErrorIs(t, err, types.ErrInvariantViolation)
}

func TestSpotPrice(t *testing.T) {
	price, err := types.SpotPrice(math.NewInt(100), math.NewInt(500))
	require.NoError(t, err)
	require.True(t, price.Equal(math.LegacyNewDec(5)), price.String())

	_, err = types.SpotPrice(math.ZeroInt(), math.NewInt(500))
	require.ErrorIs(t, err, types.ErrEmptyPool)

	huge := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 200))
	_, err = types.SpotPrice(huge, math.NewInt(500))
	require.ErrorIs(t, err, types.ErrOverflow)
	_, err = types.SpotPrice(math.NewInt(100), huge)
	require.ErrorIs(t, err, types.ErrOverflow)
}
