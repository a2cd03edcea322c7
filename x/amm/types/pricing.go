package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Pricing functions of the constant-product curve. Everything here is pure
// integer arithmetic over math.Int; every division truncates toward zero
// except DepositAmounts, which rounds up. Both directions favour the pool.

// BasisPointsDenominator is 100% expressed in basis points.
const BasisPointsDenominator uint32 = 10_000

// maxPriceBits bounds the reserves SpotPrice will convert to a decimal.
const maxPriceBits = 192

// InitialLiquidity returns the LP shares minted for the first deposit of a
// pool: floor(sqrt(amountA * amountB)).
func InitialLiquidity(amountA, amountB math.Int) (math.Int, error) {
	if err := ValidatePositive("amount a", amountA); err != nil {
		return math.ZeroInt(), err
	}
	if err := ValidatePositive("amount b", amountB); err != nil {
		return math.ZeroInt(), err
	}

	product, err := amountA.SafeMul(amountB)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("initial liquidity %s * %s: %v", amountA, amountB, err)
	}
	return IntSqrt(product), nil
}

// IntSqrt returns floor(sqrt(x)) for non-negative x.
func IntSqrt(x math.Int) math.Int {
	if x.IsNil() || !x.IsPositive() {
		return math.ZeroInt()
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// ApplyFee returns the part of amountIn that reaches the curve:
// amountIn * (10000 - feeBps) / 10000.
func ApplyFee(amountIn math.Int, feeBps uint32) (math.Int, error) {
	if feeBps >= BasisPointsDenominator {
		return math.ZeroInt(), ErrInvalidInput.Wrapf("fee %d bps must be below %d", feeBps, BasisPointsDenominator)
	}
	kept, err := amountIn.SafeMul(math.NewIntFromUint64(uint64(BasisPointsDenominator - feeBps)))
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("fee on %s: %v", amountIn, err)
	}
	return kept.Quo(math.NewIntFromUint64(uint64(BasisPointsDenominator))), nil
}

// QuoteSwap returns the output of paying amountIn into a pool holding
// reserveIn/reserveOut:
//
//	effective = amountIn * (10000 - feeBps) / 10000
//	amountOut = reserveOut * effective / (reserveIn + effective)
//
// The result is strictly below reserveOut and may be zero for dust inputs.
func QuoteSwap(reserveIn, reserveOut, amountIn math.Int, feeBps uint32) (math.Int, error) {
	if err := ValidatePositive("amount in", amountIn); err != nil {
		return math.ZeroInt(), err
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), ErrEmptyPool.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}

	effective, err := ApplyFee(amountIn, feeBps)
	if err != nil {
		return math.ZeroInt(), err
	}

	numerator, err := reserveOut.SafeMul(effective)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("reserveOut=%s * effectiveIn=%s: %v", reserveOut, effective, err)
	}
	denominator, err := reserveIn.SafeAdd(effective)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("reserveIn=%s + effectiveIn=%s: %v", reserveIn, effective, err)
	}
	return numerator.Quo(denominator), nil
}

// LiquidityShares returns the LP shares minted for depositing up to
// amountA/amountB. An empty pool is bootstrapped with InitialLiquidity;
// otherwise the smaller proportional claim wins.
func LiquidityShares(amountA, amountB, reserveA, reserveB, totalShares math.Int) (math.Int, error) {
	if totalShares.IsNil() || totalShares.IsZero() {
		return InitialLiquidity(amountA, amountB)
	}
	if err := ValidatePositive("amount a", amountA); err != nil {
		return math.ZeroInt(), err
	}
	if err := ValidatePositive("amount b", amountB); err != nil {
		return math.ZeroInt(), err
	}
	if !reserveA.IsPositive() || !reserveB.IsPositive() {
		return math.ZeroInt(), ErrInvariantViolation.Wrapf("%s shares outstanding over reserves %s/%s", totalShares, reserveA, reserveB)
	}

	sharesA, err := mulDiv(amountA, totalShares, reserveA, false)
	if err != nil {
		return math.ZeroInt(), err
	}
	sharesB, err := mulDiv(amountB, totalShares, reserveB, false)
	if err != nil {
		return math.ZeroInt(), err
	}
	return math.MinInt(sharesA, sharesB), nil
}

// DepositAmounts returns what a provider pays for shares newly minted on an
// initialised pool: ceil(shares * reserve / totalShares) per side.
func DepositAmounts(shares, reserveA, reserveB, totalShares math.Int) (math.Int, math.Int, error) {
	if !totalShares.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), ErrEmptyPool.Wrap("no shares outstanding")
	}
	amountA, err := mulDiv(shares, reserveA, totalShares, true)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	amountB, err := mulDiv(shares, reserveB, totalShares, true)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return amountA, amountB, nil
}

// WithdrawAmounts returns what burning shares pays out:
// floor(shares * reserve / totalShares) per side.
func WithdrawAmounts(shares, reserveA, reserveB, totalShares math.Int) (math.Int, math.Int, error) {
	if err := ValidatePositive("shares", shares); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if !totalShares.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), ErrEmptyPool.Wrap("no shares outstanding")
	}
	if shares.GT(totalShares) {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientShares.Wrapf("%s > total %s", shares, totalShares)
	}
	amountA, err := mulDiv(shares, reserveA, totalShares, false)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	amountB, err := mulDiv(shares, reserveB, totalShares, false)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return amountA, amountB, nil
}

// CheckConstantProduct fails when newA*newB < oldA*oldB.
func CheckConstantProduct(oldA, oldB, newA, newB math.Int) error {
	oldK, err := oldA.SafeMul(oldB)
	if err != nil {
		return ErrOverflow.Wrapf("old k: %v", err)
	}
	newK, err := newA.SafeMul(newB)
	if err != nil {
		return ErrOverflow.Wrapf("new k: %v", err)
	}
	if newK.LT(oldK) {
		return ErrInvariantViolation.Wrapf("constant product decreased: old_k=%s, new_k=%s", oldK, newK)
	}
	return nil
}

// SpotPrice returns the marginal price of A in units of B.
func SpotPrice(reserveA, reserveB math.Int) (math.LegacyDec, error) {
	if !reserveA.IsPositive() || !reserveB.IsPositive() {
		return math.LegacyZeroDec(), ErrEmptyPool.Wrapf("reserves %s/%s", reserveA, reserveB)
	}
	if reserveA.BigInt().BitLen() > maxPriceBits || reserveB.BigInt().BitLen() > maxPriceBits {
		return math.LegacyZeroDec(), ErrOverflow.Wrap("reserves too large for a decimal price")
	}
	return math.LegacyNewDecFromInt(reserveB).Quo(math.LegacyNewDecFromInt(reserveA)), nil
}

// ValidatePositive checks that amount is set and greater than zero.
func ValidatePositive(name string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidInput.Wrapf("%s must be positive, got %s", name, amount)
	}
	return nil
}

// ValidateMinimum checks a caller supplied lower bound, which may be zero.
func ValidateMinimum(name string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidInput.Wrapf("%s cannot be negative, got %s", name, amount)
	}
	return nil
}

// mulDiv computes a*b/c, rounding up when roundUp is set.
func mulDiv(a, b, c math.Int, roundUp bool) (math.Int, error) {
	if !c.IsPositive() {
		return math.ZeroInt(), ErrInvalidInput.Wrapf("divisor must be positive, got %s", c)
	}
	product, err := a.SafeMul(b)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	if !roundUp {
		return product.Quo(c), nil
	}
	padded, err := product.SafeAdd(c.SubRaw(1))
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s + %s - 1: %v", product, c, err)
	}
	return padded.Quo(c), nil
}
