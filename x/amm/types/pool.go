package types

import (
	"cosmossdk.io/math"
)

// Pool is a snapshot of one constant-product pool.
type Pool struct {
	Pair        TokenPair `json:"pair" yaml:"pair"`
	ReserveA    math.Int  `json:"reserve_a" yaml:"reserve_a"`
	ReserveB    math.Int  `json:"reserve_b" yaml:"reserve_b"`
	TotalShares math.Int  `json:"total_shares" yaml:"total_shares"`
	FeeBps      uint32    `json:"fee_bps" yaml:"fee_bps"`
}

// Reserve returns the reserve on side s.
func (p Pool) Reserve(s Side) math.Int {
	if s == SideA {
		return p.ReserveA
	}
	return p.ReserveB
}

// SetReserve replaces the reserve on side s.
func (p *Pool) SetReserve(s Side, amount math.Int) {
	if s == SideA {
		p.ReserveA = amount
		return
	}
	p.ReserveB = amount
}

// Reserves returns (reserve_in, reserve_out) for a swap paying in on side in.
func (p Pool) Reserves(in Side) (math.Int, math.Int) {
	return p.Reserve(in), p.Reserve(in.Opposite())
}

// IsEmpty reports whether every share was withdrawn.
func (p Pool) IsEmpty() bool {
	return p.TotalShares.IsZero()
}

// ConstantProduct returns reserve_a * reserve_b.
func (p Pool) ConstantProduct() (math.Int, error) {
	k, err := p.ReserveA.SafeMul(p.ReserveB)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("k of pool %s: %v", p.Pair, err)
	}
	return k, nil
}

// Validate checks the structural invariants of a pool snapshot.
func (p Pool) Validate() error {
	if err := p.Pair.Validate(); err != nil {
		return err
	}
	if !p.Pair.IsCanonical() {
		return ErrInvalidInput.Wrapf("pool pair %s is not canonical", p.Pair)
	}
	if p.FeeBps >= BasisPointsDenominator {
		return ErrInvalidParams.Wrapf("pool fee %d bps must be below %d", p.FeeBps, BasisPointsDenominator)
	}
	for _, amt := range []math.Int{p.ReserveA, p.ReserveB, p.TotalShares} {
		if amt.IsNil() || amt.IsNegative() {
			return ErrInvariantViolation.Wrapf("pool %s has nil or negative amounts", p.Pair)
		}
	}
	if p.TotalShares.IsPositive() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
		return ErrInvariantViolation.Wrapf("pool %s has %s shares but a zero reserve", p.Pair, p.TotalShares)
	}
	if p.TotalShares.IsZero() && (!p.ReserveA.IsZero() || !p.ReserveB.IsZero()) {
		return ErrInvariantViolation.Wrapf("pool %s has reserves but no shares", p.Pair)
	}
	return nil
}

// DepositResult reports a liquidity deposit. Amounts follow the caller's
// pair order.
type DepositResult struct {
	Shares  math.Int
	AmountA math.Int
	AmountB math.Int
}

// WithdrawResult reports a liquidity withdrawal. Amounts follow the caller's
// pair order.
type WithdrawResult struct {
	AmountA math.Int
	AmountB math.Int
}
