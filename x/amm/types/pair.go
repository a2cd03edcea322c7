package types

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// Side names one of the two assets of a pair.
type Side int

const (
	SideA Side = iota
	SideB
)

// Opposite returns the other side of the pair.
func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (s Side) String() string {
	if s == SideA {
		return "a"
	}
	return "b"
}

// TokenPair identifies a trading pair. Callers may name the assets in either
// order; the keeper stores pools under the canonical order (A < B).
type TokenPair struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// NewTokenPair returns the pair (a, b) as given.
func NewTokenPair(a, b string) TokenPair {
	return TokenPair{A: a, B: b}
}

// Validate checks that both assets are usable ids and distinct.
func (p TokenPair) Validate() error {
	if p.A == "" || p.B == "" {
		return ErrInvalidInput.Wrap("pair assets cannot be empty")
	}
	if len(p.A) > address.MaxAddrLen || len(p.B) > address.MaxAddrLen {
		return ErrInvalidInput.Wrapf("pair asset ids must be at most %d bytes", address.MaxAddrLen)
	}
	if p.A == p.B {
		return ErrInvalidInput.Wrapf("pair assets must differ, got %s twice", p.A)
	}
	return nil
}

// IsCanonical reports whether the pair is already in storage order.
func (p TokenPair) IsCanonical() bool {
	return p.A < p.B
}

// Canonical returns the pair in storage order.
func (p TokenPair) Canonical() TokenPair {
	if p.IsCanonical() {
		return p
	}
	return TokenPair{A: p.B, B: p.A}
}

// Orient reorders two amounts between p's order and canonical order. The
// mapping is its own inverse.
func (p TokenPair) Orient(a, b math.Int) (math.Int, math.Int) {
	if p.IsCanonical() {
		return a, b
	}
	return b, a
}

// SideOf returns which side of the pair asset is. Pair membership is a plain
// two-way comparison.
func (p TokenPair) SideOf(asset string) (Side, error) {
	switch asset {
	case p.A:
		return SideA, nil
	case p.B:
		return SideB, nil
	default:
		return SideA, ErrUnknownAsset.Wrapf("%s is not in pair %s", asset, p)
	}
}

// Asset returns the asset id on side s.
func (p TokenPair) Asset(s Side) string {
	if s == SideA {
		return p.A
	}
	return p.B
}

func (p TokenPair) String() string {
	return fmt.Sprintf("%s/%s", p.A, p.B)
}
