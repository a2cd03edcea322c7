package types

import (
	"encoding/binary"
)

// DefaultFeeBps is the swap fee applied to new pools unless governance
// changes it. Zero keeps the quoted amounts equal to the bare curve.
const DefaultFeeBps uint32 = 0

// Params holds the module parameters.
type Params struct {
	// FeeBps is the swap fee, in basis points, stamped on pools at creation.
	FeeBps uint32 `json:"fee_bps" yaml:"fee_bps"`
}

// NewParams returns params with the given fee.
func NewParams(feeBps uint32) Params {
	return Params{FeeBps: feeBps}
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return NewParams(DefaultFeeBps)
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.FeeBps >= BasisPointsDenominator {
		return ErrInvalidParams.Wrapf("fee %d bps must be below %d", p.FeeBps, BasisPointsDenominator)
	}
	return nil
}

// MarshalFee encodes a fee for the store.
func MarshalFee(feeBps uint32) []byte {
	bz := make([]byte, 4)
	binary.BigEndian.PutUint32(bz, feeBps)
	return bz
}

// UnmarshalFee decodes a stored fee.
func UnmarshalFee(bz []byte) (uint32, error) {
	if len(bz) != 4 {
		return 0, ErrInvalidParams.Wrapf("stored fee has %d bytes", len(bz))
	}
	return binary.BigEndian.Uint32(bz), nil
}
