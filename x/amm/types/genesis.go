package types

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// PoolState is a pool together with its LP-share holders.
type PoolState struct {
	Pool   Pool             `json:"pool" yaml:"pool"`
	Shares []ledger.Balance `json:"shares" yaml:"shares"`
}

// GenesisState defines the amm module's genesis state.
type GenesisState struct {
	Params Params      `json:"params" yaml:"params"`
	Pools  []PoolState `json:"pools" yaml:"pools"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[TokenPair]bool, len(gs.Pools))
	for _, ps := range gs.Pools {
		if err := ps.Pool.Validate(); err != nil {
			return err
		}
		if seen[ps.Pool.Pair] {
			return ErrAlreadyInitialized.Wrapf("duplicate pool %s in genesis", ps.Pool.Pair)
		}
		seen[ps.Pool.Pair] = true

		sum := math.ZeroInt()
		for _, share := range ps.Shares {
			if share.Holder == "" || share.Amount.IsNil() || share.Amount.IsNegative() {
				return ErrInvalidInput.Wrapf("pool %s has an invalid share entry", ps.Pool.Pair)
			}
			sum = sum.Add(share.Amount)
		}
		if !sum.Equal(ps.Pool.TotalShares) {
			return ErrInvariantViolation.Wrapf("pool %s: shares sum %s != total %s", ps.Pool.Pair, sum, ps.Pool.TotalShares)
		}
	}
	return nil
}
