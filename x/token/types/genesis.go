package types

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/shared/ledger"
)

// AssetState holds every holder entry of one asset.
type AssetState struct {
	Asset    string           `json:"asset" yaml:"asset"`
	Balances []ledger.Balance `json:"balances" yaml:"balances"`
}

// GenesisState defines the token module's genesis state.
type GenesisState struct {
	Assets []AssetState `json:"assets" yaml:"assets"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	seen := make(map[string]bool, len(gs.Assets))
	for _, as := range gs.Assets {
		if err := ValidateAsset(as.Asset); err != nil {
			return err
		}
		if seen[as.Asset] {
			return ErrInvalidAsset.Wrapf("duplicate asset %s in genesis", as.Asset)
		}
		seen[as.Asset] = true

		holders := make(map[string]bool, len(as.Balances))
		for _, b := range as.Balances {
			if b.Holder == "" || holders[b.Holder] {
				return ledger.ErrInvalidHolder.Wrapf("asset %s: empty or duplicate holder %q", as.Asset, b.Holder)
			}
			holders[b.Holder] = true
			if b.Amount.IsNil() || b.Amount.LT(math.ZeroInt()) {
				return ledger.ErrInvalidAmount.Wrapf("asset %s: negative balance for %s", as.Asset, b.Holder)
			}
		}
	}
	return nil
}
