package types

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// LedgerKeyPrefix is the prefix under which every asset ledger lives
	LedgerKeyPrefix = []byte{0x01}

	// AssetKeyPrefix indexes the assets that were ever minted
	AssetKeyPrefix = []byte{0x02}
)

// LedgerPrefix returns the store prefix of the ledger for asset.
func LedgerPrefix(asset string) []byte {
	return append(append([]byte{}, LedgerKeyPrefix...), address.MustLengthPrefix([]byte(asset))...)
}

// AssetKey returns the registry key for asset.
func AssetKey(asset string) []byte {
	return append(append([]byte{}, AssetKeyPrefix...), address.MustLengthPrefix([]byte(asset))...)
}

// AssetFromKey extracts the asset id from a registry key.
func AssetFromKey(key []byte) string {
	if len(key) < len(AssetKeyPrefix)+1 {
		return ""
	}
	return string(key[len(AssetKeyPrefix)+1:])
}

// ValidateAsset checks that an asset id can be used as a store key.
func ValidateAsset(asset string) error {
	if asset == "" {
		return ErrInvalidAsset.Wrap("asset cannot be empty")
	}
	if len(asset) > address.MaxAddrLen {
		return ErrInvalidAsset.Wrapf("asset id longer than %d bytes", address.MaxAddrLen)
	}
	return nil
}
