package types

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// DefaultModuleAccount is the ledger holder that keeps pool custody
	DefaultModuleAccount = "module/" + ModuleName
)

// Store key prefixes
var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// PoolKeyPrefix is the prefix for pool records, keyed by canonical pair
	PoolKeyPrefix = []byte{0x02}

	// ReserveKeyPrefix is the prefix for pool reserves, keyed by pair and asset
	ReserveKeyPrefix = []byte{0x03}

	// SharesKeyPrefix is the prefix of every pool's LP-share ledger
	SharesKeyPrefix = []byte{0x04}
)

// pairKey encodes a canonical pair as two length-prefixed asset ids.
func pairKey(pair TokenPair) []byte {
	key := address.MustLengthPrefix([]byte(pair.A))
	return append(key, address.MustLengthPrefix([]byte(pair.B))...)
}

// PoolKey returns the store key of the pool record for pair
func PoolKey(pair TokenPair) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), pairKey(pair)...)
}

// ReserveKey returns the store key of the reserve of asset in pair
func ReserveKey(pair TokenPair, asset string) []byte {
	key := append(append([]byte{}, ReserveKeyPrefix...), pairKey(pair)...)
	return append(key, address.MustLengthPrefix([]byte(asset))...)
}

// SharesStorePrefix returns the prefix of the LP-share ledger for pair
func SharesStorePrefix(pair TokenPair) []byte {
	return append(append([]byte{}, SharesKeyPrefix...), pairKey(pair)...)
}

// PairFromPoolKey decodes the pair of a pool record key.
func PairFromPoolKey(key []byte) (TokenPair, error) {
	if len(key) < len(PoolKeyPrefix) {
		return TokenPair{}, fmt.Errorf("pool key too short: %X", key)
	}
	rest := key[len(PoolKeyPrefix):]

	a, rest, err := readLengthPrefixed(rest)
	if err != nil {
		return TokenPair{}, err
	}
	b, rest, err := readLengthPrefixed(rest)
	if err != nil {
		return TokenPair{}, err
	}
	if len(rest) != 0 {
		return TokenPair{}, fmt.Errorf("trailing bytes in pool key: %X", key)
	}
	return TokenPair{A: a, B: b}, nil
}

func readLengthPrefixed(bz []byte) (string, []byte, error) {
	if len(bz) == 0 {
		return "", nil, fmt.Errorf("missing length prefix")
	}
	n := int(bz[0])
	if len(bz) < 1+n {
		return "", nil, fmt.Errorf("length prefix %d exceeds key", n)
	}
	return string(bz[1 : 1+n]), bz[1+n:], nil
}
