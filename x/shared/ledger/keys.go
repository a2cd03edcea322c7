package ledger

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// BalanceKeyPrefix is the prefix for holder balances
	BalanceKeyPrefix = []byte{0x01}

	// SupplyKey holds the total supply of the ledger
	SupplyKey = []byte{0x02}
)

// BalanceKey returns the store key for a holder balance. Holders are length
// prefixed so that no holder key is a prefix of another.
func BalanceKey(holder string) ([]byte, error) {
	if holder == "" {
		return nil, ErrInvalidHolder.Wrap("holder cannot be empty")
	}
	prefixed, err := address.LengthPrefix([]byte(holder))
	if err != nil {
		return nil, ErrInvalidHolder.Wrapf("holder %q: %v", holder, err)
	}
	key := make([]byte, 0, len(BalanceKeyPrefix)+len(prefixed))
	key = append(key, BalanceKeyPrefix...)
	return append(key, prefixed...), nil
}

// holderFromBalanceKey strips the prefix and length byte from a balance key.
func holderFromBalanceKey(key []byte) string {
	if len(key) < len(BalanceKeyPrefix)+1 {
		return ""
	}
	return string(key[len(BalanceKeyPrefix)+1:])
}
