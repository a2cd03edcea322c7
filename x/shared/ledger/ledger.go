// Package ledger implements a store-backed decimal balance ledger.
//
// A Ledger keeps arbitrary-precision, non-negative balances keyed by holder
// together with the total supply. It is used by the token module (one ledger
// per asset) and by the AMM module (one LP-share ledger per pool). Callers
// scope a ledger by handing it a prefix store.
//
// A holder that never received a balance is absent, which is different from
// a holder whose balance was spent down to zero.
package ledger

import (
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
)

// Balance is a single holder entry of a ledger.
type Balance struct {
	Holder string   `json:"holder" yaml:"holder"`
	Amount math.Int `json:"amount" yaml:"amount"`
}

// Ledger is a decimal ledger over a KV store.
type Ledger struct {
	store storetypes.KVStore
}

// New returns a ledger reading and writing the given store.
func New(store storetypes.KVStore) Ledger {
	return Ledger{store: store}
}

// Balance returns the balance of holder and whether the holder has an entry.
func (l Ledger) Balance(holder string) (math.Int, bool) {
	key, err := BalanceKey(holder)
	if err != nil {
		return math.ZeroInt(), false
	}
	bz := l.store.Get(key)
	if bz == nil {
		return math.ZeroInt(), false
	}
	return mustUnmarshalInt(bz), true
}

// TotalSupply returns the sum of all balances.
func (l Ledger) TotalSupply() math.Int {
	bz := l.store.Get(SupplyKey)
	if bz == nil {
		return math.ZeroInt()
	}
	return mustUnmarshalInt(bz)
}

// Transfer moves amount from one holder to another. Supply is unchanged.
func (l Ledger) Transfer(from, to string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	fromKey, err := BalanceKey(from)
	if err != nil {
		return err
	}
	toKey, err := BalanceKey(to)
	if err != nil {
		return err
	}

	fromBal, err := l.debited(from, amount)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	toBal, err := l.credited(to, amount)
	if err != nil {
		return err
	}

	l.set(fromKey, fromBal)
	l.set(toKey, toBal)
	return nil
}

// Mint credits amount to holder and raises the total supply.
func (l Ledger) Mint(to string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	key, err := BalanceKey(to)
	if err != nil {
		return err
	}
	bal, err := l.credited(to, amount)
	if err != nil {
		return err
	}
	supply, err := l.TotalSupply().SafeAdd(amount)
	if err != nil {
		return ErrOverflow.Wrapf("total supply + %s: %v", amount, err)
	}

	l.set(key, bal)
	l.set(SupplyKey, supply)
	return nil
}

// Burn debits amount from holder and lowers the total supply.
func (l Ledger) Burn(from string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	key, err := BalanceKey(from)
	if err != nil {
		return err
	}
	bal, err := l.debited(from, amount)
	if err != nil {
		return err
	}
	supply, err := l.TotalSupply().SafeSub(amount)
	if err != nil || supply.IsNegative() {
		return ErrUnderflow.Wrapf("total supply %s - %s", l.TotalSupply(), amount)
	}

	l.set(key, bal)
	l.set(SupplyKey, supply)
	return nil
}

// Import restores a holder entry from exported state and adds it to the
// total supply. Zero balances are kept so absent and spent-down holders
// survive a round trip.
func (l Ledger) Import(entry Balance) error {
	if entry.Amount.IsNil() || entry.Amount.IsNegative() {
		return ErrInvalidAmount.Wrapf("imported balance of %s must not be negative", entry.Holder)
	}
	key, err := BalanceKey(entry.Holder)
	if err != nil {
		return err
	}
	bal, err := l.credited(entry.Holder, entry.Amount)
	if err != nil {
		return err
	}
	supply, err := l.TotalSupply().SafeAdd(entry.Amount)
	if err != nil {
		return ErrOverflow.Wrapf("total supply + %s: %v", entry.Amount, err)
	}

	l.set(key, bal)
	l.set(SupplyKey, supply)
	return nil
}

// IterateBalances calls cb for every holder entry in key order until cb
// returns true.
func (l Ledger) IterateBalances(cb func(Balance) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(l.store, BalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		entry := Balance{
			Holder: holderFromBalanceKey(iterator.Key()),
			Amount: mustUnmarshalInt(iterator.Value()),
		}
		if cb(entry) {
			break
		}
	}
}

// Balances returns every holder entry, including zero balances.
func (l Ledger) Balances() []Balance {
	var balances []Balance
	l.IterateBalances(func(b Balance) bool {
		balances = append(balances, b)
		return false
	})
	return balances
}

func (l Ledger) debited(holder string, amount math.Int) (math.Int, error) {
	bal, found := l.Balance(holder)
	if !found || bal.LT(amount) {
		return math.Int{}, ErrInsufficientFunds.Wrapf("%s has %s, needs %s", holder, bal, amount)
	}
	next, err := bal.SafeSub(amount)
	if err != nil {
		return math.Int{}, ErrUnderflow.Wrapf("%s - %s: %v", bal, amount, err)
	}
	return next, nil
}

func (l Ledger) credited(holder string, amount math.Int) (math.Int, error) {
	bal, _ := l.Balance(holder)
	next, err := bal.SafeAdd(amount)
	if err != nil {
		return math.Int{}, ErrOverflow.Wrapf("%s + %s: %v", bal, amount, err)
	}
	return next, nil
}

func (l Ledger) set(key []byte, amount math.Int) {
	bz, err := amount.Marshal()
	if err != nil {
		panic(fmt.Sprintf("ledger: marshal amount %s: %v", amount, err))
	}
	l.store.Set(key, bz)
}

func validateAmount(amount math.Int) error {
	if amount.IsNil() {
		return ErrInvalidAmount.Wrap("amount cannot be nil")
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount.Wrapf("amount must be positive, got %s", amount)
	}
	return nil
}

func mustUnmarshalInt(bz []byte) math.Int {
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(fmt.Sprintf("ledger: corrupt amount %X: %v", bz, err))
	}
	return amount
}
