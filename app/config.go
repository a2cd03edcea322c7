package app

import (
	"fmt"
	"os"
	"path/filepath"

	dbm "github.com/cosmos/cosmos-db"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

const (
	// Name is the application name, also used for the data directory.
	Name = "pawswap"
)

// DefaultNodeHome is the default home directory for the application.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, "."+Name)
}

// Config holds the settings the dispatcher is built from.
type Config struct {
	// FeeBps is the swap fee stamped on pools created from now on.
	FeeBps uint32 `mapstructure:"fee_bps" yaml:"fee_bps"`
	// ModuleAccount is the ledger holder that keeps pool custody.
	ModuleAccount string `mapstructure:"module_account" yaml:"module_account"`
	// DBBackend selects the cosmos-db backend: memdb, goleveldb or pebbledb.
	DBBackend string `mapstructure:"db_backend" yaml:"db_backend"`
	// Home is the directory holding on-disk databases.
	Home string `mapstructure:"home" yaml:"home"`
	// CheckInvariants runs every registered invariant before a call is
	// committed and rejects the call if one breaks.
	CheckInvariants bool `mapstructure:"check_invariants" yaml:"check_invariants"`
}

// DefaultConfig returns an in-memory configuration with the default fee.
func DefaultConfig() Config {
	return Config{
		FeeBps:          ammtypes.DefaultFeeBps,
		ModuleAccount:   ammtypes.DefaultModuleAccount,
		DBBackend:       string(dbm.MemDBBackend),
		Home:            DefaultNodeHome,
		CheckInvariants: true,
	}
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if err := ammtypes.NewParams(c.FeeBps).Validate(); err != nil {
		return err
	}
	if c.ModuleAccount == "" {
		return fmt.Errorf("module account cannot be empty")
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.MemDBBackend:
	case dbm.GoLevelDBBackend, dbm.PebbleDBBackend:
		if c.Home == "" {
			return fmt.Errorf("db backend %s needs a home directory", c.DBBackend)
		}
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	return nil
}

// OpenDB opens the database selected by the configuration.
func (c Config) OpenDB() (dbm.DB, error) {
	if dbm.BackendType(c.DBBackend) == dbm.MemDBBackend {
		return dbm.NewMemDB(), nil
	}
	dir := filepath.Join(c.Home, "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return dbm.NewDB(Name, dbm.BackendType(c.DBBackend), dir)
}
