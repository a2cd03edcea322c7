package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
)

const (
	envPrefix = "PAWSWAP"

	flagHome            = "home"
	flagConfig          = "config"
	flagLogLevel        = "log-level"
	flagFeeBps          = "fee-bps"
	flagModuleAccount   = "module-account"
	flagDBBackend       = "db-backend"
	flagCheckInvariants = "check-invariants"
	flagMetricsAddr     = "metrics-addr"
	flagOutput          = "output"
)

// configKeys maps flags onto app.Config keys.
var configKeys = map[string]string{
	flagHome:            "home",
	flagFeeBps:          "fee_bps",
	flagModuleAccount:   "module_account",
	flagDBBackend:       "db_backend",
	flagCheckInvariants: "check_invariants",
}

type cliContextKey struct{}

// cliContext carries what PersistentPreRunE resolved to subcommands.
type cliContext struct {
	Config      app.Config
	Logger      log.Logger
	MetricsAddr string
	Output      string
}

func setCLIContext(cmd *cobra.Command, cctx *cliContext) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cctx))
}

func getCLIContext(cmd *cobra.Command) (*cliContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if cctx, ok := ctx.Value(cliContextKey{}).(*cliContext); ok {
			return cctx, nil
		}
	}
	return nil, errors.New("command context not initialised")
}

func addPersistentFlags(fs *pflag.FlagSet) {
	defaults := app.DefaultConfig()
	fs.String(flagHome, defaults.Home, "directory for config and data")
	fs.String(flagConfig, "", "config file (default <home>/config/pawswap.toml)")
	fs.String(flagLogLevel, "info", `log level, e.g. "debug" or "x/amm:debug,*:error"`)
	fs.Uint32(flagFeeBps, defaults.FeeBps, "swap fee in basis points for new pools")
	fs.String(flagModuleAccount, defaults.ModuleAccount, "ledger holder keeping pool custody")
	fs.String(flagDBBackend, defaults.DBBackend, "database backend: memdb, goleveldb or pebbledb")
	fs.Bool(flagCheckInvariants, defaults.CheckInvariants, "assert invariants before committing each call")
	fs.String(flagMetricsAddr, "", "serve Prometheus metrics on this address, e.g. :26660")
	fs.StringP(flagOutput, "o", "text", "output format: text or yaml")
}

// loadConfig resolves app.Config from, in increasing precedence: defaults,
// the config file, PAWSWAP_* environment variables and flags.
func loadConfig(v *viper.Viper, fs *pflag.FlagSet) (app.Config, error) {
	defaults := app.DefaultConfig()
	v.SetDefault("home", defaults.Home)
	v.SetDefault("fee_bps", defaults.FeeBps)
	v.SetDefault("module_account", defaults.ModuleAccount)
	v.SetDefault("db_backend", defaults.DBBackend)
	v.SetDefault("check_invariants", defaults.CheckInvariants)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for flag, key := range configKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return app.Config{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	configFile, _ := fs.GetString(flagConfig)
	if configFile == "" {
		configFile = filepath.Join(v.GetString("home"), "config", app.Name+".toml")
		if _, err := os.Stat(configFile); err != nil {
			configFile = ""
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return app.Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg app.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return app.Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}

func newLogger(level string) (log.Logger, error) {
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}
