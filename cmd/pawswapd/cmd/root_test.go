package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/paw-chain/pawswap/app"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append(args, "--"+flagHome, t.TempDir(), "--"+flagLogLevel, "error"))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigCmd_Defaults(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)

	var cfg app.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	defaults := app.DefaultConfig()
	require.Equal(t, defaults.FeeBps, cfg.FeeBps)
	require.Equal(t, defaults.ModuleAccount, cfg.ModuleAccount)
	require.Equal(t, defaults.DBBackend, cfg.DBBackend)
	require.True(t, cfg.CheckInvariants)
}

func TestConfigCmd_Precedence(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	configToml := `fee_bps = 30
module_account = "pool-custody"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "pawswap.toml"), []byte(configToml), 0o644))

	t.Setenv("PAWSWAP_MODULE_ACCOUNT", "env-custody")

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"config", "--home", home, "--check-invariants=false"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var cfg app.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &cfg))
	require.Equal(t, uint32(30), cfg.FeeBps, "file overrides default")
	require.Equal(t, "env-custody", cfg.ModuleAccount, "env overrides file")
	require.False(t, cfg.CheckInvariants, "flag overrides default")
	require.Equal(t, home, cfg.Home)
}

func TestRootCmd_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "fee too high", args: []string{"config", "--fee-bps", "10000"}},
		{name: "unknown backend", args: []string{"config", "--db-backend", "rocks"}},
		{name: "bad log level", args: []string{"config", "--log-level", "loud"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := NewRootCmd()
			cmd.SetOut(new(bytes.Buffer))
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs(append(tc.args, "--home", t.TempDir()))
			require.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("amount", 42)
	require.NoError(t, err)
	require.Equal(t, "42", amount.String())

	amount, err = parseAmount("amount", "123456789012345678901234567890")
	require.NoError(t, err)
	require.Equal(t, "123456789012345678901234567890", amount.String())

	_, err = parseAmount("amount", "-1")
	require.ErrorContains(t, err, "negative")

	_, err = parseAmount("amount", "1.5")
	require.ErrorContains(t, err, "not an integer")
}
