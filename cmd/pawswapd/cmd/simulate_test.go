package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const referenceScenario = `steps:
  - {op: mint, asset: token-a, to: admin, amount: 100}
  - {op: mint, asset: token-b, to: admin, amount: 500}
  - {op: mint, asset: token-a, to: trader, amount: 10}
  - {op: create, creator: admin, pair: [token-a, token-b], amount_a: 100, amount_b: 500, expect: "223"}
  - {op: create, creator: admin, pair: [token-b, token-a], amount_a: 1, amount_b: 1, expect_error: "already initialized"}
  - {op: quote, pair: [token-a, token-b], asset_in: token-a, amount_in: 10, expect: "45"}
  - {op: swap, trader: trader, pair: [token-a, token-b], asset_in: token-a, amount_in: 10, min_out: 46, expect_error: slippage}
  - {op: swap, trader: trader, pair: [token-a, token-b], asset_in: token-a, amount_in: 10, min_out: 45, expect: "45"}
  - {op: token_balance, pair: [token-a, token-b], asset: token-b, expect: "455"}
  - {op: balance, asset: token-b, holder: trader, expect: "45"}
  - {op: share_balance, pair: [token-a, token-b], holder: trader, expect: none}
  - {op: transfer_shares, pair: [token-a, token-b], from: admin, to: trader, amount: 23}
  - {op: remove_liquidity, provider: trader, pair: [token-a, token-b], shares: 23, expect: "11 46"}
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSimulateCmd_ReferenceScenario(t *testing.T) {
	out, err := execute(t, "simulate", writeScenario(t, referenceScenario))
	require.NoError(t, err)

	var report struct {
		RunID string       `yaml:"run_id"`
		Steps []StepResult `yaml:"steps"`
		State struct {
			AMM struct {
				Pools []struct {
					Pool struct {
						ReserveA    string `yaml:"reserve_a"`
						ReserveB    string `yaml:"reserve_b"`
						TotalShares string `yaml:"total_shares"`
					} `yaml:"pool"`
				} `yaml:"pools"`
			} `yaml:"amm"`
		} `yaml:"state"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))

	_, err = uuid.Parse(report.RunID)
	require.NoError(t, err)
	require.Len(t, report.Steps, 13)
	require.Contains(t, report.Steps[4].Error, "already initialized")
	require.Contains(t, report.Steps[6].Error, "slippage")

	require.Len(t, report.State.AMM.Pools, 1)
	pool := report.State.AMM.Pools[0].Pool
	require.Equal(t, "99", pool.ReserveA)
	require.Equal(t, "409", pool.ReserveB)
	require.Equal(t, "200", pool.TotalShares)
}

func TestSimulateCmd_FeeOverride(t *testing.T) {
	scenario := `fee_bps: 30
steps:
  - {op: mint, asset: token-a, to: admin, amount: 110}
  - {op: mint, asset: token-b, to: admin, amount: 500}
  - {op: create, creator: admin, pair: [token-a, token-b], amount_a: 100, amount_b: 500}
  - {op: swap, trader: admin, pair: [token-a, token-b], asset_in: token-a, amount_in: 10, expect: "41"}
  - {op: set_fee, fee_bps: 0}
  - {op: quote, pair: [token-a, token-b], asset_in: token-a, amount_in: 10, expect: "34"}
`
	// the pool keeps the fee it was created with
	_, err := execute(t, "simulate", writeScenario(t, scenario))
	require.NoError(t, err)
}

func TestSimulateCmd_FailedExpectation(t *testing.T) {
	scenario := `steps:
  - {op: mint, asset: token-a, to: admin, amount: 100}
  - {op: balance, asset: token-a, holder: admin, expect: "99"}
`
	out, err := execute(t, "simulate", writeScenario(t, scenario))
	require.ErrorContains(t, err, "step 1 (balance)")
	require.Contains(t, out, "steps:")
}

func TestSimulateCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		scenario string
		contains string
	}{
		{
			name:     "unknown op",
			scenario: "steps:\n  - {op: burn}\n",
			contains: "unknown op",
		},
		{
			name:     "unknown op with pair",
			scenario: "steps:\n  - {op: burn, pair: [token-a, token-b]}\n",
			contains: "unknown op",
		},
		{
			name:     "bad pair",
			scenario: "steps:\n  - {op: quote, pair: [token-a], asset_in: token-a, amount_in: 1}\n",
			contains: "two assets",
		},
		{
			name:     "negative amount",
			scenario: "steps:\n  - {op: mint, asset: token-a, to: admin, amount: -5}\n",
			contains: "negative",
		},
		{
			name:     "unexpected success",
			scenario: "steps:\n  - {op: mint, asset: token-a, to: admin, amount: 5, expect_error: invalid}\n",
			contains: "expected error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, "simulate", writeScenario(t, tc.scenario))
			require.ErrorContains(t, err, tc.contains)
		})
	}

	_, err := execute(t, "simulate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read scenario")
}
