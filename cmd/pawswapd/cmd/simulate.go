package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cosmossdk.io/math"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/paw-chain/pawswap/app"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

const flagHold = "hold"

// Scenario is a list of calls replayed against a fresh app.
type Scenario struct {
	// FeeBps overrides the configured fee when set.
	FeeBps *uint32                  `yaml:"fee_bps"`
	Steps  []map[string]interface{} `yaml:"steps"`
}

// StepResult records the outcome of one scenario step.
type StepResult struct {
	Index  int    `yaml:"index"`
	Op     string `yaml:"op"`
	Result string `yaml:"result,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// SimulationReport is printed after a scenario ran.
type SimulationReport struct {
	RunID string           `yaml:"run_id"`
	Steps []StepResult     `yaml:"steps"`
	State app.GenesisState `yaml:"state"`
}

// SimulateCmd replays a YAML scenario against an in-process app.
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [scenario-file]",
		Short: "Replay a scenario of mints, pool operations and swaps",
		Long: `Replay a YAML scenario against a fresh engine and print every step result
and the final state. A step may carry "expect" (the exact result) or
"expect_error" (a substring of the error); a mismatch aborts the run.

Example scenario:

  steps:
    - {op: mint, asset: token-a, to: admin, amount: 100}
    - {op: mint, asset: token-b, to: admin, amount: 500}
    - {op: create, creator: admin, pair: [token-a, token-b], amount_a: 100, amount_b: 500, expect: "223"}
    - {op: swap, trader: admin, pair: [token-a, token-b], asset_in: token-a, amount_in: 10, min_out: 46, expect_error: slippage}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			bz, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read scenario: %w", err)
			}
			var scenario Scenario
			if err := yaml.Unmarshal(bz, &scenario); err != nil {
				return fmt.Errorf("failed to parse scenario: %w", err)
			}

			cfg := cctx.Config
			if scenario.FeeBps != nil {
				cfg.FeeBps = *scenario.FeeBps
			}
			db, err := cfg.OpenDB()
			if err != nil {
				return err
			}
			runID := uuid.NewString()
			a, err := app.New(cctx.Logger.With("run_id", runID), db, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			server := startMetricsServer(cctx.MetricsAddr, cctx.Logger)

			report, runErr := runScenario(a, scenario)
			report.RunID = runID
			if err := printYAML(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if runErr != nil {
				return runErr
			}

			if server != nil {
				hold, _ := cmd.Flags().GetDuration(flagHold)
				if hold > 0 {
					time.Sleep(hold)
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
			return nil
		},
	}

	cmd.Flags().Duration(flagHold, 0, "keep the metrics endpoint up this long after the run")

	return cmd
}

func runScenario(a *app.App, scenario Scenario) (SimulationReport, error) {
	var report SimulationReport
	for i, step := range scenario.Steps {
		op := cast.ToString(step["op"])
		result, err := runStep(a, op, step)

		res := StepResult{Index: i, Op: op, Result: result}
		if err != nil {
			res.Error = err.Error()
		}
		report.Steps = append(report.Steps, res)

		if err := checkExpectation(step, result, err); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i, op, err)
		}
	}

	state, err := a.ExportGenesis()
	if err != nil {
		return report, err
	}
	report.State = state

	if err := a.CheckInvariants(); err != nil {
		return report, err
	}
	return report, nil
}

func checkExpectation(step map[string]interface{}, result string, stepErr error) error {
	if want, ok := step["expect_error"]; ok {
		if stepErr == nil {
			return fmt.Errorf("expected error containing %q, got result %s", cast.ToString(want), result)
		}
		if !strings.Contains(stepErr.Error(), cast.ToString(want)) {
			return fmt.Errorf("expected error containing %q, got %v", cast.ToString(want), stepErr)
		}
		return nil
	}
	if stepErr != nil {
		return stepErr
	}
	if want, ok := step["expect"]; ok && cast.ToString(want) != result {
		return fmt.Errorf("expected %s, got %s", cast.ToString(want), result)
	}
	return nil
}

// stepArgs reads typed fields out of a loosely typed step.
type stepArgs map[string]interface{}

func (s stepArgs) str(key string) string {
	return cast.ToString(s[key])
}

func (s stepArgs) amount(key string) (math.Int, error) {
	raw, ok := s[key]
	if !ok {
		return math.ZeroInt(), nil
	}
	return parseAmount(key, raw)
}

func (s stepArgs) pair() (ammtypes.TokenPair, error) {
	assets, err := cast.ToStringSliceE(s["pair"])
	if err != nil || len(assets) != 2 {
		return ammtypes.TokenPair{}, fmt.Errorf("pair must list two assets, got %v", s["pair"])
	}
	return ammtypes.NewTokenPair(assets[0], assets[1]), nil
}

// pairOps are the scenario ops that act on a pool and need a pair.
var pairOps = map[string]bool{
	"create":           true,
	"swap":             true,
	"quote":            true,
	"token_balance":    true,
	"add_liquidity":    true,
	"remove_liquidity": true,
	"share_balance":    true,
	"transfer_shares":  true,
}

func runStep(a *app.App, op string, step map[string]interface{}) (string, error) {
	args := stepArgs(step)

	switch op {
	case "mint", "transfer":
		amount, err := args.amount("amount")
		if err != nil {
			return "", err
		}
		if op == "mint" {
			return "", a.Mint(args.str("asset"), args.str("to"), amount)
		}
		return "", a.Transfer(args.str("asset"), args.str("from"), args.str("to"), amount)

	case "balance":
		bal, found, err := a.Balance(args.str("asset"), args.str("holder"))
		return formatOptional(bal, found), err

	case "set_fee":
		return "", a.SetFee(cast.ToUint32(step["fee_bps"]))
	}

	if !pairOps[op] {
		return "", fmt.Errorf("unknown op %q", op)
	}
	pair, err := args.pair()
	if err != nil {
		return "", err
	}

	switch op {
	case "create":
		amounts, err := readAmounts(args, "amount_a", "amount_b", "min_shares")
		if err != nil {
			return "", err
		}
		shares, err := a.CreatePool(args.str("creator"), pair, amounts[0], amounts[1], amounts[2])
		return shares.String(), err

	case "swap":
		amounts, err := readAmounts(args, "amount_in", "min_out")
		if err != nil {
			return "", err
		}
		out, err := a.Swap(args.str("trader"), pair, args.str("asset_in"), amounts[0], amounts[1])
		return out.String(), err

	case "quote":
		amountIn, err := args.amount("amount_in")
		if err != nil {
			return "", err
		}
		out, err := a.Quote(pair, args.str("asset_in"), amountIn)
		return out.String(), err

	case "token_balance":
		reserve, err := a.TokenBalance(pair, args.str("asset"))
		return reserve.String(), err

	case "add_liquidity":
		amounts, err := readAmounts(args, "amount_a", "amount_b", "min_shares")
		if err != nil {
			return "", err
		}
		res, err := a.AddLiquidity(args.str("provider"), pair, amounts[0], amounts[1], amounts[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s %s", res.Shares, res.AmountA, res.AmountB), nil

	case "remove_liquidity":
		amounts, err := readAmounts(args, "shares", "min_a", "min_b")
		if err != nil {
			return "", err
		}
		res, err := a.RemoveLiquidity(args.str("provider"), pair, amounts[0], amounts[1], amounts[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", res.AmountA, res.AmountB), nil

	case "share_balance":
		bal, found, err := a.ShareBalance(pair, args.str("holder"))
		return formatOptional(bal, found), err

	case "transfer_shares":
		amount, err := args.amount("amount")
		if err != nil {
			return "", err
		}
		return "", a.TransferShares(pair, args.str("from"), args.str("to"), amount)

	default:
		return "", fmt.Errorf("unknown op %q", op)
	}
}

func readAmounts(args stepArgs, keys ...string) ([]math.Int, error) {
	amounts := make([]math.Int, len(keys))
	for i, key := range keys {
		amount, err := args.amount(key)
		if err != nil {
			return nil, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}

func formatOptional(amount math.Int, found bool) string {
	if !found {
		return "none"
	}
	return amount.String()
}
