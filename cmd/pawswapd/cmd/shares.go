package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

const (
	flagReserveA    = "reserve-a"
	flagReserveB    = "reserve-b"
	flagTotalShares = "total-shares"
)

// SharesReport is the result of pricing a deposit offline.
type SharesReport struct {
	Shares  math.Int `yaml:"shares"`
	AmountA math.Int `yaml:"amount_a"`
	AmountB math.Int `yaml:"amount_b"`
}

// SharesCmd prices a liquidity deposit. Without reserves it prices the first
// deposit of a pool.
func SharesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shares [amount-a] [amount-b]",
		Short: "Compute the LP shares minted for a deposit",
		Example: `  pawswapd shares 100 500
  pawswapd shares 10 50 --reserve-a 100 --reserve-b 500 --total-shares 223`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			amountA, err := parseAmount("amount-a", args[0])
			if err != nil {
				return err
			}
			amountB, err := parseAmount("amount-b", args[1])
			if err != nil {
				return err
			}

			pool := make(map[string]math.Int, 3)
			for _, name := range []string{flagReserveA, flagReserveB, flagTotalShares} {
				raw, _ := cmd.Flags().GetString(name)
				if pool[name], err = parseAmount(name, raw); err != nil {
					return err
				}
			}

			report, err := buildSharesReport(amountA, amountB, pool[flagReserveA], pool[flagReserveB], pool[flagTotalShares])
			if err != nil {
				return err
			}

			if cctx.Output == "yaml" {
				return printYAML(cmd.OutOrStdout(), report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shares: %s (pays %s / %s)\n", report.Shares, report.AmountA, report.AmountB)
			return nil
		},
	}

	cmd.Flags().String(flagReserveA, "0", "current reserve of the first asset")
	cmd.Flags().String(flagReserveB, "0", "current reserve of the second asset")
	cmd.Flags().String(flagTotalShares, "0", "LP shares outstanding")

	return cmd
}

func buildSharesReport(amountA, amountB, reserveA, reserveB, totalShares math.Int) (SharesReport, error) {
	shares, err := ammtypes.LiquidityShares(amountA, amountB, reserveA, reserveB, totalShares)
	if err != nil {
		return SharesReport{}, err
	}
	if totalShares.IsZero() {
		return SharesReport{Shares: shares, AmountA: amountA, AmountB: amountB}, nil
	}

	payA, payB, err := ammtypes.DepositAmounts(shares, reserveA, reserveB, totalShares)
	if err != nil {
		return SharesReport{}, err
	}
	return SharesReport{Shares: shares, AmountA: payA, AmountB: payB}, nil
}
