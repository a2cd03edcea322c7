package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

// priceImpactPrecision is the number of decimal places reported for prices.
const priceImpactPrecision = 6

// QuoteReport is the result of pricing a single swap offline.
type QuoteReport struct {
	ReserveIn      math.Int `yaml:"reserve_in"`
	ReserveOut     math.Int `yaml:"reserve_out"`
	AmountIn       math.Int `yaml:"amount_in"`
	AmountOut      math.Int `yaml:"amount_out"`
	FeeBps         uint32   `yaml:"fee_bps"`
	SpotPrice      string   `yaml:"spot_price"`
	ExecutionPrice string   `yaml:"execution_price"`
	PriceImpactPct string   `yaml:"price_impact_pct"`
}

// QuoteCmd prices a swap against explicit reserves.
func QuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote [reserve-in] [reserve-out] [amount-in]",
		Short: "Quote a constant-product swap against the given reserves",
		Example: `  pawswapd quote 100 500 10
  pawswapd quote 100 500 10 --fee-bps 30 -o yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			reserveIn, err := parseAmount("reserve-in", args[0])
			if err != nil {
				return err
			}
			reserveOut, err := parseAmount("reserve-out", args[1])
			if err != nil {
				return err
			}
			amountIn, err := parseAmount("amount-in", args[2])
			if err != nil {
				return err
			}

			report, err := buildQuoteReport(reserveIn, reserveOut, amountIn, cctx.Config.FeeBps)
			if err != nil {
				return err
			}

			if cctx.Output == "yaml" {
				return printYAML(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "amount out:      %s\n", report.AmountOut)
			fmt.Fprintf(out, "spot price:      %s\n", report.SpotPrice)
			fmt.Fprintf(out, "execution price: %s\n", report.ExecutionPrice)
			fmt.Fprintf(out, "price impact:    %s%%\n", report.PriceImpactPct)
			return nil
		},
	}
}

func buildQuoteReport(reserveIn, reserveOut, amountIn math.Int, feeBps uint32) (QuoteReport, error) {
	amountOut, err := ammtypes.QuoteSwap(reserveIn, reserveOut, amountIn, feeBps)
	if err != nil {
		return QuoteReport{}, err
	}

	spot := toDecimal(reserveOut).Div(toDecimal(reserveIn))
	execution := toDecimal(amountOut).Div(toDecimal(amountIn))
	impact := decimal.Zero
	if spot.IsPositive() {
		impact = spot.Sub(execution).Div(spot).Mul(decimal.NewFromInt(100))
	}

	return QuoteReport{
		ReserveIn:      reserveIn,
		ReserveOut:     reserveOut,
		AmountIn:       amountIn,
		AmountOut:      amountOut,
		FeeBps:         feeBps,
		SpotPrice:      spot.StringFixed(priceImpactPrecision),
		ExecutionPrice: execution.StringFixed(priceImpactPrecision),
		PriceImpactPct: impact.StringFixed(2),
	}, nil
}

func toDecimal(amount math.Int) decimal.Decimal {
	return decimal.NewFromBigInt(amount.BigInt(), 0)
}
