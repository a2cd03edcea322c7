package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal   *prometheus.CounterVec
	SwapVolume   *prometheus.CounterVec
	SwapLatency  prometheus.Histogram
	SwapSlippage prometheus.Histogram

	// Liquidity metrics
	PoolsCreated     prometheus.Counter
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	LPShareSupply    *prometheus.GaugeVec

	// Safety metrics
	InvariantViolations prometheus.Counter
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps by outcome",
				},
				[]string{"pair", "asset_in", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap volume in base units",
				},
				[]string{"pair", "asset"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapSlippage: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "swap_slippage_shortfall_percent",
					Help:      "How far below the requested minimum a rejected swap quoted",
					Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 50.0},
				},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pair", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pair", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pair", "asset"},
			),
			LPShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "lp_share_supply",
					Help:      "Outstanding LP shares per pool",
				},
				[]string{"pair"},
			),
			InvariantViolations: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "amm",
					Name:      "invariant_violations_total",
					Help:      "Swaps aborted because the constant product decreased",
				},
			),
		}
	})
	return ammMetrics
}

// toFloat64 converts an amount for metric reporting. Precision loss is fine
// here; amounts beyond float range saturate.
func toFloat64(amount math.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
