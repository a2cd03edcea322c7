package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command for pawswapd.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "pawswapd",
		Short: "PAW constant-product AMM engine",
		Long: `pawswapd prices constant-product pool operations offline and replays
swap and liquidity scenarios against an in-process AMM engine.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			flags := cmd.Flags()
			cfg, err := loadConfig(v, flags)
			if err != nil {
				return err
			}

			level, _ := flags.GetString(flagLogLevel)
			logger, err := newLogger(level)
			if err != nil {
				return err
			}

			metricsAddr, _ := flags.GetString(flagMetricsAddr)
			output, _ := flags.GetString(flagOutput)

			setCLIContext(cmd, &cliContext{
				Config:      cfg,
				Logger:      logger,
				MetricsAddr: metricsAddr,
				Output:      output,
			})
			return nil
		},
	}

	addPersistentFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		QuoteCmd(),
		SharesCmd(),
		SimulateCmd(),
		ConfigCmd(),
	)

	return rootCmd
}

// ConfigCmd prints the resolved configuration.
func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cctx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), cctx.Config)
		},
	}
}
