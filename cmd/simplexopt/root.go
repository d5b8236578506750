package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simplexopt/simplexopt/internal/logging"
)

var (
	logLevel string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "simplexopt",
	Short: "Derivative-free global optimization by simplex partitioning",
	Long: `simplexopt searches a bounded continuous domain for a global optimum
without gradients, recursively splitting the domain into simplices and
refining the most promising regions first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.NewLogger(&logging.Config{
			Level:  logLevel,
			Format: "console",
			Output: "stderr",
		})
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
