package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/app"
	"github.com/kailas-cloud/nearby/internal/config"
	logpkg "github.com/kailas-cloud/nearby/internal/logger"
	"github.com/kailas-cloud/nearby/internal/metrics"
)

var (
	envName  string
	logLevel string
	noColor  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "nearbyctl",
	Short:         "Search a place and list what is nearby",
	Long:          `nearbyctl resolves a place query, then lists the venues around it, using the same providers as the nearby server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", config.GetEnv(), "config environment (config/<env>.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		return err
	}
	return nil
}

// buildApp loads configuration and assembles the object graph.
func buildApp() (*app.App, *zap.Logger, error) {
	cfg, err := config.Load(envName)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(envName, logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	metrics.RegisterProviderMetrics()

	a, err := app.Build(&cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build app: %w", err)
	}
	return a, logger, nil
}
