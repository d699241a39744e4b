// Package cmd contains all CLI commands for kolikctl
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kolikctl/internal/config"
	"kolikctl/utils/logger"
	otelutil "kolikctl/utils/otel"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kolikctl",
	Short: "Kolik grocery price-comparison CLI",
	Long: `kolikctl is the command-line client for the Kolik grocery
price-comparison service.

It signs you in against the Kolik backend (including one-time-code
verification), keeps your session between runs, and gives you access to
the protected catalog and basket comparison.

Example usage:
  kolikctl login                  # Sign in (prompts for credentials)
  kolikctl whoami                 # Show the signed-in account
  kolikctl products               # Browse the product catalog
  kolikctl best-deal 3 17 42      # Compare basket totals across vendors
  kolikctl logout                 # Sign out`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .kolikctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	if verbose || cfg.Logging.Level == "debug" {
		logLevel = slog.LevelDebug
	}

	if cfg.Logging.Format == "json" || otelutil.ConfigFromEnv().Enabled {
		logger.Init(otelutil.ConfigFromEnv().Enabled)
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})))
	}

	slog.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"jar_path", cfg.Session.JarPath,
	)

	return nil
}
