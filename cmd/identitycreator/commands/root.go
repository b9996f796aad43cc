// Package commands implements the identitycreator command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chainsafe/vrsc-identity/pkg/config"
)

var (
	cfgPath  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "identitycreator",
		Short:         "Register VerusID identities through a node's RPC interface",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgPath == "" {
				cfg, err = config.Default()
			} else {
				cfg, err = config.Load(cfgPath)
			}
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}

			logger, err = config.NewLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(validateCmd(), registerCmd(), resumeCmd(), serveCmd(), migrateCmd(), tokenCmd())
	return root
}
