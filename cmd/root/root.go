// Package root contains the root command for the application
package root

import (
	"fmt"

	"expense-view/internal/config"
	"expense-view/internal/container"
	"expense-view/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Command annotations read by the root pre-run hook.
const (
	// AnnotationLogToFile sends logs to a file even when log.file is unset.
	AnnotationLogToFile = "expense-view/log-to-file"
	// AnnotationSkipAuth skips the automatic login.
	AnnotationSkipAuth = "expense-view/skip-auth"
)

var (
	// Log is the shared logger instance used before the container exists
	Log = logrus.New()

	// AppContainer holds the wired dependencies once the pre-run hook has run
	AppContainer *container.Container

	// ConfigFile overrides the config file search path
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-view",
		Short: "Browse, filter and manage transactions from the expense backend.",
		Long: `expense-view is a terminal client for the expense tracker backend.
It lists transactions grouped by month with search, year, category, type,
essential and amount filters, manages categories, cash positions and learned
rules, imports bank CSV exports, and opens an interactive view with "tui".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig(ConfigFile, cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Annotations[AnnotationLogToFile] == "true" && cfg.Log.File == "" {
				cfg.Log.File = config.DefaultLogFile()
			}

			AppContainer, err = container.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}

			if cmd.Annotations[AnnotationSkipAuth] != "true" {
				if err := AppContainer.Authenticate(cmd.Context()); err != nil {
					return fmt.Errorf("login failed: %w", err)
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				Log.Warnf("Failed to close resources: %v", err)
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in ., .expense-view or ~/.expense-view)")
	flags.String("server", "", "Backend base URL")
	flags.Int("timeout", 0, "Request timeout in seconds (0 for none)")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
	flags.String("log-file", "", "Write logs to this file instead of stderr")
	flags.String("csv-delimiter", "", "Delimiter for CSV output")
	flags.String("currency", "", "Currency symbol used when printing amounts")
	flags.String("presets-file", "", "File holding saved filter presets")
}

// GetContainer returns the initialized container or an error when the
// pre-run hook has not run.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}

// GetLogger returns the container's logger, or an adapter over Log before initialization.
func GetLogger() logging.Logger {
	if AppContainer != nil {
		return AppContainer.GetLogger()
	}
	return logging.NewLogrusAdapterFromLogger(Log)
}
