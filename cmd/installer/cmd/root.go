// Package cmd provides the CLI commands for the installer.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bjyadmin/installer/internal/config"
	"github.com/bjyadmin/installer/internal/logging"
	"github.com/bjyadmin/installer/internal/readiness"
	"github.com/bjyadmin/installer/pkg/version"
)

// Global flags
var (
	configDir      string
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the installer CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "installer",
		Short: "bjyadmin install wizard and environment check",
		Long: `installer checks whether a host can run the bjyadmin admin panel
and serves the web install wizard.

The environment check verifies the interpreter version and that the
application, upload, runtime, installer and configuration directories
are writable. The wizard refuses to continue past the check until every
row passes.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("installer version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configDir, "dir", ".", "Directory containing .installer.yaml")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.bjyadmin-installer/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func startLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	cfg.Level = "warn"
	if debugMode {
		cfg = logging.DebugConfig()
	}

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)

	if debugMode {
		slog.Info("Debug logging enabled",
			slog.String("log_file", cfg.FilePath),
			slog.String("version", version.Version))
	}
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// newChecker builds a readiness checker from the loaded configuration.
func newChecker(cfg *config.Config, logger *slog.Logger) (*readiness.Checker, error) {
	minimum, err := readiness.ParseVersion(cfg.Requirements.MinVersion)
	if err != nil {
		return nil, err
	}

	var source readiness.VersionSource
	if cfg.Runtime.Version != "" {
		source = readiness.StaticVersion(cfg.Runtime.Version)
	} else {
		source = readiness.InterpreterVersion{
			Binary:  cfg.Runtime.Binary,
			Timeout: cfg.RuntimeTimeout(),
		}
	}

	return readiness.New(cfg.Paths,
		readiness.WithVersionSource(source),
		readiness.WithMinimum(minimum),
		readiness.WithLogger(logger),
	), nil
}
