package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bjyadmin/installer/internal/config"
	"github.com/bjyadmin/installer/internal/logging"
	"github.com/bjyadmin/installer/internal/web"
	"github.com/bjyadmin/installer/internal/wizard"
)

func newServeCmd() *cobra.Command {
	var (
		addr  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web install wizard",
		Long: `Serve the install wizard over HTTP.

Open http://<addr>/ in a browser. The environment step re-runs every
check on each page view. Once the wizard finishes it writes install.lock
into the installer directory and every later visit lands on the final
page; use --reset to remove the lock and start over.`,
		Example: `  # Serve on the configured address
  installer serve

  # Serve on another port
  installer serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), addr, reset)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Remove install.lock before serving")

	return cmd
}

func runServe(parent context.Context, addr string, reset bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	// --debug already installed a file logger in the root pre-run.
	logger := slog.Default()
	if !debugMode {
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Server.LogLevel
		l, cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return err
		}
		defer cleanup()
		logger = l
	}

	lock := wizard.NewLock(cfg.Paths.Install)
	if reset {
		if err := lock.Clear(); err != nil {
			return err
		}
		logger.Info("install lock removed", "lock", lock.Path())
	}

	checker, err := newChecker(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(checker, lock,
		web.WithLogger(logger),
		web.WithLanguage(cfg.UI.Language))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, addr)
}
