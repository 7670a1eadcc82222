package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bjyadmin/installer/internal/config"
	"github.com/bjyadmin/installer/internal/readiness"
	"github.com/bjyadmin/installer/internal/ui"
	"github.com/bjyadmin/installer/internal/wizard"
)

func newCheckCmd() *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether this host can run the admin panel",
		Long: `Run the environment check of the install wizard.

Checks:
  - Operating system (informational)
  - Interpreter version (5.3 minimum by default)
  - Write permission on the application root, Public/Upload, Runtime,
    Public/install and Admin/Common/Conf

Nothing is written while checking. The command exits non-zero when any
check fails, which is when the wizard would refuse to continue.`,
		Example: `  # Run the check
  installer check

  # Show why a row failed
  installer check --verbose

  # JSON output for scripting
  installer check --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, verbose, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show failure details")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// checkOutput is the JSON shape of a readiness report.
type checkOutput struct {
	AllPassed bool                         `json:"all_passed"`
	Summary   string                       `json:"summary"`
	Passed    int                          `json:"passed"`
	Total     int                          `json:"total"`
	Checks    []readiness.EnvironmentCheck `json:"checks"`
}

func runCheck(cmd *cobra.Command, verbose, jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	checker, err := newChecker(cfg, slog.Default())
	if err != nil {
		return err
	}
	report := checker.Run(ctx)

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(checkOutput{
			AllPassed: report.AllPassed(),
			Summary:   report.Summary(),
			Passed:    report.PassCount(),
			Total:     report.Total(),
			Checks:    report.Checks,
		}); err != nil {
			return err
		}
	} else {
		styles := ui.GetStyles(!ui.UseColor(out))
		ui.NewReportRenderer(out, styles, verbose).Render(report)
	}

	_, err = wizard.Advance(wizard.StepEnvironment, report)
	return err
}
