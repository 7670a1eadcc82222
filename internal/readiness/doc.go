// Package readiness evaluates whether the host can run the bjyadmin install.
//
// The package checks, in display order:
//   - Operating system (informational, always passes)
//   - Interpreter version (minimum 5.3 by default)
//   - Writability of the base, upload, runtime, installer and configuration
//     directories
//
// Every probe is read-only. A Report is built fresh on each call and the
// install gate consumes Report.AllPassed:
//
//	checker := readiness.New(cfg.Paths, readiness.WithVersionSource(src))
//	report := checker.Run(ctx)
//	if !report.AllPassed() {
//	    // Block the wizard
//	}
package readiness
