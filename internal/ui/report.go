package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjyadmin/installer/internal/readiness"
)

// ReportRenderer prints a readiness report as two aligned tables.
type ReportRenderer struct {
	out     io.Writer
	styles  Styles
	verbose bool
}

// NewReportRenderer creates a renderer writing to out.
func NewReportRenderer(out io.Writer, styles Styles, verbose bool) *ReportRenderer {
	return &ReportRenderer{out: out, styles: styles, verbose: verbose}
}

var columns = []string{"CHECK", "REQUIRED", "CURRENT", "OK"}

// Render writes the environment table, the directory table and the gate
// verdict.
func (r *ReportRenderer) Render(report readiness.Report) {
	_, _ = fmt.Fprintln(r.out, r.styles.Title.Render("bjyadmin environment check"))
	_, _ = fmt.Fprintln(r.out)

	r.table("Environment", report.Section(readiness.KindOS, readiness.KindVersion))
	_, _ = fmt.Fprintln(r.out)
	r.table("Directory permissions", report.Section(readiness.KindDirectory))
	_, _ = fmt.Fprintln(r.out)

	verdict := fmt.Sprintf("%d/%d checks passed", report.PassCount(), report.Total())
	if report.AllPassed() {
		_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.Pass.Render("READY"), verdict)
		return
	}
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.styles.Fail.Render("BLOCKED"), verdict)
}

func (r *ReportRenderer) table(title string, checks []readiness.EnvironmentCheck) {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, []string{c.Name, c.Requirement, c.Actual, Marker(c.Status)})
	}

	widths := make([]int, len(columns))
	for i, h := range columns {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	_, _ = fmt.Fprintln(r.out, r.styles.Header.Render(title))

	header := make([]string, len(columns))
	for i, h := range columns {
		header[i] = pad(h, widths[i])
	}
	_, _ = fmt.Fprintln(r.out, "  "+r.styles.Header.Render(strings.Join(header, "  ")))

	total := 0
	for _, w := range widths {
		total += w
	}
	_, _ = fmt.Fprintln(r.out, "  "+r.styles.Rule.Render(strings.Repeat("─", total+2*(len(widths)-1))))

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, widths[j])
		}
		cells[3] = r.statusStyle(checks[i].Status).Render(cells[3])
		_, _ = fmt.Fprintln(r.out, "  "+strings.Join(cells, "  "))
		if r.verbose && checks[i].Detail != "" {
			_, _ = fmt.Fprintln(r.out, "    "+r.styles.Dim.Render(checks[i].Detail))
		}
	}
}

func (r *ReportRenderer) statusStyle(s readiness.Status) lipgloss.Style {
	switch s {
	case readiness.StatusPass:
		return r.styles.Pass
	case readiness.StatusMissing:
		return r.styles.Missing
	default:
		return r.styles.Fail
	}
}

// Marker returns the pass/fail glyph shown in the OK column.
func Marker(s readiness.Status) string {
	if s == readiness.StatusPass {
		return "√"
	}
	return "×"
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
