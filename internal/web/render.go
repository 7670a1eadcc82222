package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/bjyadmin/installer/internal/readiness"
	"github.com/bjyadmin/installer/internal/ui"
	"github.com/bjyadmin/installer/internal/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

// pages maps each wizard step to its content template.
var pages = map[wizard.Step]string{
	wizard.StepAgreement:   "agreement.html",
	wizard.StepEnvironment: "test.html",
	wizard.StepCreateData:  "create.html",
	wizard.StepDone:        "done.html",
}

const notFoundPage = "notfound.html"

// renderer holds one parsed layout+content set per page.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	base, err := template.New(layoutTemplate).ParseFS(templateFS, "templates/"+layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &renderer{pages: make(map[string]*template.Template)}
	names := []string{notFoundPage}
	for _, name := range pages {
		names = append(names, name)
	}
	for _, name := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes page into a buffer so a failure never reaches the client
// as a partial page.
func (r *renderer) render(page string, data pageData) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("no template %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type stepView struct {
	Number int
	Title  string
	Active bool
}

type rowView struct {
	Name        string
	Requirement string
	Actual      string
	Pass        bool
	Marker      string
}

type pageData struct {
	Lang        string
	Msg         Messages
	Step        string
	Steps       []stepView
	EnvRows     []rowView
	DirRows     []rowView
	AllPassed   bool
	Blocked     bool
	PrevURL     string
	NextURL     string
	InstalledAt time.Time
}

func stepURL(s wizard.Step) string {
	return "./index.php?c=" + s.Query()
}

func nextURL(s wizard.Step) string {
	return stepURL(s) + "&a=next"
}

func newPageData(lang string, msg Messages, step wizard.Step) pageData {
	data := pageData{
		Lang: lang,
		Msg:  msg,
		Step: step.Query(),
	}
	for _, s := range wizard.Steps {
		data.Steps = append(data.Steps, stepView{
			Number: s.Number(),
			Title:  msg.StepTitles[s.Query()],
			Active: s == step,
		})
	}
	if prev, ok := step.Previous(); ok {
		data.PrevURL = stepURL(prev)
	}
	if _, ok := step.Next(); ok {
		data.NextURL = nextURL(step)
	}
	return data
}

// withReport fills the environment tables from report.
func (d pageData) withReport(report readiness.Report) pageData {
	d.AllPassed = report.AllPassed()
	for _, c := range report.Section(readiness.KindOS, readiness.KindVersion) {
		d.EnvRows = append(d.EnvRows, d.row(c))
	}
	for _, c := range report.Section(readiness.KindDirectory) {
		d.DirRows = append(d.DirRows, d.row(c))
	}
	return d
}

func (d pageData) row(c readiness.EnvironmentCheck) rowView {
	return rowView{
		Name:        d.localName(c),
		Requirement: d.localText(c.Requirement),
		Actual:      d.localText(c.Actual),
		Pass:        c.Passed(),
		Marker:      ui.Marker(c.Status),
	}
}

func (d pageData) localName(c readiness.EnvironmentCheck) string {
	switch c.Kind {
	case readiness.KindOS:
		return d.Msg.OSName
	case readiness.KindVersion:
		return d.Msg.VersionName
	default:
		return c.Name
	}
}

// localText translates the checker's fixed vocabulary; anything else
// (version strings, OS names) is shown verbatim.
func (d pageData) localText(s string) string {
	switch s {
	case "any":
		return d.Msg.Any
	case "writable":
		return d.Msg.Writable
	case "not writable":
		return d.Msg.NotWritable
	case "missing":
		return d.Msg.Missing
	case "unknown":
		return d.Msg.Unknown
	default:
		return s
	}
}
