package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/bjyadmin/installer/internal/errors"
	"github.com/bjyadmin/installer/internal/readiness"
	"github.com/bjyadmin/installer/internal/wizard"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/index.php?c="+wizard.StepAgreement.Query(), http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type readinessResponse struct {
	AllPassed bool                         `json:"all_passed"`
	Summary   string                       `json:"summary"`
	Passed    int                          `json:"passed"`
	Total     int                          `json:"total"`
	Checks    []readiness.EnvironmentCheck `json:"checks"`
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	report := s.checker.Run(r.Context())
	s.writeJSON(w, http.StatusOK, readinessResponse{
		AllPassed: report.AllPassed(),
		Summary:   report.Summary(),
		Passed:    report.PassCount(),
		Total:     report.Total(),
		Checks:    report.Checks,
	})
}

// handleStep serves /index.php?c=<step>[&a=next]. Gated steps re-run the
// checks and send the operator back to the environment page when any fails,
// so a direct link cannot skip the gate.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	step, err := wizard.ParseStep(q.Get("c"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	next := q.Get("a") == "next"
	if next && r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	installed := s.lock.Installed()
	if installed && step != wizard.StepDone {
		http.Redirect(w, r, stepURL(wizard.StepDone), http.StatusFound)
		return
	}

	var report readiness.Report
	if !installed && step >= wizard.StepEnvironment {
		report = s.checker.Run(r.Context())
	}

	if !installed && step.Gated() {
		if !report.AllPassed() {
			s.logger.Info("wizard gate blocked",
				slog.String("step", step.Query()),
				slog.Int("passed", report.PassCount()),
				slog.Int("total", report.Total()))
			http.Redirect(w, r, stepURL(wizard.StepEnvironment), http.StatusFound)
			return
		}
		if step == wizard.StepDone {
			http.Redirect(w, r, stepURL(wizard.StepCreateData), http.StatusFound)
			return
		}
	}

	if next {
		s.advance(w, r, step, report)
		return
	}
	s.renderStep(w, step, report)
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request, step wizard.Step, report readiness.Report) {
	next, err := wizard.Advance(step, report)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeGateBlocked) {
			s.logger.Info("wizard gate blocked", apperrors.FormatForLog(err)...)
			s.renderPage(w, http.StatusConflict, pages[wizard.StepEnvironment],
				newPageData(s.lang, s.msg, wizard.StepEnvironment).withReport(report), true)
			return
		}
		s.handleNotFound(w, r)
		return
	}

	if next == wizard.StepDone {
		if err := s.lock.MarkInstalled(); err != nil && !apperrors.HasCode(err, apperrors.ErrCodeAlreadyInstalled) {
			s.serverError(w, err)
			return
		}
		s.logger.Info("install marked complete", slog.String("lock", s.lock.Path()))
	}
	http.Redirect(w, r, stepURL(next), http.StatusFound)
}

func (s *Server) renderStep(w http.ResponseWriter, step wizard.Step, report readiness.Report) {
	data := newPageData(s.lang, s.msg, step)
	switch step {
	case wizard.StepEnvironment:
		data = data.withReport(report)
	case wizard.StepDone:
		data.InstalledAt = s.lock.InstalledAt()
	}
	s.renderPage(w, http.StatusOK, pages[step], data, false)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data pageData, blocked bool) {
	data.Blocked = blocked
	body, err := s.renderer.render(page, data)
	if err != nil {
		s.serverError(w, apperrors.New(apperrors.ErrCodeRenderFailed, "failed to render page", err).
			WithDetail("page", page))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	s.write(w, body)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := newPageData(s.lang, s.msg, wizard.StepAgreement)
	data.PrevURL, data.NextURL = "", ""
	for i := range data.Steps {
		data.Steps[i].Active = false
	}
	body, err := s.renderer.render(notFoundPage, data)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	s.write(w, body)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", apperrors.FormatForLog(err)...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.serverError(w, apperrors.InternalError("failed to encode response", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	s.write(w, body)
}

// write sends body, logging client disconnects as send failures.
func (s *Server) write(w http.ResponseWriter, body []byte) {
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("response write failed",
			slog.String("callback", apperrors.SendFail.String()),
			slog.Int("code", int(apperrors.SendFail)),
			slog.String("error", err.Error()))
	}
}
