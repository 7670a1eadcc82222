// Package web serves the install wizard as HTML pages.
//
// The environment step renders the readiness report and gates the
// transition to data creation on Report.AllPassed. The gate is enforced
// server-side; the page's script only mirrors it.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/bjyadmin/installer/internal/errors"
	"github.com/bjyadmin/installer/internal/readiness"
	"github.com/bjyadmin/installer/internal/wizard"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Evaluator produces a fresh readiness report.
// *readiness.Checker satisfies it.
type Evaluator interface {
	Run(ctx context.Context) readiness.Report
}

// Server renders the wizard.
type Server struct {
	checker  Evaluator
	lock     *wizard.Lock
	logger   *slog.Logger
	lang     string
	msg      Messages
	renderer *renderer
	router   *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithLanguage selects the message bundle ("zh" or "en").
func WithLanguage(lang string) Option {
	return func(s *Server) {
		s.lang = lang
	}
}

// NewServer creates a Server that evaluates checker on each environment
// page view and records completion in lock.
func NewServer(checker Evaluator, lock *wizard.Lock, opts ...Option) (*Server, error) {
	s := &Server{
		checker: checker,
		lock:    lock,
		logger:  slog.Default(),
		lang:    "zh",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lang = strings.ToLower(s.lang)
	if _, ok := bundles[s.lang]; !ok {
		s.lang = "zh"
	}
	s.msg = MessagesFor(s.lang)

	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	s.renderer = r
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(s.logger))

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/index.php", s.handleStep).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/api/readiness", s.handleReadiness).Methods(http.MethodGet)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.NotFoundHandler = requestLogger(s.logger)(http.HandlerFunc(s.handleNotFound))
	return r
}

// Handler returns the HTTP handler for the wizard.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("wizard server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("wizard server stopped",
				slog.String("callback", apperrors.ConnectFail.String()),
				slog.Int("code", int(apperrors.ConnectFail)),
				slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down wizard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
