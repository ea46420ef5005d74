// Package web serves the EduChain browser UI and a JSON view of the
// capability registry.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/content"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/logging"
	"github.com/shahil5z/QuizAndLessonPlanner/internal/registry"
)

//go:embed templates/*.html
var templateFS embed.FS

// Durations are the choices offered by the lesson planner.
var Durations = []string{"30 mins", "60 mins", "90 mins", "2 hours"}

const defaultDuration = "60 mins"

// Generator is the part of *generator.Generator the UI needs.
type Generator interface {
	Generate(ctx context.Context, req content.Request) generator.Result
}

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// GenerateTimeout bounds one generation. Zero means no extra bound.
	GenerateTimeout time.Duration
}

type Server struct {
	gen     Generator
	reg     *registry.Registry
	opts    Options
	logger  *logging.Logger
	page    *template.Template
	httpSrv *http.Server
}

// New builds a Server. reg may be nil, in which case the /api/tools routes
// are not mounted.
func New(gen Generator, reg *registry.Registry, opts Options, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{gen: gen, reg: reg, opts: opts, logger: logger, page: page}, nil
}

// Handler returns the routed handler wrapped in logging and recovery
// middleware.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.recoveryMiddleware, s.loggingMiddleware)

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/quiz", s.handleQuiz).Methods(http.MethodPost)
	router.HandleFunc("/lesson", s.handleLesson).Methods(http.MethodPost)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	if s.reg != nil {
		api := router.PathPrefix("/api").Subrouter()
		api.HandleFunc("/tools", s.handleListTools).Methods(http.MethodGet)
		api.HandleFunc("/tools/{name}", s.handleCallTool).Methods(http.MethodPost)
	}
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.opts.Addr)
		errc <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) generate(r *http.Request, req content.Request) generator.Result {
	ctx := r.Context()
	if s.opts.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerateTimeout)
		defer cancel()
	}
	return s.gen.Generate(ctx, req)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
