package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"spacex-dashboard/services"
	"spacex-dashboard/utils"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Server serves the dashboard page and its JSON, SVG and CSV endpoints.
type Server struct {
	router    *chi.Mux
	dataset   *services.Dataset
	sessions  *services.Sessions
	logger    *utils.Logger
	templates *template.Template
}

// New creates a Server over the shared dataset and session registry.
func New(ds *services.Dataset, sessions *services.Sessions, logger *utils.Logger) (*Server, error) {
	templates, err := template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    chi.NewRouter(),
		dataset:   ds,
		sessions:  sessions,
		logger:    logger,
		templates: templates,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

var funcMap = template.FuncMap{
	"kg": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.New(s.logger.Writer(), "", log.LstdFlags),
		NoColor: true,
	}))
	s.router.Use(middleware.Recoverer)

	compressor := middleware.NewCompressor(5,
		"text/html", "text/csv", "application/json", "image/svg+xml")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	s.router.Use(compressor.Handler)
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/", s.handleIndex)
		r.Get("/charts/outcome.svg", s.handleOutcomeSVG)
		r.Get("/charts/scatter.svg", s.handleScatterSVG)

		r.Route("/api", func(r chi.Router) {
			r.Get("/layout", s.handleLayout)
			r.Get("/state", s.handleState)
			r.Post("/selection/site", s.handleSelectSite)
			r.Post("/selection/payload", s.handleSelectPayload)
			r.Get("/charts/outcome", s.handleOutcomeChart)
			r.Get("/charts/scatter", s.handleScatterChart)
			r.Get("/stats", s.handleStats)
			r.Get("/export.csv", s.handleExport)
		})
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("[server] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
