// Package server exposes notebook rendering over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	nb2html "github.com/alnah/go-nb2html"
	"github.com/alnah/go-nb2html/internal/assets"
)

// Query parameters that are not render settings.
const (
	paramStandalone = "standalone"
	paramTitle      = "title"
	paramStyle      = "style"
)

// Defaults applied when Options leave a field zero.
const (
	defaultMaxBodyBytes = 32 << 20
	defaultTimeout      = 30 * time.Second
)

// Options configures a Server.
type Options struct {
	Settings     nb2html.RenderSettings // base settings; query parameters override them
	ChromaStyle  string
	RawHTML      bool
	MaxBodyBytes int64
	Timeout      time.Duration      // per render
	Styles       assets.StyleLoader // resolves ?style=; nil uses the built-in styles
}

// Server is the HTTP API server for nb2html.
type Server struct {
	router   chi.Router
	opts     Options
	log      *slog.Logger
	metrics  *Metrics
	registry *prom.Registry
}

// New creates and configures the HTTP server.
// Base settings are validated up front so a bad configuration fails at startup.
func New(opts Options, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Styles == nil {
		opts.Styles = assets.NewEmbeddedLoader()
	}
	if _, err := nb2html.NewConverter(converterOptions(opts, opts.Settings, log)...); err != nil {
		return nil, err
	}

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		opts:     opts,
		log:      log,
		metrics:  NewMetrics(reg),
		registry: reg,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Post("/api/render", s.handleRender)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleRender renders the notebook in the request body.
// Query parameters other than standalone, title and style override render settings.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query()
	overrides := make(map[string]string, len(query))
	for key := range query {
		if key == paramStandalone || key == paramTitle || key == paramStyle {
			continue
		}
		overrides[key] = query.Get(key)
	}

	settings, err := s.opts.Settings.MergeStrings(overrides)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	standalone := false
	if raw := query.Get(paramStandalone); raw != "" {
		standalone, err = strconv.ParseBool(raw)
		if err != nil {
			jsonError(w, "standalone: invalid boolean", http.StatusBadRequest)
			return
		}
	}

	var css string
	if name := query.Get(paramStyle); name != "" {
		css, err = s.opts.Styles.LoadStyle(name)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	conv, err := nb2html.NewConverter(converterOptions(s.opts, settings, s.log)...)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.Timeout)
	defer cancel()

	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	source, err := nb2html.ReaderFetcher(body, "request body").Fetch(ctx)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := conv.Render(ctx, nb2html.Input{
		Source:     source,
		Standalone: standalone,
		Title:      query.Get(paramTitle),
		CSS:        css,
	})
	if err != nil {
		status, outcome := classify(err)
		s.metrics.observeRender(outcome, time.Since(start), len(source), 0)
		jsonError(w, err.Error(), status)
		return
	}
	s.metrics.observeRender(outcomeSuccess, time.Since(start), len(source), res.Skipped)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Notebook-Cells", strconv.Itoa(res.Cells))
	w.Header().Set("X-Notebook-Skipped", strconv.Itoa(res.Skipped))
	_, _ = w.Write([]byte(res.HTML))
}

// classify maps a render error to an HTTP status and a metrics outcome.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, nb2html.ErrEmptySource), errors.Is(err, nb2html.ErrNotebookParse):
		return http.StatusUnprocessableEntity, outcomeBadInput
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, outcomeFailed
	default:
		return http.StatusInternalServerError, outcomeFailed
	}
}

func converterOptions(opts Options, settings nb2html.RenderSettings, log *slog.Logger) []nb2html.Option {
	convOpts := []nb2html.Option{nb2html.WithSettings(settings), nb2html.WithLogger(log)}
	if opts.ChromaStyle != "" {
		convOpts = append(convOpts, nb2html.WithChromaStyle(opts.ChromaStyle))
	}
	if opts.RawHTML {
		convOpts = append(convOpts, nb2html.WithRawHTML())
	}
	return convOpts
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
