// Package server exposes the skyline renderer over HTTP.
//
// Routes:
//
//	GET /healthz                        liveness and build version
//	GET /presets                        the catalog as JSON
//	GET /presets/{name}?format=         one preset on its own canvas
//	GET /skyline?seed=&format=&width=&height=&scale=&font_size=
//
// Identical concurrent /skyline and /presets/{name} requests share one render.
// Errors are JSON bodies {"code": ..., "message": ...} with a status derived
// from the error code.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/scene"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// RenderIDHeader carries the render ID of the response body.
const RenderIDHeader = "X-Render-ID"

// Server serves rendered skylines.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	flight singleflight.Group
	router chi.Router
}

// New creates a server rendering through runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observe)
	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handleListPresets)
	r.Get("/presets/{name}", s.handlePreset)
	r.Get("/skyline", s.handleSkyline)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and returns ctx.Err().
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil {
		return err
	}
	return ctx.Err()
}

// observe reports every request to the HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.UserAgent())
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

type presetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	catalog := building.Catalog()
	out := make([]presetInfo, len(catalog))
	for i, p := range catalog {
		out[i] = presetInfo{Name: p.Name, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePresetName(name); err != nil {
		s.writeError(w, err)
		return
	}
	format, err := formatParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}}
	key := fmt.Sprintf("preset|%s|%s", name, format)
	s.render(w, r, key, format, func(ctx context.Context) (*pipeline.Result, error) {
		return s.runner.RenderPreset(ctx, name, opts)
	})
}

func (s *Server) handleSkyline(w http.ResponseWriter, r *http.Request) {
	opts, err := skylineOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	key := fmt.Sprintf("skyline|%d|%d|%d|%s|%d|%g",
		*opts.Seed, opts.Config.Width, opts.Config.Height, format, opts.Scale, opts.FontSize)
	s.render(w, r, key, format, func(ctx context.Context) (*pipeline.Result, error) {
		return s.runner.Execute(ctx, opts)
	})
}

// render runs fn once per key among concurrent callers and writes the
// artifact for format.
func (s *Server) render(w http.ResponseWriter, r *http.Request, key, format string,
	fn func(context.Context) (*pipeline.Result, error)) {
	v, err, shared := s.flight.Do(key, func() (any, error) {
		return fn(context.WithoutCancel(r.Context()))
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	res := v.(*pipeline.Result)
	if shared {
		s.logger.Debug("shared render", "key", key, "render_id", res.RenderID)
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(RenderIDHeader, res.RenderID)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func skylineOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	format, err := formatParam(r)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Formats: []string{format}}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid seed %q", v)
		}
		opts.Seed = &seed
	}
	for _, p := range []struct {
		name string
		dst  *int
		code errors.Code
	}{
		{"width", &opts.Config.Width, errors.ErrCodeInvalidSize},
		{"height", &opts.Config.Height, errors.ErrCodeInvalidSize},
		{"scale", &opts.Scale, errors.ErrCodeInvalidInput},
	} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return opts, errors.New(p.code, "invalid %s %q", p.name, v)
			}
			*p.dst = n
		}
	}
	if v := q.Get("font_size"); v != "" {
		fs, err := strconv.ParseFloat(v, 64)
		if err != nil || fs <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid font_size %q", v)
		}
		opts.FontSize = fs
	}
	if opts.Seed == nil {
		opts.Seed = scene.SeedOf(scene.DefaultSeed)
	}
	return opts, nil
}

func formatParam(r *http.Request) (string, error) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return pipeline.DefaultFormat, nil
	}
	return format, pipeline.ValidateFormat(format)
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
