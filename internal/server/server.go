// Package server assembles the HTTP surface: health, schema, the reference
// API, live form sessions, stateless describe and metrics.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/reoring/skemaform"
	"github.com/reoring/skemaform/internal/wire"
	"github.com/reoring/skemaform/jsonschema"
	"github.com/reoring/skemaform/refsource"
	"github.com/reoring/skemaform/refsource/httpref"
)

// maxDescribeBody caps POST /form/describe request bodies.
const maxDescribeBody = 1 << 20

// Config holds server configuration.
type Config struct {
	Addr   string
	Schema *jsonschema.Schema
	// Options are used for every form rendered. Options.Lookup defaults to
	// Refs.
	Options skemaform.Options
	// Refs is served under /refs. Nil leaves the route out.
	Refs refsource.Source
	// Gatherer is served under /metrics. Nil leaves the route out.
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
	// OnSubmit receives values submitted over the form socket.
	OnSubmit func(sessionID string, value any)
	// Origins lists cross-origin hosts allowed on the form socket.
	Origins []string
}

// New builds the router.
func New(cfg Config) http.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	opts := cfg.Options
	if opts.Lookup == nil && cfg.Refs != nil {
		opts.Lookup = cfg.Refs
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/schema", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cfg.Schema)
	})
	if cfg.Refs != nil {
		r.Mount("/refs", httpref.Handler(cfg.Refs, log.Named("refs")))
	}

	ws := wire.NewHandler(cfg.Schema, opts, log)
	ws.OnSubmit = cfg.OnSubmit
	ws.OriginPatterns = cfg.Origins
	d := &describer{doc: cfg.Schema, opts: opts}
	r.Route("/form", func(r chi.Router) {
		r.Get("/ws", ws.ServeHTTP)
		r.Post("/describe", d.ServeHTTP)
	})

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	}
	return r
}

// Run serves New(cfg) on cfg.Addr until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           New(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// DescribeRequest is the body of POST /form/describe.
type DescribeRequest struct {
	Value any `json:"value"`
}

type describer struct {
	doc  *jsonschema.Schema
	opts skemaform.Options
}

// ServeHTTP renders the posted value, waits for its lookups and answers
// with the view. Lookups still running when the request ends are reported
// through Pending.
func (d *describer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDescribeBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	var req DescribeRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
			return
		}
	}
	form := skemaform.Render(d.doc, req.Value, nil, d.opts)
	defer form.Close()
	_ = form.Settle(r.Context())

	writeJSON(w, http.StatusOK, wire.ViewData{
		Root:    skemaform.Describe(form.Root()),
		Value:   wire.Sanitize(form.Value()),
		Pending: form.Pending(),
	})
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.Int("body_size", ww.BytesWritten()),
			}
			switch {
			case status >= 500:
				log.Error("http request", fields...)
			case status >= 400:
				log.Warn("http request", fields...)
			default:
				log.Debug("http request", fields...)
			}
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ENCODE_FAILED", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	b, _ := json.Marshal(map[string]string{"error": message, "code": code})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
