package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/blockflow/blockflow/pkg/buildinfo"
	"github.com/blockflow/blockflow/pkg/errors"
	diagio "github.com/blockflow/blockflow/pkg/io"
	"github.com/blockflow/blockflow/pkg/pipeline"
	"github.com/blockflow/blockflow/pkg/render/route"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// defaultServeAddr binds to loopback; this is a preview server, not a
	// hardened public service.
	defaultServeAddr = "localhost:8080"

	// shutdownTimeout bounds how long in-flight requests may finish after
	// the serve context is cancelled.
	shutdownTimeout = 5 * time.Second

	// readHeaderTimeout guards against slowloris-style stalls.
	readHeaderTimeout = 5 * time.Second

	// maxRequestBody caps POST /render bodies. Diagram documents are small.
	maxRequestBody = 1 << 20
)

// =============================================================================
// Command
// =============================================================================

// serveCommand creates the serve command exposing rendering over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve diagram rendering over HTTP",
		Long: `Serve diagram rendering over HTTP.

The serve command starts a local preview server. Editors and scripts can
POST a diagram document and receive the rendered artifact back without
shelling out per render.

Endpoints:
  POST /render   {"diagram": {...}, "options": {...}} -> artifact + stats
  GET  /healthz  liveness probe
  GET  /         usage summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe runs the HTTP server until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.serveHandler(runner),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	printInfo("Serving on http://%s", addr)
	printDetail("POST /render")
	printDetail("GET  /healthz")
	printNewline()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	}
}

// =============================================================================
// Handler
// =============================================================================

// serveHandler builds the route tree for the preview server.
func (c *CLI) serveHandler(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestLogger)
	r.Get("/", c.handleIndex)
	r.Get("/healthz", c.handleHealth)
	r.Post("/render", c.handleRender(runner))
	return r
}

// requestLogger tags each request with a UUID, attaches the tagged logger to
// the request context, and logs one line per completed request.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		logger := c.Logger.With("request_id", requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// renderRequest is the POST /render body. The diagram document stays raw so
// the pipeline decodes and validates it exactly like a file input.
type renderRequest struct {
	Diagram json.RawMessage  `json:"diagram"`
	Options pipeline.Options `json:"options"`
}

// renderResponse is the POST /render reply.
type renderResponse struct {
	Artifact string          `json:"artifact"`
	Sink     string          `json:"sink"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Blocks   int             `json:"blocks"`
	Edges    int             `json:"edges"`
	CacheHit bool            `json:"cache_hit"`
	Warnings []route.Warning `json:"warnings,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// handleRender decodes the request envelope and runs the pipeline on the
// embedded document.
func (c *CLI) handleRender(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := loggerFromContext(r.Context())

		var req renderRequest
		body := http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
		if len(req.Diagram) == 0 {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "missing diagram"))
			return
		}

		opts := req.Options
		// File paths have no meaning for remote callers, and the envelope
		// is JSON, so the embedded document is too.
		opts.Input, opts.Output = "", ""
		opts.Format = string(diagio.FormatJSON)
		opts.Logger = logger

		res, err := runner.ExecuteBytes(r.Context(), req.Diagram, opts)
		if err != nil {
			writeError(w, statusForError(err), err)
			return
		}

		sink := opts.Sink
		if sink == "" {
			sink = pipeline.DefaultSink
		}
		writeJSON(w, http.StatusOK, renderResponse{
			Artifact: string(res.Artifact),
			Sink:     sink,
			Width:    res.Render.Width,
			Height:   res.Render.Height,
			Blocks:   res.Stats.BlockCount,
			Edges:    res.Stats.EdgeCount,
			CacheHit: res.CacheInfo.ArtifactHit,
			Warnings: res.Render.Warnings,
		})
	}
}

// handleHealth reports liveness.
func (c *CLI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleIndex prints a short usage summary.
func (c *CLI) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s %s\n\n", appName, buildinfo.Version)
	fmt.Fprintf(w, "POST /render   {\"diagram\": {...}, \"options\": {...}}\n")
	fmt.Fprintf(w, "GET  /healthz  liveness probe\n")
}

// =============================================================================
// Response Helpers
// =============================================================================

// statusForError maps pipeline error codes onto HTTP status codes. Requests
// that never produced a valid document are 400s; documents that decoded but
// violate diagram rules are 422s; everything else is a 500.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOptions,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle:
		return http.StatusBadRequest
	case errors.ErrCodeMalformedDiagram, errors.ErrCodePlacementConflict,
		errors.ErrCodeCanvasLimit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
