package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blockflow/blockflow/pkg/cache"
	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
	diagio "github.com/blockflow/blockflow/pkg/io"
	"github.com/blockflow/blockflow/pkg/observability"
	"github.com/blockflow/blockflow/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and logger.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete decode → render → sink pipeline on the input
// named by opts.Input ("-" reads stdin). When opts.Output is set, the
// artifact is also written to that path.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "input path is required")
	}

	input, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}
	return r.ExecuteBytes(ctx, input, opts)
}

// ExecuteBytes runs the pipeline on in-memory input bytes. The input format
// comes from opts.Format (JSON when unset and no path hints otherwise).
func (r *Runner) ExecuteBytes(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		InputHash: cache.Hash(input),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Format)
	d, err := diagio.Read(bytes.NewReader(input), diagio.Format(opts.Format))
	result.Stats.DecodeTime = time.Since(decodeStart)
	blockCount := 0
	if d != nil {
		blockCount = d.BlockCount()
	}
	observability.Pipeline().OnDecodeComplete(ctx, opts.Format, blockCount, result.Stats.DecodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Diagram = d
	result.Stats.BlockCount = d.BlockCount()
	result.Stats.EdgeCount = d.EdgeCount()

	opts.Logger.Info("decoded diagram",
		"format", opts.Format,
		"blocks", d.BlockCount(),
		"edges", d.EdgeCount(),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Render.Style, d.BlockCount())
	rendered, err := render.Render(d, opts.Render)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Render.Style, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Render = rendered

	opts.Logger.Info("rendered diagram",
		"style", opts.Render.Style,
		"size", fmt.Sprintf("%dx%d", rendered.Width, rendered.Height),
		"warnings", len(rendered.Warnings),
		"duration", result.Stats.RenderTime)

	// Stage 3: Sink
	sinkStart := time.Now()
	observability.Pipeline().OnSinkStart(ctx, opts.Sink)
	artifact, hit, err := r.sinkArtifact(ctx, d, rendered, input, opts)
	result.Stats.SinkTime = time.Since(sinkStart)
	observability.Pipeline().OnSinkComplete(ctx, opts.Sink, len(artifact), result.Stats.SinkTime, err)
	if err != nil {
		return nil, fmt.Errorf("sink %s: %w", opts.Sink, err)
	}
	result.Artifact = artifact
	result.CacheInfo.ArtifactHit = hit

	opts.Logger.Info("produced artifact",
		"sink", opts.Sink,
		"bytes", len(artifact),
		"cache_hit", hit,
		"duration", result.Stats.SinkTime)

	if opts.Output != "" && opts.Output != "-" {
		if err := os.WriteFile(opts.Output, artifact, 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", opts.Output, err)
		}
	}

	return result, nil
}

// Decode reads and validates a diagram without rendering it.
func (r *Runner) Decode(ctx context.Context, opts Options) (*diagram.Diagram, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidOptions, "input path is required")
	}
	input, err := readInput(opts.Input)
	if err != nil {
		return nil, err
	}
	d, err := diagio.Read(bytes.NewReader(input), diagio.Format(opts.Format))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// readInput returns the raw diagram bytes from path. "-" reads stdin.
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
