package pipeline

import (
	"context"

	"github.com/blockflow/blockflow/pkg/cache"
	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
	"github.com/blockflow/blockflow/pkg/observability"
	"github.com/blockflow/blockflow/pkg/render"
	"github.com/blockflow/blockflow/pkg/render/dot"
)

// sinkArtifact produces the requested artifact and reports whether it came
// from cache. Only the SVG sink consults the cache; text and DOT output are
// cheaper to recompute than to store.
func (r *Runner) sinkArtifact(ctx context.Context, d *diagram.Diagram, rendered *render.Result, input []byte, opts Options) ([]byte, bool, error) {
	switch opts.Sink {
	case SinkText:
		return []byte(rendered.Text + "\n"), false, nil
	case SinkDot:
		return []byte(dot.ToDOT(d, dot.Options{})), false, nil
	case SinkSVG:
		return r.renderSVGCached(ctx, d, input, opts)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "invalid sink: %q", opts.Sink)
	}
}

// renderSVGCached renders the diagram to SVG via Graphviz, keyed in the
// cache by the input bytes and the effective render options. A hit skips
// the Graphviz engine entirely.
func (r *Runner) renderSVGCached(ctx context.Context, d *diagram.Diagram, input []byte, opts Options) ([]byte, bool, error) {
	key := cache.Key(SinkSVG, input, opts.Render)

	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, SinkSVG)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, SinkSVG)
	}

	svg, err := dot.RenderSVG(ctx, dot.ToDOT(d, dot.Options{}))
	if err != nil {
		return nil, false, err
	}

	if !opts.NoCache {
		_ = r.Cache.Set(ctx, key, svg, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, SinkSVG, len(svg))
	}

	return svg, false, nil
}
