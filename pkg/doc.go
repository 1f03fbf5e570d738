// Package pkg provides the core libraries for Blockflow diagram rendering.
//
// # Overview
//
// Blockflow turns a declarative description of blocks on a sparse integer
// grid, connected by directed edges, into a rendered block of ASCII text.
// The pkg directory is organized into four main areas:
//
//  1. [diagram] - The validated diagram model
//  2. [render] - The pure rendering core (layout, routing, rasterization)
//  3. [io] - Serialization between the model and JSON/TOML documents
//  4. [pipeline] - Orchestration (decode → render → sink) used by every entry point
//
// # Architecture
//
// The typical data flow through Blockflow:
//
//	JSON/TOML document
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [diagram] package (immutable model)
//	         ↓
//	    [render] package (grid → route → canvas)
//	         ↓
//	    text/DOT/SVG output
//
// # Quick Start
//
// Decode a diagram and render it with default options:
//
//	import (
//	    "fmt"
//	    "github.com/blockflow/blockflow/pkg/io"
//	    "github.com/blockflow/blockflow/pkg/render"
//	)
//
//	// 1. Decode and validate
//	d, _ := io.ImportFile("arch.json")
//
//	// 2. Render to text
//	res, _ := render.Render(d, render.Options{})
//	fmt.Println(res.Text)
//
// # Main Packages
//
// ## Domain Logic
//
// [diagram] - The immutable diagram model: blocks with grid positions,
// directed edges with optional labels. Construction validates identity,
// placement, and referential integrity; a diagram that exists is renderable.
//
// [render] - The pure rendering core. Deterministic and side-effect free;
// identical input produces byte-identical output. Internally staged:
//
//   - [render/grid]: Compress sparse coordinates to ranks, size and place blocks
//   - [render/route]: Plan orthogonal edge paths through the gutter mesh
//   - [render/canvas]: Rasterize geometry into a character buffer, glyph styles
//   - [render/dot]: Graphviz DOT export and in-process SVG rendering
//
// ## Serialization
//
// [io] - JSON and TOML readers/writers for the diagram document schema. Both
// formats funnel through the same model construction, so validation behaves
// identically regardless of input format.
//
// ## Infrastructure
//
// [pipeline] - Complete render pipeline (decode → render → sink) used by the
// CLI commands and the preview server. Ensures consistent behavior across
// all entry points, including content-addressed caching of SVG artifacts.
//
// [cache] - File-backed cache under the XDG cache directory, plus a null
// implementation for cache-off runs.
//
// [observability] - Optional pipeline and cache hooks for callers that want
// stage-level visibility without wiring a logger through the pure core.
//
// [errors] - Coded errors shared by every layer. Codes distinguish malformed
// diagrams, placement conflicts, canvas limits, and invalid options, so
// callers can map failures to exit codes or HTTP statuses.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Common Workflows
//
// Render with explicit options:
//
//	res, _ := render.Render(d, render.Options{Style: "unicode", HMargin: 3})
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewFileCache(dir), logger)
//	defer runner.Close()
//	res, _ := runner.Execute(ctx, pipeline.Options{Input: "arch.json", Sink: pipeline.SinkSVG})
//
// Distinguish failure classes:
//
//	if errors.Is(err, errors.ErrCodePlacementConflict) {
//	    // two blocks share a grid cell
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/render/...    # Specific package
//	go test -run Example        # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/diagram
// [render]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/render
// [render/grid]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/render/grid
// [render/route]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/render/route
// [render/canvas]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/render/canvas
// [render/dot]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/render/dot
// [io]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/blockflow/blockflow/pkg/buildinfo
package pkg
