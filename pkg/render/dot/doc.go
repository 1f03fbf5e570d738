// Package dot exports diagrams as Graphviz DOT and renders them to SVG.
//
// # Overview
//
// The text renderer in pkg/render is the primary output; this package is
// the escape hatch for embedding diagrams where ASCII does not fit. It maps
// the diagram model onto DOT source, preserving row structure through
// rank=same groups, and renders in process via Graphviz.
//
// # Usage
//
// Convert a diagram to DOT, then render to SVG:
//
//	src := dot.ToDOT(d, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// The DOT source can also be saved as-is and processed with external
// Graphviz tooling.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external binaries are required.
package dot
