// Package render turns a validated diagram into a block of ASCII text.
//
// Rendering is a pure function: one [diagram.Diagram] in, one [Result] out,
// with no I/O and no shared state, so independent renders may run
// concurrently without synchronization. The pipeline inside is strict:
// resolve the grid layout, plan edge routes, rasterize, serialize.
//
// # Usage
//
// Render a diagram with default options:
//
//	d, err := diagram.New(blocks, edges)
//	if err != nil {
//	    return err
//	}
//	res, err := render.Render(d, render.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Text)
//
// Routing warnings never fail a render; structurally valid diagrams always
// produce output, with [Result.Warnings] listing any edges that fell back
// to best-effort paths.
package render

import (
	"strings"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
	"github.com/blockflow/blockflow/pkg/render/canvas"
	"github.com/blockflow/blockflow/pkg/render/grid"
	"github.com/blockflow/blockflow/pkg/render/route"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultHMargin is the gutter width in cells between adjacent column
	// ranks. Wide enough for an arrow head plus a visible line run.
	DefaultHMargin = 5

	// DefaultVMargin is the gutter height in cells between adjacent row
	// ranks.
	DefaultVMargin = 3

	// DefaultMaxWidth and DefaultMaxHeight bound the canvas so pathological
	// coordinate ranges cannot blow up memory.
	DefaultMaxWidth  = 4096
	DefaultMaxHeight = 4096
)

// DefaultStyle is the default glyph style.
const DefaultStyle = canvas.StyleASCII

// =============================================================================
// Options
// =============================================================================

// Options controls render geometry and glyph selection. The zero value is
// ready to use; zero fields take the package defaults. This struct supports
// JSON serialization for server requests.
type Options struct {
	// HMargin and VMargin set the gutter size between grid ranks. Gutters
	// carry the edge routes; shrinking them below the defaults leaves less
	// room for fan-out and labels.
	HMargin int `json:"hmargin,omitempty"`
	VMargin int `json:"vmargin,omitempty"`

	// Padding adds blank cells between a block's text and its border.
	Padding int `json:"padding,omitempty"`

	// Style names the glyph set, one of [canvas.Styles]. Empty means ascii.
	Style string `json:"style,omitempty"`

	// MaxWidth and MaxHeight reject diagrams whose resolved canvas would
	// exceed these cell dimensions.
	MaxWidth  int `json:"max_width,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks field ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.HMargin < 0 || o.VMargin < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "margins must not be negative")
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "padding must not be negative")
	}
	if o.MaxWidth < 0 || o.MaxHeight < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "canvas bounds must not be negative")
	}
	if _, err := canvas.ParseStyle(o.Style); err != nil {
		return err
	}

	if o.HMargin == 0 {
		o.HMargin = DefaultHMargin
	}
	if o.VMargin == 0 {
		o.VMargin = DefaultVMargin
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.MaxHeight == 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result is a completed render.
type Result struct {
	// Text is the rendered diagram: rows joined by newlines, trailing
	// blanks trimmed, no trailing newline.
	Text string

	// Warnings lists edges drawn along best-effort fallback paths.
	Warnings []route.Warning

	// Width and Height are the cell dimensions of Text.
	Width  int
	Height int

	// Stats contains size information about the render.
	Stats Stats
}

// Stats contains render statistics.
type Stats struct {
	BlockCount    int
	EdgeCount     int
	LabelsDrawn   int
	LabelsSkipped int
}

// =============================================================================
// Rendering
// =============================================================================

// Render lays out, routes, and rasterizes the diagram into text.
//
// The draw order is fixed: every block rectangle first, then edges in
// declaration order, each edge's label right after its path. A diagram
// without blocks renders to the empty string. Errors carry pkg/errors
// codes: option and style problems, placement conflicts re-checked by the
// resolver, and canvas bound violations.
func Render(d *diagram.Diagram, opts Options) (*Result, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil diagram")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	style, err := canvas.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	layout, err := grid.Resolve(d.Blocks(), grid.Config{
		Padding:   opts.Padding,
		HMargin:   opts.HMargin,
		VMargin:   opts.VMargin,
		MaxWidth:  opts.MaxWidth,
		MaxHeight: opts.MaxHeight,
	})
	if err != nil {
		return nil, err
	}

	routes, warnings := route.Plan(d, layout)

	c := canvas.New(layout.Width, layout.Height, style)
	for _, b := range d.Blocks() {
		c.DrawBlock(layout.Blocks[b.ID].Rect, b.Text)
	}

	stats := Stats{BlockCount: d.BlockCount(), EdgeCount: d.EdgeCount()}
	for _, rt := range routes {
		c.DrawRoute(rt)
		if rt.Edge.Label == "" {
			continue
		}
		if c.DrawLabel(rt, rt.Edge.Label) {
			stats.LabelsDrawn++
		} else {
			stats.LabelsSkipped++
		}
	}

	text := c.String()
	w, h := textDims(text)
	return &Result{
		Text:     text,
		Warnings: warnings,
		Width:    w,
		Height:   h,
		Stats:    stats,
	}, nil
}

func textDims(s string) (w, h int) {
	if s == "" {
		return 0, 0
	}
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		if len(line) > w {
			w = len(line)
		}
	}
	return w, len(lines)
}
