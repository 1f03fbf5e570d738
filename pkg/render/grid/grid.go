package grid

import (
	"slices"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
)

// Rect is a block's absolute rectangle on the character canvas.
// X/Y are the top-left cell; W/H are measured in cells and include the
// border rows and columns.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the x coordinate of the rightmost column.
func (r Rect) Right() int { return r.X + r.W - 1 }

// Bottom returns the y coordinate of the bottommost row.
func (r Rect) Bottom() int { return r.Y + r.H - 1 }

// CenterX returns the x coordinate of the middle column.
func (r Rect) CenterX() int { return r.X + r.W/2 }

// CenterY returns the y coordinate of the middle row.
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Contains reports whether the cell (x, y) lies inside the rectangle,
// borders included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Band is the canvas extent of one grid rank along a single axis.
type Band struct {
	Offset int // First cell of the band
	Extent int // Number of cells
}

// End returns the first cell after the band.
func (b Band) End() int { return b.Offset + b.Extent }

// Placement is a resolved block: its canvas rectangle plus the dense ranks
// its grid coordinates compressed to.
type Placement struct {
	Rect    Rect
	ColRank int
	RowRank int
}

// Config controls layout geometry. The zero value means no padding, no
// gutters, and unbounded canvas; callers normally pass values derived from
// validated render options.
type Config struct {
	Padding   int // Blank cells between text and border, both axes
	HMargin   int // Gutter columns between adjacent column ranks (and trailing)
	VMargin   int // Gutter rows between adjacent row ranks (and trailing)
	MaxWidth  int // Reject canvases wider than this (0 = unlimited)
	MaxHeight int // Reject canvases taller than this (0 = unlimited)
}

// Layout is the fully resolved canvas geometry: one placement per block,
// ordered rank bands per axis, and total canvas dimensions.
//
// Gutters are the cells outside every band: the bands between adjacent ranks
// plus one trailing band per axis. They never contain block cells, which is
// what lets the router treat them as a free corridor mesh.
type Layout struct {
	Blocks map[string]Placement
	Cols   []Band // Column rank bands in rank order
	Rows   []Band // Row rank bands in rank order
	Width  int
	Height int

	hmargin int
	vmargin int
}

// Resolve maps every block's sparse grid coordinates to dense ranks and
// computes its absolute canvas rectangle.
//
// Distinct column values are sorted and assigned 0-based ranks, closing the
// gaps left by sparse or negative coordinates while preserving relative
// order; rows work the same way. A column rank is as wide as its widest
// block (text plus padding plus two border columns - the max wins when
// blocks of different widths share a rank); every row rank is one text line
// tall plus padding and borders. The first rank of each axis starts at the
// canvas origin, and cfg gutter margins separate adjacent ranks, with one
// trailing gutter band per axis reserved as routing space.
//
// Resolve re-checks cell occupancy and returns a PLACEMENT_CONFLICT error
// when two blocks share a (column, row) pair, and a CANVAS_LIMIT error when
// the resolved dimensions exceed the configured bounds.
func Resolve(blocks []diagram.Block, cfg Config) (*Layout, error) {
	cols := distinct(blocks, func(b diagram.Block) int { return b.Column })
	rows := distinct(blocks, func(b diagram.Block) int { return b.Row })

	colRank := make(map[int]int, len(cols))
	for i, v := range cols {
		colRank[v] = i
	}
	rowRank := make(map[int]int, len(rows))
	for i, v := range rows {
		rowRank[v] = i
	}

	// Rank extents. Widths take the max over the rank's blocks; heights are
	// uniform because display text is a single line.
	minW := 2 + 2*cfg.Padding
	widths := make([]int, len(cols))
	for i := range widths {
		widths[i] = minW
	}
	for _, b := range blocks {
		if w := 2 + 2*cfg.Padding + len(b.Text); w > widths[colRank[b.Column]] {
			widths[colRank[b.Column]] = w
		}
	}
	height := 3 + 2*cfg.Padding

	l := &Layout{
		Blocks:  make(map[string]Placement, len(blocks)),
		Cols:    make([]Band, len(cols)),
		Rows:    make([]Band, len(rows)),
		hmargin: cfg.HMargin,
		vmargin: cfg.VMargin,
	}

	x := 0
	for i, w := range widths {
		l.Cols[i] = Band{Offset: x, Extent: w}
		x += w + cfg.HMargin
	}
	l.Width = x
	if len(cols) == 0 {
		l.Width = 0
	}

	y := 0
	for i := range rows {
		l.Rows[i] = Band{Offset: y, Extent: height}
		y += height + cfg.VMargin
	}
	l.Height = y
	if len(rows) == 0 {
		l.Height = 0
	}

	if cfg.MaxWidth > 0 && l.Width > cfg.MaxWidth {
		return nil, errors.New(errors.ErrCodeCanvasLimit,
			"canvas width %d exceeds limit %d", l.Width, cfg.MaxWidth)
	}
	if cfg.MaxHeight > 0 && l.Height > cfg.MaxHeight {
		return nil, errors.New(errors.ErrCodeCanvasLimit,
			"canvas height %d exceeds limit %d", l.Height, cfg.MaxHeight)
	}

	type cell struct{ col, row int }
	occupied := make(map[cell]string, len(blocks))

	for _, b := range blocks {
		c := cell{b.Column, b.Row}
		if first, taken := occupied[c]; taken {
			return nil, errors.Wrap(errors.ErrCodePlacementConflict,
				&errors.PlacementError{Column: b.Column, Row: b.Row, First: first, Second: b.ID},
				"conflicting placement")
		}
		occupied[c] = b.ID

		cr, rr := colRank[b.Column], rowRank[b.Row]
		l.Blocks[b.ID] = Placement{
			Rect: Rect{
				X: l.Cols[cr].Offset,
				Y: l.Rows[rr].Offset,
				W: l.Cols[cr].Extent,
				H: l.Rows[rr].Extent,
			},
			ColRank: cr,
			RowRank: rr,
		}
	}

	return l, nil
}

// GutterRightOf returns the centerline x of the gutter band to the right of
// the given column rank. The last rank's right gutter is the trailing band.
// Reports false when margins are zero and no gutter exists.
func (l *Layout) GutterRightOf(colRank int) (int, bool) {
	if l.hmargin < 1 || colRank < 0 || colRank >= len(l.Cols) {
		return 0, false
	}
	lo := l.Cols[colRank].End()
	return lo + (l.hmargin-1)/2, true
}

// GutterLeftOf returns the centerline x of the gutter band to the left of
// the given column rank. The first rank has no left gutter: the canvas
// starts at its edge, so a single-block render is exactly its box.
func (l *Layout) GutterLeftOf(colRank int) (int, bool) {
	if colRank <= 0 {
		return 0, false
	}
	return l.GutterRightOf(colRank - 1)
}

// GutterBelow returns the centerline y of the gutter band below the given
// row rank. The last rank's lower gutter is the trailing band.
func (l *Layout) GutterBelow(rowRank int) (int, bool) {
	if l.vmargin < 1 || rowRank < 0 || rowRank >= len(l.Rows) {
		return 0, false
	}
	lo := l.Rows[rowRank].End()
	return lo + (l.vmargin-1)/2, true
}

// GutterAbove returns the centerline y of the gutter band above the given
// row rank. The first rank has no upper gutter.
func (l *Layout) GutterAbove(rowRank int) (int, bool) {
	if rowRank <= 0 {
		return 0, false
	}
	return l.GutterBelow(rowRank - 1)
}

// BlockAt reports whether any block rectangle, borders included, covers the
// cell (x, y).
func (l *Layout) BlockAt(x, y int) bool {
	for _, p := range l.Blocks {
		if p.Rect.Contains(x, y) {
			return true
		}
	}
	return false
}

func distinct(blocks []diagram.Block, key func(diagram.Block) int) []int {
	seen := make(map[int]struct{}, len(blocks))
	vals := make([]int, 0, len(blocks))
	for _, b := range blocks {
		v := key(b)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vals = append(vals, v)
	}
	slices.Sort(vals)
	return vals
}
