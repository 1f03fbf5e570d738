package canvas

import (
	"fmt"
	"strings"

	"github.com/blockflow/blockflow/pkg/render/grid"
	"github.com/blockflow/blockflow/pkg/render/route"
)

// cellKind tracks what occupies a cell so later draws merge correctly:
// perpendicular lines upgrade to crossings, corners and arrows are never
// downgraded to plain lines, and block cells are never overwritten.
type cellKind uint8

const (
	cellBlank cellKind = iota
	cellBlock
	cellLineH
	cellLineV
	cellCorner
	cellCross
	cellArrow
	cellLabel
)

// Canvas is a fixed-size character buffer. Draw methods write block and
// edge glyphs; String serializes the result. Writes outside the buffer are
// programming errors and panic.
type Canvas struct {
	w, h  int
	cells []rune
	kinds []cellKind
	style *Style
}

// New allocates a blank canvas of the given dimensions.
func New(w, h int, style *Style) *Canvas {
	cells := make([]rune, w*h)
	for i := range cells {
		cells[i] = ' '
	}
	return &Canvas{
		w:     w,
		h:     h,
		cells: cells,
		kinds: make([]cellKind, w*h),
		style: style,
	}
}

func (c *Canvas) idx(x, y int) int {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		panic(fmt.Sprintf("canvas: write at (%d, %d) outside %dx%d buffer", x, y, c.w, c.h))
	}
	return y*c.w + x
}

func (c *Canvas) set(x, y int, r rune, k cellKind) {
	i := c.idx(x, y)
	c.cells[i] = r
	c.kinds[i] = k
}

// DrawBlock writes a block rectangle: border glyphs around the perimeter,
// text centered on the middle row, interior blanks elsewhere. Every cell of
// the rectangle is claimed so edges can never overwrite it.
func (c *Canvas) DrawBlock(r grid.Rect, text string) {
	for y := r.Y; y <= r.Bottom(); y++ {
		for x := r.X; x <= r.Right(); x++ {
			c.set(x, y, blockGlyph(c.style, r, x, y), cellBlock)
		}
	}

	textY := r.Y + r.H/2
	textX := r.X + 1 + (r.W-2-len(text))/2
	for i, ch := range text {
		c.set(textX+i, textY, ch, cellBlock)
	}
}

func blockGlyph(s *Style, r grid.Rect, x, y int) rune {
	top, bottom := y == r.Y, y == r.Bottom()
	left, right := x == r.X, x == r.Right()
	switch {
	case top && left:
		return s.blockCorners[0]
	case top && right:
		return s.blockCorners[1]
	case bottom && left:
		return s.blockCorners[2]
	case bottom && right:
		return s.blockCorners[3]
	case top || bottom:
		return s.blockHorizontal
	case left || right:
		return s.blockVertical
	default:
		return ' '
	}
}

// DrawRoute traces one edge polyline. Only cells strictly between the two
// border endpoints are written: straight runs as line glyphs, waypoints as
// corner glyphs, and finally the arrow head on the cell just before the
// destination. Cells claimed by blocks are skipped, which only matters for
// fallback routes.
func (c *Canvas) DrawRoute(rt route.Route) {
	pts := rt.Points
	if len(pts) < 2 {
		return
	}
	a, b := pts[0], pts[len(pts)-1]

	for j := 1; j < len(pts); j++ {
		p, q := pts[j-1], pts[j]
		d := legDir(p, q)
		dx, dy := d.Delta()
		for cell := (route.Point{X: p.X + dx, Y: p.Y + dy}); cell != q; cell.X, cell.Y = cell.X+dx, cell.Y+dy {
			c.writeLine(cell.X, cell.Y, d.Horizontal())
		}
		if j < len(pts)-1 {
			c.writeCorner(q.X, q.Y, d, legDir(q, pts[j+1]))
		}
	}

	dx, dy := rt.Arrow.Delta()
	head := route.Point{X: b.X - dx, Y: b.Y - dy}
	if head != a {
		c.writeArrow(head.X, head.Y, rt.Arrow)
	}
}

// DrawLabel centers the label over the longest horizontal run of the route,
// padded with one blank on each side. It reports false, drawing nothing,
// when no run is long enough. The arrow head cell is never covered.
func (c *Canvas) DrawLabel(rt route.Route, label string) bool {
	if label == "" || len(rt.Points) < 2 {
		return false
	}
	text := " " + label + " "

	var best []route.Point
	pts := rt.Points
	for j := 1; j < len(pts); j++ {
		p, q := pts[j-1], pts[j]
		if p.Y != q.Y {
			continue
		}
		cells := betweenCells(p, q)
		if j == len(pts)-1 && len(cells) > 0 {
			cells = cells[:len(cells)-1]
		}
		if len(cells) > len(best) {
			best = cells
		}
	}
	if len(best) < len(text) {
		return false
	}

	start := (len(best) - len(text)) / 2
	for i, ch := range text {
		cell := best[start+i]
		if k := c.kinds[c.idx(cell.X, cell.Y)]; k == cellBlock {
			continue
		}
		c.set(cell.X, cell.Y, ch, cellLabel)
	}
	return true
}

func (c *Canvas) writeLine(x, y int, horizontal bool) {
	i := c.idx(x, y)
	switch c.kinds[i] {
	case cellBlank:
		if horizontal {
			c.set(x, y, c.style.horizontal, cellLineH)
		} else {
			c.set(x, y, c.style.vertical, cellLineV)
		}
	case cellLineH:
		if !horizontal {
			c.set(x, y, c.style.cross, cellCross)
		}
	case cellLineV:
		if horizontal {
			c.set(x, y, c.style.cross, cellCross)
		}
	}
}

func (c *Canvas) writeCorner(x, y int, in, out route.Direction) {
	i := c.idx(x, y)
	switch c.kinds[i] {
	case cellBlank, cellLineH, cellLineV:
		c.set(x, y, c.style.corner(in, out), cellCorner)
	}
}

func (c *Canvas) writeArrow(x, y int, d route.Direction) {
	if c.kinds[c.idx(x, y)] == cellBlock {
		return
	}
	c.set(x, y, c.style.arrow(d), cellArrow)
}

// String serializes the buffer row by row, stripping trailing blanks from
// each row and dropping trailing blank rows. Rows are joined with newlines
// and the result carries no trailing newline.
func (c *Canvas) String() string {
	rows := make([]string, 0, c.h)
	for y := 0; y < c.h; y++ {
		row := strings.TrimRight(string(c.cells[y*c.w:(y+1)*c.w]), " ")
		rows = append(rows, row)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return strings.Join(rows, "\n")
}

func betweenCells(p, q route.Point) []route.Point {
	d := legDir(p, q)
	dx, dy := d.Delta()
	var cells []route.Point
	for cell := (route.Point{X: p.X + dx, Y: p.Y + dy}); cell != q; cell.X, cell.Y = cell.X+dx, cell.Y+dy {
		cells = append(cells, cell)
	}
	return cells
}

func legDir(p, q route.Point) route.Direction {
	switch {
	case q.X > p.X:
		return route.East
	case q.X < p.X:
		return route.West
	case q.Y > p.Y:
		return route.South
	default:
		return route.North
	}
}
