package route

import (
	"fmt"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/render/grid"
)

// Point is a single canvas cell.
type Point struct {
	X, Y int
}

// Route is one edge's resolved polyline. Points runs from the source border
// cell to the destination border cell with a waypoint per corner. The
// rasterizer draws only the cells strictly between the two border cells and
// places the arrow head on the cell just before the destination.
type Route struct {
	Edge   diagram.Edge
	Points []Point

	// Arrow is the travel direction on the final leg, orienting the head.
	Arrow Direction

	// Fallback marks a path that may overlap blocks or other geometry.
	Fallback bool
}

// Warning reports an edge the router could not place cleanly. The edge is
// still drawn along a fallback elbow; the warning tells the caller the
// result may overlap other geometry.
type Warning struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("edge %s -> %s: %s", w.From, w.To, w.Reason)
}

// Plan routes every edge of the diagram through the layout's gutter mesh.
//
// Edges are processed independently in declaration order; crossings between
// edges are allowed and later rendered as crossing glyphs, so no global
// optimization is needed. Each edge tries a fixed candidate ladder: the
// straight segment between its anchors, a Z detour through the gutter
// adjacent to the source, a Z detour through the gutter adjacent to the
// destination, and a staircase that travels gutter centerlines the whole
// way. The first candidate whose cells clear every block rectangle wins,
// which keeps the result deterministic. The staircase is always clear when
// the margins provide gutters, so a fallback elbow (plus a Warning) happens
// only for degenerate inputs: zero margins or self edges.
func Plan(d *diagram.Diagram, l *grid.Layout) ([]Route, []Warning) {
	edges := d.Edges()
	an := planAnchors(edges, l)
	r := router{layout: l}

	routes := make([]Route, 0, len(edges))
	var warnings []Warning
	for i, e := range edges {
		a, b := an.srcCell[i], an.dstCell[i]
		if e.From == e.To {
			routes = append(routes, fallbackRoute(e, a, b, an.srcSide[i]))
			warnings = append(warnings, Warning{From: e.From, To: e.To, Reason: "self edge has no gutter route"})
			continue
		}

		pts, ok := r.route(a, b, an.srcSide[i], l.Blocks[e.From], l.Blocks[e.To])
		if !ok {
			routes = append(routes, fallbackRoute(e, a, b, an.srcSide[i]))
			warnings = append(warnings, Warning{From: e.From, To: e.To, Reason: "no unobstructed gutter route"})
			continue
		}
		routes = append(routes, Route{Edge: e, Points: pts, Arrow: legDirection(pts)})
	}
	return routes, warnings
}

type router struct {
	layout *grid.Layout
}

func (r router) route(a, b Point, out Direction, src, dst grid.Placement) ([]Point, bool) {
	for _, cand := range r.candidates(a, b, out, src, dst) {
		if r.clear(cand, a, b) {
			return normalize(cand), true
		}
	}
	return nil, false
}

// candidates builds the ladder of trial polylines for one edge, ordered
// from most direct to most conservative. Gutter bands never contain block
// cells, so every leg that runs along a gutter centerline is pre-cleared;
// only legs crossing intermediate ranks can fail the obstacle check.
func (r router) candidates(a, b Point, out Direction, src, dst grid.Placement) [][]Point {
	l := r.layout
	var cands [][]Point

	if out.Horizontal() {
		if a.Y == b.Y {
			cands = append(cands, []Point{a, b})
		}

		var g1, g2 int
		var ok1, ok2 bool
		if out == East {
			g1, ok1 = l.GutterRightOf(src.ColRank)
			g2, ok2 = l.GutterLeftOf(dst.ColRank)
		} else {
			g1, ok1 = l.GutterLeftOf(src.ColRank)
			g2, ok2 = l.GutterRightOf(dst.ColRank)
		}
		if a.Y != b.Y {
			if ok1 {
				cands = append(cands, []Point{a, {g1, a.Y}, {g1, b.Y}, b})
			}
			if ok2 && g2 != g1 {
				cands = append(cands, []Point{a, {g2, a.Y}, {g2, b.Y}, b})
			}
		}

		// Staircase: across to the gutter beside the source, along the
		// gutter row between the ranks (below when the rows tie), back up
		// or down beside the destination. Every leg rides a gutter.
		var gy int
		var okY bool
		if dst.RowRank >= src.RowRank {
			gy, okY = l.GutterBelow(src.RowRank)
		} else {
			gy, okY = l.GutterAbove(src.RowRank)
		}
		if ok1 && ok2 && okY {
			cands = append(cands, []Point{a, {g1, a.Y}, {g1, gy}, {g2, gy}, {g2, b.Y}, b})
		}
		return cands
	}

	if a.X == b.X {
		cands = append(cands, []Point{a, b})
	}

	var g1, g2 int
	var ok1, ok2 bool
	if out == South {
		g1, ok1 = l.GutterBelow(src.RowRank)
		g2, ok2 = l.GutterAbove(dst.RowRank)
	} else {
		g1, ok1 = l.GutterAbove(src.RowRank)
		g2, ok2 = l.GutterBelow(dst.RowRank)
	}
	if a.X != b.X {
		if ok1 {
			cands = append(cands, []Point{a, {a.X, g1}, {b.X, g1}, b})
		}
		if ok2 && g2 != g1 {
			cands = append(cands, []Point{a, {a.X, g2}, {b.X, g2}, b})
		}
	}

	var gx int
	var okX bool
	if dst.ColRank >= src.ColRank {
		gx, okX = l.GutterRightOf(src.ColRank)
	} else {
		gx, okX = l.GutterLeftOf(src.ColRank)
	}
	if ok1 && ok2 && okX {
		cands = append(cands, []Point{a, {a.X, g1}, {gx, g1}, {gx, g2}, {b.X, g2}, b})
	}
	return cands
}

// clear reports whether every cell of the polyline avoids block rectangles.
// The two border endpoints are exempt: they sit on their own blocks.
func (r router) clear(pts []Point, a, b Point) bool {
	for i := 1; i < len(pts); i++ {
		p, q := pts[i-1], pts[i]
		dx, dy := sign(q.X-p.X), sign(q.Y-p.Y)
		for c := p; ; c.X, c.Y = c.X+dx, c.Y+dy {
			if c != a && c != b && r.layout.BlockAt(c.X, c.Y) {
				return false
			}
			if c == q {
				break
			}
		}
	}
	return true
}

// fallbackRoute is the best-effort elbow used when no gutter route exists:
// one turn, leading with the source's exit axis. The rasterizer skips any
// of its cells that land inside a block.
func fallbackRoute(e diagram.Edge, a, b Point, out Direction) Route {
	var pts []Point
	if out.Horizontal() {
		pts = normalize([]Point{a, {b.X, a.Y}, b})
	} else {
		pts = normalize([]Point{a, {a.X, b.Y}, b})
	}
	return Route{Edge: e, Points: pts, Arrow: legDirection(pts), Fallback: true}
}

// normalize drops zero-length legs and merges collinear runs so every
// remaining waypoint is a genuine corner.
func normalize(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	dedup := []Point{pts[0]}
	for _, p := range pts[1:] {
		if p != dedup[len(dedup)-1] {
			dedup = append(dedup, p)
		}
	}
	out := dedup[:1]
	for _, p := range dedup[1:] {
		if len(out) >= 2 {
			p0, p1 := out[len(out)-2], out[len(out)-1]
			if (p0.X == p1.X && p1.X == p.X) || (p0.Y == p1.Y && p1.Y == p.Y) {
				out[len(out)-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func legDirection(pts []Point) Direction {
	if len(pts) < 2 {
		return East
	}
	p, q := pts[len(pts)-2], pts[len(pts)-1]
	switch {
	case q.X > p.X:
		return East
	case q.X < p.X:
		return West
	case q.Y > p.Y:
		return South
	default:
		return North
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
