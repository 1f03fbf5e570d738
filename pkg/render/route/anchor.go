package route

import (
	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/render/grid"
)

// anchors holds the border cell chosen for every edge endpoint plus the
// source exit side, indexed by the edge's position in declaration order.
type anchors struct {
	srcCell []Point
	dstCell []Point
	srcSide []Direction
}

// sides picks the block sides an edge leaves from and arrives at based on
// the rank deltas between its endpoints. Endpoints in the same row attach
// on the facing left/right borders, endpoints in the same column on the
// facing top/bottom borders. Diagonal pairs attach on the axis with the
// larger rank distance, the horizontal axis winning exact ties.
func sides(src, dst grid.Placement) (from, to Direction) {
	dc := dst.ColRank - src.ColRank
	dr := dst.RowRank - src.RowRank

	if dr == 0 || (dc != 0 && abs(dc) >= abs(dr)) {
		if dc < 0 {
			return West, East
		}
		return East, West
	}
	if dr > 0 {
		return South, North
	}
	return North, South
}

// planAnchors assigns every edge endpoint a border cell. Endpoints landing
// on the same side of the same block fan out from the side's midpoint in
// declaration order, taking offsets 0, +1, -1, +2, -2, ... cells, positive
// meaning down or right. Offsets clamp to the side's interior so anchors
// never sit on corner cells. Self edges put both of their ends on the east
// side.
func planAnchors(edges []diagram.Edge, l *grid.Layout) anchors {
	a := anchors{
		srcCell: make([]Point, len(edges)),
		dstCell: make([]Point, len(edges)),
		srcSide: make([]Direction, len(edges)),
	}

	type key struct {
		block string
		side  Direction
	}
	type endpoint struct {
		edge int
		src  bool
	}
	groups := make(map[key][]endpoint)

	for i, e := range edges {
		var sf, st Direction
		if e.From == e.To {
			sf, st = East, East
		} else {
			sf, st = sides(l.Blocks[e.From], l.Blocks[e.To])
		}
		a.srcSide[i] = sf
		groups[key{e.From, sf}] = append(groups[key{e.From, sf}], endpoint{i, true})
		groups[key{e.To, st}] = append(groups[key{e.To, st}], endpoint{i, false})
	}

	for k, ends := range groups {
		r := l.Blocks[k.block].Rect
		for slot, end := range ends {
			cell := anchorCell(r, k.side, slotOffset(slot))
			if end.src {
				a.srcCell[end.edge] = cell
			} else {
				a.dstCell[end.edge] = cell
			}
		}
	}
	return a
}

func anchorCell(r grid.Rect, side Direction, offset int) Point {
	switch side {
	case East:
		return Point{r.Right(), clamp(r.CenterY()+offset, r.Y+1, r.Bottom()-1)}
	case West:
		return Point{r.X, clamp(r.CenterY()+offset, r.Y+1, r.Bottom()-1)}
	case South:
		return Point{clamp(r.CenterX()+offset, r.X+1, r.Right()-1), r.Bottom()}
	default:
		return Point{clamp(r.CenterX()+offset, r.X+1, r.Right()-1), r.Y}
	}
}

// slotOffset spreads group members out from the midpoint: slot 0 stays
// centered, odd slots step down/right, even slots step up/left.
func slotOffset(slot int) int {
	if slot%2 == 1 {
		return (slot + 1) / 2
	}
	return -slot / 2
}

func clamp(v, lo, hi int) int {
	if v < lo || hi < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
