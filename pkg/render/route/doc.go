// Package route plans orthogonal edge paths across a resolved layout.
//
// # Anchors
//
// Each edge endpoint attaches to one side of its block, chosen from the
// rank deltas between source and destination: same row means left/right,
// same column means top/bottom, diagonals take the axis with the larger
// rank distance with horizontal winning ties. Endpoints sharing a side fan
// out from the side midpoint in declaration order so their anchor cells
// stay distinct where the side has room.
//
// # Planning
//
// Paths are Manhattan polylines confined to gutter space. [Plan] tries each
// edge against a fixed candidate ladder (straight, Z past the source, Z
// past the destination, gutter staircase) and takes the first candidate
// that clears every block rectangle. Edges never avoid each other:
// crossings are legal and drawn as crossing glyphs by the rasterizer.
//
// # Fallback
//
// A structurally valid diagram always renders. When no gutter route exists
// the edge degrades to a single-turn elbow and the router records a
// [Warning] instead of failing, leaving the caller to decide whether
// overlapping output is acceptable.
package route
