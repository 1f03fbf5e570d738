// Package grid resolves sparse block coordinates into absolute canvas
// geometry.
//
// # Overview
//
// Diagram blocks sit on an unbounded integer grid where coordinates only
// express relative order: columns 0 and 7 with nothing between them are
// adjacent. [Resolve] compresses each axis to dense ranks, sizes every rank
// to fit its widest occupant, and lays the ranks out left to right and top
// to bottom separated by gutter bands.
//
// # Gutters
//
// The margins between ranks, plus one trailing band per axis, are kept free
// of block cells. The edge router relies on this: any gutter centerline is a
// straight corridor crossing the whole canvas, reachable via
// [Layout.GutterRightOf] and friends. There is no leading gutter, so a
// diagram with a single block renders as exactly that block's box.
package grid
