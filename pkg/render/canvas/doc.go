// Package canvas rasterizes resolved geometry into a character buffer.
//
// Blocks are drawn first and claim every cell of their rectangle, then edge
// routes are traced over the remaining space. Each cell remembers what kind
// of glyph holds it, so overlapping draws merge by rank instead of by draw
// order alone: perpendicular line runs fuse into a crossing glyph, corners
// and arrow heads are never flattened back into plain lines, and block
// cells are immutable once claimed.
//
// Glyphs come from a [Style]. The ASCII default renders with '-', '|' and
// '+' only; the unicode style swaps in box-drawing runes and solid arrow
// heads. Corner glyphs are resolved through a lookup keyed by incoming and
// outgoing travel direction, so the full set of turns is enumerable.
package canvas
