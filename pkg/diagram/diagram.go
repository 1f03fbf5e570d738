package diagram

import (
	"slices"
	"strings"

	"github.com/blockflow/blockflow/pkg/errors"
)

// Block is a named text box placed at a grid cell.
// Coordinates are logical grid positions: they may be negative and need not
// be contiguous. The layout resolver compresses them to dense ranks, so only
// their relative order matters.
//
// The zero value is not usable on its own - blocks become part of a diagram
// through [New], which assigns the default identity and sanitizes the text.
type Block struct {
	ID     string // Unique identity (defaults to the sanitized display text)
	Text   string // Display text, a single line
	Column int    // Logical grid column
	Row    int    // Logical grid row
}

// Edge is a directed connection between two blocks, referenced by identity.
type Edge struct {
	From  string // Source block ID
	To    string // Destination block ID
	Label string // Optional label drawn along the routed path
}

// Diagram is a validated, immutable set of blocks plus an ordered edge list.
// Edge order matters: it determines draw order and fan-out tie-breaks.
//
// A Diagram is constructed once via [New] and never modified afterwards;
// accessors return copies. Renders derive geometry from it but never write
// back, so a single Diagram may be rendered concurrently from multiple
// goroutines.
type Diagram struct {
	blocks []Block
	edges  []Edge
	index  map[string]int // block ID -> position in blocks
}

// New builds a validated diagram from blocks and edges.
//
// Validation happens in construction order:
//  1. Display text is sanitized to ASCII graphic characters plus space;
//     anything else (control characters, non-ASCII runes) is dropped.
//  2. A block without an explicit ID takes its sanitized text as identity.
//  3. Identities must be well-formed and unique.
//  4. No two blocks may share a (column, row) cell.
//  5. Every edge endpoint must reference an existing block ID.
//
// Failures surface as coded errors: [errors.ErrCodeMalformedDiagram] for
// identity and reference problems, [errors.ErrCodePlacementConflict] (with a
// wrapped [errors.PlacementError]) for cell collisions. Nothing is partially
// constructed on error.
func New(blocks []Block, edges []Edge) (*Diagram, error) {
	d := &Diagram{
		blocks: slices.Clone(blocks),
		edges:  slices.Clone(edges),
		index:  make(map[string]int, len(blocks)),
	}

	type cell struct{ col, row int }
	occupied := make(map[cell]string, len(blocks))

	for i := range d.blocks {
		b := &d.blocks[i]
		b.Text = Sanitize(b.Text)
		if b.ID == "" {
			b.ID = b.Text
		}

		if err := errors.ValidateBlockID(b.ID); err != nil {
			return nil, err
		}
		if _, exists := d.index[b.ID]; exists {
			return nil, errors.New(errors.ErrCodeMalformedDiagram, "duplicate block identity %q", b.ID)
		}
		d.index[b.ID] = i

		c := cell{b.Column, b.Row}
		if first, taken := occupied[c]; taken {
			return nil, errors.Wrap(errors.ErrCodePlacementConflict,
				&errors.PlacementError{Column: b.Column, Row: b.Row, First: first, Second: b.ID},
				"conflicting placement")
		}
		occupied[c] = b.ID
	}

	for i := range d.edges {
		e := &d.edges[i]
		e.Label = Sanitize(e.Label)
		if err := errors.ValidateEdgeLabel(e.Label); err != nil {
			return nil, err
		}
		if _, ok := d.index[e.From]; !ok {
			return nil, errors.New(errors.ErrCodeMalformedDiagram,
				"edge %q -> %q references unknown block %q", e.From, e.To, e.From)
		}
		if _, ok := d.index[e.To]; !ok {
			return nil, errors.New(errors.ErrCodeMalformedDiagram,
				"edge %q -> %q references unknown block %q", e.From, e.To, e.To)
		}
	}

	return d, nil
}

// Blocks returns the blocks in declaration order.
// The returned slice is a copy and safe to modify.
func (d *Diagram) Blocks() []Block {
	return slices.Clone(d.blocks)
}

// Edges returns the edges in declaration order.
// The returned slice is a copy and safe to modify.
func (d *Diagram) Edges() []Edge {
	return slices.Clone(d.edges)
}

// Block looks up a block by identity.
func (d *Diagram) Block(id string) (Block, bool) {
	i, ok := d.index[id]
	if !ok {
		return Block{}, false
	}
	return d.blocks[i], true
}

// BlockCount returns the number of blocks.
func (d *Diagram) BlockCount() int { return len(d.blocks) }

// EdgeCount returns the number of edges.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Sanitize filters s down to the characters a canvas cell can hold:
// ASCII graphic characters and the space. Everything else is dropped, so
// multi-line or decorated input degrades to its plain-text core instead of
// corrupting the character grid.
func Sanitize(s string) string {
	if isClean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ' ' || (r > 0x20 && r < 0x7f) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isClean(s string) bool {
	for _, r := range s {
		if r != ' ' && (r <= 0x20 || r >= 0x7f) {
			return false
		}
	}
	return true
}
