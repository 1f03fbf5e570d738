package canvas

import (
	"fmt"
	"strings"

	"github.com/blockflow/blockflow/pkg/errors"
	"github.com/blockflow/blockflow/pkg/render/route"
)

// Built-in glyph style names.
const (
	StyleASCII   = "ascii"
	StyleUnicode = "unicode"
)

// Styles returns the names of the built-in glyph styles.
func Styles() []string {
	return []string{StyleASCII, StyleUnicode}
}

// cornerKey identifies a corner by the travel directions entering and
// leaving the cell.
type cornerKey struct {
	in, out route.Direction
}

// Style is a complete glyph set for the rasterizer: line, corner, crossing
// and arrow glyphs for edges plus border glyphs for blocks. Corner glyphs
// live in a lookup table keyed by (incoming, outgoing) direction so every
// combination is enumerable.
type Style struct {
	name string

	horizontal rune
	vertical   rune
	cross      rune
	corners    map[cornerKey]rune
	arrows     [4]rune // indexed by route.Direction

	blockHorizontal rune
	blockVertical   rune
	blockCorners    [4]rune // top-left, top-right, bottom-left, bottom-right
}

// Name returns the style's registered name.
func (s *Style) Name() string { return s.name }

func (s *Style) corner(in, out route.Direction) rune {
	g, ok := s.corners[cornerKey{in, out}]
	if !ok {
		panic(fmt.Sprintf("canvas: no corner glyph for %s to %s", in, out))
	}
	return g
}

func (s *Style) arrow(d route.Direction) rune { return s.arrows[d] }

var asciiStyle = &Style{
	name:       StyleASCII,
	horizontal: '-',
	vertical:   '|',
	cross:      '+',
	corners: map[cornerKey]rune{
		{route.East, route.North}: '+',
		{route.East, route.South}: '+',
		{route.West, route.North}: '+',
		{route.West, route.South}: '+',
		{route.North, route.East}: '+',
		{route.North, route.West}: '+',
		{route.South, route.East}: '+',
		{route.South, route.West}: '+',
	},
	arrows:          [4]rune{route.North: '^', route.South: 'v', route.East: '>', route.West: '<'},
	blockHorizontal: '-',
	blockVertical:   '|',
	blockCorners:    [4]rune{'+', '+', '+', '+'},
}

var unicodeStyle = &Style{
	name:       StyleUnicode,
	horizontal: '─',
	vertical:   '│',
	cross:      '┼',
	corners: map[cornerKey]rune{
		{route.East, route.North}: '┘',
		{route.East, route.South}: '┐',
		{route.West, route.North}: '└',
		{route.West, route.South}: '┌',
		{route.North, route.East}: '┌',
		{route.North, route.West}: '┐',
		{route.South, route.East}: '└',
		{route.South, route.West}: '┘',
	},
	arrows:          [4]rune{route.North: '▲', route.South: '▼', route.East: '▶', route.West: '◀'},
	blockHorizontal: '─',
	blockVertical:   '│',
	blockCorners:    [4]rune{'┌', '┐', '└', '┘'},
}

// ParseStyle resolves a style name to its glyph set. The empty string
// selects the ASCII default.
func ParseStyle(name string) (*Style, error) {
	switch name {
	case "", StyleASCII:
		return asciiStyle, nil
	case StyleUnicode:
		return unicodeStyle, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle,
		"unknown style %q (valid: %s)", name, strings.Join(Styles(), ", "))
}
