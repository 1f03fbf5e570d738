package canvas

import (
	"strings"
	"testing"

	"github.com/blockflow/blockflow/pkg/render/grid"
	"github.com/blockflow/blockflow/pkg/render/route"
)

func ascii(t *testing.T) *Style {
	t.Helper()
	s, err := ParseStyle(StyleASCII)
	if err != nil {
		t.Fatalf("ParseStyle() error = %v", err)
	}
	return s
}

func row(c *Canvas, y int) string {
	rows := strings.Split(c.String(), "\n")
	if y >= len(rows) {
		return ""
	}
	return rows[y]
}

func TestDrawBlock(t *testing.T) {
	c := New(8, 3, ascii(t))
	c.DrawBlock(grid.Rect{X: 0, Y: 0, W: 8, H: 3}, "hi")

	want := "+------+\n|  hi  |\n+------+"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestDrawBlockCentersLeftBiased(t *testing.T) {
	c := New(8, 3, ascii(t))
	c.DrawBlock(grid.Rect{X: 0, Y: 0, W: 8, H: 3}, "abc")

	if got := row(c, 1); got != "| abc  |" {
		t.Errorf("text row = %q, want %q", got, "| abc  |")
	}
}

func TestDrawBlockPadded(t *testing.T) {
	c := New(5, 5, ascii(t))
	c.DrawBlock(grid.Rect{X: 0, Y: 0, W: 5, H: 5}, "x")

	want := "+---+\n|   |\n| x |\n|   |\n+---+"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestDrawRouteStraight(t *testing.T) {
	c := New(12, 3, ascii(t))
	c.DrawBlock(grid.Rect{X: 0, Y: 0, W: 3, H: 3}, "a")
	c.DrawBlock(grid.Rect{X: 9, Y: 0, W: 3, H: 3}, "b")
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 2, Y: 1}, {X: 9, Y: 1}},
		Arrow:  route.East,
	})

	if got := row(c, 1); got != "|a|----->|b|" {
		t.Errorf("line row = %q, want %q", got, "|a|----->|b|")
	}
}

func TestDrawRouteCorners(t *testing.T) {
	c := New(7, 7, ascii(t))
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 0, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 6}},
		Arrow:  route.South,
	})

	want := strings.Join([]string{
		"",
		" ----+",
		"     |",
		"     |",
		"     |",
		"     v",
	}, "\n")
	if got := c.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestPerpendicularLinesCross(t *testing.T) {
	c := New(9, 6, ascii(t))
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 0, Y: 2}, {X: 8, Y: 2}},
		Arrow:  route.East,
	})
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 4, Y: 0}, {X: 4, Y: 5}},
		Arrow:  route.South,
	})

	if got := row(c, 2); got != " ---+-->" {
		t.Errorf("crossing row = %q, want %q", got, " ---+-->")
	}
	if got := row(c, 3); got != "    |" {
		t.Errorf("vertical row = %q, want %q", got, "    |")
	}
}

func TestCornerSurvivesLaterLine(t *testing.T) {
	c := New(8, 5, ascii(t))
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 0, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 4}},
		Arrow:  route.South,
	})
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 0, Y: 1}, {X: 7, Y: 1}},
		Arrow:  route.East,
	})

	// The second route runs straight through the first one's corner cell;
	// the corner glyph is kept rather than flattened into a line.
	if got := row(c, 1); got != " ---+->" {
		t.Errorf("corner row = %q, want %q", got, " ---+->")
	}
}

func TestArrowSurvivesLaterLine(t *testing.T) {
	c := New(8, 4, ascii(t))
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 3, Y: 0}, {X: 3, Y: 3}},
		Arrow:  route.South,
	})
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 0, Y: 2}, {X: 7, Y: 2}},
		Arrow:  route.East,
	})

	if got := row(c, 2); got != " --v-->" {
		t.Errorf("arrow row = %q, want %q", got, " --v-->")
	}
}

func TestDrawRouteSkipsBlockCells(t *testing.T) {
	c := New(9, 3, ascii(t))
	c.DrawBlock(grid.Rect{X: 3, Y: 0, W: 3, H: 3}, "m")
	c.DrawRoute(route.Route{
		Points:   []route.Point{{X: 0, Y: 1}, {X: 8, Y: 1}},
		Arrow:    route.East,
		Fallback: true,
	})

	// The fallback line breaks at the block instead of cutting through it.
	if got := row(c, 1); got != " --|m|->" {
		t.Errorf("fallback row = %q, want %q", got, " --|m|->")
	}
}

func TestDrawRouteDegenerate(t *testing.T) {
	c := New(4, 4, ascii(t))
	c.DrawRoute(route.Route{Points: []route.Point{{X: 1, Y: 1}}})
	c.DrawRoute(route.Route{Points: nil})

	if got := c.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}

func TestDrawLabel(t *testing.T) {
	c := New(12, 5, ascii(t))
	rt := route.Route{
		Points: []route.Point{{X: 0, Y: 2}, {X: 11, Y: 2}},
		Arrow:  route.East,
	}
	c.DrawRoute(rt)
	if !c.DrawLabel(rt, "hi") {
		t.Fatal("DrawLabel() = false, want true")
	}

	if got := row(c, 2); got != " -- hi --->" {
		t.Errorf("label row = %q, want %q", got, " -- hi --->")
	}
}

func TestDrawLabelPrefersLongestRun(t *testing.T) {
	c := New(16, 6, ascii(t))
	rt := route.Route{
		Points: []route.Point{{X: 0, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 4}, {X: 15, Y: 4}},
		Arrow:  route.East,
	}
	c.DrawRoute(rt)
	if !c.DrawLabel(rt, "label") {
		t.Fatal("DrawLabel() = false, want true")
	}

	if got := row(c, 1); got != " --+" {
		t.Errorf("short run = %q, want untouched %q", got, " --+")
	}
	if got := row(c, 4); got != "   +- label -->" {
		t.Errorf("label row = %q, want %q", got, "   +- label -->")
	}
}

func TestDrawLabelTooLong(t *testing.T) {
	c := New(8, 3, ascii(t))
	rt := route.Route{
		Points: []route.Point{{X: 0, Y: 1}, {X: 7, Y: 1}},
		Arrow:  route.East,
	}
	c.DrawRoute(rt)
	if c.DrawLabel(rt, "much too long") {
		t.Fatal("DrawLabel() = true, want false")
	}

	if got := row(c, 1); got != " ----->" {
		t.Errorf("line row = %q, want untouched %q", got, " ----->")
	}
}

func TestStringTrimsTrailingOnly(t *testing.T) {
	c := New(10, 6, ascii(t))
	c.DrawBlock(grid.Rect{X: 0, Y: 0, W: 4, H: 3}, "a")

	got := c.String()
	if strings.Count(got, "\n") != 2 {
		t.Errorf("String() kept %d newlines, want 2:\n%s", strings.Count(got, "\n"), got)
	}
	for i, line := range strings.Split(got, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("row %d has trailing blanks: %q", i, line)
		}
	}
}

func TestUnicodeStyleGlyphs(t *testing.T) {
	s, err := ParseStyle(StyleUnicode)
	if err != nil {
		t.Fatalf("ParseStyle() error = %v", err)
	}
	c := New(7, 5, s)
	c.DrawBlock(grid.Rect{X: 0, Y: 0, W: 3, H: 3}, "a")
	c.DrawRoute(route.Route{
		Points: []route.Point{{X: 2, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 4}},
		Arrow:  route.South,
	})

	want := strings.Join([]string{
		"┌─┐",
		"│a│──┐",
		"└─┘  │",
		"     ▼",
	}, "\n")
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestOutOfBoundsWritePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-bounds write")
		}
	}()
	c := New(4, 4, asciiStyle)
	c.DrawBlock(grid.Rect{X: 2, Y: 2, W: 4, H: 4}, "x")
}
