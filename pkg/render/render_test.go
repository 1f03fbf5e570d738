package render

import (
	"strings"
	"testing"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
)

func mustDiagram(t *testing.T, blocks []diagram.Block, edges []diagram.Edge) *diagram.Diagram {
	t.Helper()
	d, err := diagram.New(blocks, edges)
	if err != nil {
		t.Fatalf("diagram.New() error = %v", err)
	}
	return d
}

func mustRender(t *testing.T, d *diagram.Diagram, opts Options) *Result {
	t.Helper()
	res, err := Render(d, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return res
}

func TestRenderSingleBlock(t *testing.T) {
	d := mustDiagram(t, []diagram.Block{{Text: "db", Column: 3, Row: -7}}, nil)
	res := mustRender(t, d, Options{})

	want := "+--+\n|db|\n+--+"
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
	if res.Width != 4 || res.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", res.Width, res.Height)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestRenderTwoAdjacentBlocks(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "a", Column: 0, Row: 0},
			{Text: "b", Column: 1, Row: 0},
		},
		[]diagram.Edge{{From: "a", To: "b"}},
	)
	res := mustRender(t, d, Options{})

	want := strings.Join([]string{
		"+-+     +-+",
		"|a|---->|b|",
		"+-+     +-+",
	}, "\n")
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
}

func TestRenderWorkedExample(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "zero", Column: -1, Row: -1},
			{Text: "one", Column: 0, Row: -1},
			{Text: "two", Column: 1, Row: -1},
			{Text: "0000", Column: -1, Row: 0},
			{Text: "four", Column: 1, Row: 0},
			{Text: "oooo", Column: -1, Row: 1},
		},
		[]diagram.Edge{
			{From: "one", To: "four"},
			{From: "one", To: "0000"},
			{From: "two", To: "zero"},
			{From: "oooo", To: "zero"},
		},
	)
	res := mustRender(t, d, Options{})

	want := strings.Join([]string{
		"+----+     +---+     +----+",
		"|zero|<-+--|one|--+--|two |",
		"+----+  |  +---+  |  +----+",
		"   ^    |         |",
		"   +----+---------+",
		"        |         |",
		"+----+  |         |  +----+",
		"|0000|<-+         +->|four|",
		"+----+  |            +----+",
		"        |",
		"   +----+",
		"   |",
		"+----+",
		"|oooo|",
		"+----+",
	}, "\n")
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if res.Stats.BlockCount != 6 || res.Stats.EdgeCount != 4 {
		t.Errorf("Stats = %+v, want 6 blocks, 4 edges", res.Stats)
	}
}

func TestRenderDeterminism(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "api", Column: 0, Row: 0},
			{Text: "auth", Column: 2, Row: 0},
			{Text: "db", Column: 1, Row: 1},
			{Text: "cache", Column: 3, Row: 2},
		},
		[]diagram.Edge{
			{From: "api", To: "auth"},
			{From: "auth", To: "db"},
			{From: "api", To: "db"},
			{From: "auth", To: "cache"},
		},
	)

	first := mustRender(t, d, Options{})
	for i := 0; i < 10; i++ {
		if again := mustRender(t, d, Options{}); again.Text != first.Text {
			t.Fatal("Render() output differs across runs")
		}
	}
}

func TestRenderEmptyDiagram(t *testing.T) {
	d := mustDiagram(t, nil, nil)
	res := mustRender(t, d, Options{})

	if res.Text != "" || res.Width != 0 || res.Height != 0 {
		t.Errorf("empty diagram rendered %q (%dx%d), want empty", res.Text, res.Width, res.Height)
	}
}

func TestRenderLabel(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "alpha", Column: 0, Row: 0},
			{Text: "beta", Column: 1, Row: 0},
		},
		[]diagram.Edge{{From: "alpha", To: "beta", Label: "go"}},
	)
	res := mustRender(t, d, Options{})

	lines := strings.Split(res.Text, "\n")
	if lines[1] != "|alpha| go >|beta|" {
		t.Errorf("label row = %q, want %q", lines[1], "|alpha| go >|beta|")
	}
	if res.Stats.LabelsDrawn != 1 || res.Stats.LabelsSkipped != 0 {
		t.Errorf("Stats = %+v, want one label drawn", res.Stats)
	}
}

func TestRenderLabelSkippedWhenTooLong(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "a", Column: 0, Row: 0},
			{Text: "b", Column: 1, Row: 0},
		},
		[]diagram.Edge{{From: "a", To: "b", Label: "far too long to fit"}},
	)
	res := mustRender(t, d, Options{})

	if res.Stats.LabelsSkipped != 1 {
		t.Errorf("Stats = %+v, want one label skipped", res.Stats)
	}
	if !strings.Contains(res.Text, "|a|---->|b|") {
		t.Errorf("line should stay unlabeled:\n%s", res.Text)
	}
}

func TestRenderSelfEdgeWarns(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{{Text: "loop", Column: 0, Row: 0}},
		[]diagram.Edge{{From: "loop", To: "loop"}},
	)
	res := mustRender(t, d, Options{})

	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one", res.Warnings)
	}
	if !strings.Contains(res.Text, "|loop|") {
		t.Errorf("block missing from output:\n%s", res.Text)
	}
}

func TestRenderUnicodeStyle(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "a", Column: 0, Row: 0},
			{Text: "b", Column: 1, Row: 0},
		},
		[]diagram.Edge{{From: "a", To: "b"}},
	)
	res := mustRender(t, d, Options{Style: "unicode"})

	want := strings.Join([]string{
		"┌─┐     ┌─┐",
		"│a│────▶│b│",
		"└─┘     └─┘",
	}, "\n")
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
}

func TestRenderPadding(t *testing.T) {
	d := mustDiagram(t, []diagram.Block{{Text: "x", Column: 0, Row: 0}}, nil)
	res := mustRender(t, d, Options{Padding: 1})

	want := strings.Join([]string{
		"+---+",
		"|   |",
		"| x |",
		"|   |",
		"+---+",
	}, "\n")
	if res.Text != want {
		t.Errorf("Text =\n%s\nwant\n%s", res.Text, want)
	}
}

func TestRenderCanvasLimit(t *testing.T) {
	d := mustDiagram(t,
		[]diagram.Block{
			{Text: "wide block text here", Column: 0, Row: 0},
			{Text: "another wide one", Column: 1, Row: 0},
		},
		nil,
	)
	_, err := Render(d, Options{MaxWidth: 16})
	if !errors.Is(err, errors.ErrCodeCanvasLimit) {
		t.Errorf("Render() error = %v, want %s", err, errors.ErrCodeCanvasLimit)
	}
}

func TestRenderErrors(t *testing.T) {
	d := mustDiagram(t, []diagram.Block{{Text: "a", Column: 0, Row: 0}}, nil)

	tests := []struct {
		name string
		d    *diagram.Diagram
		opts Options
		code errors.Code
	}{
		{"nil diagram", nil, Options{}, errors.ErrCodeInvalidInput},
		{"negative margin", d, Options{HMargin: -1}, errors.ErrCodeInvalidOptions},
		{"negative padding", d, Options{Padding: -2}, errors.ErrCodeInvalidOptions},
		{"negative bound", d, Options{MaxWidth: -5}, errors.ErrCodeInvalidOptions},
		{"unknown style", d, Options{Style: "neon"}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.d, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Render() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.HMargin != DefaultHMargin || opts.VMargin != DefaultVMargin {
		t.Errorf("margins = %d, %d, want defaults %d, %d", opts.HMargin, opts.VMargin, DefaultHMargin, DefaultVMargin)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.MaxWidth != DefaultMaxWidth || opts.MaxHeight != DefaultMaxHeight {
		t.Errorf("bounds = %d, %d, want defaults", opts.MaxWidth, opts.MaxHeight)
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.HMargin != DefaultHMargin {
		t.Errorf("HMargin changed on second call: %d", opts.HMargin)
	}
}
