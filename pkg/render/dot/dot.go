package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes each block's grid position in its label.
	// When false, only the display text is shown.
	Detailed bool
}

// ToDOT converts a diagram to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or processed by external
// Graphviz tools.
//
// Blocks sharing a grid row are pinned to the same Graphviz rank, so the
// DOT layout keeps the diagram's row structure even though Graphviz
// chooses the horizontal placement itself.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph blockflow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	blocks := d.Blocks()
	for _, b := range blocks {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", b.ID, fmtLabel(b, opts.Detailed))
	}

	for _, row := range rowGroups(blocks) {
		buf.WriteString("  { rank=same;")
		for _, id := range row {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b diagram.Block, detailed bool) string {
	if !detailed {
		return b.Text
	}
	return fmt.Sprintf("%s\n(%d, %d)", b.Text, b.Column, b.Row)
}

// rowGroups returns block IDs grouped by grid row, rows in ascending
// order and IDs ordered by column within each row.
func rowGroups(blocks []diagram.Block) [][]string {
	byRow := make(map[int][]diagram.Block)
	for _, b := range blocks {
		byRow[b.Row] = append(byRow[b.Row], b)
	}

	rows := make([]int, 0, len(byRow))
	for r := range byRow {
		rows = append(rows, r)
	}
	sort.Ints(rows)

	groups := make([][]string, 0, len(rows))
	for _, r := range rows {
		group := byRow[r]
		sort.Slice(group, func(i, j int) bool { return group[i].Column < group[j].Column })
		ids := make([]string, len(group))
		for i, b := range group {
			ids[i] = b.ID
		}
		groups = append(groups, ids)
	}
	return groups
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin and the width/height attributes use plain pixels, which keeps
// browser scaling consistent across Graphviz versions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
