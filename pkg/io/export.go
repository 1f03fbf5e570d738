package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
)

type document struct {
	Blocks []blockEntry `json:"blocks" toml:"blocks"`
	Edges  []edgeEntry  `json:"edges" toml:"edges,omitempty"`
}

type blockEntry struct {
	Text     string   `json:"text" toml:"text"`
	Position position `json:"position" toml:"position"`
	ID       string   `json:"id,omitempty" toml:"id,omitempty"`
}

type position struct {
	Column int `json:"column" toml:"column"`
	Row    int `json:"row" toml:"row"`
}

type edgeEntry struct {
	From  string `json:"from" toml:"from"`
	To    string `json:"to" toml:"to"`
	Label string `json:"label,omitempty" toml:"label,omitempty"`
}

// WriteJSON encodes a diagram as indented JSON and writes it to w.
// The output includes all blocks (with grid positions) and edges and can be
// re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a diagram as TOML and writes it to w.
// The output can be re-imported with [ReadTOML].
func WriteTOML(d *diagram.Diagram, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(newDocument(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes d to w in the given format.
func Write(d *diagram.Diagram, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(d, w)
	case FormatTOML:
		return WriteTOML(d, w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown diagram format %q", format)
	}
}

// ExportFile writes a diagram to the file at path, choosing the format from
// the file extension. This is a convenience wrapper around [WriteJSON] and
// [WriteTOML] for file-based output.
func ExportFile(d *diagram.Diagram, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f, format)
}

// newDocument flattens a diagram into the wire schema. Block IDs equal to
// the display text are elided so minimal inputs round-trip unchanged.
func newDocument(d *diagram.Diagram) document {
	doc := document{
		Blocks: make([]blockEntry, d.BlockCount()),
		Edges:  make([]edgeEntry, d.EdgeCount()),
	}
	for i, b := range d.Blocks() {
		be := blockEntry{Text: b.Text, Position: position{Column: b.Column, Row: b.Row}}
		if b.ID != b.Text {
			be.ID = b.ID
		}
		doc.Blocks[i] = be
	}
	for i, e := range d.Edges() {
		doc.Edges[i] = edgeEntry{From: e.From, To: e.To, Label: e.Label}
	}
	return doc
}
