package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
)

// Format identifies a diagram serialization format.
type Format string

// Supported serialization formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat maps a file path to its serialization format by extension.
// Recognized extensions are ".json" and ".toml" (case-insensitive).
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot detect diagram format of %q (want a .json or .toml extension)", path)
	}
}

// ReadJSON decodes a JSON diagram from r.
//
// The input must be a JSON object with a "blocks" array and an optional
// "edges" array:
//
//	{
//	  "blocks": [
//	    {"text": "app", "position": {"column": 0, "row": 0}},
//	    {"text": "db", "position": {"column": 1, "row": 0}, "id": "db1"}
//	  ],
//	  "edges": [{"from": "app", "to": "db1", "label": "reads"}]
//	}
//
// Each block needs "text" and "position"; "id" defaults to the text.
// Each edge references block IDs and may carry a "label".
//
// ReadJSON returns an error if:
//   - The JSON is malformed (INVALID_INPUT)
//   - A block has a duplicate or empty identity (MALFORMED_DIAGRAM)
//   - Two blocks share a grid cell (PLACEMENT_CONFLICT)
//   - An edge references an unknown block ID (MALFORMED_DIAGRAM)
//
// Use errors.Is with the error codes to distinguish these cases.
//
// The returned diagram is independent of r and safe to use after ReadJSON
// returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON")
	}
	return doc.diagram()
}

// ReadTOML decodes a TOML diagram from r.
//
// The input is the TOML rendering of the same schema [ReadJSON] accepts:
//
//	[[blocks]]
//	text = "app"
//	position = { column = 0, row = 0 }
//
//	[[edges]]
//	from = "app"
//	to = "db"
//
// Validation and error codes are identical to [ReadJSON]; both formats
// funnel through the same model construction.
func ReadTOML(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML")
	}
	return doc.diagram()
}

// Read decodes a diagram from r in the given format.
func Read(r io.Reader, format Format) (*diagram.Diagram, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown diagram format %q", format)
	}
}

// ImportFile reads the diagram file at path, choosing the format from the
// file extension.
//
// ImportFile opens the file, decodes it with [ReadJSON] or [ReadTOML], and
// closes the file. Open failures wrap the underlying cause with the file
// path for context; decode failures carry the same error codes as the
// reader functions.
func ImportFile(path string) (*diagram.Diagram, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// diagram converts the wire document into a validated model. All structural
// checks (identity, placement, edge references) happen in diagram.New so
// JSON and TOML inputs fail identically.
func (doc document) diagram() (*diagram.Diagram, error) {
	blocks := make([]diagram.Block, len(doc.Blocks))
	for i, b := range doc.Blocks {
		blocks[i] = diagram.Block{
			ID:     b.ID,
			Text:   b.Text,
			Column: b.Position.Column,
			Row:    b.Position.Row,
		}
	}
	edges := make([]diagram.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = diagram.Edge{From: e.From, To: e.To, Label: e.Label}
	}
	return diagram.New(blocks, edges)
}
