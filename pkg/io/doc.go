// Package io provides JSON and TOML import and export for diagrams.
//
// # Overview
//
// This package serializes diagrams to and from two equivalent formats. Both
// map to the identical model, so nothing downstream ever branches on the
// input format. The formats are designed for:
//
//   - Hand-written diagram files kept next to the code they describe
//   - Integration with tools that produce or consume diagram data
//   - Round-trip preservation: import, render, export, and re-import
//     identically
//
// # JSON Format
//
// The JSON form is an object with a "blocks" array and an optional "edges"
// array:
//
//	{
//	  "blocks": [
//	    {"text": "app", "position": {"column": 0, "row": 0}},
//	    {"text": "db", "position": {"column": 1, "row": 0}}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "db", "label": "reads"}
//	  ]
//	}
//
// # TOML Format
//
// The TOML form is the same schema as arrays of tables:
//
//	[[blocks]]
//	text = "app"
//	position = { column = 0, row = 0 }
//
//	[[blocks]]
//	text = "db"
//	position = { column = 1, row = 0 }
//
//	[[edges]]
//	from = "app"
//	to = "db"
//	label = "reads"
//
// # Block Fields
//
// Required:
//   - text: Display text, drawn inside the block's border
//   - position: Logical grid cell (column, row); coordinates may be
//     negative and need not be contiguous
//
// Optional:
//   - id: Unique identity for edge references (defaults to the text)
//
// # Import
//
// Use [ImportFile] to read a diagram from a file path (format chosen by
// extension), or [ReadJSON] and [ReadTOML] to read from any io.Reader:
//
//	d, err := io.ImportFile("arch.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All readers validate through the same model construction: duplicate
// identities and dangling edge references surface as MALFORMED_DIAGRAM,
// grid cell collisions as PLACEMENT_CONFLICT, and syntax problems as
// INVALID_INPUT. Check codes with the errors package's Is.
//
// # Export
//
// Use [ExportFile] to write a diagram to a file, or [WriteJSON] and
// [WriteTOML] to write to any io.Writer:
//
//	err := io.ExportFile(d, "arch.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Exports preserve block order, edge order, explicit identities, and
// labels, so converting between the two formats never changes how a
// diagram renders.
//
// # Concurrency
//
// Diagrams are immutable, so all functions in this package are safe to
// call concurrently on the same diagram. [ReadJSON], [ReadTOML], and
// [ImportFile] return independent instances.
package io
