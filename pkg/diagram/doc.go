// Package diagram defines the validated in-memory model that the render
// pipeline consumes.
//
// # Overview
//
// A diagram is a set of named blocks placed on a sparse integer grid plus an
// ordered list of directed edges between them. The model is deliberately
// small: it carries exactly the information the renderer needs and none of
// the serialization concerns (those live in [pkg/io]).
//
// # Construction
//
// Diagrams are built once with [New] and are immutable afterwards:
//
//	d, err := diagram.New(
//	    []diagram.Block{
//	        {Text: "api", Column: 0, Row: 0},
//	        {Text: "db", Column: 1, Row: 0},
//	    },
//	    []diagram.Edge{{From: "api", To: "db"}},
//	)
//
// [New] sanitizes display text, resolves implicit identities (a block
// without an id uses its text), and enforces the three model invariants:
// unique identities, unique grid cells, and referentially intact edges.
// Violations surface as coded errors from [pkg/errors] before any canvas
// work happens.
//
// # Identity
//
// Edges reference blocks by identity string. The id field is optional in
// the input formats; when omitted, the sanitized display text serves as the
// identity. Resolution happens here, at construction time, so the renderer
// never compares display text.
//
// # Concurrency
//
// A constructed Diagram is read-only. Any number of goroutines may render
// the same Diagram concurrently without synchronization.
//
// [pkg/io]: github.com/blockflow/blockflow/pkg/io
// [pkg/errors]: github.com/blockflow/blockflow/pkg/errors
package diagram
