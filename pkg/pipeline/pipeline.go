// Package pipeline provides the complete diagram processing pipeline for blockflow.
//
// This package implements the decode → render → sink pipeline that can be
// used by CLI and server components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Read diagram input (JSON or TOML) and validate it into a model
//  2. Render: Produce the character-grid rendering of the diagram
//  3. Sink: Emit the requested artifact (plain text, DOT, or Graphviz SVG)
//
// The SVG sink is the only expensive stage and is cached content-addressed:
// the cache key hashes the input bytes and the render options, so a cached
// artifact can never be stale.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Input: "arch.json",
//	    Sink:  pipeline.SinkText,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifact))
//
// Callers that already hold the input in memory (such as the HTTP server)
// use ExecuteBytes instead of Execute.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blockflow/blockflow/pkg/diagram"
	"github.com/blockflow/blockflow/pkg/errors"
	diagio "github.com/blockflow/blockflow/pkg/io"
	"github.com/blockflow/blockflow/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultSink is the artifact produced when no sink is requested.
const DefaultSink = SinkText

// Sink constants for output artifacts.
const (
	SinkText = "text"
	SinkDot  = "dot"
	SinkSVG  = "svg"
)

// ValidSinks is the set of supported output artifacts.
var ValidSinks = map[string]bool{
	SinkText: true,
	SinkDot:  true,
	SinkSVG:  true,
}

// ValidFormats is the set of supported input formats.
var ValidFormats = map[string]bool{
	string(diagio.FormatJSON): true,
	string(diagio.FormatTOML): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options
	Input  string `json:"input,omitempty"`  // Diagram file path, or "-" for stdin
	Format string `json:"format,omitempty"` // Input format; detected from the path when empty, stdin defaults to JSON

	// Render options
	Render render.Options `json:"render"`

	// Sink options
	Sink   string `json:"sink,omitempty"`   // Output artifact: text, dot, or svg
	Output string `json:"output,omitempty"` // Output file path; empty keeps the artifact in memory

	// Cache options
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the decoded, validated model.
	Diagram *diagram.Diagram

	// Render is the character-grid render result, including warnings.
	Render *render.Result

	// Artifact contains the sink output bytes.
	Artifact []byte

	// InputHash is the content hash of the raw input bytes.
	InputHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifact hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount int
	EdgeCount  int
	DecodeTime time.Duration
	RenderTime time.Duration
	SinkTime   time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ArtifactHit bool // Whether the sink artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an input format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid input format: %q (must be one of: json, toml)", format)
	}
	return nil
}

// ValidateSink checks that a sink is valid.
func ValidateSink(sink string) error {
	if !ValidSinks[sink] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid sink: %q (must be one of: text, dot, svg)", sink)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks field values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Format == "" {
		if o.Input != "" && o.Input != "-" {
			format, err := diagio.DetectFormat(o.Input)
			if err != nil {
				return err
			}
			o.Format = string(format)
		} else {
			o.Format = string(diagio.FormatJSON)
		}
	} else if err := ValidateFormat(o.Format); err != nil {
		return err
	}

	if o.Sink == "" {
		o.Sink = DefaultSink
	} else if err := ValidateSink(o.Sink); err != nil {
		return err
	}

	if err := o.Render.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}
