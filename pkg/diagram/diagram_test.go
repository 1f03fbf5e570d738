package diagram

import (
	stderrors "errors"
	"testing"

	"github.com/blockflow/blockflow/pkg/errors"
)

func TestNewValid(t *testing.T) {
	d, err := New(
		[]Block{
			{Text: "api", Column: 0, Row: 0},
			{Text: "db", Column: 1, Row: 0, ID: "primary"},
		},
		[]Edge{{From: "api", To: "primary", Label: "reads"}},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := d.BlockCount(); got != 2 {
		t.Errorf("BlockCount() = %d, want 2", got)
	}
	if got := d.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}

	b, ok := d.Block("api")
	if !ok {
		t.Fatal("Block(api) not found")
	}
	if b.ID != "api" || b.Text != "api" {
		t.Errorf("Block(api) = %+v, want ID and Text both \"api\"", b)
	}

	if _, ok := d.Block("db"); ok {
		t.Error("Block(db) found, want lookup by explicit ID only")
	}
	if _, ok := d.Block("primary"); !ok {
		t.Error("Block(primary) not found")
	}
}

func TestNewDefaultsIDToText(t *testing.T) {
	d, err := New([]Block{{Text: "load balancer", Column: 0, Row: 0}}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := d.Block("load balancer"); !ok {
		t.Error("Block(\"load balancer\") not found, want text used as identity")
	}
}

func TestNewSanitizesText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"clean passes through", "api gateway", "api gateway"},
		{"newline dropped", "two\nlines", "twolines"},
		{"tab dropped", "a\tb", "ab"},
		{"non-ascii dropped", "café", "caf"},
		{"control dropped", "a\x07b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New([]Block{{ID: "b", Text: tt.text, Column: 0, Row: 0}}, nil)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			b, _ := d.Block("b")
			if b.Text != tt.want {
				t.Errorf("Text = %q, want %q", b.Text, tt.want)
			}
		})
	}
}

func TestNewRejectsEmptyIdentity(t *testing.T) {
	_, err := New([]Block{{Text: "\n", Column: 0, Row: 0}}, nil)
	if !errors.Is(err, errors.ErrCodeMalformedDiagram) {
		t.Errorf("New() error = %v, want MALFORMED_DIAGRAM", err)
	}
}

func TestNewRejectsDuplicateIdentity(t *testing.T) {
	_, err := New([]Block{
		{Text: "api", Column: 0, Row: 0},
		{Text: "api", Column: 1, Row: 0},
	}, nil)
	if !errors.Is(err, errors.ErrCodeMalformedDiagram) {
		t.Errorf("New() error = %v, want MALFORMED_DIAGRAM", err)
	}
}

func TestNewRejectsPlacementConflict(t *testing.T) {
	_, err := New([]Block{
		{Text: "a", Column: 2, Row: -1},
		{Text: "b", Column: 2, Row: -1},
	}, nil)
	if !errors.Is(err, errors.ErrCodePlacementConflict) {
		t.Fatalf("New() error = %v, want PLACEMENT_CONFLICT", err)
	}

	var pe *errors.PlacementError
	if !stderrors.As(err, &pe) {
		t.Fatal("error does not wrap a PlacementError")
	}
	if pe.Column != 2 || pe.Row != -1 || pe.First != "a" || pe.Second != "b" {
		t.Errorf("PlacementError = %+v, want cell (2,-1) with blocks a and b", pe)
	}
}

func TestNewRejectsDanglingEdge(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
	}{
		{"unknown source", Edge{From: "ghost", To: "a"}},
		{"unknown target", Edge{From: "a", To: "ghost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Block{{Text: "a", Column: 0, Row: 0}}, []Edge{tt.edge})
			if !errors.Is(err, errors.ErrCodeMalformedDiagram) {
				t.Errorf("New() error = %v, want MALFORMED_DIAGRAM", err)
			}
		})
	}
}

func TestNewAllowsSelfEdge(t *testing.T) {
	// Self-references are structurally valid; the router degrades them to a
	// warning instead of rejecting the diagram.
	_, err := New(
		[]Block{{Text: "loop", Column: 0, Row: 0}},
		[]Edge{{From: "loop", To: "loop"}},
	)
	if err != nil {
		t.Errorf("New() error = %v, want nil for self-edge", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	d, err := New([]Block{{Text: "a", Column: 0, Row: 0}}, []Edge{{From: "a", To: "a"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	d.Blocks()[0].ID = "mutated"
	if b, _ := d.Block("a"); b.ID != "a" {
		t.Error("mutating Blocks() result changed the diagram")
	}

	d.Edges()[0].From = "mutated"
	if d.Edges()[0].From != "a" {
		t.Error("mutating Edges() result changed the diagram")
	}
}

func TestNewClonesInput(t *testing.T) {
	blocks := []Block{{Text: "a", Column: 0, Row: 0}}
	d, err := New(blocks, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	blocks[0].Column = 99
	if b, _ := d.Block("a"); b.Column != 0 {
		t.Error("mutating the input slice changed the diagram")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"tabs\tand\nnewlines", "tabsandnewlines"},
		{"déjà vu", "dj vu"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
