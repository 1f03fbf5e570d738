package diagram_test

import (
	"fmt"

	"github.com/blockflow/blockflow/pkg/diagram"
)

func ExampleNew() {
	d, err := diagram.New(
		[]diagram.Block{
			{Text: "client", Column: 0, Row: 0},
			{Text: "server", Column: 1, Row: 0},
			{Text: "store", Column: 1, Row: 1, ID: "db"},
		},
		[]diagram.Edge{
			{From: "client", To: "server"},
			{From: "server", To: "db"},
		},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("blocks:", d.BlockCount())
	fmt.Println("edges:", d.EdgeCount())

	b, _ := d.Block("db")
	fmt.Printf("db is %q at (%d, %d)\n", b.Text, b.Column, b.Row)
	// Output:
	// blocks: 3
	// edges: 2
	// db is "store" at (1, 1)
}

func ExampleNew_placementConflict() {
	_, err := diagram.New(
		[]diagram.Block{
			{Text: "first", Column: 0, Row: 0},
			{Text: "second", Column: 0, Row: 0},
		},
		nil,
	)
	fmt.Println(err)
	// Output:
	// PLACEMENT_CONFLICT: conflicting placement: blocks "first" and "second" share grid cell (0, 0)
}

func ExampleSanitize() {
	fmt.Println(diagram.Sanitize("api\tgateway\n(v2)"))
	// Output:
	// apigateway(v2)
}
