package design_test

import (
	"fmt"

	"github.com/matzehuels/efxvdb/pkg/design"
)

func ExampleDesign_Top() {
	d := design.New()

	leaf := design.NewModule("adder")
	_ = leaf.AddWire(design.Wire{Name: "a", Direction: design.DirInput})

	top := design.NewModule("counter")
	top.Attributes[design.TopAttribute] = "00000000000000000000000000000001"
	_ = top.AddWire(design.Wire{Name: "clk", Direction: design.DirInput})
	_ = top.AddWire(design.Wire{Name: "q", Direction: design.DirOutput})
	_ = top.AddPort("clk")
	_ = top.AddPort("q")

	_ = d.AddModule(leaf)
	_ = d.AddModule(top)

	m, _ := d.Top()
	fmt.Println("Top:", m.Name)
	fmt.Println("Ports:", m.Ports())
	fmt.Println("Wires:", d.WireCount())
	// Output:
	// Top: counter
	// Ports: [clk q]
	// Wires: 3
}
