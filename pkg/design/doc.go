// Package design provides the in-memory hardware design graph that efxvdb
// exports: modules holding wires, cells and declared ports.
//
// # Overview
//
// A [Design] is produced upstream (by a synthesis tool's netlist writer and
// the loaders in pkg/io) and consumed read-only by the VDB encoder. Every
// collection in this package keeps insertion order. The encoder numbers wires
// and emits cells in exactly that order, so two designs that differ only in
// ordering produce different containers. Callers build the graph in the order
// the netlist declares it and never re-sort.
//
// # Basic Usage
//
//	d := design.New()
//	top := design.NewModule("counter")
//	top.Top = true
//	_ = top.AddWire(design.Wire{Name: "clk", Direction: design.DirInput})
//	_ = top.AddWire(design.Wire{Name: "q", Direction: design.DirOutput})
//	_ = top.AddPort("clk")
//	_ = top.AddPort("q")
//	_ = top.AddCell(&design.Cell{Name: "ff0", Type: "EFX_FF"})
//	_ = d.AddModule(top)
//
// # Directions
//
// Wires and cell connections carry a [Direction]. Inout counts as both input
// and output; consumers check input first. [DirNone] is representable so a
// malformed netlist can be loaded and rejected by the encoder with a precise
// structural error instead of failing inside the loader.
//
// # Concurrency
//
// A Design is not safe for concurrent mutation. Once built it may be read
// from any number of goroutines.
package design
