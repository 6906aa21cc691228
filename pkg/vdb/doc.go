// Package vdb encodes a design graph into a VDB netlist container.
//
// A container is the concatenation of fixed-layout sections:
//
//	Header           magic, version, tags, library name, top module name (twice)
//	Marker           02 00
//	Module-Info      encoded cell types, then scope-marker cell names
//	Module-Port-Info per-cell connection blocks, then the top module's wires
//	Primary-IO       wire count and one attribute record per top-level port
//	File-Id          eight cipher-encoded alphanumeric characters
//
// Identifiers are encoded with package cipher. Wires are numbered by a
// [Registry] built once per export in design order; Primary-IO records
// refer to those indices.
//
// [Writer.Export] builds the whole container in memory and returns nothing
// on error, so callers never see a truncated file. Progress is reported
// through an optional [Observer] rather than logged.
package vdb
