// Package pkg provides the libraries behind efxvdb.
//
// # Overview
//
// efxvdb turns a synthesized design graph into the binary VDB container read
// by the vendor place-and-route flow. The pkg directory is organized by stage:
//
//  1. [design] - In-memory design graph (modules, wires, cells) and passes
//  2. [io] - Loaders for native JSON/YAML/CBOR and Yosys write_json netlists
//  3. [cipher] - The substitution cipher applied to every identifier
//  4. [vdb] - The container encoder (header, wire registry, sections, file id)
//  5. [pipeline] - Orchestration (load → passes → export → commit)
//
// # Architecture
//
// The data flow for one export:
//
//	design file (json / yaml / cbor / yosys)
//	         ↓
//	    [io] package (detect format, decode)
//	         ↓
//	    [design] package (validate, optional multiplier pass)
//	         ↓
//	    [vdb] package (encode with a [cipher] table)
//	         ↓
//	    container bytes, written atomically
//
// # Quick Start
//
//	d, _ := io.Import("counter.json", io.FormatAuto)
//	container, _ := vdb.Export(d, vdb.Options{Rand: vdb.NewRand(42)})
//	_ = io.WriteFileAtomic("counter.vdb", container, 0o644)
//
// # Supporting Packages
//
// [cache] - Content-addressed container cache with file and Redis backends.
// Only seeded exports are cached, since an unseeded file id is random.
//
// [config] - efxvdb.toml loading with environment overrides.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hook registry for load, export and cache events.
//
// [buildinfo] - Version information set at build time.
package pkg
