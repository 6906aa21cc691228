// Package io loads design graphs from files and commits exported
// containers to disk.
//
// # Native Format
//
// The native format is an ordered list of modules. It can be written as
// JSON (comments and trailing commas allowed), YAML or CBOR:
//
//	{
//	  "modules": [
//	    {
//	      "name": "counter",
//	      "top": true,
//	      "ports": ["clk", "q"],
//	      "wires": [
//	        {"name": "clk", "direction": "input"},
//	        {"name": "q", "direction": "output"}
//	      ],
//	      "cells": [
//	        {"name": "add0", "type": "$add",
//	         "connections": [{"port": "A", "direction": "input"}]}
//	      ]
//	    }
//	  ]
//	}
//
// Direction is "input", "output", "inout" or omitted for none. Every list
// keeps its order; the encoder numbers wires and emits cells in that order.
//
// # Yosys Netlists
//
// [ReadYosys] accepts the output of Yosys write_json. Object key order in
// the file is preserved. [Detect] recognises netlists by their top-level
// "creator" key.
//
// # Output
//
// [WriteFileAtomic] writes through a temporary file and a rename. A failed
// export never leaves a partial container behind.
package io
