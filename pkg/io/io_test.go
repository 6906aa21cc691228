package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

const nativeJSON = `{
  // comments are allowed
  "modules": [
    {
      "name": "\\counter",
      "top": true,
      "ports": ["clk", "q"],
      "wires": [
        {"name": "clk", "direction": "input"},
        {"name": "q", "direction": "output"},
        {"name": "n1"},
      ],
      "cells": [
        {"name": "add0", "type": "$add", "attributes": {"keep": "1"},
         "connections": [
           {"port": "B", "direction": "input"},
           {"port": "A", "direction": "input"},
           {"port": "Y", "direction": "output"}
         ]}
      ]
    },
    {"name": "sub", "wires": [{"name": "a", "direction": "in"}]}
  ]
}`

const nativeYAML = `
modules:
  - name: counter
    top: true
    ports: [clk, q]
    wires:
      - {name: clk, direction: input}
      - {name: q, direction: output}
      - {name: n1}
    cells:
      - name: add0
        type: $add
        attributes: {keep: "1"}
        connections:
          - {port: B, direction: input}
          - {port: A, direction: input}
          - {port: Y, direction: output}
  - name: sub
    wires:
      - {name: a, direction: in}
`

func checkCounter(t *testing.T, d *design.Design) {
	t.Helper()
	if d.ModuleCount() != 2 {
		t.Fatalf("modules = %d, want 2", d.ModuleCount())
	}
	top, ok := d.Top()
	if !ok || top.Name != "counter" {
		t.Fatalf("Top() = %v, %v; want counter", top, ok)
	}
	var wires []string
	for _, w := range top.Wires() {
		wires = append(wires, w.Name+":"+w.Direction.String())
	}
	if got := strings.Join(wires, ","); got != "clk:input,q:output,n1:" {
		t.Errorf("wires = %s", got)
	}
	if got := strings.Join(top.Ports(), ","); got != "clk,q" {
		t.Errorf("ports = %s", got)
	}
	c, ok := top.Cell("add0")
	if !ok {
		t.Fatal("cell add0 missing")
	}
	var ports []string
	for _, cn := range c.Connections {
		ports = append(ports, cn.Port)
	}
	if got := strings.Join(ports, ""); got != "BAY" {
		t.Errorf("connection order = %s, want BAY", got)
	}
	if c.Attributes["keep"] != "1" {
		t.Errorf("attributes = %v", c.Attributes)
	}
	sub, _ := d.Module("sub")
	if w, _ := sub.Wire("a"); w == nil || w.Direction != design.DirInput {
		t.Errorf("sub.a = %+v", w)
	}
}

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(nativeJSON))
	if err != nil {
		t.Fatal(err)
	}
	checkCounter(t, d)
}

func TestReadYAML(t *testing.T) {
	d, err := ReadYAML(strings.NewReader(nativeYAML))
	if err != nil {
		t.Fatal(err)
	}
	checkCounter(t, d)
}

func TestReadCBOR(t *testing.T) {
	src, err := ReadJSON(strings.NewReader(nativeJSON))
	if err != nil {
		t.Fatal(err)
	}
	data, err := cbor.Marshal(fromDesign(src))
	if err != nil {
		t.Fatal(err)
	}
	d, err := ReadCBOR(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	checkCounter(t, d)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"modules": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"modules": [{"name": "m", "bogus": 1}]}`, errors.ErrCodeInvalidFormat},
		{"bad direction", `{"modules": [{"name": "m", "wires": [{"name": "w", "direction": "sideways"}]}]}`, errors.ErrCodeInvalidDesign},
		{"duplicate module", `{"modules": [{"name": "m"}, {"name": "m"}]}`, errors.ErrCodeInvalidDesign},
		{"unknown port wire", `{"modules": [{"name": "m", "ports": ["p"]}]}`, errors.ErrCodeInvalidDesign},
		{"duplicate cell", `{"modules": [{"name": "m", "cells": [{"name": "c", "type": "t"}, {"name": "c", "type": "t"}]}]}`, errors.ErrCodeInvalidDesign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(nativeJSON))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatal(err)
	}
	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	checkCounter(t, again)

	a, _ := Canonical(d)
	b, _ := Canonical(again)
	if !bytes.Equal(a, b) {
		t.Errorf("canonical forms differ:\n%s\n%s", a, b)
	}
}

func TestExportImport(t *testing.T) {
	d, _ := ReadJSON(strings.NewReader(nativeJSON))
	path := filepath.Join(t.TempDir(), "design.json")
	if err := ExportJSON(d, path); err != nil {
		t.Fatal(err)
	}
	again, err := Import(path, FormatAuto)
	if err != nil {
		t.Fatal(err)
	}
	checkCounter(t, again)
}

func TestImportMissing(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.json"), FormatAuto)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		data string
		want Format
	}{
		{"d.yaml", "", FormatYAML},
		{"d.YML", "", FormatYAML},
		{"d.cbor", "", FormatCBOR},
		{"d.json", `{"modules": []}`, FormatJSON},
		{"d.jsonc", `// c` + "\n" + `{"modules": []}`, FormatJSON},
		{"d.json", `{"creator": "Yosys", "modules": {}}`, FormatYosys},
		{"netlist", `  {"creator": "Yosys", "modules": {}}`, FormatYosys},
		{"netlist", "modules: []", FormatYAML},
		{"netlist", "\xa1\x67modules\x80", FormatCBOR},
	}
	for _, tt := range tests {
		if got := Detect(tt.path, []byte(tt.data)); got != tt.want {
			t.Errorf("Detect(%q, %q) = %s, want %s", tt.path, tt.data, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "auto", "JSON", "yaml", "cbor", "yosys"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("verilog"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(verilog) err = %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.vdb")

	if err := WriteFileAtomic(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte{4, 5}, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{4, 5}) {
		t.Errorf("content = % x", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("leftover files: %v", entries)
	}
}

func TestWriteFileAtomicBadPath(t *testing.T) {
	if err := WriteFileAtomic("", nil, 0o644); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty path err = %v", err)
	}
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "out.vdb")
	if err := WriteFileAtomic(missing, nil, 0o644); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("missing dir err = %v", err)
	}
}
