package io

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/matzehuels/efxvdb/pkg/errors"
)

// Format selects a design loader.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json" // native format, JSON or JSONC
	FormatYAML  Format = "yaml"
	FormatCBOR  Format = "cbor"
	FormatYosys Format = "yosys" // write_json netlist
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatAuto, FormatJSON, FormatYAML, FormatCBOR, FormatYosys}

// ParseFormat validates a format name. The empty string is FormatAuto.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatAuto, nil
	}
	f := Format(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown design format %q", s)
}

// Detect picks a format from the file extension, falling back to the
// content. JSON documents with a top-level "creator" key are Yosys
// netlists.
func Detect(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	case ".json", ".jsonc":
		return detectJSON(data)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '/') {
		return detectJSON(data)
	}
	if len(trimmed) > 0 && trimmed[0] >= 0xa0 && trimmed[0] <= 0xbf {
		// CBOR map header.
		return FormatCBOR
	}
	return FormatYAML
}

func detectJSON(data []byte) Format {
	if gjson.GetBytes(jsonc.ToJSON(data), "creator").Exists() {
		return FormatYosys
	}
	return FormatJSON
}
