package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

var cborDecMode cbor.DecMode

func init() {
	var err error
	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("io: CBOR decoder initialization failed: " + err.Error())
	}
}

// ReadJSON decodes a native-format design from r. Comments and trailing
// commas are accepted:
//
//	{
//	  // top module first
//	  "modules": [
//	    {"name": "counter", "top": true, "ports": ["clk"],
//	     "wires": [{"name": "clk", "direction": "input"}]},
//	  ]
//	}
//
// Module, wire, port, cell and connection order is preserved. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*design.Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read design")
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*design.Design, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON design")
	}
	return doc.build()
}

// ReadYAML decodes a native-format design written as YAML.
func ReadYAML(r io.Reader) (*design.Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read design")
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (*design.Design, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML design")
	}
	return doc.build()
}

// ReadCBOR decodes a native-format design encoded as CBOR. Field names
// follow the JSON tags.
func ReadCBOR(r io.Reader) (*design.Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read design")
	}
	return decodeCBOR(data)
}

func decodeCBOR(data []byte) (*design.Design, error) {
	var doc document
	if err := cborDecMode.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode CBOR design")
	}
	return doc.build()
}

// Read decodes a design in the given format. FormatAuto runs Detect with
// an empty path.
func Read(r io.Reader, format Format) (*design.Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read design")
	}
	return decode("", data, format)
}

func decode(path string, data []byte, format Format) (*design.Design, error) {
	if format == FormatAuto || format == "" {
		format = Detect(path, data)
	}
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatCBOR:
		return decodeCBOR(data)
	case FormatYosys:
		return decodeYosys(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown design format %q", format)
}

// Import reads the design file at path. A missing file is FILE_NOT_FOUND.
func Import(path string, format Format) (*design.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "design %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	d, err := decode(path, data, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return d, nil
}
