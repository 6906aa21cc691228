package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// WriteJSON encodes d in the native format and writes it to w. The output
// can be read back with [ReadJSON].
func WriteJSON(d *design.Design, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromDesign(d)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode design")
	}
	return nil
}

// ExportJSON writes d to a native-format JSON file at path.
func ExportJSON(d *design.Design, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// Canonical returns the compact native JSON encoding of d. Attribute maps
// are emitted with sorted keys, so equal designs give equal bytes.
func Canonical(d *design.Design) ([]byte, error) {
	b, err := json.Marshal(fromDesign(d))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode design")
	}
	return b, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers see either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create temp file in %s", dir)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmpPath)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "chmod %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "rename to %s", path)
	}
	success = true
	return nil
}
