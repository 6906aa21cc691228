package vdb

import (
	"bytes"
	"io"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// Options configures a Writer. Zero values select the defaults.
type Options struct {
	Table         *cipher.Table // cipher.Default() when nil
	Library       string        // DefaultLibrary when empty
	ScopeType     string        // DefaultScopeType when empty
	StrictLengths bool          // reject identifiers and counts that overflow their fields

	// Top names the top module explicitly. When empty the first module
	// marked top in design order is used.
	Top string

	Rand     RandSource // unseeded when nil
	Observer Observer   // NopObserver when nil
}

// Writer encodes designs into VDB containers.
type Writer struct {
	enc      Encoder
	top      string
	rand     RandSource
	observer Observer
}

// NewWriter creates a Writer.
func NewWriter(opts Options) *Writer {
	w := &Writer{
		enc: Encoder{
			Table:         opts.Table,
			Library:       opts.Library,
			ScopeType:     opts.ScopeType,
			StrictLengths: opts.StrictLengths,
		},
		top:      opts.Top,
		rand:     opts.Rand,
		observer: opts.Observer,
	}
	if w.enc.Table == nil {
		w.enc.Table = cipher.Default()
	}
	if w.rand == nil {
		w.rand = NewRand(0)
	}
	if w.observer == nil {
		w.observer = NopObserver{}
	}
	return w
}

// ResolveTop returns explicit if it names a module of d, otherwise the
// first module marked top. It fails with TOP_MODULE_UNRESOLVED when
// neither applies.
func ResolveTop(d *design.Design, explicit string) (string, error) {
	if explicit != "" {
		if _, ok := d.Module(explicit); !ok {
			return "", errors.New(errors.ErrCodeTopModuleUnresolved, "top module %q not found in design", explicit)
		}
		return explicit, nil
	}
	m, ok := d.Top()
	if !ok {
		return "", errors.New(errors.ErrCodeTopModuleUnresolved, "no module is marked top")
	}
	return m.Name, nil
}

// Export encodes d and returns the complete container. Nothing is returned
// on error.
func (w *Writer) Export(d *design.Design) ([]byte, error) {
	top, err := ResolveTop(d, w.top)
	if err != nil {
		return nil, err
	}
	w.observer.TopResolved(top)

	reg, err := BuildRegistry(d)
	if err != nil {
		return nil, err
	}
	w.observer.RegistryBuilt(reg.Len())

	var out Buffer
	sections := []struct {
		name string
		emit func() ([]byte, error)
	}{
		{SectionHeader, func() ([]byte, error) { return w.enc.Header(top) }},
		{SectionMarker, func() ([]byte, error) { return marker, nil }},
		{SectionModuleInfo, func() ([]byte, error) { return w.enc.ModuleInfo(d) }},
		{SectionModulePortInfo, func() ([]byte, error) { return w.enc.ModulePortInfo(d, top) }},
		{SectionPrimaryIO, func() ([]byte, error) { return w.enc.PrimaryIO(reg, d, top) }},
		{SectionFileID, func() ([]byte, error) {
			id, err := GenerateFileID(w.enc.Table, w.rand)
			if err == nil {
				w.observer.FileIDGenerated(id)
			}
			return id, err
		}},
	}
	for _, s := range sections {
		b, err := s.emit()
		if err != nil {
			return nil, err
		}
		out.WriteBytes(b)
		w.observer.SectionWritten(s.name, len(b))
	}
	return out.Bytes, nil
}

// WriteTo encodes d and writes it to dst only after the whole container
// has been built.
func (w *Writer) WriteTo(d *design.Design, dst io.Writer) (int64, error) {
	b, err := w.Export(d)
	if err != nil {
		return 0, err
	}
	return io.Copy(dst, bytes.NewReader(b))
}

// Export encodes d with opts.
func Export(d *design.Design, opts Options) ([]byte, error) {
	return NewWriter(opts).Export(d)
}
