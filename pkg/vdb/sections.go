package vdb

import (
	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// Encoder produces the individual container sections. The zero value uses
// the default cipher table, library name and scope type.
type Encoder struct {
	Table         *cipher.Table
	Library       string
	ScopeType     string
	StrictLengths bool
}

func (e Encoder) table() *cipher.Table {
	if e.Table == nil {
		return cipher.Default()
	}
	return e.Table
}

func (e Encoder) library() string {
	if e.Library == "" {
		return DefaultLibrary
	}
	return e.Library
}

func (e Encoder) scopeType() string {
	if e.ScopeType == "" {
		return DefaultScopeType
	}
	return e.ScopeType
}

// ident appends the encoded identifier to buf.
func (e Encoder) ident(buf *Buffer, name string) error {
	if e.StrictLengths && len(name) > cipher.MaxIdentifierLength {
		return errors.New(errors.ErrCodeIdentifierTooLong,
			"identifier %.32q... is %d bytes, limit is %d", name, len(name), cipher.MaxIdentifierLength)
	}
	out, err := e.table().AppendIdentifier(buf.Bytes, name)
	if err != nil {
		return err
	}
	buf.Bytes = out
	return nil
}

// count writes a one-byte count followed by a zero byte.
func (e Encoder) count(buf *Buffer, n int, what string) error {
	if e.StrictLengths && n > 0xff {
		return errors.New(errors.ErrCodeStructural, "%s has %d entries, count field holds 255", what, n)
	}
	buf.AppendByte(byte(n))
	buf.AppendByte(0x00)
	return nil
}

func (e Encoder) topModule(d *design.Design, top string) (*design.Module, error) {
	m, ok := d.Module(top)
	if !ok {
		return nil, errors.New(errors.ErrCodeTopModuleUnresolved, "top module %q not found in design", top)
	}
	return m, nil
}

// Header encodes the fixed header followed by the library name and the top
// module name twice.
func (e Encoder) Header(top string) ([]byte, error) {
	var buf Buffer
	buf.WriteReversed(magic)
	buf.WriteReversed(version)
	buf.WriteZeros(4)
	buf.WriteReversed(algoTag)
	buf.WriteReversed(timestamp)
	buf.WriteBytes(constant)
	buf.WriteBytes(preamble)
	for _, name := range []string{e.library(), top, top} {
		if err := e.ident(&buf, name); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "header")
		}
	}
	return buf.Bytes, nil
}

// ModuleInfo encodes every real cell type, then every scope-marker cell
// name, each followed by ten zero bytes.
func (e Encoder) ModuleInfo(d *design.Design) ([]byte, error) {
	var buf Buffer
	scope := e.scopeType()
	for _, m := range d.Modules() {
		for _, c := range m.Cells() {
			if c.Type == scope {
				continue
			}
			if err := e.ident(&buf, c.Type); err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "cell %s.%s type", m.Name, c.Name)
			}
			buf.WriteZeros(identPad)
		}
	}
	for _, m := range d.Modules() {
		for _, c := range m.Cells() {
			if c.Type != scope {
				continue
			}
			if err := e.ident(&buf, c.Name); err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "scope cell %s.%s", m.Name, c.Name)
			}
			buf.WriteZeros(identPad)
		}
	}
	return buf.Bytes, nil
}

func (e Encoder) portPreamble(buf *Buffer) {
	buf.WriteBytes(preamble)
	buf.AppendByte(0x00)
	buf.WriteReversed(timestamp)
	buf.AppendByte(0xff)
}

func directionCode(dir design.Direction) (byte, bool) {
	switch {
	case dir.IsInput():
		return dirInput, true
	case dir.IsOutput():
		return dirOutput, true
	}
	return 0, false
}

// ModulePortInfo encodes the port blocks of every cell in the design and
// the wire list of the top module.
func (e Encoder) ModulePortInfo(d *design.Design, top string) ([]byte, error) {
	topMod, err := e.topModule(d, top)
	if err != nil {
		return nil, err
	}

	var buf Buffer
	e.portPreamble(&buf)
	buf.WriteZeros(attrPad)
	if err := e.ident(&buf, top); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "module port info")
	}
	buf.WriteZeros(identPad)
	e.portPreamble(&buf)

	for _, m := range d.Modules() {
		for _, c := range m.Cells() {
			if err := e.count(&buf, len(c.Connections), "cell "+m.Name+"."+c.Name); err != nil {
				return nil, err
			}
			for _, conn := range c.Connections {
				code, ok := directionCode(conn.Direction)
				if !ok {
					return nil, errors.New(errors.ErrCodeStructural,
						"connection %s of cell %s.%s is neither input nor output", conn.Port, m.Name, c.Name)
				}
				if err := e.ident(&buf, conn.Port); err != nil {
					return nil, errors.Wrap(errors.GetCode(err), err, "connection %s of cell %s.%s", conn.Port, m.Name, c.Name)
				}
				buf.WriteZeros(identPad)
				buf.WriteDirection(code)
			}
		}
	}

	wires := topMod.Wires()
	if err := e.count(&buf, len(wires), "top module "+topMod.Name); err != nil {
		return nil, err
	}
	for _, w := range wires {
		code, ok := directionCode(w.Direction)
		if !ok {
			return nil, errors.New(errors.ErrCodeStructural,
				"wire %s of top module %s is neither input nor output", w.Name, topMod.Name)
		}
		if err := e.ident(&buf, w.Name); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "wire %s.%s", topMod.Name, w.Name)
		}
		buf.WriteZeros(wirePad)
		buf.WriteDirection(code)
	}
	return buf.Bytes, nil
}

// PrimaryIO encodes the top module's wire count followed by one attribute
// record per declared port.
func (e Encoder) PrimaryIO(reg *Registry, d *design.Design, top string) ([]byte, error) {
	topMod, err := e.topModule(d, top)
	if err != nil {
		return nil, err
	}
	wires := topMod.Wires()
	if e.StrictLengths && len(wires) > 0xffff {
		return nil, errors.New(errors.ErrCodeStructural, "top module %s has %d wires, count field holds 65535", topMod.Name, len(wires))
	}

	var buf Buffer
	buf.WriteU16(uint16(len(wires)))
	for _, port := range topMod.Ports() {
		w, ok := topMod.Wire(port)
		if !ok {
			return nil, errors.New(errors.ErrCodeStructural, "port %s of top module %s has no wire", port, topMod.Name)
		}
		var attr string
		var code byte
		switch {
		case w.IsPortInput():
			attr, code = AttrPrimaryInput, dirInput
		case w.IsPortOutput():
			attr, code = AttrPrimaryOutput, dirOutput
		default:
			return nil, errors.New(errors.ErrCodeStructural,
				"port %s of top module %s is neither input nor output", port, topMod.Name)
		}
		idx, err := reg.Lookup(topMod.Name, port)
		if err != nil {
			return nil, err
		}

		if err := e.ident(&buf, port); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "port %s", port)
		}
		buf.WriteZeros(attrPad)
		buf.AppendByte(0x01)
		if err := e.ident(&buf, attr); err != nil {
			return nil, err
		}
		if err := e.ident(&buf, attrTrue); err != nil {
			return nil, err
		}
		buf.AppendByte(0x00)
		buf.AppendByte(code)
		buf.WriteU16(idx)
		buf.AppendByte(primaryIOFlag)
		buf.WriteZeros(primaryIOTail)
	}
	return buf.Bytes, nil
}
