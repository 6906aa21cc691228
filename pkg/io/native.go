package io

import (
	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// document is the native design format shared by the JSON, YAML and CBOR
// loaders. Arrays keep their order, which is the order the encoder uses.
type document struct {
	Modules []module `json:"modules" yaml:"modules"`
}

type module struct {
	Name       string            `json:"name" yaml:"name"`
	Top        bool              `json:"top,omitempty" yaml:"top,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Ports      []string          `json:"ports,omitempty" yaml:"ports,omitempty"`
	Wires      []wire            `json:"wires,omitempty" yaml:"wires,omitempty"`
	Cells      []cell            `json:"cells,omitempty" yaml:"cells,omitempty"`
}

type wire struct {
	Name      string `json:"name" yaml:"name"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

type cell struct {
	Name        string            `json:"name" yaml:"name"`
	Type        string            `json:"type" yaml:"type"`
	Attributes  map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Connections []connection      `json:"connections,omitempty" yaml:"connections,omitempty"`
}

type connection struct {
	Port      string `json:"port" yaml:"port"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// build converts a decoded document into a Design. Construction errors are
// wrapped with the module, wire or cell that caused them.
func (doc *document) build() (*design.Design, error) {
	d := design.New()
	for _, md := range doc.Modules {
		m := design.NewModule(design.UnescapeID(md.Name))
		m.Top = md.Top
		for k, v := range md.Attributes {
			m.Attributes[k] = v
		}
		for _, w := range md.Wires {
			dir, err := design.ParseDirection(w.Direction)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s: wire %s", md.Name, w.Name)
			}
			if err := m.AddWire(design.Wire{Name: design.UnescapeID(w.Name), Direction: dir}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s: wire %s", md.Name, w.Name)
			}
		}
		for _, p := range md.Ports {
			if err := m.AddPort(design.UnescapeID(p)); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s: port %s", md.Name, p)
			}
		}
		for _, cd := range md.Cells {
			c := &design.Cell{
				Name:       design.UnescapeID(cd.Name),
				Type:       design.UnescapeID(cd.Type),
				Attributes: design.Attributes{},
			}
			for k, v := range cd.Attributes {
				c.Attributes[k] = v
			}
			for _, cn := range cd.Connections {
				dir, err := design.ParseDirection(cn.Direction)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s: cell %s: port %s", md.Name, cd.Name, cn.Port)
				}
				c.Connections = append(c.Connections, design.Connection{Port: design.UnescapeID(cn.Port), Direction: dir})
			}
			if err := m.AddCell(c); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s: cell %s", md.Name, cd.Name)
			}
		}
		if err := d.AddModule(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s", md.Name)
		}
	}
	return d, nil
}

// fromDesign is the inverse of build.
func fromDesign(d *design.Design) document {
	doc := document{Modules: make([]module, 0, d.ModuleCount())}
	for _, m := range d.Modules() {
		md := module{Name: m.Name, Top: m.Top}
		if len(m.Attributes) > 0 {
			md.Attributes = map[string]string(m.Attributes)
		}
		md.Ports = append(md.Ports, m.Ports()...)
		for _, w := range m.Wires() {
			md.Wires = append(md.Wires, wire{Name: w.Name, Direction: w.Direction.String()})
		}
		for _, c := range m.Cells() {
			cd := cell{Name: c.Name, Type: c.Type}
			if len(c.Attributes) > 0 {
				cd.Attributes = map[string]string(c.Attributes)
			}
			for _, cn := range c.Connections {
				cd.Connections = append(cd.Connections, connection{Port: cn.Port, Direction: cn.Direction.String()})
			}
			md.Cells = append(md.Cells, cd)
		}
		doc.Modules = append(doc.Modules, md)
	}
	return doc
}

