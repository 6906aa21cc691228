package vdb

import (
	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// WireKey identifies a wire across the whole design.
type WireKey struct {
	Module string
	Wire   string
}

// Registry assigns every wire in a design a sequential 16-bit index. It is
// built once per export and never modified afterwards.
type Registry struct {
	index map[WireKey]uint16
	order []WireKey
}

// BuildRegistry walks modules in design order and wires in module order,
// numbering from zero across the whole design. More than MaxWires wires is
// a STRUCTURAL_ERROR.
func BuildRegistry(d *design.Design) (*Registry, error) {
	total := d.WireCount()
	if total > MaxWires {
		return nil, errors.New(errors.ErrCodeStructural,
			"design has %d wires, registry indices are 16-bit (max %d)", total, MaxWires)
	}
	r := &Registry{
		index: make(map[WireKey]uint16, total),
		order: make([]WireKey, 0, total),
	}
	for _, m := range d.Modules() {
		for _, w := range m.Wires() {
			k := WireKey{Module: m.Name, Wire: w.Name}
			r.index[k] = uint16(len(r.order))
			r.order = append(r.order, k)
		}
	}
	return r, nil
}

// Lookup returns the index of a wire, or UNREGISTERED_WIRE.
func (r *Registry) Lookup(module, wire string) (uint16, error) {
	idx, ok := r.index[WireKey{Module: module, Wire: wire}]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnregisteredWire, "wire %s.%s was never registered", module, wire)
	}
	return idx, nil
}

// Len returns the number of registered wires.
func (r *Registry) Len() int { return len(r.order) }

// Key returns the wire registered at idx.
func (r *Registry) Key(idx uint16) (WireKey, bool) {
	if int(idx) >= len(r.order) {
		return WireKey{}, false
	}
	return r.order[idx], true
}
