package design

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrInvalidName is returned when a module, wire, cell or port name is empty.
	ErrInvalidName = errors.New("name must not be empty")

	// ErrDuplicateModule is returned by [Design.AddModule] when a module with
	// the same name already exists.
	ErrDuplicateModule = errors.New("duplicate module")

	// ErrDuplicateWire is returned by [Module.AddWire] when the module already
	// has a wire with the same name.
	ErrDuplicateWire = errors.New("duplicate wire")

	// ErrDuplicateCell is returned by [Module.AddCell] when the module already
	// has a cell with the same name.
	ErrDuplicateCell = errors.New("duplicate cell")

	// ErrDuplicatePort is returned by [Module.AddPort] when the port is
	// already declared.
	ErrDuplicatePort = errors.New("duplicate port")

	// ErrUnknownPortWire is returned by [Module.AddPort] when no wire carries
	// the port's name. Every declared port is backed by a wire.
	ErrUnknownPortWire = errors.New("port has no wire")
)

// TopAttribute is the module attribute synthesis tools use to mark the top module.
const TopAttribute = "top"

// Direction is the port direction of a wire or cell connection.
type Direction uint8

const (
	// DirNone marks a wire that is not a port, or a connection with no
	// known direction.
	DirNone Direction = iota
	// DirInput is an input port or input pin.
	DirInput
	// DirOutput is an output port or output pin.
	DirOutput
	// DirInOut is a bidirectional port; it reports as both input and output.
	DirInOut
)

// IsInput reports whether d is an input (including inout).
func (d Direction) IsInput() bool { return d == DirInput || d == DirInOut }

// IsOutput reports whether d is an output (including inout).
func (d Direction) IsOutput() bool { return d == DirOutput || d == DirInOut }

// String returns the netlist spelling of d; DirNone is the empty string.
func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirInOut:
		return "inout"
	default:
		return ""
	}
}

// ParseDirection parses a netlist direction. The empty string and "none"
// yield DirNone.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "input", "in":
		return DirInput, nil
	case "output", "out":
		return DirOutput, nil
	case "inout":
		return DirInOut, nil
	case "", "none":
		return DirNone, nil
	}
	return DirNone, errors.New("unknown direction " + strconv.Quote(s))
}

// Attributes maps attribute names to their netlist values. Values are kept
// verbatim: synthesis tools write booleans as "1" or as 32-bit binary strings.
type Attributes map[string]string

// Bool interprets the named attribute as a boolean. Missing attributes are
// false; binary and decimal strings are true when non-zero; "true" is true.
func (a Attributes) Bool(name string) bool {
	v, ok := a[name]
	if !ok {
		return false
	}
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "true") {
		return true
	}
	if v == "" {
		return false
	}
	if strings.Trim(v, "01") == "" {
		return strings.ContainsRune(v, '1')
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return err == nil && n != 0
}

// Wire is a named net inside a module. Port wires carry a direction.
type Wire struct {
	Name      string
	Direction Direction
}

// IsPortInput reports whether the wire is an input port (inout included).
func (w *Wire) IsPortInput() bool { return w.Direction.IsInput() }

// IsPortOutput reports whether the wire is an output port (inout included).
func (w *Wire) IsPortOutput() bool { return w.Direction.IsOutput() }

// Connection is one named pin of a cell.
type Connection struct {
	Port      string
	Direction Direction
}

// Cell is an instance of a primitive or a scope-marker pseudo-cell.
type Cell struct {
	Name        string
	Type        string
	Connections []Connection
	Attributes  Attributes
}

// Module is a named collection of wires, cells and declared ports.
//
// The zero value is not usable - use NewModule.
type Module struct {
	Name       string
	Top        bool
	Attributes Attributes

	wires []*Wire
	cells []*Cell
	ports []string

	wireIndex map[string]*Wire
	cellIndex map[string]*Cell
	portIndex map[string]bool
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:       name,
		Attributes: Attributes{},
		wireIndex:  make(map[string]*Wire),
		cellIndex:  make(map[string]*Cell),
		portIndex:  make(map[string]bool),
	}
}

// IsTop reports whether the module is marked as the design's top module,
// either through the Top flag or a true "top" attribute.
func (m *Module) IsTop() bool { return m.Top || m.Attributes.Bool(TopAttribute) }

// AddWire appends a wire. Returns ErrInvalidName for an empty name and
// ErrDuplicateWire if the name is taken.
func (m *Module) AddWire(w Wire) error {
	if w.Name == "" {
		return ErrInvalidName
	}
	if _, ok := m.wireIndex[w.Name]; ok {
		return ErrDuplicateWire
	}
	wire := &w
	m.wires = append(m.wires, wire)
	m.wireIndex[w.Name] = wire
	return nil
}

// AddCell appends a cell. Returns ErrInvalidName for an empty name and
// ErrDuplicateCell if the name is taken. A nil Attributes map is replaced
// with an empty one.
func (m *Module) AddCell(c *Cell) error {
	if c.Name == "" {
		return ErrInvalidName
	}
	if _, ok := m.cellIndex[c.Name]; ok {
		return ErrDuplicateCell
	}
	if c.Attributes == nil {
		c.Attributes = Attributes{}
	}
	m.cells = append(m.cells, c)
	m.cellIndex[c.Name] = c
	return nil
}

// AddPort declares an existing wire as a module port. Ports keep declaration
// order. Returns ErrUnknownPortWire if no wire has that name and
// ErrDuplicatePort if the port is already declared.
func (m *Module) AddPort(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	if _, ok := m.wireIndex[name]; !ok {
		return ErrUnknownPortWire
	}
	if m.portIndex[name] {
		return ErrDuplicatePort
	}
	m.ports = append(m.ports, name)
	m.portIndex[name] = true
	return nil
}

// Wires returns the module's wires in declaration order. The slice is a
// read-only view.
func (m *Module) Wires() []*Wire { return m.wires }

// Cells returns the module's cells in declaration order. The slice is a
// read-only view.
func (m *Module) Cells() []*Cell { return m.cells }

// Ports returns declared port names in declaration order. The slice is a
// read-only view.
func (m *Module) Ports() []string { return m.ports }

// Wire returns the named wire.
func (m *Module) Wire(name string) (*Wire, bool) {
	w, ok := m.wireIndex[name]
	return w, ok
}

// Cell returns the named cell.
func (m *Module) Cell(name string) (*Cell, bool) {
	c, ok := m.cellIndex[name]
	return c, ok
}

// Design is an ordered collection of modules.
//
// The zero value is not usable - use New.
type Design struct {
	modules []*Module
	index   map[string]*Module
}

// New creates an empty design.
func New() *Design {
	return &Design{index: make(map[string]*Module)}
}

// AddModule appends a module. Returns ErrInvalidName for an unnamed module
// and ErrDuplicateModule if the name is taken.
func (d *Design) AddModule(m *Module) error {
	if m.Name == "" {
		return ErrInvalidName
	}
	if _, ok := d.index[m.Name]; ok {
		return ErrDuplicateModule
	}
	d.modules = append(d.modules, m)
	d.index[m.Name] = m
	return nil
}

// Modules returns modules in design order. The slice is a read-only view.
func (d *Design) Modules() []*Module { return d.modules }

// Module returns the named module.
func (d *Design) Module(name string) (*Module, bool) {
	m, ok := d.index[name]
	return m, ok
}

// ModuleCount returns the number of modules.
func (d *Design) ModuleCount() int { return len(d.modules) }

// WireCount returns the total number of wires across all modules.
func (d *Design) WireCount() int {
	n := 0
	for _, m := range d.modules {
		n += len(m.wires)
	}
	return n
}

// CellCount returns the total number of cells across all modules.
func (d *Design) CellCount() int {
	n := 0
	for _, m := range d.modules {
		n += len(m.cells)
	}
	return n
}

// Top returns the first module, in design order, marked as top.
func (d *Design) Top() (*Module, bool) {
	for _, m := range d.modules {
		if m.IsTop() {
			return m, true
		}
	}
	return nil, false
}

// UnescapeID strips the leading backslash synthesis tools put on public
// identifiers. Internal identifiers (leading '$') are returned unchanged.
func UnescapeID(s string) string {
	if len(s) > 1 && s[0] == '\\' {
		return s[1:]
	}
	return s
}
