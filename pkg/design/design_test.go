package design

import (
	"errors"
	"testing"

	vdberrors "github.com/matzehuels/efxvdb/pkg/errors"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		dir     Direction
		input   bool
		output  bool
		display string
	}{
		{DirNone, false, false, ""},
		{DirInput, true, false, "input"},
		{DirOutput, false, true, "output"},
		{DirInOut, true, true, "inout"},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			if got := tt.dir.IsInput(); got != tt.input {
				t.Errorf("IsInput() = %v, want %v", got, tt.input)
			}
			if got := tt.dir.IsOutput(); got != tt.output {
				t.Errorf("IsOutput() = %v, want %v", got, tt.output)
			}
			if got := tt.dir.String(); got != tt.display {
				t.Errorf("String() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"input", DirInput, false},
		{"OUTPUT", DirOutput, false},
		{"inout", DirInOut, false},
		{"", DirNone, false},
		{"none", DirNone, false},
		{"sideways", DirNone, true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAttributesBool(t *testing.T) {
	attrs := Attributes{
		"top":     "00000000000000000000000000000001",
		"zero":    "00000000000000000000000000000000",
		"one":     "1",
		"word":    "true",
		"decimal": "7",
		"empty":   "",
		"text":    "keep",
	}

	tests := map[string]bool{
		"top":     true,
		"zero":    false,
		"one":     true,
		"word":    true,
		"decimal": true,
		"empty":   false,
		"text":    false,
		"missing": false,
	}

	for name, want := range tests {
		if got := attrs.Bool(name); got != want {
			t.Errorf("Bool(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestModuleAdd(t *testing.T) {
	m := NewModule("top")

	if err := m.AddWire(Wire{Name: "a", Direction: DirInput}); err != nil {
		t.Fatalf("AddWire: %v", err)
	}
	if err := m.AddWire(Wire{Name: "a"}); !errors.Is(err, ErrDuplicateWire) {
		t.Errorf("AddWire duplicate = %v, want ErrDuplicateWire", err)
	}
	if err := m.AddWire(Wire{}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("AddWire empty = %v, want ErrInvalidName", err)
	}

	if err := m.AddCell(&Cell{Name: "lut", Type: "EFX_LUT4"}); err != nil {
		t.Fatalf("AddCell: %v", err)
	}
	if err := m.AddCell(&Cell{Name: "lut", Type: "EFX_FF"}); !errors.Is(err, ErrDuplicateCell) {
		t.Errorf("AddCell duplicate = %v, want ErrDuplicateCell", err)
	}
	c, ok := m.Cell("lut")
	if !ok || c.Attributes == nil {
		t.Error("AddCell should initialize Attributes")
	}

	if err := m.AddPort("a"); err != nil {
		t.Fatalf("AddPort: %v", err)
	}
	if err := m.AddPort("a"); !errors.Is(err, ErrDuplicatePort) {
		t.Errorf("AddPort duplicate = %v, want ErrDuplicatePort", err)
	}
	if err := m.AddPort("missing"); !errors.Is(err, ErrUnknownPortWire) {
		t.Errorf("AddPort unknown = %v, want ErrUnknownPortWire", err)
	}
}

func TestModuleOrderPreserved(t *testing.T) {
	m := NewModule("m")
	names := []string{"z", "a", "m", "b"}
	for _, n := range names {
		if err := m.AddWire(Wire{Name: n, Direction: DirInput}); err != nil {
			t.Fatal(err)
		}
	}
	for _, n := range []string{"m", "z"} {
		if err := m.AddPort(n); err != nil {
			t.Fatal(err)
		}
	}

	for i, w := range m.Wires() {
		if w.Name != names[i] {
			t.Errorf("Wires()[%d] = %s, want %s", i, w.Name, names[i])
		}
	}
	ports := m.Ports()
	if len(ports) != 2 || ports[0] != "m" || ports[1] != "z" {
		t.Errorf("Ports() = %v, want [m z]", ports)
	}
}

func TestDesignTop(t *testing.T) {
	d := New()
	sub := NewModule("sub")
	first := NewModule("first")
	first.Attributes["top"] = "1"
	second := NewModule("second")
	second.Top = true
	for _, m := range []*Module{sub, first, second} {
		if err := d.AddModule(m); err != nil {
			t.Fatal(err)
		}
	}

	top, ok := d.Top()
	if !ok {
		t.Fatal("Top() found nothing")
	}
	if top.Name != "first" {
		t.Errorf("Top() = %s, want first (first marked module wins)", top.Name)
	}

	if err := d.AddModule(NewModule("sub")); !errors.Is(err, ErrDuplicateModule) {
		t.Errorf("AddModule duplicate = %v, want ErrDuplicateModule", err)
	}
}

func TestDesignNoTop(t *testing.T) {
	d := New()
	_ = d.AddModule(NewModule("a"))
	if _, ok := d.Top(); ok {
		t.Error("Top() should report false when no module is marked")
	}
}

func TestDesignCounts(t *testing.T) {
	d := New()
	m1 := NewModule("m1")
	_ = m1.AddWire(Wire{Name: "w1"})
	_ = m1.AddWire(Wire{Name: "w2"})
	_ = m1.AddCell(&Cell{Name: "c1", Type: "EFX_LUT4"})
	m2 := NewModule("m2")
	_ = m2.AddWire(Wire{Name: "w3"})
	_ = d.AddModule(m1)
	_ = d.AddModule(m2)

	if d.ModuleCount() != 2 {
		t.Errorf("ModuleCount() = %d, want 2", d.ModuleCount())
	}
	if d.WireCount() != 3 {
		t.Errorf("WireCount() = %d, want 3", d.WireCount())
	}
	if d.CellCount() != 1 {
		t.Errorf("CellCount() = %d, want 1", d.CellCount())
	}
}

func TestValidate(t *testing.T) {
	d := New()
	m := NewModule("top")
	_ = m.AddWire(Wire{Name: "ok"})
	_ = m.AddCell(&Cell{Name: "c", Type: "EFX_LUT4", Connections: []Connection{{Port: "bad port"}}})
	_ = d.AddModule(m)

	err := d.Validate()
	if err == nil {
		t.Fatal("Validate() should reject whitespace in a port name")
	}
	if !vdberrors.Is(err, vdberrors.ErrCodeInvalidDesign) {
		t.Errorf("code = %v, want INVALID_DESIGN", vdberrors.GetCode(err))
	}
}

func TestUnescapeID(t *testing.T) {
	tests := map[string]string{
		`\top`:       "top",
		`$scopeinfo`: "$scopeinfo",
		`plain`:      "plain",
		`\`:          `\`,
		`\\double`:   `\double`,
	}
	for in, want := range tests {
		if got := UnescapeID(in); got != want {
			t.Errorf("UnescapeID(%q) = %q, want %q", in, got, want)
		}
	}
}
