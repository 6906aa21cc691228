package vdb

import (
	"strconv"
	"testing"

	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

func TestRegistryAcrossModules(t *testing.T) {
	d := design.New()
	m1 := design.NewModule("M1")
	_ = m1.AddWire(design.Wire{Name: "w1"})
	_ = m1.AddWire(design.Wire{Name: "w2"})
	m2 := design.NewModule("M2")
	_ = m2.AddWire(design.Wire{Name: "w3"})
	_ = d.AddModule(m1)
	_ = d.AddModule(m2)

	reg, err := BuildRegistry(d)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		module, wire string
		want         uint16
	}{
		{"M1", "w1", 0},
		{"M1", "w2", 1},
		{"M2", "w3", 2},
	}
	for _, tt := range tests {
		for i := 0; i < 2; i++ {
			got, err := reg.Lookup(tt.module, tt.wire)
			if err != nil {
				t.Fatalf("Lookup(%s, %s): %v", tt.module, tt.wire, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%s, %s) = %d, want %d", tt.module, tt.wire, got, tt.want)
			}
		}
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestRegistrySameWireNameInTwoModules(t *testing.T) {
	d := design.New()
	for _, name := range []string{"a", "b"} {
		m := design.NewModule(name)
		_ = m.AddWire(design.Wire{Name: "clk"})
		_ = d.AddModule(m)
	}
	reg, _ := BuildRegistry(d)
	ia, _ := reg.Lookup("a", "clk")
	ib, _ := reg.Lookup("b", "clk")
	if ia != 0 || ib != 1 {
		t.Errorf("indices = %d, %d; want 0, 1", ia, ib)
	}
}

func TestRegistryIsPermutation(t *testing.T) {
	reg, err := BuildRegistry(buildCounter(t))
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[WireKey]bool)
	for i := 0; i < reg.Len(); i++ {
		k, ok := reg.Key(uint16(i))
		if !ok {
			t.Fatalf("Key(%d) missing", i)
		}
		if seen[k] {
			t.Fatalf("Key(%d) = %v seen twice", i, k)
		}
		seen[k] = true
		idx, err := reg.Lookup(k.Module, k.Wire)
		if err != nil || int(idx) != i {
			t.Errorf("Lookup(%v) = %d, %v; want %d", k, idx, err, i)
		}
	}
	if _, ok := reg.Key(uint16(reg.Len())); ok {
		t.Error("Key past end should fail")
	}
}

func TestRegistryUnregistered(t *testing.T) {
	reg, _ := BuildRegistry(buildCounter(t))
	_, err := reg.Lookup("elsewhere", "clk")
	if !errors.Is(err, errors.ErrCodeUnregisteredWire) {
		t.Errorf("err = %v, want UNREGISTERED_WIRE", err)
	}
}

func TestRegistryTooManyWires(t *testing.T) {
	d := design.New()
	m := design.NewModule("big")
	for i := 0; i <= MaxWires; i++ {
		_ = m.AddWire(design.Wire{Name: "w" + strconv.Itoa(i)})
	}
	_ = d.AddModule(m)
	if _, err := BuildRegistry(d); !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("err = %v, want STRUCTURAL_ERROR", err)
	}
}
