package transform

import (
	"testing"

	"github.com/matzehuels/efxvdb/pkg/design"
)

func buildMuls(t *testing.T) *design.Design {
	t.Helper()
	d := design.New()
	m := design.NewModule("top")
	cells := []*design.Cell{
		{Name: "m0", Type: "$mul"},
		{Name: "m1", Type: "$mul", Attributes: design.Attributes{"efx_mult_bypass": "1"}},
		{Name: "m2", Type: "$mul", Attributes: design.Attributes{"efx_mult_bypass": "00000000000000000000000000000000"}},
		{Name: "m3", Type: "$mul", Attributes: design.Attributes{`\efx_mult_bypass`: "00000000000000000000000000000001"}},
		{Name: "a0", Type: "$add", Attributes: design.Attributes{"efx_mult_bypass": "1"}},
	}
	for _, c := range cells {
		if err := m.AddCell(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.AddModule(m); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestMultBypass(t *testing.T) {
	d := buildMuls(t)
	res := MultBypass(d)

	if res.Mapped != 2 || res.Bypassed != 2 {
		t.Errorf("result = %+v, want 2 mapped, 2 bypassed", res)
	}
	m, _ := d.Module("top")
	want := map[string]string{
		"m0": HardMultType,
		"m1": MulType,
		"m2": HardMultType,
		"m3": MulType,
		"a0": "$add",
	}
	for name, typ := range want {
		c, _ := m.Cell(name)
		if c.Type != typ {
			t.Errorf("%s type = %s, want %s", name, c.Type, typ)
		}
	}
	if len(res.Cells) != 2 || res.Cells[0] != "top.m1" || res.Cells[1] != "top.m3" {
		t.Errorf("Cells = %v", res.Cells)
	}
}

func TestMultBypassIdempotent(t *testing.T) {
	d := buildMuls(t)
	MultBypass(d)
	res := MultBypass(d)
	if res.Mapped != 0 || res.Bypassed != 2 {
		t.Errorf("second run = %+v", res)
	}
}
