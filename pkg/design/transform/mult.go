package transform

import "github.com/matzehuels/efxvdb/pkg/design"

const (
	MulType        = "$mul"
	HardMultType   = "$__efx_mult"
	BypassAttrName = "efx_mult_bypass"
)

// MultBypassResult counts the cells MultBypass looked at.
type MultBypassResult struct {
	Mapped   int      // retyped to HardMultType
	Bypassed int      // left as MulType
	Cells    []string // "module.cell" of every bypassed cell
}

func MultBypass(d *design.Design) MultBypassResult {
	var res MultBypassResult
	for _, m := range d.Modules() {
		for _, c := range m.Cells() {
			if c.Type != MulType {
				continue
			}
			if bypassed(c.Attributes) {
				res.Bypassed++
				res.Cells = append(res.Cells, m.Name+"."+c.Name)
				continue
			}
			c.Type = HardMultType
			res.Mapped++
		}
	}
	return res
}

func bypassed(a design.Attributes) bool {
	return a.Bool(BypassAttrName) || a.Bool(`\`+BypassAttrName)
}
