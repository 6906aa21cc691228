package design

import (
	"fmt"

	"github.com/matzehuels/efxvdb/pkg/errors"
)

// Validate checks naming rules for every identifier in the design and
// returns the first violation as an INVALID_DESIGN error.
//
// It does not check port directions: a port that is neither input nor output
// is a structural error the encoder reports with section context.
func (d *Design) Validate() error {
	for _, m := range d.modules {
		if err := errors.ValidateIdentifier("module", m.Name); err != nil {
			return err
		}
		for _, w := range m.wires {
			if err := errors.ValidateIdentifier("wire", w.Name); err != nil {
				return wrapIn(m, err)
			}
		}
		for _, c := range m.cells {
			if err := errors.ValidateIdentifier("cell", c.Name); err != nil {
				return wrapIn(m, err)
			}
			if err := errors.ValidateIdentifier("cell type", c.Type); err != nil {
				return wrapIn(m, err)
			}
			for _, conn := range c.Connections {
				if err := errors.ValidateIdentifier("connection port", conn.Port); err != nil {
					return wrapIn(m, fmt.Errorf("cell %s: %w", c.Name, err))
				}
			}
		}
	}
	return nil
}

func wrapIn(m *Module, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s", m.Name)
}
