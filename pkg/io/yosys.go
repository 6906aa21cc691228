package io

import (
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// ReadYosys decodes a netlist produced by Yosys write_json. Modules, ports,
// netnames, cells and cell connections keep the order of the file.
//
// Module ports become wires with their declared direction; netnames that
// are not ports become wires with no direction. Connection directions come
// from each cell's port_directions. Leading backslashes are stripped from
// every name.
func ReadYosys(r io.Reader) (*design.Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read netlist")
	}
	return decodeYosys(data)
}

func decodeYosys(data []byte) (*design.Design, error) {
	data = jsonc.ToJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "netlist is not valid JSON")
	}
	modules := gjson.GetBytes(data, "modules")
	if !modules.IsObject() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, `netlist has no "modules" object`)
	}

	d := design.New()
	var err error
	modules.ForEach(func(key, value gjson.Result) bool {
		var m *design.Module
		m, err = yosysModule(design.UnescapeID(key.String()), value)
		if err == nil {
			err = d.AddModule(m)
		}
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidDesign, err, "module %s", key.String())
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func yosysModule(name string, v gjson.Result) (*design.Module, error) {
	m := design.NewModule(name)
	v.Get("attributes").ForEach(func(k, a gjson.Result) bool {
		m.Attributes[k.String()] = a.String()
		return true
	})

	type port struct {
		name string
		dir  design.Direction
	}
	var ports []port
	var err error
	v.Get("ports").ForEach(func(k, p gjson.Result) bool {
		var dir design.Direction
		dir, err = design.ParseDirection(p.Get("direction").String())
		if err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidDesign, err, "port %s", k.String())
			return false
		}
		ports = append(ports, port{name: design.UnescapeID(k.String()), dir: dir})
		return true
	})
	if err != nil {
		return nil, err
	}
	portDir := make(map[string]design.Direction, len(ports))
	for _, p := range ports {
		portDir[p.name] = p.dir
	}

	v.Get("netnames").ForEach(func(k, _ gjson.Result) bool {
		n := design.UnescapeID(k.String())
		if err = m.AddWire(design.Wire{Name: n, Direction: portDir[n]}); err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidDesign, err, "netname %s", k.String())
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	for _, p := range ports {
		// Ports normally appear in netnames too; add the ones that do not.
		if _, ok := m.Wire(p.name); !ok {
			if err := m.AddWire(design.Wire{Name: p.name, Direction: p.dir}); err != nil {
				return nil, err
			}
		}
		if err := m.AddPort(p.name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "port %s", p.name)
		}
	}

	v.Get("cells").ForEach(func(k, cv gjson.Result) bool {
		c := &design.Cell{
			Name:       design.UnescapeID(k.String()),
			Type:       design.UnescapeID(cv.Get("type").String()),
			Attributes: design.Attributes{},
		}
		cv.Get("attributes").ForEach(func(ak, av gjson.Result) bool {
			c.Attributes[ak.String()] = av.String()
			return true
		})
		dirs := cv.Get("port_directions")
		cv.Get("connections").ForEach(func(pk, _ gjson.Result) bool {
			var dir design.Direction
			dir, err = design.ParseDirection(dirs.Get(gjson.Escape(pk.String())).String())
			if err != nil {
				err = errors.Wrap(errors.ErrCodeInvalidDesign, err, "cell %s port %s", k.String(), pk.String())
				return false
			}
			c.Connections = append(c.Connections, design.Connection{Port: design.UnescapeID(pk.String()), Direction: dir})
			return true
		})
		if err != nil {
			return false
		}
		if err = m.AddCell(c); err != nil {
			err = errors.Wrap(errors.ErrCodeInvalidDesign, err, "cell %s", k.String())
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
