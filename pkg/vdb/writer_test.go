package vdb

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

type recordingObserver struct {
	events []string
	fileID []byte
}

func (o *recordingObserver) TopResolved(name string) {
	o.events = append(o.events, "top "+name)
}

func (o *recordingObserver) RegistryBuilt(wires int) {
	o.events = append(o.events, fmt.Sprintf("registry %d", wires))
}

func (o *recordingObserver) SectionWritten(name string, size int) {
	o.events = append(o.events, fmt.Sprintf("%s %d", name, size))
}

func (o *recordingObserver) FileIDGenerated(id []byte) {
	o.fileID = append([]byte(nil), id...)
}

func TestExportGolden(t *testing.T) {
	got, err := Export(buildCounter(t), Options{Rand: fixedRand()})
	if err != nil {
		t.Fatal(err)
	}
	var want []byte
	for _, s := range []string{goldenHeader, "02 00", goldenModuleInfo, goldenModulePortInfo, goldenPrimaryIO, goldenFileID} {
		want = append(want, mustHex(t, s)...)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Export =\n% x\nwant\n% x", got, want)
	}
	if len(got) != 450 {
		t.Errorf("len = %d, want 450", len(got))
	}
}

func TestExportObserver(t *testing.T) {
	obs := &recordingObserver{}
	_, err := Export(buildCounter(t), Options{Rand: fixedRand(), Observer: obs})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"top counter",
		"registry 5",
		"header 68",
		"marker 2",
		"module-info 29",
		"module-port-info 204",
		"primary-io 139",
		"file-id 8",
	}
	if fmt.Sprint(obs.events) != fmt.Sprint(want) {
		t.Errorf("events = %v\nwant %v", obs.events, want)
	}
	if !bytes.Equal(obs.fileID, mustHex(t, goldenFileID)) {
		t.Errorf("file id = % x", obs.fileID)
	}
}

func TestExportNoTopModule(t *testing.T) {
	d := buildCounter(t)
	m, _ := d.Module("counter")
	m.Top = false

	got, err := Export(d, Options{Rand: fixedRand()})
	if !errors.Is(err, errors.ErrCodeTopModuleUnresolved) {
		t.Fatalf("err = %v, want TOP_MODULE_UNRESOLVED", err)
	}
	if got != nil {
		t.Errorf("output on error: %d bytes", len(got))
	}
}

func TestExportExplicitTop(t *testing.T) {
	d := buildCounter(t)
	m, _ := d.Module("counter")
	m.Top = false

	if _, err := Export(d, Options{Top: "counter", Rand: fixedRand()}); err != nil {
		t.Errorf("explicit top: %v", err)
	}
	if _, err := Export(d, Options{Top: "missing"}); !errors.Is(err, errors.ErrCodeTopModuleUnresolved) {
		t.Errorf("unknown explicit top err = %v", err)
	}
}

func TestResolveTopFirstMarkedWins(t *testing.T) {
	d := design.New()
	for _, name := range []string{"a", "b", "c"} {
		m := design.NewModule(name)
		m.Top = name != "a"
		_ = d.AddModule(m)
	}
	got, err := ResolveTop(d, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "b" {
		t.Errorf("ResolveTop = %q, want b", got)
	}
}

func TestExportFailureLeavesNoOutput(t *testing.T) {
	d := buildCounter(t)
	m, _ := d.Module("counter")
	_ = m.AddWire(design.Wire{Name: "bad wire", Direction: design.DirInput})

	var out bytes.Buffer
	n, err := NewWriter(Options{Rand: fixedRand()}).WriteTo(d, &out)
	if !errors.Is(err, errors.ErrCodeUnmappedCharacter) {
		t.Fatalf("err = %v, want UNMAPPED_CHARACTER", err)
	}
	if n != 0 || out.Len() != 0 {
		t.Errorf("wrote %d bytes on failure", out.Len())
	}
}

func TestWriteTo(t *testing.T) {
	var out bytes.Buffer
	n, err := NewWriter(Options{Rand: fixedRand()}).WriteTo(buildCounter(t), &out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 450 || out.Len() != 450 {
		t.Errorf("n = %d, len = %d", n, out.Len())
	}
}

func TestExportLastWinsTable(t *testing.T) {
	tbl, err := cipher.ForPolicy(cipher.LastWins)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Export(buildCounter(t), Options{Table: tbl, Rand: fixedRand()})
	if err != nil {
		t.Fatal(err)
	}
	// The library name is the first identifier after the 37 fixed bytes.
	lib, _ := tbl.EncodeIdentifier(DefaultLibrary)
	if !bytes.Equal(got[37:37+len(lib)], lib) {
		t.Errorf("library = % x, want % x", got[37:37+len(lib)], lib)
	}
	if bytes.Equal(lib, mustHex(t, "0e 43 45 4e 4e 41 48 45 68 65 46 62 66 4b 49")) {
		t.Error("last-wins table should encode the library differently")
	}
}

func TestExportDeterministicWithSeed(t *testing.T) {
	a, err := Export(buildCounter(t), Options{Rand: NewRand(99)})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Export(buildCounter(t), Options{Rand: NewRand(99)})
	if !bytes.Equal(a, b) {
		t.Error("seeded exports differ")
	}
}
