package vdb

// Section names reported to an Observer.
const (
	SectionHeader         = "header"
	SectionMarker         = "marker"
	SectionModuleInfo     = "module-info"
	SectionModulePortInfo = "module-port-info"
	SectionPrimaryIO      = "primary-io"
	SectionFileID         = "file-id"
)

// Observer receives progress events from a Writer. Implementations must not
// retain the byte slices they are given.
type Observer interface {
	// TopResolved is called once the top module is known.
	TopResolved(name string)
	// RegistryBuilt is called after the wire registry is complete.
	RegistryBuilt(wires int)
	// SectionWritten is called after each section with its encoded size.
	SectionWritten(name string, size int)
	// FileIDGenerated is called with the raw file identifier bytes.
	FileIDGenerated(id []byte)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) TopResolved(string)         {}
func (NopObserver) RegistryBuilt(int)          {}
func (NopObserver) SectionWritten(string, int) {}
func (NopObserver) FileIDGenerated([]byte)     {}
