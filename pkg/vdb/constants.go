package vdb

// Fixed container constants. Fields documented as reversed are written
// back to front.
var (
	magic     = []byte{0x03, 0x1f, 0x6c, 0x12}                         // reversed
	version   = []byte{0xa0, 0x00, 0x00, 0x0b}                         // reversed
	algoTag   = []byte{0x08, 0x03, 0x1f, 0x7a, 0xe4, 0x40}             // reversed
	timestamp = []byte{0x00, 0x00, 0x00, 0x00, 0x66, 0xc4, 0x3d, 0x7a} // reversed
	constant  = []byte{0x01, 0x00, 0x20, 0x20, 0x00, 0x02}
	preamble  = []byte{0x40, 0x31, 0x00, 0xab, 0x00}
	marker    = []byte{0x02, 0x00}
)

const (
	// DefaultLibrary is the library name stored in the header.
	DefaultLibrary = "efxphysicallib"

	// DefaultScopeType is the cell type of scope-marker pseudo-cells.
	DefaultScopeType = "$scopeinfo"

	// AttrPrimaryInput and AttrPrimaryOutput name the Primary-IO attributes.
	AttrPrimaryInput  = "IS_PRIMARY_INPUT"
	AttrPrimaryOutput = "IS_PRIMARY_OUTPUT"
	attrTrue          = "TRUE"

	// FileIDSize is the length of the trailing file identifier.
	FileIDSize = 8

	// MaxWires is the number of distinct 16-bit registry indices.
	MaxWires = 1 << 16

	dirInput  byte = 0x01
	dirOutput byte = 0x02

	dirBlockSize  = 10
	identPad      = 10
	wirePad       = 12
	attrPad       = 8
	primaryIOFlag = 0x10
	primaryIOTail = 6
)
