package cache

// FormatVersion is folded into every container key. Bump it when the
// encoder's output changes for the same input.
const FormatVersion = 1

// ContainerKeyOpts are the export settings that change container bytes.
type ContainerKeyOpts struct {
	Library       string `json:"library"`
	ScopeType     string `json:"scope_type"`
	Policy        string `json:"policy"`
	Top           string `json:"top"`
	Seed          uint64 `json:"seed"`
	StrictLengths bool   `json:"strict_lengths"`
	MultBypass    bool   `json:"mult_bypass"`
}

// Keyer derives cache keys.
type Keyer interface {
	ContainerKey(designHash string, opts ContainerKeyOpts) string
}

// DefaultKeyer produces "container:<blake3>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ContainerKey hashes the design hash together with every option and the
// format version.
func (DefaultKeyer) ContainerKey(designHash string, opts ContainerKeyOpts) string {
	return hashKey("container", designHash, opts, FormatVersion)
}
