// Package pipeline runs a complete export: load a design file, apply the
// optional pre-export passes, encode it as a VDB container and commit the
// container to disk.
//
// The CLI goes through this package rather than calling the loaders and
// the encoder itself, so caching, logging and hooks behave the same for a
// single export and for a batch.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "counter.json",
//	    Seed:  42,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Output, res.FileID)
//
// Several designs run concurrently with [Runner.ExportAll].
package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/efxvdb/pkg/cache"
	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/design/transform"
	"github.com/matzehuels/efxvdb/pkg/errors"
	vdbio "github.com/matzehuels/efxvdb/pkg/io"
	"github.com/matzehuels/efxvdb/pkg/vdb"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultJobs bounds concurrent exports in ExportAll.
	DefaultJobs = 4

	// OutputExt replaces the input extension when no output path is given.
	OutputExt = ".vdb"
)

// TopPicker chooses a top module when none is marked. It is only consulted
// when Options.Top is empty and the design has no top attribute.
type TopPicker func(ctx context.Context, modules []string) (string, error)

// =============================================================================
// Options
// =============================================================================

// Options configures one export.
type Options struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"` // Input with OutputExt when empty
	Format string `json:"format,omitempty"` // io.Format name, auto when empty

	Top           string `json:"top,omitempty"`
	Library       string `json:"library,omitempty"`
	ScopeType     string `json:"scope_type,omitempty"`
	Policy        string `json:"policy,omitempty"` // cipher duplicate policy
	Seed          uint64 `json:"seed,omitempty"`   // 0 = unseeded, never cached
	StrictLengths bool   `json:"strict_lengths,omitempty"`
	MultBypass    bool   `json:"mult_bypass,omitempty"`

	NoCache bool          `json:"no_cache,omitempty"`
	TTL     time.Duration `json:"-"`
	DryRun  bool          `json:"dry_run,omitempty"` // encode but do not write Output

	// Runtime options (not serialized)
	Logger   *log.Logger  `json:"-"`
	Observer vdb.Observer `json:"-"`
	PickTop  TopPicker    `json:"-"`

	format    vdbio.Format
	policy    cipher.DuplicatePolicy
	validated bool
}

// DefaultOutput derives the container path for input.
func DefaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + OutputExt
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	f, err := vdbio.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.format = f

	p, err := cipher.ParsePolicy(o.Policy)
	if err != nil {
		return err
	}
	o.policy = p
	o.Policy = p.String()

	if o.Library == "" {
		o.Library = vdb.DefaultLibrary
	}
	if o.ScopeType == "" {
		o.ScopeType = vdb.DefaultScopeType
	}
	if o.Output == "" {
		o.Output = DefaultOutput(o.Input)
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLContainer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Cacheable reports whether the container for these options is a pure
// function of the design. Unseeded file ids never are.
func (o *Options) Cacheable() bool {
	return o.Seed != 0 && !o.NoCache
}

// ContainerKeyOpts returns the cache key options for a resolved top module.
func (o *Options) ContainerKeyOpts(top string) cache.ContainerKeyOpts {
	return cache.ContainerKeyOpts{
		Library:       o.Library,
		ScopeType:     o.ScopeType,
		Policy:        o.Policy,
		Top:           top,
		Seed:          o.Seed,
		StrictLengths: o.StrictLengths,
		MultBypass:    o.MultBypass,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result describes one finished export.
type Result struct {
	RunID  string
	Input  string
	Output string // empty for dry runs
	Top    string

	// Container is the complete encoded file.
	Container []byte

	// DesignHash is the blake3 hash of the canonical design after passes.
	DesignHash string

	// FileID is the file identifier rendered through the reverse cipher.
	FileID string

	Bypass   transform.MultBypassResult
	CacheHit bool
	Stats    Stats
}

// Stats contains export statistics.
type Stats struct {
	Modules    int
	Wires      int
	Cells      int
	Bytes      int
	LoadTime   time.Duration
	ExportTime time.Duration
	WriteTime  time.Duration
}
