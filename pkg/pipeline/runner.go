package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/efxvdb/pkg/cache"
	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/design"
	"github.com/matzehuels/efxvdb/pkg/design/transform"
	"github.com/matzehuels/efxvdb/pkg/errors"
	vdbio "github.com/matzehuels/efxvdb/pkg/io"
	"github.com/matzehuels/efxvdb/pkg/observability"
	"github.com/matzehuels/efxvdb/pkg/vdb"
)

const keyTypeContainer = "container"

// Runner encapsulates export execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load → passes → export → commit for one design.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID: uuid.NewString(),
		Input: opts.Input,
	}
	logger := opts.Logger.With("run", result.RunID[:8], "input", opts.Input)

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Modules = d.ModuleCount()
	result.Stats.Wires = d.WireCount()
	result.Stats.Cells = d.CellCount()
	logger.Debug("loaded design",
		"modules", result.Stats.Modules,
		"wires", result.Stats.Wires,
		"cells", result.Stats.Cells)

	// Stage 2: Passes
	result.Bypass = r.PrepareDesign(d, opts, logger)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	top, err := r.resolveTop(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Top = top

	// Stage 3: Export
	exportStart := time.Now()
	container, hit, hash, err := r.exportWithCacheInfo(ctx, d, top, opts)
	if err != nil {
		return nil, err
	}
	result.Container = container
	result.CacheHit = hit
	result.DesignHash = hash
	result.Stats.ExportTime = time.Since(exportStart)
	result.Stats.Bytes = len(container)

	table, _ := cipher.ForPolicy(opts.policy)
	result.FileID = vdb.RenderFileID(table, container[len(container)-vdb.FileIDSize:])

	logger.Info("encoded container",
		"top", top,
		"bytes", len(container),
		"file_id", result.FileID,
		"cached", hit,
		"duration", result.Stats.ExportTime)

	// Stage 4: Commit
	if opts.DryRun {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	writeStart := time.Now()
	if err := vdbio.WriteFileAtomic(opts.Output, container, 0o644); err != nil {
		return nil, err
	}
	result.Output = opts.Output
	result.Stats.WriteTime = time.Since(writeStart)
	logger.Debug("wrote container", "output", opts.Output, "duration", result.Stats.WriteTime)

	return result, nil
}

// Load reads the design named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (*design.Design, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Export()
	hooks.OnLoadStart(ctx, opts.Input, string(opts.format))
	start := time.Now()
	d, err := vdbio.Import(opts.Input, opts.format)
	modules := 0
	if d != nil {
		modules = d.ModuleCount()
	}
	hooks.OnLoadComplete(ctx, opts.Input, modules, time.Since(start), err)
	return d, err
}

// PrepareDesign applies the enabled pre-export passes to d in place.
func (r *Runner) PrepareDesign(d *design.Design, opts Options, logger *log.Logger) transform.MultBypassResult {
	if !opts.MultBypass {
		return transform.MultBypassResult{}
	}
	res := transform.MultBypass(d)
	logger.Debug("mapped multipliers",
		"mapped", res.Mapped,
		"bypassed", res.Bypassed)
	return res
}

// resolveTop falls back to opts.PickTop when the design names no top module.
func (r *Runner) resolveTop(ctx context.Context, d *design.Design, opts Options) (string, error) {
	top, err := vdb.ResolveTop(d, opts.Top)
	if err == nil || opts.Top != "" || opts.PickTop == nil || !errors.Is(err, errors.ErrCodeTopModuleUnresolved) {
		return top, err
	}
	names := make([]string, 0, d.ModuleCount())
	for _, m := range d.Modules() {
		names = append(names, m.Name)
	}
	if len(names) == 0 {
		return "", err
	}
	picked, perr := opts.PickTop(ctx, names)
	if perr != nil {
		return "", errors.Wrap(errors.ErrCodeTopModuleUnresolved, perr, "pick top module")
	}
	return vdb.ResolveTop(d, picked)
}

// exportWithCacheInfo encodes d, consulting the cache for deterministic
// exports. It returns the container, whether it came from the cache and
// the design hash.
func (r *Runner) exportWithCacheInfo(ctx context.Context, d *design.Design, top string, opts Options) ([]byte, bool, string, error) {
	canonical, err := vdbio.Canonical(d)
	if err != nil {
		return nil, false, "", err
	}
	hash := cache.Hash(canonical)

	var cacheKey string
	if opts.Cacheable() {
		cacheKey = r.Keyer.ContainerKey(hash, opts.ContainerKeyOpts(top))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit && len(data) > vdb.FileIDSize {
			observability.Cache().OnCacheHit(ctx, keyTypeContainer)
			return data, true, hash, nil
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeContainer)
	}

	table, err := cipher.ForPolicy(opts.policy)
	if err != nil {
		return nil, false, hash, err
	}
	w := vdb.NewWriter(vdb.Options{
		Table:         table,
		Library:       opts.Library,
		ScopeType:     opts.ScopeType,
		StrictLengths: opts.StrictLengths,
		Top:           top,
		Rand:          vdb.NewRand(opts.Seed),
		Observer:      opts.Observer,
	})

	hooks := observability.Export()
	hooks.OnExportStart(ctx, top)
	start := time.Now()
	container, err := w.Export(d)
	hooks.OnExportComplete(ctx, top, len(container), time.Since(start), err)
	if err != nil {
		return nil, false, hash, err
	}

	if cacheKey != "" {
		if err := r.Cache.Set(ctx, cacheKey, container, opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeContainer, len(container))
		}
	}
	return container, false, hash, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
