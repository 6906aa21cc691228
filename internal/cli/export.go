package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/errors"
	vdbio "github.com/matzehuels/efxvdb/pkg/io"
	"github.com/matzehuels/efxvdb/pkg/pipeline"
)

// exportFlags holds the command-line flags for export.
type exportFlags struct {
	output     string
	format     string
	top        string
	pickTop    bool
	seed       uint64
	policy     string
	multBypass bool
	strict     bool
	noCache    bool
	dryRun     bool
	jobs       int
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export DESIGN [DESIGN...]",
		Short: "Encode design files as VDB containers",
		Long: `Encode design files as VDB containers.

The top module is the first module carrying the "top" attribute. Use --top
to name it explicitly, or --pick-top to choose it interactively when the
design marks none.

With one design, -o names the output file (default: DESIGN with .vdb).
With several, -o names an output directory.`,
		Example: `  efxvdb export counter.json
  efxvdb export synth.json --format yosys --seed 42 -o counter.vdb
  efxvdb export a.json b.yaml c.cbor -o build/ --jobs 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), cmd.Flags(), args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file, or directory with several designs")
	cmd.Flags().StringVar(&flags.format, "format", string(vdbio.FormatAuto), "input format: auto, json, yaml, cbor, yosys")
	cmd.Flags().StringVar(&flags.top, "top", "", "top module name (overrides the top attribute)")
	cmd.Flags().BoolVar(&flags.pickTop, "pick-top", false, "choose the top module interactively when none is marked")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for the file id (0 = random, disables caching)")
	cmd.Flags().StringVar(&flags.policy, "duplicates", "", "cipher duplicate policy: first, last, strict")
	cmd.Flags().BoolVar(&flags.multBypass, "mult-bypass", false, "map $mul cells to hard multipliers unless marked efx_mult_bypass")
	cmd.Flags().BoolVar(&flags.strict, "strict-lengths", false, "reject identifiers and counts that overflow their fields")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the container cache")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "encode but do not write any file")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "concurrent exports with several designs (default from config)")
	registerExportCompletions(cmd)

	return cmd
}

// baseOptions merges config values with explicitly set flags.
func (c *CLI) baseOptions(fs *pflag.FlagSet, flags exportFlags) pipeline.Options {
	cfg := c.settings()
	opts := pipeline.Options{
		Format:        flags.format,
		Top:           flags.top,
		Library:       cfg.Library,
		ScopeType:     cfg.ScopeType,
		Policy:        cfg.Cipher.Duplicates,
		Seed:          cfg.Export.Seed,
		StrictLengths: cfg.Export.StrictLengths,
		MultBypass:    cfg.Export.MultBypass,
		NoCache:       flags.noCache,
		DryRun:        flags.dryRun,
	}
	if ttl, err := cfg.TTL(); err == nil {
		opts.TTL = ttl
	}
	if fs.Changed("seed") {
		opts.Seed = flags.seed
	}
	if fs.Changed("duplicates") {
		opts.Policy = flags.policy
	}
	if fs.Changed("strict-lengths") {
		opts.StrictLengths = flags.strict
	}
	if fs.Changed("mult-bypass") {
		opts.MultBypass = flags.multBypass
	}
	return opts
}

func (c *CLI) runExport(ctx context.Context, fs *pflag.FlagSet, inputs []string, flags exportFlags) error {
	logger := loggerFromContext(ctx)

	base := c.baseOptions(fs, flags)
	policy, err := cipher.ParsePolicy(base.Policy)
	if err != nil {
		return err
	}
	table, err := cipher.ForPolicy(policy)
	if err != nil {
		return err
	}
	base.Logger = logger
	base.Observer = newLogObserver(logger, table)

	if flags.pickTop {
		if len(inputs) > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--pick-top works with a single design")
		}
		base.PickTop = pickTop
	}

	runner, err := c.newRunner(ctx, base.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if len(inputs) == 1 {
		opts := base
		opts.Input = inputs[0]
		opts.Output = flags.output
		res, err := runner.Execute(ctx, opts)
		if err != nil {
			return err
		}
		printResult(res, flags.dryRun)
		return nil
	}

	batch, err := batchOptions(base, inputs, flags.output)
	if err != nil {
		return err
	}
	jobs := flags.jobs
	if !fs.Changed("jobs") {
		jobs = c.settings().Export.Jobs
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Exporting %d designs...", len(batch)))
	if isTerminal(os.Stderr) {
		spinner.Start()
	}
	outcomes, err := runner.ExportAllProgress(ctx, batch, jobs, func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Exporting designs (%d/%d)...", done, total))
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		if o.Err != nil {
			printError("%s: %s", o.Input, o.Err)
			continue
		}
		printResult(o.Result, flags.dryRun)
	}
	failed := pipeline.Failed(outcomes)
	prog.done(fmt.Sprintf("Exported %d of %d designs", len(outcomes)-failed, len(outcomes)))
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(outcomes))
	}
	return nil
}

// batchOptions expands base into one Options per input. A non-empty outDir
// receives every container under its input's base name.
func batchOptions(base pipeline.Options, inputs []string, outDir string) ([]pipeline.Options, error) {
	if outDir != "" && !base.DryRun {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", outDir)
		}
	}
	seen := make(map[string]string, len(inputs))
	batch := make([]pipeline.Options, 0, len(inputs))
	for _, in := range inputs {
		opts := base
		opts.Input = in
		opts.Output = pipeline.DefaultOutput(in)
		if outDir != "" {
			opts.Output = filepath.Join(outDir, filepath.Base(opts.Output))
		}
		if prev, ok := seen[opts.Output]; ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s and %s both write %s", prev, in, opts.Output)
		}
		seen[opts.Output] = in
		batch = append(batch, opts)
	}
	return batch, nil
}

func printResult(res *pipeline.Result, dryRun bool) {
	if dryRun {
		printSuccess("Encoded %s %s", StyleTitle.Render(res.Top), StyleDim.Render("(dry run, nothing written)"))
	} else {
		printSuccess("Exported %s", StyleTitle.Render(res.Top))
		printFile(res.Output)
	}
	printStats(exportStats{
		modules: res.Stats.Modules,
		wires:   res.Stats.Wires,
		cells:   res.Stats.Cells,
		bytes:   res.Stats.Bytes,
		fileID:  res.FileID,
		cached:  res.CacheHit,
	})
	if res.Bypass.Mapped > 0 || res.Bypass.Bypassed > 0 {
		printDetail("multipliers: %d mapped, %d bypassed", res.Bypass.Mapped, res.Bypass.Bypassed)
	}
	if res.Stats.ExportTime > time.Second {
		printDetail("encode took %s", res.Stats.ExportTime.Round(time.Millisecond))
	}
}
