// Package cli orchestrates a generator run: configuration, discovery,
// planning, rendering and writing.
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"weakwrap-generator/internal/analyze"
	"weakwrap-generator/internal/config"
	"weakwrap-generator/internal/diagnostic"
	"weakwrap-generator/internal/gen"
	"weakwrap-generator/internal/manifest"
	"weakwrap-generator/internal/model"
	"weakwrap-generator/internal/plan"
)

// Options are the command line settings of a run. Zero values fall back to
// the project configuration.
type Options struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// ConfigPath selects a config file instead of searching for one.
	ConfigPath string
	// Packages and Manifests replace the configured inputs when either is
	// set. Both are resolved relative to Dir.
	Packages  []string
	Manifests []string
	Output    string
	Tags      []string
	Jobs      int
	Header    string
	// DryRun renders everything but writes nothing.
	DryRun bool
}

// Summary counts the outcome of a run.
type Summary struct {
	Types     int
	Generated int
	Rejected  int
	Failed    int
	Written   int
}

// Result is everything a run produced.
type Result struct {
	Specs       []*plan.WrapperSpec
	Files       []gen.GeneratedFile
	Written     []string
	Diagnostics *diagnostic.Diagnostics
	Summary     Summary
}

// Runner executes generator runs and reports progress through a Printer.
type Runner struct {
	printer *diagnostic.Printer
}

// NewRunner creates a new Runner.
func NewRunner(printer *diagnostic.Printer) *Runner {
	return &Runner{printer: printer}
}

// job is one descriptor to generate, with its Go placement when it came
// from a Go package.
type job struct {
	descriptor *model.TypeDescriptor
	goTarget   *gen.GoTarget
}

// outcome is the result of one job.
type outcome struct {
	spec  *plan.WrapperSpec
	file  *gen.GeneratedFile
	diags diagnostic.Diagnostics
	state int
}

const (
	stateGenerated = iota
	stateRejected
	stateFailed
)

// Run generates and writes every wrapper. Per-type problems are collected
// in the result diagnostics; the error is reserved for failures that stop
// the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	return r.run(ctx, opts, true)
}

// Describe plans every wrapper without rendering or writing.
func (r *Runner) Describe(ctx context.Context, opts Options) (*Result, error) {
	return r.run(ctx, opts, false)
}

func (r *Runner) run(ctx context.Context, opts Options, render bool) (*Result, error) {
	start := time.Now()

	cfg, err := r.resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	jobs, diags, err := r.collect(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	r.printer.Info("Found %d annotated types", len(jobs))

	outcomes, err := r.generate(ctx, cfg, jobs, render, opts.DryRun)
	if err != nil {
		return nil, err
	}

	result := &Result{Diagnostics: diags}
	result.Summary.Types = len(jobs)

	for _, o := range outcomes {
		diags.Merge(o.diags)

		switch o.state {
		case stateRejected:
			result.Summary.Rejected++
		case stateFailed:
			result.Summary.Failed++
		default:
			result.Summary.Generated++
			result.Specs = append(result.Specs, o.spec)

			if o.file != nil {
				result.Files = append(result.Files, *o.file)
			}
		}
	}

	if render && !opts.DryRun {
		result.Written = r.write(cfg, result.Files, diags)
		result.Summary.Written = len(result.Written)
	}

	r.printer.Report(diags)
	r.printer.Verbose("Finished in %s", time.Since(start).Round(time.Millisecond))

	return result, nil
}

func (r *Runner) resolveConfig(opts Options) (*config.Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	var (
		cfg *config.Config
		err error
	)

	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.Find(dir)
	}

	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.Path != "" {
		r.printer.Verbose("Using config %s", cfg.Path)
	}

	if opts.Output != "" {
		cfg.Output = opts.Output
	}

	if len(opts.Tags) > 0 {
		cfg.Tags = opts.Tags
	}

	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}

	if opts.Header != "" {
		cfg.Header = opts.Header
	}

	return cfg, nil
}

// collect runs both drivers. Inputs named on the command line replace the
// configured ones.
func (r *Runner) collect(ctx context.Context, cfg *config.Config, opts Options) ([]job, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	patterns, manifests, loadDir := cfg.PackagePatterns(), cfg.ManifestPaths(), cfg.Dir
	if len(opts.Packages) > 0 || len(opts.Manifests) > 0 {
		patterns, manifests, loadDir = opts.Packages, relativeTo(opts.Dir, opts.Manifests), opts.Dir
	}

	var jobs []job

	if len(patterns) > 0 {
		r.printer.Verbose("Loading packages %v", patterns)

		targets, loadDiags, err := analyze.NewAnalyzer(analyze.Config{Dir: loadDir, Tags: cfg.Tags}).Load(ctx, patterns...)
		if err != nil {
			return nil, nil, err
		}

		diags.Merge(*loadDiags)

		for _, t := range targets {
			jobs = append(jobs, job{
				descriptor: t.Descriptor,
				goTarget: &gen.GoTarget{
					PkgName:  t.PkgName,
					Dir:      t.Dir,
					Filename: t.OutputFile,
				},
			})
		}
	}

	if len(manifests) > 0 {
		r.printer.Verbose("Loading manifests %v", manifests)

		files, err := manifest.LoadFiles(manifests)
		if err != nil {
			return nil, nil, err
		}

		tds, resolveDiags := manifest.Resolve(files)
		diags.Merge(*resolveDiags)

		for _, td := range tds {
			jobs = append(jobs, job{descriptor: td})
		}
	}

	return jobs, diags, nil
}

func relativeTo(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		if dir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}

		out[i] = p
	}

	return out
}

// generate plans and renders every job in parallel. Outcomes keep the job
// order so output and diagnostics do not depend on scheduling.
func (r *Runner) generate(ctx context.Context, cfg *config.Config, jobs []job, render, dryRun bool) ([]outcome, error) {
	goRenderer := gen.NewGoRenderer(goConfig(cfg.Header, dryRun))
	javaRenderer := gen.NewJavaRenderer(gen.JavaConfig{Header: cfg.Header})

	outcomes := make([]outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.EffectiveJobs())

	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcomes[i] = generateOne(j, goRenderer, javaRenderer, render)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	claimOutputs(cfg.Resolve(cfg.Output), jobs, outcomes)

	for i, o := range outcomes {
		if o.state == stateGenerated {
			r.printer.Debug("Planned %s with %d methods", jobs[i].descriptor.QualifiedName, len(o.spec.Methods))
		}
	}

	return outcomes, nil
}

// goConfig keeps dry runs from leaving *.unformatted.go sidecars in source
// packages.
func goConfig(header string, dryRun bool) gen.GoConfig {
	return gen.GoConfig{Header: header, DebugUnformatted: !dryRun}
}

// claimOutputs fails every outcome whose file path was already claimed by
// an earlier job.
func claimOutputs(root string, jobs []job, outcomes []outcome) {
	owners := make(map[string]string)

	for i := range outcomes {
		o := &outcomes[i]
		if o.file == nil {
			continue
		}

		td := jobs[i].descriptor
		path := o.file.Path(root)

		owner, taken := owners[path]
		if !taken {
			owners[path] = td.QualifiedName
			continue
		}

		o.state = stateFailed
		o.file = nil
		o.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeDuplicateOutput,
			Message:  fmt.Sprintf("output file %s is already generated for %s", path, owner),
			Type:     td.QualifiedName,
			Position: td.Position,
		})
	}
}

func generateOne(j job, goRenderer *gen.GoRenderer, javaRenderer *gen.JavaRenderer, render bool) outcome {
	td := j.descriptor

	spec, err := plan.Generate(td)
	if err != nil {
		o := outcome{state: stateRejected}
		o.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeNotProxyable,
			Message:  plan.TypeValidationMessage,
			Type:     td.QualifiedName,
			Position: td.Position,
		})

		return o
	}

	o := outcome{spec: spec}
	if !render {
		return o
	}

	var file *gen.GeneratedFile
	if j.goTarget != nil {
		file, err = goRenderer.Render(spec, *j.goTarget)
	} else {
		file, err = javaRenderer.Render(spec)
	}

	if err != nil {
		o.state = stateFailed
		o.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeRender,
			Message:  err.Error(),
			Type:     td.QualifiedName,
			Position: td.Position,
		})

		return o
	}

	o.file = file

	return o
}

// write stores files one after another. Go files carry absolute
// directories; Java files are placed under the output root.
func (r *Runner) write(cfg *config.Config, files []gen.GeneratedFile, diags *diagnostic.Diagnostics) []string {
	root := cfg.Resolve(cfg.Output)

	var written []string

	for _, f := range files {
		path, err := gen.WriteFile(f, root)
		if err != nil {
			diags.AddError(diagnostic.CodeWrite, err.Error(), "", "")
			continue
		}

		r.printer.Success("Generated %s", path)

		written = append(written, path)
	}

	return written
}

// SummaryKeys is the display order of PrintSummary.
var SummaryKeys = []string{"types", "generated", "rejected", "failed", "files written"}

// PrintSummary prints the counters of a run.
func (r *Runner) PrintSummary(s Summary) {
	r.printer.Summary("Summary", SummaryKeys, map[string]int{
		"types":         s.Types,
		"generated":     s.Generated,
		"rejected":      s.Rejected,
		"failed":        s.Failed,
		"files written": s.Written,
	})
}
