// Package main provides the CLI entrypoint for weakwrap.
//
// weakwrap generates weak-reference wrappers: for every annotated type it
// emits a type with the same methods that holds the original only weakly
// and returns zero values once it has been collected.
//
//	weakwrap gen [flags] [packages]
//	weakwrap describe [-json] [flags] [packages]
//	weakwrap clean [-dry-run] [dirs]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"

	"weakwrap-generator/internal/cli"
	"weakwrap-generator/internal/diagnostic"
)

const usage = `Usage: weakwrap <command> [flags] [arguments]

Commands:
  gen       generate wrappers for annotated types and manifests
  describe  print the planned wrappers without writing anything
  clean     remove generated Go files

Run "weakwrap <command> -h" for the flags of a command.
`

// errFailed signals that diagnostics were already printed.
var errFailed = errors.New("generation reported errors")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errFailed) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}

	switch args[0] {
	case "gen":
		return runGen(ctx, args[1:], stdout, stderr)
	case "describe":
		return runDescribe(ctx, args[1:], stdout, stderr)
	case "clean":
		return runClean(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// commonFlags are shared by gen and describe.
type commonFlags struct {
	opts    cli.Options
	tags    string
	verbose bool
	quiet   bool
	debug   bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.opts.ConfigPath, "config", "", "config file (default: weakwrap.yaml or weakwrap.toml next to go.mod)")
	fs.Var((*listFlag)(&c.opts.Manifests), "manifest", "type manifest file (YAML or JSON); repeatable")
	fs.StringVar(&c.opts.Output, "out", "", "output root for Java sources")
	fs.StringVar(&c.tags, "tags", "", "comma-separated build tags")
	fs.IntVar(&c.opts.Jobs, "jobs", 0, "parallel generation jobs (default: GOMAXPROCS)")
	fs.StringVar(&c.opts.Header, "header", "", "generated-code header line")
	fs.BoolVar(&c.verbose, "v", false, "verbose output")
	fs.BoolVar(&c.quiet, "q", false, "only print errors")
	fs.BoolVar(&c.debug, "debug", false, "debug output")
}

func (c *commonFlags) finish(fs *flag.FlagSet) {
	c.opts.Packages = fs.Args()
	if c.tags != "" {
		c.opts.Tags = strings.Split(c.tags, ",")
	}
}

func (c *commonFlags) level() diagnostic.Level {
	switch {
	case c.debug:
		return diagnostic.LevelDebug
	case c.verbose:
		return diagnostic.LevelVerbose
	case c.quiet:
		return diagnostic.LevelQuiet
	default:
		return diagnostic.LevelNormal
	}
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

func runGen(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("gen", stderr)

	var common commonFlags
	common.register(fs)
	fs.BoolVar(&common.opts.DryRun, "dry-run", false, "render without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}

	common.finish(fs)

	runner := cli.NewRunner(diagnostic.NewPrinterTo(common.level(), stdout, stderr))

	result, err := runner.Run(ctx, common.opts)
	if err != nil {
		return err
	}

	runner.PrintSummary(result.Summary)

	if result.Diagnostics.HasErrors() {
		return errFailed
	}

	return nil
}

func runDescribe(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("describe", stderr)

	var common commonFlags
	common.register(fs)

	asJSON := fs.Bool("json", false, "print JSON instead of a Go value dump")

	if err := fs.Parse(args); err != nil {
		return err
	}

	common.finish(fs)

	// the dump owns stdout; only errors are printed
	printer := diagnostic.NewPrinterTo(diagnostic.LevelQuiet, io.Discard, stderr)

	result, err := cli.NewRunner(printer).Describe(ctx, common.opts)
	if err != nil {
		return err
	}

	if *asJSON {
		data, err := json.MarshalIndent(result.Specs, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding specs: %w", err)
		}

		fmt.Fprintln(stdout, string(data))
	} else {
		dumper := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
		dumper.Fdump(stdout, result.Specs)
	}

	if result.Diagnostics.HasErrors() {
		return errFailed
	}

	return nil
}

func runClean(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("clean", stderr)

	cleaner := &cli.Cleaner{}
	fs.BoolVar(&cleaner.DryRun, "dry-run", false, "list files without removing them")
	fs.StringVar(&cleaner.Header, "header", "", "generated-code header line")

	if err := fs.Parse(args); err != nil {
		return err
	}

	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = []string{"./..."}
	}

	removed, err := cleaner.Clean(dirs)
	for _, path := range removed {
		fmt.Fprintln(stdout, path)
	}

	return err
}
