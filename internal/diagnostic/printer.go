package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Level is the verbosity of a Printer.
type Level int

const (
	LevelQuiet Level = iota // errors only
	LevelNormal
	LevelVerbose
	LevelDebug
)

// Printer writes progress and diagnostics to the console with colored
// level tags. NO_COLOR and non-terminal outputs disable colors.
type Printer struct {
	level  Level
	out    io.Writer
	errOut io.Writer
	indent int

	errTag   *color.Color
	warnTag  *color.Color
	infoTag  *color.Color
	debugTag *color.Color
	okTag    *color.Color
}

// NewPrinter creates a Printer writing to stdout and stderr.
func NewPrinter(level Level) *Printer {
	return NewPrinterTo(level, os.Stdout, os.Stderr)
}

// NewPrinterTo creates a Printer writing to the given writers.
func NewPrinterTo(level Level, out, errOut io.Writer) *Printer {
	return &Printer{
		level:    level,
		out:      out,
		errOut:   errOut,
		errTag:   color.New(color.FgRed, color.Bold),
		warnTag:  color.New(color.FgYellow),
		infoTag:  color.New(color.FgBlue),
		debugTag: color.New(color.FgMagenta),
		okTag:    color.New(color.FgGreen),
	}
}

// Level returns the verbosity of the printer.
func (p *Printer) Level() Level {
	return p.level
}

// Error prints an error line. Errors are shown at every level.
func (p *Printer) Error(format string, args ...any) {
	p.write(p.errOut, p.errTag, "ERROR", format, args...)
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	if p.level >= LevelNormal {
		p.write(p.errOut, p.warnTag, "WARN", format, args...)
	}
}

// Info prints an informational line.
func (p *Printer) Info(format string, args ...any) {
	if p.level >= LevelNormal {
		p.write(p.out, p.infoTag, "INFO", format, args...)
	}
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	if p.level >= LevelNormal {
		fmt.Fprintf(p.out, "%s%s %s\n", p.prefix(), p.okTag.Sprint("✓"), fmt.Sprintf(format, args...))
	}
}

// Verbose prints a detail line in verbose mode.
func (p *Printer) Verbose(format string, args ...any) {
	if p.level >= LevelVerbose {
		p.write(p.out, p.infoTag, "VERBOSE", format, args...)
	}
}

// Debug prints a line in debug mode.
func (p *Printer) Debug(format string, args ...any) {
	if p.level >= LevelDebug {
		p.write(p.out, p.debugTag, "DEBUG", format, args...)
	}
}

// Indent increases the indentation level.
func (p *Printer) Indent() {
	p.indent++
}

// Unindent decreases the indentation level.
func (p *Printer) Unindent() {
	if p.indent > 0 {
		p.indent--
	}
}

// Report prints every diagnostic: errors, then warnings, then infos in
// verbose mode.
func (p *Printer) Report(d *Diagnostics) {
	for _, e := range d.Errors {
		p.Error("%s", e.String())
	}

	for _, w := range d.Warnings {
		p.Warn("%s", w.String())
	}

	for _, i := range d.Infos {
		p.Verbose("%s", i.String())
	}
}

// Summary prints key/value statistics in the given order.
func (p *Printer) Summary(title string, keys []string, stats map[string]int) {
	if p.level < LevelNormal {
		return
	}

	fmt.Fprintf(p.out, "\n%s\n", title)

	for _, k := range keys {
		fmt.Fprintf(p.out, "   %s: %d\n", k, stats[k])
	}
}

func (p *Printer) write(w io.Writer, tag *color.Color, level, format string, args ...any) {
	var b strings.Builder

	b.WriteString(p.prefix())
	b.WriteString(tag.Sprintf("[%s]", level))
	b.WriteString(" ")
	fmt.Fprintf(&b, format, args...)
	b.WriteString("\n")

	fmt.Fprint(w, b.String())
}

func (p *Printer) prefix() string {
	return strings.Repeat("  ", p.indent)
}
