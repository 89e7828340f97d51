// Command u2t rewrites accented characters in TeX sources as accent macros.
// It converts files named on the command line, or every .tex file in the
// current directory, and can verify that no non-ASCII text is left.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/u2t/core/accent"
	"github.com/FocuswithJustin/u2t/core/transcode"
	"github.com/FocuswithJustin/u2t/internal/logging"
	"github.com/FocuswithJustin/u2t/internal/plan"
)

const version = "0.2.0"

// Injectable for testing
var stdout io.Writer = os.Stdout

// CLI defines the command-line interface for u2t.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"warn" env:"U2T_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" enum:"text,json" default:"text" env:"U2T_LOG_FORMAT"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert accented characters to TeX accent macros"`
	Check   CheckCmd   `cmd:"" help:"Report lines that still contain non-ASCII characters"`
	Marks   MarksCmd   `cmd:"" help:"Print the combining mark table"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts files.
type ConvertCmd struct {
	Files      []string `arg:"" optional:"" help:"Input files (same as --input-file)" type:"path"`
	InputFile  []string `name:"input-file" short:"i" help:"Input file to convert. If none is given, convert every file matching --pattern in --dir" type:"path"`
	OutputFile []string `name:"output-file" short:"o" help:"Output file, paired with input files by position. Missing outputs default to INPUT${suffix}" type:"path"`
	InPlace    bool     `name:"in-place" help:"Rewrite each input file in place"`
	Dir        string   `name:"dir" help:"Directory searched when no input file is given" default:"." type:"path"`
	Pattern    string   `name:"pattern" help:"File pattern searched when no input file is given" default:"*.tex"`
	Suffix     string   `name:"suffix" help:"Suffix appended to input names for default outputs" default:"${suffix}"`
	Policy     string   `name:"policy" help:"What to do with characters that have no accent macro (drop, preserve, fail)" enum:"drop,preserve,fail" default:"drop" env:"U2T_POLICY"`
	MarksFile  string   `name:"marks-file" help:"File with additional combining marks" type:"existingfile" env:"U2T_MARKS_FILE"`
	Workers    int      `name:"workers" short:"j" help:"Files converted concurrently (0 = number of CPUs)" default:"0"`
}

func (c *ConvertCmd) Run() error {
	policy, err := transcode.ParsePolicy(c.Policy)
	if err != nil {
		return err
	}
	table, err := loadTable(c.MarksFile)
	if err != nil {
		return err
	}

	jobs, err := plan.Jobs(plan.Request{
		Inputs:  append(append([]string{}, c.Files...), c.InputFile...),
		Outputs: c.OutputFile,
		InPlace: c.InPlace,
		Dir:     c.Dir,
		Pattern: c.Pattern,
		Suffix:  c.Suffix,
	})
	if errors.Is(err, plan.ErrNoInput) {
		logging.Warn("no input file, skipping execution", "dir", c.Dir, "pattern", c.Pattern)
		return nil
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logging.WithRunID(ctx, logging.NewRunID())

	tr := transcode.New(transcode.WithTable(table), transcode.WithPolicy(policy))
	results := transcode.NewRunner(tr, c.Workers).Run(ctx, jobs)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stdout, "FAILED %s: %v\n", r.Job.Source, r.Err)
			continue
		}
		fmt.Fprintf(stdout, "%s -> %s (%d substituted, %d dropped, %d preserved)\n",
			r.Job.Source, r.Job.Destination, r.Stats.Substituted, r.Stats.Dropped, r.Stats.Preserved)
	}

	if n := transcode.Failed(results); n > 0 {
		logging.ErrorContext(ctx, "run_finished", "files", len(results), "failed", n)
		return fmt.Errorf("%d of %d files failed", n, len(results))
	}
	logging.InfoContext(ctx, "run_finished", "files", len(results))
	return nil
}

// CheckCmd verifies that files contain only ASCII text.
type CheckCmd struct {
	Files []string `arg:"" help:"Files to check" type:"existingfile"`
}

func (c *CheckCmd) Run() error {
	ctx := context.Background()
	dirty := 0
	for _, path := range c.Files {
		findings, err := transcode.Scan(ctx, path)
		if err != nil {
			return err
		}
		if len(findings) > 0 {
			dirty++
		}
		for _, f := range findings {
			codes := make([]string, len(f.Chars))
			for i, r := range f.Chars {
				codes[i] = fmt.Sprintf("%c U+%04X", r, r)
			}
			fmt.Fprintf(stdout, "%s:%d: %s\n", path, f.Line, strings.Join(codes, ", "))
		}
	}
	if dirty > 0 {
		return fmt.Errorf("%d of %d files contain non-ASCII characters", dirty, len(c.Files))
	}
	return nil
}

// MarksCmd prints the active combining mark table.
type MarksCmd struct {
	MarksFile string `name:"marks-file" help:"File with additional combining marks" type:"existingfile" env:"U2T_MARKS_FILE"`
}

func (c *MarksCmd) Run() error {
	table, err := loadTable(c.MarksFile)
	if err != nil {
		return err
	}
	for _, e := range table.Entries() {
		fmt.Fprintf(stdout, "U+%s  %c  \\%s{x}\n", e.Key(), e.Mark, e.Command)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "u2t version %s\n", version)
	return nil
}

// Helper functions

func loadTable(marksFile string) (*accent.Table, error) {
	if marksFile == "" {
		return accent.DefaultTable(), nil
	}
	return accent.LoadTable(marksFile)
}

func initLogging(level, format string) error {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	fmtv, err := logging.ParseFormat(format)
	if err != nil {
		return err
	}
	logging.InitLogger(lvl, fmtv)
	return nil
}

func parserOptions() []kong.Option {
	return []kong.Option{
		kong.Name("u2t"),
		kong.Description("Unicode to (La)TeX - rewrite accented characters as TeX accent macros"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"suffix": transcode.DefaultSuffix},
	}
}

func main() {
	ctx := kong.Parse(&CLI, parserOptions()...)
	ctx.FatalIfErrorf(initLogging(CLI.LogLevel, CLI.LogFormat))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
