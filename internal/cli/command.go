package cli

import (
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"

	"github.com/duxstat/dux/internal/dux"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// options carries the CLI-level settings that do not map directly onto
// dux.Options.
type options struct {
	dirname    string
	inodes     bool
	noGrouping bool
	noSuffix   bool
	noProgress bool
	output     string
	debug      bool
	version    bool
}

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		dux shows disk usage statistics for the immediate children of a directory.

		Usage:

			dux [flags] [dirname]

		Positional Arguments:
		  dirname                Directory to analyze. Defaults to current directory if not specified.

		Modes:
		  Default mode sums on-disk size per child, rounded up to kibibytes.
		  Use --inodes to count filesystem entries instead.

		Press Ctrl+C to stop a long scan; partial results are discarded.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var opts options

	allowedOutputs := []string{"table", "json"}

	pflag.BoolVarP(&opts.inodes, "inodes", "i", false, "Count filesystem entries instead of disk usage")
	pflag.BoolVarP(&opts.noGrouping, "nogrouping", "g", false, "Don't use thousand separators for inode counts")
	pflag.BoolVarP(&opts.noSuffix, "nosuffix", "f", false, "Don't append file type indicators (@ and /)")
	pflag.BoolVar(&opts.noProgress, "noprogress", false, "Don't show the progress bar")
	pflag.StringVarP(&opts.output, "output", "o", "table", "Output format: json or table")
	pflag.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&opts.version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if opts.version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if !slices.Contains(allowedOutputs, opts.output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", opts.output, allowedOutputs)
	}

	if pflag.NArg() == 0 {
		opts.dirname = "."
	} else {
		opts.dirname = pflag.Args()[0]
	}

	mode := dux.ModeSize
	if opts.inodes {
		mode = dux.ModeInodes
	}

	return logic(opts, mode)
}
