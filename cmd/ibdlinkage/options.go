package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/carbocation/ibdlinkage/partition"
	"github.com/carbocation/ibdlinkage/significance"
)

// Options holds every setting of a run. Config file keys use the toml tags.
type Options struct {
	Cases        string  `toml:"cases"`
	Controls     string  `toml:"controls"`
	Recursive    bool    `toml:"recursive"`
	Proband      string  `toml:"proband"`
	Alpha        float64 `toml:"alpha"`
	NoBonferroni bool    `toml:"no_bonferroni"`
	Method       string  `toml:"method"`
	NoYates      bool    `toml:"no_yates"`
	Misfits      bool    `toml:"misfits"`
	Counts       bool    `toml:"counts"`
	Plot         string  `toml:"plot"`
	Histogram    bool    `toml:"histogram"`
	Assembly     string  `toml:"assembly"`
	BigQuery     string  `toml:"bigquery"`
	Verbose      bool    `toml:"verbose"`

	Config  string `toml:"-"`
	Version bool   `toml:"-"`
}

func defaultOptions() Options {
	return Options{
		Cases:    "cases",
		Controls: "controls",
		Alpha:    significance.DefaultAlpha,
		Method:   "auto",
		Assembly: "grch38",
	}
}

func newFlagSet(opts *Options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("ibdlinkage", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Cases, "cases", opts.Cases, "Directory of comparison files for the cases. Optionally, may be a google storage URL (gs://)")
	fs.StringVar(&opts.Controls, "controls", opts.Controls, "Directory of comparison files for the controls. Optionally, may be a google storage URL (gs://)")
	fs.BoolVar(&opts.Recursive, "recursive", opts.Recursive, "Also read comparison files in subdirectories")
	fs.BoolVar(&opts.Recursive, "r", opts.Recursive, "Shorthand for -recursive")
	fs.StringVar(&opts.Proband, "proband", opts.Proband, "Affection of the proband: case, control or unknown. If unset, you will be asked.")
	fs.Float64Var(&opts.Alpha, "alpha", opts.Alpha, "Significance level before correction")
	fs.Float64Var(&opts.Alpha, "a", opts.Alpha, "Shorthand for -alpha")
	fs.BoolVar(&opts.NoBonferroni, "no-bonferroni", opts.NoBonferroni, "Do not divide alpha by the number of scanned chromosomes")
	fs.StringVar(&opts.Method, "method", opts.Method, "Test to apply to each cell: z, chi, fisher, g or auto (chi-squared or Fisher by Cochran's rule)")
	fs.BoolVar(&opts.NoYates, "no-yates", opts.NoYates, "Do not apply the Yates continuity correction to chi-squared tests")
	fs.BoolVar(&opts.Misfits, "misfits", opts.Misfits, "List the individuals who contradict each significant cell")
	fs.BoolVar(&opts.Counts, "counts", opts.Counts, "Track only membership counts. Uses less memory but cannot list misfits.")
	fs.StringVar(&opts.Plot, "plot", opts.Plot, "Write a PNG of -log10(p) along the genome to this path")
	fs.BoolVar(&opts.Histogram, "histogram", opts.Histogram, "Print a histogram of all p-values to stderr")
	fs.StringVar(&opts.Assembly, "assembly", opts.Assembly, "Assembly used to lay out the plot: grch37 or grch38")
	fs.StringVar(&opts.BigQuery, "bigquery", opts.BigQuery, "Also insert every tested cell into this project.dataset.table")
	fs.StringVar(&opts.Config, "config", opts.Config, "TOML file with default values for any of these flags. Flags on the command line win.")
	fs.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "Log every loaded file and the partition summary")
	fs.BoolVar(&opts.Version, "version", opts.Version, "Print build information and exit")

	return fs
}

// ParseOptions parses args, loading the config file named by -config if any.
// Flags given on the command line override the config file.
func ParseOptions(args []string, output io.Writer) (Options, error) {
	opts := defaultOptions()
	fs := newFlagSet(&opts, output)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.Config != "" {
		if _, err := toml.DecodeFile(opts.Config, &opts); err != nil {
			return opts, fmt.Errorf("reading config %s: %w", opts.Config, err)
		}

		// Re-apply the command line on top of the file.
		if err := fs.Parse(args); err != nil {
			return opts, err
		}
	}

	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments %v", fs.Args())
	}

	return opts, opts.validate()
}

func (o Options) validate() error {
	if o.Alpha <= 0 || o.Alpha >= 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got %v", o.Alpha)
	}
	if _, err := significance.ParseMethod(o.Method); err != nil {
		return err
	}
	if o.Counts && o.Misfits {
		return fmt.Errorf("-misfits needs individual identities and cannot be combined with -counts")
	}
	if o.Proband != "" {
		if _, _, err := parseProband(o.Proband); err != nil {
			return err
		}
	}
	if o.Cases == "" || o.Controls == "" {
		return fmt.Errorf("both -cases and -controls are required")
	}

	return nil
}

// ScanConfig translates the options into the scan settings.
func (o Options) ScanConfig() significance.Config {
	cfg := significance.DefaultConfig()
	cfg.Alpha = o.Alpha
	if o.NoBonferroni {
		cfg.Tests = 1
	}
	cfg.Method, _ = significance.ParseMethod(o.Method)
	cfg.Yates = !o.NoYates
	cfg.Misfits = o.Misfits

	return cfg
}

func (o Options) Form() partition.Form {
	if o.Counts {
		return partition.Counts
	}
	return partition.Identities
}
