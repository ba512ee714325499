package significance

import (
	"math"

	"github.com/carbocation/ibdlinkage/misfit"
	"github.com/carbocation/ibdlinkage/partition"
	"github.com/exascience/pargo/parallel"
)

const (
	// DefaultTests is the Bonferroni divisor: 22 autosomes and X.
	DefaultTests = 23

	DefaultAlpha = 0.05

	// Populations below this size make the p-values unreliable.
	MinReliablePopulation = 10
)

type Config struct {
	Alpha float64

	// Tests is the number of independent tests the significance threshold is
	// divided by. 1 disables the correction.
	Tests int

	Method Method
	Yates  bool

	// Misfits requests misfit diagnostics for significant cells. It requires
	// identity-form membership.
	Misfits bool
}

func DefaultConfig() Config {
	return Config{
		Alpha:  DefaultAlpha,
		Tests:  DefaultTests,
		Method: Auto,
		Yates:  true,
	}
}

// Threshold is the corrected significance level, alpha / m.
func (c Config) Threshold() float64 {
	m := c.Tests
	if m < 1 {
		m = 1
	}

	return c.Alpha / float64(m)
}

// Result is the outcome of testing one interior cell.
type Result struct {
	Chromosome string
	Start      partition.Coordinate
	End        partition.Coordinate
	Table      Table

	CaseFreq    float64
	ControlFreq float64
	P           float64

	// Method is the test that produced P. Under Auto it is the selected test.
	Method      Method
	Significant bool

	// Misfits is only set for significant cells when requested.
	Misfits *misfit.Misfits
}

// LowSample reports whether either population is too small for the p-values
// to be trusted. It is advisory only.
func LowSample(store *partition.Store) bool {
	return store.Population(partition.Case) < MinReliablePopulation ||
		store.Population(partition.Control) < MinReliablePopulation
}

// Scan tests every interior cell of every chromosome of store and returns the
// results in display order: chromosomes as ordered by the store, cells by
// coordinate. If either population is empty no cell can be tested and the
// result is empty. Chromosomes are scanned in parallel; the store must not be
// modified during the scan.
func Scan(store *partition.Store, cfg Config) ([]Result, error) {
	A, B := store.Population(partition.Case), store.Population(partition.Control)
	if A == 0 || B == 0 {
		return nil, nil
	}

	chromosomes := store.Chromosomes()
	perChromosome := make([][]Result, len(chromosomes))
	errs := make([]error, len(chromosomes))

	parallel.Range(0, len(chromosomes), 0, func(low, high int) {
		for i := low; i < high; i++ {
			p, _ := store.Partition(chromosomes[i])
			perChromosome[i], errs[i] = scanPartition(p, store.Roster(), A, B, cfg)
		}
	})

	out := make([]Result, 0)
	for i := range chromosomes {
		if errs[i] != nil {
			return nil, errs[i]
		}
		out = append(out, perChromosome[i]...)
	}

	return out, nil
}

func scanPartition(p *partition.Partition, roster *partition.Roster, A, B int, cfg Config) ([]Result, error) {
	threshold := cfg.Threshold()
	out := make([]Result, 0)

	for _, cell := range p.Cells() {
		if !cell.Interior() {
			continue
		}

		a, b := cell.Count(partition.Case), cell.Count(partition.Control)
		table := NewTable(a, b, A, B)
		pval, used := evaluate(cfg.Method, table, cfg.Yates)
		if math.IsNaN(pval) {
			continue
		}

		r := Result{
			Chromosome:  p.Chromosome,
			Start:       cell.Start,
			End:         cell.End,
			Table:       table,
			CaseFreq:    float64(a) / float64(A),
			ControlFreq: float64(b) / float64(B),
			P:           pval,
			Method:      used,
			Significant: pval <= threshold,
		}

		if r.Significant && cfg.Misfits {
			m, err := misfit.Analyze(cell, roster)
			if err != nil {
				return nil, err
			}
			r.Misfits = &m
		}

		out = append(out, r)
	}

	return out, nil
}

// Significant filters results down to the cells that passed the threshold.
func Significant(results []Result) []Result {
	out := make([]Result, 0)
	for _, r := range results {
		if r.Significant {
			out = append(out, r)
		}
	}

	return out
}
