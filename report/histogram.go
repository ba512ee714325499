package report

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/ibdlinkage/significance"
)

// WriteHistogram draws the distribution of the p-values of every tested cell.
func WriteHistogram(w io.Writer, results []significance.Result, bins, width int) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No cells were tested.")
		return err
	}

	pvals := make([]float64, 0, len(results))
	for _, r := range results {
		pvals = append(pvals, r.P)
	}

	if _, err := fmt.Fprintf(w, "p-values of %d tested cells:\n", len(pvals)); err != nil {
		return err
	}

	return histogram.Fprint(w, histogram.Hist(bins, pvals), histogram.Linear(width))
}
