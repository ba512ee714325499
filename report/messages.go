package report

import (
	"fmt"
	"io"

	"github.com/carbocation/ibdlinkage/partition"
	"github.com/carbocation/ibdlinkage/significance"
)

// WriteStartup writes the size of the comparison and, for small populations,
// a warning that the p-values cannot be trusted.
func WriteStartup(w io.Writer, store *partition.Store) error {
	cells := 0
	for _, chr := range store.Chromosomes() {
		p, _ := store.Partition(chr)
		cells += p.Len()
	}

	if _, err := fmt.Fprintf(w, "Comparing %d segments between %d cases and %d controls.\n",
		cells, store.Population(partition.Case), store.Population(partition.Control)); err != nil {
		return err
	}

	if significance.LowSample(store) {
		_, err := fmt.Fprintf(w, "WARNING: You have less than %d cases or less than %d controls.\nThe p values output by this program are not accurate.\n",
			significance.MinReliablePopulation, significance.MinReliablePopulation)
		return err
	}

	return nil
}
