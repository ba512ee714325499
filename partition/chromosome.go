package partition

import (
	"fmt"
	"sort"
	"strconv"
)

// Chromosomes lists the chromosomes that take part in a linkage scan. Y and
// mitochondrial DNA are not scanned.
var Chromosomes = []string{
	"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11",
	"12", "13", "14", "15", "16", "17", "18", "19", "20", "21", "22",
	"X",
}

// SortKey returns the key used to order chromosomes for display. Numeric
// identifiers are zero-padded to two digits so that "2" sorts before "10";
// anything else is used literally, which places "X" after all numbered
// chromosomes.
func SortKey(chromosome string) string {
	n, err := strconv.Atoi(chromosome)
	if err != nil {
		return chromosome
	}

	return fmt.Sprintf("%02d", n)
}

// SortChromosomes sorts chromosome identifiers in place into display order.
func SortChromosomes(chromosomes []string) {
	sort.SliceStable(chromosomes, func(i, j int) bool {
		return SortKey(chromosomes[i]) < SortKey(chromosomes[j])
	})
}
