package partition

import (
	"fmt"
	"math"
	"sort"
)

// Coordinate is a base-pair position on a chromosome.
type Coordinate = int64

const (
	// LowerSentinel and UpperSentinel bound every partition. Cells touching
	// either one lie outside all observed data.
	LowerSentinel Coordinate = 0
	UpperSentinel Coordinate = math.MaxInt64
)

// Cell is a maximal run of positions, Start and End both inclusive, over which
// case and control membership is constant.
type Cell struct {
	Start Coordinate
	End   Coordinate
	Membership
}

// Interior reports whether the cell touches neither sentinel.
func (c Cell) Interior() bool {
	return c.Start != LowerSentinel && c.End != UpperSentinel
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d] cases=%d controls=%d", c.Start, c.End, c.Count(Case), c.Count(Control))
}

// Partition is the ordered, gap-free cell sequence of one chromosome. It always
// covers [LowerSentinel, UpperSentinel] exactly.
type Partition struct {
	Chromosome string
	cells      []Cell
}

// NewPartition returns a partition made of a single cell spanning the whole
// coordinate range, annotated with seed.
func NewPartition(chromosome string, seed Membership) *Partition {
	return &Partition{
		Chromosome: chromosome,
		cells: []Cell{{
			Start:      LowerSentinel,
			End:        UpperSentinel,
			Membership: seed,
		}},
	}
}

// Cells returns the partition's cells in coordinate order. The slice is shared
// with the partition.
func (p *Partition) Cells() []Cell {
	return p.cells
}

func (p *Partition) Len() int {
	return len(p.cells)
}

// locate returns the index of the cell containing point.
func (p *Partition) locate(point Coordinate) int {
	return sort.Search(len(p.cells), func(i int) bool {
		return p.cells[i].End >= point
	})
}

// EnsureBoundary guarantees that point is the Start of some cell. The cell
// containing point is split into [Start, point-1] and [point, End], each with
// its own copy of the membership. If point already starts a cell, nothing
// changes.
func (p *Partition) EnsureBoundary(point Coordinate) {
	if point <= LowerSentinel {
		return
	}

	i := p.locate(point)
	if i == len(p.cells) || p.cells[i].Start == point {
		return
	}

	old := p.cells[i]
	left := Cell{Start: old.Start, End: point - 1, Membership: old.Membership.Clone()}
	right := Cell{Start: point, End: old.End, Membership: old.Membership.Clone()}

	p.cells = append(p.cells, Cell{})
	copy(p.cells[i+2:], p.cells[i+1:])
	p.cells[i] = left
	p.cells[i+1] = right
}

// Ingest applies one shared segment [start, end] of an individual belonging to
// group g: it splits the partition at the segment's boundaries and then adds
// the individual to every cell the segment fully covers.
func (p *Partition) Ingest(start, end Coordinate, g Group, individual int) {
	p.EnsureBoundary(start)
	if end < UpperSentinel {
		p.EnsureBoundary(end + 1)
	}

	for i := p.locate(start); i < len(p.cells); i++ {
		cell := p.cells[i]
		if cell.End > end {
			break
		}
		if start <= cell.Start {
			cell.Add(g, individual)
		}
	}
}

// AddEverywhere adds an individual to every cell of the partition.
func (p *Partition) AddEverywhere(g Group, individual int) {
	for _, cell := range p.cells {
		cell.Add(g, individual)
	}
}

// Check verifies the coverage invariant and that no two cells share a
// membership value.
func (p *Partition) Check() error {
	if len(p.cells) == 0 {
		return fmt.Errorf("chromosome %s: empty partition", p.Chromosome)
	}
	if first := p.cells[0]; first.Start != LowerSentinel {
		return fmt.Errorf("chromosome %s: first cell starts at %d", p.Chromosome, first.Start)
	}
	if last := p.cells[len(p.cells)-1]; last.End != UpperSentinel {
		return fmt.Errorf("chromosome %s: last cell ends at %d", p.Chromosome, last.End)
	}

	seen := make(map[Membership]struct{}, len(p.cells))
	for i, cell := range p.cells {
		if cell.Start > cell.End {
			return fmt.Errorf("chromosome %s: cell %d is inverted: %v", p.Chromosome, i, cell)
		}
		if i > 0 && p.cells[i-1].End+1 != cell.Start {
			return fmt.Errorf("chromosome %s: cells %d and %d are not contiguous: %v, %v", p.Chromosome, i-1, i, p.cells[i-1], cell)
		}
		if _, exists := seen[cell.Membership]; exists {
			return fmt.Errorf("chromosome %s: cell %d shares its membership with another cell", p.Chromosome, i)
		}
		seen[cell.Membership] = struct{}{}
	}

	return nil
}

// Equal reports whether two partitions have the same cells and memberships.
func (p *Partition) Equal(other *Partition) bool {
	if len(p.cells) != len(other.cells) {
		return false
	}
	for i, cell := range p.cells {
		o := other.cells[i]
		if cell.Start != o.Start || cell.End != o.End || !cell.Membership.Equal(o.Membership) {
			return false
		}
	}

	return true
}
